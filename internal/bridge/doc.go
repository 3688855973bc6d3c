// Package bridge translates between the native data model in
// internal/domain and the managed object representation in
// internal/managed.
//
// Every boundary call receives the caller's Env. Codecs copy bytes in and
// out exactly, decode closed variants with a safe fallback, and build
// records through their canonical constructors. Config objects cross the
// boundary as opaque handles owned by a HandleTable; calls into the shared
// crypto library are serialised by a Library lock.
package bridge
