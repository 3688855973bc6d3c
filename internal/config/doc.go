// Package config is the native config object model whose instances are
// exposed across the boundary as opaque handles.
//
// Two concrete kinds exist:
//   - Base: a namespaced key/value object with a sequence number and a
//     deterministic CBOR dump.
//   - Sig: a Base whose dumps are signed with an Ed25519 key and verified
//     when loaded.
//
// Merge and diff of remote updates live outside this package. Objects are
// safe for concurrent use until Close; after Close every method fails with
// ErrClosed and key material has been wiped.
package config
