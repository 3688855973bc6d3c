// Package store provides file-based persistence for the CLI host.
//
// The key pair is sealed under a passphrase (argon2id or scrypt, then
// XChaCha20-Poly1305) before it touches disk; config dumps are written as they come from the
// native library, which signs or versions them itself. Every write goes
// through a temp file and an atomic rename. All methods are safe for
// concurrent use.
package store
