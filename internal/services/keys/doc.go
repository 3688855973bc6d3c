// Package keys manages creation, sealing and loading of the host key pair.
//
// It enforces the passphrase policy, derives the Ed25519 key pair from a
// seed through the managed boundary, and persists it via the
// domain.KeyPairStore. The session id is the X25519 form of the public key
// with the 05 prefix.
package keys
