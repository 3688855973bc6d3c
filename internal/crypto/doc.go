// Package crypto is the native cryptographic library behind the boundary.
//
// Contents
//
//   - Ed25519 key pairs derived from a 32-byte seed, signing and
//     verification (SeedKeyPair, SignEd25519, VerifyEd25519)
//   - Ed25519 to X25519 conversion of public and secret keys
//     (Ed25519PKToCurve25519, Ed25519SKToCurve25519)
//   - Multi-recipient "simple" encryption: one envelope carrying a
//     ciphertext per recipient under a shared nonce and a domain
//     separation string (EncryptForMultiple, DecryptForMultiple)
//   - The kicked-member message domain (KickedDomain, IsKickedMessage)
//
// # Envelope format
//
// An envelope is a deterministic CBOR map {"#": nonce, "e": [ciphertext...]}.
// Each ciphertext is XChaCha20-Poly1305 under the key
// BLAKE2b-256(key=domain, DH(a, B) || A || B), where A is the sender's and B
// the recipient's X25519 public key.
//
// # Notes
//
// Secret intermediates (X25519 scalars, DH outputs, derived keys) are wiped
// with memzero once used. Native implements domain.Crypto.
package crypto
