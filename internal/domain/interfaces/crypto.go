package interfaces

import domaintypes "sessionbridge/internal/domain/types"

// Crypto is the native cryptographic library the boundary forwards to.
// Implementations must be safe to call while the caller holds the shared
// library lock; they must not take that lock themselves.
type Crypto interface {
	// SeedKeyPair derives an Ed25519 key pair from a 32-byte seed.
	SeedKeyPair(seed []byte) (domaintypes.KeyPair, error)

	// Ed25519PKToCurve25519 converts an Ed25519 public key to its X25519 form.
	Ed25519PKToCurve25519(pk []byte) (domaintypes.X25519Public, error)

	// EncryptForMultiple seals one message for every recipient, or one
	// message per recipient, under a single nonce and domain.
	EncryptForMultiple(
		messages [][]byte,
		recipients [][]byte,
		ed25519SecretKey []byte,
		domain string,
		nonce []byte,
	) ([]byte, error)

	// DecryptForMultiple opens the ciphertext addressed to the holder of
	// ed25519SecretKey. ok is false when nothing authenticates.
	DecryptForMultiple(
		envelope []byte,
		ed25519SecretKey []byte,
		senderEd25519Pub []byte,
		domain string,
	) (plaintext []byte, ok bool, err error)
}

// CommunityURLs implements the community URL grammar.
type CommunityURLs interface {
	// New builds a reference from its parts, canonicalising the base URL.
	New(baseURL, room, pubkeyHex string) (domaintypes.CommunityReference, error)

	// ParseFullURL splits a full community URL into base URL, room and pubkey.
	ParseFullURL(fullURL string) (baseURL, room string, pubkey []byte, err error)

	// FullURL renders ref back to its full URL.
	FullURL(ref domaintypes.CommunityReference) string
}
