package crypto

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"sessionbridge/internal/domain"
	"sessionbridge/internal/util/memzero"
)

var (
	// ErrInvalidSeed is returned when a key pair seed is not 32 bytes.
	ErrInvalidSeed = errors.New("invalid ed25519 seed")
	// ErrInvalidSecretKey is returned when an Ed25519 secret key is not 64 bytes.
	ErrInvalidSecretKey = errors.New("invalid ed25519 secret key")
)

// SeedKeyPair derives the Ed25519 key pair for seed.
func SeedKeyPair(seed []byte) (domain.KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return domain.KeyPair{}, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidSeed, ed25519.SeedSize, len(seed))
	}
	sk := ed25519.NewKeyFromSeed(seed)
	defer memzero.Zero(sk)

	var kp domain.KeyPair
	copy(kp.Secret[:], sk)
	copy(kp.Public[:], sk[ed25519.SeedSize:])
	return kp, nil
}

// SignEd25519 signs msg with priv and returns the signature.
func SignEd25519(priv domain.Ed25519Private, msg []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(priv[:]), msg)
}

// VerifyEd25519 verifies sig over msg with pub.
func VerifyEd25519(pub domain.Ed25519Public, msg, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig)
}
