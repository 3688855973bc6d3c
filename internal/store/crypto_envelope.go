package store

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"sessionbridge/internal/codec"
	"sessionbridge/internal/util/memzero"
)

// KDF names the passphrase key derivation function of a sealed blob.
type KDF string

const (
	KDFArgon2id KDF = "argon2id"
	KDFScrypt   KDF = "scrypt"
)

// sealedFormatVersion is the newest sealed blob layout this package writes.
// Version 2 blobs carry no kdf field and are always scrypt.
const sealedFormatVersion = 3

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// sealed blob has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key file")
	// ErrUnknownKDF is returned for a KDF name this package does not implement.
	ErrUnknownKDF = errors.New("unknown key derivation function")
)

// sealed is the on-disk CBOR structure holding the ciphertext and the KDF
// parameters needed to open it.
type sealed struct {
	V       int    `cbor:"v"`
	KDF     KDF    `cbor:"kdf,omitempty"`
	Salt    []byte `cbor:"salt"`
	N       int    `cbor:"n,omitempty"`
	R       int    `cbor:"r,omitempty"`
	P       int    `cbor:"p,omitempty"`
	Time    uint32 `cbor:"t,omitempty"`
	Memory  uint32 `cbor:"m,omitempty"`
	Threads uint8  `cbor:"th,omitempty"`
	Nonce   []byte `cbor:"nonce"`
	Cipher  []byte `cbor:"ct"`
}

// ParseKDF maps a flag value to a KDF. Empty selects argon2id.
func ParseKDF(name string) (KDF, error) {
	switch KDF(name) {
	case "", KDFArgon2id:
		return KDFArgon2id, nil
	case KDFScrypt:
		return KDFScrypt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKDF, name)
	}
}

// seal derives a key from passphrase with kdf and encrypts raw under it.
// The salt is bound as associated data.
func seal(passphrase string, raw []byte, kdf KDF) ([]byte, error) {
	s := sealed{V: sealedFormatVersion, KDF: kdf, Salt: make([]byte, 16)}
	switch kdf {
	case KDFArgon2id:
		s.Time, s.Memory, s.Threads = argon2ParamsDefault()
	case KDFScrypt:
		s.N, s.R, s.P = scryptParamsDefault()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKDF, kdf)
	}
	if _, err := rand.Read(s.Salt); err != nil {
		return nil, err
	}

	key, err := deriveKey(passphrase, &s)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	s.Nonce = make([]byte, aead.NonceSize())
	if _, err := rand.Read(s.Nonce); err != nil {
		return nil, err
	}
	s.Cipher = aead.Seal(nil, s.Nonce, raw, s.Salt)
	return codec.Marshal(s)
}

// open reverses seal.
func open(passphrase string, b []byte) ([]byte, error) {
	var s sealed
	if err := codec.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode key file: %w", err)
	}
	switch s.V {
	case 2:
		s.KDF = KDFScrypt
	case sealedFormatVersion:
	default:
		return nil, fmt.Errorf("unsupported key file version %d", s.V)
	}

	key, err := deriveKey(passphrase, &s)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(s.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}
	pt, err := aead.Open(nil, s.Nonce, s.Cipher, s.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func deriveKey(passphrase string, s *sealed) ([]byte, error) {
	switch s.KDF {
	case KDFArgon2id:
		if s.Time == 0 || s.Memory == 0 || s.Threads == 0 {
			return nil, fmt.Errorf("%w: zero argon2id parameter", ErrWrongPassphrase)
		}
		return argon2.IDKey([]byte(passphrase), s.Salt, s.Time, s.Memory, s.Threads, chacha20poly1305.KeySize), nil
	case KDFScrypt:
		return scrypt.Key([]byte(passphrase), s.Salt, s.N, s.R, s.P, chacha20poly1305.KeySize)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKDF, s.KDF)
	}
}

// Tunables for key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

func argon2ParamsDefault() (time, memoryKiB uint32, threads uint8) { return 1, 64 * 1024, 4 }
