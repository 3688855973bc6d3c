package config

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"sessionbridge/internal/codec"
	"sessionbridge/internal/crypto"
	"sessionbridge/internal/domain"
	"sessionbridge/internal/util/memzero"
)

// ErrBadSignature is returned when a signed dump fails verification.
var ErrBadSignature = errors.New("config dump signature mismatch")

// signedDump wraps a Base dump with its Ed25519 signature.
type signedDump struct {
	Payload   []byte `cbor:"p"`
	Signature []byte `cbor:"s"`
}

// Sig is a config object whose dumps are signed.
type Sig struct {
	*Base
	secret domain.Ed25519Private
	public domain.Ed25519Public
}

// NewSig returns a signing object for ns keyed by the 64-byte Ed25519
// secret key. A non-empty dump must carry a valid signature by that key.
func NewSig(ns domain.Namespace, ed25519SecretKey []byte, dump []byte) (*Sig, error) {
	if len(ed25519SecretKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", crypto.ErrInvalidSecretKey, ed25519.PrivateKeySize, len(ed25519SecretKey))
	}
	s := &Sig{}
	copy(s.secret[:], ed25519SecretKey)
	copy(s.public[:], ed25519SecretKey[ed25519.SeedSize:])

	var payload []byte
	if len(dump) > 0 {
		var sd signedDump
		if err := codec.Unmarshal(dump, &sd); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDump, err)
		}
		if !crypto.VerifyEd25519(s.public, sd.Payload, sd.Signature) {
			return nil, ErrBadSignature
		}
		payload = sd.Payload
	}
	base, err := NewBase(ns, payload)
	if err != nil {
		return nil, err
	}
	s.Base = base
	return s, nil
}

// PublicKey returns the key dumps are verified against.
func (s *Sig) PublicKey() domain.Ed25519Public { return s.public }

// Dump serialises and signs the object.
func (s *Sig) Dump() ([]byte, error) {
	payload, err := s.Base.Dump()
	if err != nil {
		return nil, err
	}
	return codec.Marshal(signedDump{
		Payload:   payload,
		Signature: crypto.SignEd25519(s.secret, payload),
	})
}

// Close wipes the signing key and the stored values.
func (s *Sig) Close() error {
	if err := s.Base.Close(); err != nil {
		return err
	}
	memzero.Zero(s.secret[:])
	return nil
}
