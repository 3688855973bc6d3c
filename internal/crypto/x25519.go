package crypto

import (
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/curve25519"

	"sessionbridge/internal/domain"
	"sessionbridge/internal/util/memzero"
)

// ErrInvalidPublicKey is returned when bytes do not encode a usable public key.
var ErrInvalidPublicKey = errors.New("invalid public key")

// sessionIDPrefix marks an X25519 key in its session identifier form.
const sessionIDPrefix = 0x05

// Ed25519PKToCurve25519 maps an Ed25519 public key to the Montgomery form
// used by X25519. Encodings that are not points, and small-order points,
// are rejected.
func Ed25519PKToCurve25519(pk []byte) (domain.X25519Public, error) {
	var out domain.X25519Public
	if len(pk) != ed25519.PublicKeySize {
		return out, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidPublicKey, ed25519.PublicKeySize, len(pk))
	}
	p, err := new(edwards25519.Point).SetBytes(pk)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if new(edwards25519.Point).MultByCofactor(p).Equal(edwards25519.NewIdentityPoint()) == 1 {
		return out, fmt.Errorf("%w: small-order point", ErrInvalidPublicKey)
	}
	copy(out[:], p.BytesMontgomery())
	return out, nil
}

// Ed25519SKToCurve25519 returns the clamped X25519 scalar for an Ed25519
// secret key (seed || public key). The caller owns and should wipe the result.
func Ed25519SKToCurve25519(sk []byte) ([32]byte, error) {
	var out [32]byte
	if len(sk) != ed25519.PrivateKeySize {
		return out, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidSecretKey, ed25519.PrivateKeySize, len(sk))
	}
	h := sha512.Sum512(sk[:ed25519.SeedSize])
	copy(out[:], h[:32])
	memzero.Zero(h[:])
	clamp(&out)
	return out, nil
}

// x25519Public returns the public key for the X25519 scalar priv.
func x25519Public(priv []byte) ([]byte, error) {
	return curve25519.X25519(priv, curve25519.Basepoint)
}

// recipientKey accepts an X25519 public key as 32 raw bytes, as 33 bytes
// carrying the session identifier prefix, or as the hex text of either.
func recipientKey(r []byte) ([]byte, error) {
	switch len(r) {
	case curve25519.PointSize:
		return r, nil
	case curve25519.PointSize + 1:
		if r[0] != sessionIDPrefix {
			return nil, fmt.Errorf("%w: unexpected prefix %#02x", ErrInvalidPublicKey, r[0])
		}
		return r[1:], nil
	case 2 * curve25519.PointSize, 2 * (curve25519.PointSize + 1):
		raw, err := hex.DecodeString(string(r))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
		}
		return recipientKey(raw)
	default:
		return nil, fmt.Errorf("%w: unexpected length %d", ErrInvalidPublicKey, len(r))
	}
}

func clamp(k *[32]byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
