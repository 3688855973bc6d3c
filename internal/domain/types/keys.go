package types

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// Ed25519Seed is the 32-byte seed an Ed25519 key pair is derived from.
type Ed25519Seed [32]byte

// Slice returns the seed as a []byte.
func (s Ed25519Seed) Slice() []byte { return s[:] }

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// Ed25519Private is an Ed25519 signing private key (seed || public key).
type Ed25519Private [64]byte

// Slice returns the key as a []byte.
func (k Ed25519Private) Slice() []byte { return k[:] }

// Seed returns the seed half of the private key.
func (k Ed25519Private) Seed() Ed25519Seed {
	var s Ed25519Seed
	copy(s[:], k[:32])
	return s
}

// KeyPair is an Ed25519 key pair as handed across the boundary.
type KeyPair struct {
	Public Ed25519Public  `json:"pub"`
	Secret Ed25519Private `json:"secret"`
}
