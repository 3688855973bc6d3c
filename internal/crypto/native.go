package crypto

import "sessionbridge/internal/domain"

// Native adapts the package functions to domain.Crypto.
type Native struct{}

// SeedKeyPair implements domain.Crypto.
func (Native) SeedKeyPair(seed []byte) (domain.KeyPair, error) {
	return SeedKeyPair(seed)
}

// Ed25519PKToCurve25519 implements domain.Crypto.
func (Native) Ed25519PKToCurve25519(pk []byte) (domain.X25519Public, error) {
	return Ed25519PKToCurve25519(pk)
}

// EncryptForMultiple implements domain.Crypto.
func (Native) EncryptForMultiple(
	messages [][]byte,
	recipients [][]byte,
	ed25519SecretKey []byte,
	domain string,
	nonce []byte,
) ([]byte, error) {
	return EncryptForMultiple(messages, recipients, ed25519SecretKey, domain, nonce)
}

// DecryptForMultiple implements domain.Crypto.
func (Native) DecryptForMultiple(
	encoded []byte,
	ed25519SecretKey []byte,
	senderEd25519Pub []byte,
	domain string,
) ([]byte, bool, error) {
	return DecryptForMultiple(encoded, ed25519SecretKey, senderEd25519Pub, domain)
}

// Compile-time assertion that Native implements domain.Crypto.
var _ domain.Crypto = Native{}
