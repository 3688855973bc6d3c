package keys

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"unicode"

	"sessionbridge/internal/domain"
	"sessionbridge/internal/util/memzero"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12

	sessionIDPrefix = "05"
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Sodium is the slice of the boundary the service derives keys through.
type Sodium interface {
	Ed25519KeyPair(seed []byte) (domain.KeyPair, error)
	Ed25519PKToCurve25519(pk []byte) ([]byte, error)
}

// Service manages the host key pair using a backing store.
type Service struct {
	store  domain.KeyPairStore
	sodium Sodium
}

// New returns a key service backed by the given store.
func New(s domain.KeyPairStore, sodium Sodium) *Service {
	return &Service{store: s, sodium: sodium}
}

// GenerateKeyPair derives a key pair from seed, or from a fresh random seed
// when seed is nil, saves it sealed with passphrase and returns it with its
// session id.
func (s *Service) GenerateKeyPair(
	passphrase string,
	seed []byte,
) (domain.KeyPair, domain.SessionID, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.KeyPair{}, "", ErrWeakPassphrase
	}
	if seed == nil {
		seed = make([]byte, 32)
		if _, err := rand.Read(seed); err != nil {
			return domain.KeyPair{}, "", err
		}
		defer memzero.Zero(seed)
	}

	kp, err := s.sodium.Ed25519KeyPair(seed)
	if err != nil {
		return domain.KeyPair{}, "", err
	}
	id, err := s.sessionID(kp)
	if err != nil {
		return domain.KeyPair{}, "", err
	}
	if err := s.store.SaveKeyPair(passphrase, kp); err != nil {
		return domain.KeyPair{}, "", err
	}
	return kp, id, nil
}

// LoadKeyPair decrypts and returns the host key pair.
func (s *Service) LoadKeyPair(passphrase string) (domain.KeyPair, error) {
	return s.store.LoadKeyPair(passphrase)
}

// SessionID returns the session id of the stored key pair.
func (s *Service) SessionID(passphrase string) (domain.SessionID, error) {
	kp, err := s.store.LoadKeyPair(passphrase)
	if err != nil {
		return "", err
	}
	return s.sessionID(kp)
}

func (s *Service) sessionID(kp domain.KeyPair) (domain.SessionID, error) {
	curve, err := s.sodium.Ed25519PKToCurve25519(kp.Public.Slice())
	if err != nil {
		return "", err
	}
	return domain.SessionID(sessionIDPrefix + hex.EncodeToString(curve)), nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.KeyService.
var _ domain.KeyService = (*Service)(nil)
