package store

import (
	"errors"
	"path/filepath"
	"sync"

	"sessionbridge/internal/codec"
	"sessionbridge/internal/domain"
	"sessionbridge/internal/util/memzero"
)

const keyPairFilename = "keypair.cbor.enc"

// ErrNoKeyPair is returned by LoadKeyPair before any key pair was saved.
var ErrNoKeyPair = errors.New("no key pair saved; run keypair init first")

// KeyPairFileStore persists the sealed host key pair to disk.
type KeyPairFileStore struct {
	dir string
	kdf KDF
	mu  sync.Mutex
}

// NewKeyPairFileStore returns a KeyPairFileStore rooted at dir that seals
// with argon2id.
func NewKeyPairFileStore(dir string) *KeyPairFileStore {
	return &KeyPairFileStore{dir: dir, kdf: KDFArgon2id}
}

// WithKDF selects the KDF used by later saves. Loading follows whatever KDF
// the file records.
func (s *KeyPairFileStore) WithKDF(kdf KDF) *KeyPairFileStore {
	s.kdf = kdf
	return s
}

// SaveKeyPair seals kp under passphrase and writes it to disk.
func (s *KeyPairFileStore) SaveKeyPair(passphrase string, kp domain.KeyPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := codec.Marshal(kp)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)

	blob, err := seal(passphrase, raw, s.kdf)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, keyPairFilename), blob, 0o600)
}

// LoadKeyPair reads and opens the sealed key pair.
func (s *KeyPairFileStore) LoadKeyPair(passphrase string) (domain.KeyPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := readFile(filepath.Join(s.dir, keyPairFilename))
	if err != nil {
		return domain.KeyPair{}, err
	}
	if blob == nil {
		return domain.KeyPair{}, ErrNoKeyPair
	}
	raw, err := open(passphrase, blob)
	if err != nil {
		return domain.KeyPair{}, err
	}
	defer memzero.Zero(raw)

	var kp domain.KeyPair
	if err := codec.Unmarshal(raw, &kp); err != nil {
		return domain.KeyPair{}, err
	}
	return kp, nil
}

// Compile-time assertion that KeyPairFileStore implements domain.KeyPairStore.
var _ domain.KeyPairStore = (*KeyPairFileStore)(nil)
