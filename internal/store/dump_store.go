package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"sessionbridge/internal/domain"
)

const dumpDir = "configs"

// DumpFileStore keeps one config dump per namespace under <dir>/configs.
type DumpFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewDumpFileStore returns a DumpFileStore rooted at dir.
func NewDumpFileStore(dir string) *DumpFileStore {
	return &DumpFileStore{dir: dir}
}

func (s *DumpFileStore) path(ns domain.Namespace) string {
	return filepath.Join(s.dir, dumpDir, fmt.Sprintf("ns%d.dump", ns))
}

// SaveDump replaces the dump stored for ns.
func (s *DumpFileStore) SaveDump(ns domain.Namespace, dump []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFile(s.path(ns), dump, 0o600)
}

// LoadDump returns the dump stored for ns.
func (s *DumpFileStore) LoadDump(ns domain.Namespace) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path(ns))
	if err != nil || b == nil {
		return nil, false, err
	}
	return b, true, nil
}

// Compile-time assertion that DumpFileStore implements domain.DumpStore.
var _ domain.DumpStore = (*DumpFileStore)(nil)
