package bridge

import (
	"crypto/rand"
	"io"
	"log/slog"
	"sync"

	"sessionbridge/internal/domain"
)

// Library is the process-wide shared context of the native crypto library.
// Every call that touches it holds mu for its whole duration.
type Library struct {
	mu     sync.Mutex
	crypto domain.Crypto
	random io.Reader
}

// NewLibrary wraps c. random supplies nonces; nil means crypto/rand.
func NewLibrary(c domain.Crypto, random io.Reader) *Library {
	if random == nil {
		random = rand.Reader
	}
	return &Library{crypto: c, random: random}
}

// do runs fn with the library lock held.
func (l *Library) do(fn func(c domain.Crypto, random io.Reader) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.crypto, l.random)
}

// Bridge carries the state shared by boundary calls.
type Bridge struct {
	lib     *Library
	urls    domain.CommunityURLs
	handles *HandleTable
	log     *slog.Logger
}

// New returns a Bridge forwarding crypto calls to lib and URL grammar to
// urls. A nil logger discards output.
func New(lib *Library, urls domain.CommunityURLs, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Bridge{
		lib:     lib,
		urls:    urls,
		handles: NewHandleTable(),
		log:     logger.With("component", "bridge"),
	}
}

// Handles returns the table owning the config objects handed out by b.
func (b *Bridge) Handles() *HandleTable { return b.handles }

// Close destroys every config object still held by the handle table.
func (b *Bridge) Close() error { return b.handles.Close() }
