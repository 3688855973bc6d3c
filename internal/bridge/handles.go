package bridge

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"sessionbridge/internal/config"
	"sessionbridge/internal/domain"
)

// Handle is the opaque value the managed side stores for a config object.
type Handle int64

// configEntry owns exactly one config object; kind says which field is set.
type configEntry struct {
	kind domain.ConfigKind
	base *config.Base
	sig  *config.Sig
}

func (e configEntry) destroy() error {
	switch e.kind {
	case domain.ConfigKindSig:
		return e.sig.Close()
	default:
		return e.base.Close()
	}
}

// HandleTable maps handles to the config objects they own. A handle is
// live from registration until its one successful Release.
type HandleTable struct {
	mu   sync.Mutex
	next Handle
	live map[Handle]configEntry
}

// NewHandleTable returns an empty table.
func NewHandleTable() *HandleTable {
	return &HandleTable{live: make(map[Handle]configEntry)}
}

// RegisterBase takes ownership of c.
func (t *HandleTable) RegisterBase(c *config.Base) Handle {
	return t.register(configEntry{kind: domain.ConfigKindBase, base: c})
}

// RegisterSig takes ownership of c.
func (t *HandleTable) RegisterSig(c *config.Sig) Handle {
	return t.register(configEntry{kind: domain.ConfigKindSig, sig: c, base: c.Base})
}

func (t *HandleTable) register(e configEntry) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.live[t.next] = e
	return t.next
}

// Kind returns the kind h was registered with.
func (t *HandleTable) Kind(h Handle) (domain.ConfigKind, error) {
	e, err := t.lookup(h)
	if err != nil {
		return domain.ConfigKindUnknown, err
	}
	return e.kind, nil
}

// Base returns the unsigned view of the object behind h. For a signing
// object this is its embedded Base.
func (t *HandleTable) Base(h Handle) (*config.Base, error) {
	e, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	return e.base, nil
}

// Sig returns the signing object behind h.
func (t *HandleTable) Sig(h Handle) (*config.Sig, error) {
	e, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	if e.kind != domain.ConfigKindSig {
		return nil, fmt.Errorf("%w: handle %d is %s", ErrConfigKindMismatch, h, e.kind)
	}
	return e.sig, nil
}

// Dump serialises the object behind h, signing it when it is a signing
// object.
func (t *HandleTable) Dump(h Handle) ([]byte, error) {
	e, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	if e.kind == domain.ConfigKindSig {
		return e.sig.Dump()
	}
	return e.base.Dump()
}

// Release destroys the object behind h using the destructor for kind. The
// handle is dead afterwards even if the destructor fails.
//
// A kind outside the closed set returns ErrUnknownConfigKind and a kind
// that differs from the registered one returns ErrConfigKindMismatch; in
// both cases nothing is destroyed and h stays live.
func (t *HandleTable) Release(h Handle, kind domain.ConfigKind) error {
	switch kind {
	case domain.ConfigKindBase, domain.ConfigKindSig:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownConfigKind, kind)
	}

	t.mu.Lock()
	e, ok := t.live[h]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrStaleHandle, h)
	}
	if e.kind != kind {
		t.mu.Unlock()
		return fmt.Errorf("%w: handle %d is %s, released as %s", ErrConfigKindMismatch, h, e.kind, kind)
	}
	delete(t.live, h)
	t.mu.Unlock()

	return e.destroy()
}

// Len returns the number of live handles.
func (t *HandleTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Close destroys every live object, oldest first.
func (t *HandleTable) Close() error {
	t.mu.Lock()
	live := t.live
	t.live = make(map[Handle]configEntry)
	t.mu.Unlock()

	handles := make([]Handle, 0, len(live))
	for h := range live {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	var errs []error
	for _, h := range handles {
		if err := live[h].destroy(); err != nil {
			errs = append(errs, fmt.Errorf("handle %d: %w", h, err))
		}
	}
	return errors.Join(errs...)
}

func (t *HandleTable) lookup(h Handle) (configEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.live[h]
	if !ok {
		return configEntry{}, fmt.Errorf("%w: %d", ErrStaleHandle, h)
	}
	return e, nil
}
