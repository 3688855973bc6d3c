package config

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"sessionbridge/internal/codec"
	"sessionbridge/internal/domain"
	"sessionbridge/internal/util/memzero"
)

var (
	// ErrClosed is returned by every method of a closed object.
	ErrClosed = errors.New("config object closed")
	// ErrBadDump is returned when a dump cannot be decoded or belongs elsewhere.
	ErrBadDump = errors.New("invalid config dump")
)

// dumpV1 is the on-wire form of a Base.
type dumpV1 struct {
	Version   int               `cbor:"v"`
	Namespace domain.Namespace  `cbor:"ns"`
	Seqno     int64             `cbor:"seq"`
	Data      map[string][]byte `cbor:"d"`
}

const dumpVersion = 1

// Base is an unsigned config object.
type Base struct {
	mu        sync.Mutex
	namespace domain.Namespace
	seqno     int64
	data      map[string][]byte
	closed    bool
}

// NewBase returns an empty object for ns, or restores one from dump when
// dump is non-empty.
func NewBase(ns domain.Namespace, dump []byte) (*Base, error) {
	b := &Base{namespace: ns, data: make(map[string][]byte)}
	if len(dump) == 0 {
		return b, nil
	}
	var d dumpV1
	if err := codec.Unmarshal(dump, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDump, err)
	}
	if d.Version > dumpVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadDump, d.Version)
	}
	if d.Namespace != ns {
		return nil, fmt.Errorf("%w: namespace %d, want %d", ErrBadDump, d.Namespace, ns)
	}
	b.seqno = d.Seqno
	for k, v := range d.Data {
		b.data[k] = v
	}
	return b, nil
}

// Namespace returns the storage namespace the object belongs to.
func (b *Base) Namespace() domain.Namespace { return b.namespace }

// Seqno returns the number of local changes applied so far.
func (b *Base) Seqno() (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0, ErrClosed
	}
	return b.seqno, nil
}

// Set stores a copy of value under key and bumps the sequence number.
func (b *Base) Set(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.data[key] = append([]byte(nil), value...)
	b.seqno++
	return nil
}

// Get returns a copy of the value under key.
func (b *Base) Get(key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, false, ErrClosed
	}
	v, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Keys returns the stored keys in sorted order.
func (b *Base) Keys() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Dump serialises the object.
func (b *Base) Dump() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	return codec.Marshal(dumpV1{
		Version:   dumpVersion,
		Namespace: b.namespace,
		Seqno:     b.seqno,
		Data:      b.data,
	})
}

// Close wipes the stored values. A second Close returns ErrClosed.
func (b *Base) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	for k, v := range b.data {
		memzero.Zero(v)
		delete(b.data, k)
	}
	b.closed = true
	return nil
}

// Closed reports whether Close has run.
func (b *Base) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
