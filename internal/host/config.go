package host

import (
	"errors"
	"sync"

	"sessionbridge/internal/domain"
	"sessionbridge/internal/managed"
)

// ErrConfigClosed is returned by a Config after Close.
var ErrConfigClosed = errors.New("config closed")

// Config is the managed wrapper of a native config object. Close releases
// the native object exactly once, however often it is called.
type Config struct {
	host *Host
	obj  managed.Ref

	mu       sync.RWMutex
	closed   bool
	once     sync.Once
	closeErr error
}

// NewConfigBase creates an unsigned config object, restored from dump when
// dump is non-nil.
func (h *Host) NewConfigBase(ns domain.Namespace, dump []byte) (*Config, error) {
	f := h.frame()
	defer f.free()

	d := managed.Null
	if dump != nil {
		d = f.bytes(dump)
	}
	if f.err != nil {
		return nil, f.err
	}
	obj, err := h.bridge.NewConfigBase(h.heap, ns, d)
	if err != nil {
		return nil, err
	}
	f.keep = append(f.keep, obj)
	return &Config{host: h, obj: obj}, nil
}

// NewConfigSig creates a config object that signs its dumps with the
// 64-byte Ed25519 secretKey.
func (h *Host) NewConfigSig(ns domain.Namespace, secretKey, dump []byte) (*Config, error) {
	f := h.frame()
	defer f.free()

	sk := f.bytes(secretKey)
	d := managed.Null
	if dump != nil {
		d = f.bytes(dump)
	}
	if f.err != nil {
		return nil, f.err
	}
	obj, err := h.bridge.NewConfigSig(h.heap, ns, sk, d)
	if err != nil {
		return nil, err
	}
	f.keep = append(f.keep, obj)
	return &Config{host: h, obj: obj}, nil
}

// Object returns the managed wrapper object.
func (c *Config) Object() managed.Ref { return c.obj }

// Set stores value under key.
func (c *Config) Set(key string, value []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConfigClosed
	}
	h := c.host
	f := h.frame()
	defer f.free()

	k := f.str(key)
	v := f.bytes(value)
	if f.err != nil {
		return f.err
	}
	return h.bridge.ConfigSet(h.heap, c.obj, k, v)
}

// Get returns the value under key.
func (c *Config) Get(key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, false, ErrConfigClosed
	}
	h := c.host
	f := h.frame()
	defer f.free()

	k := f.str(key)
	if f.err != nil {
		return nil, false, f.err
	}
	out := f.track(h.bridge.ConfigGet(h.heap, c.obj, k))
	v, err := h.optionalBytes(f, out)
	if err != nil || out.IsNull() {
		return nil, false, err
	}
	return v, true, nil
}

// Keys returns the stored keys in sorted order.
func (c *Config) Keys() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrConfigClosed
	}
	h := c.host
	f := h.frame()
	defer f.free()

	arr := f.track(h.bridge.ConfigKeys(h.heap, c.obj))
	if f.err != nil {
		return nil, f.err
	}
	n, err := h.heap.ArrayLength(arr)
	if err != nil {
		return nil, err
	}
	keys := make([]string, n)
	for i := range keys {
		el := f.track(h.heap.ObjectArrayElement(arr, i))
		if f.err != nil {
			return nil, f.err
		}
		if keys[i], err = h.heap.StringValue(el); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// Dump serialises the object.
func (c *Config) Dump() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrConfigClosed
	}
	h := c.host
	f := h.frame()
	defer f.free()

	out := f.track(h.bridge.ConfigDump(h.heap, c.obj))
	return h.optionalBytes(f, out)
}

// Close releases the native object. Only the first call reaches the
// bridge; later calls return its result.
func (c *Config) Close() error {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		c.closeErr = c.host.bridge.FreeConfig(c.host.heap, c.obj)
		c.host.heap.Delete(c.obj)
	})
	return c.closeErr
}
