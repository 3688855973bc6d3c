package bridge

import (
	"fmt"

	"sessionbridge/internal/config"
	"sessionbridge/internal/domain"
	"sessionbridge/internal/managed"
)

const pointerField = "pointer"

// kindOf maps a managed runtime class to the config kind it wraps.
func kindOf(class managed.Class) domain.ConfigKind {
	switch class {
	case managed.ClassConfigBase:
		return domain.ConfigKindBase
	case managed.ClassConfigSig:
		return domain.ConfigKindSig
	default:
		return domain.ConfigKindUnknown
	}
}

// NewConfigBase creates an unsigned config object for ns, restoring it from
// dump unless dump is null, and returns the managed ConfigBase wrapping its
// handle.
func (b *Bridge) NewConfigBase(env Env, ns domain.Namespace, dump managed.Ref) (managed.Ref, error) {
	raw, err := b.optionalBytes(env, dump)
	if err != nil {
		return managed.Null, err
	}
	c, err := config.NewBase(ns, raw)
	if err != nil {
		return managed.Null, err
	}
	h := b.handles.RegisterBase(c)
	return b.wrapHandle(env, managed.ClassConfigBase, h)
}

// NewConfigSig creates a signing config object for ns keyed by a 64-byte
// Ed25519 secret key.
func (b *Bridge) NewConfigSig(env Env, ns domain.Namespace, secretKey, dump managed.Ref) (managed.Ref, error) {
	sk, err := b.FromManagedBytes(env, secretKey)
	if err != nil {
		return managed.Null, err
	}
	raw, err := b.optionalBytes(env, dump)
	if err != nil {
		return managed.Null, err
	}
	c, err := config.NewSig(ns, sk, raw)
	if err != nil {
		return managed.Null, err
	}
	h := b.handles.RegisterSig(c)
	return b.wrapHandle(env, managed.ClassConfigSig, h)
}

func (b *Bridge) wrapHandle(env Env, class managed.Class, h Handle) (managed.Ref, error) {
	obj, err := env.NewObject(class, int64(h))
	if err != nil {
		// Nothing on the managed side can reach h.
		_ = b.handles.Release(h, kindOf(class))
		return managed.Null, err
	}
	return obj, nil
}

// FreeConfig releases the native object behind a managed config wrapper.
// The wrapper's runtime class selects the destructor. Callers must invoke
// it at most once per wrapper.
func (b *Bridge) FreeConfig(env Env, obj managed.Ref) error {
	class, err := env.ClassOf(obj)
	if err != nil {
		return err
	}
	ptr, err := env.LongField(obj, pointerField)
	if err != nil {
		return err
	}
	kind := kindOf(class)
	if err := b.handles.Release(Handle(ptr), kind); err != nil {
		b.log.Warn("config release failed",
			"class", string(class),
			"handle", ptr,
			"error", err,
		)
		return err
	}
	b.log.Debug("config released", "kind", kind.String(), "handle", ptr)
	return nil
}

// ConfigSet stores a copy of value under key.
func (b *Bridge) ConfigSet(env Env, obj, key, value managed.Ref) error {
	c, err := b.configBase(env, obj)
	if err != nil {
		return err
	}
	k, err := env.StringValue(key)
	if err != nil {
		return err
	}
	v, err := b.FromManagedBytes(env, value)
	if err != nil {
		return err
	}
	return c.Set(k, v)
}

// ConfigGet returns the value under key, or null when there is none.
func (b *Bridge) ConfigGet(env Env, obj, key managed.Ref) (managed.Ref, error) {
	c, err := b.configBase(env, obj)
	if err != nil {
		return managed.Null, err
	}
	k, err := env.StringValue(key)
	if err != nil {
		return managed.Null, err
	}
	v, ok, err := c.Get(k)
	if err != nil || !ok {
		return managed.Null, err
	}
	return b.ToManagedBytes(env, v)
}

// ConfigKeys returns the stored keys, sorted, as a managed string list.
func (b *Bridge) ConfigKeys(env Env, obj managed.Ref) (managed.Ref, error) {
	c, err := b.configBase(env, obj)
	if err != nil {
		return managed.Null, err
	}
	keys, err := c.Keys()
	if err != nil {
		return managed.Null, err
	}
	return b.ToManagedStringList(env, keys)
}

// ConfigDump serialises the object, signed when it is a ConfigSig.
func (b *Bridge) ConfigDump(env Env, obj managed.Ref) (managed.Ref, error) {
	h, err := b.handleOf(env, obj)
	if err != nil {
		return managed.Null, err
	}
	dump, err := b.handles.Dump(h)
	if err != nil {
		return managed.Null, err
	}
	return b.ToManagedBytes(env, dump)
}

func (b *Bridge) configBase(env Env, obj managed.Ref) (*config.Base, error) {
	h, err := b.handleOf(env, obj)
	if err != nil {
		return nil, err
	}
	return b.handles.Base(h)
}

func (b *Bridge) handleOf(env Env, obj managed.Ref) (Handle, error) {
	if !env.IsInstanceOf(obj, managed.ClassConfig) {
		return 0, fmt.Errorf("%w: not a config object", managed.ErrWrongClass)
	}
	ptr, err := env.LongField(obj, pointerField)
	if err != nil {
		return 0, err
	}
	return Handle(ptr), nil
}

func (b *Bridge) optionalBytes(env Env, arr managed.Ref) ([]byte, error) {
	if arr.IsNull() {
		return nil, nil
	}
	return b.FromManagedBytes(env, arr)
}
