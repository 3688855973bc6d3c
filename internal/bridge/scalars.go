package bridge

import (
	"sessionbridge/internal/managed"
)

// ToManagedString returns s as a managed string.
func (b *Bridge) ToManagedString(env Env, s string) (managed.Ref, error) {
	return env.NewString(s)
}

// TextFromManaged returns the contents of a managed string.
func (b *Bridge) TextFromManaged(env Env, str managed.Ref) (string, error) {
	return env.StringValue(str)
}

// OptionalInt64 boxes v, or returns null when v is nil.
func (b *Bridge) OptionalInt64(env Env, v *int64) (managed.Ref, error) {
	if v == nil {
		return managed.Null, nil
	}
	return env.NewObject(managed.ClassLong, *v)
}

// OptionalText returns *v as a managed string, or null when v is nil.
func (b *Bridge) OptionalText(env Env, v *string) (managed.Ref, error) {
	if v == nil {
		return managed.Null, nil
	}
	return env.NewString(*v)
}

// Int64FromManaged unboxes a nullable managed Long.
func (b *Bridge) Int64FromManaged(env Env, boxed managed.Ref) (*int64, error) {
	if boxed.IsNull() {
		return nil, nil
	}
	v, err := env.LongField(boxed, "value")
	if err != nil {
		return nil, err
	}
	return &v, nil
}
