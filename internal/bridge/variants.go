package bridge

import (
	"fmt"

	"sessionbridge/internal/domain"
	"sessionbridge/internal/managed"
)

const expirySecondsField = "expirySeconds"

// ToManagedExpiry encodes p. None is the shared singleton; the timed modes
// carry their duration.
func (b *Bridge) ToManagedExpiry(env Env, p domain.ExpiryPolicy) (managed.Ref, error) {
	p = p.Normalize()
	switch p.Mode {
	case domain.ExpiryAfterSend:
		return env.NewObject(managed.ClassExpiryAfterSend, p.Seconds)
	case domain.ExpiryAfterRead:
		return env.NewObject(managed.ClassExpiryAfterRead, p.Seconds)
	default:
		return env.Singleton(managed.ClassExpiryNone)
	}
}

// ExpiryFromManaged decodes a managed expiry mode by its runtime class.
// Any class outside the closed set decodes to no expiry and is not
// reported as an error.
func (b *Bridge) ExpiryFromManaged(env Env, obj managed.Ref) (domain.ExpiryPolicy, error) {
	if obj.IsNull() {
		return domain.NoExpiry(), fmt.Errorf("expiry mode: %w", ErrMissingField)
	}
	class, err := env.ClassOf(obj)
	if err != nil {
		return domain.NoExpiry(), err
	}

	var mode domain.ExpiryMode
	switch class {
	case managed.ClassExpiryNone:
		return domain.NoExpiry(), nil
	case managed.ClassExpiryAfterSend:
		mode = domain.ExpiryAfterSend
	case managed.ClassExpiryAfterRead:
		mode = domain.ExpiryAfterRead
	default:
		b.log.Debug("expiry mode decoded as none",
			"class", string(class),
			"error", ErrUnknownVariant,
		)
		return domain.NoExpiry(), nil
	}

	secs, err := env.LongField(obj, expirySecondsField)
	if err != nil {
		return domain.NoExpiry(), err
	}
	return domain.ExpiryPolicy{Mode: mode, Seconds: secs}, nil
}

// statusFromManaged rebuilds a tri-state status from its pending and failed
// flag fields.
func statusFromManaged(env Env, obj managed.Ref, pendingField, failedField string) (domain.MemberStatus, error) {
	pending, err := env.BoolField(obj, pendingField)
	if err != nil {
		return domain.StatusNotSent, err
	}
	failed, err := env.BoolField(obj, failedField)
	if err != nil {
		return domain.StatusNotSent, err
	}
	return domain.MemberStatusFromFlags(pending, failed), nil
}
