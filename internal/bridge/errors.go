package bridge

import "errors"

var (
	// ErrInvalidBuffer is returned when a copy would read past the storage
	// backing a managed array.
	ErrInvalidBuffer = errors.New("invalid buffer")
	// ErrInvalidKeyConversion is returned when an Ed25519 public key has no
	// Curve25519 equivalent.
	ErrInvalidKeyConversion = errors.New("invalid ed25519 to curve25519 conversion")
	// ErrRecipientCountMismatch marks parallel message and recipient arrays of
	// unequal length. It is logged; callers see a null result.
	ErrRecipientCountMismatch = errors.New("message and recipient counts differ")
	// ErrMalformedSessionID marks a session id of the wrong length. It is
	// logged; callers see a null result.
	ErrMalformedSessionID = errors.New("malformed session id")
	// ErrUnknownVariant marks a managed value outside a closed variant set.
	// It is logged; callers see the safe default.
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrMissingField is returned when a required managed field is null.
	ErrMissingField = errors.New("required field is null")
	// ErrStaleHandle is returned for a handle that was never issued or has
	// already been released.
	ErrStaleHandle = errors.New("stale config handle")
	// ErrUnknownConfigKind is returned by Release for a kind outside the
	// closed set. Nothing is destroyed.
	ErrUnknownConfigKind = errors.New("unknown config kind")
	// ErrConfigKindMismatch is returned when the kind passed to Release is not
	// the kind the handle was registered with. Nothing is destroyed.
	ErrConfigKindMismatch = errors.New("config kind does not match handle")
)
