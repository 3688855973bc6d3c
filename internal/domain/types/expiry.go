package types

// ExpiryMode is the closed set of disappearing-message modes.
type ExpiryMode uint8

const (
	ExpiryNone ExpiryMode = iota
	ExpiryAfterSend
	ExpiryAfterRead
)

// String returns the mode name.
func (m ExpiryMode) String() string {
	switch m {
	case ExpiryAfterSend:
		return "after_send"
	case ExpiryAfterRead:
		return "after_read"
	default:
		return "none"
	}
}

// ExpiryPolicy is a mode plus its duration in seconds.
// Seconds is always zero when Mode is ExpiryNone.
type ExpiryPolicy struct {
	Mode    ExpiryMode
	Seconds int64
}

// NoExpiry returns the policy for messages that never expire.
func NoExpiry() ExpiryPolicy { return ExpiryPolicy{Mode: ExpiryNone} }

// ExpireAfterSend returns a policy counting from the moment of sending.
func ExpireAfterSend(seconds int64) ExpiryPolicy {
	return ExpiryPolicy{Mode: ExpiryAfterSend, Seconds: seconds}
}

// ExpireAfterRead returns a policy counting from the moment of reading.
func ExpireAfterRead(seconds int64) ExpiryPolicy {
	return ExpiryPolicy{Mode: ExpiryAfterRead, Seconds: seconds}
}

// Normalize zeroes the duration of a None policy and maps any mode outside
// the closed set to None.
func (p ExpiryPolicy) Normalize() ExpiryPolicy {
	switch p.Mode {
	case ExpiryAfterSend, ExpiryAfterRead:
		return p
	default:
		return NoExpiry()
	}
}
