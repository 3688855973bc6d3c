package types

// MemberStatus is the tri-state progress of an invite or a promotion.
type MemberStatus uint8

const (
	StatusNotSent MemberStatus = iota
	StatusPending
	StatusFailed
)

// String returns the status name.
func (s MemberStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFailed:
		return "failed"
	default:
		return "not_sent"
	}
}

// MemberStatusFromFlags rebuilds the status from its flattened flag pair.
// Pending wins when both flags are set; downstream state relies on this
// order, so do not swap the checks.
func MemberStatusFromFlags(pending, failed bool) MemberStatus {
	if pending {
		return StatusPending
	}
	if failed {
		return StatusFailed
	}
	return StatusNotSent
}

// Flags returns the flattened (pending, failed) pair for s.
func (s MemberStatus) Flags() (pending, failed bool) {
	return s == StatusPending, s == StatusFailed
}
