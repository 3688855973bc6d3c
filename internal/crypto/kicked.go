package crypto

import "regexp"

// KickedDomain separates the envelopes telling members they were removed
// from a group.
const KickedDomain = "SessionGroupKickedMessage"

var kickedPattern = regexp.MustCompile(`^05\w{64}-\d+$`)

// IsKickedMessage reports whether text has the "<session id>-<generation>"
// shape carried inside a kicked envelope.
func IsKickedMessage(text string) bool {
	return kickedPattern.MatchString(text)
}
