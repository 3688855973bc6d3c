package types

import "encoding/hex"

// SessionIDLength is the length of a session identifier in its hex form:
// one type-prefix byte plus a 32-byte public key.
const SessionIDLength = 66

// SessionID is the hex form of a prefixed public key, e.g. "05" + 64 hex chars.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// Valid reports whether id has the exact wire length and decodes as hex.
func (id SessionID) Valid() bool {
	if len(id) != SessionIDLength {
		return false
	}
	_, err := hex.DecodeString(string(id))
	return err == nil
}

// Namespace identifies a swarm storage namespace.
type Namespace int32

// Storage namespaces used by config and group messages.
const (
	NamespaceDefault              Namespace = 0
	NamespaceUserProfile          Namespace = 2
	NamespaceContacts             Namespace = 3
	NamespaceConvoInfoVolatile    Namespace = 4
	NamespaceUserGroups           Namespace = 5
	NamespaceGroupMessages        Namespace = 11
	NamespaceGroupKeys            Namespace = 12
	NamespaceGroupInfo            Namespace = 13
	NamespaceGroupMembers         Namespace = 14
	NamespaceRevokedGroupMessages Namespace = -11
)

// ConfigKind tags the concrete type behind a config handle.
type ConfigKind uint8

const (
	// ConfigKindUnknown is the zero value and never names a live object.
	ConfigKindUnknown ConfigKind = iota
	// ConfigKindBase is an unsigned config object.
	ConfigKindBase
	// ConfigKindSig is a config object that signs its dumps.
	ConfigKindSig
)

// String returns the kind name.
func (k ConfigKind) String() string {
	switch k {
	case ConfigKindBase:
		return "ConfigBase"
	case ConfigKindSig:
		return "ConfigSig"
	default:
		return "unknown"
	}
}
