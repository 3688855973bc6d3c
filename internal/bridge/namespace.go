package bridge

import (
	"sort"

	"sessionbridge/internal/domain"
)

// namespaces are the storage namespace identifiers the managed side asks
// for by name.
var namespaces = map[string]domain.Namespace{
	"DEFAULT":                domain.NamespaceDefault,
	"USER_PROFILE":           domain.NamespaceUserProfile,
	"CONTACTS":               domain.NamespaceContacts,
	"CONVO_INFO_VOLATILE":    domain.NamespaceConvoInfoVolatile,
	"GROUPS":                 domain.NamespaceUserGroups,
	"CLOSED_GROUP_INFO":      domain.NamespaceGroupInfo,
	"CLOSED_GROUP_MEMBERS":   domain.NamespaceGroupMembers,
	"ENCRYPTION_KEYS":        domain.NamespaceGroupKeys,
	"CLOSED_GROUP_MESSAGES":  domain.NamespaceGroupMessages,
	"REVOKED_GROUP_MESSAGES": domain.NamespaceRevokedGroupMessages,
}

// Namespace resolves a namespace name.
func Namespace(name string) (domain.Namespace, bool) {
	ns, ok := namespaces[name]
	return ns, ok
}

// NamespaceNames returns every resolvable name in sorted order.
func NamespaceNames() []string {
	names := make([]string, 0, len(namespaces))
	for n := range namespaces {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
