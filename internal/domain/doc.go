// Package domain defines the native data model that crosses the managed
// boundary and the contracts of the collaborators behind it.
// It contains plain types (records, variants, identifiers) and interfaces only.
package domain
