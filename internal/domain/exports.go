package domain

import (
	interfaces "sessionbridge/internal/domain/interfaces"
	types "sessionbridge/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionID          = types.SessionID
	Namespace          = types.Namespace
	ConfigKind         = types.ConfigKind
	X25519Public       = types.X25519Public
	Ed25519Seed        = types.Ed25519Seed
	Ed25519Public      = types.Ed25519Public
	Ed25519Private     = types.Ed25519Private
	KeyPair            = types.KeyPair
	ProfilePicture     = types.ProfilePicture
	CommunityReference = types.CommunityReference
	GroupMember        = types.GroupMember
	SwarmAuth          = types.SwarmAuth
	GroupDisplayInfo   = types.GroupDisplayInfo
	ExpiryMode         = types.ExpiryMode
	ExpiryPolicy       = types.ExpiryPolicy
	MemberStatus       = types.MemberStatus
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Crypto        = interfaces.Crypto
	CommunityURLs = interfaces.CommunityURLs
	KeyPairStore  = interfaces.KeyPairStore
	DumpStore     = interfaces.DumpStore
	KeyService    = interfaces.KeyService
)

// Constants re-exported for callers that only import domain.
const (
	SessionIDLength = types.SessionIDLength

	ExpiryNone      = types.ExpiryNone
	ExpiryAfterSend = types.ExpiryAfterSend
	ExpiryAfterRead = types.ExpiryAfterRead

	StatusNotSent = types.StatusNotSent
	StatusPending = types.StatusPending
	StatusFailed  = types.StatusFailed

	ConfigKindUnknown = types.ConfigKindUnknown
	ConfigKindBase    = types.ConfigKindBase
	ConfigKindSig     = types.ConfigKindSig

	NamespaceDefault              = types.NamespaceDefault
	NamespaceUserProfile          = types.NamespaceUserProfile
	NamespaceContacts             = types.NamespaceContacts
	NamespaceConvoInfoVolatile    = types.NamespaceConvoInfoVolatile
	NamespaceUserGroups           = types.NamespaceUserGroups
	NamespaceGroupMessages        = types.NamespaceGroupMessages
	NamespaceGroupKeys            = types.NamespaceGroupKeys
	NamespaceGroupInfo            = types.NamespaceGroupInfo
	NamespaceGroupMembers         = types.NamespaceGroupMembers
	NamespaceRevokedGroupMessages = types.NamespaceRevokedGroupMessages
)

// Function aliases for the variant constructors.
var (
	NoExpiry              = types.NoExpiry
	ExpireAfterSend       = types.ExpireAfterSend
	ExpireAfterRead       = types.ExpireAfterRead
	MemberStatusFromFlags = types.MemberStatusFromFlags
)
