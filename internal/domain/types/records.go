package types

// ProfilePicture is a download URL plus the key that decrypts the download.
type ProfilePicture struct {
	URL string
	Key []byte
}

// CommunityReference names a room on a community server.
type CommunityReference struct {
	BaseURL   string
	Room      string
	PubkeyHex string
}

// GroupMember is one entry of a group's member list.
type GroupMember struct {
	SessionID      SessionID
	Name           string
	ProfilePicture ProfilePicture
	Admin          bool
	Invite         MemberStatus
	Promotion      MemberStatus
}

// SwarmAuth is a sub-account credential produced by the group keys config.
type SwarmAuth struct {
	Subaccount    string
	SubaccountSig string
	Signature     string
}

// GroupDisplayInfo is the read-only summary of a group shown in lists.
type GroupDisplayInfo struct {
	ID             SessionID
	Created        *int64
	ExpiryTimer    *int64
	Name           string
	Description    *string
	Destroyed      bool
	ProfilePicture ProfilePicture
}
