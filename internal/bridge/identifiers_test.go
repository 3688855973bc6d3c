package bridge_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionbridge/internal/bridge"
	"sessionbridge/internal/community"
	"sessionbridge/internal/domain"
	"sessionbridge/internal/managed"
)

func TestSessionID_Length(t *testing.T) {
	b, h := newBridge(t)

	obj, err := b.ToManagedSessionID(h, testSessionID)
	require.NoError(t, err)
	require.False(t, obj.IsNull())
	assert.True(t, h.IsInstanceOf(obj, managed.ClassSessionID))

	got, err := b.SessionIDFromManaged(h, obj)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID(testSessionID), got)

	for _, s := range []string{testSessionID[:65], testSessionID + "0", ""} {
		obj, err := b.ToManagedSessionID(h, s)
		assert.NoError(t, err, "length %d", len(s))
		assert.True(t, obj.IsNull(), "length %d", len(s))
	}
}

func TestSessionID_FactoryRejectionIsAnError(t *testing.T) {
	b, h := newBridge(t)
	_, err := b.ToManagedSessionID(h, "05"+strings.Repeat("xy", 32))
	assert.ErrorIs(t, err, managed.ErrIllegalArgument)
}

func TestCommunityURL_ParseThenRebuild(t *testing.T) {
	b, h := newBridge(t)
	pk := strings.Repeat("c3", 32)
	full := "https://open.example.org/lounge?public_key=" + pk

	triple, err := b.ParseCommunityURL(h, mustString(t, h, full))
	require.NoError(t, err)
	assert.True(t, h.IsInstanceOf(triple, managed.ClassTriple))

	base := stringAt(t, h, triple, "first")
	room := stringAt(t, h, triple, "second")
	pkRef, err := h.ObjectField(triple, "third")
	require.NoError(t, err)
	pkBytes, err := b.FromManagedBytes(h, pkRef)
	require.NoError(t, err)
	assert.Equal(t, "https://open.example.org", base)
	assert.Equal(t, "lounge", room)
	assert.Len(t, pkBytes, community.PubkeyLength)

	info, err := b.NewCommunity(h,
		mustString(t, h, base),
		mustString(t, h, room),
		mustString(t, h, hex.EncodeToString(pkBytes)),
	)
	require.NoError(t, err)

	rebuilt, err := b.CommunityFullURL(h, info)
	require.NoError(t, err)
	s, err := h.StringValue(rebuilt)
	require.NoError(t, err)
	assert.Equal(t, full, s)
}

func TestCommunityURL_Invalid(t *testing.T) {
	b, h := newBridge(t)
	_, err := b.ParseCommunityURL(h, mustString(t, h, "https://open.example.org/lounge?public_key=abc"))
	assert.ErrorIs(t, err, community.ErrInvalidPubkey)

	_, err = b.ParseCommunityURL(h, managed.Null)
	assert.ErrorIs(t, err, managed.ErrNullReference)
}

func TestNamespace(t *testing.T) {
	cases := map[string]domain.Namespace{
		"DEFAULT":                0,
		"USER_PROFILE":           2,
		"CONTACTS":               3,
		"CONVO_INFO_VOLATILE":    4,
		"GROUPS":                 5,
		"CLOSED_GROUP_MESSAGES":  11,
		"ENCRYPTION_KEYS":        12,
		"CLOSED_GROUP_INFO":      13,
		"CLOSED_GROUP_MEMBERS":   14,
		"REVOKED_GROUP_MESSAGES": -11,
	}
	for name, want := range cases {
		got, ok := bridge.Namespace(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := bridge.Namespace("ROOT")
	assert.False(t, ok)
	assert.Len(t, bridge.NamespaceNames(), len(cases))
}
