package bridge_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionbridge/internal/bridge"
	"sessionbridge/internal/domain"
	"sessionbridge/internal/managed"
)

var testSessionID = "05" + strings.Repeat("0a1b", 16)

func TestUserPic_RoundTrip(t *testing.T) {
	b, h := newBridge(t)
	pic := domain.ProfilePicture{URL: "http://files.example/abc", Key: []byte{0, 1, 0, 2}}

	obj, err := b.ToManagedUserPic(h, pic)
	require.NoError(t, err)
	got, err := b.UserPicFromManaged(h, obj)
	require.NoError(t, err)
	assert.Equal(t, pic, got)
}

func TestCommunity_RoundTrip(t *testing.T) {
	b, h := newBridge(t)
	c := domain.CommunityReference{
		BaseURL:   "https://open.example.org",
		Room:      "lounge",
		PubkeyHex: strings.Repeat("ab", 32),
	}

	obj, err := b.ToManagedCommunity(h, c)
	require.NoError(t, err)
	assert.Equal(t, "lounge", stringAt(t, h, obj, "room"))

	got, err := b.CommunityFromManaged(h, obj)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestGroupMember_RoundTrip(t *testing.T) {
	b, h := newBridge(t)
	m := domain.GroupMember{
		SessionID:      domain.SessionID(testSessionID),
		Name:           " Ünïcode name ",
		ProfilePicture: domain.ProfilePicture{URL: "", Key: []byte{}},
		Admin:          true,
		Invite:         domain.StatusFailed,
		Promotion:      domain.StatusPending,
	}

	obj, err := b.ToManagedGroupMember(h, m)
	require.NoError(t, err)

	pending, err := h.BoolField(obj, "promotionPending")
	require.NoError(t, err)
	assert.True(t, pending)
	failed, err := h.BoolField(obj, "inviteFailed")
	require.NoError(t, err)
	assert.True(t, failed)

	got, err := b.GroupMemberFromManaged(h, obj)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestGroupMember_MalformedSessionIDIsRejected(t *testing.T) {
	b, h := newBridge(t)
	pic := domain.ProfilePicture{URL: "u", Key: []byte{1}}

	for _, id := range []string{"abc", testSessionID[:65], testSessionID + "0", "05" + strings.Repeat("zz", 32)} {
		before := h.Len()
		obj, err := b.ToManagedGroupMember(h, domain.GroupMember{SessionID: domain.SessionID(id), ProfilePicture: pic})
		assert.ErrorIs(t, err, bridge.ErrMalformedSessionID, id)
		assert.True(t, obj.IsNull(), id)
		assert.Equal(t, before, h.Len(), id)

		managedPic, err := b.ToManagedUserPic(h, pic)
		require.NoError(t, err)
		raw, err := h.NewObject(managed.ClassGroupMember,
			mustString(t, h, id), mustString(t, h, "n"), managedPic,
			false, false, false, false, false,
		)
		require.NoError(t, err)
		_, err = b.GroupMemberFromManaged(h, raw)
		assert.ErrorIs(t, err, bridge.ErrMalformedSessionID, id)
	}
}

func TestGroupMember_NullProfilePictureIsMissing(t *testing.T) {
	b, h := newBridge(t)
	require.NoError(t, h.Define(managed.ClassDef{
		Name: "test.LooseMember",
		Fields: []managed.Field{
			{Name: "sessionId", Type: managed.ClassString},
			{Name: "name", Type: managed.ClassString},
			{Name: "profilePicture", Nullable: true},
		},
	}))
	obj, err := h.NewObject("test.LooseMember", mustString(t, h, testSessionID), mustString(t, h, "n"), managed.Null)
	require.NoError(t, err)

	_, err = b.GroupMemberFromManaged(h, obj)
	assert.ErrorIs(t, err, bridge.ErrMissingField)
	assert.Contains(t, err.Error(), "profilePicture")
}

func TestSwarmAuth_Outbound(t *testing.T) {
	b, h := newBridge(t)
	obj, err := b.ToManagedSwarmAuth(h, domain.SwarmAuth{
		Subaccount:    "sub",
		SubaccountSig: "subsig",
		Signature:     "sig",
	})
	require.NoError(t, err)

	assert.True(t, h.IsInstanceOf(obj, managed.ClassSwarmAuth))
	assert.Equal(t, "sub", stringAt(t, h, obj, "subaccount"))
	assert.Equal(t, "subsig", stringAt(t, h, obj, "subaccountSig"))
	assert.Equal(t, "sig", stringAt(t, h, obj, "signature"))
}

func TestKeyPair_RoundTrip(t *testing.T) {
	b, h := newBridge(t)
	var kp domain.KeyPair
	for i := range kp.Secret {
		kp.Secret[i] = byte(i)
	}
	copy(kp.Public[:], kp.Secret[32:])

	obj, err := b.ToManagedKeyPair(h, kp)
	require.NoError(t, err)
	got, err := b.KeyPairFromManaged(h, obj)
	require.NoError(t, err)
	assert.Equal(t, kp, got)
}

func TestGroupDisplayInfo_Optionals(t *testing.T) {
	b, h := newBridge(t)
	created := int64(1700000000)
	desc := "about"

	full, err := b.ToManagedGroupDisplayInfo(h, domain.GroupDisplayInfo{
		ID:          domain.SessionID("03" + testSessionID[2:]),
		Created:     &created,
		Name:        "group",
		Description: &desc,
		Destroyed:   true,
	})
	require.NoError(t, err)

	createdRef, err := h.ObjectField(full, "created")
	require.NoError(t, err)
	got, err := b.Int64FromManaged(h, createdRef)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created, *got)

	timerRef, err := h.ObjectField(full, "expiryTimer")
	require.NoError(t, err)
	assert.True(t, timerRef.IsNull())

	assert.Equal(t, "about", stringAt(t, h, full, "description"))
	destroyed, err := h.BoolField(full, "destroyed")
	require.NoError(t, err)
	assert.True(t, destroyed)

	idRef, err := h.ObjectField(full, "id")
	require.NoError(t, err)
	id, err := b.SessionIDFromManaged(h, idRef)
	require.NoError(t, err)
	assert.Equal(t, "03"+testSessionID[2:], id.String())
}

func TestGroupDisplayInfo_BadIDLeavesNothingBehind(t *testing.T) {
	b, h := newBridge(t)
	before := h.Len()

	_, err := b.ToManagedGroupDisplayInfo(h, domain.GroupDisplayInfo{ID: "05ab", Name: "g"})
	assert.ErrorIs(t, err, bridge.ErrMalformedSessionID)
	assert.Equal(t, before, h.Len())
}

func TestStringList_KeepsOrder(t *testing.T) {
	b, h := newBridge(t)
	arr, err := b.ToManagedStringList(h, []string{"c", "a", "b"})
	require.NoError(t, err)

	var got []string
	n, err := h.ArrayLength(arr)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		el, err := h.ObjectArrayElement(arr, i)
		require.NoError(t, err)
		s, err := h.StringValue(el)
		require.NoError(t, err)
		got = append(got, s)
	}
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestGroupDisplayInfo_RejectedIDDropsLocals(t *testing.T) {
	b, h := newBridge(t)
	before := h.Len()

	_, err := b.ToManagedGroupDisplayInfo(h, domain.GroupDisplayInfo{
		ID:   domain.SessionID("05" + strings.Repeat("zz", 32)),
		Name: "g",
	})
	assert.ErrorIs(t, err, managed.ErrIllegalArgument)
	assert.Equal(t, before, h.Len())
}
