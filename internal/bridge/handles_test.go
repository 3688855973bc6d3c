package bridge_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionbridge/internal/bridge"
	"sessionbridge/internal/config"
	"sessionbridge/internal/domain"
	"sessionbridge/internal/managed"
)

func testSecretKey() []byte {
	return ed25519.NewKeyFromSeed(make([]byte, ed25519.SeedSize))
}

func TestHandleTable_ReleaseEachKindOnce(t *testing.T) {
	tbl := bridge.NewHandleTable()

	base, err := config.NewBase(domain.NamespaceContacts, nil)
	require.NoError(t, err)
	sig, err := config.NewSig(domain.NamespaceGroupInfo, testSecretKey(), nil)
	require.NoError(t, err)

	hb := tbl.RegisterBase(base)
	hs := tbl.RegisterSig(sig)
	assert.NotEqual(t, hb, hs)
	assert.Equal(t, 2, tbl.Len())

	require.NoError(t, tbl.Release(hs, domain.ConfigKindSig))
	require.NoError(t, tbl.Release(hb, domain.ConfigKindBase))
	assert.True(t, base.Closed())
	assert.True(t, sig.Closed())

	// The second release never reaches a destructor.
	assert.ErrorIs(t, tbl.Release(hs, domain.ConfigKindSig), bridge.ErrStaleHandle)
	assert.ErrorIs(t, tbl.Release(hb, domain.ConfigKindBase), bridge.ErrStaleHandle)
	assert.Zero(t, tbl.Len())
}

// Releasing with a kind outside the closed set destroys nothing; the
// handle stays live and can still be released correctly, and Close
// reclaims it if nobody does.
func TestHandleTable_UnknownKindIsNoOp(t *testing.T) {
	tbl := bridge.NewHandleTable()
	base, _ := config.NewBase(domain.NamespaceContacts, nil)
	h := tbl.RegisterBase(base)

	assert.ErrorIs(t, tbl.Release(h, domain.ConfigKindUnknown), bridge.ErrUnknownConfigKind)
	assert.ErrorIs(t, tbl.Release(h, domain.ConfigKind(42)), bridge.ErrUnknownConfigKind)
	assert.False(t, base.Closed())
	assert.Equal(t, 1, tbl.Len())

	require.NoError(t, tbl.Close())
	assert.True(t, base.Closed())
	assert.Zero(t, tbl.Len())
}

func TestHandleTable_KindMismatch(t *testing.T) {
	tbl := bridge.NewHandleTable()
	sig, _ := config.NewSig(domain.NamespaceGroupKeys, testSecretKey(), nil)
	h := tbl.RegisterSig(sig)

	assert.ErrorIs(t, tbl.Release(h, domain.ConfigKindBase), bridge.ErrConfigKindMismatch)
	assert.False(t, sig.Closed())

	kind, err := tbl.Kind(h)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigKindSig, kind)
	require.NoError(t, tbl.Release(h, kind))
}

func TestHandleTable_NeverIssued(t *testing.T) {
	tbl := bridge.NewHandleTable()
	assert.ErrorIs(t, tbl.Release(99, domain.ConfigKindBase), bridge.ErrStaleHandle)
	_, err := tbl.Base(99)
	assert.ErrorIs(t, err, bridge.ErrStaleHandle)
}

func TestFreeConfig_DispatchesOnManagedClass(t *testing.T) {
	b, h := newBridge(t)

	baseObj, err := b.NewConfigBase(h, domain.NamespaceUserProfile, managed.Null)
	require.NoError(t, err)
	sigObj, err := b.NewConfigSig(h, domain.NamespaceGroupInfo, mustBytes(t, b, h, testSecretKey()), managed.Null)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Handles().Len())

	require.NoError(t, b.FreeConfig(h, sigObj))
	require.NoError(t, b.FreeConfig(h, baseObj))
	assert.Zero(t, b.Handles().Len())

	assert.ErrorIs(t, b.FreeConfig(h, sigObj), bridge.ErrStaleHandle)
	assert.ErrorIs(t, b.FreeConfig(h, baseObj), bridge.ErrStaleHandle)
}

func TestFreeConfig_ForeignClassDestroysNothing(t *testing.T) {
	b, h := newBridge(t)

	baseObj, err := b.NewConfigBase(h, domain.NamespaceContacts, managed.Null)
	require.NoError(t, err)
	ptr, err := h.LongField(baseObj, "pointer")
	require.NoError(t, err)

	const groupKeys managed.Class = "session.GroupKeysConfig"
	require.NoError(t, h.Define(managed.ClassDef{Name: groupKeys, Super: managed.ClassConfig}))
	foreign, err := h.NewObject(groupKeys, ptr)
	require.NoError(t, err)

	assert.ErrorIs(t, b.FreeConfig(h, foreign), bridge.ErrUnknownConfigKind)
	assert.Equal(t, 1, b.Handles().Len())
	require.NoError(t, b.FreeConfig(h, baseObj))
}

func TestConfig_ValuesAndDump(t *testing.T) {
	b, h := newBridge(t)

	sigObj, err := b.NewConfigSig(h, domain.NamespaceGroupMembers, mustBytes(t, b, h, testSecretKey()), managed.Null)
	require.NoError(t, err)
	require.NoError(t, b.ConfigSet(h, sigObj, mustString(t, h, "name"), mustBytes(t, b, h, []byte("grp\x00"))))

	got, err := b.ConfigGet(h, sigObj, mustString(t, h, "name"))
	require.NoError(t, err)
	v, err := b.FromManagedBytes(h, got)
	require.NoError(t, err)
	assert.Equal(t, []byte("grp\x00"), v)

	missing, err := b.ConfigGet(h, sigObj, mustString(t, h, "absent"))
	require.NoError(t, err)
	assert.True(t, missing.IsNull())

	dump, err := b.ConfigDump(h, sigObj)
	require.NoError(t, err)
	restored, err := b.NewConfigSig(h, domain.NamespaceGroupMembers, mustBytes(t, b, h, testSecretKey()), dump)
	require.NoError(t, err)

	keys, err := b.ConfigKeys(h, restored)
	require.NoError(t, err)
	first, err := h.ObjectArrayElement(keys, 0)
	require.NoError(t, err)
	name, err := h.StringValue(first)
	require.NoError(t, err)
	assert.Equal(t, "name", name)

	// A signed dump cannot be loaded as an unsigned object.
	_, err = b.NewConfigBase(h, domain.NamespaceGroupMembers, dump)
	assert.ErrorIs(t, err, config.ErrBadDump)

	require.NoError(t, b.FreeConfig(h, sigObj))
	assert.ErrorIs(t, b.ConfigSet(h, sigObj, mustString(t, h, "k"), mustBytes(t, b, h, nil)), bridge.ErrStaleHandle)
}
