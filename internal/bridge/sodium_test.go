package bridge_test

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionbridge/internal/bridge"
	"sessionbridge/internal/community"
	"sessionbridge/internal/crypto"
	"sessionbridge/internal/managed"
)

const testDomain = "SessionGroupKickedMessage"

type party struct {
	sk    []byte
	pk    []byte
	curve []byte
}

func newParty(t *testing.T, fill byte) party {
	t.Helper()
	sk := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{fill}, ed25519.SeedSize))
	pk := sk.Public().(ed25519.PublicKey)
	curve, err := crypto.Ed25519PKToCurve25519(pk)
	require.NoError(t, err)
	return party{sk: sk, pk: pk, curve: curve[:]}
}

func byteArrays(t *testing.T, b *bridge.Bridge, h *managed.Heap, bufs ...[]byte) managed.Ref {
	t.Helper()
	elems := make([]managed.Ref, len(bufs))
	for i, buf := range bufs {
		elems[i] = mustBytes(t, b, h, buf)
	}
	arr, err := h.NewObjectArray(elems)
	require.NoError(t, err)
	return arr
}

func TestEd25519KeyPair(t *testing.T) {
	b, h := newBridge(t)
	seed := bytes.Repeat([]byte{7}, 32)

	obj, err := b.Ed25519KeyPair(h, mustBytes(t, b, h, seed))
	require.NoError(t, err)
	kp, err := b.KeyPairFromManaged(h, obj)
	require.NoError(t, err)

	want := ed25519.NewKeyFromSeed(seed)
	assert.Equal(t, []byte(want), kp.Secret.Slice())
	assert.Equal(t, []byte(want.Public().(ed25519.PublicKey)), kp.Public.Slice())

	_, err = b.Ed25519KeyPair(h, mustBytes(t, b, h, seed[:31]))
	assert.ErrorIs(t, err, crypto.ErrInvalidSeed)
}

func TestEd25519PKToCurve25519(t *testing.T) {
	b, h := newBridge(t)
	p := newParty(t, 3)

	out, err := b.Ed25519PKToCurve25519(h, mustBytes(t, b, h, p.pk))
	require.NoError(t, err)
	got, err := b.FromManagedBytes(h, out)
	require.NoError(t, err)
	assert.Equal(t, p.curve, got)
}

func TestEd25519PKToCurve25519_InvalidKeyAllocatesNothing(t *testing.T) {
	b, h := newBridge(t)

	identity := make([]byte, 32)
	identity[0] = 1
	notAPoint := make([]byte, 32)
	notAPoint[0] = 2

	for name, pk := range map[string][]byte{
		"small order": identity,
		"not a point": notAPoint,
		"short":       {1, 2, 3},
	} {
		in := mustBytes(t, b, h, pk)
		before := h.Len()

		out, err := b.Ed25519PKToCurve25519(h, in)
		assert.ErrorIs(t, err, bridge.ErrInvalidKeyConversion, name)
		assert.True(t, out.IsNull(), name)
		assert.Equal(t, before, h.Len(), name)
	}
}

func TestEncryptForMultiple_RoundTrip(t *testing.T) {
	b, h := newBridge(t)
	sender := newParty(t, 1)
	alice := newParty(t, 2)
	bob := newParty(t, 3)

	enc, err := b.EncryptForMultipleSimple(h,
		byteArrays(t, b, h, []byte("for alice"), []byte("for bob")),
		byteArrays(t, b, h, alice.curve, append([]byte{0x05}, bob.curve...)),
		mustBytes(t, b, h, sender.sk),
		mustString(t, h, testDomain),
	)
	require.NoError(t, err)
	require.False(t, enc.IsNull())

	for _, tc := range []struct {
		who  party
		want string
	}{{alice, "for alice"}, {bob, "for bob"}} {
		out, err := b.DecryptForMultipleSimple(h,
			enc,
			mustBytes(t, b, h, tc.who.sk),
			mustBytes(t, b, h, sender.pk),
			mustString(t, h, testDomain),
		)
		require.NoError(t, err)
		require.False(t, out.IsNull())
		pt, err := b.FromManagedBytes(h, out)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(pt))
	}
}

func TestEncryptForMultiple_CountMismatchIsNull(t *testing.T) {
	b, h, logs := newLoggedBridge(t)
	sender := newParty(t, 1)
	r1, r2 := newParty(t, 2), newParty(t, 3)

	before := h.Len()
	msgs := byteArrays(t, b, h, []byte("a"), []byte("b"), []byte("c"))
	rcpts := byteArrays(t, b, h, r1.curve, r2.curve)
	sk := mustBytes(t, b, h, sender.sk)
	dom := mustString(t, h, testDomain)
	allocated := h.Len() - before

	enc, err := b.EncryptForMultipleSimple(h, msgs, rcpts, sk, dom)
	require.NoError(t, err)
	assert.True(t, enc.IsNull())
	assert.Equal(t, before+allocated, h.Len())
	assert.Contains(t, logs.String(), "encrypt for multiple skipped")
}

func TestEncryptForMultiple_CallerNonceIsDeterministic(t *testing.T) {
	b, h := newBridge(t)
	sender := newParty(t, 1)
	r := newParty(t, 2)
	nonce := bytes.Repeat([]byte{9}, crypto.NonceSize)

	seal := func() []byte {
		enc, err := b.EncryptForMultipleSimpleNonce(h,
			byteArrays(t, b, h, []byte("m")),
			byteArrays(t, b, h, r.curve),
			mustBytes(t, b, h, sender.sk),
			mustString(t, h, testDomain),
			mustBytes(t, b, h, nonce),
		)
		require.NoError(t, err)
		out, err := b.FromManagedBytes(h, enc)
		require.NoError(t, err)
		return out
	}
	assert.Equal(t, seal(), seal())
}

func TestEncryptForMultiple_RandomNonceFromLibrary(t *testing.T) {
	random := bytes.NewReader(bytes.Repeat([]byte{4}, 2*crypto.NonceSize))
	b := bridge.New(bridge.NewLibrary(crypto.Native{}, random), community.URLs{}, nil)
	defer b.Close()
	h := managed.NewHeap()
	sender := newParty(t, 1)
	r := newParty(t, 2)

	encrypt := func() []byte {
		enc, err := b.EncryptForMultipleSimple(h,
			byteArrays(t, b, h, []byte("m")),
			byteArrays(t, b, h, r.curve),
			mustBytes(t, b, h, sender.sk),
			mustString(t, h, testDomain),
		)
		require.NoError(t, err)
		out, err := b.FromManagedBytes(h, enc)
		require.NoError(t, err)
		return out
	}
	first := encrypt()
	assert.Equal(t, first, encrypt())

	_, err := b.EncryptForMultipleSimple(h,
		byteArrays(t, b, h, []byte("m")),
		byteArrays(t, b, h, r.curve),
		mustBytes(t, b, h, sender.sk),
		mustString(t, h, testDomain),
	)
	assert.Error(t, err, "random source exhausted")
	assert.Zero(t, h.Outstanding())
}

func TestEncryptForMultipleText(t *testing.T) {
	b, h := newBridge(t)
	sender := newParty(t, 5)
	r := newParty(t, 6)
	recipientID := "05" + hex.EncodeToString(r.curve)

	enc, err := b.EncryptForMultipleText(h,
		mustString(t, h, recipientID+"-1"),
		mustString(t, h, recipientID),
		mustBytes(t, b, h, sender.sk),
		mustString(t, h, testDomain),
	)
	require.NoError(t, err)

	out, err := b.DecryptForMultipleSimple(h,
		enc,
		mustBytes(t, b, h, r.sk),
		mustBytes(t, b, h, sender.pk),
		mustString(t, h, testDomain),
	)
	require.NoError(t, err)
	pt, err := b.FromManagedBytes(h, out)
	require.NoError(t, err)
	assert.Equal(t, recipientID+"-1", string(pt))
	assert.True(t, crypto.IsKickedMessage(string(pt)))
}

func TestDecryptForMultiple_NotForUsIsNull(t *testing.T) {
	b, h := newBridge(t)
	sender := newParty(t, 1)
	r := newParty(t, 2)
	stranger := newParty(t, 3)

	enc, err := b.EncryptForMultipleSimple(h,
		byteArrays(t, b, h, []byte("secret")),
		byteArrays(t, b, h, r.curve),
		mustBytes(t, b, h, sender.sk),
		mustString(t, h, testDomain),
	)
	require.NoError(t, err)

	out, err := b.DecryptForMultipleSimple(h,
		enc,
		mustBytes(t, b, h, stranger.sk),
		mustBytes(t, b, h, sender.pk),
		mustString(t, h, testDomain),
	)
	require.NoError(t, err)
	assert.True(t, out.IsNull())

	out, err = b.DecryptForMultipleSimple(h,
		enc,
		mustBytes(t, b, h, r.sk),
		mustBytes(t, b, h, sender.pk),
		mustString(t, h, "OtherDomain"),
	)
	require.NoError(t, err)
	assert.True(t, out.IsNull())
}

func TestDecryptForMultiple_MalformedEnvelope(t *testing.T) {
	b, h := newBridge(t)
	r := newParty(t, 2)

	_, err := b.DecryptForMultipleSimple(h,
		mustBytes(t, b, h, []byte{0xde, 0xad}),
		mustBytes(t, b, h, r.sk),
		mustBytes(t, b, h, r.pk),
		mustString(t, h, testDomain),
	)
	assert.ErrorIs(t, err, crypto.ErrMalformedEnvelope)
}

func TestSecretCopiesLeaveManagedInputsIntact(t *testing.T) {
	b, h := newBridge(t)
	sender := newParty(t, 7)
	alice := newParty(t, 8)
	seed := bytes.Repeat([]byte{9}, ed25519.SeedSize)

	seedRef := mustBytes(t, b, h, seed)
	_, err := b.Ed25519KeyPair(h, seedRef)
	require.NoError(t, err)
	got, err := b.FromManagedBytes(h, seedRef)
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	skRef := mustBytes(t, b, h, sender.sk)
	enc, err := b.EncryptForMultipleSimple(h,
		byteArrays(t, b, h, []byte("hi")),
		byteArrays(t, b, h, alice.curve),
		skRef,
		mustString(t, h, testDomain),
	)
	require.NoError(t, err)
	got, err = b.FromManagedBytes(h, skRef)
	require.NoError(t, err)
	assert.Equal(t, []byte(sender.sk), got)

	aliceSK := mustBytes(t, b, h, alice.sk)
	out, err := b.DecryptForMultipleSimple(h, enc, aliceSK, mustBytes(t, b, h, sender.pk), mustString(t, h, testDomain))
	require.NoError(t, err)
	require.False(t, out.IsNull())
	got, err = b.FromManagedBytes(h, aliceSK)
	require.NoError(t, err)
	assert.Equal(t, []byte(alice.sk), got)
}
