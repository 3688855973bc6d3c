package community_test

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionbridge/internal/community"
)

var testPubkey = bytes.Repeat([]byte{0xa1}, community.PubkeyLength)

func TestParseThenFullURL_RoundTrip(t *testing.T) {
	full := "https://open.example.org/session-dev?public_key=" + hex.EncodeToString(testPubkey)

	base, room, pk, err := community.ParseFullURL(full)
	require.NoError(t, err)
	assert.Equal(t, "https://open.example.org", base)
	assert.Equal(t, "session-dev", room)
	assert.Equal(t, testPubkey, pk)

	ref, err := community.New(base, room, hex.EncodeToString(pk))
	require.NoError(t, err)
	assert.Equal(t, full, community.FullURL(ref))
}

func TestParseFullURL_CanonicalisesBase(t *testing.T) {
	cases := map[string]string{
		"HTTPS://Open.Example.ORG:443/r/Lobby?public_key=": "https://open.example.org",
		"http://10.0.0.1:80/Lobby/?public_key=":            "http://10.0.0.1",
		"http://10.0.0.1:8080/Lobby?public_key=":           "http://10.0.0.1:8080",
	}
	for in, want := range cases {
		base, room, _, err := community.ParseFullURL(in + hex.EncodeToString(testPubkey))
		require.NoError(t, err, in)
		assert.Equal(t, want, base, in)
		assert.Equal(t, "Lobby", room, in)
	}
}

func TestParseFullURL_AcceptsBase64Pubkey(t *testing.T) {
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding} {
		full := "https://example.org/room?public_key=" + enc.EncodeToString(testPubkey)
		_, _, pk, err := community.ParseFullURL(full)
		require.NoError(t, err)
		assert.Equal(t, testPubkey, pk)
	}
}

func TestParseFullURL_Base64PlusIsLiteral(t *testing.T) {
	key := bytes.Repeat([]byte{0xfb}, community.PubkeyLength)
	enc := base64.StdEncoding.EncodeToString(key)
	require.Contains(t, enc, "+")

	queries := []string{
		"public_key=" + enc,
		"x=1&public_key=" + enc,
		"public_key=" + strings.ReplaceAll(enc, "+", "%2B"),
	}
	for _, q := range queries {
		_, _, pk, err := community.ParseFullURL("https://example.org/room?" + q)
		require.NoError(t, err, q)
		assert.Equal(t, key, pk, q)
	}
}

func TestParseFullURL_Rejects(t *testing.T) {
	pk := hex.EncodeToString(testPubkey)
	cases := map[string]error{
		"ftp://example.org/room?public_key=" + pk:   community.ErrInvalidURL,
		"https:///room?public_key=" + pk:            community.ErrInvalidURL,
		"https://example.org/?public_key=" + pk:     community.ErrInvalidRoom,
		"https://example.org/a/b?public_key=" + pk:  community.ErrInvalidRoom,
		"https://example.org/room":                  community.ErrInvalidPubkey,
		"https://example.org/room?public_key=abcd":  community.ErrInvalidPubkey,
		"https://example.org/room?public_key=" + pk[:62] + "zz": community.ErrInvalidPubkey,
	}
	for in, want := range cases {
		_, _, _, err := community.ParseFullURL(in)
		assert.ErrorIs(t, err, want, in)
	}
}

func TestNew_Validation(t *testing.T) {
	pk := hex.EncodeToString(testPubkey)

	_, err := community.New("https://example.org/path", "room", pk)
	assert.ErrorIs(t, err, community.ErrInvalidURL)

	_, err = community.New("https://example.org", "bad room", pk)
	assert.ErrorIs(t, err, community.ErrInvalidRoom)

	_, err = community.New("https://example.org", "room", pk[:10])
	assert.ErrorIs(t, err, community.ErrInvalidPubkey)

	ref, err := community.New("https://Example.org/", "room", "A1"+pk[2:])
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", ref.BaseURL)
	assert.Equal(t, pk, ref.PubkeyHex)
}
