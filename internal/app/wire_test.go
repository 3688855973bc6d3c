package app_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionbridge/internal/app"
	"sessionbridge/internal/domain"
	"sessionbridge/internal/store"
)

func TestNewWire_EndToEnd(t *testing.T) {
	var logs bytes.Buffer
	w, err := app.NewWire(app.Config{Home: t.TempDir(), Verbose: true, Log: &logs})
	require.NoError(t, err)
	defer w.Close()

	_, id, err := w.Keys.GenerateKeyPair("Tr0ub4dor&3xx", bytes.Repeat([]byte{5}, 32))
	require.NoError(t, err)
	assert.True(t, id.Valid())

	cfg, err := w.Host.NewConfigBase(domain.NamespaceUserProfile, nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("name", []byte("me")))
	dump, err := cfg.Dump()
	require.NoError(t, err)
	require.NoError(t, cfg.Close())
	require.NoError(t, w.Dumps.SaveDump(domain.NamespaceUserProfile, dump))

	assert.Contains(t, logs.String(), "config released")
}

func TestNewWire_UnknownKDF(t *testing.T) {
	_, err := app.NewWire(app.Config{Home: t.TempDir(), KDF: "md5"})
	assert.ErrorIs(t, err, store.ErrUnknownKDF)
}
