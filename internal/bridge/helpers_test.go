package bridge_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionbridge/internal/bridge"
	"sessionbridge/internal/community"
	"sessionbridge/internal/crypto"
	"sessionbridge/internal/managed"
)

// newBridge returns a bridge over a fresh heap and fails the test if any
// borrowed view is still outstanding when it ends.
func newBridge(t *testing.T) (*bridge.Bridge, *managed.Heap) {
	t.Helper()
	b, h, _ := newLoggedBridge(t)
	return b, h
}

func newLoggedBridge(t *testing.T) (*bridge.Bridge, *managed.Heap, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := bridge.New(bridge.NewLibrary(crypto.Native{}, nil), community.URLs{}, logger)
	h := managed.NewHeap()
	t.Cleanup(func() {
		assert.Zero(t, h.Outstanding(), "borrowed views not released")
		assert.NoError(t, b.Close())
	})
	return b, h, &logs
}

func mustString(t *testing.T, h *managed.Heap, s string) managed.Ref {
	t.Helper()
	r, err := h.NewString(s)
	require.NoError(t, err)
	return r
}

func mustBytes(t *testing.T, b *bridge.Bridge, h *managed.Heap, buf []byte) managed.Ref {
	t.Helper()
	r, err := b.ToManagedBytes(h, buf)
	require.NoError(t, err)
	return r
}

func stringAt(t *testing.T, h *managed.Heap, obj managed.Ref, field string) string {
	t.Helper()
	r, err := h.ObjectField(obj, field)
	require.NoError(t, err)
	s, err := h.StringValue(r)
	require.NoError(t, err)
	return s
}

// shortEnv reports arrays as longer than their storage.
type shortEnv struct {
	*managed.Heap
	extra int
}

func (e shortEnv) ArrayLength(arr managed.Ref) (int, error) {
	n, err := e.Heap.ArrayLength(arr)
	return n + e.extra, err
}
