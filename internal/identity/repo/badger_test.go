package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBadgerSlotRoundTrip verifies save/load/delete against an in-memory
// BadgerDB.
func TestBadgerSlotRoundTrip(t *testing.T) {
	slot, err := OpenBadgerSlot(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	defer slot.Close()

	ctx := context.Background()

	_, err = slot.Load(ctx, "identity_records")
	require.ErrorIs(t, err, ErrSlotEmpty)

	require.NoError(t, slot.Save(ctx, "identity_records", []byte(`{"version":1}`)))
	payload, err := slot.Load(ctx, "identity_records")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1}`), payload)

	require.NoError(t, slot.Save(ctx, "identity_records", []byte(`{"version":2}`)))
	payload, err = slot.Load(ctx, "identity_records")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":2}`), payload, "save replaces the whole payload")

	require.NoError(t, slot.Delete(ctx, "identity_records"))
	_, err = slot.Load(ctx, "identity_records")
	require.ErrorIs(t, err, ErrSlotEmpty)
}

// TestBadgerSlotPersistsAcrossReopen verifies on-disk payloads survive a
// close and reopen.
func TestBadgerSlotPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	slot, err := OpenBadgerSlot(DefaultBadgerConfig(dir))
	require.NoError(t, err)
	require.NoError(t, slot.Save(ctx, "session_marker", []byte("token")))
	require.NoError(t, slot.Close())

	slot, err = OpenBadgerSlot(DefaultBadgerConfig(dir))
	require.NoError(t, err)
	defer slot.Close()

	payload, err := slot.Load(ctx, "session_marker")
	require.NoError(t, err)
	assert.Equal(t, []byte("token"), payload)
}

// TestBadgerSlotRequiresPath verifies the misconfiguration error.
func TestBadgerSlotRequiresPath(t *testing.T) {
	_, err := OpenBadgerSlot(BadgerConfig{})
	require.Error(t, err)
}

// TestMemorySlotIsolation verifies the test double copies payloads instead of
// aliasing caller slices.
func TestMemorySlotIsolation(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()

	payload := []byte("abc")
	require.NoError(t, slot.Save(ctx, "k", payload))
	payload[0] = 'z'

	got, err := slot.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}
