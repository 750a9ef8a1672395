package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotYAMLRoundTrip(t *testing.T) {
	cur := "C"
	snap := &Snapshot[string]{
		Current: &cur,
		History: map[string]string{"A": "C", "A1": "A11"},
	}

	var buf bytes.Buffer
	require.NoError(t, snap.Write(&buf))

	loaded, err := ReadSnapshot[string](&buf)
	require.NoError(t, err)
	require.NotNil(t, loaded.Current)
	assert.Equal(t, "C", *loaded.Current)
	assert.Equal(t, snap.History, loaded.History)
}

func TestEmptySnapshotRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSnapshot[string]().Write(&buf))

	loaded, err := ReadSnapshot[string](&buf)
	require.NoError(t, err)
	assert.Nil(t, loaded.Current)
	assert.Empty(t, loaded.History)
}

func TestSnapshotSaverLoaderContract(t *testing.T) {
	snap := NewSnapshot[string]()
	require.NoError(t, snap.SaveCurrentState("B", true))
	require.NoError(t, snap.SaveHistoryStates(map[string]string{"A": "B"}))

	id, ok, err := snap.LoadCurrentState()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "B", id)

	hist, err := snap.LoadHistoryStates()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "B"}, hist)

	// an uninitialized current must survive the same way
	require.NoError(t, snap.SaveCurrentState("", false))
	_, ok, err = snap.LoadCurrentState()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadSnapshotRejectsGarbage(t *testing.T) {
	_, err := ReadSnapshot[string](bytes.NewBufferString(":\n:::"))
	assert.Error(t, err)
}
