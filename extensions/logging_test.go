package extensions

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingWritesLifecycleRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := newOnOff(t)
	m.AddExtension(NewLogging[string, int](logger))
	require.NoError(t, m.Initialize("root"))
	require.NoError(t, m.Start())
	require.NoError(t, m.Fire(1))
	require.NoError(t, m.Fire(99))
	require.NoError(t, m.Stop())

	out := buf.String()
	assert.Contains(t, out, "state machine started")
	assert.Contains(t, out, "machine=onoff")
	assert.Contains(t, out, "entered initial state")
	assert.Contains(t, out, "switched state")
	assert.Contains(t, out, "transition declined")
	assert.Contains(t, out, "state machine stopped")
}
