package extensions

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statem-go/statem"
)

func newOnOff(t *testing.T) *statem.PassiveMachine[string, int] {
	t.Helper()
	m := statem.NewPassiveMachine[string, int]("onoff")
	m.DefineHierarchyOn("root").WithInitialSubState("off").WithSubState("on")
	m.In("off").On(1).Goto("on")
	m.In("on").On(2).Goto("off")
	return m
}

func TestMetricsCountActivity(t *testing.T) {
	reg := prometheus.NewRegistry()
	mx := NewMetrics[string, int](reg)

	m := newOnOff(t)
	m.AddExtension(mx)
	require.NoError(t, m.Initialize("root"))
	require.NoError(t, m.Start())

	require.NoError(t, m.Fire(1))
	require.NoError(t, m.Fire(2))
	require.NoError(t, m.Fire(99)) // no transition for this one

	name := m.Name()
	assert.Equal(t, 3.0, testutil.ToFloat64(mx.queued.WithLabelValues(name)))
	assert.Equal(t, 2.0, testutil.ToFloat64(mx.fired.WithLabelValues(name)))
	assert.Equal(t, 1.0, testutil.ToFloat64(mx.declined.WithLabelValues(name)))
	// initial entry plus two transitions
	assert.Equal(t, 3.0, testutil.ToFloat64(mx.switched.WithLabelValues(name)))
	assert.Equal(t, 0.0, testutil.ToFloat64(mx.exceptions.WithLabelValues(name)))
}

func TestMetricsCountExceptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	mx := NewMetrics[string, int](reg)

	m := newOnOff(t)
	m.In("on").ExecuteOnEntry(statem.NewAction("bad", func() error {
		panic("entry gone wrong")
	}))
	m.AddExtension(mx)
	m.OnTransitionException(func(error) {})
	require.NoError(t, m.Initialize("root"))
	require.NoError(t, m.Start())

	require.NoError(t, m.Fire(1))
	assert.Equal(t, 1.0, testutil.ToFloat64(mx.exceptions.WithLabelValues(m.Name())))
}
