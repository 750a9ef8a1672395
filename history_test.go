package statem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statem-go/statem"
)

const (
	evToB = iota + 1
	evEnterA
	evToA1
	evToA11
	evToA12
)

// buildHistoryMachine wires A{A1{A11, A12 initial}, A2 initial} and the
// separate root B, with transitions into A and into its various descendants.
func buildHistoryMachine(t *testing.T, history statem.HistoryType) *statem.PassiveMachine[string, int] {
	t.Helper()
	m := statem.NewPassiveMachine[string, int]("history")
	m.DefineHierarchyOn("A").
		WithHistoryType(history).
		WithInitialSubState("A2").
		WithSubState("A1")
	m.DefineHierarchyOn("A1").
		WithInitialSubState("A12").
		WithSubState("A11")

	m.In("A").On(evToB).Goto("B")
	m.In("B").
		On(evEnterA).Goto("A").
		On(evToA1).Goto("A1").
		On(evToA11).Goto("A11").
		On(evToA12).Goto("A12")

	require.NoError(t, m.Initialize("B"))
	return m
}

func TestHistory(t *testing.T) {
	var tests = []struct {
		name       string
		history    statem.HistoryType
		events     []int
		finalState string
	}{
		{
			name:       "first entry with shallow history goes to initial",
			history:    statem.HistoryShallow,
			events:     []int{evEnterA},
			finalState: "A2",
		},
		{
			name:       "first entry with deep history goes to initial",
			history:    statem.HistoryDeep,
			events:     []int{evEnterA},
			finalState: "A2",
		},
		{
			name:       "no history always goes to initial",
			history:    statem.HistoryNone,
			events:     []int{evToA11, evToB, evEnterA},
			finalState: "A2",
		},
		{
			name:       "shallow history remembers the direct child only",
			history:    statem.HistoryShallow,
			events:     []int{evToA11, evToB, evEnterA},
			finalState: "A12",
		},
		{
			name:       "shallow history after initial visit",
			history:    statem.HistoryShallow,
			events:     []int{evEnterA, evToB, evEnterA},
			finalState: "A2",
		},
		{
			name:       "deep history remembers the whole chain",
			history:    statem.HistoryDeep,
			events:     []int{evToA11, evToB, evEnterA},
			finalState: "A11",
		},
		{
			name:       "deep history after a shallower visit",
			history:    statem.HistoryDeep,
			events:     []int{evToA12, evToB, evEnterA},
			finalState: "A12",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := buildHistoryMachine(t, test.history)
			require.NoError(t, m.Start())
			id, ok := m.CurrentStateID()
			require.True(t, ok)
			assert.Equal(t, "B", id)
			for _, ev := range test.events {
				require.NoError(t, m.Fire(ev))
			}
			id, ok = m.CurrentStateID()
			require.True(t, ok)
			assert.Equal(t, test.finalState, id)
		})
	}
}

// the memo both seeds from the initial sub-state and follows the active child
func TestLastActiveChildFollowsActivity(t *testing.T) {
	m := buildHistoryMachine(t, statem.HistoryDeep)
	require.NoError(t, m.Start())

	hist := savedHistory(t, m)
	assert.Equal(t, "A2", hist["A"])
	assert.Equal(t, "A12", hist["A1"])

	require.NoError(t, m.Fire(evToA11))
	hist = savedHistory(t, m)
	assert.Equal(t, "A1", hist["A"])
	assert.Equal(t, "A11", hist["A1"])

	require.NoError(t, m.Fire(evToB))
	hist = savedHistory(t, m)
	assert.Equal(t, "A1", hist["A"])
	assert.Equal(t, "A11", hist["A1"])
}
