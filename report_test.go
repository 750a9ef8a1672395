package statem_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statem-go/statem"
)

func newReportMachine(t *testing.T) *statem.PassiveMachine[string, int] {
	t.Helper()
	m := statem.NewPassiveMachine[string, int]("report")
	m.DefineHierarchyOn(stA).
		WithHistoryType(statem.HistoryDeep).
		WithInitialSubState(stB).
		WithSubState(stC)
	m.In(stB).
		On(ev1).
		If(statem.NewGuard("door closed", func() (bool, error) { return true, nil })).
		Goto(stC).
		Execute(
			statem.NewAction("heat on", func() error { return nil }),
			statem.NewAction("beep", func() error { return nil }),
		).
		On(ev2).
		Execute(statem.NewAction("tick", func() error { return nil }))
	m.In(stD).On(evToA).Goto(stA)
	require.NoError(t, m.Initialize(stA))
	return m
}

func TestCSVReport(t *testing.T) {
	m := newReportMachine(t)
	var buf bytes.Buffer
	require.NoError(t, m.Report(statem.NewCSVReporter[string, int](&buf)))

	want := "Source;Event;Guard;Target;Actions\n" +
		"B;1;door closed;C;heat on, beep\n" +
		"B;2;;internal transition;tick\n" +
		"D;5;;A;\n"
	assert.Equal(t, want, buf.String())
}

func TestPlantUMLReport(t *testing.T) {
	m := newReportMachine(t)
	var buf bytes.Buffer
	rep := statem.NewPlantUMLReporter[string, int](&buf).
		EventNames(func(e int) string {
			return map[int]string{ev1: "close", ev2: "tick", evToA: "back"}[e]
		})
	require.NoError(t, m.Report(rep))
	out := buf.String()

	assert.Contains(t, out, "@startuml report")
	assert.Contains(t, out, "@enduml")
	assert.Contains(t, out, "state A {")
	assert.Contains(t, out, "[*] --> B")
	assert.Contains(t, out, "B --> C : close[door closed] / heat on, beep")
	assert.Contains(t, out, "B : tick / tick")
	assert.Contains(t, out, "D --> A[H*] : back", "deep history target carries the [H*] marker")
}

func TestReportHandsOverNameAndInitialState(t *testing.T) {
	m := newReportMachine(t)
	views := &viewCollector[string, int]{}
	require.NoError(t, m.Report(views))

	assert.Equal(t, "report", views.name)
	require.NotNil(t, views.initial)
	assert.Equal(t, stA, *views.initial)
	assert.Len(t, views.states, 4)
}
