package statem

import (
	"fmt"
	"strings"
)

// RecordKind distinguishes enter and exit trace records.
type RecordKind int

const (
	RecordEnter RecordKind = iota
	RecordExit
)

func (k RecordKind) String() string {
	if k == RecordEnter {
		return "Enter"
	}
	return "Exit"
}

// Record is one step of the enter/exit trace of a single dispatch.
type Record[S comparable] struct {
	Kind  RecordKind
	State S
}

func (r Record[S]) String() string { return fmt.Sprintf("%s %v", r.Kind, r.State) }

// TransitionContext carries the per-dispatch scratch state: the originating
// state, the event and its argument, and the enter/exit trace recorded while
// the transition executes. Extensions receive it for diagnostics.
type TransitionContext[S, E comparable] struct {
	machine *stateMachine[S, E]
	source  *state[S, E] // nil for the initial entry
	event   *E           // nil for the initial entry
	arg     any
	records []Record[S]
	errs    []error
}

// Source returns the state the event was dispatched from. On initial entry
// there is none.
func (c *TransitionContext[S, E]) Source() (S, bool) {
	if c.source == nil {
		var zero S
		return zero, false
	}
	return c.source.id, true
}

// Event returns the dispatched event id. On initial entry there is none.
func (c *TransitionContext[S, E]) Event() (E, bool) {
	if c.event == nil {
		var zero E
		return zero, false
	}
	return *c.event, true
}

// Argument returns the event argument, nil if none was supplied.
func (c *TransitionContext[S, E]) Argument() any { return c.arg }

// Machine returns the machine this context belongs to.
func (c *TransitionContext[S, E]) Machine() Info[S, E] { return c.machine }

// Records returns the enter/exit trace recorded so far, in execution order.
func (c *TransitionContext[S, E]) Records() []Record[S] { return c.records }

// Trace renders the recorded enter/exit steps as a single line, e.g.
// "Exit B -> Enter C".
func (c *TransitionContext[S, E]) Trace() string {
	steps := make([]string, len(c.records))
	for i, r := range c.records {
		steps[i] = r.String()
	}
	return strings.Join(steps, " -> ")
}

func (c *TransitionContext[S, E]) addRecord(kind RecordKind, id S) {
	c.records = append(c.records, Record[S]{Kind: kind, State: id})
}

// raise funnels a user-code error into the machine's exception channel. The
// machine delivers it to the exception subscribers after the dispatch, or
// returns it from Fire when there are none.
func (c *TransitionContext[S, E]) raise(err error) {
	c.errs = append(c.errs, err)
}
