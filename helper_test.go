package statem_test

import (
	"bytes"

	"github.com/statem-go/statem"
)

// logA returns an action that appends one line to buf every time it runs.
func logA(buf *bytes.Buffer, txt string) statem.Action {
	return statem.NewAction(txt, func() error {
		buf.WriteString(txt)
		buf.WriteByte('\n')
		return nil
	})
}

// recorder captures the enter/exit trace of the most recent dispatch.
type recorder[S, E comparable] struct {
	statem.ExtensionBase[S, E]
	trace string
}

func (r *recorder[S, E]) EnteredInitialState(_ statem.Info[S, E], _ S, ctx *statem.TransitionContext[S, E]) {
	r.trace = ctx.Trace()
}

func (r *recorder[S, E]) ExecutedTransition(_ statem.Info[S, E], ctx *statem.TransitionContext[S, E]) {
	r.trace = ctx.Trace()
}

// viewCollector grabs the state views handed to a reporter.
type viewCollector[S, E comparable] struct {
	name    string
	states  []statem.StateView[S, E]
	initial *S
}

func (v *viewCollector[S, E]) Report(name string, states []statem.StateView[S, E], initial *S) error {
	v.name = name
	v.states = states
	v.initial = initial
	return nil
}

func (v *viewCollector[S, E]) byID(id S) statem.StateView[S, E] {
	for _, s := range v.states {
		if s.ID() == id {
			return s
		}
	}
	return nil
}
