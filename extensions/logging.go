// Package extensions provides ready-made observers for statem machines.
package extensions

import (
	"log/slog"

	"github.com/statem-go/statem"
)

// Logging is an extension that logs the machine lifecycle through slog.
type Logging[S, E comparable] struct {
	statem.ExtensionBase[S, E]
	logger *slog.Logger
}

// NewLogging creates a logging extension. A nil logger falls back to
// slog.Default().
func NewLogging[S, E comparable](logger *slog.Logger) *Logging[S, E] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logging[S, E]{logger: logger}
}

func (l *Logging[S, E]) StartedStateMachine(info statem.Info[S, E]) {
	l.logger.Info("state machine started", "machine", info.Name())
}

func (l *Logging[S, E]) StoppedStateMachine(info statem.Info[S, E]) {
	l.logger.Info("state machine stopped", "machine", info.Name())
}

func (l *Logging[S, E]) InitializedStateMachine(info statem.Info[S, E], initial S) {
	l.logger.Debug("state machine initialized", "machine", info.Name(), "initial", initial)
}

func (l *Logging[S, E]) EnteredInitialState(info statem.Info[S, E], initial S, ctx *statem.TransitionContext[S, E]) {
	l.logger.Debug("entered initial state", "machine", info.Name(), "initial", initial, "trace", ctx.Trace())
}

func (l *Logging[S, E]) EventQueued(info statem.Info[S, E], event E, arg any) {
	l.logger.Debug("event queued", "machine", info.Name(), "event", event)
}

func (l *Logging[S, E]) EventQueuedWithPriority(info statem.Info[S, E], event E, arg any) {
	l.logger.Debug("priority event queued", "machine", info.Name(), "event", event)
}

func (l *Logging[S, E]) SwitchedState(info statem.Info[S, E], old *S, new S) {
	if old != nil {
		l.logger.Debug("switched state", "machine", info.Name(), "from", *old, "to", new)
		return
	}
	l.logger.Debug("switched state", "machine", info.Name(), "to", new)
}

func (l *Logging[S, E]) SkippedTransition(info statem.Info[S, E], event E, arg any) {
	l.logger.Debug("transition declined", "machine", info.Name(), "event", event)
}

func (l *Logging[S, E]) ExecutedTransition(info statem.Info[S, E], ctx *statem.TransitionContext[S, E]) {
	if event, ok := ctx.Event(); ok {
		l.logger.Debug("transition executed", "machine", info.Name(), "event", event, "trace", ctx.Trace())
	}
}

func (l *Logging[S, E]) HandledGuardException(info statem.Info[S, E], ctx *statem.TransitionContext[S, E], err error) {
	l.logger.Warn("guard failed", "machine", info.Name(), "error", err)
}

func (l *Logging[S, E]) HandledTransitionException(info statem.Info[S, E], ctx *statem.TransitionContext[S, E], err error) {
	l.logger.Warn("transition action failed", "machine", info.Name(), "error", err)
}

func (l *Logging[S, E]) HandledEntryActionException(info statem.Info[S, E], ctx *statem.TransitionContext[S, E], stateID S, err error) {
	l.logger.Warn("entry action failed", "machine", info.Name(), "state", stateID, "error", err)
}

func (l *Logging[S, E]) HandledExitActionException(info statem.Info[S, E], ctx *statem.TransitionContext[S, E], stateID S, err error) {
	l.logger.Warn("exit action failed", "machine", info.Name(), "state", stateID, "error", err)
}
