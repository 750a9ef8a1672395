package statem

// Extension observes the machine's lifecycle. Extensions are invoked in
// registration order at fixed points; pointer parameters are rewrite hooks,
// where the last extension's mutation is the one the machine acts on.
//
// A panic inside an extension is itself funnelled through the machine's
// exception channel. Embed ExtensionBase to implement only the callbacks of
// interest.
type Extension[S, E comparable] interface {
	// EventQueued is called when a driver accepts an event at the queue tail.
	EventQueued(info Info[S, E], event E, arg any)
	// EventQueuedWithPriority is called when a driver accepts an event at the queue head.
	EventQueuedWithPriority(info Info[S, E], event E, arg any)

	// StartedStateMachine and StoppedStateMachine bracket the driver lifecycle.
	StartedStateMachine(info Info[S, E])
	StoppedStateMachine(info Info[S, E])

	// InitializingStateMachine is called before the initial state is
	// recorded; the extension may rewrite it.
	InitializingStateMachine(info Info[S, E], initial *S)
	InitializedStateMachine(info Info[S, E], initial S)
	EnteringInitialState(info Info[S, E], initial S)
	EnteredInitialState(info Info[S, E], initial S, ctx *TransitionContext[S, E])

	// FiringEvent is called before dispatch; the extension may rewrite the
	// event id and argument.
	FiringEvent(info Info[S, E], event *E, arg *any)
	FiredEvent(info Info[S, E], ctx *TransitionContext[S, E])

	// SwitchedState is called after the current state changed. old is nil
	// when the machine entered its initial state.
	SwitchedState(info Info[S, E], old *S, new S)

	// SkippedTransition is called when no transition fired for an event.
	SkippedTransition(info Info[S, E], event E, arg any)
	// ExecutingTransition is called the moment a firing transition is
	// confirmed, before any exit action runs.
	ExecutingTransition(info Info[S, E], ctx *TransitionContext[S, E])
	ExecutedTransition(info Info[S, E], ctx *TransitionContext[S, E])

	// Handling/Handled pairs bracket user-code errors. The Handling hook may
	// rewrite the error; the rewritten value is what reaches the exception
	// channel and the Handled hook.
	HandlingGuardException(info Info[S, E], ctx *TransitionContext[S, E], err *error)
	HandledGuardException(info Info[S, E], ctx *TransitionContext[S, E], err error)
	HandlingTransitionException(info Info[S, E], ctx *TransitionContext[S, E], err *error)
	HandledTransitionException(info Info[S, E], ctx *TransitionContext[S, E], err error)
	HandlingEntryActionException(info Info[S, E], ctx *TransitionContext[S, E], stateID S, err *error)
	HandledEntryActionException(info Info[S, E], ctx *TransitionContext[S, E], stateID S, err error)
	HandlingExitActionException(info Info[S, E], ctx *TransitionContext[S, E], stateID S, err *error)
	HandledExitActionException(info Info[S, E], ctx *TransitionContext[S, E], stateID S, err error)
}

// ExtensionBase is a no-op implementation of Extension, meant for embedding.
type ExtensionBase[S, E comparable] struct{}

func (ExtensionBase[S, E]) EventQueued(Info[S, E], E, any)                  {}
func (ExtensionBase[S, E]) EventQueuedWithPriority(Info[S, E], E, any)     {}
func (ExtensionBase[S, E]) StartedStateMachine(Info[S, E])                 {}
func (ExtensionBase[S, E]) StoppedStateMachine(Info[S, E])                 {}
func (ExtensionBase[S, E]) InitializingStateMachine(Info[S, E], *S)        {}
func (ExtensionBase[S, E]) InitializedStateMachine(Info[S, E], S)          {}
func (ExtensionBase[S, E]) EnteringInitialState(Info[S, E], S)             {}
func (ExtensionBase[S, E]) EnteredInitialState(Info[S, E], S, *TransitionContext[S, E]) {
}
func (ExtensionBase[S, E]) FiringEvent(Info[S, E], *E, *any)                 {}
func (ExtensionBase[S, E]) FiredEvent(Info[S, E], *TransitionContext[S, E])  {}
func (ExtensionBase[S, E]) SwitchedState(Info[S, E], *S, S)                  {}
func (ExtensionBase[S, E]) SkippedTransition(Info[S, E], E, any)             {}
func (ExtensionBase[S, E]) ExecutingTransition(Info[S, E], *TransitionContext[S, E]) {
}
func (ExtensionBase[S, E]) ExecutedTransition(Info[S, E], *TransitionContext[S, E]) {
}
func (ExtensionBase[S, E]) HandlingGuardException(Info[S, E], *TransitionContext[S, E], *error) {
}
func (ExtensionBase[S, E]) HandledGuardException(Info[S, E], *TransitionContext[S, E], error) {
}
func (ExtensionBase[S, E]) HandlingTransitionException(Info[S, E], *TransitionContext[S, E], *error) {
}
func (ExtensionBase[S, E]) HandledTransitionException(Info[S, E], *TransitionContext[S, E], error) {
}
func (ExtensionBase[S, E]) HandlingEntryActionException(Info[S, E], *TransitionContext[S, E], S, *error) {
}
func (ExtensionBase[S, E]) HandledEntryActionException(Info[S, E], *TransitionContext[S, E], S, error) {
}
func (ExtensionBase[S, E]) HandlingExitActionException(Info[S, E], *TransitionContext[S, E], S, *error) {
}
func (ExtensionBase[S, E]) HandledExitActionException(Info[S, E], *TransitionContext[S, E], S, error) {
}
