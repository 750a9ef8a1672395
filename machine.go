// Package statem implements a hierarchical finite state machine runtime.
//
// A machine is configured declaratively through [Machine.In] and
// [Machine.DefineHierarchyOn], initialized with [Machine.Initialize], and
// driven by firing events into it. States may nest; transitions are guarded,
// carry actions, and respect shallow and deep history on re-entry into
// composite states.
//
// Two drivers share the execution engine. [NewPassiveMachine] processes
// events synchronously on the caller's goroutine and is safe to re-enter
// from within actions. [NewActiveMachine] processes events on a dedicated
// worker goroutine fed by a thread-safe queue.
//
// Machines are parameterized by S and E, the comparable id types for states
// and events. Ids are opaque to the machine; use whatever enumeration the
// domain already has.
package statem

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Info is the read-only view of a machine handed to extensions.
type Info[S, E comparable] interface {
	// Name returns the machine's name.
	Name() string
	// CurrentStateID returns the current leaf state, false before the
	// initial state has been entered.
	CurrentStateID() (S, bool)
	// IsRunning reports whether the machine's driver is started.
	IsRunning() bool
}

// Machine is the surface shared by the passive and the active drivers.
type Machine[S, E comparable] interface {
	Info[S, E]

	In(id S) *StateConfigurator[S, E]
	DefineHierarchyOn(id S) *HierarchyConfigurator[S, E]

	Initialize(id S) error
	EnterInitialState() error
	Start() error
	Stop() error

	Fire(event E, args ...any) error
	FirePriority(event E, args ...any) error

	IsIn(id S) bool

	AddExtension(ext Extension[S, E])
	ClearExtensions()
	OnTransitionException(handler func(error))

	Save(saver Saver[S]) error
	Load(loader Loader[S]) error
	Report(reporter Reporter[S, E]) error
}

// stateMachine is the core shared by both drivers: the state table, the
// current state, the one-shot initial state handle, and the extension list.
type stateMachine[S, E comparable] struct {
	name        string
	states      map[S]*state[S, E]
	order       []S // state creation order, for deterministic reports
	current     *state[S, E]
	initial     *state[S, E]
	initialized bool
	entered     bool
	running     bool

	extensions        []Extension[S, E]
	exceptionHandlers []func(error)
}

func newStateMachine[S, E comparable](name string) *stateMachine[S, E] {
	if name == "" {
		name = uuid.NewString()
	}
	return &stateMachine[S, E]{
		name:   name,
		states: make(map[S]*state[S, E]),
	}
}

func (m *stateMachine[S, E]) Name() string { return m.name }

func (m *stateMachine[S, E]) CurrentStateID() (S, bool) {
	if m.current == nil {
		var zero S
		return zero, false
	}
	return m.current.id, true
}

func (m *stateMachine[S, E]) IsRunning() bool { return m.running }

// IsIn reports whether the given state is the current leaf or one of its
// ancestors.
func (m *stateMachine[S, E]) IsIn(id S) bool {
	for s := m.current; s != nil; s = s.parent {
		if s.id == id {
			return true
		}
	}
	return false
}

// lookup returns the state for id, creating it on first mention.
func (m *stateMachine[S, E]) lookup(id S) *state[S, E] {
	if s, ok := m.states[id]; ok {
		return s
	}
	s := newState[S, E](id)
	m.states[id] = s
	m.order = append(m.order, id)
	return s
}

// AddExtension registers an observer. Extensions are invoked in registration
// order.
func (m *stateMachine[S, E]) AddExtension(ext Extension[S, E]) {
	m.extensions = append(m.extensions, ext)
}

// ClearExtensions removes all registered observers.
func (m *stateMachine[S, E]) ClearExtensions() { m.extensions = nil }

// OnTransitionException subscribes to user-code errors raised by guards and
// actions during a dispatch. With at least one subscriber the errors are
// delivered here and swallowed; with none they are returned, wrapped, from
// the operation that dispatched the event.
func (m *stateMachine[S, E]) OnTransitionException(handler func(error)) {
	m.exceptionHandlers = append(m.exceptionHandlers, handler)
}

// Initialize records the initial state of the machine. It may be called
// exactly once, before the initial state is entered.
func (m *stateMachine[S, E]) Initialize(id S) error {
	if m.initialized {
		return ErrAlreadyInitialized
	}
	ctx := m.newContext(nil, nil, nil)
	m.notify(ctx, func(x Extension[S, E]) { x.InitializingStateMachine(m, &id) })
	m.initial = m.lookup(id)
	m.initialized = true
	m.notify(ctx, func(x Extension[S, E]) { x.InitializedStateMachine(m, id) })
	return m.flushExceptions(ctx)
}

// EnterInitialState walks the initial state's entry chain down to a leaf,
// which becomes the current state. It runs once; the drivers call it from
// Start when it has not been run explicitly.
func (m *stateMachine[S, E]) EnterInitialState() error {
	if !m.initialized {
		return ErrNotInitialized
	}
	if m.entered {
		return ErrAlreadyEntered
	}
	ctx := m.newContext(nil, nil, nil)
	m.notify(ctx, func(x Extension[S, E]) { x.EnteringInitialState(m, m.initial.id) })
	m.enterState(ctx, m.initial)
	leaf := m.enterByHistory(ctx, m.initial)
	m.current = leaf
	m.entered = true
	m.notify(ctx, func(x Extension[S, E]) { x.EnteredInitialState(m, m.initial.id, ctx) })
	m.notify(ctx, func(x Extension[S, E]) { x.SwitchedState(m, nil, leaf.id) })
	return m.flushExceptions(ctx)
}

func (m *stateMachine[S, E]) newContext(source *state[S, E], event *E, arg any) *TransitionContext[S, E] {
	return &TransitionContext[S, E]{machine: m, source: source, event: event, arg: arg}
}

// notify invokes call for every registered extension. A panicking extension
// does not disturb the dispatch; its fault joins the context's errors.
func (m *stateMachine[S, E]) notify(ctx *TransitionContext[S, E], call func(Extension[S, E])) {
	for _, ext := range m.extensions {
		func() {
			defer func() {
				if r := recover(); r != nil {
					ctx.raise(fmt.Errorf("extension: %v", r))
				}
			}()
			call(ext)
		}()
	}
}

// flushExceptions delivers the errors collected during a dispatch to the
// transition-exception subscribers. Without subscribers the errors are
// returned to the caller, wrapped.
func (m *stateMachine[S, E]) flushExceptions(ctx *TransitionContext[S, E]) error {
	if len(ctx.errs) == 0 {
		return nil
	}
	if len(m.exceptionHandlers) > 0 {
		for _, err := range ctx.errs {
			for _, h := range m.exceptionHandlers {
				h(err)
			}
		}
		return nil
	}
	return fmt.Errorf("state machine %s: unhandled exception: %w", m.name, errors.Join(ctx.errs...))
}
