package statem

import "fmt"

// StateConfigurator carries the state cursor of the declarative
// configuration syntax. Obtain one through [Machine.In]; every call either
// mutates the graph or advances the cursor. Misconfiguration panics at
// declaration time with a descriptive message.
type StateConfigurator[S, E comparable] struct {
	m *stateMachine[S, E]
	s *state[S, E]
}

// In returns the configurator for the given state, creating the state on
// first mention.
func (m *stateMachine[S, E]) In(id S) *StateConfigurator[S, E] {
	return &StateConfigurator[S, E]{m: m, s: m.lookup(id)}
}

// ExecuteOnEntry appends entry actions, to be executed in the order of
// declaration whenever the state is entered.
func (sc *StateConfigurator[S, E]) ExecuteOnEntry(actions ...Action) *StateConfigurator[S, E] {
	sc.s.entryActions = append(sc.s.entryActions, actions...)
	return sc
}

// ExecuteOnExit appends exit actions, to be executed in the order of
// declaration whenever the state is exited.
func (sc *StateConfigurator[S, E]) ExecuteOnExit(actions ...Action) *StateConfigurator[S, E] {
	sc.s.exitActions = append(sc.s.exitActions, actions...)
	return sc
}

// On declares a new transition for the given event and moves the cursor onto
// it. Without a later Goto the transition is internal; without an If it is
// guard-less and must be the last one declared for the event.
func (sc *StateConfigurator[S, E]) On(event E) *TransitionConfigurator[S, E] {
	t := &transition[S, E]{}
	sc.s.addTransition(event, t)
	return &TransitionConfigurator[S, E]{sc: sc, t: t}
}

// TransitionConfigurator carries the transition cursor of the declarative
// configuration syntax.
type TransitionConfigurator[S, E comparable] struct {
	sc *StateConfigurator[S, E]
	t  *transition[S, E]
}

// If sets the guard condition that must pass for the transition to fire.
func (tc *TransitionConfigurator[S, E]) If(g Guard) *TransitionConfigurator[S, E] {
	if tc.t.guard != nil {
		panic(fmt.Sprintf("state %v, event %v: transition already has guard %s", tc.sc.s.id, tc.t.event, tc.t.guard.Describe()))
	}
	tc.t.guard = g
	return tc
}

// Goto sets the transition target, creating the target state on first
// mention.
func (tc *TransitionConfigurator[S, E]) Goto(target S) *TransitionConfigurator[S, E] {
	if tc.t.target != nil {
		panic(fmt.Sprintf("state %v, event %v: transition already has target %v", tc.sc.s.id, tc.t.event, tc.t.target.id))
	}
	tc.t.target = tc.sc.m.lookup(target)
	return tc
}

// Execute appends transition actions, invoked after the applicable exit
// actions and before the applicable entry actions, in declaration order.
func (tc *TransitionConfigurator[S, E]) Execute(actions ...Action) *TransitionConfigurator[S, E] {
	tc.t.actions = append(tc.t.actions, actions...)
	return tc
}

// On declares the next transition on the same source state.
func (tc *TransitionConfigurator[S, E]) On(event E) *TransitionConfigurator[S, E] {
	return tc.sc.On(event)
}

// HierarchyConfigurator wires parent/child links below one super state.
type HierarchyConfigurator[S, E comparable] struct {
	m     *stateMachine[S, E]
	super *state[S, E]
}

// DefineHierarchyOn returns the hierarchy configurator for the given super
// state, creating the state on first mention.
func (m *stateMachine[S, E]) DefineHierarchyOn(id S) *HierarchyConfigurator[S, E] {
	return &HierarchyConfigurator[S, E]{m: m, super: m.lookup(id)}
}

// WithHistoryType sets the history behavior for re-entry into the super
// state.
func (hc *HierarchyConfigurator[S, E]) WithHistoryType(h HistoryType) *HierarchyConfigurator[S, E] {
	hc.super.history = h
	return hc
}

// WithInitialSubState adds a sub-state and marks it as the initial one. At
// most one sub-state may be marked initial.
func (hc *HierarchyConfigurator[S, E]) WithInitialSubState(id S) *HierarchyConfigurator[S, E] {
	c := hc.m.lookup(id)
	c.setParent(hc.super)
	hc.super.setInitial(c)
	return hc
}

// WithSubState adds a sub-state. A state has at most one parent.
func (hc *HierarchyConfigurator[S, E]) WithSubState(id S) *HierarchyConfigurator[S, E] {
	hc.m.lookup(id).setParent(hc.super)
	return hc
}
