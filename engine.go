package statem

import "fmt"

// dispatch drives one event through the machine: find the firing transition
// by walking up from the current state, execute the hierarchical exit/action/
// entry sequence, and descend into the target by history.
func (m *stateMachine[S, E]) dispatch(event E, arg any) error {
	if !m.initialized {
		return ErrNotInitialized
	}
	if !m.entered {
		return ErrNotEntered
	}

	ctx := m.newContext(m.current, nil, nil)
	m.notify(ctx, func(x Extension[S, E]) { x.FiringEvent(m, &event, &arg) })
	ctx.event = &event
	ctx.arg = arg

	t := m.findFiringTransition(ctx, event)
	if t == nil {
		m.notify(ctx, func(x Extension[S, E]) { x.SkippedTransition(m, event, arg) })
		return m.flushExceptions(ctx)
	}

	m.notify(ctx, func(x Extension[S, E]) { x.ExecutingTransition(m, ctx) })
	before := m.current
	m.executeTransition(ctx, t)
	if m.current != before {
		oldID := before.id
		m.notify(ctx, func(x Extension[S, E]) { x.SwitchedState(m, &oldID, m.current.id) })
	}
	m.notify(ctx, func(x Extension[S, E]) { x.ExecutedTransition(m, ctx) })
	m.notify(ctx, func(x Extension[S, E]) { x.FiredEvent(m, ctx) })
	return m.flushExceptions(ctx)
}

// findFiringTransition walks from the current state up the parent chain,
// evaluating each state's transitions for the event in declaration order.
// The first transition whose guard passes fires. A guard error counts as
// false.
func (m *stateMachine[S, E]) findFiringTransition(ctx *TransitionContext[S, E], event E) *transition[S, E] {
	for s := m.current; s != nil; s = s.parent {
		ts, ok := s.transitions.Get(event)
		if !ok {
			continue
		}
		for _, t := range ts {
			if m.evaluateGuard(ctx, t) {
				return t
			}
		}
	}
	return nil
}

func (m *stateMachine[S, E]) evaluateGuard(ctx *TransitionContext[S, E], t *transition[S, E]) bool {
	if t.guard == nil {
		return true
	}
	pass, err := safeGuard(t.guard, ctx.arg)
	if err == nil {
		return pass
	}
	m.notify(ctx, func(x Extension[S, E]) { x.HandlingGuardException(m, ctx, &err) })
	ctx.raise(err)
	m.notify(ctx, func(x Extension[S, E]) { x.HandledGuardException(m, ctx, err) })
	return false
}

// executeTransition performs the chosen transition. An internal transition
// runs its actions without touching any state. An external one first unwinds
// from the current leaf up to the transition's source, then traverses the
// hierarchy from source to target, and finally descends into the target by
// history.
func (m *stateMachine[S, E]) executeTransition(ctx *TransitionContext[S, E], t *transition[S, E]) {
	if t.isInternal() {
		m.runTransitionActions(ctx, t)
		return
	}
	for s := m.current; s != t.source; s = s.parent {
		m.exitState(ctx, s)
	}
	m.traverse(ctx, t, t.source, t.target, t.target)
	m.current = m.enterByHistory(ctx, t.target)
}

// traverse resolves the source-to-target crossing. The recursion bottoms out
// where the transition actions run, exactly once per fired transition.
// original is the outermost target, threaded through every level: the
// self-transition check must compare against it, not against the shrinking
// tgt parameter, or a descendant-to-ancestor walk would terminate early.
func (m *stateMachine[S, E]) traverse(ctx *TransitionContext[S, E], t *transition[S, E], src, tgt, original *state[S, E]) {
	switch {
	case src == original:
		// Self transition, or a descendant-to-ancestor walk that converged
		// on the target: leave and re-enter it.
		m.exitState(ctx, src)
		m.runTransitionActions(ctx, t)
		m.enterState(ctx, original)
	case src == tgt:
		// A cross-hierarchy walk converged on a common ancestor, which
		// stays active.
		m.runTransitionActions(ctx, t)
	case src.depth == tgt.depth:
		if src.parent == tgt.parent {
			m.exitState(ctx, src)
			m.runTransitionActions(ctx, t)
			m.enterState(ctx, tgt)
		} else {
			m.exitState(ctx, src)
			m.traverse(ctx, t, src.parent, tgt.parent, original)
			m.enterState(ctx, tgt)
		}
	case src.depth > tgt.depth:
		m.exitState(ctx, src)
		m.traverse(ctx, t, src.parent, tgt, original)
	default:
		m.traverse(ctx, t, src, tgt.parent, original)
		m.enterState(ctx, tgt)
	}
}

// enterByHistory descends from an already-entered state to a leaf, honoring
// the state's history type, and returns the leaf.
func (m *stateMachine[S, E]) enterByHistory(ctx *TransitionContext[S, E], s *state[S, E]) *state[S, E] {
	switch s.history {
	case HistoryShallow:
		if s.lastActiveChild != nil {
			return m.enterShallow(ctx, s.lastActiveChild)
		}
	case HistoryDeep:
		if s.lastActiveChild != nil {
			return m.enterDeep(ctx, s.lastActiveChild)
		}
	}
	return m.enterInitialChain(ctx, s)
}

// enterInitialChain follows initial sub-states from an already-entered state
// down to a leaf.
func (m *stateMachine[S, E]) enterInitialChain(ctx *TransitionContext[S, E], s *state[S, E]) *state[S, E] {
	if s.initial == nil {
		return s
	}
	return m.enterShallow(ctx, s.initial)
}

// enterShallow enters s and continues along initial sub-states, ignoring any
// remembered history below.
func (m *stateMachine[S, E]) enterShallow(ctx *TransitionContext[S, E], s *state[S, E]) *state[S, E] {
	m.enterState(ctx, s)
	return m.enterInitialChain(ctx, s)
}

// enterDeep enters s and continues along last active children as long as
// they are remembered, then along initial sub-states.
func (m *stateMachine[S, E]) enterDeep(ctx *TransitionContext[S, E], s *state[S, E]) *state[S, E] {
	m.enterState(ctx, s)
	if s.lastActiveChild != nil {
		return m.enterDeep(ctx, s.lastActiveChild)
	}
	return m.enterInitialChain(ctx, s)
}

// enterState records the entry, runs the state's entry actions in order,
// and marks the state as its parent's active child. An action error is
// bracketed for the extensions and funnelled into the exception channel; the
// remaining actions still run.
func (m *stateMachine[S, E]) enterState(ctx *TransitionContext[S, E], s *state[S, E]) {
	ctx.addRecord(RecordEnter, s.id)
	if s.parent != nil {
		s.parent.lastActiveChild = s
	}
	for _, a := range s.entryActions {
		if err := safeAction(a, ctx.arg); err != nil {
			m.notify(ctx, func(x Extension[S, E]) { x.HandlingEntryActionException(m, ctx, s.id, &err) })
			ctx.raise(err)
			m.notify(ctx, func(x Extension[S, E]) { x.HandledEntryActionException(m, ctx, s.id, err) })
		}
	}
}

// exitState records the exit, runs the state's exit actions in order, and
// remembers the exited state in its parent's last-active-child memo.
func (m *stateMachine[S, E]) exitState(ctx *TransitionContext[S, E], s *state[S, E]) {
	ctx.addRecord(RecordExit, s.id)
	for _, a := range s.exitActions {
		if err := safeAction(a, ctx.arg); err != nil {
			m.notify(ctx, func(x Extension[S, E]) { x.HandlingExitActionException(m, ctx, s.id, &err) })
			ctx.raise(err)
			m.notify(ctx, func(x Extension[S, E]) { x.HandledExitActionException(m, ctx, s.id, err) })
		}
	}
	if s.parent != nil {
		s.parent.lastActiveChild = s
	}
}

func (m *stateMachine[S, E]) runTransitionActions(ctx *TransitionContext[S, E], t *transition[S, E]) {
	for _, a := range t.actions {
		if err := safeAction(a, ctx.arg); err != nil {
			m.notify(ctx, func(x Extension[S, E]) { x.HandlingTransitionException(m, ctx, &err) })
			ctx.raise(err)
			m.notify(ctx, func(x Extension[S, E]) { x.HandledTransitionException(m, ctx, err) })
		}
	}
}

// safeAction shields the engine from panicking user code.
func safeAction(a Action, arg any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in action %s: %v", a.Describe(), r)
		}
	}()
	return a.Execute(arg)
}

func safeGuard(g Guard, arg any) (pass bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			pass = false
			err = fmt.Errorf("panic in guard %s: %v", g.Describe(), r)
		}
	}()
	return g.Execute(arg)
}
