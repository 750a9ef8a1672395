package statem

import "fmt"

// Saver receives a snapshot of the machine's mutable runtime state: the
// current state, and the last-active-child memo of every super state that
// has one.
type Saver[S comparable] interface {
	// SaveCurrentState receives the current leaf state. ok is false when the
	// machine has not entered its initial state, including the case where it
	// was initialized but never started.
	SaveCurrentState(id S, ok bool) error
	// SaveHistoryStates receives the super-state to last-active-child
	// mapping.
	SaveHistoryStates(history map[S]S) error
}

// Loader supplies a previously saved snapshot.
type Loader[S comparable] interface {
	// LoadCurrentState returns the saved current state, ok false when the
	// saved machine had not entered one.
	LoadCurrentState() (id S, ok bool, err error)
	// LoadHistoryStates returns the saved super-state to last-active-child
	// mapping.
	LoadHistoryStates() (map[S]S, error)
}

// Save writes the machine's runtime state through the saver. The graph
// itself is not saved; a loading machine is expected to be built from the
// same configuration.
func (m *stateMachine[S, E]) Save(saver Saver[S]) error {
	var cur S
	if m.entered {
		cur = m.current.id
	}
	if err := saver.SaveCurrentState(cur, m.entered); err != nil {
		return fmt.Errorf("saving current state: %w", err)
	}
	history := make(map[S]S)
	for _, id := range m.order {
		if s := m.states[id]; s.lastActiveChild != nil {
			history[id] = s.lastActiveChild.id
		}
	}
	if err := saver.SaveHistoryStates(history); err != nil {
		return fmt.Errorf("saving history states: %w", err)
	}
	return nil
}

// Load restores a snapshot into a machine that has not been initialized.
// Every history entry is validated against the graph before anything is
// applied: the key must name a known super state and the value one of its
// direct sub-states. A snapshot with a current state leaves the machine
// initialized and entered; one without only restores the history memos and
// leaves the machine uninitialized, ready for Initialize.
func (m *stateMachine[S, E]) Load(loader Loader[S]) error {
	if m.initialized {
		return ErrAlreadyInitialized
	}
	cur, ok, err := loader.LoadCurrentState()
	if err != nil {
		return fmt.Errorf("loading current state: %w", err)
	}
	history, err := loader.LoadHistoryStates()
	if err != nil {
		return fmt.Errorf("loading history states: %w", err)
	}

	var current *state[S, E]
	if ok {
		current = m.states[cur]
		if current == nil {
			return fmt.Errorf("loaded current state %v is not part of the state machine", cur)
		}
	}
	type memo struct{ super, child *state[S, E] }
	memos := make([]memo, 0, len(history))
	for superID, childID := range history {
		super := m.states[superID]
		if super == nil {
			return fmt.Errorf("loaded history state %v is not part of the state machine", superID)
		}
		child := m.states[childID]
		if child == nil || child.parent != super {
			return fmt.Errorf("loaded history state %v is not a direct sub-state of %v", childID, superID)
		}
		memos = append(memos, memo{super: super, child: child})
	}

	for _, mm := range memos {
		mm.super.lastActiveChild = mm.child
	}
	if ok {
		m.current = current
		m.initialized = true
		m.entered = true
	}
	return nil
}
