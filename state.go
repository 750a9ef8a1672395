package statem

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// HistoryType determines which descendant becomes active when a composite
// state is entered again.
type HistoryType int

const (
	// HistoryNone enters the initial sub-state.
	HistoryNone HistoryType = iota
	// HistoryShallow enters the most recently active direct sub-state, and
	// from there follows initial sub-states down to a leaf.
	HistoryShallow
	// HistoryDeep re-enters the most recently active sub-state on every
	// level of the hierarchy below.
	HistoryDeep
)

func (h HistoryType) String() string {
	switch h {
	case HistoryShallow:
		return "shallow"
	case HistoryDeep:
		return "deep"
	default:
		return "none"
	}
}

// state is a leaf or composite state in a state machine. States are owned by
// the machine's state table and refer to each other through pointers within
// that table; they are created lazily the first time an id is mentioned.
type state[S, E comparable] struct {
	id              S
	parent          *state[S, E]
	children        []*state[S, E]
	initial         *state[S, E] // initial child state
	entryActions    []Action
	exitActions     []Action
	transitions     *orderedmap.OrderedMap[E, []*transition[S, E]]
	history         HistoryType
	lastActiveChild *state[S, E]
	depth           int
}

func newState[S, E comparable](id S) *state[S, E] {
	return &state[S, E]{
		id:          id,
		transitions: orderedmap.New[E, []*transition[S, E]](),
		depth:       1,
	}
}

func (s *state[S, E]) isLeaf() bool { return len(s.children) == 0 }

// setParent wires s below p and recomputes the depth of s and all its
// descendants. A state has at most one parent and may not be its own.
func (s *state[S, E]) setParent(p *state[S, E]) {
	if p == s {
		panic(fmt.Sprintf("state %v can not be its own parent", s.id))
	}
	if s.parent != nil {
		panic(fmt.Sprintf("state %v already is a sub-state of %v", s.id, s.parent.id))
	}
	s.parent = p
	p.children = append(p.children, s)
	s.recomputeDepth()
}

func (s *state[S, E]) recomputeDepth() {
	if s.parent == nil {
		s.depth = 1
	} else {
		s.depth = s.parent.depth + 1
	}
	for _, c := range s.children {
		c.recomputeDepth()
	}
}

// setInitial marks c as the initial sub-state of s. The last active child is
// seeded at the same time, so a first history entry has somewhere to go.
func (s *state[S, E]) setInitial(c *state[S, E]) {
	if c.parent != s {
		panic(fmt.Sprintf("initial sub-state %v is not a sub-state of %v", c.id, s.id))
	}
	if s.initial != nil && s.initial != c {
		panic(fmt.Sprintf("sub-states %v and %v can not both be marked initial", c.id, s.initial.id))
	}
	s.initial = c
	s.lastActiveChild = c
}

// addTransition binds t to s and appends it to the table for the given
// event. Declaration order is evaluation order; a guard-less transition ends
// the chain, so nothing may be declared after it.
func (s *state[S, E]) addTransition(event E, t *transition[S, E]) {
	if t.source != nil {
		panic(fmt.Sprintf("transition for event %v is already added to state %v", event, t.source.id))
	}
	existing, _ := s.transitions.Get(event)
	if n := len(existing); n > 0 && existing[n-1].guard == nil {
		panic(fmt.Sprintf("state %v, event %v: transition after a guard-less transition is unreachable", s.id, event))
	}
	t.source = s
	t.event = event
	s.transitions.Set(event, append(existing, t))
}

// ID returns the state's id.
func (s *state[S, E]) ID() S { return s.id }

// ParentID returns the id of the parent state, if the state has one.
func (s *state[S, E]) ParentID() (S, bool) {
	if s.parent == nil {
		var zero S
		return zero, false
	}
	return s.parent.id, true
}

// ChildIDs returns the ids of the direct sub-states in declaration order.
func (s *state[S, E]) ChildIDs() []S {
	ids := make([]S, len(s.children))
	for i, c := range s.children {
		ids[i] = c.id
	}
	return ids
}

// InitialChildID returns the id of the initial sub-state, if one is marked.
func (s *state[S, E]) InitialChildID() (S, bool) {
	if s.initial == nil {
		var zero S
		return zero, false
	}
	return s.initial.id, true
}

// LastActiveChildID returns the id of the most recently active direct
// sub-state, if any.
func (s *state[S, E]) LastActiveChildID() (S, bool) {
	if s.lastActiveChild == nil {
		var zero S
		return zero, false
	}
	return s.lastActiveChild.id, true
}

// History returns the state's history type.
func (s *state[S, E]) History() HistoryType { return s.history }

// Depth returns the state's depth in the hierarchy. Top-level states have depth 1.
func (s *state[S, E]) Depth() int { return s.depth }

// EntryActionNames returns the names of the entry actions in execution order.
func (s *state[S, E]) EntryActionNames() []string { return actionNames(s.entryActions) }

// ExitActionNames returns the names of the exit actions in execution order.
func (s *state[S, E]) ExitActionNames() []string { return actionNames(s.exitActions) }

// Transitions returns views of the declared transitions, events in
// declaration order, transitions per event in evaluation order.
func (s *state[S, E]) Transitions() []TransitionView[S, E] {
	var views []TransitionView[S, E]
	for pair := s.transitions.Oldest(); pair != nil; pair = pair.Next() {
		for _, t := range pair.Value {
			views = append(views, t.view())
		}
	}
	return views
}
