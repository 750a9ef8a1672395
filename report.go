package statem

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// StateView is the read-only view of one state handed to reporters.
type StateView[S, E comparable] interface {
	ID() S
	ParentID() (S, bool)
	ChildIDs() []S
	InitialChildID() (S, bool)
	LastActiveChildID() (S, bool)
	History() HistoryType
	Depth() int
	EntryActionNames() []string
	ExitActionNames() []string
	Transitions() []TransitionView[S, E]
}

// Reporter renders a machine's structure. It receives the machine name, all
// states in declaration order, and the configured initial state, nil when
// the machine has not been initialized.
type Reporter[S, E comparable] interface {
	Report(name string, states []StateView[S, E], initial *S) error
}

// Report hands the machine's structure to the reporter.
func (m *stateMachine[S, E]) Report(reporter Reporter[S, E]) error {
	states := make([]StateView[S, E], 0, len(m.order))
	for _, id := range m.order {
		states = append(states, m.states[id])
	}
	var initial *S
	if m.initial != nil {
		id := m.initial.id
		initial = &id
	}
	return reporter.Report(m.name, states, initial)
}

// CSVReporter writes one row per declared transition, fields separated by
// semicolons. Internal transitions carry "internal transition" in the target
// column.
type CSVReporter[S, E comparable] struct {
	w io.Writer
}

func NewCSVReporter[S, E comparable](w io.Writer) *CSVReporter[S, E] {
	return &CSVReporter[S, E]{w: w}
}

func (r *CSVReporter[S, E]) Report(name string, states []StateView[S, E], initial *S) error {
	cw := csv.NewWriter(r.w)
	cw.Comma = ';'
	if err := cw.Write([]string{"Source", "Event", "Guard", "Target", "Actions"}); err != nil {
		return err
	}
	for _, s := range states {
		for _, t := range s.Transitions() {
			target := "internal transition"
			if t.Target != nil {
				target = fmt.Sprint(*t.Target)
			}
			row := []string{
				fmt.Sprint(t.Source),
				fmt.Sprint(t.Event),
				t.Guard,
				target,
				strings.Join(t.Actions, ", "),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// PlantUMLReporter renders the state hierarchy as a PlantUML state diagram.
type PlantUMLReporter[S, E comparable] struct {
	w            io.Writer
	evNameMapper func(E) string
	defaultArrow string
}

func NewPlantUMLReporter[S, E comparable](w io.Writer) *PlantUMLReporter[S, E] {
	return &PlantUMLReporter[S, E]{
		w:            w,
		evNameMapper: func(e E) string { return fmt.Sprint(e) },
		defaultArrow: "-->",
	}
}

// EventNames provides the mapping of event ids to event names. The default
// mapping formats the id.
func (r *PlantUMLReporter[S, E]) EventNames(f func(E) string) *PlantUMLReporter[S, E] {
	r.evNameMapper = f
	return r
}

// DefaultArrow changes the arrow style used for transitions. The default is "-->".
func (r *PlantUMLReporter[S, E]) DefaultArrow(arrow string) *PlantUMLReporter[S, E] {
	r.defaultArrow = arrow
	return r
}

func (r *PlantUMLReporter[S, E]) Report(name string, states []StateView[S, E], initial *S) error {
	byID := make(map[S]StateView[S, E], len(states))
	for _, s := range states {
		byID[s.ID()] = s
	}
	alias := func(id S) string {
		return strings.ReplaceAll(fmt.Sprint(id), " ", "_")
	}
	histMarker := func(id S) string {
		switch byID[id].History() {
		case HistoryShallow:
			return "[H]"
		case HistoryDeep:
			return "[H*]"
		}
		return ""
	}
	label := func(t TransitionView[S, E]) string {
		var bld strings.Builder
		bld.WriteString(r.evNameMapper(t.Event))
		if t.Guard != "" {
			bld.WriteByte('[')
			bld.WriteString(t.Guard)
			bld.WriteByte(']')
		}
		if len(t.Actions) > 0 {
			bld.WriteString(" / ")
			bld.WriteString(strings.Join(t.Actions, ", "))
		}
		return bld.String()
	}

	var (
		bld, bldTrans strings.Builder
		dump          func(indent int, s StateView[S, E])
	)

	dump = func(indent int, s StateView[S, E]) {
		prefix := strings.Repeat("   ", indent)
		a := alias(s.ID())

		if n := fmt.Sprint(s.ID()); n == a {
			fmt.Fprintf(&bld, "%sstate %s", prefix, a)
		} else {
			fmt.Fprintf(&bld, "%sstate \"%s\" as %s", prefix, n, a)
		}
		if children := s.ChildIDs(); len(children) > 0 {
			bld.WriteString(" {\n")
			for _, c := range children {
				dump(indent+1, byID[c])
			}
			bld.WriteString(prefix)
			bld.WriteString("}")
		}
		bld.WriteString("\n")
		if names := s.EntryActionNames(); len(names) > 0 {
			fmt.Fprintf(&bld, "%s%s : entry / %s\n", prefix, a, strings.Join(names, "; "))
		}
		if names := s.ExitActionNames(); len(names) > 0 {
			fmt.Fprintf(&bld, "%s%s : exit / %s\n", prefix, a, strings.Join(names, "; "))
		}

		if p, ok := s.ParentID(); ok {
			if init, ok := byID[p].InitialChildID(); ok && init == s.ID() {
				fmt.Fprintf(&bld, "%s[*] --> %s\n", prefix, a)
			}
		} else if initial != nil && *initial == s.ID() {
			fmt.Fprintf(&bld, "[*] --> %s\n", a)
		}

		for _, t := range s.Transitions() {
			if t.Target == nil {
				fmt.Fprintf(&bld, "%s%s : %s\n", prefix, a, label(t))
				continue
			}
			fmt.Fprintf(&bldTrans, "%s %s %s%s : %s\n", a, r.defaultArrow, alias(*t.Target), histMarker(*t.Target), label(t))
		}
	}

	bld.WriteString("@startuml ")
	bld.WriteString(strings.ReplaceAll(name, " ", "_"))
	bld.WriteString("\n\n")
	for _, s := range states {
		if _, ok := s.ParentID(); !ok {
			dump(0, s)
		}
	}
	bld.WriteString(bldTrans.String())
	bld.WriteString("\n@enduml\n")

	_, err := io.WriteString(r.w, bld.String())
	return err
}
