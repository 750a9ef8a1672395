package statem

import (
	"fmt"
	"reflect"
)

// Action is a unit of behavior attached to state entry, state exit, or a
// firing transition. Execute receives the argument of the event that caused
// the action to run; on initial entry the argument is nil.
type Action interface {
	Execute(arg any) error
	Describe() string
}

// Guard decides whether a transition fires. A guard returning an error is
// reported through the machine's exception channel and counts as false.
type Guard interface {
	Execute(arg any) (bool, error)
	Describe() string
}

type action struct {
	name string
	fn   func(arg any) error
}

func (a action) Execute(arg any) error { return a.fn(arg) }
func (a action) Describe() string      { return a.name }

type guard struct {
	name string
	fn   func(arg any) (bool, error)
}

func (g guard) Execute(arg any) (bool, error) { return g.fn(arg) }
func (g guard) Describe() string              { return g.name }

// NewAction creates an action that does not care about the event argument.
// The name need not be unique, and is only used for reporting.
func NewAction(name string, fn func() error) Action {
	return action{name: name, fn: func(any) error { return fn() }}
}

// NewActionWithArg creates an action whose function receives the event
// argument as type T. Executing it with a missing or differently typed
// argument is an error, surfaced through the machine's exception channel.
func NewActionWithArg[T any](name string, fn func(arg T) error) Action {
	return action{name: name, fn: func(arg any) error {
		v, err := convertArg[T](name, arg)
		if err != nil {
			return err
		}
		return fn(v)
	}}
}

// NewGuard creates a guard that does not care about the event argument.
// The name need not be unique, and is only used for reporting.
func NewGuard(name string, fn func() (bool, error)) Guard {
	return guard{name: name, fn: func(any) (bool, error) { return fn() }}
}

// NewGuardWithArg creates a guard whose function receives the event argument
// as type T. Evaluating it with a missing or differently typed argument is an
// error, which counts as the guard returning false.
func NewGuardWithArg[T any](name string, fn func(arg T) (bool, error)) Guard {
	return guard{name: name, fn: func(arg any) (bool, error) {
		v, err := convertArg[T](name, arg)
		if err != nil {
			return false, err
		}
		return fn(v)
	}}
}

func convertArg[T any](name string, arg any) (T, error) {
	var zero T
	if arg == nil {
		return zero, fmt.Errorf("%s: no event argument supplied, want %s", name, reflect.TypeFor[T]())
	}
	v, ok := arg.(T)
	if !ok {
		return zero, fmt.Errorf("%s: event argument of type %T can not be used as %s", name, arg, reflect.TypeFor[T]())
	}
	return v, nil
}

// actionNames collects the names of the given actions, skipping empty ones.
func actionNames(actions []Action) []string {
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		if a.Describe() != "" {
			names = append(names, a.Describe())
		}
	}
	return names
}

func guardName(g Guard) string {
	if g == nil {
		return ""
	}
	return g.Describe()
}
