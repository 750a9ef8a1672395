package statem

import "errors"

var (
	// ErrAlreadyInitialized is returned when Initialize or Load is called on a
	// machine that already has its initial state recorded.
	ErrAlreadyInitialized = errors.New("state machine is already initialized")

	// ErrNotInitialized is returned when an operation requires Initialize to
	// have been called first.
	ErrNotInitialized = errors.New("state machine is not initialized")

	// ErrAlreadyEntered is returned when EnterInitialState is called a second time.
	ErrAlreadyEntered = errors.New("initial state has already been entered")

	// ErrNotEntered is returned when an event is dispatched before the machine
	// has entered its initial state.
	ErrNotEntered = errors.New("initial state has not been entered")

	// ErrAlreadyRunning is returned by Start when the machine is already running.
	ErrAlreadyRunning = errors.New("state machine is already running")
)
