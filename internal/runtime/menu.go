package runtime

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Menu is one interactive screen yielding a result of type T.
type Menu[T any] interface {
	// Init is called once, before the first Render.
	Init(rt *Runtime)
	Render(f *Frame)
	Update(elapsed time.Duration)
	// OnKey returns nil to keep running.
	OnKey(msg tea.KeyMsg) *Event[T]
}

type eventKind int

const (
	eventQuit eventKind = iota
	eventExecutionResult
)

// Event is what a menu's key handler reports back to the runtime.
type Event[T any] struct {
	kind   eventKind
	result T
	err    error
}

// Quit ends the menu with result.
func Quit[T any](result T) *Event[T] {
	return &Event[T]{kind: eventQuit, result: result}
}

// ExecutionResult reports the outcome of a nested menu. A nil error keeps the
// current menu running; a non-nil error ends it and is returned to its caller.
func ExecutionResult[T any](err error) *Event[T] {
	return &Event[T]{kind: eventExecutionResult, err: err}
}

// IsQuit reports whether e ends the menu.
func (e *Event[T]) IsQuit() bool {
	return e != nil && e.kind == eventQuit
}

// Result returns the payload of a Quit event.
func (e *Event[T]) Result() T {
	return e.result
}

// Err returns the error carried by an ExecutionResult event.
func (e *Event[T]) Err() error {
	return e.err
}
