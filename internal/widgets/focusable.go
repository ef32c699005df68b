package widgets

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FocusState tells a widget whether it receives keystrokes.
type FocusState int

const (
	Blurred FocusState = iota
	Focused
)

func (s FocusState) String() string {
	if s == Focused {
		return "focused"
	}
	return "blurred"
}

// Focusable is a widget a FocusController can dispatch to.
type Focusable interface {
	SetFocus(state FocusState)
	HandleKey(msg tea.KeyMsg)
	Update(elapsed time.Duration)
	View(width int) string
}
