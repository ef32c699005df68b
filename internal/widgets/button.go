package widgets

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Button is a focusable label. Menus decide what Enter does while it is focused.
type Button struct {
	Label string
	focus FocusState
}

func NewButton(label string) *Button {
	return &Button{Label: label}
}

// IsFocused reports whether the button holds focus.
func (b *Button) IsFocused() bool {
	return b.focus == Focused
}

func (b *Button) SetFocus(state FocusState) { b.focus = state }

func (b *Button) HandleKey(tea.KeyMsg) {}

func (b *Button) Update(time.Duration) {}

func (b *Button) View(width int) string {
	label := TextStyle.Render(b.Label)
	if b.focus == Focused {
		label = FocusStyle.Render(">" + b.Label)
	}
	if width <= 0 {
		return label
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, label)
}
