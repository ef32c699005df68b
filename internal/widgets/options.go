package widgets

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// OptionSelector picks one entry from a fixed list with Left and Right.
type OptionSelector struct {
	options  []string
	selected int
	focus    FocusState
}

// NewOptionSelector selects the first option when there is one.
func NewOptionSelector(options []string) *OptionSelector {
	sel := -1
	if len(options) > 0 {
		sel = 0
	}
	return &OptionSelector{options: append([]string(nil), options...), selected: sel}
}

// Selected returns the chosen option.
func (o *OptionSelector) Selected() (string, bool) {
	if o.selected < 0 || o.selected >= len(o.options) {
		return "", false
	}
	return o.options[o.selected], true
}

func (o *OptionSelector) SetFocus(state FocusState) {
	o.focus = state
}

func (o *OptionSelector) HandleKey(msg tea.KeyMsg) {
	if len(o.options) == 0 {
		return
	}
	switch msg.Type {
	case tea.KeyLeft:
		if o.selected > 0 {
			o.selected--
		}
	case tea.KeyRight:
		if o.selected < len(o.options)-1 {
			o.selected++
		}
	}
}

func (o *OptionSelector) Update(time.Duration) {}

func (o *OptionSelector) View(width int) string {
	if len(o.options) == 0 {
		return MutedStyle.Render("(no options)")
	}
	parts := make([]string, 0, len(o.options))
	for i, opt := range o.options {
		switch {
		case i == o.selected && o.focus == Focused:
			parts = append(parts, FocusStyle.Render(">")+SelectedStyle.Render(opt))
		case i == o.selected:
			parts = append(parts, SelectedStyle.Render(opt))
		default:
			parts = append(parts, TextStyle.Render(opt))
		}
	}
	line := strings.Join(parts, "  ")
	if width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	return line
}
