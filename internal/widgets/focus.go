package widgets

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FocusController moves focus across widgets in visual order and forwards
// every other key to the focused widget. Movement is clamped at both ends.
type FocusController struct {
	items    []Focusable
	selected int
}

// NewFocusController focuses the first item, if any.
func NewFocusController(items ...Focusable) *FocusController {
	fc := &FocusController{items: items}
	if len(items) > 0 {
		items[0].SetFocus(Focused)
	}
	return fc
}

// HandleKey moves focus on Up, Down and Tab, otherwise forwards msg.
func (fc *FocusController) HandleKey(msg tea.KeyMsg) {
	if len(fc.items) == 0 {
		return
	}
	switch msg.Type {
	case tea.KeyUp:
		fc.move(fc.selected - 1)
	case tea.KeyDown, tea.KeyTab:
		fc.move(fc.selected + 1)
	default:
		fc.items[fc.selected].HandleKey(msg)
	}
}

func (fc *FocusController) move(to int) {
	if to < 0 || to >= len(fc.items) || to == fc.selected {
		return
	}
	fc.items[fc.selected].SetFocus(Blurred)
	fc.selected = to
	fc.items[fc.selected].SetFocus(Focused)
}

// Update advances every item, focused or not, so blurred widgets keep their
// timers running.
func (fc *FocusController) Update(elapsed time.Duration) {
	for _, it := range fc.items {
		it.Update(elapsed)
	}
}

// Focused returns the focused item, or nil when there are none.
func (fc *FocusController) Focused() Focusable {
	if len(fc.items) == 0 {
		return nil
	}
	return fc.items[fc.selected]
}

// Index returns the focused position.
func (fc *FocusController) Index() int {
	return fc.selected
}
