// Package menus holds the interactive screens of tasktree. Each menu is a
// runtime.Menu; nested menus are run synchronously from key handlers.
package menus

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tasktree/internal/keys"
	"github.com/jask/tasktree/internal/runtime"
	"github.com/jask/tasktree/internal/task"
	"github.com/jask/tasktree/internal/widgets"
)

// Env is shared by every menu of one session.
type Env struct {
	Store *task.Shared
	Keys  *keys.Registry
	// Blink is the caret blink period of text inputs.
	Blink time.Duration
}

func (e Env) withDefaults() Env {
	if e.Keys == nil {
		e.Keys = keys.Default()
	}
	if e.Blink <= 0 {
		e.Blink = widgets.DefaultBlink
	}
	return e
}

// screen stacks body above the scope's footer, filling the frame.
func screen(f *runtime.Frame, reg *keys.Registry, scope string, body func(width, height int) string) {
	width := max(10, f.Width)
	height := max(4, f.Height)
	footer := widgets.RenderFooter(reg.Help(scope), width)
	f.Render(lipgloss.JoinVertical(lipgloss.Left, body(width, height-1), footer))
}

// field renders a label column followed by a widget, aligning continuation
// lines under the widget.
func field(label string, view string, labelWidth int) string {
	pad := strings.Repeat(" ", labelWidth)
	lines := strings.Split(view, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = widgets.HeaderStyle.Render(padLabel(label, labelWidth)) + lines[i]
			continue
		}
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func padLabel(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// window returns the bounds of a height-row slice of n rows that keeps
// cursor visible.
func window(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	return start, start + height
}
