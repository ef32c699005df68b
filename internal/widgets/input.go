package widgets

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// DefaultBlink is the caret blink period.
const DefaultBlink = 500 * time.Millisecond

// Input is an editable text field. A text area accepts Enter as a newline;
// a text label ignores it.
type Input struct {
	text      []rune
	multiline bool
	focus     FocusState
	blink     time.Duration
	left      time.Duration
	caretOn   bool
}

// NewTextLabel returns a single-line input.
func NewTextLabel() *Input {
	return &Input{blink: DefaultBlink}
}

// NewTextArea returns a multi-line input.
func NewTextArea() *Input {
	return &Input{blink: DefaultBlink, multiline: true}
}

// SetBlink changes the caret blink period.
func (in *Input) SetBlink(d time.Duration) *Input {
	if d > 0 {
		in.blink = d
	}
	return in
}

// Text returns the current contents.
func (in *Input) Text() string {
	return string(in.text)
}

// CaretVisible reports whether the caret is drawn this frame.
func (in *Input) CaretVisible() bool {
	return in.caretOn
}

func (in *Input) SetFocus(state FocusState) {
	if in.focus == state {
		return
	}
	in.focus = state
	if state == Focused {
		in.caretOn = true
		in.left = in.blink
		return
	}
	in.caretOn = false
}

func (in *Input) HandleKey(msg tea.KeyMsg) {
	if in.focus != Focused {
		return
	}
	modified := false
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return
		}
		in.text = append(in.text, msg.Runes...)
		modified = true
	case tea.KeySpace:
		in.text = append(in.text, ' ')
		modified = true
	case tea.KeyBackspace:
		if len(in.text) > 0 {
			in.text = in.text[:len(in.text)-1]
		}
		modified = true
	case tea.KeyEnter:
		if in.multiline {
			in.text = append(in.text, '\n')
		}
	}
	if modified {
		in.caretOn = true
		in.left = in.blink
	}
}

// Update counts down the blink timer and toggles the caret when it expires.
func (in *Input) Update(elapsed time.Duration) {
	if in.focus != Focused {
		return
	}
	in.left -= elapsed
	if in.left > 0 {
		return
	}
	// long gaps (a nested menu ran) skip whole periods
	periods := 1 + int(-in.left/in.blink)
	in.left += time.Duration(periods) * in.blink
	if periods%2 == 1 {
		in.caretOn = !in.caretOn
	}
}

func (in *Input) View(width int) string {
	s := string(in.text)
	if in.caretOn {
		s += "|"
	}
	lines := strings.Split(s, "\n")
	if !in.multiline && len(lines) > 1 {
		lines = lines[:1]
	}
	for i, line := range lines {
		if width > 0 && ansi.StringWidth(line) > width {
			// keep the tail visible while typing
			line = ansi.TruncateLeft(line, ansi.StringWidth(line)-width, "")
		}
		lines[i] = TextStyle.Render(line)
	}
	return strings.Join(lines, "\n")
}
