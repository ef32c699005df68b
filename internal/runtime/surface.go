package runtime

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Frame is the drawing area handed to a menu each render.
type Frame struct {
	Width  int
	Height int
	view   string
}

// NewFrame returns an empty frame of the given size.
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height}
}

// Render sets the frame content.
func (f *Frame) Render(view string) {
	f.view = view
}

// View returns what was rendered.
func (f *Frame) View() string {
	return f.view
}

// Surface is the terminal the runtime draws onto and reads keys from.
type Surface interface {
	// Draw builds a frame with fn and presents it.
	Draw(fn func(f *Frame)) error
	// Poll waits up to timeout for a key. ok is false when none arrived.
	Poll(timeout time.Duration) (msg tea.KeyMsg, ok bool, err error)
}
