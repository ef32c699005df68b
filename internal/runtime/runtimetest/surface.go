// Package runtimetest provides a scripted Surface and a manual clock for
// driving menus in tests.
package runtimetest

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tasktree/internal/runtime"
)

// ErrScriptDone is returned by Poll once every scripted step was consumed.
var ErrScriptDone = errors.New("script exhausted")

// Clock is a manually advanced time source.
type Clock struct {
	t time.Time
}

func NewClock() *Clock {
	return &Clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time { return c.t }

func (c *Clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type step struct {
	msg  tea.KeyMsg
	idle bool
	err  error
}

// Surface replays scripted keys and records every drawn frame.
type Surface struct {
	Width   int
	Height  int
	Frames  []string
	DrawErr error

	clock *Clock
	steps []step
}

// NewSurface returns an 80x24 surface advancing clock on idle polls.
func NewSurface(clock *Clock) *Surface {
	return &Surface{Width: 80, Height: 24, clock: clock}
}

// Key queues key messages.
func (s *Surface) Key(msgs ...tea.KeyMsg) *Surface {
	for _, m := range msgs {
		s.steps = append(s.steps, step{msg: m})
	}
	return s
}

// Type queues one key message per key type.
func (s *Surface) Type(types ...tea.KeyType) *Surface {
	for _, t := range types {
		s.Key(tea.KeyMsg{Type: t})
	}
	return s
}

// Runes queues one rune key message per character; spaces become KeySpace.
func (s *Surface) Runes(text string) *Surface {
	for _, r := range text {
		if r == ' ' {
			s.Key(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		s.Key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return s
}

// Idle queues n polls that time out.
func (s *Surface) Idle(n int) *Surface {
	for i := 0; i < n; i++ {
		s.steps = append(s.steps, step{idle: true})
	}
	return s
}

// Fail queues a poll error.
func (s *Surface) Fail(err error) *Surface {
	s.steps = append(s.steps, step{err: err})
	return s
}

// Pending returns the number of unconsumed steps.
func (s *Surface) Pending() int {
	return len(s.steps)
}

// Last returns the most recent frame.
func (s *Surface) Last() string {
	if len(s.Frames) == 0 {
		return ""
	}
	return s.Frames[len(s.Frames)-1]
}

func (s *Surface) Draw(fn func(f *runtime.Frame)) error {
	if s.DrawErr != nil {
		return s.DrawErr
	}
	f := runtime.NewFrame(s.Width, s.Height)
	fn(f)
	s.Frames = append(s.Frames, f.View())
	return nil
}

func (s *Surface) Poll(timeout time.Duration) (tea.KeyMsg, bool, error) {
	if len(s.steps) == 0 {
		return tea.KeyMsg{}, false, ErrScriptDone
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	switch {
	case st.err != nil:
		return tea.KeyMsg{}, false, st.err
	case st.idle:
		if s.clock != nil {
			s.clock.Advance(timeout)
		}
		return tea.KeyMsg{}, false, nil
	}
	return st.msg, true, nil
}
