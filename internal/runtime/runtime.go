package runtime

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultTick is the frame cadence.
	DefaultTick = 33 * time.Millisecond
	// DefaultMaxDepth bounds menu nesting.
	DefaultMaxDepth = 16
)

// ErrTooDeep is returned by Run when menus are nested beyond the limit.
var ErrTooDeep = errors.New("menu nesting too deep")

// Runtime holds the surface and pacing shared by every active menu.
type Runtime struct {
	surface  Surface
	tick     time.Duration
	maxDepth int
	now      func() time.Time
	depth    int
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTick sets the frame cadence.
func WithTick(d time.Duration) Option {
	return func(rt *Runtime) {
		if d > 0 {
			rt.tick = d
		}
	}
}

// WithMaxDepth sets how many menus may be active at once.
func WithMaxDepth(n int) Option {
	return func(rt *Runtime) {
		if n > 0 {
			rt.maxDepth = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(rt *Runtime) {
		if now != nil {
			rt.now = now
		}
	}
}

// New returns a runtime drawing onto surface.
func New(surface Surface, opts ...Option) *Runtime {
	rt := &Runtime{
		surface:  surface,
		tick:     DefaultTick,
		maxDepth: DefaultMaxDepth,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Depth returns the number of menus currently running.
func (rt *Runtime) Depth() int {
	return rt.depth
}

// Run drives m until it quits and returns its result. Called from inside
// another menu's OnKey, it suspends that menu until m finishes. Surface
// errors and errors relayed through ExecutionResult end m and are returned.
func Run[T any](rt *Runtime, m Menu[T]) (T, error) {
	var zero T
	if rt.depth >= rt.maxDepth {
		return zero, fmt.Errorf("run menu at depth %d: %w", rt.depth, ErrTooDeep)
	}
	rt.depth++
	defer func() { rt.depth-- }()

	m.Init(rt)
	lastTick := rt.now()
	for {
		if err := rt.surface.Draw(m.Render); err != nil {
			return zero, fmt.Errorf("draw frame: %w", err)
		}

		timeout := rt.tick - rt.now().Sub(lastTick)
		if timeout < 0 {
			timeout = 0
		}
		msg, ok, err := rt.surface.Poll(timeout)
		if err != nil {
			return zero, fmt.Errorf("poll input: %w", err)
		}
		if ok {
			if ev := m.OnKey(msg); ev != nil {
				if ev.IsQuit() {
					return ev.Result(), nil
				}
				if ev.Err() != nil {
					return zero, ev.Err()
				}
			}
		}

		if elapsed := rt.now().Sub(lastTick); elapsed >= rt.tick {
			m.Update(elapsed)
			lastTick = rt.now()
		}
	}
}
