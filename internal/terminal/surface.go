// Package terminal adapts a bubbletea program to the runtime's blocking
// draw and poll loop.
package terminal

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tasktree/internal/runtime"
)

// ErrClosed is returned by Draw and Poll once the program has exited.
var ErrClosed = errors.New("terminal closed")

const (
	defaultWidth  = 80
	defaultHeight = 24
	keyBuffer     = 64
)

type redrawMsg struct{}

// Surface runs a bubbletea program in the background. Keys arrive on a
// buffered channel; frames are handed to the program's View.
type Surface struct {
	program *tea.Program
	keys    chan tea.KeyMsg
	done    chan struct{}
	once    sync.Once

	mu     sync.Mutex
	view   string
	width  int
	height int
	err    error
}

// Open starts a full-screen surface on the controlling terminal.
func Open() *Surface {
	return New(tea.WithAltScreen())
}

// New starts a surface with the given program options.
func New(opts ...tea.ProgramOption) *Surface {
	s := &Surface{
		keys:   make(chan tea.KeyMsg, keyBuffer),
		done:   make(chan struct{}),
		width:  defaultWidth,
		height: defaultHeight,
	}
	s.program = tea.NewProgram(model{s: s}, opts...)
	go s.run()
	return s
}

func (s *Surface) run() {
	_, err := s.program.Run()
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.done)
}

// Size returns the last reported window size.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *Surface) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Surface) Draw(fn func(f *runtime.Frame)) error {
	if s.closed() {
		return ErrClosed
	}
	w, h := s.Size()
	f := runtime.NewFrame(w, h)
	fn(f)

	s.mu.Lock()
	s.view = f.View()
	s.mu.Unlock()
	s.program.Send(redrawMsg{})
	return nil
}

func (s *Surface) Poll(timeout time.Duration) (tea.KeyMsg, bool, error) {
	select {
	case msg := <-s.keys:
		return msg, true, nil
	default:
	}
	if s.closed() {
		return tea.KeyMsg{}, false, ErrClosed
	}
	if timeout <= 0 {
		return tea.KeyMsg{}, false, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case msg := <-s.keys:
		return msg, true, nil
	case <-s.done:
		return tea.KeyMsg{}, false, ErrClosed
	case <-timer.C:
		return tea.KeyMsg{}, false, nil
	}
}

// Close stops the program and restores the terminal. It is safe to call more
// than once.
func (s *Surface) Close() error {
	s.once.Do(func() {
		s.program.Quit()
	})
	<-s.done
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil && !errors.Is(s.err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal: %w", s.err)
	}
	return nil
}

type model struct {
	s *Surface
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		select {
		case m.s.keys <- msg:
		default:
			log.Printf("warn: terminal: dropped key %q", msg.String())
		}
	case tea.WindowSizeMsg:
		m.s.mu.Lock()
		m.s.width, m.s.height = msg.Width, msg.Height
		m.s.mu.Unlock()
	}
	return m, nil
}

func (m model) View() string {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.view
}
