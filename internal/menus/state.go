package menus

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tasktree/internal/keys"
	"github.com/jask/tasktree/internal/runtime"
	"github.com/jask/tasktree/internal/task"
	"github.com/jask/tasktree/internal/widgets"
)

// State adds a valid state. It yields the added name, or "" on cancel.
type State struct {
	env    Env
	name   *widgets.Input
	accept *widgets.Button
	focus  *widgets.FocusController
}

func NewState(env Env) *State {
	return &State{env: env.withDefaults()}
}

func (m *State) Init(*runtime.Runtime) {
	m.name = widgets.NewTextLabel().SetBlink(m.env.Blink)
	m.accept = widgets.NewButton("Accept")
	m.focus = widgets.NewFocusController(m.name, m.accept)
}

func (m *State) Update(elapsed time.Duration) {
	m.focus.Update(elapsed)
}

func (m *State) OnKey(msg tea.KeyMsg) *runtime.Event[string] {
	reg := m.env.Keys
	switch {
	case reg.Matches(msg, keys.ActionCancel, keys.ScopeState):
		return runtime.Quit("")
	case reg.Matches(msg, keys.ActionSubmit, keys.ScopeState):
		name := strings.TrimSpace(m.name.Text())
		if name == "" {
			return nil
		}
		m.env.Store.Write(func(s *task.Store) {
			s.AddState(name)
		})
		return runtime.Quit(name)
	}
	m.focus.HandleKey(msg)
	return nil
}

func (m *State) Render(f *runtime.Frame) {
	screen(f, m.env.Keys, keys.ScopeState, func(width, height int) string {
		var states []string
		m.env.Store.Read(func(s *task.Store) {
			states = s.States()
		})
		rows := []string{
			field("Name:", m.name.View(max(1, width-4-labelWidth)), labelWidth),
			"",
			m.accept.View(width - 4),
			"",
			widgets.MutedStyle.Render("Existing: " + strings.Join(states, ", ")),
		}
		return widgets.Pane{
			Title:   "New state",
			Content: strings.Join(rows, "\n"),
			Focused: true,
		}.Render(width, height)
	})
}
