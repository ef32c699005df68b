package menus

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tasktree/internal/keys"
	"github.com/jask/tasktree/internal/runtime"
	"github.com/jask/tasktree/internal/task"
	"github.com/jask/tasktree/internal/widgets"
)

const labelWidth = 13

// Create is the task form. It yields the new task's id, or nil when the user
// backs out.
type Create struct {
	env    Env
	parent *task.ID
	header string

	title  *widgets.Input
	states *widgets.OptionSelector
	desc   *widgets.Input
	accept *widgets.Button
	focus  *widgets.FocusController
}

// NewCreate returns a form for a root task, or a subtask when parent is set.
func NewCreate(env Env, parent *task.ID) *Create {
	return &Create{env: env.withDefaults(), parent: parent}
}

func (c *Create) Init(*runtime.Runtime) {
	var states []string
	c.header = "New task"
	c.env.Store.Read(func(s *task.Store) {
		states = s.States()
		if c.parent == nil {
			return
		}
		c.header = fmt.Sprintf("New subtask of #%d", *c.parent)
		if p, ok := s.FindTask(*c.parent); ok {
			c.header += " " + p.Title
		}
	})

	c.title = widgets.NewTextLabel().SetBlink(c.env.Blink)
	c.states = widgets.NewOptionSelector(states)
	c.desc = widgets.NewTextArea().SetBlink(c.env.Blink)
	c.accept = widgets.NewButton("Accept")
	c.focus = widgets.NewFocusController(c.title, c.states, c.desc, c.accept)
}

func (c *Create) Update(elapsed time.Duration) {
	c.focus.Update(elapsed)
}

func (c *Create) OnKey(msg tea.KeyMsg) *runtime.Event[*task.ID] {
	reg := c.env.Keys
	switch {
	case reg.Matches(msg, keys.ActionCancel, keys.ScopeCreate):
		return runtime.Quit[*task.ID](nil)
	case c.accept.IsFocused() && reg.Matches(msg, keys.ActionSubmit, keys.ScopeCreate):
		return c.submit()
	}
	c.focus.HandleKey(msg)
	return nil
}

func (c *Create) submit() *runtime.Event[*task.ID] {
	title, desc := c.title.Text(), c.desc.Text()
	state, ok := c.states.Selected()
	if title == "" || desc == "" || !ok {
		return nil
	}

	var (
		id  task.ID
		err error
	)
	c.env.Store.Write(func(s *task.Store) {
		if c.parent != nil {
			id, err = s.AddTaskWithParent(title, state, desc, *c.parent)
			return
		}
		id, err = s.AddTask(title, state, desc)
	})
	if err != nil {
		log.Printf("warn: create task: %v", err)
		return nil
	}
	return runtime.Quit(&id)
}

func (c *Create) Render(f *runtime.Frame) {
	screen(f, c.env.Keys, keys.ScopeCreate, func(width, height int) string {
		inner := max(1, width-4-labelWidth)
		rows := []string{
			field("Title:", c.title.View(inner), labelWidth),
			"",
			field("State:", c.states.View(inner), labelWidth),
			"",
			field("Description:", c.desc.View(inner), labelWidth),
			"",
			c.accept.View(width - 4),
		}
		return widgets.Pane{
			Title:   c.header,
			Content: strings.Join(rows, "\n"),
			Focused: true,
		}.Render(width, height)
	})
}
