package menus

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tasktree/internal/keys"
	"github.com/jask/tasktree/internal/runtime"
	"github.com/jask/tasktree/internal/task"
	"github.com/jask/tasktree/internal/widgets"
)

const (
	indentWidth = 4
	// detailMinWidth is the frame width below which the detail pane is hidden.
	detailMinWidth = 60
)

// Main shows the task tree and opens the other menus.
type Main struct {
	env  Env
	rt   *runtime.Runtime
	list *widgets.SelectableList[task.View]
}

func NewMain(env Env) *Main {
	return &Main{
		env:  env.withDefaults(),
		list: widgets.NewSelectableList[task.View](nil),
	}
}

func (m *Main) Init(rt *runtime.Runtime) {
	m.rt = rt
	m.refresh()
}

// Selected returns the task under the cursor.
func (m *Main) Selected() (task.Task, bool) {
	v, ok := m.list.Selected()
	return v.Task, ok
}

func (m *Main) refresh() {
	var views []task.View
	m.env.Store.Read(func(s *task.Store) {
		views = s.Tree()
	})
	m.list.SetItems(views)
}

func (m *Main) selectTask(id task.ID) {
	for i, v := range m.list.Items() {
		if v.Task.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m *Main) Update(time.Duration) {}

func (m *Main) OnKey(msg tea.KeyMsg) *runtime.Event[struct{}] {
	reg := m.env.Keys
	switch {
	case reg.Matches(msg, keys.ActionCursorUp, keys.ScopeMain):
		m.list.Prev()
	case reg.Matches(msg, keys.ActionCursorDown, keys.ScopeMain):
		m.list.Next()
	case reg.Matches(msg, keys.ActionNewTask, keys.ScopeMain):
		return m.create(nil)
	case reg.Matches(msg, keys.ActionNewSubtask, keys.ScopeMain):
		sel, ok := m.list.Selected()
		if !ok {
			return nil
		}
		parent := sel.Task.ID
		return m.create(&parent)
	case reg.Matches(msg, keys.ActionAddState, keys.ScopeMain):
		name, err := runtime.Run[string](m.rt, NewState(m.env))
		if err != nil {
			return runtime.ExecutionResult[struct{}](err)
		}
		if name == "" {
			return nil
		}
		return runtime.ExecutionResult[struct{}](nil)
	case reg.Matches(msg, keys.ActionJump, keys.ScopeMain):
		id, err := runtime.Run[*task.ID](m.rt, NewJump(m.env))
		if err != nil {
			return runtime.ExecutionResult[struct{}](err)
		}
		if id == nil {
			return nil
		}
		m.selectTask(*id)
		return runtime.ExecutionResult[struct{}](nil)
	case reg.Matches(msg, keys.ActionQuit, keys.ScopeMain):
		return runtime.Quit(struct{}{})
	}
	return nil
}

func (m *Main) create(parent *task.ID) *runtime.Event[struct{}] {
	id, err := runtime.Run[*task.ID](m.rt, NewCreate(m.env, parent))
	if err != nil {
		return runtime.ExecutionResult[struct{}](err)
	}
	if id == nil {
		return nil
	}
	m.refresh()
	m.selectTask(*id)
	return runtime.ExecutionResult[struct{}](nil)
}

func (m *Main) Render(f *runtime.Frame) {
	screen(f, m.env.Keys, keys.ScopeMain, func(width, height int) string {
		treeWidth := width
		if width >= detailMinWidth {
			treeWidth = width * 3 / 5
		}
		tree := widgets.Pane{
			Title:   "Task List",
			Content: m.renderTree(height - 2),
			Focused: true,
		}.Render(treeWidth, height)
		if treeWidth == width {
			return tree
		}
		details := widgets.Pane{
			Title:   "Details",
			Content: m.renderDetails(),
		}.Render(width-treeWidth, height)
		return lipgloss.JoinHorizontal(lipgloss.Top, tree, details)
	})
}

func (m *Main) renderTree(height int) string {
	items := m.list.Items()
	if len(items) == 0 {
		return widgets.MutedStyle.Render("No tasks yet.")
	}
	start, end := window(len(items), m.list.Index(), height)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, treeRow(items[i], i == m.list.Index()))
	}
	return strings.Join(rows, "\n")
}

// treeRow indents a task by its depth and marks the cursor with '>'.
func treeRow(v task.View, selected bool) string {
	var b strings.Builder
	if offset := v.Depth * indentWidth; offset > 0 {
		b.WriteString(widgets.MutedStyle.Render(strings.Repeat(" ", offset-2) + "└─"))
	}
	if selected {
		b.WriteString(" " + widgets.FocusStyle.Render(">") + widgets.SelectedStyle.Render(v.Task.Title))
		return b.String()
	}
	b.WriteString("  " + widgets.TextStyle.Render(v.Task.Title))
	return b.String()
}

func (m *Main) renderDetails() string {
	v, ok := m.list.Selected()
	if !ok {
		return widgets.MutedStyle.Render("Nothing selected.")
	}
	t := v.Task
	parent := "-"
	if t.HasParent() {
		parent = fmt.Sprintf("#%d", *t.Parent)
	}
	lines := []string{
		widgets.HeaderStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)),
		"",
		field("State", widgets.TextStyle.Render(t.State), 10),
		field("Parent", widgets.TextStyle.Render(parent), 10),
		field("Subtasks", widgets.TextStyle.Render(fmt.Sprint(len(t.Children))), 10),
		"",
		widgets.TextStyle.Render(t.Description),
	}
	return strings.Join(lines, "\n")
}
