package menus

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tasktree/internal/keys"
	"github.com/jask/tasktree/internal/runtime"
	"github.com/jask/tasktree/internal/task"
	"github.com/jask/tasktree/internal/widgets"
)

// Jump finds a task by title. It yields the chosen id, or nil on cancel.
type Jump struct {
	env     Env
	tasks   []task.Task
	query   *widgets.Input
	results *widgets.SelectableList[task.Task]
}

func NewJump(env Env) *Jump {
	return &Jump{env: env.withDefaults()}
}

func (j *Jump) Init(*runtime.Runtime) {
	j.env.Store.Read(func(s *task.Store) {
		j.tasks = s.Tasks()
	})
	j.query = widgets.NewTextLabel().SetBlink(j.env.Blink)
	j.query.SetFocus(widgets.Focused)
	j.results = widgets.NewSelectableList(Rank(j.tasks, ""))
}

func (j *Jump) Update(elapsed time.Duration) {
	j.query.Update(elapsed)
}

func (j *Jump) OnKey(msg tea.KeyMsg) *runtime.Event[*task.ID] {
	reg := j.env.Keys
	switch {
	case reg.Matches(msg, keys.ActionCancel, keys.ScopeJump):
		return runtime.Quit[*task.ID](nil)
	case reg.Matches(msg, keys.ActionSelect, keys.ScopeJump):
		t, ok := j.results.Selected()
		if !ok {
			return nil
		}
		id := t.ID
		return runtime.Quit(&id)
	case reg.Matches(msg, keys.ActionResultUp, keys.ScopeJump):
		j.results.Prev()
	case reg.Matches(msg, keys.ActionResultDown, keys.ScopeJump):
		j.results.Next()
	default:
		before := j.query.Text()
		j.query.HandleKey(msg)
		if q := j.query.Text(); q != before {
			j.results = widgets.NewSelectableList(Rank(j.tasks, q))
		}
	}
	return nil
}

// Rank orders tasks for query: titles containing it first, then by edit
// distance to it, then by id. Matching ignores case.
func Rank(tasks []task.Task, query string) []task.Task {
	out := append([]task.Task(nil), tasks...)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		sort.SliceStable(out, func(a, b int) bool { return out[a].ID < out[b].ID })
		return out
	}

	type score struct {
		miss bool
		dist int
	}
	scores := make(map[task.ID]score, len(out))
	for _, t := range out {
		title := strings.ToLower(t.Title)
		scores[t.ID] = score{
			miss: !strings.Contains(title, q),
			dist: levenshtein.ComputeDistance(title, q),
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		sa, sb := scores[out[a].ID], scores[out[b].ID]
		if sa.miss != sb.miss {
			return !sa.miss
		}
		if sa.dist != sb.dist {
			return sa.dist < sb.dist
		}
		return out[a].ID < out[b].ID
	})
	return out
}

func (j *Jump) Render(f *runtime.Frame) {
	screen(f, j.env.Keys, keys.ScopeJump, func(width, height int) string {
		inner := width - 4
		rows := []string{field("Find:", j.query.View(max(1, inner-labelWidth)), labelWidth), ""}

		items := j.results.Items()
		if len(items) == 0 {
			rows = append(rows, widgets.MutedStyle.Render("No tasks."))
		}
		start, end := window(len(items), j.results.Index(), max(1, height-2-len(rows)))
		for i := start; i < end; i++ {
			t := items[i]
			label := fmt.Sprintf("#%d %s", t.ID, t.Title)
			if i == j.results.Index() {
				rows = append(rows, " "+widgets.FocusStyle.Render(">")+widgets.SelectedStyle.Render(label))
				continue
			}
			rows = append(rows, "  "+widgets.TextStyle.Render(label))
		}
		return widgets.Pane{
			Title:   "Jump to task",
			Content: strings.Join(rows, "\n"),
			Focused: true,
		}.Render(width, height)
	})
}
