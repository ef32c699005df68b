package menus

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/tasktree/internal/runtime"
	"github.com/jask/tasktree/internal/runtime/runtimetest"
	"github.com/jask/tasktree/internal/task"
)

func newEnv(states ...string) (Env, *task.Store) {
	store := task.New()
	for _, s := range states {
		store.AddState(s)
	}
	return Env{Store: task.NewShared(store)}, store
}

func newRuntime() (*runtime.Runtime, *runtimetest.Surface) {
	clock := runtimetest.NewClock()
	surface := runtimetest.NewSurface(clock)
	return runtime.New(surface, runtime.WithClock(clock.Now)), surface
}

func addTask(t *testing.T, store *task.Store, title string) task.ID {
	t.Helper()
	id, err := store.AddTask(title, "Open", title+" description")
	require.NoError(t, err)
	return id
}

func TestMainCreatesRootTask(t *testing.T) {
	env, store := newEnv("Open", "Done")
	rt, surface := newRuntime()
	surface.Runes("n").
		Runes("Write docs").
		Type(tea.KeyDown, tea.KeyRight, tea.KeyDown).
		Runes("for users").
		Type(tea.KeyDown, tea.KeyEnter, tea.KeyEsc)

	m := NewMain(env)
	_, err := runtime.Run[struct{}](rt, m)
	require.NoError(t, err)
	require.Zero(t, surface.Pending())

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	require.Equal(t, "Write docs", tasks[0].Title)
	require.Equal(t, "Done", tasks[0].State)
	require.Equal(t, "for users", tasks[0].Description)

	sel, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, tasks[0].ID, sel.ID)
	require.Contains(t, ansi.Strip(surface.Last()), ">Write docs")
}

func TestMainCreatesSubtaskUnderSelection(t *testing.T) {
	env, store := newEnv("Open")
	parent := addTask(t, store, "Parent")
	rt, surface := newRuntime()
	surface.Runes("s").
		Runes("Child").
		Type(tea.KeyDown, tea.KeyDown).
		Runes("c").
		Type(tea.KeyDown, tea.KeyEnter, tea.KeyEsc)

	m := NewMain(env)
	_, err := runtime.Run[struct{}](rt, m)
	require.NoError(t, err)

	p, ok := store.FindTask(parent)
	require.True(t, ok)
	require.Len(t, p.Children, 1)
	child, ok := store.FindTask(p.Children[0])
	require.True(t, ok)
	require.Equal(t, "Child", child.Title)
	require.Equal(t, parent, *child.Parent)

	sel, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, child.ID, sel.ID)
	require.Contains(t, ansi.Strip(surface.Last()), "└─ >Child")
}

func TestMainSubtaskOnEmptyListIsNoop(t *testing.T) {
	env, store := newEnv("Open")
	rt, surface := newRuntime()
	surface.Runes("s").Type(tea.KeyEsc)

	_, err := runtime.Run[struct{}](rt, NewMain(env))
	require.NoError(t, err)
	require.Empty(t, store.Tasks())
	require.Len(t, surface.Frames, 2)
}

func TestMainCursorWraps(t *testing.T) {
	env, store := newEnv("Open")
	addTask(t, store, "A")
	addTask(t, store, "B")
	last := addTask(t, store, "C")

	rt, surface := newRuntime()
	surface.Type(tea.KeyUp, tea.KeyEsc)
	m := NewMain(env)
	_, err := runtime.Run[struct{}](rt, m)
	require.NoError(t, err)
	sel, _ := m.Selected()
	require.Equal(t, last, sel.ID)

	rt, surface = newRuntime()
	surface.Runes("jjj").Runes("q")
	m = NewMain(env)
	_, err = runtime.Run[struct{}](rt, m)
	require.NoError(t, err)
	sel, _ = m.Selected()
	require.Equal(t, task.ID(0), sel.ID)
}

func TestMainPropagatesNestedError(t *testing.T) {
	env, _ := newEnv("Open")
	rt, surface := newRuntime()
	boom := errors.New("boom")
	surface.Runes("n").Fail(boom)

	_, err := runtime.Run[struct{}](rt, NewMain(env))
	require.ErrorIs(t, err, boom)
	require.Zero(t, rt.Depth())
}

func TestMainAddsState(t *testing.T) {
	env, store := newEnv("Open")
	rt, surface := newRuntime()
	surface.Runes("a").Runes("Blocked").Type(tea.KeyEnter, tea.KeyEsc)

	_, err := runtime.Run[struct{}](rt, NewMain(env))
	require.NoError(t, err)
	require.Equal(t, []string{"Open", "Blocked"}, store.States())
}

func TestMainJumpSelectsTask(t *testing.T) {
	env, store := newEnv("Open")
	addTask(t, store, "Alpha")
	addTask(t, store, "Beta")
	gamma := addTask(t, store, "Gamma")

	rt, surface := newRuntime()
	surface.Runes("/").Runes("gam").Type(tea.KeyEnter, tea.KeyEsc)
	m := NewMain(env)
	_, err := runtime.Run[struct{}](rt, m)
	require.NoError(t, err)

	sel, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, gamma, sel.ID)
}

func TestMainHidesDetailsWhenNarrow(t *testing.T) {
	env, store := newEnv("Open")
	addTask(t, store, "Alpha")

	rt, surface := newRuntime()
	surface.Type(tea.KeyEsc)
	_, err := runtime.Run[struct{}](rt, NewMain(env))
	require.NoError(t, err)
	require.Contains(t, ansi.Strip(surface.Last()), "Details")

	rt, surface = newRuntime()
	surface.Width = 40
	surface.Type(tea.KeyEsc)
	_, err = runtime.Run[struct{}](rt, NewMain(env))
	require.NoError(t, err)
	require.NotContains(t, ansi.Strip(surface.Last()), "Details")
}

func TestCreateIncompleteFormIsNoop(t *testing.T) {
	env, store := newEnv("Open")
	rt, surface := newRuntime()
	surface.Runes("title only").
		Type(tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyEnter, tea.KeyEsc)

	id, err := runtime.Run[*task.ID](rt, NewCreate(env, nil))
	require.NoError(t, err)
	require.Nil(t, id)
	require.Empty(t, store.Tasks())
	require.Zero(t, surface.Pending())
}

func TestCreateWithoutStatesIsNoop(t *testing.T) {
	env, store := newEnv()
	rt, surface := newRuntime()
	surface.Runes("t").
		Type(tea.KeyDown, tea.KeyDown).
		Runes("d").
		Type(tea.KeyDown, tea.KeyEnter, tea.KeyEsc)

	id, err := runtime.Run[*task.ID](rt, NewCreate(env, nil))
	require.NoError(t, err)
	require.Nil(t, id)
	require.Empty(t, store.Tasks())
}

func TestCreateRejectedByStoreIsNoop(t *testing.T) {
	env, store := newEnv("Open")
	rt, surface := newRuntime()
	surface.Runes("t").
		Type(tea.KeyDown, tea.KeyDown).
		Runes("d").
		Type(tea.KeyDown, tea.KeyEnter, tea.KeyEsc)

	missing := task.ID(42)
	id, err := runtime.Run[*task.ID](rt, NewCreate(env, &missing))
	require.NoError(t, err)
	require.Nil(t, id)
	require.Empty(t, store.Tasks())
	require.Contains(t, ansi.Strip(surface.Frames[0]), "New subtask of #42")
}

func TestCreateReturnsNewID(t *testing.T) {
	env, store := newEnv("Open")
	parent := addTask(t, store, "Parent")
	rt, surface := newRuntime()
	surface.Runes("t").
		Type(tea.KeyDown, tea.KeyDown).
		Runes("a").
		Type(tea.KeyEnter).
		Runes("b").
		Type(tea.KeyDown, tea.KeyEnter)

	id, err := runtime.Run[*task.ID](rt, NewCreate(env, &parent))
	require.NoError(t, err)
	require.NotNil(t, id)
	require.Zero(t, surface.Pending())

	created, ok := store.FindTask(*id)
	require.True(t, ok)
	require.Equal(t, "a\nb", created.Description)
	require.Contains(t, ansi.Strip(surface.Frames[0]), "New subtask of #0 Parent")
}

func TestStateMenuIgnoresBlankName(t *testing.T) {
	env, store := newEnv("Open")
	rt, surface := newRuntime()
	surface.Runes("  ").Type(tea.KeyEnter, tea.KeyEsc)

	name, err := runtime.Run[string](rt, NewState(env))
	require.NoError(t, err)
	require.Empty(t, name)
	require.Equal(t, []string{"Open"}, store.States())
}

func TestStateMenuTrimsName(t *testing.T) {
	env, store := newEnv("Open")
	rt, surface := newRuntime()
	surface.Runes(" Review ").Type(tea.KeyDown, tea.KeyEnter)

	name, err := runtime.Run[string](rt, NewState(env))
	require.NoError(t, err)
	require.Equal(t, "Review", name)
	require.Equal(t, []string{"Open", "Review"}, store.States())
}

func TestJumpCancel(t *testing.T) {
	env, store := newEnv("Open")
	addTask(t, store, "Alpha")
	rt, surface := newRuntime()
	surface.Runes("al").Type(tea.KeyEsc)

	id, err := runtime.Run[*task.ID](rt, NewJump(env))
	require.NoError(t, err)
	require.Nil(t, id)
}

func TestJumpMovesWithinResults(t *testing.T) {
	env, store := newEnv("Open")
	addTask(t, store, "Alpha")
	beta := addTask(t, store, "Beta")
	rt, surface := newRuntime()
	surface.Type(tea.KeyDown, tea.KeyEnter)

	id, err := runtime.Run[*task.ID](rt, NewJump(env))
	require.NoError(t, err)
	require.NotNil(t, id)
	require.Equal(t, beta, *id)
}

func TestRank(t *testing.T) {
	tasks := []task.Task{
		{ID: 0, Title: "Alpha"},
		{ID: 1, Title: "Beta"},
		{ID: 2, Title: "Gamma"},
		{ID: 3, Title: "alphabet"},
	}
	titles := func(ts []task.Task) []string {
		out := make([]string, 0, len(ts))
		for _, t := range ts {
			out = append(out, t.Title)
		}
		return out
	}

	require.Equal(t, []string{"Alpha", "Beta", "Gamma", "alphabet"}, titles(Rank(tasks, "")))
	require.Equal(t, []string{"Beta", "alphabet"}, titles(Rank(tasks, "BET"))[:2])
	require.Equal(t, "Gamma", Rank(tasks, "gama")[0].Title)
	require.Equal(t, []string{"Alpha", "alphabet"}, titles(Rank(tasks, "alpha"))[:2])
}

func TestTreeRow(t *testing.T) {
	row := ansi.Strip(treeRow(task.View{Task: task.Task{Title: "x"}, Depth: 2}, false))
	require.Equal(t, "      └─  x", row)

	row = ansi.Strip(treeRow(task.View{Task: task.Task{Title: "root"}}, true))
	require.Equal(t, " >root", row)
}

func TestWindow(t *testing.T) {
	start, end := window(10, 0, 3)
	require.Equal(t, []int{0, 3}, []int{start, end})
	start, end = window(10, 5, 3)
	require.Equal(t, []int{3, 6}, []int{start, end})
	start, end = window(2, 1, 5)
	require.Equal(t, []int{0, 2}, []int{start, end})
}
