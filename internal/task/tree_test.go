package task

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func viewIDs(views []View) []ID {
	out := make([]ID, 0, len(views))
	for _, v := range views {
		out = append(out, v.Task.ID)
	}
	return out
}

func viewDepths(views []View) []int {
	out := make([]int, 0, len(views))
	for _, v := range views {
		out = append(out, v.Depth)
	}
	return out
}

func TestTreeChain(t *testing.T) {
	s := New()
	s.AddState("Open")
	a, _ := s.AddTask("A", "Open", "")
	b, _ := s.AddTaskWithParent("B", "Open", "", a)
	c, _ := s.AddTaskWithParent("C", "Open", "", b)

	views := s.Tree()
	require.Equal(t, []ID{a, b, c}, viewIDs(views))
	require.Equal(t, []int{0, 1, 2}, viewDepths(views))
}

func TestTreeIndependentRoots(t *testing.T) {
	s := New()
	s.AddState("Open")
	d, _ := s.AddTask("D", "Open", "")
	e, _ := s.AddTask("E", "Open", "")

	views := s.Tree()
	require.Equal(t, []ID{d, e}, viewIDs(views))
	require.Equal(t, []int{0, 0}, viewDepths(views))
}

func TestTreeSiblingsKeepInsertionOrder(t *testing.T) {
	s := New()
	s.AddState("Open")
	root, _ := s.AddTask("root", "Open", "")
	x, _ := s.AddTaskWithParent("x", "Open", "", root)
	other, _ := s.AddTask("other", "Open", "")
	y, _ := s.AddTaskWithParent("y", "Open", "", root)
	xx, _ := s.AddTaskWithParent("xx", "Open", "", x)

	views := s.Tree()
	require.Equal(t, []ID{root, x, xx, y, other}, viewIDs(views))
	require.Equal(t, []int{0, 1, 2, 1, 0}, viewDepths(views))
}

func TestTreeFirstSeenWins(t *testing.T) {
	parent := ID(1)
	tasks := []Task{
		{ID: 2, Title: "child", Parent: &parent},
		{ID: 1, Title: "parent", Children: []ID{2}},
	}
	views := Assemble(tasks)
	require.Equal(t, []ID{2, 1}, viewIDs(views))
	require.Equal(t, []int{0, 0}, viewDepths(views))
}

func TestTreeCycleTerminates(t *testing.T) {
	tasks := []Task{
		{ID: 0, Children: []ID{1}},
		{ID: 1, Children: []ID{2}},
		{ID: 2, Children: []ID{0, 1}},
	}
	views := Assemble(tasks)
	require.Equal(t, []ID{0, 1, 2}, viewIDs(views))
	require.Equal(t, []int{0, 1, 2}, viewDepths(views))
}

func TestTreeSkipsDanglingChildren(t *testing.T) {
	tasks := []Task{
		{ID: 0, Children: []ID{7, 1}},
		{ID: 1},
	}
	views := Assemble(tasks)
	require.Equal(t, []ID{0, 1}, viewIDs(views))
}

func TestTreeEmpty(t *testing.T) {
	require.Empty(t, Assemble(nil))
}
