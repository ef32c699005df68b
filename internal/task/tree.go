package task

// MaxTreeDepth bounds how deep Assemble descends. It only matters for
// malformed snapshots.
const MaxTreeDepth = 256

// View is one row of the flattened task tree.
type View struct {
	Task  Task
	Depth int
}

// Assemble flattens the parent/child graph depth first. Tasks are taken as
// roots in the order given; a task reached earlier as a root is not repeated
// when its parent's subtree is walked later. Visited and unknown children are
// skipped so cyclic or dangling links terminate.
func Assemble(tasks []Task) []View {
	byID := make(map[ID]Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	visited := make(map[ID]struct{}, len(tasks))
	out := make([]View, 0, len(tasks))

	var walk func(t Task, depth int)
	walk = func(t Task, depth int) {
		visited[t.ID] = struct{}{}
		out = append(out, View{Task: t, Depth: depth})
		if depth >= MaxTreeDepth {
			return
		}
		for _, cid := range t.Children {
			if _, seen := visited[cid]; seen {
				continue
			}
			child, ok := byID[cid]
			if !ok {
				continue
			}
			walk(child, depth+1)
		}
	}

	for _, t := range tasks {
		if _, seen := visited[t.ID]; seen {
			continue
		}
		walk(t, 0)
	}
	return out
}
