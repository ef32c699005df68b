package task

// ID identifies a task. IDs are assigned by the Store in increasing order and
// never reused.
type ID uint64

// Task represents one node of the task tree.
type Task struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	State       string `json:"state"`
	Description string `json:"description"`
	Parent      *ID    `json:"parent_task"`
	Children    []ID   `json:"child_tasks"`
}

// HasParent reports whether the task was created under another task.
func (t Task) HasParent() bool {
	return t.Parent != nil
}

func (t Task) clone() Task {
	out := t
	if t.Parent != nil {
		p := *t.Parent
		out.Parent = &p
	}
	out.Children = append([]ID(nil), t.Children...)
	if out.Children == nil {
		out.Children = []ID{}
	}
	return out
}

// Snapshot is the unit written to and read from a Target.
type Snapshot struct {
	Tasks       map[ID]Task `json:"tasks"`
	ValidStates []string    `json:"valid_states"`
	NextID      uint64      `json:"next_id"`
}

func newSnapshot() Snapshot {
	return Snapshot{
		Tasks:       map[ID]Task{},
		ValidStates: []string{},
	}
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Tasks:       make(map[ID]Task, len(s.Tasks)),
		ValidStates: append([]string{}, s.ValidStates...),
		NextID:      s.NextID,
	}
	for id, t := range s.Tasks {
		out.Tasks[id] = t.clone()
	}
	return out
}

// DefaultStates seeds a store that has no readable snapshot.
func DefaultStates() []string {
	return []string{"Open", "Selected for development", "In progress", "Done"}
}
