package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"sort"
	"strings"
)

var (
	// ErrInvalidState is returned when a task is created with a state that is
	// not in the store's valid states.
	ErrInvalidState = errors.New("invalid task state")
	// ErrParentNotFound is returned when a subtask names a parent that does not exist.
	ErrParentNotFound = errors.New("parent task not found")
	// ErrCorruptSnapshot marks a stored snapshot that decodes but cannot be trusted.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// Target is the durable record a Store reads at startup and overwrites on
// every successful mutation.
type Target interface {
	OpenReader() (io.ReadCloser, error)
	OpenWriter() (io.WriteCloser, error)
}

// Store owns the tasks and the ordered set of valid states.
type Store struct {
	snap   Snapshot
	target Target
	fatal  func(error)
}

// Option configures a Store.
type Option func(*Store)

// WithFatal replaces the handler invoked when writing a snapshot fails after
// the target was opened. The default handler calls log.Fatalf.
func WithFatal(fn func(error)) Option {
	return func(s *Store) {
		if fn != nil {
			s.fatal = fn
		}
	}
}

// New returns an empty store without a durable target.
func New(opts ...Option) *Store {
	s := &Store{
		snap:  newSnapshot(),
		fatal: func(err error) { log.Fatalf("save task store: %v", err) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open restores the store from target. When the target cannot be opened or
// does not decode, the store starts empty and is seeded with defaults; no
// partial snapshot is kept.
func Open(target Target, defaults []string, opts ...Option) *Store {
	s := New(opts...)
	s.target = target
	if target == nil {
		s.seed(defaults)
		return s
	}
	snap, err := load(target)
	if err != nil {
		log.Printf("warn: task store: %v; starting with default states", err)
		s.seed(defaults)
		return s
	}
	s.snap = snap
	return s
}

// wireSnapshot mirrors Snapshot with pointer fields so absent keys can be
// told apart from zero values.
type wireSnapshot struct {
	Tasks       *map[ID]Task `json:"tasks"`
	ValidStates *[]string    `json:"valid_states"`
	NextID      *uint64      `json:"next_id"`
}

func load(target Target) (Snapshot, error) {
	r, err := target.OpenReader()
	if err != nil {
		return Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer r.Close()
	return decodeSnapshot(r)
}

func decodeSnapshot(r io.Reader) (Snapshot, error) {
	dec := json.NewDecoder(r)
	var w wireSnapshot
	if err := dec.Decode(&w); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w: trailing data", ErrCorruptSnapshot)
	}
	switch {
	case w.Tasks == nil:
		return Snapshot{}, fmt.Errorf("decode snapshot: %w: missing tasks", ErrCorruptSnapshot)
	case w.ValidStates == nil:
		return Snapshot{}, fmt.Errorf("decode snapshot: %w: missing valid_states", ErrCorruptSnapshot)
	case w.NextID == nil:
		return Snapshot{}, fmt.Errorf("decode snapshot: %w: missing next_id", ErrCorruptSnapshot)
	}

	snap := Snapshot{Tasks: *w.Tasks, ValidStates: *w.ValidStates, NextID: *w.NextID}
	for id, t := range snap.Tasks {
		if t.Children == nil {
			t.Children = []ID{}
			snap.Tasks[id] = t
		}
	}
	if err := snap.validate(); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w: %v", ErrCorruptSnapshot, err)
	}
	return snap, nil
}

// validate checks that ids match their keys, links resolve and the id
// counter is ahead of every stored task.
func (s Snapshot) validate() error {
	for key, t := range s.Tasks {
		if t.ID != key {
			return fmt.Errorf("task %d stored under key %d", t.ID, key)
		}
		if uint64(t.ID) >= s.NextID {
			return fmt.Errorf("next_id %d not above task %d", s.NextID, t.ID)
		}
		if t.Parent != nil {
			if _, ok := s.Tasks[*t.Parent]; !ok {
				return fmt.Errorf("task %d: parent %d not found", t.ID, *t.Parent)
			}
		}
		for _, c := range t.Children {
			if _, ok := s.Tasks[c]; !ok {
				return fmt.Errorf("task %d: child %d not found", t.ID, c)
			}
		}
	}
	return nil
}

func (s *Store) seed(defaults []string) {
	s.snap = newSnapshot()
	for _, name := range defaults {
		s.AddState(name)
	}
}

// Save writes the whole snapshot to the target. A target that cannot be
// opened for writing is skipped; a failure while writing is fatal.
func (s *Store) Save() {
	if s.target == nil {
		return
	}
	w, err := s.target.OpenWriter()
	if err != nil {
		log.Printf("warn: task store: open for write: %v", err)
		return
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.snap); err != nil {
		_ = w.Close()
		s.fatal(fmt.Errorf("write snapshot: %w", err))
		return
	}
	if err := w.Close(); err != nil {
		s.fatal(fmt.Errorf("commit snapshot: %w", err))
	}
}

// AddState appends the trimmed name to the valid states unless it is blank or
// already present.
func (s *Store) AddState(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if slices.Contains(s.snap.ValidStates, name) {
		return
	}
	s.snap.ValidStates = append(s.snap.ValidStates, name)
	s.Save()
}

// AddTask creates a root task. The id counter advances even when the state is
// rejected.
func (s *Store) AddTask(title, state, description string) (ID, error) {
	id := s.allocate()
	if !s.validState(state) {
		return 0, fmt.Errorf("add task %q: %w: %q", title, ErrInvalidState, state)
	}
	s.snap.Tasks[id] = Task{
		ID:          id,
		Title:       title,
		State:       state,
		Description: description,
		Children:    []ID{},
	}
	s.Save()
	return id, nil
}

// AddTaskWithParent creates a task and appends it to parent's children.
func (s *Store) AddTaskWithParent(title, state, description string, parent ID) (ID, error) {
	id := s.allocate()
	if !s.validState(state) {
		return 0, fmt.Errorf("add task %q: %w: %q", title, ErrInvalidState, state)
	}
	p, ok := s.snap.Tasks[parent]
	if !ok {
		return 0, fmt.Errorf("add task %q: %w: %d", title, ErrParentNotFound, parent)
	}
	pid := parent
	s.snap.Tasks[id] = Task{
		ID:          id,
		Title:       title,
		State:       state,
		Description: description,
		Parent:      &pid,
		Children:    []ID{},
	}
	p.Children = append(p.Children, id)
	s.snap.Tasks[parent] = p
	s.Save()
	return id, nil
}

// FindTask returns a copy of the task with the given id.
func (s *Store) FindTask(id ID) (Task, bool) {
	t, ok := s.snap.Tasks[id]
	if !ok {
		return Task{}, false
	}
	return t.clone(), true
}

// Tasks returns copies of all tasks ordered by id.
func (s *Store) Tasks() []Task {
	out := make([]Task, 0, len(s.snap.Tasks))
	for _, t := range s.snap.Tasks {
		out = append(out, t.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// States returns the valid states in insertion order.
func (s *Store) States() []string {
	return append([]string(nil), s.snap.ValidStates...)
}

// Snapshot returns a deep copy of the persisted state.
func (s *Store) Snapshot() Snapshot {
	return s.snap.clone()
}

// Tree assembles the display sequence for the current tasks.
func (s *Store) Tree() []View {
	return Assemble(s.Tasks())
}

func (s *Store) allocate() ID {
	id := ID(s.snap.NextID)
	s.snap.NextID++
	return id
}

func (s *Store) validState(state string) bool {
	return slices.Contains(s.snap.ValidStates, state)
}
