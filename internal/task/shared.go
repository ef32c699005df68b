package task

// Shared is the handle menus use to reach a Store. Any number of Read borrows
// may nest; a Write borrow must be the only borrow. Breaking that rule is a
// programming error and panics.
type Shared struct {
	store   *Store
	readers int
	writing bool
}

// NewShared wraps store.
func NewShared(store *Store) *Shared {
	return &Shared{store: store}
}

// Read calls fn with the store for inspection.
func (s *Shared) Read(fn func(*Store)) {
	if s.writing {
		panic("task store already borrowed mutably")
	}
	s.readers++
	defer func() { s.readers-- }()
	fn(s.store)
}

// Write calls fn with the store for mutation.
func (s *Shared) Write(fn func(*Store)) {
	if s.writing || s.readers > 0 {
		panic("task store already borrowed")
	}
	s.writing = true
	defer func() { s.writing = false }()
	fn(s.store)
}
