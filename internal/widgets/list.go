package widgets

// SelectableList tracks a cursor over a sequence of items. Moving past
// either end wraps around.
type SelectableList[T any] struct {
	items []T
	index int
}

// NewSelectableList selects the first item when there is one.
func NewSelectableList[T any](items []T) *SelectableList[T] {
	l := &SelectableList[T]{index: -1}
	l.SetItems(items)
	return l
}

// SetItems replaces the items, keeping the cursor in range.
func (l *SelectableList[T]) SetItems(items []T) {
	l.items = items
	switch {
	case len(items) == 0:
		l.index = -1
	case l.index < 0:
		l.index = 0
	case l.index >= len(items):
		l.index = len(items) - 1
	}
}

func (l *SelectableList[T]) Items() []T { return l.items }

// Index returns the cursor position, or -1 when the list is empty.
func (l *SelectableList[T]) Index() int { return l.index }

// Selected returns the item under the cursor.
func (l *SelectableList[T]) Selected() (T, bool) {
	if l.index < 0 || l.index >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[l.index], true
}

// Select moves the cursor to i when it is in range.
func (l *SelectableList[T]) Select(i int) {
	if i < 0 || i >= len(l.items) {
		return
	}
	l.index = i
}

func (l *SelectableList[T]) Next() {
	if len(l.items) == 0 {
		return
	}
	if l.index >= len(l.items)-1 {
		l.index = 0
		return
	}
	l.index++
}

func (l *SelectableList[T]) Prev() {
	if len(l.items) == 0 {
		return
	}
	if l.index <= 0 {
		l.index = len(l.items) - 1
		return
	}
	l.index--
}
