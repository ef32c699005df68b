package task

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSharedNestedReads(t *testing.T) {
	sh := NewShared(New())
	calls := 0
	sh.Read(func(*Store) {
		sh.Read(func(*Store) { calls++ })
	})
	require.Equal(t, 1, calls)
}

func TestSharedWriteMutates(t *testing.T) {
	sh := NewShared(New())
	sh.Write(func(s *Store) { s.AddState("Open") })
	sh.Read(func(s *Store) { require.Equal(t, []string{"Open"}, s.States()) })
}

func TestSharedOverlappingBorrowPanics(t *testing.T) {
	sh := NewShared(New())
	require.Panics(t, func() {
		sh.Read(func(*Store) {
			sh.Write(func(*Store) {})
		})
	})
	require.Panics(t, func() {
		sh.Write(func(*Store) {
			sh.Read(func(*Store) {})
		})
	})

	// borrows are released after a panic unwinds
	require.NotPanics(t, func() {
		sh.Write(func(*Store) {})
	})
}
