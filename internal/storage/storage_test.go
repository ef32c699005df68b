package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/tasktree/internal/task"
)

func TestFileMissingFailsToOpen(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nope", "tasks.json"))
	_, err := f.OpenReader()
	require.Error(t, err)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tasks.json")
	target := NewFile(path)

	s := task.Open(target, []string{"Open", "Done"})
	milk, err := s.AddTask("Buy milk", "Open", "2%")
	require.NoError(t, err)
	_, err = s.AddTaskWithParent("Pour milk", "Open", "into bowl", milk)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	restored := task.Open(NewFile(path), task.DefaultStates())
	require.Equal(t, s.Snapshot(), restored.Snapshot())
}

func TestFileOverwritesPreviousContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tasks": {}, "valid_states": ["A", "B", "C", "D", "E", "F", "G"], "next_id": 12345678}`), 0o644))

	s := task.Open(NewFile(path), nil)
	require.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G"}, s.States())
	s.AddState("H")

	r, err := NewFile(path).OpenReader()
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Contains(t, string(data), `"H"`)
	require.Contains(t, string(data), `"next_id": 12345678`)
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasktree.db")
	db, err := OpenSQLite(path, 5)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.OpenReader()
	require.Error(t, err)

	s := task.Open(db, []string{"Open", "Done"})
	root, err := s.AddTask("root", "Open", "")
	require.NoError(t, err)
	_, err = s.AddTaskWithParent("leaf", "Done", "", root)
	require.NoError(t, err)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	restored := task.Open(db, nil)
	require.Equal(t, s.Snapshot(), restored.Snapshot())
}

func TestSQLitePrunesHistory(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "tasktree.db"), 3)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := task.Open(db, []string{"Open"})
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		_, err := s.AddTask(title, "Open", "")
		require.NoError(t, err)
	}
	n, err := db.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	restored := task.Open(db, nil)
	require.Len(t, restored.Tasks(), 5)
}

func TestSQLiteReopenKeepsSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasktree.db")
	db, err := OpenSQLite(path, 0)
	require.NoError(t, err)
	s := task.Open(db, []string{"Open"})
	_, err = s.AddTask("persisted", "Open", "")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	again, err := OpenSQLite(path, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.Close() })
	restored := task.Open(again, nil)
	require.Len(t, restored.Tasks(), 1)
	require.Equal(t, "persisted", restored.Tasks()[0].Title)
}

func TestSQLiteClosedDatabaseSkipsSave(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "tasktree.db"), 0)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = db.OpenWriter()
	require.Error(t, err)
}
