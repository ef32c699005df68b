package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/tasktree/internal/task"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("TASKTREE_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, BackendFile, cfg.Store.Backend)
	require.Equal(t, filepath.Join(home, ".local", "share", "tasktree", "tasks.json"), cfg.Store.Path)
	require.Equal(t, task.DefaultStates(), cfg.Store.DefaultStates)
	require.Equal(t, 33*time.Millisecond, cfg.UI.Tick)
	require.Equal(t, 500*time.Millisecond, cfg.UI.CursorBlink)
	require.Equal(t, 16, cfg.UI.MaxDepth)
	require.Equal(t, 20, cfg.Store.History)
	require.Empty(t, cfg.Log.Path)
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[store]
backend = "SQLite"
sqlite_path = "/tmp/tt.db"
default_states = ["Todo", " ", "Done"]

[ui]
tick = "50ms"
max_depth = 4
`), 0o644))
	t.Setenv("TASKTREE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, BackendSQLite, cfg.Store.Backend)
	require.Equal(t, "/tmp/tt.db", cfg.Store.SQLitePath)
	require.Equal(t, []string{"Todo", "Done"}, cfg.Store.DefaultStates)
	require.Equal(t, 50*time.Millisecond, cfg.UI.Tick)
	require.Equal(t, 4, cfg.UI.MaxDepth)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TASKTREE_STORE_PATH", "/srv/tasks.json")
	t.Setenv("TASKTREE_UI_CURSOR_BLINK", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/srv/tasks.json", cfg.Store.Path)
	require.Equal(t, 250*time.Millisecond, cfg.UI.CursorBlink)
}

func TestExplicitMissingConfigFails(t *testing.T) {
	isolate(t)
	t.Setenv("TASKTREE_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("TASKTREE_CONFIG", path)

	cfg, err := Load()
	require.Error(t, err)

	cfg = normalize(Config{})
	cfg.Store.Path = "/data/tasks.json"
	cfg.Store.DefaultStates = []string{"A", "B"}
	cfg.UI.Tick = 20 * time.Millisecond
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/data/tasks.json", loaded.Store.Path)
	require.Equal(t, []string{"A", "B"}, loaded.Store.DefaultStates)
	require.Equal(t, 20*time.Millisecond, loaded.UI.Tick)
}
