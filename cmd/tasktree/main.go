package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/jask/tasktree/internal/config"
	"github.com/jask/tasktree/internal/keys"
	"github.com/jask/tasktree/internal/menus"
	"github.com/jask/tasktree/internal/runtime"
	"github.com/jask/tasktree/internal/storage"
	"github.com/jask/tasktree/internal/task"
	"github.com/jask/tasktree/internal/terminal"
)

var red = color.New(color.FgRed).SprintFunc()

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail(fmt.Errorf("config: %w", err))
	}

	closeLog, err := setupLogging(cfg.Log.Path)
	if err != nil {
		fail(fmt.Errorf("log: %v", err))
	}
	defer closeLog()

	target, closeTarget, err := openTarget(cfg.Store)
	if err != nil {
		fail(err)
	}
	defer closeTarget()

	reg, err := keys.Load(cfg.Keys.Path)
	if err != nil {
		log.Printf("warn: using default key bindings: %v", err)
		reg = keys.Default()
	}

	var surface *terminal.Surface
	store := task.Open(target, cfg.Store.DefaultStates, task.WithFatal(func(err error) {
		if surface != nil {
			_ = surface.Close()
		}
		closeTarget()
		fail(err)
	}))

	surface = terminal.Open()
	rt := runtime.New(surface,
		runtime.WithTick(cfg.UI.Tick),
		runtime.WithMaxDepth(cfg.UI.MaxDepth),
	)
	env := menus.Env{
		Store: task.NewShared(store),
		Keys:  reg,
		Blink: cfg.UI.CursorBlink,
	}

	_, runErr := runtime.Run[struct{}](rt, menus.NewMain(env))
	closeErr := surface.Close()
	if runErr != nil {
		closeTarget()
		fail(runErr)
	}
	if closeErr != nil {
		log.Printf("warn: %v", closeErr)
	}
}

// fail prints err in red and exits. The terminal must already be restored.
func fail(err error) {
	fmt.Fprintln(os.Stderr, red("tasktree: "+err.Error()))
	os.Exit(1)
}

// setupLogging sends the standard logger to path, or discards it when path
// is empty; the terminal belongs to the UI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "tasktree")
	if err != nil {
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}

func openTarget(cfg config.StoreConfig) (task.Target, func(), error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := storage.OpenSQLite(cfg.SQLitePath, cfg.History)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return db, func() { _ = db.Close() }, nil
	default:
		return storage.NewFile(cfg.Path), func() {}, nil
	}
}
