package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/tasktree/internal/task"
)

// Backends for Store.Backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Store StoreConfig
	UI    UIConfig
	Log   LogConfig
	Keys  KeysConfig
}

// StoreConfig selects where tasks are persisted.
type StoreConfig struct {
	Backend       string
	Path          string
	SQLitePath    string `mapstructure:"sqlite_path"`
	History       int
	DefaultStates []string `mapstructure:"default_states"`
}

// UIConfig holds pacing settings.
type UIConfig struct {
	Tick        time.Duration
	CursorBlink time.Duration `mapstructure:"cursor_blink"`
	MaxDepth    int           `mapstructure:"max_depth"`
}

// LogConfig points the standard logger at a file. Empty disables logging.
type LogConfig struct {
	Path string
}

// KeysConfig names the key binding override file.
type KeysConfig struct {
	Path string
}

// Load reads configuration from file and env. Env var overrides use prefix TASKTREE_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TASKTREE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TASKTREE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(c), nil
}

func setDefaults(v *viper.Viper) {
	data := dataDir()
	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.path", filepath.Join(data, "tasks.json"))
	v.SetDefault("store.sqlite_path", filepath.Join(data, "tasktree.db"))
	v.SetDefault("store.history", 20)
	v.SetDefault("store.default_states", task.DefaultStates())
	v.SetDefault("ui.tick", "33ms")
	v.SetDefault("ui.cursor_blink", "500ms")
	v.SetDefault("ui.max_depth", 16)
	v.SetDefault("log.path", "")
	v.SetDefault("keys.path", filepath.Join(configDir(), "keys.toml"))
}

func normalize(c Config) Config {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.Store.Backend != BackendSQLite {
		c.Store.Backend = BackendFile
	}
	if c.Store.History <= 0 {
		c.Store.History = 20
	}
	states := make([]string, 0, len(c.Store.DefaultStates))
	for _, s := range c.Store.DefaultStates {
		if s = strings.TrimSpace(s); s != "" {
			states = append(states, s)
		}
	}
	if len(states) == 0 {
		states = task.DefaultStates()
	}
	c.Store.DefaultStates = states
	if c.UI.Tick <= 0 {
		c.UI.Tick = 33 * time.Millisecond
	}
	if c.UI.CursorBlink <= 0 {
		c.UI.CursorBlink = 500 * time.Millisecond
	}
	if c.UI.MaxDepth <= 0 {
		c.UI.MaxDepth = 16
	}
	return c
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("TASKTREE_CONFIG")
	if path == "" {
		path = filepath.Join(configDir(), "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("store.backend", cfg.Store.Backend)
	v.Set("store.path", cfg.Store.Path)
	v.Set("store.sqlite_path", cfg.Store.SQLitePath)
	v.Set("store.history", cfg.Store.History)
	v.Set("store.default_states", cfg.Store.DefaultStates)
	v.Set("ui.tick", cfg.UI.Tick.String())
	v.Set("ui.cursor_blink", cfg.UI.CursorBlink.String())
	v.Set("ui.max_depth", cfg.UI.MaxDepth)
	v.Set("log.path", cfg.Log.Path)
	v.Set("keys.path", cfg.Keys.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tasktree")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "tasktree")
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "tasktree")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "tasktree")
}
