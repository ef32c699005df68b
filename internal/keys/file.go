package keys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// File is the on-disk key binding override format:
//
//	version = 1
//
//	[bindings]
//	new-task = ["n", "insert"]
type File struct {
	Version  int                 `toml:"version"`
	Bindings map[string][]string `toml:"bindings"`
}

// ParseFile decodes override TOML.
func ParseFile(data []byte) (File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse keys file: %w", err)
	}
	f.Bindings = normalizeActionKeyMap(f.Bindings)
	return f, nil
}

// Load returns the default registry with overrides from path applied. A
// missing or empty path yields the defaults.
func Load(path string) (*Registry, error) {
	bindings := DefaultBindings()
	if strings.TrimSpace(path) == "" {
		return NewRegistry(bindings), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewRegistry(bindings), nil
	}
	if err != nil {
		return NewRegistry(bindings), fmt.Errorf("read keys file: %w", err)
	}
	f, err := ParseFile(data)
	if err != nil {
		return NewRegistry(bindings), err
	}
	return NewRegistry(ApplyOverrides(bindings, f.Bindings)), nil
}

func normalizeActionKeyMap(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for action, keys := range in {
		action = strings.TrimSpace(action)
		if action == "" {
			continue
		}
		clean := make([]string, 0, len(keys))
		for _, k := range keys {
			if k = normalizeKey(k); k != "" {
				clean = append(clean, k)
			}
		}
		if len(clean) > 0 {
			out[action] = clean
		}
	}
	return out
}
