package keys

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Binding maps keys to an action within a set of scopes. An empty scope list
// or "*" matches every scope. Fixed bindings are handled by widgets directly
// and only listed for help; overrides do not apply to them.
type Binding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
	Fixed       bool
}

type Registry struct {
	bindings []Binding
}

func NewRegistry(bindings []Binding) *Registry {
	return &Registry{bindings: slices.Clone(bindings)}
}

// Default returns a registry holding DefaultBindings.
func Default() *Registry {
	return NewRegistry(DefaultBindings())
}

func (r *Registry) BindingsForScope(scope string) []Binding {
	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// Matches reports whether msg triggers action in scope.
func (r *Registry) Matches(msg tea.KeyMsg, action, scope string) bool {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return true
			}
		}
	}
	return false
}

// Help returns the scope's bindings in footer form.
func (r *Registry) Help(scope string) []key.Binding {
	scoped := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(scoped))
	for _, b := range scoped {
		if len(b.Keys) == 0 || b.Description == "" {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKey(b.Keys), b.Description)))
	}
	return out
}

func helpKey(keys []string) string {
	if len(keys) > 1 && keys[0] == "up" && keys[1] == "down" {
		return "↑/↓"
	}
	return keys[0]
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}
