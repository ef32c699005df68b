package keys

// Scopes, one per menu.
const (
	ScopeMain   = "main"
	ScopeCreate = "create"
	ScopeState  = "state"
	ScopeJump   = "jump"
)

// Actions.
const (
	ActionCursorUp   = "cursor-up"
	ActionCursorDown = "cursor-down"
	ActionNewTask    = "new-task"
	ActionNewSubtask = "new-subtask"
	ActionAddState   = "add-state"
	ActionJump       = "jump"
	ActionQuit       = "quit"
	ActionFocus      = "focus"
	ActionOption     = "option"
	ActionSubmit     = "submit"
	ActionCancel     = "cancel"
	ActionResultUp   = "result-up"
	ActionResultDown = "result-down"
	ActionSelect     = "select"
)

func DefaultBindings() []Binding {
	return []Binding{
		{Keys: []string{"up", "k"}, Action: ActionCursorUp, Scopes: []string{ScopeMain}},
		{Keys: []string{"down", "j"}, Action: ActionCursorDown, Scopes: []string{ScopeMain}},
		{Keys: []string{"n"}, Action: ActionNewTask, Description: "new task", Scopes: []string{ScopeMain}},
		{Keys: []string{"s"}, Action: ActionNewSubtask, Description: "new subtask", Scopes: []string{ScopeMain}},
		{Keys: []string{"a"}, Action: ActionAddState, Description: "add state", Scopes: []string{ScopeMain}},
		{Keys: []string{"/"}, Action: ActionJump, Description: "jump", Scopes: []string{ScopeMain}},
		{Keys: []string{"esc", "q", "ctrl+c"}, Action: ActionQuit, Description: "exit", Scopes: []string{ScopeMain}},
		{Keys: []string{"up", "down", "tab"}, Action: ActionFocus, Description: "field", Scopes: []string{ScopeCreate, ScopeState}, Fixed: true},
		{Keys: []string{"left", "right"}, Action: ActionOption, Description: "state", Scopes: []string{ScopeCreate}, Fixed: true},
		{Keys: []string{"enter"}, Action: ActionSubmit, Description: "submit", Scopes: []string{ScopeCreate, ScopeState}},
		{Keys: []string{"up"}, Action: ActionResultUp, Scopes: []string{ScopeJump}},
		{Keys: []string{"down"}, Action: ActionResultDown, Scopes: []string{ScopeJump}},
		{Keys: []string{"enter"}, Action: ActionSelect, Description: "go to task", Scopes: []string{ScopeJump}},
		{Keys: []string{"esc"}, Action: ActionCancel, Description: "back", Scopes: []string{ScopeCreate, ScopeState, ScopeJump}},
	}
}

// ApplyOverrides replaces the keys of every non-fixed binding whose action
// appears in actionKeys.
func ApplyOverrides(bindings []Binding, actionKeys map[string][]string) []Binding {
	out := make([]Binding, 0, len(bindings))
	for _, b := range bindings {
		next := Binding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
			Fixed:       b.Fixed,
		}
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 && !b.Fixed {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out
}
