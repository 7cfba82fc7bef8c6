package bot

import (
	"sort"

	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
}

// Registry holds slash commands and fixed-text menu buttons.
type Registry struct {
	commands map[string]Command
	buttons  map[string]tele.HandlerFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		buttons:  make(map[string]tele.HandlerFunc),
	}
}

// RegisterCommand adds a new command. The name must carry the slash prefix.
func (r *Registry) RegisterCommand(name string, cmd Command) {
	if name == "" || name[0] != '/' || cmd.Handler == nil {
		return
	}
	if _, exists := r.commands[name]; exists {
		return
	}
	r.commands[name] = cmd
}

// RegisterButton maps a fixed menu-button label to its handler.
func (r *Registry) RegisterButton(label string, handler tele.HandlerFunc) {
	if label == "" || handler == nil {
		return
	}
	r.buttons[label] = handler
}

// Button returns the handler registered for a menu-button label.
func (r *Registry) Button(label string) (tele.HandlerFunc, bool) {
	h, ok := r.buttons[label]
	return h, ok
}

// Commands returns all registered commands keyed by name.
func (r *Registry) Commands() map[string]Command {
	return r.commands
}

// ListCommands returns tele.Command entries sorted by name. With adminView
// false, hidden and admin-only commands are filtered out.
func (r *Registry) ListCommands(adminView bool) []tele.Command {
	var list []tele.Command
	for name, meta := range r.commands {
		if meta.Hidden {
			continue
		}
		if meta.AdminOnly && !adminView {
			continue
		}
		list = append(list, tele.Command{Text: name, Description: meta.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}
