// Package cmd provides a transport-agnostic registry of application command
// definitions: a command is something with a name and a definition. How the
// definition reaches Discord (guild sync, bulk overwrite, offline diff) is
// decided by the consumer.
package cmd

import (
	"sort"

	"github.com/PantheraRed/slashsync/internal/command"
)

// Command is the universal contract: identity plus the raw definition to sync.
// The definition is read-only input for the sync layer; providers must return
// a fresh or never-mutated value.
type Command interface {
	Name() string
	Definition() *command.RawCommand
}

// DefaultRegistry is the global registry consumers read from. Usually
// populated from init() or application setup.
var DefaultRegistry = NewRegistry()

// Registry stores commands by name.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command, replacing any previous one with the same name.
func (r *Registry) Register(c Command) {
	r.commands[c.Name()] = c
}

// Get returns the command with the given name, or nil.
func (r *Registry) Get(name string) Command {
	return r.commands[name]
}

// GetAll returns all registered commands, sorted by name.
func (r *Registry) GetAll() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// Def is the simplest Command: a bare definition. Its name is the
// definition's name.
type Def struct {
	Raw *command.RawCommand
}

// Name returns the definition's name.
func (d Def) Name() string { return d.Raw.Name }

// Definition returns the wrapped raw definition.
func (d Def) Definition() *command.RawCommand { return d.Raw }
