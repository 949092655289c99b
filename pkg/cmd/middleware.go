package cmd

import "github.com/PantheraRed/slashsync/internal/command"

// Middleware wraps a command to decorate its definition (e.g. force
// default-permission off, prefix descriptions for a staging guild).
// The wrapped type remains Command.
type Middleware func(Command) Command

// Apply applies middlewares in order; the first in the list is the outermost.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}

type decorated struct {
	inner Command
	fn    func(*command.RawCommand) *command.RawCommand
}

func (d decorated) Name() string { return d.inner.Name() }

func (d decorated) Definition() *command.RawCommand {
	return d.fn(d.inner.Definition())
}

// WithDefinition returns a middleware that passes each definition through fn.
// fn receives a shallow copy and may adjust top-level fields freely; nested
// options are shared with the original and must not be mutated.
func WithDefinition(fn func(*command.RawCommand)) Middleware {
	return func(c Command) Command {
		return decorated{inner: c, fn: func(raw *command.RawCommand) *command.RawCommand {
			cp := *raw
			fn(&cp)
			return &cp
		}}
	}
}

// WithRestrictedPermission forces default-permission off, so only explicitly
// granted roles can use the command until the permission manager opens it up.
func WithRestrictedPermission() Middleware {
	f := false
	return WithDefinition(func(raw *command.RawCommand) {
		raw.DefaultPermission = &f
		raw.DefaultPermissionWire = nil
	})
}
