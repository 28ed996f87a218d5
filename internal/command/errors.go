package command

import "errors"

// Command errors.
var (
	// ErrUnknownCommand indicates dispatch of an undefined command name.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnboundToken indicates an interpolation token resolved outside
	// a context that can supply its value.
	ErrUnboundToken = errors.New("unbound interpolation token")
)
