package lua

import "errors"

// Lua engine errors.
var (
	// ErrClosed is returned when a closed engine or executor is used.
	ErrClosed = errors.New("lua: engine closed")

	// ErrQueueFull is returned when the executor cannot accept more
	// asynchronous work.
	ErrQueueFull = errors.New("lua: executor queue full")
)
