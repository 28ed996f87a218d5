package dispatch

import (
	"errors"
	"fmt"
)

// Dispatch errors.
var (
	// ErrBadArity indicates a builtin invoked with the wrong number of
	// arguments.
	ErrBadArity = errors.New("dispatch: wrong number of arguments")

	// ErrRecursionLimit indicates user-command expansion exceeded the
	// depth limit, almost always a definition that invokes itself.
	ErrRecursionLimit = errors.New("dispatch: command expansion too deep")

	// ErrExternalAction indicates a host call failed. The rest of the
	// action sequence that issued it is abandoned.
	ErrExternalAction = errors.New("dispatch: external action failed")

	// ErrUnknownMode indicates a mode name no mode answers to.
	ErrUnknownMode = errors.New("dispatch: unknown mode")

	// ErrReplayLimit indicates enqueued keys kept feeding themselves.
	ErrReplayLimit = errors.New("dispatch: key replay limit exceeded")
)

// wrapHost tags a host failure with ErrExternalAction.
func wrapHost(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrExternalAction, err)
}
