// Package dispatch turns resolved key bindings and command invocations
// into calls on the editor host.
//
// The Dispatcher owns the pending-chord buffer, the enqueued-key replay
// queue, and the table of suspended continuations waiting on prompts or
// external processes. All interpreter state lives in an Environment;
// nothing in this package is global, so tests and embedders can run
// several interpreters side by side.
package dispatch
