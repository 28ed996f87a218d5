package editor

import "github.com/google/uuid"

// ContinuationID identifies a suspended continuation registered with
// the dispatcher. Hosts pass it back on prompt submission, prompt
// cancellation, or process exit.
type ContinuationID = uuid.UUID

// Resumer is the dispatcher-side interface hosts deliver asynchronous
// completions to. Every method re-enters the dispatch path as a new
// top-level execution.
type Resumer interface {
	// ResumeReadline fires a readline continuation with the submitted
	// text, verbatim.
	ResumeReadline(id ContinuationID, text string)

	// ResumePicker fires a pick continuation with the chosen entry.
	ResumePicker(id ContinuationID, entry string)

	// ResumeProcess fires a process continuation with the captured
	// output, or an error if the process failed.
	ResumeProcess(id ContinuationID, output string, err error)

	// Cancel discards a pending continuation without executing it.
	Cancel(id ContinuationID)
}

// Host is the external action API. A failing call aborts the rest of
// the action sequence that issued it; it must never panic.
type Host interface {
	// Buffer operations.
	Open(path string) error
	OpenScratch(name string) error
	Save() error
	SaveAll() error
	Close() error
	CloseAll() error
	Quit(force bool) error

	// Help opens the help listing.
	Help() error

	// Spawn starts cmdline detached; the continuation (if any) fires on
	// exit with captured output. id is uuid.Nil when no continuation
	// was registered.
	Spawn(cmdline string, id ContinuationID) error

	// ReplaceWithOutput runs cmdline and replaces the current selection
	// with its stdout when the process continuation fires.
	ReplaceWithOutput(cmdline string, id ContinuationID) error

	// Readline opens a single-line prompt. The host later calls
	// Resumer.ResumeReadline or Cancel with id.
	Readline(prompt string, id ContinuationID) error

	// Pick opens the filtered picker over the current entries. The host
	// later calls Resumer.ResumePicker or Cancel with id.
	Pick(prompt string, id ContinuationID) error

	// SetPickerEntries replaces the picker's entry list.
	SetPickerEntries(entries []string) error

	// Clipboard transfer. cmdline is the configured copy/paste command,
	// empty when the platform default should be used.
	Copy(cmdline, text string) error
	Paste(cmdline string) (string, error)

	// LSPStart launches the named language server.
	LSPStart(name string) error

	// InsertText feeds text to the focused buffer or prompt.
	InsertText(text string) error

	// ShowStatus and ShowError report to the status line.
	ShowStatus(msg string)
	ShowError(err error)
}

// NewContinuationID allocates a fresh continuation identifier.
func NewContinuationID() ContinuationID {
	return uuid.New()
}
