package dispatch

import (
	"testing"

	"github.com/ternedit/tern/internal/editor"
	"github.com/ternedit/tern/internal/script"
)

type spawnCall struct {
	cmdline string
	id      editor.ContinuationID
}

type promptCall struct {
	prompt string
	id     editor.ContinuationID
}

type copyCall struct {
	cmdline string
	text    string
}

// fakeHost records every host call for assertions.
type fakeHost struct {
	statuses []string
	errs     []error
	inserted []string

	opened    []string
	scratches []string
	saves     int
	saveAlls  int
	closes    int
	closeAlls int
	quits     []bool
	helps     int

	spawned  []spawnCall
	replaced []spawnCall

	readlines []promptCall
	picks     []promptCall
	entries   []string

	copies    []copyCall
	pasteText string
	pasteErr  error

	lsps []string

	openErr   error
	insertErr error
}

func (h *fakeHost) Open(path string) error {
	if h.openErr != nil {
		return h.openErr
	}
	h.opened = append(h.opened, path)
	return nil
}

func (h *fakeHost) OpenScratch(name string) error {
	h.scratches = append(h.scratches, name)
	return nil
}

func (h *fakeHost) Save() error     { h.saves++; return nil }
func (h *fakeHost) SaveAll() error  { h.saveAlls++; return nil }
func (h *fakeHost) Close() error    { h.closes++; return nil }
func (h *fakeHost) CloseAll() error { h.closeAlls++; return nil }
func (h *fakeHost) Help() error     { h.helps++; return nil }

func (h *fakeHost) Quit(force bool) error {
	h.quits = append(h.quits, force)
	return nil
}

func (h *fakeHost) Spawn(cmdline string, id editor.ContinuationID) error {
	h.spawned = append(h.spawned, spawnCall{cmdline, id})
	return nil
}

func (h *fakeHost) ReplaceWithOutput(cmdline string, id editor.ContinuationID) error {
	h.replaced = append(h.replaced, spawnCall{cmdline, id})
	return nil
}

func (h *fakeHost) Readline(prompt string, id editor.ContinuationID) error {
	h.readlines = append(h.readlines, promptCall{prompt, id})
	return nil
}

func (h *fakeHost) Pick(prompt string, id editor.ContinuationID) error {
	h.picks = append(h.picks, promptCall{prompt, id})
	return nil
}

func (h *fakeHost) SetPickerEntries(entries []string) error {
	h.entries = append([]string(nil), entries...)
	return nil
}

func (h *fakeHost) Copy(cmdline, text string) error {
	h.copies = append(h.copies, copyCall{cmdline, text})
	return nil
}

func (h *fakeHost) Paste(cmdline string) (string, error) {
	return h.pasteText, h.pasteErr
}

func (h *fakeHost) LSPStart(name string) error {
	h.lsps = append(h.lsps, name)
	return nil
}

func (h *fakeHost) InsertText(text string) error {
	if h.insertErr != nil {
		return h.insertErr
	}
	h.inserted = append(h.inserted, text)
	return nil
}

func (h *fakeHost) ShowStatus(msg string)  { h.statuses = append(h.statuses, msg) }
func (h *fakeHost) ShowError(err error)    { h.errs = append(h.errs, err) }

var _ editor.Host = (*fakeHost)(nil)

// newTestDispatcher builds a dispatcher over a fresh environment and a
// recording host.
func newTestDispatcher(t *testing.T) (*Dispatcher, *fakeHost) {
	t.Helper()
	host := &fakeHost{}
	d := New(NewEnvironment(), host, nil)
	return d, host
}

// load applies a script or fails the test.
func load(t *testing.T, d *Dispatcher, source, text string) {
	t.Helper()
	if err := d.LoadScript(source, text); err != nil {
		t.Fatalf("LoadScript(%s): %v", source, err)
	}
}

// invocations parses text and returns its bare invocations.
func invocations(t *testing.T, text string) []script.Invocation {
	t.Helper()
	parsed, err := script.Parse("test", text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	var invs []script.Invocation
	for _, stmt := range parsed.Statements {
		is, ok := stmt.(*script.InvocationStatement)
		if !ok {
			t.Fatalf("statement %T is not an invocation", stmt)
		}
		invs = append(invs, is.Invocation)
	}
	return invs
}
