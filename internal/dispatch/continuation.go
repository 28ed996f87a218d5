package dispatch

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ternedit/tern/internal/command"
	"github.com/ternedit/tern/internal/editor"
	"github.com/ternedit/tern/internal/script"
)

// contKind distinguishes what kind of completion a continuation waits
// for, so a stray resume of the wrong kind can be rejected.
type contKind uint8

const (
	contReadline contKind = iota
	contPicker
	contProcess
)

func (k contKind) String() string {
	switch k {
	case contReadline:
		return "readline"
	case contPicker:
		return "picker"
	case contProcess:
		return "process"
	default:
		return "unknown"
	}
}

// continuation is a suspended action sequence waiting on a prompt or a
// process. ctx snapshots the suspending invocation's context; resuming
// derives a child with the delivered value bound.
type continuation struct {
	kind contKind
	body []script.Invocation
	ctx  *command.InvocationContext

	// insertOutput feeds the captured process output to the host's
	// text sink before the body runs.
	insertOutput bool

	// pickerEntries splits the captured process output into lines and
	// installs them as the picker entry list before the body runs.
	pickerEntries bool
}

// register stores c under a fresh id. Lock must be held.
func (d *Dispatcher) register(c *continuation) editor.ContinuationID {
	id := editor.NewContinuationID()
	d.conts[id] = c
	return id
}

// unregister drops a registered continuation. Lock must be held.
func (d *Dispatcher) unregister(id editor.ContinuationID) {
	if id != uuid.Nil {
		delete(d.conts, id)
	}
}

// take removes and returns the continuation for id if its kind matches.
// Lock must be held.
func (d *Dispatcher) take(id editor.ContinuationID, kind contKind) *continuation {
	c, ok := d.conts[id]
	if !ok {
		d.log.Warn("resume for unknown continuation %s", id)
		return nil
	}
	if c.kind != kind {
		d.log.Warn("continuation %s resumed as %s, registered as %s", id, kind, c.kind)
		return nil
	}
	delete(d.conts, id)
	return c
}

// PendingContinuations returns how many suspended sequences are
// waiting.
func (d *Dispatcher) PendingContinuations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.conts)
}

// ResumeReadline fires a readline continuation with the submitted text.
func (d *Dispatcher) ResumeReadline(id editor.ContinuationID, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := d.take(id, contReadline)
	if c == nil {
		return
	}
	// Leave the prompt mode before the body runs; the body may open
	// the next prompt.
	d.env.Modes.Return()
	_ = d.env.Registers.Set(editor.RegisterReadline, text)
	d.execTop(c.body, c.ctx.WithReadlineInput(text))
	d.drainReplay()
}

// ResumePicker fires a pick continuation with the chosen entry.
func (d *Dispatcher) ResumePicker(id editor.ContinuationID, entry string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := d.take(id, contPicker)
	if c == nil {
		return
	}
	d.env.Modes.Return()
	_ = d.env.Registers.Set(editor.RegisterPicker, entry)
	d.execTop(c.body, c.ctx.WithPickerEntry(entry))
	d.drainReplay()
}

// ResumeProcess fires a process continuation with the captured output.
func (d *Dispatcher) ResumeProcess(id editor.ContinuationID, output string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := d.take(id, contProcess)
	if c == nil {
		return
	}
	if err != nil {
		d.log.Warn("process failed: %v", err)
		d.host.ShowError(wrapHost(err))
		return
	}

	if c.insertOutput {
		if err := d.host.InsertText(output); err != nil {
			d.host.ShowError(wrapHost(err))
			return
		}
	}
	if c.pickerEntries {
		if err := d.host.SetPickerEntries(splitLines(output)); err != nil {
			d.host.ShowError(wrapHost(err))
			return
		}
	}

	if len(c.body) > 0 {
		d.execTop(c.body, c.ctx.Child())
	}
	d.drainReplay()
}

// Cancel discards a pending continuation without executing it.
func (d *Dispatcher) Cancel(id editor.ContinuationID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.conts[id]
	if !ok {
		return
	}
	delete(d.conts, id)
	if c.kind == contReadline || c.kind == contPicker {
		d.env.Modes.Return()
	}
	d.log.Debug("continuation %s cancelled", id)
}

// splitLines splits process output into entries, tolerating CRLF and a
// trailing newline.
func splitLines(output string) []string {
	output = strings.ReplaceAll(output, "\r\n", "\n")
	output = strings.TrimSuffix(output, "\n")
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}

var _ editor.Resumer = (*Dispatcher)(nil)
