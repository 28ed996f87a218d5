package dispatch

import (
	"sync"

	"github.com/ternedit/tern/internal/editor"
	"github.com/ternedit/tern/internal/input/key"
	"github.com/ternedit/tern/internal/input/keymap"
	"github.com/ternedit/tern/internal/input/mode"
	"github.com/ternedit/tern/internal/logging"
	"github.com/ternedit/tern/internal/script"
)

const (
	// maxRemapDepth bounds key-to-key remap chains.
	maxRemapDepth = 32

	// maxReplayPerDispatch bounds how many enqueued keys one dispatch
	// may drain, so a binding that re-enqueues itself cannot hang the
	// input loop.
	maxReplayPerDispatch = 1000
)

// Dispatcher routes incoming chords through the keymap table and runs
// the actions they resolve to. One mutex serializes key handling,
// continuation resumption and script loading; hosts may call the
// Resumer methods from any goroutine.
type Dispatcher struct {
	mu sync.Mutex

	env  *Environment
	host editor.Host
	log  *logging.Logger

	platform string

	// buffer holds chords forming a strict prefix of some binding.
	buffer key.Sequence

	// replay holds keys enqueued by the enqueue-keys builtin.
	replay []key.Chord

	conts map[editor.ContinuationID]*continuation
}

// New creates a dispatcher over env delivering actions to host.
func New(env *Environment, host editor.Host, log *logging.Logger) *Dispatcher {
	if log == nil {
		log = logging.Null
	}
	return &Dispatcher{
		env:      env,
		host:     host,
		log:      log.WithComponent("dispatch"),
		platform: script.CurrentPlatform(),
		conts:    make(map[editor.ContinuationID]*continuation),
	}
}

// Env returns the dispatcher's environment.
func (d *Dispatcher) Env() *Environment {
	return d.env
}

// HandleKey feeds one chord through the active mode's keymap.
func (d *Dispatcher) HandleKey(c key.Chord) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.feed(c, 0)
	d.drainReplay()
}

// PendingKeys returns the chords accumulated toward a multi-chord
// binding, for status line display.
func (d *Dispatcher) PendingKeys() key.Sequence {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buffer.Clone()
}

// feed appends c to the pending buffer and acts on the resolve result.
func (d *Dispatcher) feed(c key.Chord, remapDepth int) {
	d.buffer = append(d.buffer, c)
	m := d.env.Modes.Current()

	res := d.env.Keymap.Resolve(m, d.buffer)
	switch res.Status {
	case keymap.Pending:
		return

	case keymap.Matched:
		d.buffer = nil
		d.runTarget(res.Binding, remapDepth)

	case keymap.NoMatch:
		// The whole buffer is discarded; only the chord that started
		// it goes through the mode's fallback, so a failed multi-chord
		// attempt never types its suffix into the buffer.
		first := d.buffer[0]
		d.buffer = nil
		d.fallback(m, first)
	}
}

// runTarget executes a matched binding.
func (d *Dispatcher) runTarget(b *keymap.Binding, remapDepth int) {
	if b.Target.IsKeys() {
		if remapDepth >= maxRemapDepth {
			d.log.Warn("remap chain too deep at %s", b.From.String())
			d.host.ShowError(ErrReplayLimit)
			return
		}
		for _, c := range b.Target.Keys {
			d.feed(c, remapDepth+1)
		}
		return
	}
	d.execTop(b.Target.Block, nil)
}

// fallback applies the mode's unmatched-chord policy.
func (d *Dispatcher) fallback(m mode.Kind, c key.Chord) {
	switch mode.FallbackFor(m, c) {
	case mode.InsertText:
		if err := d.host.InsertText(string(c.Rune)); err != nil {
			d.host.ShowError(wrapHost(err))
		}
	case mode.Drop:
		d.log.Debug("dropped %s in %s mode", c.String(), m.String())
	}
}

// drainReplay feeds keys enqueued during dispatch back through the
// keymap. Must be called with the lock held, once per entry point.
func (d *Dispatcher) drainReplay() {
	for n := 0; len(d.replay) > 0; n++ {
		if n >= maxReplayPerDispatch {
			d.log.Error("replay queue not draining, dropping %d keys", len(d.replay))
			d.replay = nil
			d.host.ShowError(ErrReplayLimit)
			return
		}
		c := d.replay[0]
		d.replay = d.replay[1:]
		d.feed(c, 0)
	}
}
