package keymap

import (
	"sync"

	"github.com/ternedit/tern/internal/input/key"
	"github.com/ternedit/tern/internal/input/mode"
	"github.com/ternedit/tern/internal/script"
)

// Target is what a binding triggers: either replacement keys replayed
// through the input loop, or a block of invocations. Exactly one field
// is set.
type Target struct {
	// Keys is the replacement key sequence for key-remap bindings.
	Keys key.Sequence

	// Block is the action sequence for command bindings.
	Block []script.Invocation
}

// IsKeys reports whether the target replays keys.
func (t Target) IsKeys() bool { return t.Keys != nil }

// Binding maps a chord sequence to a target within one mode.
type Binding struct {
	// Mode is the input mode the binding applies to.
	Mode mode.Kind

	// From is the triggering chord sequence.
	From key.Sequence

	// Target is executed when From matches.
	Target Target

	// Source names the script that created the binding.
	Source string
}

// Status classifies the outcome of a resolve.
type Status uint8

const (
	// NoMatch means no binding matches and none could with more input.
	NoMatch Status = iota
	// Pending means the input is a strict prefix of at least one binding.
	Pending
	// Matched means a binding matches the input exactly.
	Matched
)

// String returns a readable status name.
func (s Status) String() string {
	switch s {
	case NoMatch:
		return "no-match"
	case Pending:
		return "pending"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Result is the outcome of a resolve. Binding is set only for Matched.
type Result struct {
	Status  Status
	Binding *Binding
}

// Table holds all bindings, grouped per mode in definition order.
type Table struct {
	mu   sync.RWMutex
	maps map[mode.Kind][]*Binding
}

// NewTable creates an empty binding table.
func NewTable() *Table {
	return &Table{maps: make(map[mode.Kind][]*Binding)}
}

// Bind inserts a binding, or overwrites the target in place when the
// (mode, from) pair is already bound. The last bind wins.
func (t *Table) Bind(m mode.Kind, from key.Sequence, target Target, source string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, b := range t.maps[m] {
		if b.From.Equals(from) {
			b.Target = target
			b.Source = source
			return
		}
	}
	t.maps[m] = append(t.maps[m], &Binding{
		Mode:   m,
		From:   from.Clone(),
		Target: target,
		Source: source,
	})
}

// Resolve matches accumulated input against the mode's bindings. An
// exact match wins immediately; otherwise input that is a strict
// prefix of some binding reports Pending.
func (t *Table) Resolve(m mode.Kind, pending key.Sequence) Result {
	if pending.IsEmpty() {
		return Result{Status: NoMatch}
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	prefix := false
	for _, b := range t.maps[m] {
		if b.From.Equals(pending) {
			return Result{Status: Matched, Binding: b}
		}
		if b.From.HasPrefix(pending) {
			prefix = true
		}
	}

	if prefix {
		return Result{Status: Pending}
	}
	return Result{Status: NoMatch}
}

// RemoveSource drops every binding created by the named script, used
// when a script is reloaded.
func (t *Table) RemoveSource(source string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for m, bindings := range t.maps {
		kept := bindings[:0]
		for _, b := range bindings {
			if b.Source != source {
				kept = append(kept, b)
			}
		}
		t.maps[m] = kept
	}
}

// Bindings returns the mode's bindings in definition order.
func (t *Table) Bindings(m mode.Kind) []Binding {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Binding, 0, len(t.maps[m]))
	for _, b := range t.maps[m] {
		out = append(out, *b)
	}
	return out
}

// Len returns the total number of bindings across all modes.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, bindings := range t.maps {
		n += len(bindings)
	}
	return n
}
