package keymap

import (
	"github.com/ternedit/tern/internal/input/key"
	"github.com/ternedit/tern/internal/input/mode"
)

// defaultSource marks bindings installed before any script runs.
const defaultSource = "default"

// LoadDefaults installs the built-in key remaps: terminal conventions
// <c-c> for escape and <c-m> for enter in every mode, plus <c-h> as
// backspace while inserting.
//
// Other historical normal-mode remaps (s, #, I, <c-i>) target the host
// editor's own editing keys, which do not exist here; rc scripts bind
// those against whatever host is attached.
func LoadDefaults(t *Table) {
	for _, m := range mode.All() {
		t.Bind(m, key.MustParseSequence("<c-c>"), Target{Keys: key.MustParseSequence("<esc>")}, defaultSource)
		t.Bind(m, key.MustParseSequence("<c-m>"), Target{Keys: key.MustParseSequence("<enter>")}, defaultSource)
	}
	t.Bind(mode.Insert, key.MustParseSequence("<c-h>"), Target{Keys: key.MustParseSequence("<backspace>")}, defaultSource)
}
