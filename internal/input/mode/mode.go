package mode

import (
	"fmt"

	"github.com/ternedit/tern/internal/input/key"
)

// Kind identifies an input mode.
type Kind uint8

const (
	// Normal is the default modal-command mode.
	Normal Kind = iota
	// Insert interprets unmapped character chords as text input.
	Insert
	// Command is the ':'-style command prompt mode.
	Command
	// ReadLine is the single-line prompt mode used by the readline builtin.
	ReadLine
	// Picker is the filtered-list prompt mode used by the pick builtin.
	Picker
)

// kindCount is the number of defined modes.
const kindCount = 5

// String returns the mode name as used in rc scripts.
func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case Command:
		return "command"
	case ReadLine:
		return "readline"
	case Picker:
		return "picker"
	default:
		return fmt.Sprintf("mode(%d)", k)
	}
}

// DisplayName returns the name shown in the status line.
func (k Kind) DisplayName() string {
	switch k {
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	case Command:
		return "COMMAND"
	case ReadLine:
		return "READLINE"
	case Picker:
		return "PICKER"
	default:
		return "?"
	}
}

// FromName looks up a mode by its rc-script name.
func FromName(name string) (Kind, bool) {
	switch name {
	case "normal":
		return Normal, true
	case "insert":
		return Insert, true
	case "command":
		return Command, true
	case "readline", "read-line":
		return ReadLine, true
	case "picker", "pick":
		return Picker, true
	default:
		return Normal, false
	}
}

// All returns every defined mode, in declaration order.
func All() []Kind {
	return []Kind{Normal, Insert, Command, ReadLine, Picker}
}

// IsPrompt reports whether the mode is a transient prompt mode.
func (k Kind) IsPrompt() bool {
	return k == Command || k == ReadLine || k == Picker
}

// Fallback describes what a mode does with a chord that matched nothing.
type Fallback uint8

const (
	// Drop discards the chord.
	Drop Fallback = iota
	// InsertText feeds the chord's character to the active text sink.
	InsertText
)

// FallbackFor returns the unmatched-chord policy for a mode. Prompt modes
// and insert mode consume plain characters as text; normal mode drops.
func FallbackFor(k Kind, c key.Chord) Fallback {
	if k == Normal {
		return Drop
	}
	if c.IsRune() && !c.Mods.Has(key.ModCtrl) && !c.Mods.Has(key.ModAlt) {
		return InsertText
	}
	return Drop
}
