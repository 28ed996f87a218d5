package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/ternedit/tern/internal/input/key"
)

// specialKeys maps tcell special keys to ours.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// chordFromEvent translates a tcell key event into a chord. Terminal
// control codes (KeyCtrlA..KeyCtrlZ) arrive as distinct tcell keys and
// are folded back into ctrl-modified rune chords.
func chordFromEvent(ev *tcell.EventKey) (key.Chord, bool) {
	var mods key.Mod
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}

	if k, ok := specialKeys[ev.Key()]; ok {
		return key.Chord{Key: k, Mods: mods}, true
	}

	if ev.Key() == tcell.KeyRune {
		return key.Chord{Key: key.KeyRune, Rune: ev.Rune(), Mods: mods}, true
	}

	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + (ev.Key() - tcell.KeyCtrlA))
		return key.Ctrl(r), true
	}

	return key.Chord{}, false
}
