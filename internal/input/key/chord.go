package key

import "strings"

// Mod is a bitmask of modifier keys held during a chord.
type Mod uint8

const (
	// ModNone indicates no modifiers.
	ModNone Mod = 0

	// ModCtrl indicates the control key.
	ModCtrl Mod = 1 << iota

	// ModAlt indicates the alt key.
	ModAlt

	// ModShift indicates the shift key on named keys. Shifted characters
	// carry the shifted rune instead.
	ModShift
)

// Has reports whether m contains mod.
func (m Mod) Has(mod Mod) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Mod) With(mod Mod) Mod {
	return m | mod
}

// String returns the notation prefix for the modifiers, e.g. "c-" or "c-a-".
func (m Mod) String() string {
	var sb strings.Builder
	if m.Has(ModCtrl) {
		sb.WriteString("c-")
	}
	if m.Has(ModAlt) {
		sb.WriteString("a-")
	}
	if m.Has(ModShift) {
		sb.WriteString("s-")
	}
	return sb.String()
}

// modFromLetter maps a notation letter to its modifier.
func modFromLetter(letter string) Mod {
	switch letter {
	case "c":
		return ModCtrl
	case "a":
		return ModAlt
	case "s":
		return ModShift
	default:
		return ModNone
	}
}

// Chord is one logical keypress: a key plus held modifiers.
type Chord struct {
	// Key identifies the key pressed.
	Key Key

	// Rune holds the character for KeyRune chords.
	Rune rune

	// Mods holds the active modifiers.
	Mods Mod
}

// NewRuneChord builds a chord for a plain character.
func NewRuneChord(r rune) Chord {
	return Chord{Key: KeyRune, Rune: r}
}

// NewChord builds a chord for a named key.
func NewChord(k Key) Chord {
	return Chord{Key: k}
}

// Ctrl builds a ctrl+character chord.
func Ctrl(r rune) Chord {
	return Chord{Key: KeyRune, Rune: r, Mods: ModCtrl}
}

// Alt builds an alt+character chord.
func Alt(r rune) Chord {
	return Chord{Key: KeyRune, Rune: r, Mods: ModAlt}
}

// IsRune reports whether this is a character chord.
func (c Chord) IsRune() bool {
	return c.Key == KeyRune && c.Rune != 0
}

// IsZero reports whether the chord is the zero value.
func (c Chord) IsZero() bool {
	return c.Key == KeyNone && c.Rune == 0 && c.Mods == ModNone
}

// Equals reports whether two chords represent the same keypress.
func (c Chord) Equals(other Chord) bool {
	return c.Key == other.Key && c.Rune == other.Rune && c.Mods == other.Mods
}

// String renders the chord in script notation. Plain characters render
// bare; everything else is bracketed: <esc>, <c-c>, <a-f1>, <space>.
func (c Chord) String() string {
	if c.Key == KeyRune && c.Mods == ModNone {
		switch c.Rune {
		case ' ':
			return "<space>"
		case '<':
			return "<less>"
		case '>':
			return "<greater>"
		default:
			return string(c.Rune)
		}
	}

	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(c.Mods.String())
	if c.Key == KeyRune {
		switch c.Rune {
		case ' ':
			sb.WriteString("space")
		case '<':
			sb.WriteString("less")
		case '>':
			sb.WriteString("greater")
		default:
			sb.WriteRune(c.Rune)
		}
	} else {
		sb.WriteString(c.Key.String())
	}
	sb.WriteByte('>')
	return sb.String()
}
