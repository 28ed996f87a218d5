package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnclosedBracket  = errors.New("unclosed '<' in key specification")
	ErrUnknownModifier  = errors.New("unknown modifier")
	ErrUnknownKeyName   = errors.New("unknown key name")
	ErrTrailingGarbage  = errors.New("trailing characters after chord")
	ErrEmptyBracketBody = errors.New("empty '<>' in key specification")
)

// ParseChord parses a single chord in script notation.
//
// Accepted forms:
//   - bare character: "a", "G", "#", "!"
//   - named key: "<esc>", "<enter>", "<space>", "<f5>"
//   - modified: "<c-c>", "<a-x>", "<c-a-delete>", "<s-tab>"
//   - escapes for notation characters: "<less>", "<greater>"
func ParseChord(spec string) (Chord, error) {
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	runes := []rune(spec)
	if runes[0] != '<' {
		if len(runes) != 1 {
			return Chord{}, fmt.Errorf("%w: %q", ErrTrailingGarbage, spec)
		}
		return NewRuneChord(runes[0]), nil
	}

	if runes[len(runes)-1] != '>' || len(runes) < 3 {
		return Chord{}, fmt.Errorf("%w: %q", ErrUnclosedBracket, spec)
	}

	return parseBracketed(string(runes[1 : len(runes)-1]))
}

// parseBracketed parses the inside of a <...> chord.
func parseBracketed(inner string) (Chord, error) {
	if inner == "" {
		return Chord{}, ErrEmptyBracketBody
	}

	var mods Mod

	// Consume modifier prefixes: "c-", "a-", "s-". A single letter
	// followed by a hyphen is always a modifier; "f1" etc. never hyphenate.
	for len(inner) >= 2 && inner[1] == '-' {
		mod := modFromLetter(strings.ToLower(inner[:1]))
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: %q", ErrUnknownModifier, inner[:1])
		}
		mods = mods.With(mod)
		inner = inner[2:]
	}

	if inner == "" {
		return Chord{}, ErrEmptyBracketBody
	}

	// Named key
	lower := strings.ToLower(inner)
	if k := KeyFromName(lower); k != KeyNone {
		return Chord{Key: k, Mods: mods}, nil
	}

	// Notation escapes for characters that collide with the syntax.
	switch lower {
	case "space":
		return Chord{Key: KeyRune, Rune: ' ', Mods: mods}, nil
	case "less":
		return Chord{Key: KeyRune, Rune: '<', Mods: mods}, nil
	case "greater":
		return Chord{Key: KeyRune, Rune: '>', Mods: mods}, nil
	case "minus":
		return Chord{Key: KeyRune, Rune: '-', Mods: mods}, nil
	}

	// Single character with modifiers, e.g. <c-c>.
	if utf8.RuneCountInString(inner) == 1 {
		r, _ := utf8.DecodeRuneInString(inner)
		return Chord{Key: KeyRune, Rune: r, Mods: mods}, nil
	}

	return Chord{}, fmt.Errorf("%w: %q", ErrUnknownKeyName, inner)
}

// ParseSequence parses a continuous chord sequence such as "gli" or
// "<esc>;<c-c>x". A '<' opens a bracketed chord and must be closed;
// write "<less>" for a literal '<'.
func ParseSequence(s string) (Sequence, error) {
	var seq Sequence
	runes := []rune(s)

	for i := 0; i < len(runes); {
		if runes[i] != '<' {
			seq = append(seq, NewRuneChord(runes[i]))
			i++
			continue
		}

		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == '>' {
				end = j
				break
			}
		}
		if end == -1 {
			return nil, fmt.Errorf("%w: %q", ErrUnclosedBracket, s)
		}

		chord, err := parseBracketed(string(runes[i+1 : end]))
		if err != nil {
			return nil, err
		}
		seq = append(seq, chord)
		i = end + 1
	}

	return seq, nil
}

// MustParseSequence parses a sequence and panics on error. For use with
// known-valid literals in initialization code.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence " + s + ": " + err.Error())
	}
	return seq
}
