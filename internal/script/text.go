package script

import (
	"strconv"
	"unicode"
)

// parseText scans raw text for interpolation tokens and splits it into
// segments. pos is the position of the text's first character, used for
// error reporting.
//
// A token is '@', an identifier, and a parenthesized argument:
// @arg(0), @arg(*), @arg(!), @readline-input(), @picker-entry().
// An '@' not followed by identifier-then-'(' is a literal character.
// An unknown token name, or a malformed argument, is a syntax error.
func parseText(source, raw string, pos Position) (Text, error) {
	var text Text
	runes := []rune(raw)
	lit := make([]rune, 0, len(runes))

	flush := func() {
		if len(lit) > 0 {
			text = append(text, Segment{Literal: string(lit)})
			lit = lit[:0]
		}
	}

	for i := 0; i < len(runes); {
		if runes[i] != '@' {
			lit = append(lit, runes[i])
			i++
			continue
		}

		name, arg, next, ok := scanToken(runes, i)
		if !ok {
			lit = append(lit, runes[i])
			i++
			continue
		}

		tok, err := resolveTokenName(source, name, arg, offsetPos(pos, raw, i))
		if err != nil {
			return nil, err
		}

		flush()
		text = append(text, Segment{IsToken: true, Token: tok})
		i = next
	}

	flush()
	return text, nil
}

// scanToken tries to read "@name(arg)" at runes[start]. It reports the
// token name, the raw argument, and the index just past the ')'.
func scanToken(runes []rune, start int) (name, arg string, next int, ok bool) {
	i := start + 1 // past '@'

	nameStart := i
	for i < len(runes) && isTokenNameRune(runes[i]) {
		i++
	}
	if i == nameStart || i >= len(runes) || runes[i] != '(' {
		return "", "", 0, false
	}
	name = string(runes[nameStart:i])
	i++ // past '('

	argStart := i
	for i < len(runes) && runes[i] != ')' {
		i++
	}
	if i >= len(runes) {
		return "", "", 0, false
	}
	return name, string(runes[argStart:i]), i + 1, true
}

func isTokenNameRune(r rune) bool {
	return unicode.IsLower(r) || unicode.IsDigit(r) || r == '-'
}

// resolveTokenName maps a scanned token to its tagged variant.
func resolveTokenName(source, name, arg string, pos Position) (Token, error) {
	switch name {
	case "arg":
		switch arg {
		case "*":
			return Token{Kind: TokenArgAll}, nil
		case "!":
			return Token{Kind: TokenArgBang}, nil
		default:
			index, err := strconv.Atoi(arg)
			if err != nil || index < 0 {
				return Token{}, syntaxErrorf(source, pos, "invalid @arg index %q", arg)
			}
			return Token{Kind: TokenArgRef, Index: index}, nil
		}
	case "readline-input":
		if arg != "" {
			return Token{}, syntaxErrorf(source, pos, "@readline-input takes no argument")
		}
		return Token{Kind: TokenReadlineInput}, nil
	case "picker-entry":
		if arg != "" {
			return Token{}, syntaxErrorf(source, pos, "@picker-entry takes no argument")
		}
		return Token{Kind: TokenPickerEntry}, nil
	default:
		return Token{}, syntaxErrorf(source, pos, "unknown interpolation token @%s", name)
	}
}

// offsetPos advances pos over raw[:offset] so token errors point at the
// token, not the start of the enclosing word or string.
func offsetPos(pos Position, raw string, offset int) Position {
	for _, r := range string([]rune(raw)[:offset]) {
		if r == '\n' {
			pos.Line++
			pos.Col = 1
		} else {
			pos.Col++
		}
	}
	return pos
}
