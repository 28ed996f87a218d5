package key

import "strings"

// Sequence is an ordered series of chords forming one binding trigger,
// such as "gg" or "<space>f".
type Sequence []Chord

// Len returns the number of chords.
func (s Sequence) Len() int {
	return len(s)
}

// IsEmpty reports whether the sequence has no chords.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// Equals reports whether two sequences are chord-for-chord identical.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, c := range s {
		if !c.Equals(other[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether s begins with prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, c := range prefix {
		if !c.Equals(s[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// String renders the sequence in script notation, e.g. "gli" or
// "<esc><c-c>".
func (s Sequence) String() string {
	var sb strings.Builder
	for _, c := range s {
		sb.WriteString(c.String())
	}
	return sb.String()
}
