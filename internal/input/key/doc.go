// Package key defines chords (one logical keypress with modifiers) and
// chord sequences, along with the textual notation used by rc scripts.
//
// The notation places named keys in angle brackets: <esc>, <enter>,
// <space>, <c-c> (ctrl+c), <a-x> (alt+x), <f5>. Bare characters stand
// for themselves, so "gli" is the three-chord sequence g, l, i.
package key
