// Package keymap stores per-mode chord bindings and resolves pending
// input against them.
//
// Binding an identical (mode, chord-sequence) pair overwrites the
// earlier target in place, so the last script statement wins. Resolve
// distinguishes an exact match, a strict prefix of some longer binding
// (keep waiting), and no match at all.
package keymap
