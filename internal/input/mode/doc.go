// Package mode defines the editor's input modes and the manager that
// coordinates transitions between them.
//
// The mode set is fixed: normal, insert, command, readline and picker.
// The last three are transient prompt modes entered by builtins and left
// on submit or cancel. Each mode decides what happens to chords that
// match no binding.
package mode
