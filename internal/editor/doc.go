// Package editor declares the action API the dispatch engine executes
// against, plus the small pieces of editor state the engine owns:
// string registers and scratch buffers.
//
// The engine never touches buffers, rendering or processes directly;
// it calls a Host. LocalHost is the reference implementation backed by
// os/exec and the system clipboard. Tests use lighter fakes.
package editor
