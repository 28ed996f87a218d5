// Package app assembles the interpreter: environment, dispatcher,
// host, settings, plugins and configuration reload. Frontends construct
// an App, feed it key chords, and render from its state.
package app
