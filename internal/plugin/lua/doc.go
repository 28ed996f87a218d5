// Package lua embeds a Lua interpreter for plugins.
//
// Plugins are plain Lua files. They script the editor through a global
// tern table: defining commands, loading configuration fragments,
// reading and writing settings and registers, and executing command
// lines. Everything a plugin registers is owned by the plugin's source
// name, so unloading follows the same path as script reload.
//
// gopher-lua states are not goroutine-safe, so every operation on the
// state is funneled through a single worker goroutine by the Executor.
// Command handlers registered by plugins are called back on that same
// goroutine.
package lua
