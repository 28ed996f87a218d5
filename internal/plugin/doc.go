// Package plugin discovers and loads Lua plugins.
//
// A plugin is a single .lua file in the plugin directory. The manager
// loads them in name order at startup; each file's definitions are
// owned by its path, so a plugin can be unloaded or reloaded the same
// way a configuration script is.
package plugin
