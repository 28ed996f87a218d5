// Package config holds the runtime settings registry, the TOML
// settings file loader, and the file watcher that drives live reload
// of configuration scripts.
//
// Settings are flat string key/value pairs. Scripts write them with
// the config command; the TOML file seeds them at startup. Consumers
// read through the typed accessors and fall back to a default when a
// key is unset or malformed.
package config
