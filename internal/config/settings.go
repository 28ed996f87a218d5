package config

import (
	"sort"
	"strconv"
	"sync"
)

// Well-known setting keys.
const (
	// KeyCopyCommand is the external command text is piped to on copy.
	// Empty selects the system clipboard.
	KeyCopyCommand = "copy-command"

	// KeyPasteCommand is the external command paste text is read from.
	// Empty selects the system clipboard.
	KeyPasteCommand = "paste-command"

	// KeyTabSize is the display width of a tab.
	KeyTabSize = "tab-size"

	// KeyIndentWithTabs selects tabs over spaces for indentation.
	KeyIndentWithTabs = "indent-with-tabs"

	// KeyLogLevel is the minimum log level.
	KeyLogLevel = "log-level"
)

// Settings is the flat key/value settings registry. All access is
// concurrency-safe.
type Settings struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSettings creates an empty registry.
func NewSettings() *Settings {
	return &Settings{values: make(map[string]string)}
}

// Set stores value under key, replacing any previous value.
func (s *Settings) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get returns the value for key and whether it is set.
func (s *Settings) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// String returns the value for key, or def when unset.
func (s *Settings) String(key, def string) string {
	if v, ok := s.Get(key); ok {
		return v
	}
	return def
}

// Int returns the value for key parsed as an integer, or def when
// unset or malformed.
func (s *Settings) Int(key string, def int) int {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Bool returns the value for key parsed as a boolean, or def when
// unset or malformed.
func (s *Settings) Bool(key string, def bool) bool {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Unset removes key.
func (s *Settings) Unset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Keys returns all set keys, sorted.
func (s *Settings) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of all settings.
func (s *Settings) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
