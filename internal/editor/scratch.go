package editor

import (
	"sort"
	"strings"
	"sync"
)

// Scratch is a named in-memory buffer, used for search results, help
// text and other transient output.
type Scratch struct {
	Name  string
	lines []string
}

// Lines returns the buffer content.
func (s *Scratch) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Text returns the buffer content as one string.
func (s *Scratch) Text() string {
	return strings.Join(s.lines, "\n")
}

// ScratchStore holds scratch buffers by name.
type ScratchStore struct {
	mu      sync.RWMutex
	buffers map[string]*Scratch
}

// NewScratchStore creates an empty store.
func NewScratchStore() *ScratchStore {
	return &ScratchStore{buffers: make(map[string]*Scratch)}
}

// Open returns the named buffer, creating it empty if needed.
func (s *ScratchStore) Open(name string) *Scratch {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.buffers[name]; ok {
		return b
	}
	b := &Scratch{Name: name}
	s.buffers[name] = b
	return b
}

// Get returns the named buffer, or nil.
func (s *ScratchStore) Get(name string) *Scratch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buffers[name]
}

// Replace sets the named buffer's content, creating it if needed.
func (s *ScratchStore) Replace(name string, lines []string) *Scratch {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buffers[name]
	if !ok {
		b = &Scratch{Name: name}
		s.buffers[name] = b
	}
	b.lines = append([]string(nil), lines...)
	return b
}

// Append adds lines to the named buffer, creating it if needed.
func (s *ScratchStore) Append(name string, lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buffers[name]
	if !ok {
		b = &Scratch{Name: name}
		s.buffers[name] = b
	}
	b.lines = append(b.lines, lines...)
}

// Close removes the named buffer.
func (s *ScratchStore) Close(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buffers, name)
}

// Names returns all buffer names, sorted.
func (s *ScratchStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.buffers))
	for name := range s.buffers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
