package plugin

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ternedit/tern/internal/logging"
	"github.com/ternedit/tern/internal/plugin/lua"
)

// Manager owns the Lua engine and tracks which plugin files are loaded.
type Manager struct {
	mu sync.Mutex

	ed     lua.Editor
	engine *lua.Engine
	log    *logging.Logger

	loaded []string
}

// NewManager creates a manager with a fresh Lua engine.
func NewManager(ed lua.Editor, log *logging.Logger) (*Manager, error) {
	if log == nil {
		log = logging.Null
	}
	engine, err := lua.NewEngine(ed, log)
	if err != nil {
		return nil, err
	}
	return &Manager{
		ed:     ed,
		engine: engine,
		log:    log.WithComponent("plugin"),
	}, nil
}

// Engine exposes the underlying Lua engine.
func (m *Manager) Engine() *lua.Engine {
	return m.engine
}

// LoadDir loads every .lua file in dir, in name order. A missing
// directory is not an error. Individual plugin failures are logged and
// do not stop the remaining plugins from loading.
func (m *Manager) LoadDir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := m.LoadFile(ctx, path); err != nil {
			m.log.Error("loading %s: %v", path, err)
		}
	}
	return nil
}

// LoadFile loads one plugin file. Loading a file that is already
// loaded replaces its definitions.
func (m *Manager) LoadFile(ctx context.Context, path string) error {
	m.mu.Lock()
	already := m.isLoaded(path)
	m.mu.Unlock()

	if already {
		m.ed.RemoveSource(path)
	}
	if err := m.engine.LoadFile(ctx, path); err != nil {
		return err
	}

	m.mu.Lock()
	if !m.isLoaded(path) {
		m.loaded = append(m.loaded, path)
	}
	m.mu.Unlock()

	m.log.Info("loaded plugin %s", path)
	return nil
}

// Unload removes everything a plugin file defined.
func (m *Manager) Unload(path string) {
	m.ed.RemoveSource(path)

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.loaded {
		if p == path {
			m.loaded = append(m.loaded[:i], m.loaded[i+1:]...)
			return
		}
	}
}

// Loaded returns the loaded plugin paths in load order.
func (m *Manager) Loaded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loaded...)
}

// Close shuts the Lua engine down.
func (m *Manager) Close() {
	m.engine.Close()
}

// isLoaded reports whether path is tracked. Lock must be held.
func (m *Manager) isLoaded(path string) bool {
	for _, p := range m.loaded {
		if p == path {
			return true
		}
	}
	return false
}
