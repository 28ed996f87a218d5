package mode

import "sync"

// ChangeCallback is notified after a completed mode transition.
type ChangeCallback func(from, to Kind)

// Hooks are optional enter/exit handlers for a mode.
type Hooks struct {
	// OnEnter runs after the mode becomes current. from is the prior mode.
	OnEnter func(from Kind)

	// OnExit runs before the mode stops being current. to is the next mode.
	OnExit func(to Kind)
}

// Manager tracks the current input mode and runs transition hooks.
type Manager struct {
	mu sync.RWMutex

	current  Kind
	previous Kind

	hooks     [kindCount]Hooks
	callbacks []ChangeCallback
}

// NewManager creates a manager starting in normal mode.
func NewManager() *Manager {
	return &Manager{current: Normal, previous: Normal}
}

// SetHooks installs enter/exit hooks for a mode, replacing any existing.
func (m *Manager) SetHooks(k Kind, hooks Hooks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks[k] = hooks
}

// OnChange registers a callback notified after every transition.
func (m *Manager) OnChange(cb ChangeCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}

// Current returns the active mode.
func (m *Manager) Current() Kind {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Previous returns the mode before the last transition.
func (m *Manager) Previous() Kind {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// Is reports whether the active mode is k.
func (m *Manager) Is(k Kind) bool {
	return m.Current() == k
}

// Switch transitions to the given mode. Switching to the current mode is
// a no-op, matching the original editor behavior.
func (m *Manager) Switch(to Kind) {
	m.mu.Lock()
	from := m.current
	if from == to {
		m.mu.Unlock()
		return
	}

	exit := m.hooks[from].OnExit
	enter := m.hooks[to].OnEnter
	callbacks := make([]ChangeCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)

	m.previous = from
	m.current = to
	m.mu.Unlock()

	// Hooks run outside the lock so they may call back into the manager.
	if exit != nil {
		exit(to)
	}
	if enter != nil {
		enter(from)
	}
	for _, cb := range callbacks {
		cb(from, to)
	}
}

// Return switches back to the previous mode. Prompt modes use this when
// a prompt is submitted or cancelled.
func (m *Manager) Return() {
	m.mu.RLock()
	prev := m.previous
	m.mu.RUnlock()
	m.Switch(prev)
}
