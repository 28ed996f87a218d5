package editor

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidRegister marks a register key outside a-z.
var ErrInvalidRegister = errors.New("editor: invalid register")

// Register keys with fixed roles.
const (
	// RegisterReadline mirrors the last submitted readline input.
	RegisterReadline = 'r'
	// RegisterPicker mirrors the last chosen picker entry.
	RegisterPicker = 'p'
	// RegisterYank is the default copy/paste register.
	RegisterYank = 'y'
)

const registerCount = 'z' - 'a' + 1

// Registers is the set of 26 single-letter string registers.
type Registers struct {
	mu     sync.RWMutex
	values [registerCount]string
}

// NewRegisters creates an empty register set.
func NewRegisters() *Registers {
	return &Registers{}
}

// valid reports whether k names a register.
func valid(k rune) bool {
	return k >= 'a' && k <= 'z'
}

// Get returns the register's value, or "" for an invalid key.
func (r *Registers) Get(k rune) string {
	if !valid(k) {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[k-'a']
}

// Set stores value in the register; invalid keys are ignored.
func (r *Registers) Set(k rune, value string) error {
	if !valid(k) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, k)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[k-'a'] = value
	return nil
}
