package dispatch

import (
	"github.com/ternedit/tern/internal/command"
	"github.com/ternedit/tern/internal/config"
	"github.com/ternedit/tern/internal/editor"
	"github.com/ternedit/tern/internal/input/keymap"
	"github.com/ternedit/tern/internal/input/mode"
)

// Environment bundles the interpreter state one dispatcher operates on:
// the keymap table, the command registry, the registers, the settings,
// and the mode manager.
type Environment struct {
	Keymap    *keymap.Table
	Commands  *command.Registry
	Registers *editor.Registers
	Settings  *config.Settings
	Modes     *mode.Manager
}

// NewEnvironment creates an environment with the default key bindings
// loaded and normal mode active.
func NewEnvironment() *Environment {
	table := keymap.NewTable()
	keymap.LoadDefaults(table)

	return &Environment{
		Keymap:    table,
		Commands:  command.NewRegistry(),
		Registers: editor.NewRegisters(),
		Settings:  config.NewSettings(),
		Modes:     mode.NewManager(),
	}
}

// CopyCommand returns the configured external copy command, empty when
// the system clipboard should be used.
func (e *Environment) CopyCommand() string {
	return e.Settings.String(config.KeyCopyCommand, "")
}

// PasteCommand returns the configured external paste command, empty
// when the system clipboard should be used.
func (e *Environment) PasteCommand() string {
	return e.Settings.String(config.KeyPasteCommand, "")
}
