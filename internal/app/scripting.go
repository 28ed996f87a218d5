package app

import (
	"github.com/ternedit/tern/internal/command"
	"github.com/ternedit/tern/internal/plugin/lua"
)

// App exposes the scripting surface plugins use.
var _ lua.Editor = (*App)(nil)

// DefineCommand registers a plugin-backed command.
func (a *App) DefineCommand(name, source string, fn func(args []string, bang bool) error) {
	a.env.Commands.Define(command.Definition{
		Name:   name,
		Func:   command.Func(fn),
		Source: source,
	})
}

// RemoveSource drops every binding and command a plugin or script
// defined.
func (a *App) RemoveSource(source string) {
	a.env.Keymap.RemoveSource(source)
	a.env.Commands.RemoveSource(source)
}

// LoadScript applies a configuration script fragment.
func (a *App) LoadScript(source, text string) error {
	return a.disp.LoadScript(source, text)
}

// ExecuteLine runs one command line.
func (a *App) ExecuteLine(text string) error {
	return a.disp.ExecuteLine(text)
}

// Print shows a status message.
func (a *App) Print(msg string) {
	a.host.ShowStatus(msg)
}

// Setting reads a settings key, empty when unset.
func (a *App) Setting(key string) string {
	return a.env.Settings.String(key, "")
}

// SetSetting writes a settings key.
func (a *App) SetSetting(key, value string) {
	a.env.Settings.Set(key, value)
}

// Register reads a single-letter register.
func (a *App) Register(name rune) string {
	return a.env.Registers.Get(name)
}

// SetRegister writes a single-letter register.
func (a *App) SetRegister(name rune, value string) error {
	return a.env.Registers.Set(name, value)
}
