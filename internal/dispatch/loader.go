package dispatch

import (
	"fmt"
	"os"

	"github.com/ternedit/tern/internal/command"
	"github.com/ternedit/tern/internal/input/keymap"
	"github.com/ternedit/tern/internal/input/mode"
	"github.com/ternedit/tern/internal/script"
)

// LoadScript parses and applies a configuration script. source names
// the script for error messages and for binding ownership; loading the
// same source again replaces everything the previous load defined.
//
// A parse failure leaves the keymap table and command registry exactly
// as they were.
func (d *Dispatcher) LoadScript(source, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.loadScript(source, text)
	d.drainReplay()
	return err
}

// LoadFile reads and applies a configuration script from disk.
func (d *Dispatcher) LoadFile(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.loadFile(path)
	d.drainReplay()
	return err
}

// loadFile reads and applies a script. Lock must be held.
func (d *Dispatcher) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script %s: %w", path, err)
	}
	return d.loadScript(path, string(data))
}

// loadScript parses, platform-filters and applies a script. Lock must
// be held.
func (d *Dispatcher) loadScript(source, text string) error {
	parsed, err := script.Parse(source, text)
	if err != nil {
		return err
	}
	filtered := script.Filter(parsed, d.platform)

	// Only after a clean parse: drop the previous load's definitions.
	d.env.Keymap.RemoveSource(source)
	d.env.Commands.RemoveSource(source)

	d.applyStatements(filtered.Statements, source)
	d.log.Info("loaded %s: %d bindings, %d commands",
		source, d.env.Keymap.Len(), len(d.env.Commands.UserNames()))
	return nil
}

// applyStatements installs definitions and runs load-time invocations.
// A failing invocation is reported and does not stop the load.
func (d *Dispatcher) applyStatements(stmts []script.Statement, source string) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *script.MapStatement:
			kind, ok := mode.FromName(s.Mode)
			if !ok {
				// Mode names are validated at parse time.
				continue
			}
			d.env.Keymap.Bind(kind, s.From, keymap.Target{
				Keys:  s.ToKeys,
				Block: s.ToBlock,
			}, source)

		case *script.CommandStatement:
			d.env.Commands.Define(command.Definition{
				Name:   s.Name,
				Body:   s.Body,
				Source: source,
			})

		case *script.EvalOnStatement:
			// Filter splices matching bodies inline, but tolerate a
			// script applied without filtering.
			if s.Matches(d.platform) {
				d.applyStatements(s.Body, source)
			}

		case *script.InvocationStatement:
			d.execTop([]script.Invocation{s.Invocation}, nil)
		}
	}
}
