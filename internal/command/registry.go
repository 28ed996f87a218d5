package command

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ternedit/tern/internal/script"
)

// Func is a natively-implemented command body. Plugins register these;
// script-defined commands use Body instead.
type Func func(args []string, bang bool) error

// Definition is a user-defined command. Exactly one of Body and Func
// carries the behavior.
type Definition struct {
	// Name is the command name as defined.
	Name string

	// Body is the action sequence executed on invocation.
	Body []script.Invocation

	// Func is the native handler for plugin-registered commands.
	Func Func

	// Source names the script or plugin that defined the command.
	Source string
}

// Resolution is the result of a registry lookup.
type Resolution struct {
	// Def is the user definition, when one exists (it shadows Builtin).
	Def *Definition

	// Builtin is the built-in command, when no user definition shadows it.
	Builtin Builtin
}

// IsUser reports whether the lookup resolved to a user command.
func (r Resolution) IsUser() bool { return r.Def != nil }

// Registry stores user command definitions over the builtin set.
type Registry struct {
	mu   sync.RWMutex
	user map[string]*Definition
}

// NewRegistry creates an empty registry. Builtins need no registration;
// they are always present underneath the user table.
func NewRegistry() *Registry {
	return &Registry{user: make(map[string]*Definition)}
}

// Define registers a user command, overwriting any previous definition
// of the same name and shadowing a builtin of the same name.
func (r *Registry) Define(def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := def
	r.user[def.Name] = &d
}

// Remove deletes a user definition. A shadowed builtin of the same name
// becomes reachable again.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.user, name)
}

// RemoveSource deletes every user definition loaded from the named
// script, used when a script is reloaded.
func (r *Registry) RemoveSource(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, def := range r.user {
		if def.Source == source {
			delete(r.user, name)
		}
	}
}

// Lookup resolves a command name: user definitions first, builtins
// second. Returns ErrUnknownCommand when neither matches.
func (r *Registry) Lookup(name string) (Resolution, error) {
	r.mu.RLock()
	def := r.user[name]
	r.mu.RUnlock()

	if def != nil {
		return Resolution{Def: def}, nil
	}
	if b, ok := BuiltinFromName(name); ok {
		return Resolution{Builtin: b}, nil
	}
	return Resolution{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

// Has reports whether name resolves to any command.
func (r *Registry) Has(name string) bool {
	_, err := r.Lookup(name)
	return err == nil
}

// UserNames returns the defined user command names, sorted.
func (r *Registry) UserNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.user))
	for name := range r.user {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Names returns every dispatchable command name: user commands plus
// unshadowed builtin names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.user))
	names := make([]string, 0, len(r.user))
	for name := range r.user {
		names = append(names, name)
		seen[name] = struct{}{}
	}
	for _, name := range BuiltinNames() {
		if _, ok := seen[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
