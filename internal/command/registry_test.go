package command

import (
	"errors"
	"testing"

	"github.com/ternedit/tern/internal/script"
)

func body(t *testing.T, src string) []script.Invocation {
	t.Helper()
	s, err := script.Parse("test.rc", "command x @{ "+src+" }")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return s.Statements[0].(*script.CommandStatement).Body
}

func TestLookupBuiltin(t *testing.T) {
	r := NewRegistry()
	res, err := r.Lookup("save")
	if err != nil {
		t.Fatalf("Lookup(save) error: %v", err)
	}
	if res.IsUser() || res.Builtin != BuiltinSave {
		t.Errorf("Lookup(save) = %+v, want builtin save", res)
	}
}

func TestLookupUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("no-such-command")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("error = %v, want ErrUnknownCommand", err)
	}
}

func TestDefineAndShadow(t *testing.T) {
	r := NewRegistry()
	r.Define(Definition{Name: "quit", Body: body(t, "save-all; quit!"), Source: "user.rc"})

	res, err := r.Lookup("quit")
	if err != nil {
		t.Fatalf("Lookup(quit) error: %v", err)
	}
	if !res.IsUser() {
		t.Fatal("user definition should shadow the builtin")
	}
	if len(res.Def.Body) != 2 {
		t.Errorf("body len = %d, want 2", len(res.Def.Body))
	}

	// Removing the user command restores the builtin.
	r.Remove("quit")
	res, err = r.Lookup("quit")
	if err != nil {
		t.Fatalf("Lookup after Remove error: %v", err)
	}
	if res.IsUser() || res.Builtin != BuiltinQuit {
		t.Errorf("Lookup after Remove = %+v, want builtin quit", res)
	}
}

func TestRedefinitionOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Define(Definition{Name: "greet", Body: body(t, "print first")})
	r.Define(Definition{Name: "greet", Body: body(t, "print second")})

	res, _ := r.Lookup("greet")
	if got := res.Def.Body[0].Args[0].LiteralString(); got != "second" {
		t.Errorf("body arg = %q, want second (last definition wins)", got)
	}
}

func TestRemoveSource(t *testing.T) {
	r := NewRegistry()
	r.Define(Definition{Name: "a", Body: body(t, "print a"), Source: "one.rc"})
	r.Define(Definition{Name: "b", Body: body(t, "print b"), Source: "two.rc"})

	r.RemoveSource("one.rc")
	if r.Has("a") && func() bool { res, _ := r.Lookup("a"); return res.IsUser() }() {
		t.Error("RemoveSource left definition from one.rc")
	}
	if res, _ := r.Lookup("b"); !res.IsUser() {
		t.Error("RemoveSource removed definition from another script")
	}
}

func TestBuiltinNamesRoundTrip(t *testing.T) {
	for _, name := range BuiltinNames() {
		b, ok := BuiltinFromName(name)
		if !ok || b == BuiltinNone {
			t.Errorf("BuiltinFromName(%q) failed", name)
		}
	}
	if _, ok := BuiltinFromName("definitely-not-builtin"); ok {
		t.Error("BuiltinFromName accepted an unknown name")
	}
}
