package plugin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// fakeEditor is the minimal editor surface the manager tests need.
type fakeEditor struct {
	mu       sync.Mutex
	prints   []string
	removed  []string
	commands []string
}

func (f *fakeEditor) DefineCommand(name, source string, fn func(args []string, bang bool) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, name)
}

func (f *fakeEditor) RemoveSource(source string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, source)
}

func (f *fakeEditor) LoadScript(source, text string) error { return nil }
func (f *fakeEditor) ExecuteLine(text string) error        { return nil }

func (f *fakeEditor) Print(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prints = append(f.prints, msg)
}

func (f *fakeEditor) Setting(key string) string              { return "" }
func (f *fakeEditor) SetSetting(key, value string)           {}
func (f *fakeEditor) Register(name rune) string              { return "" }
func (f *fakeEditor) SetRegister(name rune, v string) error  { return errors.New("unused") }

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func writePlugin(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDirLoadsInNameOrder(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "20-second.lua", `tern.print("second")`)
	writePlugin(t, dir, "10-first.lua", `tern.print("first")`)
	writePlugin(t, dir, "notes.txt", `not a plugin`)

	ed := &fakeEditor{}
	m, err := NewManager(ed, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Close()

	if err := m.LoadDir(testCtx(t), dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if len(ed.prints) != 2 || ed.prints[0] != "first" || ed.prints[1] != "second" {
		t.Fatalf("prints = %v, want [first second]", ed.prints)
	}
	if got := len(m.Loaded()); got != 2 {
		t.Fatalf("loaded = %d, want 2", got)
	}
}

func TestLoadDirMissingIsNotAnError(t *testing.T) {
	ed := &fakeEditor{}
	m, err := NewManager(ed, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Close()

	if err := m.LoadDir(testCtx(t), filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Fatalf("LoadDir on missing dir: %v", err)
	}
}

func TestLoadDirContinuesPastBrokenPlugin(t *testing.T) {
	dir := t.TempDir()
	writePlugin(t, dir, "10-broken.lua", `this is not lua (`)
	writePlugin(t, dir, "20-good.lua", `tern.print("survived")`)

	ed := &fakeEditor{}
	m, err := NewManager(ed, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Close()

	if err := m.LoadDir(testCtx(t), dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(ed.prints) != 1 || ed.prints[0] != "survived" {
		t.Fatalf("prints = %v, want [survived]", ed.prints)
	}
}

func TestReloadRemovesOldDefinitions(t *testing.T) {
	dir := t.TempDir()
	path := writePlugin(t, dir, "cmds.lua", `tern.define_command("one", function() end)`)

	ed := &fakeEditor{}
	m, err := NewManager(ed, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Close()

	if err := m.LoadFile(testCtx(t), path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if err := m.LoadFile(testCtx(t), path); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if len(ed.removed) != 1 || ed.removed[0] != path {
		t.Fatalf("removed = %v, want [%s]", ed.removed, path)
	}
	if got := len(m.Loaded()); got != 1 {
		t.Fatalf("loaded = %d, want 1", got)
	}
}

func TestUnload(t *testing.T) {
	dir := t.TempDir()
	path := writePlugin(t, dir, "p.lua", `tern.print("hi")`)

	ed := &fakeEditor{}
	m, err := NewManager(ed, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Close()

	if err := m.LoadFile(testCtx(t), path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	m.Unload(path)

	if len(m.Loaded()) != 0 {
		t.Fatalf("loaded = %v, want empty", m.Loaded())
	}
	if len(ed.removed) != 1 || ed.removed[0] != path {
		t.Fatalf("removed = %v", ed.removed)
	}
}
