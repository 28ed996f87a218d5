package lua

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

type definedCommand struct {
	source string
	fn     func(args []string, bang bool) error
}

// fakeEditor records everything plugins do.
type fakeEditor struct {
	mu        sync.Mutex
	commands  map[string]definedCommand
	removed   []string
	scripts   map[string]string
	executed  []string
	prints    []string
	settings  map[string]string
	registers map[rune]string
}

func newFakeEditor() *fakeEditor {
	return &fakeEditor{
		commands:  make(map[string]definedCommand),
		scripts:   make(map[string]string),
		settings:  make(map[string]string),
		registers: make(map[rune]string),
	}
}

func (f *fakeEditor) DefineCommand(name, source string, fn func(args []string, bang bool) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands[name] = definedCommand{source: source, fn: fn}
}

func (f *fakeEditor) RemoveSource(source string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, source)
}

func (f *fakeEditor) LoadScript(source, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[source] = text
	return nil
}

func (f *fakeEditor) ExecuteLine(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.executed = append(f.executed, text)
	return nil
}

func (f *fakeEditor) Print(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prints = append(f.prints, msg)
}

func (f *fakeEditor) Setting(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings[key]
}

func (f *fakeEditor) SetSetting(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[key] = value
}

func (f *fakeEditor) Register(name rune) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registers[name]
}

func (f *fakeEditor) SetRegister(name rune, value string) error {
	if name < 'a' || name > 'z' {
		return errors.New("bad register")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers[name] = value
	return nil
}

func newTestEngine(t *testing.T) (*Engine, *fakeEditor) {
	t.Helper()
	ed := newFakeEditor()
	e, err := NewEngine(ed, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Close)
	return e, ed
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestPrintAndSettings(t *testing.T) {
	e, ed := newTestEngine(t)

	err := e.LoadString(testCtx(t), "test.lua", `
tern.print("hello from lua")
tern.config_set("tab-size", "4")
tern.print("tab-size is " .. tern.config_get("tab-size"))
`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}

	if len(ed.prints) != 2 || ed.prints[0] != "hello from lua" {
		t.Fatalf("prints = %v", ed.prints)
	}
	if ed.prints[1] != "tab-size is 4" {
		t.Fatalf("prints[1] = %q", ed.prints[1])
	}
	if ed.settings["tab-size"] != "4" {
		t.Fatalf("settings = %v", ed.settings)
	}
}

func TestDefineCommandOwnedByPlugin(t *testing.T) {
	e, ed := newTestEngine(t)

	err := e.LoadString(testCtx(t), "greeter.lua", `
tern.define_command("lua-greet", function(args, bang)
	tern.print("greetings " .. args[1] .. " " .. tostring(bang))
end)
`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}

	def, ok := ed.commands["lua-greet"]
	if !ok {
		t.Fatal("command not defined")
	}
	if def.source != "greeter.lua" {
		t.Fatalf("source = %q, want greeter.lua", def.source)
	}

	if err := def.fn([]string{"world"}, true); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if err := e.Sync(testCtx(t)); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if len(ed.prints) != 1 || ed.prints[0] != "greetings world true" {
		t.Fatalf("prints = %v", ed.prints)
	}
}

func TestExecuteAndLoad(t *testing.T) {
	e, ed := newTestEngine(t)

	err := e.LoadString(testCtx(t), "setup.lua", `
tern.execute("print from-execute")
tern.load("map normal x @{ print lua-bound }")
`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}

	if len(ed.executed) != 1 || ed.executed[0] != "print from-execute" {
		t.Fatalf("executed = %v", ed.executed)
	}
	if got := ed.scripts["setup.lua"]; !strings.Contains(got, "lua-bound") {
		t.Fatalf("scripts = %v", ed.scripts)
	}
}

func TestRegisterAccess(t *testing.T) {
	e, ed := newTestEngine(t)
	ed.registers['y'] = "yanked"

	err := e.LoadString(testCtx(t), "reg.lua", `
tern.register_set("a", tern.register_get("y"))
`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if ed.registers['a'] != "yanked" {
		t.Fatalf("registers = %v", ed.registers)
	}
}

func TestSandboxHidesOSAndIO(t *testing.T) {
	e, _ := newTestEngine(t)

	for _, src := range []string{
		`os.getenv("HOME")`,
		`io.open("/etc/passwd")`,
		`dofile("/etc/passwd")`,
	} {
		if err := e.LoadString(testCtx(t), "evil.lua", src); err == nil {
			t.Errorf("%s ran inside sandbox", src)
		}
	}
}

func TestLoadStringSyntaxError(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.LoadString(testCtx(t), "bad.lua", `this is not lua (`); err == nil {
		t.Fatal("syntax error not reported")
	}
}

func TestExecutorClosed(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	exec := NewExecutor(L, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go exec.Run(ctx)

	exec.Close()

	err := exec.Do(context.Background(), func(*glua.LState) error { return nil })
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("got %v, want ErrClosed", err)
	}
	if err := exec.DoAsync(func(*glua.LState) error { return nil }); !errors.Is(err, ErrClosed) {
		t.Fatalf("DoAsync after close: got %v, want ErrClosed", err)
	}
}

func TestExecutorRecoversPanic(t *testing.T) {
	L := glua.NewState()
	defer L.Close()

	exec := NewExecutor(L, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go exec.Run(ctx)
	defer exec.Close()

	err := exec.Do(context.Background(), func(*glua.LState) error {
		panic("plugin went sideways")
	})
	if err == nil || !strings.Contains(err.Error(), "sideways") {
		t.Fatalf("got %v, want recovered panic", err)
	}
}
