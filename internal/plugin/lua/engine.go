package lua

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/ternedit/tern/internal/logging"
)

// Editor is the surface plugins script against. The dispatcher-backed
// implementation is concurrency-safe, so tern functions may call it
// directly from the Lua worker goroutine.
type Editor interface {
	// DefineCommand registers a native command owned by source.
	DefineCommand(name, source string, fn func(args []string, bang bool) error)

	// RemoveSource drops every binding and command owned by source.
	RemoveSource(source string)

	// LoadScript applies a configuration script fragment.
	LoadScript(source, text string) error

	// ExecuteLine runs one command line.
	ExecuteLine(text string) error

	// Print shows a status line message.
	Print(msg string)

	// Setting and SetSetting access the settings registry.
	Setting(key string) string
	SetSetting(key, value string)

	// Register and SetRegister access the single-letter registers.
	Register(name rune) string
	SetRegister(name rune, value string) error
}

// Engine owns one sandboxed Lua state and its worker goroutine.
type Engine struct {
	ed   Editor
	log  *logging.Logger
	L    *lua.LState
	exec *Executor

	cancel context.CancelFunc

	// source names the plugin currently loading; commands it defines
	// are owned by it.
	source string
}

// NewEngine creates a sandboxed Lua engine bound to ed and starts its
// worker goroutine.
func NewEngine(ed Editor, log *logging.Logger) (*Engine, error) {
	if log == nil {
		log = logging.Null
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	e := &Engine{
		ed:     ed,
		log:    log.WithComponent("lua"),
		L:      L,
		exec:   NewExecutor(L, 64),
		source: "lua",
	}

	if err := e.sandbox(); err != nil {
		L.Close()
		return nil, err
	}
	e.registerAPI()

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	go e.exec.Run(ctx)

	return e, nil
}

// sandbox opens only the side-effect-free standard libraries. os, io
// and package never load, and the file-reading base functions are
// removed.
func (e *Engine) sandbox() error {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := e.L.CallByParam(lua.P{
			Fn:      e.L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return fmt.Errorf("lua: opening %s: %w", lib.name, err)
		}
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		e.L.SetGlobal(name, lua.LNil)
	}
	return nil
}

// registerAPI installs the global tern table.
func (e *Engine) registerAPI() {
	tern := e.L.NewTable()

	e.L.SetFuncs(tern, map[string]lua.LGFunction{
		"define_command": e.luaDefineCommand,
		"execute":        e.luaExecute,
		"load":           e.luaLoad,
		"print":          e.luaPrint,
		"config_get":     e.luaConfigGet,
		"config_set":     e.luaConfigSet,
		"register_get":   e.luaRegisterGet,
		"register_set":   e.luaRegisterSet,
	})

	e.L.SetGlobal("tern", tern)
}

// LoadFile runs a plugin file. Definitions it makes are owned by the
// file's path.
func (e *Engine) LoadFile(ctx context.Context, path string) error {
	return e.exec.Do(ctx, func(L *lua.LState) error {
		prev := e.source
		e.source = path
		defer func() { e.source = prev }()
		return L.DoFile(path)
	})
}

// LoadString runs plugin source text under the given name.
func (e *Engine) LoadString(ctx context.Context, name, src string) error {
	return e.exec.Do(ctx, func(L *lua.LState) error {
		prev := e.source
		e.source = name
		defer func() { e.source = prev }()
		return L.DoString(src)
	})
}

// Sync waits until all queued Lua work has run.
func (e *Engine) Sync(ctx context.Context) error {
	return e.exec.Do(ctx, func(*lua.LState) error { return nil })
}

// Close stops the worker and releases the Lua state.
func (e *Engine) Close() {
	e.exec.Close()
	e.cancel()
	e.L.Close()
}

// luaDefineCommand implements tern.define_command(name, fn).
func (e *Engine) luaDefineCommand(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	source := e.source
	e.ed.DefineCommand(name, source, e.commandHandler(name, fn))
	return 0
}

// commandHandler wraps a Lua function as a native command body. The
// call is queued to the worker and runs asynchronously: the dispatcher
// may be invoking the command from the worker goroutine itself, and
// waiting would deadlock.
func (e *Engine) commandHandler(name string, fn *lua.LFunction) func(args []string, bang bool) error {
	return func(args []string, bang bool) error {
		return e.exec.DoAsync(func(L *lua.LState) error {
			tbl := L.NewTable()
			for _, a := range args {
				tbl.Append(lua.LString(a))
			}
			L.Push(fn)
			L.Push(tbl)
			L.Push(lua.LBool(bang))
			if err := L.PCall(2, 0, nil); err != nil {
				e.log.Error("command %s: %v", name, err)
			}
			return nil
		})
	}
}

// luaExecute implements tern.execute(line).
func (e *Engine) luaExecute(L *lua.LState) int {
	line := L.CheckString(1)
	if err := e.ed.ExecuteLine(line); err != nil {
		L.RaiseError("execute: %v", err)
	}
	return 0
}

// luaLoad implements tern.load(text), applying a configuration
// fragment owned by the loading plugin.
func (e *Engine) luaLoad(L *lua.LState) int {
	text := L.CheckString(1)
	if err := e.ed.LoadScript(e.source, text); err != nil {
		L.RaiseError("load: %v", err)
	}
	return 0
}

// luaPrint implements tern.print(msg).
func (e *Engine) luaPrint(L *lua.LState) int {
	e.ed.Print(L.CheckString(1))
	return 0
}

// luaConfigGet implements tern.config_get(key).
func (e *Engine) luaConfigGet(L *lua.LState) int {
	L.Push(lua.LString(e.ed.Setting(L.CheckString(1))))
	return 1
}

// luaConfigSet implements tern.config_set(key, value).
func (e *Engine) luaConfigSet(L *lua.LState) int {
	e.ed.SetSetting(L.CheckString(1), L.CheckString(2))
	return 0
}

// luaRegisterGet implements tern.register_get(name).
func (e *Engine) luaRegisterGet(L *lua.LState) int {
	name := L.CheckString(1)
	if len(name) != 1 {
		L.RaiseError("register name must be one letter")
		return 0
	}
	L.Push(lua.LString(e.ed.Register(rune(name[0]))))
	return 1
}

// luaRegisterSet implements tern.register_set(name, value).
func (e *Engine) luaRegisterSet(L *lua.LState) int {
	name := L.CheckString(1)
	value := L.CheckString(2)
	if len(name) != 1 {
		L.RaiseError("register name must be one letter")
		return 0
	}
	if err := e.ed.SetRegister(rune(name[0]), value); err != nil {
		L.RaiseError("register_set: %v", err)
	}
	return 0
}
