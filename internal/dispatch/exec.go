package dispatch

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ternedit/tern/internal/command"
	"github.com/ternedit/tern/internal/config"
	"github.com/ternedit/tern/internal/editor"
	"github.com/ternedit/tern/internal/input/key"
	"github.com/ternedit/tern/internal/input/mode"
	"github.com/ternedit/tern/internal/script"
)

// maxExpandDepth bounds user-command expansion.
const maxExpandDepth = 64

// Execute runs an action sequence as a fresh top-level dispatch.
// Errors are reported to the host, not returned; a failing invocation
// aborts the remainder of the sequence.
func (d *Dispatcher) Execute(invs []script.Invocation) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.execTop(invs, nil)
	d.drainReplay()
}

// ExecuteLine parses one typed line and runs it. Bindings and command
// definitions entered this way accumulate under the "prompt" source,
// so they survive until that source is explicitly reloaded.
func (d *Dispatcher) ExecuteLine(text string) error {
	parsed, err := script.Parse("prompt", text)
	if err != nil {
		return err
	}
	filtered := script.Filter(parsed, d.platform)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.applyStatements(filtered.Statements, "prompt")
	d.drainReplay()
	return nil
}

// execTop runs an action sequence, reporting any failure to the host.
func (d *Dispatcher) execTop(invs []script.Invocation, ctx *command.InvocationContext) {
	if ctx == nil {
		ctx = command.NewInvocationContext(nil, false)
	}
	if err := d.execute(invs, ctx, 0); err != nil {
		d.log.Warn("action sequence failed: %v", err)
		d.host.ShowError(err)
	}
}

// execute runs invocations in order, stopping at the first failure.
// Already-performed actions are not rolled back.
func (d *Dispatcher) execute(invs []script.Invocation, ctx *command.InvocationContext, depth int) error {
	if depth > maxExpandDepth {
		return ErrRecursionLimit
	}

	for _, inv := range invs {
		name, bang, err := command.ResolveName(inv, ctx)
		if err != nil {
			return err
		}
		args, err := command.ResolveArgs(inv.Args, ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		res, err := d.env.Commands.Lookup(name)
		if err != nil {
			return err
		}

		if res.IsUser() {
			if res.Def.Func != nil {
				if err := res.Def.Func(args, bang); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				continue
			}
			// The body sees the caller's arguments; prompt values
			// carry through so continuation bodies can delegate.
			child := ctx.Child()
			child.Args = args
			child.Bang = bang
			if err := d.execute(res.Def.Body, child, depth+1); err != nil {
				return err
			}
			continue
		}

		if err := d.runBuiltin(res.Builtin, bang, args, inv.Block, ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// runBuiltin executes one builtin against the host and environment.
// block is the invocation's trailing continuation block, if any.
func (d *Dispatcher) runBuiltin(b command.Builtin, bang bool, args []string, block []script.Invocation, ctx *command.InvocationContext) error {
	switch b {
	case command.BuiltinHelp:
		return wrapHost(d.host.Help())

	case command.BuiltinQuit:
		return wrapHost(d.host.Quit(bang))

	case command.BuiltinOpen:
		if err := needArgs(args, 1); err != nil {
			return err
		}
		return wrapHost(d.host.Open(args[0]))

	case command.BuiltinOpenScratch:
		if err := needArgs(args, 1); err != nil {
			return err
		}
		return wrapHost(d.host.OpenScratch(args[0]))

	case command.BuiltinSave:
		return wrapHost(d.host.Save())

	case command.BuiltinSaveAll:
		return wrapHost(d.host.SaveAll())

	case command.BuiltinClose:
		return wrapHost(d.host.Close())

	case command.BuiltinCloseAll:
		return wrapHost(d.host.CloseAll())

	case command.BuiltinSpawn:
		if err := needAtLeast(args, 1); err != nil {
			return err
		}
		cmdline := strings.Join(args, " ")
		id := uuid.Nil
		if len(block) > 0 {
			id = d.register(&continuation{kind: contProcess, body: block, ctx: ctx.Child()})
		}
		if err := d.host.Spawn(cmdline, id); err != nil {
			d.unregister(id)
			return wrapHost(err)
		}
		return nil

	case command.BuiltinReplaceWithOutput:
		if err := needAtLeast(args, 1); err != nil {
			return err
		}
		cmdline := strings.Join(args, " ")
		id := d.register(&continuation{
			kind:         contProcess,
			body:         block,
			ctx:          ctx.Child(),
			insertOutput: true,
		})
		if err := d.host.ReplaceWithOutput(cmdline, id); err != nil {
			d.unregister(id)
			return wrapHost(err)
		}
		return nil

	case command.BuiltinReadline:
		prompt := ":"
		if len(args) > 0 {
			prompt = strings.Join(args, " ")
		}
		id := d.register(&continuation{kind: contReadline, body: block, ctx: ctx.Child()})
		if err := d.host.Readline(prompt, id); err != nil {
			d.unregister(id)
			return wrapHost(err)
		}
		d.env.Modes.Switch(mode.ReadLine)
		return nil

	case command.BuiltinPick:
		prompt := "pick"
		if len(args) > 0 {
			prompt = strings.Join(args, " ")
		}
		id := d.register(&continuation{kind: contPicker, body: block, ctx: ctx.Child()})
		if err := d.host.Pick(prompt, id); err != nil {
			d.unregister(id)
			return wrapHost(err)
		}
		d.env.Modes.Switch(mode.Picker)
		return nil

	case command.BuiltinPickerEntriesFromLines:
		if err := needAtLeast(args, 1); err != nil {
			return err
		}
		cmdline := strings.Join(args, " ")
		id := d.register(&continuation{
			kind:          contProcess,
			body:          block,
			ctx:           ctx.Child(),
			pickerEntries: true,
		})
		if err := d.host.Spawn(cmdline, id); err != nil {
			d.unregister(id)
			return wrapHost(err)
		}
		return nil

	case command.BuiltinEnqueueKeys:
		if err := needArgs(args, 1); err != nil {
			return err
		}
		seq, err := key.ParseSequence(args[0])
		if err != nil {
			return err
		}
		d.replay = append(d.replay, seq...)
		return nil

	case command.BuiltinCopyCommand:
		d.env.Settings.Set(config.KeyCopyCommand, strings.Join(args, " "))
		return nil

	case command.BuiltinPasteCommand:
		d.env.Settings.Set(config.KeyPasteCommand, strings.Join(args, " "))
		return nil

	case command.BuiltinCopy:
		text := strings.Join(args, " ")
		if len(args) == 0 {
			text = d.env.Registers.Get(editor.RegisterYank)
		}
		if err := d.env.Registers.Set(editor.RegisterYank, text); err != nil {
			return err
		}
		return wrapHost(d.host.Copy(d.env.CopyCommand(), text))

	case command.BuiltinPaste:
		text, err := d.host.Paste(d.env.PasteCommand())
		if err != nil {
			return wrapHost(err)
		}
		if err := d.env.Registers.Set(editor.RegisterYank, text); err != nil {
			return err
		}
		return wrapHost(d.host.InsertText(text))

	case command.BuiltinLSPStart:
		if err := needArgs(args, 1); err != nil {
			return err
		}
		return wrapHost(d.host.LSPStart(args[0]))

	case command.BuiltinConfig:
		switch len(args) {
		case 1:
			value := d.env.Settings.String(args[0], "")
			d.host.ShowStatus(args[0] + " = " + value)
			return nil
		case 2:
			d.env.Settings.Set(args[0], args[1])
			return nil
		default:
			return ErrBadArity
		}

	case command.BuiltinSource:
		if err := needArgs(args, 1); err != nil {
			return err
		}
		return d.loadFile(args[0])

	case command.BuiltinPrint:
		d.host.ShowStatus(strings.Join(args, " "))
		return nil

	case command.BuiltinMode:
		if err := needArgs(args, 1); err != nil {
			return err
		}
		k, ok := mode.FromName(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMode, args[0])
		}
		d.env.Modes.Switch(k)
		return nil

	default:
		return fmt.Errorf("%w: builtin %d", command.ErrUnknownCommand, b)
	}
}

func needArgs(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: want %d, got %d", ErrBadArity, n, len(args))
	}
	return nil
}

func needAtLeast(args []string, n int) error {
	if len(args) < n {
		return fmt.Errorf("%w: want at least %d, got %d", ErrBadArity, n, len(args))
	}
	return nil
}
