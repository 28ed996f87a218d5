package dispatch

import (
	"errors"
	"testing"

	"github.com/ternedit/tern/internal/command"
	"github.com/ternedit/tern/internal/config"
	"github.com/ternedit/tern/internal/editor"
)

func TestUserCommandShadowsBuiltin(t *testing.T) {
	d, host := newTestDispatcher(t)
	load(t, d, "init.rc", `command q @{ print intercepted }`)

	d.Execute(invocations(t, "q"))

	if len(host.quits) != 0 {
		t.Fatalf("builtin quit ran despite shadow: %v", host.quits)
	}
	if len(host.statuses) != 1 || host.statuses[0] != "intercepted" {
		t.Fatalf("statuses = %v, want [intercepted]", host.statuses)
	}
}

func TestBangForwardingThroughWrapper(t *testing.T) {
	d, host := newTestDispatcher(t)
	load(t, d, "init.rc", `command myquit @{ quit@arg(!) }`)

	d.Execute(invocations(t, "myquit!"))
	d.Execute(invocations(t, "myquit"))

	if len(host.quits) != 2 || !host.quits[0] || host.quits[1] {
		t.Fatalf("quits = %v, want [true false]", host.quits)
	}
}

func TestUserCommandArguments(t *testing.T) {
	d, host := newTestDispatcher(t)
	load(t, d, "init.rc", `command greet @{ print hello @arg(0); print all: @arg(*) }`)

	d.Execute(invocations(t, `greet world "wide web"`))

	want := []string{"hello world", "all: world wide web"}
	if len(host.statuses) != 2 || host.statuses[0] != want[0] || host.statuses[1] != want[1] {
		t.Fatalf("statuses = %v, want %v", host.statuses, want)
	}
}

func TestUnknownCommandReported(t *testing.T) {
	d, host := newTestDispatcher(t)

	d.Execute(invocations(t, "no-such-thing"))

	if len(host.errs) != 1 || !errors.Is(host.errs[0], command.ErrUnknownCommand) {
		t.Fatalf("errs = %v, want ErrUnknownCommand", host.errs)
	}
}

func TestUnboundPromptToken(t *testing.T) {
	d, host := newTestDispatcher(t)

	d.Execute(invocations(t, "print @readline-input()"))

	if len(host.errs) != 1 || !errors.Is(host.errs[0], command.ErrUnboundToken) {
		t.Fatalf("errs = %v, want ErrUnboundToken", host.errs)
	}
}

func TestSequenceAbortsAtFirstFailure(t *testing.T) {
	d, host := newTestDispatcher(t)
	host.openErr = errors.New("disk on fire")

	d.Execute(invocations(t, `print before; open /tmp/x; print after`))

	if len(host.statuses) != 1 || host.statuses[0] != "before" {
		t.Fatalf("statuses = %v, want [before]", host.statuses)
	}
	if len(host.errs) != 1 || !errors.Is(host.errs[0], ErrExternalAction) {
		t.Fatalf("errs = %v, want ErrExternalAction", host.errs)
	}
}

func TestSelfRecursionIsCut(t *testing.T) {
	d, host := newTestDispatcher(t)
	load(t, d, "init.rc", `command loop @{ loop }`)

	d.Execute(invocations(t, "loop"))

	if len(host.errs) != 1 || !errors.Is(host.errs[0], ErrRecursionLimit) {
		t.Fatalf("errs = %v, want ErrRecursionLimit", host.errs)
	}
}

func TestBuiltinArity(t *testing.T) {
	d, host := newTestDispatcher(t)

	d.Execute(invocations(t, "open"))

	if len(host.errs) != 1 || !errors.Is(host.errs[0], ErrBadArity) {
		t.Fatalf("errs = %v, want ErrBadArity", host.errs)
	}
}

func TestConfigBuiltin(t *testing.T) {
	d, host := newTestDispatcher(t)

	d.Execute(invocations(t, `config tab-size 8`))
	if got := d.Env().Settings.Int(config.KeyTabSize, 0); got != 8 {
		t.Fatalf("tab-size = %d, want 8", got)
	}

	d.Execute(invocations(t, `config tab-size`))
	if len(host.statuses) != 1 || host.statuses[0] != "tab-size = 8" {
		t.Fatalf("statuses = %v", host.statuses)
	}
}

func TestCopyUsesConfiguredCommand(t *testing.T) {
	d, host := newTestDispatcher(t)

	d.Execute(invocations(t, `copy hello there`))
	if len(host.copies) != 1 || host.copies[0].cmdline != "" || host.copies[0].text != "hello there" {
		t.Fatalf("copies = %v", host.copies)
	}
	if got := d.Env().Registers.Get(editor.RegisterYank); got != "hello there" {
		t.Fatalf("yank register = %q", got)
	}

	d.Execute(invocations(t, `copy-command "wl-copy"; copy again`))
	if len(host.copies) != 2 || host.copies[1].cmdline != "wl-copy" {
		t.Fatalf("copies = %v, want wl-copy cmdline", host.copies)
	}
}

func TestPasteInsertsAndFillsRegister(t *testing.T) {
	d, host := newTestDispatcher(t)
	host.pasteText = "from clipboard"

	d.Execute(invocations(t, `paste`))

	if len(host.inserted) != 1 || host.inserted[0] != "from clipboard" {
		t.Fatalf("inserted = %v", host.inserted)
	}
	if got := d.Env().Registers.Get(editor.RegisterYank); got != "from clipboard" {
		t.Fatalf("yank register = %q", got)
	}
}

func TestSpawnWithoutBlockHasNoContinuation(t *testing.T) {
	d, host := newTestDispatcher(t)

	d.Execute(invocations(t, `spawn "make test"`))

	if len(host.spawned) != 1 || host.spawned[0].cmdline != "make test" {
		t.Fatalf("spawned = %v", host.spawned)
	}
	if host.spawned[0].id != (editor.ContinuationID{}) {
		t.Fatalf("spawn without block got continuation id %s", host.spawned[0].id)
	}
	if got := d.PendingContinuations(); got != 0 {
		t.Fatalf("pending continuations = %d, want 0", got)
	}
}
