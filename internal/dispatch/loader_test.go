package dispatch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ternedit/tern/internal/input/mode"
	"github.com/ternedit/tern/internal/script"
)

func TestLoadTimeInvocationRuns(t *testing.T) {
	d, host := newTestDispatcher(t)

	load(t, d, "init.rc", `
print loading
config tab-size 2
`)

	if len(host.statuses) != 1 || host.statuses[0] != "loading" {
		t.Fatalf("statuses = %v", host.statuses)
	}
	if got := d.Env().Settings.Int("tab-size", 0); got != 2 {
		t.Fatalf("tab-size = %d, want 2", got)
	}
}

func TestParseFailureLeavesTablesUntouched(t *testing.T) {
	d, host := newTestDispatcher(t)
	load(t, d, "init.rc", `
map normal x @{ print old }
command thing @{ print thing }
`)

	err := d.LoadScript("init.rc", `map normal y @{ print new`)
	if !errors.Is(err, script.ErrSyntax) {
		t.Fatalf("got %v, want ErrSyntax", err)
	}

	// Old definitions still in force.
	press(d, "x")
	if len(host.statuses) != 1 || host.statuses[0] != "old" {
		t.Fatalf("statuses = %v, want [old]", host.statuses)
	}
	if !d.Env().Commands.Has("thing") {
		t.Fatal("command lost after failed reload")
	}
}

func TestReloadReplacesSourceDefinitions(t *testing.T) {
	d, host := newTestDispatcher(t)
	load(t, d, "init.rc", `
map normal x @{ print one }
command old-cmd @{ print old }
`)

	load(t, d, "init.rc", `map normal y @{ print two }`)

	press(d, "x")
	if len(host.statuses) != 0 {
		t.Fatalf("stale binding fired: %v", host.statuses)
	}
	press(d, "y")
	if len(host.statuses) != 1 || host.statuses[0] != "two" {
		t.Fatalf("statuses = %v, want [two]", host.statuses)
	}
	if d.Env().Commands.Has("old-cmd") {
		t.Fatal("stale command survived reload")
	}
}

func TestReloadKeepsOtherSources(t *testing.T) {
	d, host := newTestDispatcher(t)
	load(t, d, "plugin.rc", `map normal p @{ print plugin }`)
	load(t, d, "init.rc", `map normal x @{ print init }`)

	load(t, d, "init.rc", `map normal x @{ print reloaded }`)

	press(d, "p")
	if len(host.statuses) != 1 || host.statuses[0] != "plugin" {
		t.Fatalf("statuses = %v, want [plugin]", host.statuses)
	}
}

func TestLastBindingForSequenceWins(t *testing.T) {
	d, host := newTestDispatcher(t)
	load(t, d, "init.rc", `
map normal x @{ print first }
map normal x @{ print second }
`)

	press(d, "x")

	if len(host.statuses) != 1 || host.statuses[0] != "second" {
		t.Fatalf("statuses = %v, want [second]", host.statuses)
	}
}

func TestLastCommandDefinitionWins(t *testing.T) {
	d, host := newTestDispatcher(t)
	load(t, d, "init.rc", `
command greet @{ print first }
command greet @{ print second }
`)

	d.Execute(invocations(t, "greet"))

	if len(host.statuses) != 1 || host.statuses[0] != "second" {
		t.Fatalf("statuses = %v, want [second]", host.statuses)
	}
}

func TestEvalOnFiltersByPlatform(t *testing.T) {
	d, host := newTestDispatcher(t)
	d.platform = script.PlatformLinux

	load(t, d, "init.rc", `
eval on windows @{
	command which-os @{ print windows }
}
eval on linux bsd @{
	command which-os @{ print unixish }
}
`)

	d.Execute(invocations(t, "which-os"))

	if len(host.statuses) != 1 || host.statuses[0] != "unixish" {
		t.Fatalf("statuses = %v, want [unixish]", host.statuses)
	}
}

func TestSourceBuiltinLoadsFile(t *testing.T) {
	d, host := newTestDispatcher(t)

	path := filepath.Join(t.TempDir(), "extra.rc")
	if err := os.WriteFile(path, []byte(`map normal e @{ print extra }`), 0o644); err != nil {
		t.Fatal(err)
	}

	d.Execute(invocations(t, `source "`+path+`"`))

	press(d, "e")
	if len(host.statuses) != 1 || host.statuses[0] != "extra" {
		t.Fatalf("statuses = %v, want [extra]", host.statuses)
	}
}

func TestLoadFileMissingReportsError(t *testing.T) {
	d, _ := newTestDispatcher(t)

	err := d.LoadFile(filepath.Join(t.TempDir(), "absent.rc"))
	if err == nil {
		t.Fatal("missing file loaded without error")
	}
}

func TestMapModeNamesCoverPromptModes(t *testing.T) {
	d, host := newTestDispatcher(t)
	load(t, d, "init.rc", `
map readline <c-w> @{ print erase-word }
map picker <c-n> @{ print next-entry }
`)

	d.Env().Modes.Switch(mode.ReadLine)
	press(d, "<c-w>")
	d.Env().Modes.Switch(mode.Picker)
	press(d, "<c-n>")

	want := []string{"erase-word", "next-entry"}
	if len(host.statuses) != 2 || host.statuses[0] != want[0] || host.statuses[1] != want[1] {
		t.Fatalf("statuses = %v, want %v", host.statuses, want)
	}
}
