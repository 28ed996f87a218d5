package script

import "testing"

const platformScript = `
config tab-size 4
eval on windows @{
	command remedybg-debug @{ spawn "remedybg start-debugging" }
}
eval on linux bsd @{
	copy-command "xclip -selection clipboard -in"
	eval on bsd @{
		print bsd-only
	}
}
`

func filterNames(t *testing.T, platform string) []string {
	t.Helper()
	s := mustParse(t, platformScript)
	filtered := Filter(s, platform)

	var names []string
	for _, stmt := range filtered.Statements {
		switch st := stmt.(type) {
		case *InvocationStatement:
			names = append(names, st.Name)
		case *CommandStatement:
			names = append(names, "command:"+st.Name)
		default:
			t.Fatalf("unexpected filtered statement %T", stmt)
		}
	}
	return names
}

func TestFilterLinux(t *testing.T) {
	names := filterNames(t, PlatformLinux)
	want := []string{"config", "copy-command"}
	if len(names) != len(want) {
		t.Fatalf("statements = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("statement %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFilterWindows(t *testing.T) {
	names := filterNames(t, PlatformWindows)
	want := []string{"config", "command:remedybg-debug"}
	if len(names) != len(want) {
		t.Fatalf("statements = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("statement %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFilterNested(t *testing.T) {
	names := filterNames(t, PlatformBSD)
	want := []string{"config", "copy-command", "print"}
	if len(names) != len(want) {
		t.Fatalf("statements = %v, want %v", names, want)
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	s := mustParse(t, platformScript)
	before := len(s.Statements)
	Filter(s, PlatformLinux)
	if len(s.Statements) != before {
		t.Error("Filter mutated the input script")
	}
}

func TestCurrentPlatformKnown(t *testing.T) {
	switch CurrentPlatform() {
	case PlatformWindows, PlatformLinux, PlatformMacOS, PlatformBSD:
	default:
		t.Errorf("CurrentPlatform() = %q, not a known platform", CurrentPlatform())
	}
}
