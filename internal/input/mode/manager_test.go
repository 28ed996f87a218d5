package mode

import (
	"testing"

	"github.com/ternedit/tern/internal/input/key"
)

func TestKindNames(t *testing.T) {
	for _, k := range All() {
		t.Run(k.String(), func(t *testing.T) {
			got, ok := FromName(k.String())
			if !ok {
				t.Fatalf("FromName(%q) not found", k.String())
			}
			if got != k {
				t.Errorf("FromName(%q) = %v, want %v", k.String(), got, k)
			}
		})
	}

	if _, ok := FromName("visual"); ok {
		t.Error("FromName should reject unknown mode names")
	}
}

func TestManagerSwitch(t *testing.T) {
	m := NewManager()
	if m.Current() != Normal {
		t.Fatalf("initial mode = %v, want normal", m.Current())
	}

	var entered, exited []Kind
	m.SetHooks(Insert, Hooks{
		OnEnter: func(from Kind) { entered = append(entered, from) },
		OnExit:  func(to Kind) { exited = append(exited, to) },
	})

	m.Switch(Insert)
	if m.Current() != Insert || m.Previous() != Normal {
		t.Errorf("after switch: current=%v previous=%v", m.Current(), m.Previous())
	}
	if len(entered) != 1 || entered[0] != Normal {
		t.Errorf("enter hook calls = %v, want [Normal]", entered)
	}

	// Switching to the current mode must not fire hooks.
	m.Switch(Insert)
	if len(entered) != 1 {
		t.Errorf("redundant switch fired enter hook")
	}

	m.Switch(Normal)
	if len(exited) != 1 || exited[0] != Normal {
		t.Errorf("exit hook calls = %v, want [Normal]", exited)
	}
}

func TestManagerReturn(t *testing.T) {
	m := NewManager()
	m.Switch(ReadLine)
	m.Return()
	if m.Current() != Normal {
		t.Errorf("Return: current = %v, want normal", m.Current())
	}
}

func TestManagerOnChange(t *testing.T) {
	m := NewManager()
	var transitions [][2]Kind
	m.OnChange(func(from, to Kind) {
		transitions = append(transitions, [2]Kind{from, to})
	})

	m.Switch(Command)
	m.Switch(Normal)

	want := [][2]Kind{{Normal, Command}, {Command, Normal}}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, transitions[i], want[i])
		}
	}
}

func TestFallbackFor(t *testing.T) {
	tests := []struct {
		name  string
		mode  Kind
		chord key.Chord
		want  Fallback
	}{
		{"normal drops runes", Normal, key.NewRuneChord('x'), Drop},
		{"insert consumes runes", Insert, key.NewRuneChord('x'), InsertText},
		{"insert drops ctrl chords", Insert, key.Ctrl('q'), Drop},
		{"readline consumes runes", ReadLine, key.NewRuneChord('e'), InsertText},
		{"picker drops special keys", Picker, key.NewChord(key.KeyF1), Drop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FallbackFor(tt.mode, tt.chord); got != tt.want {
				t.Errorf("FallbackFor(%v, %v) = %v, want %v", tt.mode, tt.chord, got, tt.want)
			}
		})
	}
}
