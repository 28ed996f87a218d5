package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/ternedit/tern/internal/app"
	"github.com/ternedit/tern/internal/editor"
	"github.com/ternedit/tern/internal/fuzzy"
	"github.com/ternedit/tern/internal/input/key"
	"github.com/ternedit/tern/internal/input/mode"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptReadline
	promptPicker
)

// UI owns the terminal: the text view, the status line, and the
// readline/picker prompts the host opens. It implements
// editor.PromptUI.
type UI struct {
	mu sync.Mutex

	screen tcell.Screen
	app    *app.App
	host   *editor.LocalHost

	lines  []string
	status string

	prompt   promptKind
	label    string
	input    []rune
	id       editor.ContinuationID
	entries  []string
	filtered []string
	selected int

	quitting bool
}

// NewUI creates the terminal UI over an initialized screen.
func NewUI(screen tcell.Screen, a *app.App, host *editor.LocalHost) *UI {
	return &UI{screen: screen, app: a, host: host}
}

// OpenReadline implements editor.PromptUI.
func (u *UI) OpenReadline(prompt string, id editor.ContinuationID) {
	u.mu.Lock()
	u.prompt = promptReadline
	u.label = prompt
	u.input = nil
	u.id = id
	u.mu.Unlock()
	u.wake()
}

// OpenPicker implements editor.PromptUI.
func (u *UI) OpenPicker(prompt string, entries []string, id editor.ContinuationID) {
	u.mu.Lock()
	u.prompt = promptPicker
	u.label = prompt
	u.input = nil
	u.id = id
	u.entries = append([]string(nil), entries...)
	u.filtered = u.entries
	u.selected = 0
	u.mu.Unlock()
	u.wake()
}

// ShowStatus records a status line message. Safe from any goroutine.
func (u *UI) ShowStatus(msg string) {
	u.mu.Lock()
	u.status = msg
	u.mu.Unlock()
	u.wake()
}

// AppendText adds inserted text to the text view.
func (u *UI) AppendText(text string) {
	u.mu.Lock()
	parts := strings.Split(text, "\n")
	if len(u.lines) == 0 {
		u.lines = append(u.lines, "")
	}
	u.lines[len(u.lines)-1] += parts[0]
	u.lines = append(u.lines, parts[1:]...)
	u.mu.Unlock()
	u.wake()
}

// Quit asks the event loop to exit.
func (u *UI) Quit() {
	u.mu.Lock()
	u.quitting = true
	u.mu.Unlock()
	u.wake()
}

// Quitting reports whether Quit was requested.
func (u *UI) Quitting() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.quitting
}

// wake interrupts PollEvent so a redraw happens promptly.
func (u *UI) wake() {
	_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// HandleKey routes one key event: an active prompt consumes it, the
// dispatcher gets it otherwise.
func (u *UI) HandleKey(ev *tcell.EventKey) {
	u.mu.Lock()
	active := u.prompt
	u.mu.Unlock()

	if active != promptNone {
		u.handlePromptKey(ev)
		return
	}

	c, ok := chordFromEvent(ev)
	if !ok {
		return
	}
	u.app.HandleKey(c)
}

// handlePromptKey edits the prompt input and finishes or cancels it.
func (u *UI) handlePromptKey(ev *tcell.EventKey) {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch ev.Key() {
	case tcell.KeyEscape:
		id := u.id
		u.closePromptLocked()

		// Cancel without the UI lock; the dispatcher calls back into
		// the UI with its own lock held.
		u.mu.Unlock()
		u.app.Dispatcher().Cancel(id)
		u.mu.Lock()

	case tcell.KeyEnter:
		id := u.id
		kind := u.prompt
		text := string(u.input)
		var entry string
		if kind == promptPicker {
			if len(u.filtered) == 0 {
				return
			}
			entry = u.filtered[u.selected]
		}
		u.closePromptLocked()

		// Resume without the UI lock: the continuation body may open
		// the next prompt.
		u.mu.Unlock()
		if kind == promptPicker {
			u.app.Dispatcher().ResumePicker(id, entry)
		} else {
			u.app.Dispatcher().ResumeReadline(id, text)
		}
		u.mu.Lock()

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(u.input) > 0 {
			u.input = u.input[:len(u.input)-1]
			u.refilterLocked()
		}

	case tcell.KeyUp, tcell.KeyCtrlP:
		if u.prompt == promptPicker && u.selected > 0 {
			u.selected--
		}

	case tcell.KeyDown, tcell.KeyCtrlN:
		if u.prompt == promptPicker && u.selected < len(u.filtered)-1 {
			u.selected++
		}

	default:
		if ev.Key() == tcell.KeyRune {
			u.input = append(u.input, ev.Rune())
			u.refilterLocked()
		}
	}
}

// closePromptLocked resets prompt state. Lock must be held.
func (u *UI) closePromptLocked() {
	u.prompt = promptNone
	u.label = ""
	u.input = nil
	u.id = editor.ContinuationID{}
	u.entries = nil
	u.filtered = nil
	u.selected = 0
}

// refilterLocked re-ranks picker entries against the typed input.
func (u *UI) refilterLocked() {
	if u.prompt != promptPicker {
		return
	}
	u.filtered = fuzzy.Strings(string(u.input), u.entries)
	if u.selected >= len(u.filtered) {
		u.selected = 0
	}
}

// Render draws the full screen.
//
// Mode and pending keys are read before taking u.mu: the dispatcher
// calls ShowStatus with its own lock held, so nothing may hold u.mu
// while asking the dispatcher anything.
func (u *UI) Render() {
	m := u.app.Env().Modes.Current()
	pending := u.app.Dispatcher().PendingKeys()

	u.mu.Lock()
	defer u.mu.Unlock()

	u.screen.Clear()
	width, height := u.screen.Size()
	if height < 2 {
		u.screen.Show()
		return
	}

	textHeight := height - 2
	start := 0
	if len(u.lines) > textHeight {
		start = len(u.lines) - textHeight
	}
	for i := start; i < len(u.lines); i++ {
		drawText(u.screen, 0, i-start, width, u.lines[i], tcell.StyleDefault)
	}

	u.drawStatusLocked(width, height, m, pending)
	u.drawPromptLocked(width, height)
	u.screen.Show()
}

// drawStatusLocked draws the mode, pending keys and last message.
func (u *UI) drawStatusLocked(width, height int, m mode.Kind, pending key.Sequence) {
	style := tcell.StyleDefault.Reverse(true)

	left := " " + m.DisplayName()
	if !pending.IsEmpty() {
		left += "  " + pending.String()
	}
	line := left
	if u.status != "" {
		line += "  " + u.status
	}
	drawText(u.screen, 0, height-2, width, pad(line, width), style)
}

// drawPromptLocked draws the prompt line and picker list.
func (u *UI) drawPromptLocked(width, height int) {
	switch u.prompt {
	case promptNone:
		drawText(u.screen, 0, height-1, width, "", tcell.StyleDefault)

	case promptReadline:
		drawText(u.screen, 0, height-1, width,
			u.label+" "+string(u.input), tcell.StyleDefault)

	case promptPicker:
		line := fmt.Sprintf("%s %s (%d/%d)",
			u.label, string(u.input), len(u.filtered), len(u.entries))
		drawText(u.screen, 0, height-1, width, line, tcell.StyleDefault)

		// A few entries above the prompt, selection marked.
		shown := len(u.filtered)
		maxShown := height - 3
		if shown > maxShown {
			shown = maxShown
		}
		for i := 0; i < shown; i++ {
			style := tcell.StyleDefault
			marker := "  "
			if i == u.selected {
				style = style.Reverse(true)
				marker = "> "
			}
			drawText(u.screen, 0, height-2-shown+i, width, marker+u.filtered[i], style)
		}
	}
}

func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			break
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var _ editor.PromptUI = (*UI)(nil)
