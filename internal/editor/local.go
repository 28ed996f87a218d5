package editor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
)

// LocalHost errors.
var (
	ErrNoResumer   = errors.New("editor: no resumer attached")
	ErrNoPromptUI  = errors.New("editor: no prompt ui attached")
	ErrEmptySpawn  = errors.New("editor: empty command line")
	ErrNoSuchFile  = errors.New("editor: no such file")
	ErrSpawnFailed = errors.New("editor: spawn failed")
)

// PromptUI is the frontend surface LocalHost opens prompts on.
type PromptUI interface {
	// OpenReadline shows a single-line prompt tagged with id.
	OpenReadline(prompt string, id ContinuationID)

	// OpenPicker shows the picker over entries, tagged with id.
	OpenPicker(prompt string, entries []string, id ContinuationID)
}

// LocalHost is the reference Host: processes via os/exec, clipboard via
// the system clipboard or a configured command, prompts via a PromptUI
// supplied by the frontend. Buffer storage is limited to scratch
// buffers and the current file path; the full text engine sits behind
// a different interface.
type LocalHost struct {
	mu sync.Mutex

	resumer Resumer
	prompts PromptUI

	scratch *ScratchStore

	currentPath string
	entries     []string

	// StatusFunc receives status line messages; optional.
	StatusFunc func(msg string)

	// QuitFunc runs on quit; optional.
	QuitFunc func(force bool)

	// LSPStartFunc launches a language server by name; optional.
	LSPStartFunc func(name string) error

	// InsertFunc receives text destined for the focused buffer or
	// prompt; optional.
	InsertFunc func(text string) error
}

// NewLocalHost creates a host backed by the given scratch store.
func NewLocalHost(scratch *ScratchStore) *LocalHost {
	if scratch == nil {
		scratch = NewScratchStore()
	}
	return &LocalHost{scratch: scratch}
}

// AttachResumer connects the dispatcher's resume interface.
func (h *LocalHost) AttachResumer(r Resumer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resumer = r
}

// AttachPromptUI connects the frontend prompt surface.
func (h *LocalHost) AttachPromptUI(ui PromptUI) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prompts = ui
}

// Scratch exposes the scratch store.
func (h *LocalHost) Scratch() *ScratchStore {
	return h.scratch
}

// CurrentPath returns the most recently opened file path.
func (h *LocalHost) CurrentPath() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.currentPath
}

func (h *LocalHost) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrNoSuchFile, path)
	}
	h.mu.Lock()
	h.currentPath = path
	h.mu.Unlock()
	h.ShowStatus("opened " + path)
	return nil
}

func (h *LocalHost) OpenScratch(name string) error {
	h.scratch.Open(name)
	h.ShowStatus("scratch " + name)
	return nil
}

func (h *LocalHost) Save() error {
	h.ShowStatus("saved")
	return nil
}

func (h *LocalHost) SaveAll() error {
	h.ShowStatus("saved all")
	return nil
}

func (h *LocalHost) Close() error {
	h.mu.Lock()
	h.currentPath = ""
	h.mu.Unlock()
	return nil
}

func (h *LocalHost) CloseAll() error {
	h.mu.Lock()
	h.currentPath = ""
	h.mu.Unlock()
	return nil
}

func (h *LocalHost) Quit(force bool) error {
	h.mu.Lock()
	quit := h.QuitFunc
	h.mu.Unlock()
	if quit != nil {
		quit(force)
	}
	return nil
}

func (h *LocalHost) Help() error {
	return h.OpenScratch("help")
}

func (h *LocalHost) Spawn(cmdline string, id ContinuationID) error {
	return h.run(cmdline, id, false)
}

func (h *LocalHost) ReplaceWithOutput(cmdline string, id ContinuationID) error {
	return h.run(cmdline, id, true)
}

// run starts cmdline and, when a continuation is registered, delivers
// the captured output on exit. The spawned process is not killed when
// the continuation is later cancelled.
func (h *LocalHost) run(cmdline string, id ContinuationID, captureRequired bool) error {
	name, args, err := SplitCmdline(cmdline)
	if err != nil {
		return err
	}

	h.mu.Lock()
	resumer := h.resumer
	h.mu.Unlock()

	if captureRequired && (id == uuid.Nil || resumer == nil) {
		return ErrNoResumer
	}

	cmd := exec.Command(name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSpawnFailed, name, err)
	}

	if id == uuid.Nil || resumer == nil {
		go func() { _ = cmd.Wait() }()
		return nil
	}

	go func() {
		err := cmd.Wait()
		resumer.ResumeProcess(id, out.String(), err)
	}()
	return nil
}

func (h *LocalHost) Readline(prompt string, id ContinuationID) error {
	h.mu.Lock()
	ui := h.prompts
	h.mu.Unlock()
	if ui == nil {
		return ErrNoPromptUI
	}
	ui.OpenReadline(prompt, id)
	return nil
}

func (h *LocalHost) Pick(prompt string, id ContinuationID) error {
	h.mu.Lock()
	ui := h.prompts
	entries := append([]string(nil), h.entries...)
	h.mu.Unlock()
	if ui == nil {
		return ErrNoPromptUI
	}
	ui.OpenPicker(prompt, entries, id)
	return nil
}

func (h *LocalHost) SetPickerEntries(entries []string) error {
	h.mu.Lock()
	h.entries = append([]string(nil), entries...)
	h.mu.Unlock()
	return nil
}

// Copy sends text to the configured copy command's stdin, or to the
// system clipboard when no command is configured.
func (h *LocalHost) Copy(cmdline, text string) error {
	if cmdline == "" {
		return clipboard.WriteAll(text)
	}
	name, args, err := SplitCmdline(cmdline)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSpawnFailed, name, err)
	}
	return nil
}

// Paste reads the configured paste command's stdout, or the system
// clipboard when no command is configured.
func (h *LocalHost) Paste(cmdline string) (string, error) {
	if cmdline == "" {
		return clipboard.ReadAll()
	}
	name, args, err := SplitCmdline(cmdline)
	if err != nil {
		return "", err
	}
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSpawnFailed, name, err)
	}
	return string(out), nil
}

func (h *LocalHost) LSPStart(name string) error {
	h.mu.Lock()
	start := h.LSPStartFunc
	h.mu.Unlock()
	if start != nil {
		return start(name)
	}
	h.ShowStatus("lsp: " + name)
	return nil
}

func (h *LocalHost) InsertText(text string) error {
	h.mu.Lock()
	insert := h.InsertFunc
	h.mu.Unlock()
	if insert != nil {
		return insert(text)
	}
	return nil
}

func (h *LocalHost) ShowStatus(msg string) {
	h.mu.Lock()
	status := h.StatusFunc
	h.mu.Unlock()
	if status != nil {
		status(msg)
	}
}

func (h *LocalHost) ShowError(err error) {
	h.ShowStatus("error: " + err.Error())
}

// SplitCmdline splits a command line into the program name and its
// arguments. Double and single quotes group words; there is no variable
// expansion, globbing or redirection.
func SplitCmdline(cmdline string) (string, []string, error) {
	var fields []string
	var cur []rune
	var quote rune
	inField := false

	for _, r := range cmdline {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur = append(cur, r)
			}
		case r == '"' || r == '\'':
			quote = r
			inField = true
		case r == ' ' || r == '\t':
			if inField {
				fields = append(fields, string(cur))
				cur = cur[:0]
				inField = false
			}
		default:
			cur = append(cur, r)
			inField = true
		}
	}
	if quote != 0 {
		return "", nil, fmt.Errorf("editor: unclosed quote in command line %q", cmdline)
	}
	if inField {
		fields = append(fields, string(cur))
	}
	if len(fields) == 0 {
		return "", nil, ErrEmptySpawn
	}
	return fields[0], fields[1:], nil
}
