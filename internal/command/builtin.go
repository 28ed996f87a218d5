package command

// Builtin enumerates the built-in commands. The set is closed; user
// commands may shadow any of them by name but cannot extend the enum.
type Builtin uint8

const (
	// BuiltinNone is the zero value and matches no command.
	BuiltinNone Builtin = iota

	BuiltinHelp
	BuiltinQuit
	BuiltinOpen
	BuiltinOpenScratch
	BuiltinSave
	BuiltinSaveAll
	BuiltinClose
	BuiltinCloseAll
	BuiltinSpawn
	BuiltinReplaceWithOutput
	BuiltinReadline
	BuiltinPick
	BuiltinPickerEntriesFromLines
	BuiltinEnqueueKeys
	BuiltinCopyCommand
	BuiltinPasteCommand
	BuiltinCopy
	BuiltinPaste
	BuiltinLSPStart
	BuiltinConfig
	BuiltinSource
	BuiltinPrint
	BuiltinMode
)

// builtinNames maps script names to builtins.
var builtinNames = map[string]Builtin{
	"help":                     BuiltinHelp,
	"quit":                     BuiltinQuit,
	"q":                        BuiltinQuit,
	"open":                     BuiltinOpen,
	"open-scratch":             BuiltinOpenScratch,
	"save":                     BuiltinSave,
	"save-all":                 BuiltinSaveAll,
	"close":                    BuiltinClose,
	"close-all":                BuiltinCloseAll,
	"spawn":                    BuiltinSpawn,
	"replace-with-output":      BuiltinReplaceWithOutput,
	"readline":                 BuiltinReadline,
	"pick":                     BuiltinPick,
	"picker-entries-from-lines": BuiltinPickerEntriesFromLines,
	"enqueue-keys":             BuiltinEnqueueKeys,
	"copy-command":             BuiltinCopyCommand,
	"paste-command":            BuiltinPasteCommand,
	"copy":                     BuiltinCopy,
	"paste":                    BuiltinPaste,
	"lsp-start":                BuiltinLSPStart,
	"config":                   BuiltinConfig,
	"source":                   BuiltinSource,
	"print":                    BuiltinPrint,
	"mode":                     BuiltinMode,
}

// Name returns the builtin's canonical script name.
func (b Builtin) Name() string {
	switch b {
	case BuiltinHelp:
		return "help"
	case BuiltinQuit:
		return "quit"
	case BuiltinOpen:
		return "open"
	case BuiltinOpenScratch:
		return "open-scratch"
	case BuiltinSave:
		return "save"
	case BuiltinSaveAll:
		return "save-all"
	case BuiltinClose:
		return "close"
	case BuiltinCloseAll:
		return "close-all"
	case BuiltinSpawn:
		return "spawn"
	case BuiltinReplaceWithOutput:
		return "replace-with-output"
	case BuiltinReadline:
		return "readline"
	case BuiltinPick:
		return "pick"
	case BuiltinPickerEntriesFromLines:
		return "picker-entries-from-lines"
	case BuiltinEnqueueKeys:
		return "enqueue-keys"
	case BuiltinCopyCommand:
		return "copy-command"
	case BuiltinPasteCommand:
		return "paste-command"
	case BuiltinCopy:
		return "copy"
	case BuiltinPaste:
		return "paste"
	case BuiltinLSPStart:
		return "lsp-start"
	case BuiltinConfig:
		return "config"
	case BuiltinSource:
		return "source"
	case BuiltinPrint:
		return "print"
	case BuiltinMode:
		return "mode"
	default:
		return ""
	}
}

// BuiltinFromName looks up a builtin by script name or alias.
func BuiltinFromName(name string) (Builtin, bool) {
	b, ok := builtinNames[name]
	return b, ok
}

// BuiltinNames returns every recognized builtin name and alias, for
// help and completion listings.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinNames))
	for name := range builtinNames {
		names = append(names, name)
	}
	return names
}
