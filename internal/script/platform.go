package script

import "runtime"

// Platform identifiers recognized by "eval on". The set is extensible:
// unknown names parse fine and simply never match a real platform.
const (
	PlatformWindows = "windows"
	PlatformLinux   = "linux"
	PlatformMacOS   = "macos"
	PlatformBSD     = "bsd"
)

// CurrentPlatform maps the running OS to an rc-script platform name.
func CurrentPlatform() string {
	switch runtime.GOOS {
	case "windows":
		return PlatformWindows
	case "darwin":
		return PlatformMacOS
	case "freebsd", "openbsd", "netbsd", "dragonfly":
		return PlatformBSD
	default:
		return PlatformLinux
	}
}

// Filter resolves every eval-on block in the script against the given
// platform. Matching blocks are spliced into the statement stream in
// place; non-matching blocks are dropped whole, together with every
// definition nested inside them. The input script is not modified.
func Filter(s *Script, platform string) *Script {
	return &Script{
		Source:     s.Source,
		Statements: filterStatements(s.Statements, platform),
	}
}

func filterStatements(stmts []Statement, platform string) []Statement {
	out := make([]Statement, 0, len(stmts))
	for _, stmt := range stmts {
		block, ok := stmt.(*EvalOnStatement)
		if !ok {
			out = append(out, stmt)
			continue
		}
		if !block.Matches(platform) {
			continue
		}
		out = append(out, filterStatements(block.Body, platform)...)
	}
	return out
}

// Matches reports whether the block's platform list contains platform.
func (s *EvalOnStatement) Matches(platform string) bool {
	for _, p := range s.Platforms {
		if p == platform {
			return true
		}
	}
	return false
}
