// Package gdconfig resolves the small amount of runtime configuration the pager needs beyond the diff
// source selection itself: an optional terminal-width override (mainly for tests and non-tty pipes), the
// log file path (also read directly by internal/pagerapp's diagnostic logger), and the diff arguments. The
// editor is not configured here: internal/editorlaunch reads $VISUAL/$EDITOR itself. Kept intentionally thin: the pager has no configurable
// themes, so there is no cascading config-file format here, only flags and environment variables.
package gdconfig

import (
	"os"
	"strconv"
)

// Config is the resolved runtime configuration for one pager invocation.
type Config struct {
	RepoRoot string

	// DiffArgs is forwarded verbatim to `git diff` (revision range and/or path filters).
	DiffArgs []string

	// WidthOverride, when > 0, replaces the terminal's reported column count. Set via GD_WIDTH, mainly
	// useful for reproducing a rendering under a fixed width without a real tty.
	WidthOverride int

	// LogFile mirrors GD_LOG_FILE, surfaced here only so callers can report where diagnostics are going.
	LogFile string
}

// Load resolves Config from the process environment and repoRoot, which the caller has already located
// (typically the current working directory, since `gd` operates on the repository it's invoked inside).
func Load(repoRoot string, diffArgs []string) Config {
	cfg := Config{
		RepoRoot: repoRoot,
		DiffArgs: diffArgs,
		LogFile:  os.Getenv("GD_LOG_FILE"),
	}
	if v := os.Getenv("GD_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WidthOverride = n
		}
	}
	return cfg
}
