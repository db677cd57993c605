// Command gd is a terminal git diff viewer and interactive pager: given the working tree, the index, a
// single commit, or a commit range, it renders a scrollable, syntax-highlighted, word-diff-annotated view
// with search, a collapsible file tree, single-file/all-files scopes, and a full-file-context toggle.
package main

import (
	"fmt"
	"os"

	"github.com/arifd/gd/internal/gdconfig"
	"github.com/arifd/gd/internal/pagerapp"
	"github.com/arifd/gd/internal/vcsdiff"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "gd:", err)
		os.Exit(1)
	}
}

// run resolves the repository root for the current directory and hands everything else to `git diff` as-is
// (a revision, a range like `HEAD~3..HEAD`, `--staged`, path filters after `--`) — argument parsing is
// deliberately a thin passthrough to `git diff` itself.
func run(args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	repoRoot, err := vcsdiff.FindRepoRoot(cwd)
	if err != nil {
		return err
	}

	cfg := gdconfig.Load(repoRoot, args)

	return pagerapp.Run(pagerapp.Options{
		RepoRoot:      cfg.RepoRoot,
		DiffArgs:      cfg.DiffArgs,
		WidthOverride: cfg.WidthOverride,
	})
}
