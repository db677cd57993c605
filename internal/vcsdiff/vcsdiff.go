// Package vcsdiff is the diff-source collaborator: it shells out to git for raw unified-diff text, a
// full-context variant for the "c" full-context toggle, and a listing of untracked files synthesized into
// Added/Untracked diff entries. Grounded on this codebase's exec.Command + CombinedOutput error-wrapping
// convention for VCS shellouts.
package vcsdiff

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const maxUntrackedFileSize = 256 * 1024

// Source runs git against repoRoot.
type Source struct {
	repoRoot string
}

// New returns a Source rooted at repoRoot (the working directory passed to every git invocation).
func New(repoRoot string) *Source {
	return &Source{repoRoot: repoRoot}
}

// FindRepoRoot resolves the git repository root containing dir via `git rev-parse --show-toplevel`, the
// entry point the `gd` binary uses before constructing a Source.
func FindRepoRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("not a git repository (or any parent): %w\n%s", err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

// RawDiff returns unified diff text for the given revision range/paths (e.g. "HEAD", "--staged", or no args
// for the working tree against the index), as git itself would print it.
func (s *Source) RawDiff(args ...string) (string, error) {
	return s.runGit(append([]string{"diff"}, args...)...)
}

// RawDiffFullContext is RawDiff with every hunk's context expanded to the whole file, used when the pager's
// full-context view toggle is on.
func (s *Source) RawDiffFullContext(args ...string) (string, error) {
	full := append([]string{"diff", "-U100000"}, args...)
	return s.runGit(full...)
}

// UntrackedFile is a working-tree file git does not track, eligible for synthesis into an Added diff entry.
type UntrackedFile struct {
	Path string
	Size int64
}

// ListUntracked returns paths reported by `git status --porcelain` with status "??", filtered to files within
// the synthesis size/content limits (spec: ≤256KiB, no NUL byte) by statting and sniffing each one.
func (s *Source) ListUntracked() ([]UntrackedFile, error) {
	out, err := s.runGit("status", "--porcelain", "--untracked-files=all")
	if err != nil {
		return nil, err
	}

	var files []UntrackedFile
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 || line[:2] != "??" {
			continue
		}
		rel := strings.TrimSpace(line[3:])
		rel = strings.Trim(rel, `"`)
		abs := filepath.Join(s.repoRoot, rel)

		size, eligible, err := sniffEligible(abs)
		if err != nil {
			continue // unreadable/vanished file: skip rather than fail the whole listing
		}
		if !eligible {
			continue
		}
		files = append(files, UntrackedFile{Path: rel, Size: size})
	}
	return files, nil
}

// ReadUntrackedContent reads the full contents of an untracked file for synthesis into a diff hunk. Callers
// must have already confirmed eligibility via ListUntracked.
func (s *Source) ReadUntrackedContent(rel string) ([]byte, error) {
	return readFileLimited(filepath.Join(s.repoRoot, rel), maxUntrackedFileSize)
}

func (s *Source) runGit(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = s.repoRoot
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}
	return stdout.String(), nil
}
