// Package pagerapp is the runtime loop that wires the diff-source, terminal, editor, and clipboard
// collaborators to the pure pager core: startup, poll-reduce-dispatch, and teardown.
package pagerapp

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/arifd/gd/internal/clipboard"
	"github.com/arifd/gd/internal/diffmodel"
	"github.com/arifd/gd/internal/editorlaunch"
	"github.com/arifd/gd/internal/pager"
	"github.com/arifd/gd/internal/render"
	"github.com/arifd/gd/internal/termio"
	"github.com/arifd/gd/internal/termrender"
	"github.com/arifd/gd/internal/vcsdiff"
)

const copiedPrefix = "Copied "

// pollInterval is how often the runtime checks terminal size while waiting for a key.
const pollInterval = 150 * time.Millisecond

// Options configures a pager run.
type Options struct {
	RepoRoot string
	DiffArgs []string // extra arguments passed to `git diff` (revision range, path filters).

	// WidthOverride, when > 0, replaces the terminal's reported column count on every frame. Set from
	// gdconfig.Config.WidthOverride (GD_WIDTH).
	WidthOverride int
}

// Run loads the diff, drives the terminal UI until quit, and returns any fatal startup/teardown error. A
// clean quit (including "no files to show") returns nil.
func Run(opts Options) error {
	source := vcsdiff.New(opts.RepoRoot)

	files, err := loadFiles(source, opts.DiffArgs, false)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("gd: no changes to show")
		return nil
	}

	term, err := termio.New(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	if err := term.Enter(); err != nil {
		return err
	}
	defer term.Exit()

	size := func() (int, int) {
		cols, rows := term.Size()
		if opts.WidthOverride > 0 {
			cols = opts.WidthOverride
		}
		return cols, rows
	}

	cols, rows := size()
	doc := render.Render(files, render.Options{Width: cols, Color: true, TabWidth: 8})
	s := pager.NewPagerState(doc)

	keys := termio.StartKeyReader(os.Stdin)

	draw(&s, cols, rows)

	lastCols, lastRows := cols, rows
	for {
		select {
		case key, ok := <-keys.Keys():
			if !ok {
				return nil
			}
			cols, rows = size()
			ctx := pager.Context{ContentHeight: termrender.ContentHeight(s, rows), Cols: cols, Files: files, RepoRoot: opts.RepoRoot}
			prevStatus := s.StatusMessage
			next, eff := pager.Reduce(s, pager.Event{Key: key}, ctx)
			s = next
			if s.StatusMessage != prevStatus && strings.HasPrefix(s.StatusMessage, copiedPrefix) {
				CopyToClipboard(strings.TrimPrefix(s.StatusMessage, copiedPrefix))
			}

			done, err := dispatch(&s, &files, source, term, &cols, &rows, opts.DiffArgs, eff)
			if err != nil {
				logDiagnostic("gd: dispatch error: %v", err)
			}
			if done {
				return nil
			}
			if len(s.TreeEntries) > 0 {
				s.TreeLines = termrender.RenderTreeLines(s)
			}
			draw(&s, cols, rows)

		case <-time.After(pollInterval):
			newCols, newRows := size()
			if newCols != lastCols || newRows != lastRows {
				lastCols, lastRows = newCols, newRows
				cols, rows = newCols, newRows
				reRender(&s, files, cols, rows)
				draw(&s, cols, rows)
			}

		case <-keys.Done():
			return nil
		}
	}
}

// loadFiles fetches and parses the diff, appending synthesized entries for eligible untracked files.
func loadFiles(source *vcsdiff.Source, diffArgs []string, fullContext bool) ([]diffmodel.DiffFile, error) {
	var raw string
	var err error
	if fullContext {
		raw, err = source.RawDiffFullContext(diffArgs...)
	} else {
		raw, err = source.RawDiff(diffArgs...)
	}
	if err != nil {
		return nil, err
	}

	files := diffmodel.ParseUnifiedDiff(raw)

	untracked, err := source.ListUntracked()
	if err != nil {
		logDiagnostic("gd: failed to list untracked files: %v", err)
		return files, nil
	}
	for _, u := range untracked {
		content, err := source.ReadUntrackedContent(u.Path)
		if err != nil {
			continue
		}
		files = append(files, vcsdiff.SynthesizeUntracked(u.Path, content))
	}
	return files, nil
}

// draw renders the current state to a full frame and writes it to the terminal.
func draw(s *pager.PagerState, cols, rows int) {
	frame := termrender.Frame(*s, cols, rows)
	fmt.Fprint(os.Stdout, "\x1b[H"+frame)
}

// reRender re-invokes the rendering engine at the current column budget, preserving the view anchor.
func reRender(s *pager.PagerState, files []diffmodel.DiffFile, cols, rows int) {
	width := cols
	if s.TreeVisible && s.TreeWidth > 0 {
		width -= s.TreeWidth + 1 // tree pane plus its separator column, as laid out by termrender.Frame
	}
	if s.FullContext {
		width -= 2 // scrollbar columns
	}
	newDoc := render.Render(files, render.Options{Width: width, Color: true, TreeVisible: s.TreeVisible, TabWidth: 8})
	ctx := pager.Context{ContentHeight: termrender.ContentHeight(*s, rows), Cols: cols}
	*s = pager.RemapAfterRegenerate(*s, newDoc, ctx)
	if len(s.TreeEntries) > 0 {
		s.TreeLines = termrender.RenderTreeLines(*s)
	}
}

// dispatch handles the effect of a reduction: re-rendering, regenerating from the diff source, spawning the
// editor, or quitting. done reports whether the loop should exit.
func dispatch(s *pager.PagerState, files *[]diffmodel.DiffFile, source *vcsdiff.Source, term *termio.Terminal, cols, rows *int, diffArgs []string, eff pager.Effect) (done bool, err error) {
	switch eff.Kind {
	case pager.Quit:
		return true, nil

	case pager.ReRender:
		reRender(s, *files, *cols, *rows)

	case pager.ReGenerate:
		newFiles, err := loadFiles(source, diffArgs, s.FullContext)
		if err != nil {
			s.StatusMessage = "regenerate failed: " + err.Error()
			return false, err
		}
		if len(newFiles) == 0 {
			return true, nil
		}
		*files = newFiles
		reRender(s, *files, *cols, *rows)

	case pager.OpenEditor:
		if err := term.Exit(); err != nil {
			return false, err
		}
		req := editorlaunch.Request{Path: eff.EditorPath, Line: eff.EditorLine, HasLine: eff.HasEditorLine, ReadOnly: eff.EditorReadOnly}
		editErr := editorlaunch.Open(req)
		if err := term.Enter(); err != nil {
			return false, err
		}
		if editErr != nil {
			s.StatusMessage = "editor exited with error"
		}
		reRender(s, *files, *cols, *rows)
	}
	return false, nil
}

// CopyToClipboard is the pager's one-shot clipboard write for the yank action, invoked by the host program
// after Reduce reports a new status message carrying the "Copied ..." reference (the reducer itself never
// touches the clipboard, to stay a pure function).
func CopyToClipboard(text string) bool {
	return clipboard.Copy(text)
}

var logMu sync.Mutex

// logDiagnostic appends formatted output to the file named by the GD_LOG_FILE environment variable (also
// read directly by gdconfig, which surfaces it on Config.LogFile for documentation purposes). Writing to
// stderr while the terminal is in raw/alt-screen mode would corrupt the display, so diagnostics the runtime
// loop can't surface through StatusMessage go here instead. If GD_LOG_FILE is unset/empty or the path can't
// be opened, logDiagnostic is a no-op — logging must never be allowed to crash or block the pager.
func logDiagnostic(format string, args ...any) {
	path := os.Getenv("GD_LOG_FILE")
	if path == "" {
		return
	}

	logMu.Lock()
	defer logMu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = f.Write(b.Bytes())
}
