// Package termio is the terminal I/O backend collaborator: raw-mode toggling, alt-screen, cursor control,
// and key-event decoding, trimmed to the pager's narrower contract (no mouse reporting, no bracketed paste).
package termio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	cursorHome     = "\x1b[H"
	clearLineSeq   = "\x1b[2K"
	altScreenEnter = "\x1b[?1049h" + cursorHome
	altScreenExit  = "\x1b[?1049l"
	hideCursorSeq  = "\x1b[?25l"
	showCursorSeq  = "\x1b[?25h"
	clearScreenSeq = "\x1b[2J" + cursorHome
)

var errNoFileDescriptor = errors.New("termio: raw mode requires *os.File input")

// Terminal is the runtime loop's handle on the real terminal: raw-mode/alt-screen lifecycle plus the small set
// of control writes the pager needs.
type Terminal struct {
	in  *os.File
	out io.Writer

	mu      sync.Mutex
	state   *term.State
	entered bool
}

// New builds a Terminal bound to in/out. in must be a *os.File for raw mode to be available.
func New(in *os.File, out io.Writer) (*Terminal, error) {
	if in == nil {
		return nil, errNoFileDescriptor
	}
	if out == nil {
		out = in
	}
	return &Terminal{in: in, out: out}, nil
}

// Enter switches into raw mode and the alternate screen, hides the cursor. Idempotent.
func (t *Terminal) Enter() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.entered {
		return nil
	}

	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}

	if err := t.writeString(altScreenEnter + clearScreenSeq + hideCursorSeq); err != nil {
		_ = term.Restore(fd, state)
		return err
	}

	t.state = state
	t.entered = true
	return nil
}

// Exit restores cooked mode and leaves the alternate screen, showing the cursor. Idempotent.
func (t *Terminal) Exit() error {
	t.mu.Lock()
	if !t.entered {
		t.mu.Unlock()
		return nil
	}
	fd := int(t.in.Fd())
	state := t.state
	t.state = nil
	t.entered = false
	t.mu.Unlock()

	var firstErr error
	if state != nil {
		if err := term.Restore(fd, state); err != nil {
			firstErr = err
		}
	}
	if err := t.writeString(showCursorSeq + altScreenExit); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Size returns the current terminal dimensions, falling back to 80x24 on query failure.
func (t *Terminal) Size() (cols, rows int) {
	cols, rows, err := term.GetSize(int(t.in.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return 80, 24
	}
	return cols, rows
}

// GotoCursor writes ESC[row+1;col+1H (0-based row/col in).
func (t *Terminal) GotoCursor(row, col int) error {
	return t.writeString(fmt.Sprintf("\x1b[%d;%dH", row+1, col+1))
}

// ClearLine writes the clear-current-line sequence.
func (t *Terminal) ClearLine() error {
	return t.writeString(clearLineSeq)
}

// Write writes raw bytes (a composed frame) to the terminal.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func (t *Terminal) writeString(s string) error {
	if t.out == nil || s == "" {
		return nil
	}
	_, err := io.WriteString(t.out, s)
	return err
}
