// Package termrender composes the per-frame terminal output: the content viewport with cursor-line/search/
// selection highlighting, an optional scrollbar column, an optional tree pane, the status bar, and the
// tooltip. It depends on internal/ansi for ANSI-safe width/cut/pad primitives and on internal/filetree for
// the tree pane's connector glyphs, but never mutates pager.PagerState — it is a pure function of state to
// a terminal frame string.
package termrender

import (
	"strings"

	"github.com/arifd/gd/internal/ansi"
)

const (
	reverseOn  = "\x1b[7m"
	reverseOff = "\x1b[27m"

	tooltipHeight = 2
)

// Palette holds the fixed SGR constants for chrome the renderer doesn't otherwise color: tree connectors,
// status text, and per-row scrollbar indicators.
var Palette = struct {
	Dim          ansi.Style
	TreeDirFG    ansi.Style
	TreeCursorBG ansi.Color
	AddedMarker  ansi.Style
	DeletedMarker ansi.Style
	ThumbBG      ansi.Color
	TrackBG      ansi.Color
}{
	Dim:           ansi.Style{Foreground: ansi.Indexed256(244)},
	TreeDirFG:     ansi.Style{Foreground: ansi.Indexed256(110)},
	TreeCursorBG:  ansi.Indexed256(238),
	AddedMarker:   ansi.Style{Foreground: ansi.Indexed256(114)},
	DeletedMarker: ansi.Style{Foreground: ansi.Indexed256(203)},
	ThumbBG:       ansi.Indexed256(250),
	TrackBG:       ansi.Indexed256(236),
}

// padToWidth truncates or space-pads a single (possibly ANSI-colored) line to exactly width visible columns.
func padToWidth(line string, width int) string {
	if width <= 0 {
		return ""
	}
	rows := ansi.WrapLineToWidth(line, width)
	first := ""
	if len(rows) > 0 {
		first = rows[0]
	}
	vis := ansi.TextWidthWithANSICodes(first)
	if vis < width {
		first += strings.Repeat(" ", width-vis)
	}
	return first
}

// reverseRow wraps an already width-normalized row in reverse video, the pager's highlight mechanism for the
// cursor line, search matches, and mark/visual selection (all applied at line granularity).
func reverseRow(row string) string {
	return reverseOn + row + reverseOff
}
