package termrender

import (
	"github.com/arifd/gd/internal/ansi"
	"github.com/arifd/gd/internal/filetree"
	"github.com/arifd/gd/internal/pager"
)

// RenderTreeLines builds one styled row per visible tree entry: connector glyphs from internal/filetree, the
// entry's label, and a directory-tinted or status-tinted color. Callers (the runtime loop) assign the result
// into PagerState.TreeLines whenever the tree's structure or selection changes.
func RenderTreeLines(s pager.PagerState) []string {
	entries := s.TreeEntries
	visible := s.TreeVisibleToEntry
	lines := make([]string, len(visible))

	for pos, entryIdx := range visible {
		e := entries[entryIdx]
		prefix := filetree.ConnectorPrefix(entries, visible, pos)
		label := e.Label
		if !e.HasFile {
			label = Palette.TreeDirFG.Wrap(label)
		} else if e.HasStatus {
			label = statusStyle(e.Status).Wrap(label)
		}

		row := prefix + label
		if pos == s.TreeSelection {
			row = ansi.Style{Background: Palette.TreeCursorBG}.SGR() + ansi.BlockStylePerLine(row)
		}
		lines[pos] = row
	}
	return lines
}

// treePaneColumn returns contentHeight rows of the tree pane, each padded to width, sourced from
// s.TreeLines[s.TreeScroll+row].
func treePaneColumn(s pager.PagerState, contentHeight, width int) []string {
	cells := make([]string, contentHeight)
	for row := 0; row < contentHeight; row++ {
		idx := s.TreeScroll + row
		line := ""
		if idx >= 0 && idx < len(s.TreeLines) {
			line = s.TreeLines[idx]
		}
		cells[row] = padToWidth(line, width)
	}
	return cells
}
