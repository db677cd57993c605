package termrender

import (
	"strings"

	"github.com/arifd/gd/internal/pager"
)

// ContentHeight returns the number of content rows available after reserving the status bar row and, when
// visible, the two-row tooltip. The runtime loop passes this into pager.Context.ContentHeight before
// calling Reduce.
func ContentHeight(s pager.PagerState, rows int) int {
	h := rows - 1 // status bar is always present
	if s.TooltipVisible {
		h -= tooltipHeight
	}
	if h < 0 {
		h = 0
	}
	return h
}

// Frame composes the full terminal frame for the current state at the given terminal size.
func Frame(s pager.PagerState, cols, rows int) string {
	contentHeight := ContentHeight(s, rows)

	treeWidth := 0
	if s.TreeVisible && s.TreeWidth > 0 {
		treeWidth = s.TreeWidth + 1 // +1 for the vertical separator column
	}
	showScrollbar := s.FullContext
	scrollbarWidth := 0
	if showScrollbar {
		scrollbarWidth = 2 // change-indicator + thumb track
	}

	contentWidth := cols - treeWidth - scrollbarWidth
	if contentWidth < 1 {
		contentWidth = 1
	}

	var scrollbar []string
	if showScrollbar {
		scrollbar = scrollbarColumn(s, contentHeight)
	}
	var tree []string
	if treeWidth > 0 {
		tree = treePaneColumn(s, contentHeight, treeWidth-1)
	}

	var b strings.Builder
	for row := 0; row < contentHeight; row++ {
		lineIdx := s.TopLine + row
		b.WriteString(contentRow(s, lineIdx, contentWidth))

		if showScrollbar {
			b.WriteString(changeIndicator(s.Doc, lineIdx))
			b.WriteString(scrollbar[row])
		}
		if treeWidth > 0 {
			b.WriteString("│")
			b.WriteString(tree[row])
		}
		b.WriteByte('\n')
	}

	if s.TooltipVisible {
		for _, line := range Tooltip(cols) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	b.WriteString(StatusBar(s, cols))
	return b.String()
}

func contentRow(s pager.PagerState, lineIdx, width int) string {
	if lineIdx < 0 || lineIdx >= len(s.Doc.Lines) {
		return padToWidth("", width)
	}

	row := padToWidth(s.Doc.Lines[lineIdx], width)
	if inSelection(s, lineIdx) {
		row = reverseRow(row)
	}
	if isSearchMatch(s, lineIdx) {
		row = reverseRow(row)
	}
	if lineIdx == s.CursorLine {
		row = reverseRow(row)
	}
	return row
}

func inSelection(s pager.PagerState, lineIdx int) bool {
	if !s.HasMark && !s.HasVisualAnchor {
		return false
	}
	anchor := s.MarkLine
	if s.HasVisualAnchor {
		anchor = s.VisualAnchor
	}
	lo, hi := anchor, s.CursorLine
	if lo > hi {
		lo, hi = hi, lo
	}
	return lineIdx >= lo && lineIdx <= hi
}

func isSearchMatch(s pager.PagerState, lineIdx int) bool {
	for _, m := range s.SearchMatches {
		if m == lineIdx {
			return true
		}
	}
	return false
}
