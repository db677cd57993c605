package termrender

import (
	"github.com/arifd/gd/internal/ansi"
	"github.com/arifd/gd/internal/pager"
	"github.com/arifd/gd/internal/render"
)

// scrollbarColumn returns one cell per content row: a thumb over the track reflecting top_line/content_height
// against the document length. Shown only in full-context mode.
func scrollbarColumn(s pager.PagerState, contentHeight int) []string {
	start, end := s.VisibleRange()
	total := end - start
	cells := make([]string, contentHeight)

	thumbStart, thumbLen := thumbExtent(s.TopLine-start, contentHeight, total)

	for row := 0; row < contentHeight; row++ {
		cell := ansi.Style{Background: Palette.TrackBG}.SGR() + " " + ansi.ANSIReset
		if row >= thumbStart && row < thumbStart+thumbLen {
			cell = ansi.Style{Background: Palette.ThumbBG}.SGR() + " " + ansi.ANSIReset
		}
		cells[row] = cell
	}
	return cells
}

// thumbExtent computes the scrollbar thumb's [start, start+len) row range within a track of height
// contentHeight, for a document of total lines currently scrolled to topOffset.
func thumbExtent(topOffset, contentHeight, total int) (start, length int) {
	if total <= contentHeight || contentHeight <= 0 {
		return 0, contentHeight
	}
	length = contentHeight * contentHeight / total
	if length < 1 {
		length = 1
	}
	maxTop := total - contentHeight
	if maxTop <= 0 {
		return 0, length
	}
	start = topOffset * (contentHeight - length) / maxTop
	if start+length > contentHeight {
		start = contentHeight - length
	}
	if start < 0 {
		start = 0
	}
	return start, length
}

// changeIndicator returns a single-glyph marker for the added/deleted status of the line at lineIdx, used in
// the column between the content and the scrollbar track in full-context mode.
func changeIndicator(doc render.RenderOutput, lineIdx int) string {
	if lineIdx < 0 || lineIdx >= len(doc.LineMap) {
		return " "
	}
	switch doc.LineMap[lineIdx].Kind {
	case render.KindAdded:
		return Palette.AddedMarker.Wrap("+")
	case render.KindDeleted:
		return Palette.DeletedMarker.Wrap("-")
	default:
		return " "
	}
}
