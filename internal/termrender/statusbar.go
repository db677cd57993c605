package termrender

import (
	"fmt"
	"strings"

	"github.com/arifd/gd/internal/ansi"
	"github.com/arifd/gd/internal/diffmodel"
	"github.com/arifd/gd/internal/pager"
)

func statusStyle(status diffmodel.FileStatus) ansi.Style {
	switch status {
	case diffmodel.Added, diffmodel.Untracked:
		return Palette.AddedMarker
	case diffmodel.Deleted:
		return Palette.DeletedMarker
	default:
		return ansi.Style{}
	}
}

// StatusBar renders the single status-bar row.
func StatusBar(s pager.PagerState, cols int) string {
	if s.Mode == pager.ModeSearch {
		return searchInputLine(s, cols)
	}

	left := leftStatus(s)
	right := positionIndicator(s)

	gap := cols - ansi.TextWidthWithANSICodes(left) - ansi.TextWidthWithANSICodes(right)
	if gap < 1 {
		gap = 1
	}
	return padToWidth(left+strings.Repeat(" ", gap)+right, cols)
}

func leftStatus(s pager.PagerState) string {
	if fileIdx, ok := s.ViewScope.IsSingleFile(); ok {
		path := ""
		if fs, _ := visibleFileRange(s, fileIdx); fs >= 0 && fs < len(s.Doc.LineMap) {
			path = s.Doc.LineMap[fs].DisplayPath
		}
		return fmt.Sprintf("Single: %s (file %d/%d)", path, fileIdx+1, len(s.Doc.FileStarts))
	}
	if s.HasMark {
		return "Mark set"
	}
	return s.StatusMessage
}

func visibleFileRange(s pager.PagerState, fileIdx int) (int, int) {
	if fileIdx < 0 || fileIdx >= len(s.Doc.FileStarts) {
		return 0, len(s.Doc.Lines)
	}
	start := s.Doc.FileStarts[fileIdx]
	end := len(s.Doc.Lines)
	if fileIdx+1 < len(s.Doc.FileStarts) {
		end = s.Doc.FileStarts[fileIdx+1]
	}
	return start, end
}

func positionIndicator(s pager.PagerState) string {
	start, end := s.VisibleRange()
	total := end - start
	if total <= 0 {
		return "--"
	}

	label := "TOP"
	switch {
	case s.TopLine <= start:
		label = "TOP"
	default:
		label = fmt.Sprintf("%d%%", (s.TopLine-start)*100/total)
	}

	return fmt.Sprintf("%s  line %d/%d", label, s.CursorLine-start+1, total)
}

// searchInputLine renders "/query" with a reverse-video cell at the cursor, used as the whole status bar
// while in Search mode.
func searchInputLine(s pager.PagerState, cols int) string {
	prefix := "/"
	input := s.SearchInput
	cursor := s.SearchCursor
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(input) {
		cursor = len(input)
	}

	before := input[:cursor]
	at := " "
	after := ""
	if cursor < len(input) {
		at = input[cursor : cursor+1]
		after = input[cursor+1:]
	} else {
		after = ""
	}

	line := prefix + before + reverseRow(at) + after
	return padToWidth(line, cols)
}
