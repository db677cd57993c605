// Package pager implements the pager state machine: PagerState, the pure Reduce function, the keymap, and the
// navigation/search helpers it dispatches to.
package pager

import (
	"github.com/arifd/gd/internal/filetree"
	"github.com/arifd/gd/internal/render"
)

// ViewScope is the closed sum type AllFiles | SingleFile(fileIdx): an index field that can be semantically
// absent is modeled as a tagged union, not a nullable/sentinel integer.
type ViewScope struct {
	single  bool
	fileIdx int
}

// AllFiles is the view scope showing every file.
func AllFiles() ViewScope { return ViewScope{} }

// SingleFile is the view scope showing only fileIdx.
func SingleFile(fileIdx int) ViewScope { return ViewScope{single: true, fileIdx: fileIdx} }

// IsSingleFile reports whether the scope is SingleFile, and if so which file index.
func (v ViewScope) IsSingleFile() (int, bool) { return v.fileIdx, v.single }

// Mode is the reducer's input context: Normal or Search.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

// scrolloff is the minimum rows of context maintained between cursor_line and the viewport edges, per the
// GLOSSARY.
const scrolloff = 8

// PagerState is the full aggregate state owned by the reducer.
type PagerState struct {
	Doc render.RenderOutput

	TopLine    int
	CursorLine int

	VisualAnchor    int
	HasVisualAnchor bool
	MarkLine        int
	HasMark         bool

	SearchQuery    string
	SearchMatches  []int
	CurrentMatch   int // signed index into SearchMatches; -1 means none
	SearchInput    string
	SearchCursor   int

	Mode Mode

	StatusMessage string
	TooltipVisible bool

	TreeVisible     bool
	TreeUserHidden  bool
	TreeSelection   int
	TreeWidth       int
	TreeScroll      int
	TreeLines       []string
	TreeEntries     []filetree.Entry
	TreeVisibleToEntry []int

	ViewScope   ViewScope
	FullContext bool
}

// NewPagerState builds the initial state from a render output.
func NewPagerState(doc render.RenderOutput) PagerState {
	s := PagerState{
		Doc:          doc,
		CurrentMatch: -1,
		ViewScope:    AllFiles(),
	}
	s.CursorLine = firstContentLine(doc, 0, len(doc.Lines))
	return s
}

// VisibleRange returns the current [start, end) line interval imposed by ViewScope, per the GLOSSARY.
func (s PagerState) VisibleRange() (int, int) {
	if fileIdx, ok := s.ViewScope.IsSingleFile(); ok {
		return fileRange(s.Doc, fileIdx)
	}
	return 0, len(s.Doc.Lines)
}

func fileRange(doc render.RenderOutput, fileIdx int) (int, int) {
	if fileIdx < 0 || fileIdx >= len(doc.FileStarts) {
		return 0, len(doc.Lines)
	}
	start := doc.FileStarts[fileIdx]
	end := len(doc.Lines)
	if fileIdx+1 < len(doc.FileStarts) {
		end = doc.FileStarts[fileIdx+1]
	}
	return start, end
}

// isContentLine reports whether doc.LineMap[i].Kind is a content kind (Added/Deleted/Context), i.e. not a
// header or separator decoration line.
func isContentLine(doc render.RenderOutput, i int) bool {
	if i < 0 || i >= len(doc.LineMap) {
		return false
	}
	return doc.LineMap[i].Kind != render.KindNone
}

func firstContentLine(doc render.RenderOutput, start, end int) int {
	for i := start; i < end; i++ {
		if isContentLine(doc, i) {
			return i
		}
	}
	if start < end {
		return start
	}
	return 0
}

func lastContentLine(doc render.RenderOutput, start, end int) int {
	for i := end - 1; i >= start; i-- {
		if isContentLine(doc, i) {
			return i
		}
	}
	if end > start {
		return start
	}
	return 0
}

// snapToContentLine moves line to the nearest content line within [start, end), searching forward if
// forward is true, else backward, falling back to the range bounds.
func snapToContentLine(doc render.RenderOutput, line, start, end int, forward bool) int {
	if line < start {
		line = start
	}
	if line >= end {
		line = end - 1
	}
	if isContentLine(doc, line) {
		return line
	}
	if forward {
		for i := line; i < end; i++ {
			if isContentLine(doc, i) {
				return i
			}
		}
		return lastContentLine(doc, start, end)
	}
	for i := line; i >= start; i-- {
		if isContentLine(doc, i) {
			return i
		}
	}
	return firstContentLine(doc, start, end)
}

// enforceInvariants clamps cursor_line/top_line into the active visible range and applies scrolloff. Called
// after every reducer transition.
func (s *PagerState) enforceInvariants(contentHeight int) {
	start, end := s.VisibleRange()
	if end <= start {
		s.CursorLine = start
		s.TopLine = start
		return
	}

	if s.CursorLine < start || s.CursorLine >= end {
		s.CursorLine = snapToContentLine(s.Doc, s.CursorLine, start, end, true)
	}
	if !isContentLine(s.Doc, s.CursorLine) {
		s.CursorLine = snapToContentLine(s.Doc, s.CursorLine, start, end, true)
	}

	maxTop := end - contentHeight
	if maxTop < start {
		maxTop = start
	}
	if s.TopLine < start {
		s.TopLine = start
	}
	if s.TopLine > maxTop {
		s.TopLine = maxTop
	}

	if contentHeight > 0 {
		k := scrolloff
		if k*2 >= contentHeight {
			k = (contentHeight - 1) / 2
		}
		if k < 0 {
			k = 0
		}
		minTop := s.CursorLine - contentHeight + 1 + k
		maxTopForCursor := s.CursorLine - k
		if s.TopLine < minTop {
			s.TopLine = minTop
		}
		if s.TopLine > maxTopForCursor {
			s.TopLine = maxTopForCursor
		}
		if s.TopLine < start {
			s.TopLine = start
		}
		if s.TopLine > maxTop {
			s.TopLine = maxTop
		}
	}
}

// centerOn sets top_line so cursor_line is centered in the viewport.
func (s *PagerState) centerOn(line int, contentHeight int) {
	s.CursorLine = line
	s.TopLine = line - contentHeight/2
}
