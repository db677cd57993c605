package pager

import (
	"github.com/arifd/gd/internal/diffmodel"
	"github.com/arifd/gd/internal/filetree"
	"github.com/arifd/gd/internal/render"
)

// buildTree constructs tree state fields for files, and syncs tree_selection to cursorLine's file. Called
// lazily the first time the tree pane or single-file view needs it. treeHeight is the tree pane's visible
// row count (equal to the content height, per termrender.treePaneColumn).
func (s *PagerState) buildTree(files []diffmodel.DiffFile, doc render.RenderOutput, cursorLine, treeHeight int) {
	s.TreeEntries = filetree.Build(files)
	s.TreeVisibleToEntry = filetree.VisibleToEntry(s.TreeEntries)
	s.TreeWidth = filetree.Width(s.TreeEntries)
	s.syncTreeCursor(doc, cursorLine, treeHeight)
}

func (s *PagerState) syncTreeCursor(doc render.RenderOutput, cursorLine, treeHeight int) {
	if len(s.TreeEntries) == 0 {
		return
	}
	fileIdx := fileIndexOfLine(doc, cursorLine)
	s.TreeSelection = filetree.SyncCursor(s.TreeEntries, s.TreeVisibleToEntry, fileIdx)
	s.ensureTreeScrollVisible(treeHeight)
}

// ensureTreeScrollVisible adjusts tree_scroll so tree_selection stays inside [tree_scroll, tree_scroll+treeHeight),
// per spec.md §4.4 ("tree_scroll is adjusted so the selected entry is always visible").
func (s *PagerState) ensureTreeScrollVisible(treeHeight int) {
	if s.TreeSelection < s.TreeScroll {
		s.TreeScroll = s.TreeSelection
	}
	if treeHeight > 0 && s.TreeSelection >= s.TreeScroll+treeHeight {
		s.TreeScroll = s.TreeSelection + 1 - treeHeight
	}
}

func (s *PagerState) treeMove(delta, treeHeight int) {
	if len(s.TreeVisibleToEntry) == 0 {
		return
	}
	next := s.TreeSelection + delta
	if next < 0 {
		next = 0
	}
	if next >= len(s.TreeVisibleToEntry) {
		next = len(s.TreeVisibleToEntry) - 1
	}
	s.TreeSelection = next
	s.ensureTreeScrollVisible(treeHeight)
}

// treeEnter toggles collapse on a directory, or reports the file index to open (opened=true).
func (s *PagerState) treeEnter() (fileIdx int, opened bool) {
	if s.TreeSelection < 0 || s.TreeSelection >= len(s.TreeVisibleToEntry) {
		return 0, false
	}
	idx := s.TreeVisibleToEntry[s.TreeSelection]
	entry := &s.TreeEntries[idx]
	if entry.HasFile {
		return entry.FileIndex, true
	}
	entry.Collapsed = !entry.Collapsed
	s.TreeVisibleToEntry = filetree.VisibleToEntry(s.TreeEntries)
	if s.TreeSelection >= len(s.TreeVisibleToEntry) {
		s.TreeSelection = len(s.TreeVisibleToEntry) - 1
	}
	return 0, false
}
