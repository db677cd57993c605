package pager

import (
	"fmt"

	"github.com/arifd/gd/internal/render"
)

// Reduce is the single pure reducer: (state, event, ctx) → (newState, effect). It performs no I/O; callers
// act on the returned Effect.
func Reduce(s PagerState, ev Event, ctx Context) (PagerState, Effect) {
	if ev.Resize {
		return s, Effect{Kind: ReRender}
	}

	action := lookupAction(s.Mode, ev.Key)

	if s.Mode == ModeSearch {
		return reduceSearchMode(s, action, ev.Key, ctx)
	}
	return reduceNormalMode(s, action, ctx)
}

func reduceNormalMode(s PagerState, action Action, ctx Context) (PagerState, Effect) {
	start, end := s.VisibleRange()

	switch action {
	case ActionScrollDown:
		s.CursorLine = clampInt(s.CursorLine+1, start, end-1)
		s.CursorLine = snapToContentLine(s.Doc, s.CursorLine, start, end, true)
	case ActionScrollUp:
		s.CursorLine = clampInt(s.CursorLine-1, start, end-1)
		s.CursorLine = snapToContentLine(s.Doc, s.CursorLine, start, end, false)
	case ActionHalfPageDown:
		s.CursorLine = clampInt(s.CursorLine+ctx.ContentHeight/2, start, end-1)
		s.CursorLine = snapToContentLine(s.Doc, s.CursorLine, start, end, true)
	case ActionHalfPageUp:
		s.CursorLine = clampInt(s.CursorLine-ctx.ContentHeight/2, start, end-1)
		s.CursorLine = snapToContentLine(s.Doc, s.CursorLine, start, end, false)
	case ActionTop:
		s.CursorLine = snapToContentLine(s.Doc, start, start, end, true)
	case ActionBottom:
		s.CursorLine = snapToContentLine(s.Doc, end-1, start, end, false)
	case ActionCenterViewport:
		s.centerOn(s.CursorLine, ctx.ContentHeight)

	case ActionNextHunk:
		if s.FullContext {
			if ln, ok := nextMarker(changeGroupStarts(s.Doc), s.CursorLine); ok {
				s.CursorLine = ln
			}
		} else if ln, ok := nextHunk(s.Doc, s.CursorLine); ok {
			s.CursorLine = ln
		}
	case ActionPrevHunk:
		if s.FullContext {
			if ln, ok := prevMarker(changeGroupStarts(s.Doc), s.CursorLine); ok {
				s.CursorLine = ln
			}
		} else if ln, ok := prevHunk(s.Doc, s.CursorLine); ok {
			s.CursorLine = ln
		}
	case ActionNextFile:
		if fileIdx, ok := s.ViewScope.IsSingleFile(); ok {
			return setViewToFile(s, fileIdx+1, ctx)
		}
		if ln, ok := nextFile(s.Doc, s.CursorLine); ok {
			s.CursorLine = ln
		}
	case ActionPrevFile:
		if fileIdx, ok := s.ViewScope.IsSingleFile(); ok {
			return setViewToFile(s, fileIdx-1, ctx)
		}
		if ln, ok := prevFile(s.Doc, s.CursorLine); ok {
			s.CursorLine = ln
		}

	case ActionToggleSingleFile:
		return toggleSingleFile(s, ctx)
	case ActionToggleFullContext:
		s.FullContext = !s.FullContext
		s.enforceInvariants(ctx.ContentHeight)
		return s, Effect{Kind: ReGenerate}
	case ActionToggleTree:
		s.TreeUserHidden = s.TreeVisible
		s.TreeVisible = !s.TreeVisible
		if s.TreeVisible && len(s.TreeEntries) == 0 {
			s.buildTree(ctx.Files, s.Doc, s.CursorLine, ctx.ContentHeight)
		}
		s.enforceInvariants(ctx.ContentHeight)
		return s, Effect{Kind: ReRender}
	case ActionToggleTooltip:
		s.TooltipVisible = !s.TooltipVisible
		s.enforceInvariants(ctx.ContentHeight)
		return s, Effect{Kind: ReRender}

	case ActionSearchEnter:
		s.Mode = ModeSearch
		s.SearchInput = ""
		s.SearchCursor = 0
		s.enforceInvariants(ctx.ContentHeight)
		return s, Effect{Kind: Continue}
	case ActionSearchNext:
		s.jumpMatch(true)
	case ActionSearchPrev:
		s.jumpMatch(false)

	case ActionSetMark:
		s.MarkLine = s.CursorLine
		s.HasMark = true
		s.StatusMessage = "Mark set"
	case ActionYankToMark:
		s.StatusMessage = yankReference(s.Doc, s.CursorLine, s.MarkLine, s.HasMark)

	case ActionOpenEditor:
		s.enforceInvariants(ctx.ContentHeight)
		return s, openEditorEffect(s.Doc, s.CursorLine)

	case ActionTreeUp:
		s.treeMove(-1, ctx.ContentHeight)
	case ActionTreeDown:
		s.treeMove(1, ctx.ContentHeight)
	case ActionTreeEnter:
		if fileIdx, opened := s.treeEnter(); opened {
			s.ViewScope = SingleFile(fileIdx)
			fs, fe := fileRange(s.Doc, fileIdx)
			s.centerOn(firstContentLine(s.Doc, fs, fe), ctx.ContentHeight)
		}
		s.enforceInvariants(ctx.ContentHeight)
		return s, Effect{Kind: ReRender}

	case ActionQuit:
		return s, Effect{Kind: Quit}

	default:
		return s, Effect{Kind: Continue}
	}

	s.enforceInvariants(ctx.ContentHeight)
	return s, Effect{Kind: Continue}
}

func reduceSearchMode(s PagerState, action Action, key Key, ctx Context) (PagerState, Effect) {
	switch action {
	case ActionSearchInputRune:
		s.SearchInput, s.SearchCursor = insertRune(s.SearchInput, s.SearchCursor, key.Rune)
	case ActionSearchInputBackspace:
		s.SearchInput, s.SearchCursor = deleteBeforeCursor(s.SearchInput, s.SearchCursor)
	case ActionSearchInputLeft:
		s.SearchCursor = prevCharBoundary(s.SearchInput, s.SearchCursor)
	case ActionSearchInputRight:
		s.SearchCursor = nextCharBoundary(s.SearchInput, s.SearchCursor)
	case ActionSearchInputWordLeft:
		s.SearchCursor = prevWordBoundary(s.SearchInput, s.SearchCursor)
	case ActionSearchInputWordRight:
		s.SearchCursor = nextWordBoundary(s.SearchInput, s.SearchCursor)
	case ActionSearchInputHome:
		s.SearchCursor = 0
	case ActionSearchInputEnd:
		s.SearchCursor = len(s.SearchInput)

	case ActionSearchSubmit:
		s.SearchQuery = s.SearchInput
		s.SearchMatches = resolveMatches(s.Doc, s.SearchQuery)
		s.CurrentMatch = nearestMatch(s.SearchMatches, s.TopLine)
		s.Mode = ModeNormal
		if s.CurrentMatch >= 0 {
			s.CursorLine = s.SearchMatches[s.CurrentMatch]
		}
		s.enforceInvariants(ctx.ContentHeight)
		return s, Effect{Kind: Continue}

	case ActionSearchCancel:
		s.Mode = ModeNormal
		s.enforceInvariants(ctx.ContentHeight)
		return s, Effect{Kind: Continue}
	}

	return s, Effect{Kind: Continue}
}

// jumpMatch steps to the next/prev search match, cycling within the active file's range when view_scope is
// SingleFile.
func (s *PagerState) jumpMatch(forward bool) {
	if len(s.SearchMatches) == 0 {
		return
	}

	scope := scopedMatchIndices(s.SearchMatches, 0, len(s.Doc.Lines))
	if fileIdx, ok := s.ViewScope.IsSingleFile(); ok {
		start, end := fileRange(s.Doc, fileIdx)
		scope = scopedMatchIndices(s.SearchMatches, start, end)
	}

	next := stepMatch(s.SearchMatches, s.CurrentMatch, scope, forward)
	if next < 0 {
		return
	}
	s.CurrentMatch = next
	s.CursorLine = s.SearchMatches[next]
}

// toggleSingleFile: toggling on sets view scope to the file under the cursor, building tree entries if
// absent; toggling off restores AllFiles and leaves cursor_line unchanged.
func toggleSingleFile(s PagerState, ctx Context) (PagerState, Effect) {
	if _, ok := s.ViewScope.IsSingleFile(); ok {
		s.ViewScope = AllFiles()
		s.enforceInvariants(ctx.ContentHeight)
		return s, Effect{Kind: ReRender}
	}

	return setViewToFile(s, fileIndexOfLine(s.Doc, s.CursorLine), ctx)
}

// setViewToFile switches view_scope to fileIdx (clamped into range), building tree entries if absent or
// syncing tree_selection otherwise, and recentering the cursor inside the new file's range — on the cursor's
// current line if it already falls in that range (the toggleSingleFile case), else on the file's first
// content line (the next-file/prev-file case). Used by toggleSingleFile and by next-file/prev-file when
// already in single-file scope, per spec.md §4.5.1 ("single-file navigation jumps by whole files").
func setViewToFile(s PagerState, fileIdx int, ctx Context) (PagerState, Effect) {
	n := len(s.Doc.FileStarts)
	if n == 0 {
		return s, Effect{Kind: ReRender}
	}
	fileIdx = clampInt(fileIdx, 0, n-1)
	s.ViewScope = SingleFile(fileIdx)

	fs, fe := fileRange(s.Doc, fileIdx)
	target := s.CursorLine
	if target < fs || target >= fe {
		target = firstContentLine(s.Doc, fs, fe)
	} else {
		target = clampInt(target, fs, fe-1)
	}

	if len(s.TreeEntries) == 0 {
		s.buildTree(ctx.Files, s.Doc, target, ctx.ContentHeight)
	} else {
		s.syncTreeCursor(s.Doc, target, ctx.ContentHeight)
	}

	s.centerOn(target, ctx.ContentHeight)
	s.enforceInvariants(ctx.ContentHeight)
	return s, Effect{Kind: ReRender}
}

// yankReference builds the "Copied path:start-end" status message (preferring new line numbers, falling back to
// old); the clipboard write itself is left to the host program.
func yankReference(doc render.RenderOutput, cursorLine, markLine int, hasMark bool) string {
	if !hasMark {
		return "No mark set"
	}
	lo, hi := markLine, cursorLine
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 || lo >= len(doc.LineMap) || hi < 0 || hi >= len(doc.LineMap) {
		return "Yank failed"
	}

	path := doc.LineMap[lo].DisplayPath
	startLine, ok1 := lineNumberFor(doc.LineMap[lo])
	endLine, ok2 := lineNumberFor(doc.LineMap[hi])
	if !ok1 || !ok2 {
		return "Yank failed"
	}

	ref := fmt.Sprintf("%s:%d-%d", path, startLine, endLine)
	return "Copied " + ref
}

func lineNumberFor(li render.LineInfo) (int, bool) {
	if li.HasNewLine {
		return li.NewLineNo, true
	}
	if li.HasOldLine {
		return li.OldLineNo, true
	}
	return 0, false
}

func openEditorEffect(doc render.RenderOutput, cursorLine int) Effect {
	if cursorLine < 0 || cursorLine >= len(doc.LineMap) {
		return Effect{Kind: Continue}
	}
	li := doc.LineMap[cursorLine]
	if li.DisplayPath == "" {
		return Effect{Kind: Continue}
	}
	eff := Effect{Kind: OpenEditor, EditorPath: li.DisplayPath}
	if n, ok := lineNumberFor(li); ok {
		eff.EditorLine = n
		eff.HasEditorLine = true
	}
	return eff
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
