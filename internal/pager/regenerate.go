package pager

import "github.com/arifd/gd/internal/render"

// viewAnchor is the (file_idx, new_lineno, offset_within_file) triple recorded before a ReGenerate swap.
type viewAnchor struct {
	fileIdx         int
	newLineNo       int
	hasNewLineNo    bool
	offsetWithinFile int
}

// captureAnchor records the current top_line's position, to be restored by RemapAfterRegenerate once the new
// RenderOutput is installed.
func captureAnchor(doc render.RenderOutput, topLine int) viewAnchor {
	fileIdx := fileIndexOfLine(doc, topLine)
	fs, _ := fileRange(doc, fileIdx)

	a := viewAnchor{fileIdx: fileIdx, offsetWithinFile: topLine - fs}
	if topLine >= 0 && topLine < len(doc.LineMap) {
		li := doc.LineMap[topLine]
		if li.HasNewLine {
			a.newLineNo = li.NewLineNo
			a.hasNewLineNo = true
		}
	}
	return a
}

// RemapAfterRegenerate installs newDoc into s and recenters top_line/cursor_line on the anchor captured before
// regeneration: prefer an exact match on (file_idx, new_lineno), else fall back to file_start(file_idx) +
// offset_within_file, clamped to the file's end.
func RemapAfterRegenerate(s PagerState, newDoc render.RenderOutput, ctx Context) PagerState {
	anchor := captureAnchor(s.Doc, s.TopLine)
	s.Doc = newDoc

	newTop := resolveAnchor(newDoc, anchor)
	s.TopLine = newTop
	s.CursorLine = newTop

	s.SearchMatches = resolveMatches(newDoc, s.SearchQuery)
	if s.CurrentMatch >= 0 {
		s.CurrentMatch = nearestMatch(s.SearchMatches, s.TopLine)
	}

	if len(s.TreeEntries) > 0 {
		s.syncTreeCursor(newDoc, s.CursorLine, ctx.ContentHeight)
	}

	s.enforceInvariants(ctx.ContentHeight)
	return s
}

func resolveAnchor(doc render.RenderOutput, a viewAnchor) int {
	if a.hasNewLineNo {
		for i, li := range doc.LineMap {
			if li.FileIndex == a.fileIdx && li.HasNewLine && li.NewLineNo == a.newLineNo {
				return i
			}
		}
	}

	fs, fe := fileRange(doc, a.fileIdx)
	fallback := fs + a.offsetWithinFile
	if fallback >= fe {
		fallback = fe - 1
	}
	if fallback < fs {
		fallback = fs
	}
	return fallback
}
