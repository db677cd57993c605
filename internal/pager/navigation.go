package pager

import "github.com/arifd/gd/internal/render"

// nextMarker returns the first marker in markers strictly greater than cursor, or (cursor, false) if none.
//
// The strict-greater comparison is shared by next-hunk, next-file, and next-change-group, so every "next X"
// action advances past the current marker rather than re-landing on it.
func nextMarker(markers []int, cursor int) (int, bool) {
	for _, m := range markers {
		if m > cursor {
			return m, true
		}
	}
	return cursor, false
}

// prevMarker returns the last marker in markers strictly less than cursor, or (cursor, false) if none.
func prevMarker(markers []int, cursor int) (int, bool) {
	found := false
	best := cursor
	for _, m := range markers {
		if m < cursor {
			best = m
			found = true
		}
	}
	return best, found
}

func nextHunk(doc render.RenderOutput, cursor int) (int, bool) {
	return nextMarker(doc.HunkStarts, cursor)
}

func prevHunk(doc render.RenderOutput, cursor int) (int, bool) {
	return prevMarker(doc.HunkStarts, cursor)
}

func nextFile(doc render.RenderOutput, cursor int) (int, bool) {
	return nextMarker(doc.FileStarts, cursor)
}

func prevFile(doc render.RenderOutput, cursor int) (int, bool) {
	return prevMarker(doc.FileStarts, cursor)
}

// changeGroupStarts computes the full-context navigation unit from the GLOSSARY: maximal runs of Added/Deleted
// display lines in document order.
func changeGroupStarts(doc render.RenderOutput) []int {
	var starts []int
	inGroup := false
	for i, li := range doc.LineMap {
		isChange := li.Kind == render.KindAdded || li.Kind == render.KindDeleted
		if isChange && !inGroup {
			starts = append(starts, i)
			inGroup = true
		} else if !isChange {
			inGroup = false
		}
	}
	return starts
}

// fileIndexOfLine returns the file index that owns display line i (every LineInfo, including header/separator
// decoration rows, carries its owning file's index).
func fileIndexOfLine(doc render.RenderOutput, i int) int {
	if i < 0 || i >= len(doc.LineMap) {
		return 0
	}
	return doc.LineMap[i].FileIndex
}
