package pager

import (
	"testing"

	"github.com/arifd/gd/internal/diffmodel"
	"github.com/arifd/gd/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentLine(fileIdx int) render.LineInfo {
	return render.LineInfo{FileIndex: fileIdx, Kind: render.KindContext, NewLineNo: 1, HasNewLine: true}
}

func headerLine(fileIdx int) render.LineInfo {
	return render.LineInfo{FileIndex: fileIdx, Kind: render.KindNone}
}

func TestMultiHunkNavigation(t *testing.T) {
	// file with hunk_starts = [1, 5]: header(0), hunk1 body(1..4), hunk2 body(5..8)
	lines := make([]string, 9)
	lineMap := make([]render.LineInfo, 9)
	lineMap[0] = headerLine(0)
	for i := 1; i <= 8; i++ {
		lineMap[i] = contentLine(0)
	}
	doc := render.RenderOutput{Lines: lines, LineMap: lineMap, FileStarts: []int{0}, HunkStarts: []int{1, 5}}

	s := NewPagerState(doc)
	ctx := Context{ContentHeight: 20}
	s.CursorLine = 1

	s, eff := Reduce(s, Event{Key: Key{Code: KeyRune, Rune: '}'}}, ctx)
	require.Equal(t, Continue, eff.Kind)
	assert.Equal(t, 5, s.CursorLine, "next-hunk should move cursor to 5")

	s, _ = Reduce(s, Event{Key: Key{Code: KeyRune, Rune: '}'}}, ctx)
	assert.Equal(t, 5, s.CursorLine, "next-hunk at last hunk should be a no-op")

	s, _ = Reduce(s, Event{Key: Key{Code: KeyRune, Rune: '{'}}, ctx)
	assert.Equal(t, 1, s.CursorLine, "prev-hunk should return cursor to 1")

	s, _ = Reduce(s, Event{Key: Key{Code: KeyRune, Rune: '{'}}, ctx)
	assert.Equal(t, 1, s.CursorLine, "prev-hunk on first hunk's body should be a no-op")
}

func buildTwoFileDoc() render.RenderOutput {
	// file0: header(0), content(1..2); file1: header(3), content(4..5)
	lineMap := []render.LineInfo{
		headerLine(0), contentLine(0), contentLine(0),
		headerLine(1), contentLine(1), contentLine(1),
	}
	lines := make([]string, len(lineMap))
	return render.RenderOutput{Lines: lines, LineMap: lineMap, FileStarts: []int{0, 3}, HunkStarts: []int{1, 4}}
}

func buildThreeFileDoc() render.RenderOutput {
	// file0: header(0), content(1..2); file1: header(3), content(4..5); file2: header(6), content(7..8)
	lineMap := []render.LineInfo{
		headerLine(0), contentLine(0), contentLine(0),
		headerLine(1), contentLine(1), contentLine(1),
		headerLine(2), contentLine(2), contentLine(2),
	}
	lines := make([]string, len(lineMap))
	return render.RenderOutput{Lines: lines, LineMap: lineMap, FileStarts: []int{0, 3, 6}, HunkStarts: []int{1, 4, 7}}
}

func TestToggleSingleFileRoundTrip(t *testing.T) {
	doc := buildTwoFileDoc()
	s := NewPagerState(doc)
	s.CursorLine = 1
	files := []diffmodel.DiffFile{{NewPath: "a.go", HasNew: true}, {NewPath: "b.go", HasNew: true}}
	ctx := Context{ContentHeight: 20, Files: files}

	s, eff := Reduce(s, Event{Key: Key{Code: KeyRune, Rune: 'f'}}, ctx)
	require.Equal(t, ReRender, eff.Kind)
	fileIdx, ok := s.ViewScope.IsSingleFile()
	require.True(t, ok, "expected SingleFile view scope")
	assert.Equal(t, 0, fileIdx)
	assert.NotEmpty(t, s.TreeEntries, "expected tree entries to be built")

	s, _ = Reduce(s, Event{Key: Key{Code: KeyRune, Rune: 'f'}}, ctx)
	_, ok = s.ViewScope.IsSingleFile()
	assert.False(t, ok, "expected toggling off to restore AllFiles")
}

// TestNextPrevFileInSingleFileScope covers spec.md §4.5.1 ("single-file navigation jumps by whole files"):
// next/prev-file while already viewing a single file must switch view_scope to the adjacent file, not just
// move the cursor (which enforceInvariants would clamp straight back into the current file's range).
func TestNextPrevFileInSingleFileScope(t *testing.T) {
	doc := buildThreeFileDoc()
	s := NewPagerState(doc)
	s.ViewScope = SingleFile(0)
	s.CursorLine = 1
	ctx := Context{ContentHeight: 20}

	s, eff := Reduce(s, Event{Key: Key{Code: KeyRune, Rune: ']'}}, ctx)
	require.Equal(t, ReRender, eff.Kind)
	fileIdx, ok := s.ViewScope.IsSingleFile()
	require.True(t, ok)
	assert.Equal(t, 1, fileIdx, "next-file should switch to the adjacent file")
	start, end := fileRange(s.Doc, 1)
	assert.True(t, s.CursorLine >= start && s.CursorLine < end, "cursor should land inside the new file's range")

	s, eff = Reduce(s, Event{Key: Key{Code: KeyRune, Rune: ']'}}, ctx)
	require.Equal(t, ReRender, eff.Kind)
	fileIdx, ok = s.ViewScope.IsSingleFile()
	require.True(t, ok)
	assert.Equal(t, 2, fileIdx)

	s, _ = Reduce(s, Event{Key: Key{Code: KeyRune, Rune: ']'}}, ctx)
	fileIdx, ok = s.ViewScope.IsSingleFile()
	require.True(t, ok)
	assert.Equal(t, 2, fileIdx, "next-file past the last file should be a no-op")

	s, eff = Reduce(s, Event{Key: Key{Code: KeyRune, Rune: '['}}, ctx)
	require.Equal(t, ReRender, eff.Kind)
	fileIdx, ok = s.ViewScope.IsSingleFile()
	require.True(t, ok)
	assert.Equal(t, 1, fileIdx, "prev-file should switch back to the previous file")
}

func TestSearchCyclingInSingleFileScope(t *testing.T) {
	lineMap := make([]render.LineInfo, 70)
	for i := range lineMap {
		fileIdx := 0
		if i >= 30 {
			fileIdx = 1
		}
		lineMap[i] = contentLine(fileIdx)
	}
	lines := make([]string, len(lineMap))
	doc := render.RenderOutput{Lines: lines, LineMap: lineMap, FileStarts: []int{0, 30}, HunkStarts: []int{0, 30}}

	s := NewPagerState(doc)
	s.ViewScope = SingleFile(0)
	s.SearchMatches = []int{6, 36, 66}
	s.CurrentMatch = -1

	s.jumpMatch(true)
	assert.Equal(t, 6, s.CursorLine, "first next-match should land on line 6")

	s.jumpMatch(true)
	assert.Equal(t, 6, s.CursorLine, "next-match should wrap within scope to 6")

	s.jumpMatch(false)
	assert.Equal(t, 6, s.CursorLine, "prev-match should wrap to the single in-scope match 6")
}

func TestInvariantsHoldAfterReduce(t *testing.T) {
	doc := buildTwoFileDoc()
	s := NewPagerState(doc)
	ctx := Context{ContentHeight: 3}

	s, _ = Reduce(s, Event{Key: Key{Code: KeyDown}}, ctx)
	start, end := s.VisibleRange()
	assert.True(t, s.CursorLine >= start && s.CursorLine < end, "cursor_line %d out of visible range [%d, %d)", s.CursorLine, start, end)
	assert.GreaterOrEqual(t, s.TopLine, start, "top_line below visible start")
}
