package termrender

import (
	"testing"

	"github.com/arifd/gd/internal/ansi"
	"github.com/arifd/gd/internal/pager"
	"github.com/arifd/gd/internal/render"
	"github.com/stretchr/testify/assert"
)

func buildDoc(n int) render.RenderOutput {
	lines := make([]string, n)
	lineMap := make([]render.LineInfo, n)
	for i := range lines {
		lines[i] = "line"
		lineMap[i] = render.LineInfo{Kind: render.KindContext, HasNewLine: true, NewLineNo: i + 1}
	}
	return render.RenderOutput{Lines: lines, LineMap: lineMap, FileStarts: []int{0}, HunkStarts: []int{0}}
}

func TestThumbExtentFitsWithinTrack(t *testing.T) {
	start, length := thumbExtent(50, 10, 100)
	assert.True(t, start >= 0 && start+length <= 10, "thumb out of track bounds: start=%d length=%d", start, length)
}

func TestThumbExtentWhenContentFits(t *testing.T) {
	start, length := thumbExtent(0, 20, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 20, length)
}

func TestContentRowHighlightsCursorLine(t *testing.T) {
	doc := buildDoc(5)
	s := pager.NewPagerState(doc)
	s.CursorLine = 2

	row := contentRow(s, 2, 20)
	assert.Contains(t, row, reverseOn)
	assert.Contains(t, row, reverseOff)

	other := contentRow(s, 0, 20)
	assert.NotContains(t, other, reverseOn, "expected no reverse video on non-cursor line")
}

func TestPadToWidthTruncatesAndPads(t *testing.T) {
	short := padToWidth("hi", 5)
	assert.Equal(t, 5, ansi.TextWidthWithANSICodes(short))

	long := padToWidth("hello world", 5)
	assert.Equal(t, 5, ansi.TextWidthWithANSICodes(long), "expected truncated width 5")
}

func TestStatusBarSingleFileLabel(t *testing.T) {
	doc := buildDoc(5)
	doc.LineMap[0].DisplayPath = "main.go"
	s := pager.NewPagerState(doc)
	s.ViewScope = pager.SingleFile(0)

	bar := StatusBar(s, 80)
	assert.Contains(t, bar, "Single: main.go (file 1/1)")
}

func TestContentHeightReservesStatusAndTooltip(t *testing.T) {
	doc := buildDoc(5)
	s := pager.NewPagerState(doc)
	assert.Equal(t, 23, ContentHeight(s, 24), "expected 23 with no tooltip")

	s.TooltipVisible = true
	assert.Equal(t, 21, ContentHeight(s, 24), "expected 21 with tooltip")
}
