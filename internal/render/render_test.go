package render

import (
	"strings"
	"testing"

	"github.com/arifd/gd/internal/ansi"
	"github.com/arifd/gd/internal/diffmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSimpleModificationNoColor(t *testing.T) {
	raw := `diff --git a/foo.rs b/foo.rs
--- a/foo.rs
+++ b/foo.rs
@@ -1,3 +1,4 @@
 line1
+added
 line2
 line3
`
	files := diffmodel.ParseUnifiedDiff(raw)
	out := Render(files, Options{Width: 80, Color: false})

	require.Len(t, out.Lines, 5, "expected header + four body lines")
	require.Len(t, out.LineMap, len(out.Lines), "lines/line_map length mismatch")
	require.Equal(t, []int{1}, out.HunkStarts)

	added := out.LineMap[2]
	assert.Equal(t, KindAdded, added.Kind)
	assert.True(t, added.HasNewLine)
	assert.Equal(t, 2, added.NewLineNo)
	assert.False(t, added.HasOldLine, "added line should have no old_lineno")
}

func TestRenderWrappingPreservesBackground(t *testing.T) {
	raw := `diff --git a/foo.txt b/foo.txt
--- a/foo.txt
+++ b/foo.txt
@@ -1,0 +1,1 @@
+` + strings.Repeat("x", 100) + `
`
	files := diffmodel.ParseUnifiedDiff(raw)
	out := Render(files, Options{Width: 40, Color: true})

	contentRows := 0
	for i, li := range out.LineMap {
		if li.Kind != KindAdded {
			continue
		}
		contentRows++
		line := out.Lines[i]
		assert.Contains(t, line, "\x1b[", "row %d should carry ANSI codes", i)
		assert.True(t, strings.HasSuffix(line, ansi.ANSIReset), "row %d should end with a full reset: %q", i, line)
	}
	assert.GreaterOrEqual(t, contentRows, 3, "expected at least 3 wrapped rows")
}

func TestRenderEmptyInput(t *testing.T) {
	out := Render(nil, Options{Width: 80})
	assert.Empty(t, out.Lines)
	assert.Empty(t, out.LineMap)
}

// TestHighlightLinePosMapByteOffsets guards against a regression where posMap was indexed by rune count
// instead of raw byte offset: worddiff.Range.Start/End are byte offsets into the original line content, so
// a multi-byte UTF-8 rune earlier in the line must not shift where a later range's marker lands.
func TestHighlightLinePosMapByteOffsets(t *testing.T) {
	content := "é return 1" // 'é' is 2 bytes; "return" starts at raw byte offset 3, rune index 2.
	returnByteOffset := strings.Index(content, "return")
	require.Equal(t, 3, returnByteOffset)

	lexer := lexerFor("x.go")
	highlighted, posMap := highlightLine(content, lexer, nil)
	require.Len(t, posMap, len(content)+1)

	outByte := byteForContentOffset(posMap, returnByteOffset)
	require.LessOrEqual(t, outByte, len(highlighted))
	stripped := ansi.StripANSI(highlighted[outByte:])
	assert.True(t, strings.HasPrefix(stripped, "return"), "expected colored-byte position for offset %d to land on \"return\", got %q", returnByteOffset, stripped)
}
