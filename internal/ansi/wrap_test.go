package ansi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every row produced by WrapLineToWidth must have a visible width <= the requested width.
func TestWrapLineToWidthRespectsWidthInvariant(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		width int
	}{
		{"plain ascii", strings.Repeat("x", 137), 40},
		{"already fits", "short line", 40},
		{"colored", Style{Foreground: RGB{R: 200, G: 30, B: 30}}.Wrap(strings.Repeat("y", 97)), 25},
		{"wide runes", strings.Repeat("中文", 30), 20},
		{"single huge grapheme budget", strings.Repeat("a", 3), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := WrapLineToWidth(tc.line, tc.width)
			for i, row := range rows {
				assert.LessOrEqual(t, TextWidthWithANSICodes(row), tc.width, "row %d exceeds budget: %q", i, row)
			}
		})
	}
}

// A single added line of 100 'x' characters wrapped at width 40 with color enabled produces >= 3 rows, each
// self-contained: starting with the active background and ending in a full reset (or staying plain when no
// style carries into the row).
func TestWrapLineToWidthPreservesBackgroundAcrossRows(t *testing.T) {
	bg := RGB{R: 40, G: 60, B: 40}
	styled := Style{Background: bg}.Wrap(strings.Repeat("x", 100))

	rows := WrapLineToWidth(styled, 40)
	require.GreaterOrEqual(t, len(rows), 3)

	bgSGR := Style{Background: bg}.SGR()
	for i, row := range rows {
		if i > 0 {
			assert.True(t, strings.HasPrefix(row, bgSGR), "row %d does not re-establish background: %q", i, row)
		}
		assert.True(t, strings.HasSuffix(row, ANSIReset), "row %d does not end in a full reset: %q", i, row)
	}
}

func TestWrapToWidthHandlesMultilineInput(t *testing.T) {
	input := strings.Repeat("a", 50) + "\n" + strings.Repeat("b", 10)
	out := WrapToWidth(input, 20)
	for i, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, TextWidthWithANSICodes(line), 20, "line %d exceeds width 20: %q", i, line)
	}
}
