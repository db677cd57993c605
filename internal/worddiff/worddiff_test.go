package worddiff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One deleted line and one added line differing only by an appended field. The deleted side must carry no
// highlight ranges; the added side must carry exactly one range covering the literal inserted text.
func TestLineRangesPunctuationScenario(t *testing.T) {
	deleted := `  "--app": { type: AppArg, alias: ["-a", "--application"] },`
	added := `  "--app": { type: AppArg, alias: ["-a", "--application"], description: "Select the application" },`

	deletedRanges, addedRanges := LineRanges([]string{deleted}, []string{added})

	require.Len(t, deletedRanges, 1)
	assert.Empty(t, deletedRanges[0], "expected no deleted-side highlights")
	require.Len(t, addedRanges, 1)
	require.Len(t, addedRanges[0], 1, "expected exactly one added-side range")

	inserted := `, description: "Select the application"`
	wantStart := strings.Index(added, inserted)
	require.GreaterOrEqual(t, wantStart, 0, "test fixture is wrong: inserted text not found in added line")
	wantEnd := wantStart + len(inserted)

	got := addedRanges[0][0]
	assert.Equal(t, Range{Start: wantStart, End: wantEnd}, got)
}

// Pure deletion (no added side) must not panic and must produce no added-side output.
func TestLineRangesDeleteOnly(t *testing.T) {
	deletedRanges, addedRanges := LineRanges([]string{"removed entirely"}, nil)
	assert.Empty(t, addedRanges, "expected no added lines")
	assert.Len(t, deletedRanges, 1)
}

// Identical lines on both sides produce no highlight ranges on either side.
func TestLineRangesIdentical(t *testing.T) {
	line := "func main() {}"
	deletedRanges, addedRanges := LineRanges([]string{line}, []string{line})
	require.Len(t, deletedRanges, 1)
	require.Len(t, addedRanges, 1)
	assert.Empty(t, deletedRanges[0])
	assert.Empty(t, addedRanges[0])
}

// A trailing punctuation change (adding a semicolon) must not mark the entire preceding word as changed —
// the tokenizer's single-punctuation-code-point rule keeps the highlight scoped to the inserted character.
func TestLineRangesTrailingPunctuationIsolated(t *testing.T) {
	deleted := "return value"
	added := "return value;"

	_, addedRanges := LineRanges([]string{deleted}, []string{added})
	require.Len(t, addedRanges[0], 1)
	r := addedRanges[0][0]
	assert.Equal(t, ";", added[r.Start:r.End], "expected highlight to cover only ';'")
}
