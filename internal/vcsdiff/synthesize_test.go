package vcsdiff

import (
	"testing"

	"github.com/arifd/gd/internal/diffmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeUntrackedBasic(t *testing.T) {
	f := SynthesizeUntracked("foo.txt", []byte("one\ntwo\nthree\n"))
	assert.Equal(t, diffmodel.Untracked, f.Status)
	assert.True(t, f.HasNew)
	assert.Equal(t, "foo.txt", f.NewPath)

	require.Len(t, f.Hunks, 1)
	require.Len(t, f.Hunks[0].Lines, 3)
	for i, line := range f.Hunks[0].Lines {
		assert.Equal(t, diffmodel.LineAdded, line.Kind, "line %d", i)
		assert.True(t, line.HasNew, "line %d", i)
		assert.Equal(t, i+1, line.NewLineNo, "line %d", i)
	}
	assert.Equal(t, "one", f.Hunks[0].Lines[0].Content)
	assert.Equal(t, "three", f.Hunks[0].Lines[2].Content)
}

func TestSynthesizeUntrackedNoTrailingNewline(t *testing.T) {
	f := SynthesizeUntracked("bar.txt", []byte("only line"))
	require.Len(t, f.Hunks[0].Lines, 1)
	assert.Equal(t, "only line", f.Hunks[0].Lines[0].Content)
}

func TestSynthesizeUntrackedEmpty(t *testing.T) {
	f := SynthesizeUntracked("empty.txt", nil)
	assert.Empty(t, f.Hunks[0].Lines)
}
