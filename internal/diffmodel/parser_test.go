package diffmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnifiedDiffSimpleModification(t *testing.T) {
	raw := `diff --git a/foo.rs b/foo.rs
index 1111111..2222222 100644
--- a/foo.rs
+++ b/foo.rs
@@ -1,3 +1,4 @@
 line1
+added
 line2
 line3
`
	files := ParseUnifiedDiff(raw)
	require.Len(t, files, 1)
	f := files[0]
	assert.Equal(t, "foo.rs", f.DisplayPath())
	require.Len(t, f.Hunks, 1)

	h := f.Hunks[0]
	require.Len(t, h.Lines, 4)

	added := h.Lines[1]
	assert.Equal(t, LineAdded, added.Kind)
	assert.True(t, added.HasNew)
	assert.Equal(t, 2, added.NewLineNo)
	assert.False(t, added.HasOld, "added line should have no old_lineno")
}

func TestParseUnifiedDiffSkipsBinary(t *testing.T) {
	raw := `diff --git a/img.png b/img.png
index 1111111..2222222 100644
Binary files a/img.png and b/img.png differ
`
	files := ParseUnifiedDiff(raw)
	assert.Empty(t, files, "expected binary diff to be skipped")
}

func TestParseUnifiedDiffMalformedHunkSkipped(t *testing.T) {
	raw := `diff --git a/foo.rs b/foo.rs
--- a/foo.rs
+++ b/foo.rs
@@ garbage @@
 line1
@@ -1,1 +1,1 @@
 line1
`
	files := ParseUnifiedDiff(raw)
	require.Len(t, files, 1)
	assert.Len(t, files[0].Hunks, 1, "expected only the well-formed hunk to survive")
}

func TestParseUnifiedDiffEmpty(t *testing.T) {
	assert.Nil(t, ParseUnifiedDiff(""))
}

func TestParseUnifiedDiffAddedFile(t *testing.T) {
	raw := `diff --git a/new.txt b/new.txt
new file mode 100644
index 0000000..abcdef1
--- /dev/null
+++ b/new.txt
@@ -0,0 +1,2 @@
+hello
+world
`
	files := ParseUnifiedDiff(raw)
	require.Len(t, files, 1)
	assert.Equal(t, Added, files[0].Status)
}
