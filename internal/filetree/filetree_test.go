package filetree

import (
	"testing"

	"github.com/arifd/gd/internal/diffmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkFile(path string) diffmodel.DiffFile {
	return diffmodel.DiffFile{NewPath: path, HasNew: true, OldPath: path, HasOld: true, Status: diffmodel.Modified}
}

func TestBuildSortsAndNestsPaths(t *testing.T) {
	files := []diffmodel.DiffFile{
		mkFile("b/x.go"),
		mkFile("a.go"),
		mkFile("b/y.go"),
	}
	entries := Build(files)

	var labels []string
	for _, e := range entries {
		labels = append(labels, e.Label)
	}
	assert.Len(t, labels, 4, "expected a.go, b, x.go, y.go, got %v", labels)
}

func TestCollapseSingleChildDirectory(t *testing.T) {
	files := []diffmodel.DiffFile{
		mkFile("a/b/c.go"),
	}
	entries := Build(files)
	require.Len(t, entries, 2, "expected a/b collapsed to one dir entry plus file")
	assert.Equal(t, "a/b", entries[0].Label)
	assert.Equal(t, 1, entries[1].Depth, "expected file depth adjusted to 1")
}

func TestCollapseExpandRoundTrip(t *testing.T) {
	files := []diffmodel.DiffFile{
		mkFile("dir/a.go"),
		mkFile("dir/b.go"),
	}
	entries := Build(files)
	visibleBefore := VisibleToEntry(entries)

	for i := range entries {
		if entries[i].isDir {
			entries[i].Collapsed = true
		}
	}
	visibleCollapsed := VisibleToEntry(entries)
	assert.Len(t, visibleCollapsed, 1, "expected only the directory entry visible when collapsed")

	for i := range entries {
		if entries[i].isDir {
			entries[i].Collapsed = false
		}
	}
	visibleAfter := VisibleToEntry(entries)
	assert.Equal(t, len(visibleBefore), len(visibleAfter), "expected expand to restore the same visible set")
}

func TestSyncCursorFindsFile(t *testing.T) {
	files := []diffmodel.DiffFile{
		mkFile("dir/a.go"),
		mkFile("dir/b.go"),
	}
	entries := Build(files)
	visible := VisibleToEntry(entries)

	pos := SyncCursor(entries, visible, 1)
	idx := visible[pos]
	assert.True(t, entries[idx].HasFile)
	assert.Equal(t, 1, entries[idx].FileIndex)
}
