// Package filetree builds the collapsible directory/file tree shown alongside the diff viewport.
package filetree

import (
	"sort"
	"strings"

	"github.com/arifd/gd/internal/diffmodel"
)

// Entry is one row of the tree: a directory or a file.
type Entry struct {
	Label      string
	Depth      int
	FileIndex  int // -1 for directories
	HasFile    bool
	Status     diffmodel.FileStatus
	HasStatus  bool
	Collapsed  bool
	isDir      bool
	pathPrefix string // full directory path, used only during the build/collapse passes
}

// Build constructs the initial (uncollapsed) entry list from files, sorted lexicographically by display path.
func Build(files []diffmodel.DiffFile) []Entry {
	type pathed struct {
		path string
		idx  int
	}
	paths := make([]pathed, len(files))
	for i, f := range files {
		paths[i] = pathed{path: f.DisplayPath(), idx: i}
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].path < paths[j].path })

	var entries []Entry
	var prevParts []string

	for _, p := range paths {
		parts := strings.Split(p.path, "/")
		dirParts := parts[:len(parts)-1]

		commonLen := 0
		for commonLen < len(dirParts) && commonLen < len(prevParts) && dirParts[commonLen] == prevParts[commonLen] {
			commonLen++
		}

		for depth := commonLen; depth < len(dirParts); depth++ {
			entries = append(entries, Entry{
				Label:      dirParts[depth],
				Depth:      depth,
				FileIndex:  -1,
				isDir:      true,
				pathPrefix: strings.Join(dirParts[:depth+1], "/"),
			})
		}

		entries = append(entries, Entry{
			Label:     parts[len(parts)-1],
			Depth:     len(dirParts),
			FileIndex: p.idx,
			HasFile:   true,
			Status:    files[p.idx].Status,
			HasStatus: true,
		})

		prevParts = dirParts
	}

	return collapseSingleChildDirs(entries)
}

// collapseSingleChildDirs merges any directory entry that has exactly one child directory and no file siblings
// at that level into a single "parent/child" labeled entry, adjusting descendants' depths.
func collapseSingleChildDirs(entries []Entry) []Entry {
	changed := true
	for changed {
		changed = false
		var out []Entry
		i := 0
		for i < len(entries) {
			e := entries[i]
			if !e.isDir {
				out = append(out, e)
				i++
				continue
			}

			childrenStart := i + 1
			childrenEnd := childrenStart
			for childrenEnd < len(entries) && entries[childrenEnd].Depth > e.Depth {
				childrenEnd++
			}
			children := entries[childrenStart:childrenEnd]

			dirChildCount, fileChildCount := 0, 0
			for _, c := range children {
				if c.Depth == e.Depth+1 {
					if c.isDir {
						dirChildCount++
					} else {
						fileChildCount++
					}
				}
			}

			if dirChildCount == 1 && fileChildCount == 0 {
				var onlyChild Entry
				onlyChildIdx := -1
				for idx, c := range children {
					if c.Depth == e.Depth+1 && c.isDir {
						onlyChild = c
						onlyChildIdx = childrenStart + idx
						break
					}
				}

				merged := e
				merged.Label = e.Label + "/" + onlyChild.Label
				merged.pathPrefix = onlyChild.pathPrefix
				out = append(out, merged)

				for _, c := range entries[onlyChildIdx+1 : childrenEnd] {
					c.Depth--
					out = append(out, c)
				}

				i = childrenEnd
				changed = true
				continue
			}

			out = append(out, e)
			i++
		}
		entries = out
	}
	return entries
}

// VisibleToEntry maps a visible-line index (after applying collapse) to its index in entries.
func VisibleToEntry(entries []Entry) []int {
	var visible []int
	skipBelowDepth := -1
	for i, e := range entries {
		if skipBelowDepth >= 0 {
			if e.Depth > skipBelowDepth {
				continue
			}
			skipBelowDepth = -1
		}
		visible = append(visible, i)
		if e.isDir && e.Collapsed {
			skipBelowDepth = e.Depth
		}
	}
	return visible
}

// ConnectorPrefix computes the box-drawing prefix for entries[i], given the full (uncollapsed-visibility-
// irrelevant) entry list: a vertical bar per ancestor depth that still has a subsequent visible entry at or
// below that depth, then a branch glyph depending on whether a sibling at this entry's own depth follows.
func ConnectorPrefix(entries []Entry, visible []int, pos int) string {
	idx := visible[pos]
	e := entries[idx]
	if e.Depth == 0 {
		return ""
	}

	var b strings.Builder
	for depth := 0; depth < e.Depth; depth++ {
		if hasSubsequentAtOrAbove(entries, visible, pos, depth) {
			b.WriteString("│   ")
		} else {
			b.WriteString("    ")
		}
	}

	if hasSiblingAfter(entries, visible, pos, e.Depth) {
		b.WriteString("├── ")
	} else {
		b.WriteString("└── ")
	}

	return b.String()
}

func hasSubsequentAtOrAbove(entries []Entry, visible []int, pos, depth int) bool {
	for _, idx := range visible[pos+1:] {
		if entries[idx].Depth <= depth {
			return entries[idx].Depth == depth
		}
	}
	return false
}

func hasSiblingAfter(entries []Entry, visible []int, pos, depth int) bool {
	for _, idx := range visible[pos+1:] {
		if entries[idx].Depth < depth {
			return false
		}
		if entries[idx].Depth == depth {
			return true
		}
	}
	return false
}

// SyncCursor selects the visible entry matching fileIdx, walking up to the nearest visible ancestor if that
// entry sits inside a collapsed subtree.
func SyncCursor(entries []Entry, visible []int, fileIdx int) int {
	target := -1
	for i, e := range entries {
		if e.HasFile && e.FileIndex == fileIdx {
			target = i
			break
		}
	}
	if target < 0 {
		return 0
	}

	for pos, idx := range visible {
		if idx == target {
			return pos
		}
	}

	// target is hidden inside a collapsed ancestor; walk backward through entries to find it.
	best := 0
	for pos, idx := range visible {
		if idx <= target {
			best = pos
		}
	}
	return best
}

// Width returns the max natural row width among entries (label + the (depth+1)*4-column connector prefix that
// ConnectorPrefix emits for depth > 0, none at depth 0 + room for a status glyph), clamped to 40.
func Width(entries []Entry) int {
	max := 0
	for _, e := range entries {
		prefix := 0
		if e.Depth > 0 {
			prefix = (e.Depth + 1) * 4
		}
		w := prefix + len(e.Label) + 2
		if w > max {
			max = w
		}
	}
	if max > 40 {
		max = 40
	}
	return max
}
