// Package diffmodel holds the structured representation of a parsed unified diff: files, hunks, and lines.
package diffmodel

// FileStatus classifies how a file changed.
type FileStatus int

const (
	Modified FileStatus = iota
	Added
	Deleted
	Renamed
	Untracked
)

func (s FileStatus) String() string {
	switch s {
	case Modified:
		return "Modified"
	case Added:
		return "Added"
	case Deleted:
		return "Deleted"
	case Renamed:
		return "Renamed"
	case Untracked:
		return "Untracked"
	default:
		return "Unknown"
	}
}

// LineKind classifies a DiffLine.
type LineKind int

const (
	Context LineKind = iota
	LineAdded
	LineDeleted
)

// DiffLine is one line inside a hunk body.
type DiffLine struct {
	Kind    LineKind
	Content string

	// OldLineNo is present for Context and Deleted lines.
	OldLineNo int
	HasOld    bool

	// NewLineNo is present for Context and Added lines.
	NewLineNo int
	HasNew    bool
}

// DiffHunk is a contiguous range of changes within a file.
type DiffHunk struct {
	OldStart int
	NewStart int
	Lines    []DiffLine
}

// DiffFile is one changed file: an ordered sequence of hunks plus path/status metadata.
type DiffFile struct {
	OldPath string
	HasOld  bool
	NewPath string
	HasNew  bool
	Status  FileStatus
	Hunks   []DiffHunk
}

// DisplayPath is the path used for rendering: the new path if present, else the old path.
func (f DiffFile) DisplayPath() string {
	if f.HasNew {
		return f.NewPath
	}
	return f.OldPath
}

// DeriveStatus computes the status implied by the old/new path pair, for parsed (non-synthesized) files.
func DeriveStatus(hasOld bool, oldPath string, hasNew bool, newPath string) FileStatus {
	switch {
	case !hasOld && hasNew:
		return Added
	case hasOld && !hasNew:
		return Deleted
	case hasOld && hasNew && oldPath != newPath:
		return Renamed
	default:
		return Modified
	}
}

// ChangeGroup is a maximal run of Added/Deleted display lines in document order, the full-context navigation unit.
type ChangeGroup struct {
	StartLine int
	EndLine   int // exclusive
}
