package vcsdiff

import "github.com/arifd/gd/internal/diffmodel"

// SynthesizeUntracked builds a DiffFile for an untracked working-tree file, presenting every line as added
// content under a single hunk starting at line 1 — the shape `internal/diffmodel` expects for any file with
// no old side.
func SynthesizeUntracked(path string, content []byte) diffmodel.DiffFile {
	lines := splitLinesKeepNone(content)

	hunk := diffmodel.DiffHunk{OldStart: 0, NewStart: 1}
	for i, text := range lines {
		hunk.Lines = append(hunk.Lines, diffmodel.DiffLine{
			Kind:      diffmodel.LineAdded,
			Content:   text,
			NewLineNo: i + 1,
			HasNew:    true,
		})
	}

	return diffmodel.DiffFile{
		NewPath: path,
		HasNew:  true,
		Status:  diffmodel.Untracked,
		Hunks:   []diffmodel.DiffHunk{hunk},
	}
}

// splitLinesKeepNone splits content on '\n' without keeping the trailing empty element a final newline would
// otherwise produce, matching how a unified diff enumerates an added file's lines.
func splitLinesKeepNone(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	s := string(content)
	if s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}

	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
