package diffmodel

import "strings"

// ParseUnifiedDiff parses raw unified-diff text (as produced by `git diff`) into an ordered sequence of DiffFile.
// Per the file format contract: text is split on "diff --git" boundaries; binary diffs ("Binary files ...") are
// skipped entirely; "---"/"+++" paths have their "a/"/"b/" prefix (or "/dev/null") stripped; malformed hunk
// headers cause that hunk to be skipped, not the whole file. An empty input produces an empty list.
func ParseUnifiedDiff(raw string) []DiffFile {
	if raw == "" {
		return nil
	}

	chunks := splitFileChunks(raw)
	files := make([]DiffFile, 0, len(chunks))
	for _, chunk := range chunks {
		if f, ok := parseFileChunk(chunk); ok {
			files = append(files, f)
		}
	}
	return files
}

func splitFileChunks(raw string) []string {
	lines := strings.Split(raw, "\n")
	var chunks []string
	var cur []string

	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, strings.Join(cur, "\n"))
			cur = nil
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "diff --git ") {
			flush()
		}
		cur = append(cur, line)
	}
	flush()

	return chunks
}

func parseFileChunk(chunk string) (DiffFile, bool) {
	lines := strings.Split(chunk, "\n")
	if len(lines) == 0 {
		return DiffFile{}, false
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "Binary files ") && strings.HasSuffix(line, " differ") {
			return DiffFile{}, false
		}
	}

	var f DiffFile
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, "--- "):
			f.OldPath, f.HasOld = stripDiffPrefix(strings.TrimPrefix(line, "--- "))
		case strings.HasPrefix(line, "+++ "):
			f.NewPath, f.HasNew = stripDiffPrefix(strings.TrimPrefix(line, "+++ "))
		case strings.HasPrefix(line, "@@ "):
			goto hunks
		}
	}

hunks:
	for i < len(lines) {
		line := lines[i]
		if !strings.HasPrefix(line, "@@ ") {
			i++
			continue
		}

		hunk, consumed, ok := parseHunk(lines[i:])
		i += consumed
		if !ok {
			continue
		}
		f.Hunks = append(f.Hunks, hunk)
	}

	if !f.HasOld && !f.HasNew {
		return DiffFile{}, false
	}

	f.Status = DeriveStatus(f.HasOld, f.OldPath, f.HasNew, f.NewPath)
	return f, true
}

func stripDiffPrefix(path string) (string, bool) {
	// A trailing "\t<tab-terminated metadata>" can follow the path; drop it.
	if idx := strings.IndexByte(path, '\t'); idx >= 0 {
		path = path[:idx]
	}
	if path == "/dev/null" {
		return "", false
	}
	if strings.HasPrefix(path, "a/") || strings.HasPrefix(path, "b/") {
		path = path[2:]
	}
	return path, true
}

// parseHunk parses one "@@ -o[,c] +n[,c] @@" header plus its body, starting at lines[0]. It returns the number of
// lines consumed (header + body), including a trailing malformed header that could not be parsed (consumed=1).
func parseHunk(lines []string) (DiffHunk, int, bool) {
	oldStart, newStart, ok := parseHunkHeader(lines[0])
	if !ok {
		return DiffHunk{}, 1, false
	}

	hunk := DiffHunk{OldStart: oldStart, NewStart: newStart}
	oldLine, newLine := oldStart, newStart

	i := 1
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, "@@ ") || strings.HasPrefix(line, "diff --git ") {
			break
		}
		if line == `\ No newline at end of file` {
			continue
		}
		if line == "" && i == len(lines)-1 {
			break
		}

		var dl DiffLine
		switch {
		case strings.HasPrefix(line, "+"):
			dl = DiffLine{Kind: LineAdded, Content: line[1:], NewLineNo: newLine, HasNew: true}
			newLine++
		case strings.HasPrefix(line, "-"):
			dl = DiffLine{Kind: LineDeleted, Content: line[1:], OldLineNo: oldLine, HasOld: true}
			oldLine++
		case strings.HasPrefix(line, " "):
			dl = DiffLine{Kind: Context, Content: line[1:], OldLineNo: oldLine, HasOld: true, NewLineNo: newLine, HasNew: true}
			oldLine++
			newLine++
		default:
			dl = DiffLine{Kind: Context, Content: line, OldLineNo: oldLine, HasOld: true, NewLineNo: newLine, HasNew: true}
			oldLine++
			newLine++
		}
		hunk.Lines = append(hunk.Lines, dl)
	}

	return hunk, i, true
}

// parseHunkHeader parses "@@ -o[,c] +n[,c] @@[ context]" and returns the old/new start line numbers.
func parseHunkHeader(header string) (oldStart, newStart int, ok bool) {
	rest := strings.TrimPrefix(header, "@@ ")
	end := strings.Index(rest, " @@")
	if end < 0 {
		return 0, 0, false
	}
	rangesPart := rest[:end]
	fields := strings.Fields(rangesPart)
	if len(fields) != 2 {
		return 0, 0, false
	}

	oldStart, ok1 := parseRangeStart(fields[0], '-')
	newStart, ok2 := parseRangeStart(fields[1], '+')
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return oldStart, newStart, true
}

func parseRangeStart(field string, sigil byte) (int, bool) {
	if len(field) == 0 || field[0] != sigil {
		return 0, false
	}
	field = field[1:]
	if idx := strings.IndexByte(field, ','); idx >= 0 {
		field = field[:idx]
	}
	n := 0
	if field == "" {
		return 0, false
	}
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
