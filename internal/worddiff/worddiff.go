// Package worddiff computes token-level highlight ranges between the deleted and added sides of a diff change
// block. It tokenizes each side, runs a token-level diff with github.com/sergi/go-diff/diffmatchpatch
// (encode tokens as runes, diff the rune sequences, decode back), and produces per-line byte ranges.
package worddiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Range is a half-open byte range [Start, End) within a single line's Content.
type Range struct {
	Start, End int
}

// LineRanges computes the highlight ranges for each line of both sides (deleted and added), given the full
// ordered set of lines on each side of a change block.
//
// Grouping adjacent deleted/added lines into a change block and picking its two sides is the caller's
// responsibility; this function operates on one already-identified block.
func LineRanges(deletedLines, addedLines []string) (deletedRanges, addedRanges [][]Range) {
	deletedRanges = make([][]Range, len(deletedLines))
	addedRanges = make([][]Range, len(addedLines))

	delTokens := tokenizeLines(deletedLines)
	addTokens := tokenizeLines(addedLines)

	delText := joinTokenText(delTokens)
	addText := joinTokenText(addTokens)

	dmp := diffmatchpatch.New()
	rOld, rNew, tokenArray := dmp.DiffLinesToRunes(delText, addText)
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	delCursor := 0
	addCursor := 0

	advance := func(ranges [][]Range, tokens []token, cursor, length int) {
		remaining := length
		for remaining > 0 && cursor < len(tokens) {
			tok := tokens[cursor]
			tokLen := len(tok.text)
			if tokLen > 0 {
				appendRange(ranges, tok.lineIdx, tok.byteStart, tok.byteStart+tokLen)
			}
			remaining--
			cursor++
		}
	}

	for _, d := range diffs {
		runes := []rune(d.Text)
		count := 0
		for _, r := range runes {
			if int(r) < len(tokenArray) {
				count++
			}
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			delCursor += count
			addCursor += count
		case diffmatchpatch.DiffDelete:
			advance(deletedRanges, delTokens, delCursor, count)
			delCursor += count
		case diffmatchpatch.DiffInsert:
			advance(addedRanges, addTokens, addCursor, count)
			addCursor += count
		}
	}

	for i := range deletedRanges {
		deletedRanges[i] = mergeRanges(deletedRanges[i])
	}
	for i := range addedRanges {
		addedRanges[i] = mergeRanges(addedRanges[i])
	}

	return deletedRanges, addedRanges
}

type token struct {
	text      string
	lineIdx   int
	byteStart int
}

// tokenizeLines splits each line into tokens: a maximal run of alphanumeric/underscore, or a maximal run of
// whitespace, or a single punctuation code point.
func tokenizeLines(lines []string) []token {
	var tokens []token
	for lineIdx, line := range lines {
		start := 0
		for start < len(line) {
			end := tokenEnd(line, start)
			tokens = append(tokens, token{text: line[start:end], lineIdx: lineIdx, byteStart: start})
			start = end
		}
	}
	return tokens
}

func tokenEnd(s string, start int) int {
	isWord := func(b byte) bool {
		return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
	}
	isSpace := func(b byte) bool {
		return b == ' ' || b == '\t'
	}

	c := s[start]
	switch {
	case isWord(c):
		i := start + 1
		for i < len(s) && isWord(s[i]) {
			i++
		}
		return i
	case isSpace(c):
		i := start + 1
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		return i
	default:
		// A single (possibly multi-byte) UTF-8 code point of punctuation/other.
		i := start + 1
		for i < len(s) && (s[i]&0xC0) == 0x80 {
			i++
		}
		return i
	}
}

func joinTokenText(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.text)
		b.WriteByte('\n')
	}
	return b.String()
}

func appendRange(ranges [][]Range, lineIdx, start, end int) {
	if lineIdx < 0 || lineIdx >= len(ranges) {
		return
	}
	ranges[lineIdx] = append(ranges[lineIdx], Range{Start: start, End: end})
}

// mergeRanges sorts and merges overlapping/contiguous ranges.
func mergeRanges(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	for i := 1; i < len(ranges); i++ {
		for j := i; j > 0 && ranges[j-1].Start > ranges[j].Start; j-- {
			ranges[j-1], ranges[j] = ranges[j], ranges[j-1]
		}
	}

	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
