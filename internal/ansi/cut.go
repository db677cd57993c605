package ansi

import (
	"strings"

	"github.com/arifd/gd/internal/uni"
)

// Cut removes left columns from the start and right columns from the end of s, preserving ANSI styling and grapheme-cluster boundaries. The
// returned string is self-contained: it re-establishes any SGR state active at the cut point and, if a style was open at the original end, appends
// a reset.
func Cut(s string, left, right int) string {
	if left <= 0 && right <= 0 {
		return s
	}
	if s == "" {
		return ""
	}

	total := TextWidthWithANSICodes(s)
	keepStart := left
	keepEnd := total - right
	if keepEnd <= keepStart {
		return ""
	}

	var b strings.Builder
	active := defaultState()
	col := 0
	wroteAny := false
	prefixWritten := false

	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			seqLen := ansiSequenceLength(s[i:])
			if seqLen == 0 {
				seqLen = 1
			}
			seq := s[i : i+seqLen]
			if col >= keepStart && col < keepEnd {
				b.WriteString(seq)
			}
			if seqLen > 1 && s[i+1] == '[' && seq[len(seq)-1] == 'm' {
				if params, ok := parseSGRParameters(seq[2 : len(seq)-1]); ok {
					active, _ = applyParams(active, params)
				}
			}
			i += seqLen
			continue
		}

		nextEsc := strings.IndexByte(s[i:], '\x1b')
		segmentEnd := len(s)
		if nextEsc >= 0 {
			segmentEnd = i + nextEsc
		}
		segment := s[i:segmentEnd]
		i = segmentEnd

		iter := uni.NewGraphemeIterator(segment, nil)
		for iter.Next() {
			grapheme := segment[iter.Start():iter.End()]
			gw := iter.TextWidth()

			if col >= keepStart && col < keepEnd {
				if !prefixWritten {
					b.WriteString(buildStateTransition(active))
					prefixWritten = true
				}
				b.WriteString(grapheme)
				wroteAny = true
			}

			col += gw
		}
	}

	if wroteAny && !active.isDefault() {
		b.WriteString(ANSIReset)
	}

	return b.String()
}
