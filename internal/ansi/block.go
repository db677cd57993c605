package ansi

import (
	"strings"

	"github.com/arifd/gd/internal/uni"
)

// BlockWidth calculates TextWidthWithANSICodes for each line in str and returns the max value. In other words, it's the number
// of columns that printing a block of text would occupy.
func BlockWidth(str string) int {
	maxWidth := 0
	lineStart := 0

	calcWidth := func(line string) {
		width := TextWidthWithANSICodes(line)
		if width > maxWidth {
			maxWidth = width
		}
	}

	for i := 0; i < len(str); i++ {
		if str[i] == '\n' {
			calcWidth(str[lineStart:i])
			lineStart = i + 1
		}
	}

	calcWidth(str[lineStart:])

	return maxWidth
}

// BlockHeight is the number of rows in str. Note that if str has a trailing newline, str is considered to have a blank last row (it counts).
func BlockHeight(str string) int {
	if str == "" {
		return 0
	}

	height := 1
	for i := 0; i < len(str); i++ {
		if str[i] == '\n' {
			height++
		}
	}
	return height
}

type BlockNormalizeMode string

const (
	BlockNormalizeModeNaive     BlockNormalizeMode = ""
	BlockNormalizeModeTerminate BlockNormalizeMode = "terminate"
	BlockNormalizeModeExtend    BlockNormalizeMode = "extend"
)

// BlockNormalizeWidth pads all but the longest line with spaces so that all lines are equal width.
//
//   - BlockNormalizeModeNaive just adds spaces to each line with no special logic.
//   - BlockNormalizeModeTerminate ensures an ANSI reset is present on each line before the padding, so added spaces have default styling.
//   - BlockNormalizeModeExtend ensures added spaces inherit the ongoing style of the line (added before any trailing reset).
func BlockNormalizeWidth(str string, mode BlockNormalizeMode) string {
	if str == "" {
		return ""
	}

	input := str
	if mode == BlockNormalizeModeTerminate || mode == BlockNormalizeModeExtend {
		input = BlockStylePerLine(str)
	}

	lines := strings.Split(input, "\n")
	widths := make([]int, len(lines))
	maxWidth := 0
	for i, line := range lines {
		w := TextWidthWithANSICodes(line)
		widths[i] = w
		if w > maxWidth {
			maxWidth = w
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		pad := maxWidth - widths[i]
		if pad <= 0 {
			out[i] = line
			continue
		}
		if mode == BlockNormalizeModeExtend {
			base, resets := splitTrailingResets(line)
			out[i] = base + strings.Repeat(" ", pad) + resets
		} else {
			out[i] = line + strings.Repeat(" ", pad)
		}
	}

	return strings.Join(out, "\n")
}

// BlockStylePerLine ensures str's ANSI styles are applied and reset on a per-line basis, so each line is a self-contained styled unit that can be written
// independently without the rest of the block.
func BlockStylePerLine(str string) string {
	if str == "" {
		return ""
	}

	lines := strings.Split(str, "\n")
	var out strings.Builder
	out.Grow(len(str) + len(lines))

	startState := defaultState()

	for i, line := range lines {
		if i > 0 {
			out.WriteByte('\n')
		}

		if prefix := buildStateTransition(startState); prefix != "" {
			out.WriteString(prefix)
		}

		out.WriteString(line)

		endState := simulateSGRState(startState, line)
		if !endState.isDefault() {
			out.WriteString(ANSIReset)
		}

		startState = endState
	}

	return out.String()
}

func splitTrailingResets(s string) (string, string) {
	const shortReset = "\x1b[m"
	end := len(s)
	for {
		switch {
		case end >= len(ANSIReset) && s[end-len(ANSIReset):end] == ANSIReset:
			end -= len(ANSIReset)
			continue
		case end >= len(shortReset) && s[end-len(shortReset):end] == shortReset:
			end -= len(shortReset)
			continue
		default:
			return s[:end], s[end:]
		}
	}
}

// WrapToWidth hard-breaks every line of str at character boundaries so each row's visible width is <= width, tracking ANSI style state across
// breaks: before a break, styles in effect are reset; after the break, they are re-established, so every row is self-contained.
func WrapToWidth(str string, width int) string {
	if str == "" {
		return ""
	}
	if width <= 0 {
		return str
	}

	lines := strings.Split(str, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		wrapped := WrapLineToWidth(line, width)
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		out = append(out, wrapped...)
	}

	return strings.Join(out, "\n")
}

// WrapLineToWidth hard-breaks a single line (no embedded newlines) at character boundaries to fit width columns, re-emitting the live SGR style state
// at the start of every continuation row and a reset at the end of every row on which a style is still active.
func WrapLineToWidth(line string, width int) []string {
	if line == "" {
		return []string{""}
	}
	if width <= 0 {
		return []string{line}
	}

	var out []string
	var builder strings.Builder
	currentWidth := 0
	active := defaultState()
	rowStartState := active

	flush := func() {
		if !active.isDefault() {
			builder.WriteString(ANSIReset)
		}
		out = append(out, builder.String())
		builder.Reset()
		currentWidth = 0
		rowStartState = active
		if prefix := buildStateTransition(rowStartState); prefix != "" {
			builder.WriteString(prefix)
		}
	}

	for i := 0; i < len(line); {
		if line[i] == '\x1b' {
			seqLen := ansiSequenceLength(line[i:])
			if seqLen == 0 {
				seqLen = 1
			}
			seq := line[i : i+seqLen]
			builder.WriteString(seq)
			if seqLen > 1 && line[i+1] == '[' && seq[len(seq)-1] == 'm' {
				if params, ok := parseSGRParameters(seq[2 : len(seq)-1]); ok {
					active, _ = applyParams(active, params)
				}
			}
			i += seqLen
			continue
		}

		nextEsc := strings.IndexByte(line[i:], '\x1b')
		segmentEnd := len(line)
		if nextEsc >= 0 {
			segmentEnd = i + nextEsc
		}
		segment := line[i:segmentEnd]
		i = segmentEnd

		iter := uni.NewGraphemeIterator(segment, nil)
		for iter.Next() {
			grapheme := segment[iter.Start():iter.End()]
			gw := iter.TextWidth()

			if gw > width {
				if currentWidth > 0 {
					flush()
				}
				builder.WriteString(grapheme)
				flush()
				continue
			}

			if currentWidth+gw > width {
				flush()
			}

			builder.WriteString(grapheme)
			currentWidth += gw

			if currentWidth == width {
				flush()
			}
		}
	}

	tail := builder.String()
	trimmed := tail
	if prefix := buildStateTransition(rowStartState); prefix != "" && strings.HasPrefix(tail, prefix) {
		trimmed = tail[len(prefix):]
	}
	if trimmed != "" || len(out) == 0 {
		if !active.isDefault() {
			tail += ANSIReset
		}
		out = append(out, tail)
	}

	return out
}

// BlockStyle specifies box-drawing properties applied by Apply: a fixed-width bordered box with padding. The pager's
// own chrome (tooltip, status bar) does not use it.
type BlockStyle struct {
	BlockNormalizeMode BlockNormalizeMode

	Padding int
	Border  bool

	TextBackground   Color
	BorderForeground Color
}

// Apply wraps str in an optional border with padding, normalizing all rows to equal width first.
func (bs BlockStyle) Apply(str string) string {
	normalized := BlockNormalizeWidth(str, bs.BlockNormalizeMode)
	contentWidth := BlockWidth(normalized)

	var contentLines []string
	if normalized == "" {
		contentLines = []string{""}
	} else {
		contentLines = strings.Split(normalized, "\n")
	}

	if bs.TextBackground != nil {
		style := Style{Background: bs.TextBackground}
		for i, line := range contentLines {
			if line == "" {
				contentLines[i] = style.Wrap(strings.Repeat(" ", contentWidth))
				continue
			}
			contentLines[i] = style.Wrap(line)
		}
	}

	pad := strings.Repeat(" ", bs.Padding)
	innerLines := make([]string, len(contentLines))
	for i, line := range contentLines {
		innerLines[i] = pad + line + pad
	}
	innerWidth := contentWidth + 2*bs.Padding

	if !bs.Border {
		return strings.Join(innerLines, "\n")
	}

	var borderStyle *Style
	if bs.BorderForeground != nil {
		borderStyle = &Style{Foreground: bs.BorderForeground}
	}
	wrap := func(s string) string {
		if borderStyle == nil {
			return s
		}
		return borderStyle.Wrap(s)
	}

	var out []string
	top := string(borderNormal.topLeft) + strings.Repeat(string(borderNormal.top), innerWidth) + string(borderNormal.topRight)
	out = append(out, wrap(top))
	for _, line := range innerLines {
		out = append(out, wrap(string(borderNormal.left))+line+wrap(string(borderNormal.right)))
	}
	bottom := string(borderNormal.bottomLeft) + strings.Repeat(string(borderNormal.bottom), innerWidth) + string(borderNormal.bottomRight)
	out = append(out, wrap(bottom))

	return strings.Join(out, "\n")
}
