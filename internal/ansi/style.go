package ansi

import (
	"strconv"
	"strings"
)

// ANSIReset is the full SGR reset sequence. Unlike SoftReset, it also clears
// background color, so appending it terminates every open style.
const ANSIReset = "\x1b[0m"

// SoftReset clears bold/dim, italic, and foreground color, but preserves
// background. The rendering engine relies on this to let a diff-line
// background survive between syntax-highlighter tokens.
const SoftReset = "\x1b[22;23;39m"

// Color is an SGR color: either a 256-color palette index or a 24-bit RGB
// triple. A nil Color means "don't set this channel".
type Color interface {
	fgParams() []int
	bgParams() []int
}

// Indexed256 is one of the 256 terminal palette colors (ESC[38;5;Nm / ESC[48;5;Nm).
type Indexed256 uint8

func (c Indexed256) fgParams() []int { return []int{38, 5, int(c)} }
func (c Indexed256) bgParams() []int { return []int{48, 5, int(c)} }

// RGB is a 24-bit true color (ESC[38;2;r;g;bm / ESC[48;2;r;g;bm).
type RGB struct{ R, G, B uint8 }

func (c RGB) fgParams() []int { return []int{38, 2, int(c.R), int(c.G), int(c.B)} }
func (c RGB) bgParams() []int { return []int{48, 2, int(c.R), int(c.G), int(c.B)} }

// Style is a bundle of SGR attributes. A nil Foreground/Background leaves
// that channel untouched.
type Style struct {
	Foreground Color
	Bold       bool
	Italic     bool
	Underline  bool
	Background Color
}

// SGR renders s as an SGR escape sequence (no text, no reset).
func (s Style) SGR() string {
	var params []int
	if s.Bold {
		params = append(params, 1)
	}
	if s.Italic {
		params = append(params, 3)
	}
	if s.Underline {
		params = append(params, 4)
	}
	if s.Foreground != nil {
		params = append(params, s.Foreground.fgParams()...)
	}
	if s.Background != nil {
		params = append(params, s.Background.bgParams()...)
	}
	if len(params) == 0 {
		return ""
	}
	return sgrSequence(params)
}

// Wrap applies the style to s and appends a full reset, so the result is self-contained.
func (s Style) Wrap(str string) string {
	if str == "" {
		return ""
	}
	sgr := s.SGR()
	if sgr == "" {
		return str
	}
	return sgr + str + ANSIReset
}

func sgrSequence(params []int) string {
	strs := make([]string, len(params))
	for i, p := range params {
		strs[i] = strconv.Itoa(p)
	}
	return "\x1b[" + strings.Join(strs, ";") + "m"
}

// state tracks the live SGR attributes at a point in a string, so that a
// wrapped/cut/split segment can be made self-contained by re-emitting the
// transitions needed to reach it.
type state struct {
	bold, italic, underline bool
	fg, bg                  Color
}

func defaultState() state { return state{} }

func (s state) isDefault() bool {
	return !s.bold && !s.italic && !s.underline && s.fg == nil && s.bg == nil
}

// applyParams mutates a copy of cur according to an SGR parameter list and returns the new state.
func applyParams(cur state, params []int) (state, bool) {
	changed := false
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			cur = state{}
			changed = true
		case p == 1:
			cur.bold, changed = true, true
		case p == 22:
			cur.bold, changed = false, true
		case p == 3:
			cur.italic, changed = true, true
		case p == 23:
			cur.italic, changed = false, true
		case p == 4:
			cur.underline, changed = true, true
		case p == 24:
			cur.underline, changed = false, true
		case p == 39:
			cur.fg, changed = nil, true
		case p == 49:
			cur.bg, changed = nil, true
		case p == 38:
			if c, next, ok := parseExtendedColor(params, i); ok {
				cur.fg = c
				i = next
				changed = true
			}
		case p == 48:
			if c, next, ok := parseExtendedColor(params, i); ok {
				cur.bg = c
				i = next
				changed = true
			}
		case isForegroundColor(p):
			cur.fg, changed = Indexed256(ansi16ToIndex(p, false)), true
		case isBackgroundColor(p):
			cur.bg, changed = Indexed256(ansi16ToIndex(p, true)), true
		}
	}
	return cur, changed
}

func isForegroundColor(p int) bool { return (p >= 30 && p <= 37) || (p >= 90 && p <= 97) }
func isBackgroundColor(p int) bool { return (p >= 40 && p <= 47) || (p >= 100 && p <= 107) }

func ansi16ToIndex(p int, bg bool) int {
	base := 30
	if bg {
		base = 40
	}
	if p >= base && p <= base+7 {
		return p - base
	}
	brightBase := 90
	if bg {
		brightBase = 100
	}
	return 8 + (p - brightBase)
}

// parseExtendedColor parses the 38/48 "5;N" (256-color) or "2;r;g;b" (RGB) forms starting at idx (which holds 38 or 48).
func parseExtendedColor(params []int, idx int) (Color, int, bool) {
	if idx+1 >= len(params) {
		return nil, idx, false
	}
	switch params[idx+1] {
	case 5:
		if idx+2 >= len(params) {
			return nil, idx, false
		}
		return Indexed256(params[idx+2]), idx + 2, true
	case 2:
		if idx+4 >= len(params) {
			return nil, idx, false
		}
		return RGB{R: uint8(params[idx+2]), G: uint8(params[idx+3]), B: uint8(params[idx+4])}, idx + 4, true
	default:
		return nil, idx, false
	}
}

// writeTransition writes the minimal SGR sequence needed to move active from its current value to target, and updates *active.
func writeTransition(b *strings.Builder, target state, active *state, forceFullReset bool) {
	if *active == target {
		return
	}
	if forceFullReset || !subsumes(*active, target) {
		if !target.isDefault() {
			b.WriteString(buildStateTransition(target))
		} else if !active.isDefault() {
			b.WriteString(ANSIReset)
		}
		*active = target
		return
	}
	var params []int
	if target.bold && !active.bold {
		params = append(params, 1)
	}
	if target.italic && !active.italic {
		params = append(params, 3)
	}
	if target.underline && !active.underline {
		params = append(params, 4)
	}
	if target.fg != nil {
		params = append(params, target.fg.fgParams()...)
	}
	if target.bg != nil {
		params = append(params, target.bg.bgParams()...)
	}
	if len(params) > 0 {
		b.WriteString(sgrSequence(params))
	}
	*active = target
}

// subsumes reports whether moving from cur to target can be done by adding
// attributes only (no attribute needs to be turned off).
func subsumes(cur, target state) bool {
	if cur.bold && !target.bold {
		return false
	}
	if cur.italic && !target.italic {
		return false
	}
	if cur.underline && !target.underline {
		return false
	}
	if cur.fg != nil && target.fg == nil {
		return false
	}
	if cur.bg != nil && target.bg == nil {
		return false
	}
	return true
}

// buildStateTransition returns the SGR sequence that establishes target from the default state.
func buildStateTransition(target state) string {
	if target.isDefault() {
		return ""
	}
	style := Style{Bold: target.bold, Italic: target.italic, Underline: target.underline, Foreground: target.fg, Background: target.bg}
	return style.SGR()
}

// simulateSGRState walks text (which may contain SGR escapes but no other control sequences of interest) and returns the resulting state starting from start.
func simulateSGRState(start state, text string) state {
	cur := start
	for i := 0; i < len(text); {
		if text[i] == '\x1b' && i+1 < len(text) && text[i+1] == '[' {
			end := i + 2
			for end < len(text) && text[end] != 'm' {
				end++
			}
			if end < len(text) && text[end] == 'm' {
				if params, ok := parseSGRParameters(text[i+2 : end]); ok {
					cur, _ = applyParams(cur, params)
				}
				i = end + 1
				continue
			}
		}
		i++
	}
	return cur
}

func parseSGRParameters(content string) ([]int, bool) {
	return parseSGRParametersInline(content, nil)
}

func parseSGRParametersInline(content string, buf []int) ([]int, bool) {
	buf = buf[:0]
	if content == "" {
		return append(buf, 0), true
	}

	start := 0
	for start <= len(content) {
		end := start
		for end < len(content) && content[end] != ';' {
			end++
		}
		if end == start {
			buf = append(buf, 0)
		} else {
			val, ok := parseSGRInt(content[start:end])
			if !ok {
				return nil, false
			}
			buf = append(buf, val)
		}
		if end == len(content) {
			break
		}
		start = end + 1
	}
	return buf, true
}

func parseSGRInt(segment string) (int, bool) {
	val := 0
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		val = val*10 + int(c-'0')
	}
	return val, true
}
