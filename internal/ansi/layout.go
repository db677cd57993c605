package ansi

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/arifd/gd/internal/uni"
)

// LayoutBlock places Block (a multi-line styled string) at offset (X, Y) within a Layout call.
type LayoutBlock struct {
	Block string
	X, Y  int
}

var errLayoutOverlap = errors.New("ansi: overlapping blocks in Layout")

// Layout composites non-overlapping blocks onto a single canvas. The canvas extent is the bounding box of all
// blocks; cells not covered by any block are filled with fillBGColor (or left blank if nil). Overlapping blocks
// are a caller error.
func Layout(blocks []LayoutBlock, fillBGColor Color) (string, error) {
	if len(blocks) == 0 {
		return "", nil
	}

	maxW, maxH := 0, 0
	for _, blk := range blocks {
		w := BlockWidth(blk.Block)
		h := BlockHeight(blk.Block)
		if blk.X+w > maxW {
			maxW = blk.X + w
		}
		if blk.Y+h > maxH {
			maxH = blk.Y + h
		}
	}

	occupied := make([][]bool, maxH)
	canvas := make([][]string, maxH)
	for y := range canvas {
		canvas[y] = make([]string, maxW)
		occupied[y] = make([]bool, maxW)
	}

	var fillCell string
	if fillBGColor != nil {
		fillCell = Style{Background: fillBGColor}.Wrap(" ")
	} else {
		fillCell = " "
	}

	for _, blk := range blocks {
		lines := strings.Split(BlockNormalizeWidth(blk.Block, BlockNormalizeModeExtend), "\n")
		for dy, line := range lines {
			y := blk.Y + dy
			cells := splitIntoCells(line)
			for dx, cell := range cells {
				x := blk.X + dx
				if y < 0 || y >= maxH || x < 0 || x >= maxW {
					continue
				}
				if occupied[y][x] {
					return "", errLayoutOverlap
				}
				occupied[y][x] = true
				canvas[y][x] = cell
			}
		}
	}

	var b strings.Builder
	for y := 0; y < maxH; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < maxW; x++ {
			if occupied[y][x] {
				b.WriteString(canvas[y][x])
			} else {
				b.WriteString(fillCell)
			}
		}
	}

	return b.String(), nil
}

// splitIntoCells splits a single self-contained styled line (as produced by BlockNormalizeModeExtend) into
// one string per display column, each self-contained.
func splitIntoCells(line string) []string {
	width := TextWidthWithANSICodes(line)
	cells := make([]string, 0, width)
	for col := 0; col < width; col++ {
		split := splitLineByWidth(line, col, 1)
		cells = append(cells, split.middle)
	}
	return cells
}

// OverlayRelativePosition controls automatic centering/edge-anchoring for Overlay.
type OverlayRelativePosition int

const (
	Center OverlayRelativePosition = iota
	TopOrLeft
	BottomOrRight
)

// OverlayPosition controls where blockDialog is placed over the background in Overlay.
type OverlayPosition struct {
	AutoX OverlayRelativePosition
	AutoY OverlayRelativePosition
}

// Overlay centers (or edge-anchors, per pos) blockDialog over background, clipping blockDialog to the
// background's bounds. The pager's tooltip and search line are drawn as separate rows by termrender, not
// through Overlay.
func Overlay(blockDialog, background string, pos OverlayPosition) string {
	bgLines := strings.Split(background, "\n")
	bgHeight := len(bgLines)
	bgWidth := BlockWidth(background)

	dialogLines := strings.Split(BlockNormalizeWidth(blockDialog, BlockNormalizeModeExtend), "\n")
	dialogHeight := len(dialogLines)
	dialogWidth := BlockWidth(blockDialog)

	x := offsetFor(pos.AutoX, bgWidth, dialogWidth)
	y := offsetFor(pos.AutoY, bgHeight, dialogHeight)

	out := make([]string, bgHeight)
	copy(out, bgLines)

	for dy, dialogLine := range dialogLines {
		row := y + dy
		if row < 0 || row >= bgHeight {
			continue
		}

		bgLine := out[row]
		if x >= bgWidth {
			continue
		}

		left := 0
		if x > 0 {
			left = x
		}
		right := left + dialogWidth
		if right > bgWidth {
			right = bgWidth
			dialogLine = Cut(dialogLine, 0, dialogWidth-(right-left))
		}

		prefix := sliceAndReset(bgLine, left)
		suffixSplit := splitLineByWidth(bgLine, right, bgWidth-right)
		suffix := buildStateTransition(suffixSplit.startState) + suffixSplit.middle

		out[row] = prefix + dialogLine + suffix
	}

	return strings.Join(out, "\n")
}

func offsetFor(rel OverlayRelativePosition, outer, inner int) int {
	switch rel {
	case TopOrLeft:
		return 0
	case BottomOrRight:
		if outer-inner > 0 {
			return outer - inner
		}
		return 0
	default:
		if outer > inner {
			return (outer - inner) / 2
		}
		return 0
	}
}

func blocksOverlap(a, b LayoutBlock) bool {
	aw, ah := BlockWidth(a.Block), BlockHeight(a.Block)
	bw, bh := BlockWidth(b.Block), BlockHeight(b.Block)
	if a.X+aw <= b.X || b.X+bw <= a.X {
		return false
	}
	if a.Y+ah <= b.Y || b.Y+bh <= a.Y {
		return false
	}
	return true
}

// lineSplit is the result of splitting a single self-contained line into three ranges by display column.
type lineSplit struct {
	prefix, middle, suffix string
	startState, endState   state
}

// splitLineByWidth extracts the column range [start, start+length) from line, tracking the SGR state active
// at the start and end of that range so the caller can re-establish styling around the extracted piece.
func splitLineByWidth(line string, start, length int) lineSplit {
	end := start + length
	active := defaultState()
	col := 0

	var prefix, middle, suffix strings.Builder
	var startState, endState state
	capturedStart, capturedEnd := false, false

	flushSeq := func(seq string) {
		switch {
		case col < start:
			prefix.WriteString(seq)
		case col >= start && col < end:
			middle.WriteString(seq)
		default:
			suffix.WriteString(seq)
		}
	}

	for i := 0; i < len(line); {
		if !capturedStart && col >= start {
			startState = active
			capturedStart = true
		}
		if !capturedEnd && col >= end {
			endState = active
			capturedEnd = true
		}

		if line[i] == '\x1b' {
			seqLen := ansiSequenceLength(line[i:])
			if seqLen == 0 {
				seqLen = 1
			}
			seq := line[i : i+seqLen]
			flushSeq(seq)
			if seqLen > 1 && line[i+1] == '[' && seq[len(seq)-1] == 'm' {
				if params, ok := parseSGRParameters(seq[2 : len(seq)-1]); ok {
					active, _ = applyParams(active, params)
				}
			}
			i += seqLen
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		ch := line[i : i+size]
		switch {
		case col < start:
			prefix.WriteString(ch)
		case col >= start && col < end:
			middle.WriteString(ch)
		default:
			suffix.WriteString(ch)
		}
		col += uni.RuneWidth(r, nil)
		i += size
	}

	if !capturedStart {
		startState = active
	}
	if !capturedEnd {
		endState = active
	}

	return lineSplit{
		prefix:     prefix.String(),
		middle:     middle.String(),
		suffix:     suffix.String(),
		startState: startState,
		endState:   endState,
	}
}

// sliceAndReset returns the first width display columns of line, re-styled so the result is self-contained.
func sliceAndReset(line string, width int) string {
	split := splitLineByWidth(line, 0, width)
	prefix := buildStateTransition(defaultState())
	result := prefix + split.middle
	if !split.endState.isDefault() {
		result += ANSIReset
	}
	return result
}
