// Package render implements the diff rendering engine: it turns a list of diffmodel.DiffFile into a flat,
// syntax-highlighted, word-diff-annotated display representation, built on github.com/alecthomas/chroma/v2
// for syntax highlighting and internal/worddiff for token-level highlight ranges, composited with
// internal/ansi.
package render

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	chromalexers "github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/arifd/gd/internal/ansi"
	"github.com/arifd/gd/internal/diffmodel"
	"github.com/arifd/gd/internal/worddiff"
)

// LineKind mirrors diffmodel.LineKind but allows "absent" for header/separator decoration rows.
type LineKind int

const (
	KindNone LineKind = iota
	KindContext
	KindAdded
	KindDeleted
)

// LineInfo is per-display-line metadata, produced alongside each rendered row.
type LineInfo struct {
	FileIndex   int
	DisplayPath string
	OldLineNo   int
	HasOldLine  bool
	NewLineNo   int
	HasNewLine  bool
	Kind        LineKind
}

// RenderOutput is the {lines, line_map, file_starts, hunk_starts} triple produced by a single Render call.
type RenderOutput struct {
	Lines      []string
	LineMap    []LineInfo
	FileStarts []int
	HunkStarts []int
}

// Options controls a single Render invocation.
type Options struct {
	Width       int  // total terminal columns available to content (tree/scrollbar columns already subtracted).
	Color       bool // whether to emit ANSI color at all.
	TreeVisible bool // suppresses per-file header lines when true (shown in the tree pane instead).
	TabWidth    int
}

// Palette is the fixed set of colors the renderer uses; there are no configurable themes.
var Palette = struct {
	AddedBG     ansi.Color
	DeletedBG   ansi.Color
	AddedWordBG ansi.Color
	DeletedWordBG ansi.Color
	GutterFG    ansi.Color
	HeaderFG    ansi.Color
	SeparatorFG ansi.Color
}{
	AddedBG:       ansi.Indexed256(194),
	DeletedBG:     ansi.Indexed256(224),
	AddedWordBG:   ansi.Indexed256(114),
	DeletedWordBG: ansi.Indexed256(217),
	GutterFG:      ansi.Indexed256(244),
	HeaderFG:      ansi.RGB{R: 97, G: 175, B: 239},
	SeparatorFG:   ansi.Indexed256(238),
}

var chromaStyle = styles.Get("monokai")

const wrapArrow = "↳"

var gutterWidth = 5 // columns per line-number column, before the two-column separator+marker.

// Render produces the flat RenderOutput for files.
//
// Parallelism: when opts.Color is true and there are enough files, per-file rendering is split across a worker
// pool bounded by runtime.NumCPU() — color rendering is highlighter-bound, so splitting by file pays off;
// without color the cost is dominated by layout, so the sequential path runs instead.
func Render(files []diffmodel.DiffFile, opts Options) RenderOutput {
	fragments := make([]fileFragment, len(files))

	if opts.Color && len(files) >= 2 {
		renderParallel(files, opts, fragments)
	} else {
		for i, f := range files {
			fragments[i] = renderFile(i, f, opts)
		}
	}

	return stitch(fragments)
}

func renderParallel(files []diffmodel.DiffFile, opts Options, fragments []fileFragment) {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, f diffmodel.DiffFile) {
			defer wg.Done()
			defer func() { <-sem }()
			fragments[i] = renderFile(i, f, opts)
		}(i, f)
	}
	wg.Wait()
}

type fileFragment struct {
	lines      []string
	lineMap    []LineInfo
	hunkStarts []int // local indices, translated to global by stitch
}

func stitch(fragments []fileFragment) RenderOutput {
	var out RenderOutput
	for _, frag := range fragments {
		base := len(out.Lines)
		out.FileStarts = append(out.FileStarts, base)
		out.Lines = append(out.Lines, frag.lines...)
		out.LineMap = append(out.LineMap, frag.lineMap...)
		for _, hs := range frag.hunkStarts {
			out.HunkStarts = append(out.HunkStarts, base+hs)
		}
	}
	return out
}

func renderFile(fileIndex int, f diffmodel.DiffFile, opts Options) fileFragment {
	var frag fileFragment
	path := f.DisplayPath()

	if !opts.TreeVisible {
		frag.lines = append(frag.lines, fileHeaderLine(f, opts))
		frag.lineMap = append(frag.lineMap, LineInfo{FileIndex: fileIndex, DisplayPath: path, Kind: KindNone})
	}

	lexer := lexerFor(path)

	for hunkIdx, hunk := range f.Hunks {
		if hunkIdx > 0 {
			frag.lines = append(frag.lines, separatorLine(opts))
			frag.lineMap = append(frag.lineMap, LineInfo{FileIndex: fileIndex, DisplayPath: path, Kind: KindNone})
		}

		frag.hunkStarts = append(frag.hunkStarts, len(frag.lines))
		renderHunk(fileIndex, path, hunk, lexer, opts, &frag)
	}

	return frag
}

func fileHeaderLine(f diffmodel.DiffFile, opts Options) string {
	label := fmt.Sprintf("%s %s", f.Status.String(), f.DisplayPath())
	if !opts.Color {
		return label
	}
	return ansi.Style{Foreground: Palette.HeaderFG, Bold: true}.Wrap(label)
}

func separatorLine(opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	rule := strings.Repeat("┄", width)
	if !opts.Color {
		return rule
	}
	return ansi.Style{Foreground: Palette.SeparatorFG}.Wrap(rule)
}

func lexerFor(path string) chroma.Lexer {
	lexer := chromalexers.Match(path)
	if lexer == nil {
		lexer = chromalexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// renderHunk emits one display row (plus wrap continuations) per DiffLine in hunk.
func renderHunk(fileIndex int, path string, hunk diffmodel.DiffHunk, lexer chroma.Lexer, opts Options, frag *fileFragment) {
	blocks := groupChangeBlocks(hunk.Lines)

	for _, blk := range blocks {
		var delRanges, addRanges [][]worddiff.Range
		if len(blk.deletedIdx) > 0 && len(blk.addedIdx) > 0 {
			delContents := contentsAt(hunk.Lines, blk.deletedIdx)
			addContents := contentsAt(hunk.Lines, blk.addedIdx)
			delRanges, addRanges = worddiff.LineRanges(delContents, addContents)
		}

		di := 0
		ai := 0
		for _, idx := range blk.order {
			line := hunk.Lines[idx]
			var ranges []worddiff.Range
			switch line.Kind {
			case diffmodel.LineDeleted:
				if di < len(delRanges) {
					ranges = delRanges[di]
				}
				di++
			case diffmodel.LineAdded:
				if ai < len(addRanges) {
					ranges = addRanges[ai]
				}
				ai++
			}
			emitDisplayLine(fileIndex, path, line, lexer, ranges, opts, frag)
		}
	}
}

type changeBlock struct {
	order      []int // indices into hunk.Lines, in document order
	deletedIdx []int
	addedIdx   []int
}

// groupChangeBlocks partitions a hunk's lines into Context rows (singleton blocks, order-only) and maximal
// deleted(+added) change blocks.
func groupChangeBlocks(lines []diffmodel.DiffLine) []changeBlock {
	var blocks []changeBlock
	i := 0
	for i < len(lines) {
		if lines[i].Kind == diffmodel.Context {
			blocks = append(blocks, changeBlock{order: []int{i}})
			i++
			continue
		}

		var blk changeBlock
		for i < len(lines) && lines[i].Kind == diffmodel.LineDeleted {
			blk.deletedIdx = append(blk.deletedIdx, i)
			blk.order = append(blk.order, i)
			i++
		}
		for i < len(lines) && lines[i].Kind == diffmodel.LineAdded {
			blk.addedIdx = append(blk.addedIdx, i)
			blk.order = append(blk.order, i)
			i++
		}
		blocks = append(blocks, blk)
	}
	return blocks
}

func contentsAt(lines []diffmodel.DiffLine, idx []int) []string {
	out := make([]string, len(idx))
	for i, idx := range idx {
		out[i] = lines[idx].Content
	}
	return out
}

func emitDisplayLine(fileIndex int, path string, line diffmodel.DiffLine, lexer chroma.Lexer, ranges []worddiff.Range, opts Options, frag *fileFragment) {
	content := line.Content

	var bodyBG ansi.Color
	var marker byte
	var wordBG ansi.Color
	kind := KindContext
	switch line.Kind {
	case diffmodel.LineAdded:
		bodyBG, wordBG, marker, kind = Palette.AddedBG, Palette.AddedWordBG, '+', KindAdded
	case diffmodel.LineDeleted:
		bodyBG, wordBG, marker, kind = Palette.DeletedBG, Palette.DeletedWordBG, '-', KindDeleted
	default:
		marker = ' '
	}

	rendered := renderLineBody(content, lexer, bodyBG, wordBG, ranges, opts)
	full := gutter(line, opts) + string(marker) + rendered

	rows := wrapRow(full, opts.Width)

	for _, row := range rows {
		frag.lines = append(frag.lines, row)
		li := LineInfo{
			FileIndex:   fileIndex,
			DisplayPath: path,
			Kind:        kind,
			OldLineNo:   line.OldLineNo,
			HasOldLine:  line.HasOld,
			NewLineNo:   line.NewLineNo,
			HasNewLine:  line.HasNew,
		}
		frag.lineMap = append(frag.lineMap, li)
	}
}

func gutter(line diffmodel.DiffLine, opts Options) string {
	oldCol := gutterCol(line.OldLineNo, line.HasOld)
	newCol := gutterCol(line.NewLineNo, line.HasNew)
	text := oldCol + " " + newCol + " "
	if !opts.Color {
		return text
	}
	return ansi.Style{Foreground: Palette.GutterFG}.Wrap(text)
}

func gutterCol(n int, has bool) string {
	if !has {
		return strings.Repeat(" ", gutterWidth)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) < gutterWidth {
		s = strings.Repeat(" ", gutterWidth-len(s)) + s
	}
	return s
}

// renderLineBody syntax-highlights content (soft-reset between tokens so a background tint survives), then
// overlays word-diff ranges as a brighter background.
func renderLineBody(content string, lexer chroma.Lexer, bodyBG, wordBG ansi.Color, ranges []worddiff.Range, opts Options) string {
	if !opts.Color {
		return content
	}

	highlighted, posMap := highlightLine(content, lexer, bodyBG)

	if len(ranges) > 0 {
		highlighted = overlayWordRanges(highlighted, posMap, ranges, wordBG, bodyBG)
	}

	if bodyBG == nil {
		return highlighted
	}

	// The background tint spans the line's content; opening it here and relying on soft-reset between tokens
	// keeps it alive underneath the syntax highlighter. Rows are not padded here, and the spaces termrender
	// later pads a short row with are not tinted.
	return ansi.Style{Background: bodyBG}.SGR() + highlighted + ansi.ANSIReset
}

// highlightLine runs content through chroma and returns the SGR-annotated string plus a table mapping each
// raw byte offset into content (worddiff.Range.Start/End are raw byte offsets) to its byte offset inside the
// returned string, so word-diff ranges computed against the raw content can be relocated into the colored
// output.
func highlightLine(content string, lexer chroma.Lexer, bodyBG ansi.Color) (string, []int) {
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return fallbackHighlight(content, bodyBG)
	}

	var b strings.Builder
	posMap := make([]int, len(content)+1)
	byteOffset := 0

	for _, tok := range iterator.Tokens() {
		entry := chromaStyle.Get(tok.Type)
		sgr := styleEntrySGR(entry)
		if sgr != "" {
			b.WriteString(sgr)
		}
		for _, r := range tok.Value {
			posMap[byteOffset] = b.Len()
			byteOffset += utf8.RuneLen(r)
			b.WriteRune(r)
		}
		if sgr != "" {
			b.WriteString(ansi.SoftReset)
		}
	}
	posMap[len(content)] = b.Len()

	return b.String(), posMap
}

func fallbackHighlight(content string, _ ansi.Color) (string, []int) {
	posMap := make([]int, 0, len(content)+1)
	for i := range content {
		posMap = append(posMap, i)
	}
	posMap = append(posMap, len(content))
	return content, posMap
}

func styleEntrySGR(entry chroma.StyleEntry) string {
	if !entry.Colour.IsSet() {
		return ""
	}
	style := ansi.Style{
		Foreground: ansi.RGB{R: entry.Colour.Red(), G: entry.Colour.Green(), B: entry.Colour.Blue()},
		Bold:       entry.Bold == chroma.Yes,
		Italic:     entry.Italic == chroma.Yes,
		Underline:  entry.Underline == chroma.Yes,
	}
	return style.SGR()
}

// overlayWordRanges inserts a "start word-bg" marker at the colored-byte-position corresponding to each range's
// start and a "resume line-bg" marker at its end, in a single forward pass.
func overlayWordRanges(highlighted string, posMap []int, ranges []worddiff.Range, wordBG, lineBG ansi.Color) string {
	type marker struct {
		bytePos int
		start   bool
		rangeID int
	}
	markers := make([]marker, 0, len(ranges)*2)
	for i, r := range ranges {
		startByte := byteForContentOffset(posMap, r.Start)
		endByte := byteForContentOffset(posMap, r.End)
		markers = append(markers, marker{bytePos: startByte, start: true, rangeID: i})
		markers = append(markers, marker{bytePos: endByte, start: false, rangeID: i})
	}
	sort.SliceStable(markers, func(i, j int) bool { return markers[i].bytePos < markers[j].bytePos })

	wordStyle := ansi.Style{Background: wordBG}
	lineStyle := ansi.Style{Background: lineBG}

	var b strings.Builder
	cursor := 0
	depth := 0
	for _, m := range markers {
		if m.bytePos > cursor {
			b.WriteString(highlighted[cursor:m.bytePos])
			cursor = m.bytePos
		}
		if m.start {
			if depth == 0 {
				b.WriteString(wordStyle.SGR())
			}
			depth++
		} else {
			depth--
			if depth == 0 {
				b.WriteString(ansi.SoftReset)
				b.WriteString(lineStyle.SGR())
			}
		}
	}
	if cursor < len(highlighted) {
		b.WriteString(highlighted[cursor:])
	}
	return b.String()
}

// byteForContentOffset maps a raw byte offset into the line's original content to the corresponding byte
// offset inside the colored output, via posMap (see highlightLine).
func byteForContentOffset(posMap []int, contentOffset int) int {
	if contentOffset < 0 {
		return 0
	}
	if contentOffset >= len(posMap) {
		if len(posMap) == 0 {
			return 0
		}
		return posMap[len(posMap)-1]
	}
	return posMap[contentOffset]
}

// wrapRow wraps full to width columns, re-applying the gutter's blank continuation prefix (and, via the ANSI
// state tracked by WrapLineToWidth, any open background/foreground) on every continuation row.
func wrapRow(full string, width int) []string {
	rows := ansi.WrapLineToWidth(full, width)
	prefixWidth := gutterWidth*2 + 1 + ansi.TextWidthWithANSICodes(wrapArrow) + 1
	if len(rows) > 1 && width > prefixWidth {
		// Continuation rows are re-wrapped narrower so that prefix + row still fits in width columns.
		rest := ansi.WrapLineToWidth(strings.Join(rows[1:], ""), width-prefixWidth)
		rows = append(rows[:1], rest...)
	}
	return applyContinuationGutters(rows)
}

func applyContinuationGutters(rows []string) []string {
	if len(rows) <= 1 {
		return rows
	}
	prefix := strings.Repeat(" ", gutterWidth*2+1) + wrapArrow + " "
	out := make([]string, len(rows))
	out[0] = rows[0]
	for i := 1; i < len(rows); i++ {
		out[i] = prefix + rows[i]
	}
	return out
}
