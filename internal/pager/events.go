package pager

import "github.com/arifd/gd/internal/diffmodel"

// KeyCode enumerates the decoded key vocabulary the terminal input reader can produce.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyCtrlC
	KeyCtrlD
	KeyCtrlH
	KeyCtrlL
	KeyCtrlU
	KeyAltLeft
	KeyAltRight
	KeyAltBackspace
)

// Key is one decoded key event.
type Key struct {
	Code KeyCode
	Rune rune // valid when Code == KeyRune
}

// Event is the reducer's input: a key press or a synthesized resize/regenerate-complete signal.
type Event struct {
	Key    Key
	Resize bool
	Cols   int
	Rows   int
}

// Context carries everything the reducer needs that isn't part of PagerState: viewport geometry, the file
// list (read-only; regeneration replaces it outside the reducer), and the repo root used for editor handoff.
type Context struct {
	ContentHeight int
	Cols          int
	Files         []diffmodel.DiffFile
	RepoRoot      string
}

// EffectKind is the reducer's output signal.
type EffectKind int

const (
	Continue EffectKind = iota
	ReRender
	ReGenerate
	OpenEditor
	Quit
)

// Effect is what the runtime loop must do after a reduction.
type Effect struct {
	Kind EffectKind

	// OpenEditor fields.
	EditorPath     string
	EditorLine     int
	HasEditorLine  bool
	EditorReadOnly bool
}
