package pager

// Action is a closed enumeration of everything the keymap can dispatch to: a tagged variant, not
// open-ended strings.
type Action int

const (
	ActionNone Action = iota

	ActionScrollDown
	ActionScrollUp
	ActionHalfPageDown
	ActionHalfPageUp
	ActionTop
	ActionBottom
	ActionCenterViewport

	ActionNextHunk
	ActionPrevHunk
	ActionNextFile
	ActionPrevFile

	ActionToggleSingleFile
	ActionToggleFullContext
	ActionToggleTree
	ActionToggleTooltip

	ActionSearchEnter
	ActionSearchSubmit
	ActionSearchCancel
	ActionSearchNext
	ActionSearchPrev

	ActionSetMark
	ActionYankToMark

	ActionOpenEditor

	ActionTreeUp
	ActionTreeDown
	ActionTreeEnter

	ActionQuit

	// Search-input editing actions (active only in ModeSearch).
	ActionSearchInputRune
	ActionSearchInputBackspace
	ActionSearchInputLeft
	ActionSearchInputRight
	ActionSearchInputWordLeft
	ActionSearchInputWordRight
	ActionSearchInputHome
	ActionSearchInputEnd
)

type keymapEntry struct {
	mode Mode
	key  Key
}

// keymapTable is the static (context, key) → action table: a pure lookup, no hidden state.
var keymapTable = map[keymapEntry]Action{
	{ModeNormal, Key{Code: KeyDown}}:            ActionScrollDown,
	{ModeNormal, Key{Code: KeyRune, Rune: 'j'}}: ActionScrollDown,
	{ModeNormal, Key{Code: KeyUp}}:              ActionScrollUp,
	{ModeNormal, Key{Code: KeyRune, Rune: 'k'}}: ActionScrollUp,
	{ModeNormal, Key{Code: KeyCtrlD}}:           ActionHalfPageDown,
	{ModeNormal, Key{Code: KeyPageDown}}:        ActionHalfPageDown,
	{ModeNormal, Key{Code: KeyCtrlU}}:           ActionHalfPageUp,
	{ModeNormal, Key{Code: KeyPageUp}}:          ActionHalfPageUp,
	{ModeNormal, Key{Code: KeyHome}}:            ActionTop,
	{ModeNormal, Key{Code: KeyRune, Rune: 'g'}}: ActionTop,
	{ModeNormal, Key{Code: KeyEnd}}:             ActionBottom,
	{ModeNormal, Key{Code: KeyRune, Rune: 'G'}}: ActionBottom,
	{ModeNormal, Key{Code: KeyRune, Rune: 'z'}}: ActionCenterViewport,

	{ModeNormal, Key{Code: KeyRune, Rune: '}'}}: ActionNextHunk,
	{ModeNormal, Key{Code: KeyRune, Rune: '{'}}: ActionPrevHunk,
	{ModeNormal, Key{Code: KeyRune, Rune: ']'}}: ActionNextFile,
	{ModeNormal, Key{Code: KeyRune, Rune: '['}}: ActionPrevFile,

	{ModeNormal, Key{Code: KeyRune, Rune: 'f'}}: ActionToggleSingleFile,
	{ModeNormal, Key{Code: KeyRune, Rune: 'c'}}: ActionToggleFullContext,
	{ModeNormal, Key{Code: KeyRune, Rune: 't'}}: ActionToggleTree,
	{ModeNormal, Key{Code: KeyRune, Rune: '?'}}: ActionToggleTooltip,

	{ModeNormal, Key{Code: KeyRune, Rune: '/'}}: ActionSearchEnter,
	{ModeNormal, Key{Code: KeyRune, Rune: 'n'}}: ActionSearchNext,
	{ModeNormal, Key{Code: KeyRune, Rune: 'N'}}: ActionSearchPrev,

	{ModeNormal, Key{Code: KeyRune, Rune: 'm'}}: ActionSetMark,
	{ModeNormal, Key{Code: KeyRune, Rune: 'y'}}: ActionYankToMark,

	{ModeNormal, Key{Code: KeyRune, Rune: 'e'}}: ActionOpenEditor,
	{ModeNormal, Key{Code: KeyEnter}}:           ActionOpenEditor,

	{ModeNormal, Key{Code: KeyRune, Rune: 'J'}}: ActionTreeDown,
	{ModeNormal, Key{Code: KeyRune, Rune: 'K'}}: ActionTreeUp,
	{ModeNormal, Key{Code: KeyRune, Rune: 'o'}}: ActionTreeEnter,

	{ModeNormal, Key{Code: KeyRune, Rune: 'q'}}: ActionQuit,
	{ModeNormal, Key{Code: KeyCtrlC}}:           ActionQuit,

	{ModeSearch, Key{Code: KeyEnter}}:        ActionSearchSubmit,
	{ModeSearch, Key{Code: KeyEscape}}:       ActionSearchCancel,
	{ModeSearch, Key{Code: KeyCtrlC}}:        ActionSearchCancel,
	{ModeSearch, Key{Code: KeyBackspace}}:    ActionSearchInputBackspace,
	{ModeSearch, Key{Code: KeyCtrlH}}:        ActionSearchInputBackspace,
	{ModeSearch, Key{Code: KeyLeft}}:         ActionSearchInputLeft,
	{ModeSearch, Key{Code: KeyRight}}:        ActionSearchInputRight,
	{ModeSearch, Key{Code: KeyAltLeft}}:      ActionSearchInputWordLeft,
	{ModeSearch, Key{Code: KeyAltRight}}:     ActionSearchInputWordRight,
	{ModeSearch, Key{Code: KeyAltBackspace}}: ActionSearchInputBackspace,
	{ModeSearch, Key{Code: KeyHome}}:         ActionSearchInputHome,
	{ModeSearch, Key{Code: KeyEnd}}:          ActionSearchInputEnd,
	{ModeSearch, Key{Code: KeyCtrlU}}:        ActionSearchInputHome,
}

// lookupAction is the pure (context, key) → action function.
func lookupAction(mode Mode, key Key) Action {
	if mode == ModeSearch && key.Code == KeyRune {
		return ActionSearchInputRune
	}
	if a, ok := keymapTable[keymapEntry{mode, key}]; ok {
		return a
	}
	return ActionNone
}
