package termrender

var tooltipHints = [tooltipHeight]string{
	"j/k scroll  }/{ hunk  ]/[ file  f single-file  c full-context  t tree  / search  m mark  y yank",
	"e edit  n/N next/prev match  z center  g/G top/bottom  ? hide help  q quit",
}

// Tooltip returns the two dim key-hint rows shown when tooltip_visible is set.
func Tooltip(cols int) []string {
	rows := make([]string, tooltipHeight)
	for i, hint := range tooltipHints {
		rows[i] = padToWidth(Palette.Dim.Wrap(hint), cols)
	}
	return rows
}
