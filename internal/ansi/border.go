package ansi

type border struct {
	left        rune
	right       rune
	top         rune
	bottom      rune
	topLeft     rune
	topRight    rune
	bottomLeft  rune
	bottomRight rune
}

var borderNormal = border{
	top:         '─',
	bottom:      '─',
	left:        '│',
	right:       '│',
	topLeft:     '┌',
	topRight:    '┐',
	bottomLeft:  '└',
	bottomRight: '┘',
}
