package core

// Color is the foreground color of a screen cell. Front ends translate it
// to their own style types through ANSI.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorWhite
	ColorCyan
	ColorBrightBlue
	ColorBrightWhite
	ColorGray
)

var ansiCodes = [...]int{
	ColorDefault:     -1,
	ColorRed:         1,
	ColorGreen:       2,
	ColorYellow:      3,
	ColorWhite:       7,
	ColorCyan:        6,
	ColorBrightBlue:  12,
	ColorBrightWhite: 15,
	ColorGray:        245,
}

// ANSI returns the 256-color palette index for c, or -1 for the terminal
// default.
func (c Color) ANSI() int {
	if int(c) >= len(ansiCodes) {
		return -1
	}
	return ansiCodes[c]
}
