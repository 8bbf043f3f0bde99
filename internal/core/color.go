package core

// Color is an opaque color tag for a screen cell.
// Each tag maps to exactly one ANSI SGR sequence in the terminal layer.
type Color uint8

// Predefined colors for scene elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray

	colorCount
)

// Valid reports whether c is one of the predefined tags.
func (c Color) Valid() bool {
	return c < colorCount
}

// dimmed maps each color to its darker neighbour.
var dimmed = [colorCount]Color{
	ColorDefault:       ColorGray,
	ColorRed:           ColorDarkGray,
	ColorGreen:         ColorDarkGray,
	ColorYellow:        ColorGray,
	ColorBlue:          ColorDarkGray,
	ColorMagenta:       ColorDarkGray,
	ColorCyan:          ColorGray,
	ColorWhite:         ColorGray,
	ColorBrightRed:     ColorRed,
	ColorBrightGreen:   ColorGreen,
	ColorBrightYellow:  ColorYellow,
	ColorBrightBlue:    ColorBlue,
	ColorBrightMagenta: ColorMagenta,
	ColorBrightCyan:    ColorCyan,
	ColorBrightWhite:   ColorWhite,
	ColorOrange:        ColorYellow,
	ColorGray:          ColorDarkGray,
	ColorDarkGray:      ColorDarkGray,
}

// Dim returns a darker variant of the color.
func (c Color) Dim() Color {
	if !c.Valid() {
		return ColorDarkGray
	}
	return dimmed[c]
}

// Fade returns the color to use at the given opacity.
// Opacity 1 keeps the color unchanged; lower values step it down towards
// dark gray. Callers are expected to skip drawing entirely at opacity 0.
func (c Color) Fade(opacity float64) Color {
	switch {
	case opacity >= 0.67:
		return c
	case opacity >= 0.34:
		return c.Dim()
	default:
		return ColorDarkGray
	}
}
