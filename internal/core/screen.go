package core

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Cell is one character cell of the frame buffer.
type Cell struct {
	Rune  rune
	Color Color
}

// blankCell is the value every cell holds after Clear.
var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Box-drawing and progress glyphs.
const (
	GlyphTopLeft     = '┌'
	GlyphTopRight    = '┐'
	GlyphBottomLeft  = '└'
	GlyphBottomRight = '┘'
	GlyphHorizontal  = '─'
	GlyphVertical    = '│'
	GlyphFilled      = '█'
	GlyphEmpty       = '░'
)

// Screen is a 2D character/color buffer.
// It decouples scene drawing from the terminal: scenes write cells, the
// terminal layer decides how to emit them. All writes are clipped to the
// buffer bounds.
type Screen struct {
	width  int
	height int
	cells  []Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
// Negative dimensions are treated as zero.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  Max(width, 0),
		height: Max(height, 0),
	}
	s.cells = make([]Cell, s.width*s.height)
	s.Clear()
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Size returns width and height.
func (s *Screen) Size() (int, int) {
	return s.width, s.height
}

// Clear resets every cell to a blank with the default color.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

// InBounds reports whether (x, y) addresses a cell.
func (s *Screen) InBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, c Color) {
	if !s.InBounds(x, y) {
		return
	}
	s.cells[y*s.width+x] = Cell{Rune: r, Color: c}
}

// GetCell returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.InBounds(x, y) {
		return blankCell
	}
	return s.cells[y*s.width+x]
}

// Get returns the rune at the given position.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// DrawText writes a string horizontally starting at (x, y).
// Cells outside the buffer are skipped; there is no wraparound.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	if y < 0 || y >= s.height {
		return
	}
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r, c)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at row y.
// Text wider than the screen starts at a negative x and is clipped.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	x := (s.width - utf8.RuneCountInString(text)) / 2
	s.DrawText(x, y, text, c)
}

// DrawBox draws a box outline using box-drawing characters.
// A non-empty title is embedded centered in the top border when it fits
// strictly between the corners and inside the screen; otherwise it is
// omitted.
func (s *Screen) DrawBox(x, y, w, h int, title string, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r := NewRect(x, y, w, h)

	for bx := r.X + 1; bx < r.Right()-1; bx++ {
		s.Set(bx, r.Y, GlyphHorizontal, c)
		s.Set(bx, r.Bottom()-1, GlyphHorizontal, c)
	}
	for by := r.Y + 1; by < r.Bottom()-1; by++ {
		s.Set(r.X, by, GlyphVertical, c)
		s.Set(r.Right()-1, by, GlyphVertical, c)
	}

	s.Set(r.X, r.Y, GlyphTopLeft, c)
	s.Set(r.Right()-1, r.Y, GlyphTopRight, c)
	s.Set(r.X, r.Bottom()-1, GlyphBottomLeft, c)
	s.Set(r.Right()-1, r.Bottom()-1, GlyphBottomRight, c)

	if title == "" {
		return
	}
	label := " " + title + " "
	n := utf8.RuneCountInString(label)
	tx := r.X + (w-n)/2
	end := tx + n
	if tx <= r.X || end > r.Right()-1 || tx < 0 || end > s.width {
		return
	}
	s.DrawText(tx, r.Y, label, c)
}

// DrawProgressBar draws a horizontal bar exactly width cells wide.
// Progress is clamped to [0, 1]; round(width*progress) cells are filled and
// the rest are drawn empty.
func (s *Screen) DrawProgressBar(x, y, width int, progress float64, fill, empty Color) {
	filled, rest := ProgressSplit(width, progress)
	for i := 0; i < filled; i++ {
		s.Set(x+i, y, GlyphFilled, fill)
	}
	for i := 0; i < rest; i++ {
		s.Set(x+filled+i, y, GlyphEmpty, empty)
	}
}

// ProgressSplit returns the filled and empty cell counts of a progress bar.
// The two counts always sum to width (zero for negative widths).
func ProgressSplit(width int, progress float64) (filled, empty int) {
	if width <= 0 {
		return 0, 0
	}
	if math.IsNaN(progress) {
		progress = 0
	}
	progress = ClampF(progress, 0, 1)
	filled = Clamp(int(math.Round(float64(width)*progress)), 0, width)
	return filled, width - filled
}

// String converts the screen buffer to plain text, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for x := 0; x < s.width; x++ {
		sb.WriteRune(s.cells[y*s.width+x].Rune)
	}
	return sb.String()
}
