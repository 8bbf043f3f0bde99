package engine

import "github.com/vovakirdan/tui-breach/internal/core"

// Faded wraps dst so every draw call is scaled by opacity.
// At opacity 1 or more dst is returned unchanged. At 0 or less nothing is
// drawn. In between colors step down through core.Color.Fade.
func Faded(dst Canvas, opacity float64) Canvas {
	if opacity >= 1 {
		return dst
	}
	return fadedCanvas{dst: dst, opacity: opacity}
}

type fadedCanvas struct {
	dst     Canvas
	opacity float64
}

func (f fadedCanvas) visible() bool {
	return f.opacity > 0
}

func (f fadedCanvas) Size() (int, int) {
	return f.dst.Size()
}

func (f fadedCanvas) DrawText(x, y int, text string, c core.Color) {
	if f.visible() {
		f.dst.DrawText(x, y, text, c.Fade(f.opacity))
	}
}

func (f fadedCanvas) DrawTextCentered(y int, text string, c core.Color) {
	if f.visible() {
		f.dst.DrawTextCentered(y, text, c.Fade(f.opacity))
	}
}

func (f fadedCanvas) DrawBox(x, y, w, h int, title string, c core.Color) {
	if f.visible() {
		f.dst.DrawBox(x, y, w, h, title, c.Fade(f.opacity))
	}
}

func (f fadedCanvas) DrawProgressBar(x, y, w int, progress float64, fill, empty core.Color) {
	if f.visible() {
		f.dst.DrawProgressBar(x, y, w, progress, fill.Fade(f.opacity), empty.Fade(f.opacity))
	}
}
