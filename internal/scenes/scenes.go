// Package scenes contains the non-puzzle screens: intro, menus, the
// mission hub and the debrief. Each screen is an engine.Scene that builds
// its successor directly.
package scenes

import (
	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
)

// handoff holds a scene's successor. The first value set sticks.
type handoff struct {
	next engine.Scene
}

// Next implements engine.Scene.
func (h *handoff) Next() engine.Scene {
	return h.next
}

func (h *handoff) to(s engine.Scene) {
	if h.next == nil && s != nil {
		h.next = s
	}
}

func (h *handoff) leaving() bool {
	return h.next != nil
}

// drawFrame draws the outer border used by every non-puzzle screen.
func drawFrame(dst engine.Canvas, title string) (int, int) {
	w, h := dst.Size()
	dst.DrawBox(0, 0, w, h, title, core.ColorBlue)
	return w, h
}

// drawOptions draws a vertical list centered on the screen with the
// selected line highlighted. Highlight is dropped while fading.
func drawOptions(dst engine.Canvas, y int, options []string, selected int, opacity float64) {
	for i, opt := range options {
		label := "  " + opt + "  "
		color := core.ColorWhite
		if i == selected && opacity >= 1 {
			label = "> " + opt + " <"
			color = core.ColorBrightYellow
		}
		dst.DrawTextCentered(y+i*2, label, color)
	}
}
