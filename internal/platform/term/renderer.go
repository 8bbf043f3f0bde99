package term

import (
	"bufio"
	"io"
	"os"
	"time"

	xterm "golang.org/x/term"

	"github.com/vovakirdan/tui-breach/internal/core"
)

// Fallback dimensions when the terminal size cannot be queried.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// DefaultTransitionSteps is the number of frames in a cross-fade.
const DefaultTransitionSteps = 20

// Size returns the terminal size for fd, or 80x24 when it is unavailable
// (redirected output, not a tty).
func Size(fd int) (int, int) {
	w, h, err := xterm.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}

// FrameStats describes the output of the last EndFrame.
type FrameStats struct {
	Cells        int // Cells emitted
	ColorChanges int // Color sequences emitted between cells
}

// Renderer owns the frame buffer and is the only writer to the terminal.
// Draw calls go to an in-memory buffer; EndFrame emits it in one flush.
type Renderer struct {
	out    *bufio.Writer
	screen *core.Screen
	clock  core.Clock
	steps  int
	stats  FrameStats
}

// NewRenderer creates a renderer writing to w with a fixed buffer size.
func NewRenderer(w io.Writer, width, height int, clock core.Clock) *Renderer {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &Renderer{
		out:    bufio.NewWriterSize(w, 64*1024),
		screen: core.NewScreen(width, height),
		clock:  clock,
		steps:  DefaultTransitionSteps,
	}
}

// NewTerminalRenderer creates a renderer sized to the terminal behind f.
// The size is queried once; live resize is not tracked.
func NewTerminalRenderer(f *os.File, clock core.Clock) *Renderer {
	w, h := Size(int(f.Fd()))
	return NewRenderer(f, w, h, clock)
}

// SetTransitionSteps sets the number of frames per transition.
func (r *Renderer) SetTransitionSteps(n int) {
	if n > 0 {
		r.steps = n
	}
}

// Size returns the frame buffer dimensions.
func (r *Renderer) Size() (int, int) {
	return r.screen.Size()
}

// BeginFrame resets every cell to blank with the default color.
func (r *Renderer) BeginFrame() {
	r.screen.Clear()
}

// DrawText writes text starting at (x, y), clipping cells off screen.
func (r *Renderer) DrawText(x, y int, text string, c core.Color) {
	r.screen.DrawText(x, y, text, c)
}

// DrawTextCentered writes text horizontally centered on row y.
func (r *Renderer) DrawTextCentered(y int, text string, c core.Color) {
	r.screen.DrawTextCentered(y, text, c)
}

// DrawBox draws a rectangle outline with an optional title.
func (r *Renderer) DrawBox(x, y, w, h int, title string, c core.Color) {
	r.screen.DrawBox(x, y, w, h, title, c)
}

// DrawProgressBar draws a bar exactly w cells wide.
func (r *Renderer) DrawProgressBar(x, y, w int, progress float64, fill, empty core.Color) {
	r.screen.DrawProgressBar(x, y, w, progress, fill, empty)
}

// EndFrame emits the buffer and flushes the output before returning.
// A color sequence is written only when the tag differs from the previous
// cell's, and the frame ends with a reset to the default color.
func (r *Renderer) EndFrame() {
	w, h := r.screen.Size()
	r.stats = FrameStats{}

	r.out.WriteString(seqHome)

	var current core.Color
	haveColor := false
	for y := 0; y < h; y++ {
		if y > 0 {
			r.out.WriteString(cursorPos(0, y))
		}
		for x := 0; x < w; x++ {
			cell := r.screen.GetCell(x, y)
			if !haveColor || cell.Color != current {
				r.out.WriteString(ColorSequence(cell.Color))
				current = cell.Color
				haveColor = true
				r.stats.ColorChanges++
			}
			r.out.WriteRune(cell.Rune)
			r.stats.Cells++
		}
	}

	r.out.WriteString(seqSGR0)
	r.out.Flush() //nolint:errcheck // rendering never fails the frame
}

// LastFrameStats returns counters for the last emitted frame.
func (r *Renderer) LastFrameStats() FrameStats {
	return r.stats
}

// Transition runs a blocking animation of a fixed number of frames spread
// evenly over duration. Each frame calls step with progress i/steps for
// i = 1..steps, then sleeps for the rest of the per-step interval.
func (r *Renderer) Transition(duration time.Duration, step func(progress float64)) {
	interval := time.Duration(0)
	if duration > 0 {
		interval = duration / time.Duration(r.steps)
	}

	for i := 1; i <= r.steps; i++ {
		start := r.clock.Now()

		r.BeginFrame()
		step(float64(i) / float64(r.steps))
		r.EndFrame()

		if rest := interval - r.clock.Now().Sub(start); rest > 0 {
			r.clock.Sleep(rest)
		}
	}
}

// ClearScreen erases the terminal and homes the cursor.
func (r *Renderer) ClearScreen() {
	r.writeNow(seqClear + seqHome)
}

// HideCursor hides the terminal cursor.
func (r *Renderer) HideCursor() {
	r.writeNow(seqCursorHide)
}

// ShowCursor shows the terminal cursor.
func (r *Renderer) ShowCursor() {
	r.writeNow(seqCursorShow)
}

// ResetTerminal clears the screen, shows the cursor and resets colors.
// Safe to call any number of times.
func (r *Renderer) ResetTerminal() {
	r.writeNow(resetSequence)
}

func (r *Renderer) writeNow(seq string) {
	r.out.WriteString(seq)
	r.out.Flush() //nolint:errcheck // best-effort
}
