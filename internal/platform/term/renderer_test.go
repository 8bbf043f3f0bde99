package term

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-breach/internal/core"
)

func newTestRenderer(w, h int) (*Renderer, *bytes.Buffer, *core.ManualClock) {
	var buf bytes.Buffer
	clock := core.NewManualClock(time.Unix(0, 0))
	return NewRenderer(&buf, w, h, clock), &buf, clock
}

func TestRendererBlankFrame(t *testing.T) {
	r, buf, _ := newTestRenderer(4, 2)

	r.BeginFrame()
	r.EndFrame()

	want := seqHome + seqSGR0 + "    " + cursorPos(0, 1) + "    " + seqSGR0
	if got := buf.String(); got != want {
		t.Errorf("blank frame = %q, want %q", got, want)
	}

	stats := r.LastFrameStats()
	if stats.Cells != 8 {
		t.Errorf("Cells = %d, want 8", stats.Cells)
	}
	if stats.ColorChanges != 1 {
		t.Errorf("ColorChanges = %d, want 1 for a uniform frame", stats.ColorChanges)
	}
}

func TestRendererColorRuns(t *testing.T) {
	r, buf, _ := newTestRenderer(4, 1)

	r.BeginFrame()
	r.DrawText(0, 0, "ab", core.ColorRed)
	r.EndFrame()

	want := seqHome + ColorSequence(core.ColorRed) + "ab" + seqSGR0 + "  " + seqSGR0
	if got := buf.String(); got != want {
		t.Errorf("frame = %q, want %q", got, want)
	}
	if got := r.LastFrameStats().ColorChanges; got != 2 {
		t.Errorf("ColorChanges = %d, want 2", got)
	}
}

func TestRendererColorChangesBounded(t *testing.T) {
	r, _, _ := newTestRenderer(10, 3)

	colors := []core.Color{core.ColorRed, core.ColorGreen, core.ColorCyan, core.ColorDefault}
	r.BeginFrame()
	for x := 0; x < 10; x++ {
		for y := 0; y < 3; y++ {
			r.DrawText(x, y, "#", colors[(x+y)%len(colors)])
		}
	}
	r.EndFrame()

	stats := r.LastFrameStats()
	if stats.ColorChanges > stats.Cells {
		t.Errorf("ColorChanges = %d exceeds Cells = %d", stats.ColorChanges, stats.Cells)
	}
	if stats.Cells != 30 {
		t.Errorf("Cells = %d, want 30", stats.Cells)
	}
}

func TestRendererUniformColorFrame(t *testing.T) {
	r, _, _ := newTestRenderer(5, 2)

	r.BeginFrame()
	r.DrawText(0, 0, "hello", core.ColorGreen)
	r.DrawText(0, 1, "world", core.ColorGreen)
	r.EndFrame()

	if got := r.LastFrameStats().ColorChanges; got != 1 {
		t.Errorf("ColorChanges = %d, want 1", got)
	}
}

func TestRendererLastWriteWins(t *testing.T) {
	r, buf, _ := newTestRenderer(3, 1)

	r.BeginFrame()
	r.DrawText(0, 0, "aaa", core.ColorRed)
	r.DrawText(1, 0, "b", core.ColorBlue)
	r.EndFrame()

	out := buf.String()
	want := ColorSequence(core.ColorRed) + "a" + ColorSequence(core.ColorBlue) + "b" + ColorSequence(core.ColorRed) + "a"
	if !strings.Contains(out, want) {
		t.Errorf("frame %q does not contain %q", out, want)
	}
}

func TestRendererBeginFrameClears(t *testing.T) {
	r, buf, _ := newTestRenderer(3, 1)

	r.BeginFrame()
	r.DrawText(0, 0, "xyz", core.ColorRed)
	r.EndFrame()
	buf.Reset()

	r.BeginFrame()
	r.EndFrame()

	if strings.Contains(buf.String(), "xyz") {
		t.Error("second frame still contains text from the first")
	}
}

func TestRendererTransition(t *testing.T) {
	r, buf, clock := newTestRenderer(4, 1)
	r.SetTransitionSteps(4)

	var progress []float64
	r.Transition(400*time.Millisecond, func(p float64) {
		progress = append(progress, p)
		r.DrawText(0, 0, "x", core.ColorWhite)
	})

	want := []float64{0.25, 0.5, 0.75, 1}
	if len(progress) != len(want) {
		t.Fatalf("got %d steps, want %d", len(progress), len(want))
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Errorf("step %d progress = %v, want %v", i, progress[i], want[i])
		}
	}

	slept, n := clock.Slept()
	if slept != 400*time.Millisecond || n != 4 {
		t.Errorf("slept %v in %d calls, want 400ms in 4", slept, n)
	}
	if frames := strings.Count(buf.String(), seqHome); frames != 4 {
		t.Errorf("emitted %d frames, want 4", frames)
	}
}

func TestRendererTransitionSubtractsWork(t *testing.T) {
	r, _, clock := newTestRenderer(2, 1)
	r.SetTransitionSteps(2)

	r.Transition(100*time.Millisecond, func(float64) {
		clock.Advance(20 * time.Millisecond)
	})

	slept, n := clock.Slept()
	if slept != 60*time.Millisecond || n != 2 {
		t.Errorf("slept %v in %d calls, want 60ms in 2", slept, n)
	}
}

func TestRendererTransitionZeroDuration(t *testing.T) {
	r, _, clock := newTestRenderer(2, 1)

	calls := 0
	r.Transition(0, func(float64) { calls++ })

	if calls != DefaultTransitionSteps {
		t.Errorf("calls = %d, want %d", calls, DefaultTransitionSteps)
	}
	if _, n := clock.Slept(); n != 0 {
		t.Errorf("slept %d times, want 0", n)
	}
}

func TestRendererResetTerminal(t *testing.T) {
	r, buf, _ := newTestRenderer(2, 1)

	r.ResetTerminal()
	r.ResetTerminal()

	if got := buf.String(); got != resetSequence+resetSequence {
		t.Errorf("reset output = %q", got)
	}
}

func TestColorSequenceUnknown(t *testing.T) {
	if got := ColorSequence(core.Color(200)); got != seqSGR0 {
		t.Errorf("ColorSequence(200) = %q, want reset", got)
	}
	for c := core.ColorDefault; c.Valid(); c++ {
		if ColorSequence(c) == "" {
			t.Errorf("color %d has no sequence", c)
		}
	}
}

func TestSizeFallback(t *testing.T) {
	w, h := Size(-1)
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size(-1) = %dx%d, want %dx%d", w, h, DefaultWidth, DefaultHeight)
	}
}
