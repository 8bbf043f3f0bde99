package scenes

import (
	"time"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
)

var banner = []string{
	"####  ####  #####  ###   #### #   #",
	"#   # #   # #     #   # #     #   #",
	"####  ####  ####  ##### #     #####",
	"#   # #  #  #     #   # #     #   #",
	"####  #   # ##### #   #  #### #   #",
}

const tagline = "establishing uplink..."

// Intro is the opening screen. It hands off to the main menu when its
// duration has elapsed, or earlier on any key.
type Intro struct {
	handoff
	env     *kit.Env
	started bool
	start   time.Time
	elapsed time.Duration
}

// NewIntro creates the intro scene.
func NewIntro(env *kit.Env) *Intro {
	return &Intro{env: env}
}

// Name implements engine.Named.
func (s *Intro) Name() string { return "intro" }

func (s *Intro) begin() {
	if !s.started {
		s.started = true
		s.start = s.env.Clock.Now()
	}
}

// HandleInput skips the intro.
func (s *Intro) HandleInput(key core.Key, state *core.GameState) {
	s.begin()
	if key.Code == core.KeyCtrlC {
		state.Stop()
		return
	}
	s.to(NewMenu(s.env))
}

// Update advances the reveal and hands off once the duration is over.
func (s *Intro) Update(*core.GameState) {
	s.begin()
	if s.leaving() {
		return
	}
	s.elapsed = s.env.Clock.Now().Sub(s.start)
	if s.elapsed >= s.env.Settings.Intro.Duration {
		s.to(NewMenu(s.env))
	}
}

// Render types out the tagline over the duration.
func (s *Intro) Render(dst engine.Canvas, _ float64) {
	_, h := dst.Size()
	y := h/2 - len(banner)

	for i, line := range banner {
		dst.DrawTextCentered(y+i, line, core.ColorBrightGreen)
	}

	frac := 1.0
	if d := s.env.Settings.Intro.Duration; d > 0 {
		frac = core.ClampF(float64(s.elapsed)/float64(d), 0, 1)
	}
	shown := int(frac * float64(len(tagline)))
	dst.DrawTextCentered(y+len(banner)+2, padRight(tagline[:shown], len(tagline)), core.ColorGreen)
	dst.DrawTextCentered(h-2, "press any key", core.ColorDarkGray)
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}
