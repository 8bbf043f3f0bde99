package scenes

import (
	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
	"github.com/vovakirdan/tui-breach/internal/registry"
)

// Practice lists every registered puzzle. Practice runs train skills
// without touching mission progress or the alert level.
type Practice struct {
	handoff
	env      *kit.Env
	puzzles  []registry.Info
	selected int
}

// NewPractice creates the practice menu.
func NewPractice(env *kit.Env) *Practice {
	return &Practice{
		env:     env,
		puzzles: registry.List(),
	}
}

// Name implements engine.Named.
func (s *Practice) Name() string { return "practice" }

// HandleInput selects and launches a puzzle.
func (s *Practice) HandleInput(key core.Key, state *core.GameState) {
	if s.leaving() {
		return
	}

	switch key.Action() {
	case core.ActionUp:
		s.selected = core.Wrap(s.selected-1, len(s.puzzles))
	case core.ActionDown:
		s.selected = core.Wrap(s.selected+1, len(s.puzzles))
	case core.ActionConfirm, core.ActionToggle:
		s.launch()
	case core.ActionBack:
		s.to(NewMenu(s.env))
	case core.ActionQuit:
		state.Stop()
	}
}

func (s *Practice) launch() {
	if len(s.puzzles) == 0 {
		return
	}
	env := s.env
	scene, err := registry.Create(s.puzzles[s.selected].ID, env, kit.ModePractice, func(kit.Result) engine.Scene {
		return NewPractice(env)
	})
	if err != nil {
		return
	}
	s.to(scene)
}

// Update does nothing; the practice menu has no timers.
func (s *Practice) Update(*core.GameState) {}

// Render lists puzzles with their skill and instruction.
func (s *Practice) Render(dst engine.Canvas, opacity float64) {
	_, h := drawFrame(dst, "PRACTICE")

	labels := make([]string, len(s.puzzles))
	for i, p := range s.puzzles {
		labels[i] = p.Title + " [" + string(p.Skill) + "]"
	}
	top := h/2 - len(labels)
	drawOptions(dst, top, labels, s.selected, opacity)

	if len(s.puzzles) > 0 {
		dst.DrawTextCentered(top+len(labels)*2+1, s.puzzles[s.selected].Blurb, core.ColorCyan)
	} else {
		dst.DrawTextCentered(top, "no puzzles installed", core.ColorRed)
	}
	dst.DrawTextCentered(h-2, "up/down select  enter start  esc back", core.ColorGray)
}
