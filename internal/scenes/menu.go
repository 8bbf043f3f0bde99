package scenes

import (
	"fmt"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
)

// Main menu entries, in display order.
const (
	OptionNewRun = iota
	OptionPractice
	OptionStatus
	OptionQuit
)

var menuOptions = []string{
	OptionNewRun:   "New Run",
	OptionPractice: "Practice",
	OptionStatus:   "Status",
	OptionQuit:     "Quit",
}

// Menu is the main menu. Selection wraps at both ends.
type Menu struct {
	handoff
	env      *kit.Env
	selected int
	player   string
}

// NewMenu creates the main menu with the first option selected.
func NewMenu(env *kit.Env) *Menu {
	return &Menu{env: env}
}

// Name implements engine.Named.
func (s *Menu) Name() string { return "menu" }

// Selected returns the index of the highlighted option.
func (s *Menu) Selected() int {
	return s.selected
}

// HandleInput moves the selection and activates options.
func (s *Menu) HandleInput(key core.Key, state *core.GameState) {
	if s.leaving() {
		return
	}

	switch key.Action() {
	case core.ActionUp:
		s.selected = core.Wrap(s.selected-1, len(menuOptions))
	case core.ActionDown:
		s.selected = core.Wrap(s.selected+1, len(menuOptions))
	case core.ActionConfirm, core.ActionToggle:
		s.activate(state)
	case core.ActionQuit:
		state.Stop()
	}
}

func (s *Menu) activate(state *core.GameState) {
	switch s.selected {
	case OptionNewRun:
		s.env.StartRun(state)
		s.to(NewMission(s.env))
	case OptionPractice:
		s.to(NewPractice(s.env))
	case OptionStatus:
		s.to(NewStatus(s.env))
	case OptionQuit:
		state.Stop()
	}
}

// Update copies the operator handle for display.
func (s *Menu) Update(state *core.GameState) {
	s.player = state.Player
}

// Render draws the title and options.
func (s *Menu) Render(dst engine.Canvas, opacity float64) {
	_, h := drawFrame(dst, "BREACH")

	top := h/2 - len(menuOptions)
	if s.player != "" {
		dst.DrawTextCentered(top-3, fmt.Sprintf("operator: %s", s.player), core.ColorGreen)
	}
	drawOptions(dst, top, menuOptions, s.selected, opacity)
	dst.DrawTextCentered(h-2, "up/down select  enter confirm  q quit", core.ColorGray)
}
