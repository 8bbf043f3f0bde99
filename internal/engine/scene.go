// Package engine runs scenes: it owns the active scene, the shared session
// state and the frame cadence, and performs cross-fade hand-offs.
//
// Scenes contain game logic only. They draw into a Canvas and never write to
// the terminal directly; the platform layer supplies the Display and Input.
package engine

import (
	"time"

	"github.com/vovakirdan/tui-breach/internal/core"
)

// Scene is one screen of the game: a menu, a briefing or a puzzle.
type Scene interface {
	// HandleInput is called at most once per tick, only when a key arrived.
	// It may mutate the scene and the shared state, and may decide the
	// successor.
	HandleInput(key core.Key, state *core.GameState)

	// Update is called exactly once per tick. Timers are computed from the
	// clock against a scene-local start time, never from tick counts.
	Update(state *core.GameState)

	// Render draws the scene. It must not mutate state. The canvas is
	// already faded to opacity by the controller; opacity is passed so a
	// scene can drop decorations while it fades.
	Render(dst Canvas, opacity float64)

	// Next returns the successor once the scene has decided to hand off,
	// and nil before that. Once non-nil it stays the same value.
	Next() Scene
}

// Named is implemented by scenes that report a location name.
// The controller copies it into GameState.Location on activation.
type Named interface {
	Name() string
}

// Canvas is the set of draw primitives a scene may use.
// Both the terminal renderer and core.Screen implement it.
type Canvas interface {
	Size() (width, height int)
	DrawText(x, y int, text string, c core.Color)
	DrawTextCentered(y int, text string, c core.Color)
	DrawBox(x, y, w, h int, title string, c core.Color)
	DrawProgressBar(x, y, w int, progress float64, fill, empty core.Color)
}

// Display is a Canvas with a frame lifecycle and a blocking transition
// animation.
type Display interface {
	Canvas
	BeginFrame()
	EndFrame()
	Transition(duration time.Duration, step func(progress float64))
}

// Input yields keys with a bounded wait.
type Input interface {
	NextKey(timeout time.Duration) (core.Key, bool)
}
