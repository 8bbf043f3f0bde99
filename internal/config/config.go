// Package config provides YAML-based settings loading and difficulty
// management for breach.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Settings is the complete game configuration.
type Settings struct {
	Loop       LoopConfig       `yaml:"loop"`
	Intro      IntroConfig      `yaml:"intro"`
	Mission    MissionConfig    `yaml:"mission"`
	Puzzles    PuzzlesConfig    `yaml:"puzzles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// LoopConfig defines the frame cadence and transition animation.
type LoopConfig struct {
	FPS             int           `yaml:"fps"`
	InputTimeout    time.Duration `yaml:"input_timeout"`
	Transition      time.Duration `yaml:"transition"`
	TransitionSteps int           `yaml:"transition_steps"`
}

// IntroConfig defines the opening sequence.
type IntroConfig struct {
	Duration time.Duration `yaml:"duration"`
}

// MissionConfig defines the order of puzzles in a run.
type MissionConfig struct {
	Order           []string `yaml:"order"`
	AlertPerFailure float64  `yaml:"alert_per_failure"` // 0.0 - 1.0
}

// PuzzlesConfig holds per-puzzle parameters.
type PuzzlesConfig struct {
	Logic   LogicConfig   `yaml:"logic"`
	Memory  MemoryConfig  `yaml:"memory"`
	Pattern PatternConfig `yaml:"pattern"`
	Routing RoutingConfig `yaml:"routing"`
}

// LogicConfig defines the gate-graph puzzle.
type LogicConfig struct {
	Inputs    int           `yaml:"inputs"`
	Gates     int           `yaml:"gates"`
	TimeLimit time.Duration `yaml:"time_limit"`
}

// MemoryConfig defines the sequence reorder puzzle.
type MemoryConfig struct {
	Length    int           `yaml:"length"`
	Preview   time.Duration `yaml:"preview"`
	TimeLimit time.Duration `yaml:"time_limit"`
}

// PatternConfig defines the cycling-cell puzzle.
type PatternConfig struct {
	Cells     int           `yaml:"cells"`
	Glyphs    string        `yaml:"glyphs"`
	Cycle     time.Duration `yaml:"cycle"`
	TimeLimit time.Duration `yaml:"time_limit"`
}

// RoutingConfig defines the packet routing puzzle.
type RoutingConfig struct {
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Firewalls  int           `yaml:"firewalls"`
	MoveBudget int           `yaml:"move_budget"`
	TimeLimit  time.Duration `yaml:"time_limit"`
}

// DifficultyConfig defines how a run gets harder as puzzles are solved.
type DifficultyConfig struct {
	Enabled       bool    `yaml:"enabled"`
	InitialLevel  float64 `yaml:"initial_level"`  // 0.0 = easy, 1.0 = hard
	MaxAt         int     `yaml:"max_at"`         // Puzzles solved at which max difficulty is reached
	TimeReduction float64 `yaml:"time_reduction"` // Fraction of every time limit removed at max difficulty
	AlertIncrease float64 `yaml:"alert_increase"` // Multiplier added to alert per failure at max difficulty
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	switch {
	case s.Loop.FPS < 1 || s.Loop.FPS > 240:
		return invalid("loop.fps must be in [1, 240], got %d", s.Loop.FPS)
	case s.Loop.InputTimeout <= 0:
		return invalid("loop.input_timeout must be positive")
	case s.Loop.Transition < 0:
		return invalid("loop.transition must not be negative")
	case s.Loop.TransitionSteps < 1:
		return invalid("loop.transition_steps must be at least 1, got %d", s.Loop.TransitionSteps)
	case s.Intro.Duration <= 0:
		return invalid("intro.duration must be positive")
	case len(s.Mission.Order) == 0:
		return invalid("mission.order must name at least one puzzle")
	case s.Mission.AlertPerFailure <= 0 || s.Mission.AlertPerFailure > 1:
		return invalid("mission.alert_per_failure must be in (0, 1], got %v", s.Mission.AlertPerFailure)
	case s.Difficulty.InitialLevel < 0 || s.Difficulty.InitialLevel > 1:
		return invalid("difficulty.initial_level must be in [0, 1], got %v", s.Difficulty.InitialLevel)
	case s.Difficulty.TimeReduction < 0 || s.Difficulty.TimeReduction >= 1:
		return invalid("difficulty.time_reduction must be in [0, 1), got %v", s.Difficulty.TimeReduction)
	case s.Difficulty.AlertIncrease < 0:
		return invalid("difficulty.alert_increase must not be negative")
	}
	return s.Puzzles.validate()
}

func (p PuzzlesConfig) validate() error {
	switch {
	case p.Logic.Inputs < 2 || p.Logic.Inputs > 9:
		return invalid("puzzles.logic.inputs must be in [2, 9], got %d", p.Logic.Inputs)
	case p.Logic.Gates < 1:
		return invalid("puzzles.logic.gates must be at least 1, got %d", p.Logic.Gates)
	case p.Memory.Length < 2 || p.Memory.Length > 9:
		return invalid("puzzles.memory.length must be in [2, 9], got %d", p.Memory.Length)
	case p.Memory.Preview <= 0:
		return invalid("puzzles.memory.preview must be positive")
	case p.Pattern.Cells < 1 || p.Pattern.Cells > 9:
		return invalid("puzzles.pattern.cells must be in [1, 9], got %d", p.Pattern.Cells)
	case len([]rune(p.Pattern.Glyphs)) < 2:
		return invalid("puzzles.pattern.glyphs needs at least two glyphs")
	case p.Pattern.Cycle <= 0:
		return invalid("puzzles.pattern.cycle must be positive")
	case p.Routing.Width < 3 || p.Routing.Height < 3:
		return invalid("puzzles.routing grid must be at least 3x3, got %dx%d", p.Routing.Width, p.Routing.Height)
	case p.Routing.Firewalls < 0 || p.Routing.Firewalls > p.Routing.Width*p.Routing.Height/3:
		return invalid("puzzles.routing.firewalls must be in [0, %d], got %d", p.Routing.Width*p.Routing.Height/3, p.Routing.Firewalls)
	case p.Routing.MoveBudget < p.Routing.Width+p.Routing.Height:
		return invalid("puzzles.routing.move_budget must be at least width+height, got %d", p.Routing.MoveBudget)
	}
	for name, limit := range map[string]time.Duration{
		"logic":   p.Logic.TimeLimit,
		"memory":  p.Memory.TimeLimit,
		"pattern": p.Pattern.TimeLimit,
		"routing": p.Routing.TimeLimit,
	} {
		if limit <= 0 {
			return invalid("puzzles.%s.time_limit must be positive", name)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
