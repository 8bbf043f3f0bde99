package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/breach.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches
// defaults/breach.yaml and is used when no YAML can be parsed.
func Default() Settings {
	return Settings{
		Loop: LoopConfig{
			FPS:             60,
			InputTimeout:    10 * time.Millisecond,
			Transition:      400 * time.Millisecond,
			TransitionSteps: 20,
		},
		Intro: IntroConfig{
			Duration: 3 * time.Second,
		},
		Mission: MissionConfig{
			Order:           []string{"logic", "memory", "pattern", "routing"},
			AlertPerFailure: 0.25,
		},
		Puzzles: PuzzlesConfig{
			Logic: LogicConfig{
				Inputs:    4,
				Gates:     3,
				TimeLimit: 60 * time.Second,
			},
			Memory: MemoryConfig{
				Length:    5,
				Preview:   4 * time.Second,
				TimeLimit: 45 * time.Second,
			},
			Pattern: PatternConfig{
				Cells:     5,
				Glyphs:    "#$%&@",
				Cycle:     600 * time.Millisecond,
				TimeLimit: 40 * time.Second,
			},
			Routing: RoutingConfig{
				Width:      9,
				Height:     7,
				Firewalls:  12,
				MoveBudget: 24,
				TimeLimit:  50 * time.Second,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			InitialLevel:  0.3,
			MaxAt:         4,
			TimeReduction: 0.4,
			AlertIncrease: 0.5,
		},
	}
}
