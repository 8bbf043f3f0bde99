package config

import (
	"fmt"
	"math"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string is the empty
// preset, which keeps the configured difficulty.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalid, name)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the settings based on a difficulty preset.
// Fixed keeps the configured initial level and disables progression.
// The empty preset changes nothing.
func ApplyPreset(cfg *Settings, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// DifficultyManager scales puzzle parameters by how far the run has got.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0.0, 1.0)
	return &DifficultyManager{cfg: cfg}
}

// Level returns the difficulty level (0.0 to 1.0) after solved puzzles.
func (d *DifficultyManager) Level(solved int) float64 {
	if !d.cfg.Enabled {
		return d.cfg.InitialLevel
	}

	maxAt := float64(d.cfg.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(solved)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.cfg.InitialLevel + progress*(1.0-d.cfg.InitialLevel)
}

// TimeLimit shortens a base time limit as difficulty rises.
func (d *DifficultyManager) TimeLimit(base time.Duration, solved int) time.Duration {
	level := d.Level(solved)
	scaled := time.Duration(float64(base) * (1.0 - level*d.cfg.TimeReduction)).Round(time.Second)
	// Never below a quarter of the base limit
	if minimum := base / 4; scaled < minimum {
		return minimum
	}
	return scaled
}

// Alert returns the alert raised per failure at the current difficulty.
func (d *DifficultyManager) Alert(base float64, solved int) float64 {
	level := d.Level(solved)
	return clampF(base*(1.0+level*d.cfg.AlertIncrease), 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
