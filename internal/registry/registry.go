// Package registry provides a global registry for puzzle factories.
// Puzzles register themselves in init() functions, allowing scenes and the
// CLI to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-breach/internal/core"
	"github.com/vovakirdan/tui-breach/internal/engine"
	"github.com/vovakirdan/tui-breach/internal/puzzles/kit"
)

// Info contains metadata about a registered puzzle.
type Info struct {
	ID     string
	Title  string
	Skill  core.Skill
	Reward string // Inventory item granted on a mission win
	Blurb  string // One-line instruction
}

// Factory creates a new puzzle scene.
// The spec carries the ID, skill, reward, mode and continuation.
type Factory func(env *kit.Env, spec kit.Spec) engine.Scene

type entry struct {
	info    Info
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a puzzle factory to the registry.
// Typically called from a puzzle's init() function.
// Panics if a puzzle with the same ID is already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: puzzle without ID")
	}
	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: puzzle %q already registered", info.ID))
	}

	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered puzzles, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the metadata for a puzzle.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a puzzle by its ID in the given mode.
// Returns an error if the puzzle ID is not registered.
func Create(id string, env *kit.Env, mode kit.Mode, then kit.Then) (engine.Scene, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown puzzle %q", id)
	}

	return e.factory(env, kit.Spec{
		ID:     e.info.ID,
		Skill:  e.info.Skill,
		Reward: e.info.Reward,
		Mode:   mode,
		Then:   then,
	}), nil
}

// Exists checks if a puzzle with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

