package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.breach/config.yaml -> ./configs/breach.yaml -> embedded default
//
// Files are decoded over Default(), so a file only needs the keys it
// changes. An explicit customPath that cannot be read or parsed is an
// error; the other locations are skipped silently.
func Load(customPath string) (Settings, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Default(), err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "breach.yaml")); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func loadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (Settings, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a file under ~/.breach, or empty if
// home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".breach", filename)
}

// DataPath returns the default location of a data file under ~/.breach,
// falling back to the working directory.
func DataPath(filename string) string {
	if p := userConfigPath(filename); p != "" {
		return p
	}
	return filename
}
