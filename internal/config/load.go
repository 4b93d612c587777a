package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up next to the heightmap and in the
// working directory.
const FileName = "config.yaml"

// Load builds the config from defaults, then the first config file found,
// then flags, and validates the result.
func Load(f Flags) (*Config, error) {
	cfg := Default()

	if path := findConfigFile(f); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns --config if given, otherwise the first existing
// config.yaml beside the heightmap argument or in the working directory.
// An explicit path is returned even if missing so the read error surfaces.
func findConfigFile(f Flags) string {
	if f.ConfigPath != "" {
		return f.ConfigPath
	}

	var candidates []string
	if f.Heightmap != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(f.Heightmap), FileName))
	}
	candidates = append(candidates, FileName)

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadFromFile merges a YAML file into cfg. A relative terrain.heightmap is
// taken relative to the file's directory.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	prev := cfg.Terrain.Heightmap
	cfg.Terrain.Heightmap = ""
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Terrain.Heightmap = prev
		return err
	}

	switch hm := cfg.Terrain.Heightmap; {
	case hm == "":
		cfg.Terrain.Heightmap = prev
	case !filepath.IsAbs(hm):
		cfg.Terrain.Heightmap = filepath.Join(filepath.Dir(path), hm)
	}
	return nil
}
