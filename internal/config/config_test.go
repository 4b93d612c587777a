package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test terrain defaults
	if cfg.Terrain.Heightmap != "heightmap.png" {
		t.Errorf("expected heightmap 'heightmap.png', got %s", cfg.Terrain.Heightmap)
	}
	if cfg.Terrain.HeightDivisor != 4 {
		t.Errorf("expected height divisor 4, got %f", cfg.Terrain.HeightDivisor)
	}

	// Test camera defaults
	if cfg.Camera.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.Speed != 10 {
		t.Errorf("expected speed 10, got %f", cfg.Camera.Speed)
	}
	if cfg.Camera.Sensitivity != 0.2 {
		t.Errorf("expected sensitivity 0.2, got %f", cfg.Camera.Sensitivity)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

terrain:
  heightmap: "maps/alps.png"
  height_divisor: 2.5

camera:
  fov: 60
  far: 5000
  speed: 25
  sensitivity: 0.1

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	// Relative to the config file, not the working directory
	if want := filepath.Join(tmpDir, "maps", "alps.png"); cfg.Terrain.Heightmap != want {
		t.Errorf("expected heightmap %s, got %s", want, cfg.Terrain.Heightmap)
	}
	if cfg.Terrain.HeightDivisor != 2.5 {
		t.Errorf("expected height divisor 2.5, got %f", cfg.Terrain.HeightDivisor)
	}

	if cfg.Camera.FOV != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.Far != 5000 {
		t.Errorf("expected far 5000, got %f", cfg.Camera.Far)
	}
	// Unset keys keep their defaults
	if cfg.Camera.Near != 0.1 {
		t.Errorf("expected near to keep default 0.1, got %f", cfg.Camera.Near)
	}
	if cfg.Camera.EyeHeight != 2 {
		t.Errorf("expected eye height to keep default 2, got %f", cfg.Camera.EyeHeight)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, "window size"},
		{"empty heightmap", func(c *Config) { c.Terrain.Heightmap = "" }, "heightmap path"},
		{"zero divisor", func(c *Config) { c.Terrain.HeightDivisor = 0 }, "height_divisor"},
		{"fov too wide", func(c *Config) { c.Camera.FOV = 180 }, "fov"},
		{"near behind far", func(c *Config) { c.Camera.Near = 3000 }, "near"},
		{"negative near", func(c *Config) { c.Camera.Near = -1 }, "near"},
		{"negative speed", func(c *Config) { c.Camera.Speed = -1 }, "speed"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadFromFileKeepsAbsoluteAndUnsetHeightmap(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "dem.tif")

	withAbs := filepath.Join(dir, "abs.yaml")
	if err := os.WriteFile(withAbs, []byte("terrain:\n  heightmap: "+abs+"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, withAbs); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Terrain.Heightmap != abs {
		t.Errorf("absolute heightmap rewritten to %s", cfg.Terrain.Heightmap)
	}

	without := filepath.Join(dir, "none.yaml")
	if err := os.WriteFile(without, []byte("camera:\n  fov: 70\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg = Default()
	if err := loadFromFile(cfg, without); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Terrain.Heightmap != Default().Terrain.Heightmap {
		t.Errorf("unset heightmap changed to %s", cfg.Terrain.Heightmap)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	work := t.TempDir()
	maps := t.TempDir()
	os.Chdir(work)
	heightmap := filepath.Join(maps, "crater.png")

	if path := findConfigFile(Flags{Heightmap: heightmap}); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	writeConfig := func(dir string) string {
		p := filepath.Join(dir, FileName)
		if err := os.WriteFile(p, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
			t.Fatalf("failed to create test config: %v", err)
		}
		return p
	}

	writeConfig(work)
	if path := findConfigFile(Flags{Heightmap: heightmap}); path != FileName {
		t.Errorf("expected working directory config, got %q", path)
	}

	beside := writeConfig(maps)
	if path := findConfigFile(Flags{Heightmap: heightmap}); path != beside {
		t.Errorf("expected config beside heightmap %s, got %q", beside, path)
	}

	explicit := filepath.Join(work, "missing.yaml")
	if path := findConfigFile(Flags{ConfigPath: explicit, Heightmap: heightmap}); path != explicit {
		t.Errorf("expected explicit path %s, got %q", explicit, path)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Flags
	}{
		{"none", nil, Flags{}},
		{"positional heightmap", []string{"maps/crater.png"}, Flags{Heightmap: "maps/crater.png"}},
		{"flag wins over positional", []string{"--heightmap", "a.png", "b.png"}, Flags{Heightmap: "a.png"}},
		{"display", []string{"--width", "2560", "--height=1440", "--fullscreen"}, Flags{Width: 2560, Height: 1440, Fullscreen: true}},
		{"config and debug", []string{"--config", "my.yaml", "-debug", "x.png"}, Flags{ConfigPath: "my.yaml", Debug: true, Heightmap: "x.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("ParseFlags(%v): %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("ParseFlags(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}

	if _, err := ParseFlags([]string{"--width", "wide"}, io.Discard); err == nil {
		t.Error("expected error for non-numeric width")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		flags  Flags
		verify func(*testing.T, *Config)
	}{
		{
			name:  "debug",
			flags: Flags{Debug: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:  "heightmap",
			flags: Flags{Heightmap: "terrain/crater.png"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Heightmap != "terrain/crater.png" {
					t.Errorf("expected heightmap terrain/crater.png, got %s", cfg.Terrain.Heightmap)
				}
			},
		},
		{
			name:  "windowed",
			flags: Flags{Windowed: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected windowed mode")
				}
			},
		},
		{
			name:  "fullscreen beats windowed",
			flags: Flags{Windowed: true, Fullscreen: true},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen")
				}
			},
		},
		{
			name:  "size",
			flags: Flags{Width: 2560, Height: 1440},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.flags.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
terrain:
  heightmap: "from-file.png"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(Flags{ConfigPath: configPath, Width: 1920, Heightmap: "from-flag.png"})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Terrain.Heightmap != "from-flag.png" {
		t.Errorf("expected heightmap from flag, got %s", cfg.Terrain.Heightmap)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  near: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(Flags{ConfigPath: configPath}); err == nil {
		t.Error("expected validation error for near=0, got nil")
	}
}

func TestLoadMissingExplicitConfig(t *testing.T) {
	_, err := Load(Flags{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")})
	if err == nil {
		t.Error("expected error for missing --config file")
	}
}
