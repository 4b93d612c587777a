// Package config handles viewer configuration loading and validation.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/terrain-flythrough/internal/engine/camera"
	"github.com/Faultbox/terrain-flythrough/internal/engine/terrain"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Fullscreen    bool   `yaml:"fullscreen"`
	VSync         bool   `yaml:"vsync"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// TerrainConfig holds heightmap source settings.
type TerrainConfig struct {
	Heightmap     string  `yaml:"heightmap"`      // Path to the elevation image
	HeightDivisor float32 `yaml:"height_divisor"` // Pixel intensity is divided by this to get height
}

// CameraConfig holds projection and navigation settings.
type CameraConfig struct {
	FOV         float32 `yaml:"fov"` // Vertical, degrees
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	Speed       float32 `yaml:"speed"`       // World units per second
	Sensitivity float32 `yaml:"sensitivity"` // Degrees per pixel
	EyeHeight   float32 `yaml:"eye_height"`  // Spawn offset above the ground
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         800,
			Height:        600,
			Fullscreen:    false,
			VSync:         true,
			ScreenshotDir: "screenshots",
		},
		Terrain: TerrainConfig{
			Heightmap:     "heightmap.png",
			HeightDivisor: terrain.DefaultHeightDivisor,
		},
		Camera: CameraConfig{
			FOV:         camera.DefaultFOV,
			Near:        camera.DefaultNear,
			Far:         camera.DefaultFar,
			Speed:       camera.DefaultSpeed,
			Sensitivity: camera.DefaultSensitivity,
			EyeHeight:   2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings that would make startup or rendering impossible.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Terrain.Heightmap == "" {
		errs = append(errs, errors.New("terrain: heightmap path is empty"))
	}
	if c.Terrain.HeightDivisor <= 0 {
		errs = append(errs, fmt.Errorf("terrain: height_divisor must be positive, got %v", c.Terrain.HeightDivisor))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov must be in (0, 180), got %v", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("camera: need 0 < near < far, got near=%v far=%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Speed < 0 {
		errs = append(errs, fmt.Errorf("camera: speed must not be negative, got %v", c.Camera.Speed))
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}
