package config

import (
	"flag"
	"io"
)

// Flags holds command-line overrides. Zero values mean "not set".
type Flags struct {
	ConfigPath string
	Debug      bool
	Heightmap  string // --heightmap or the first positional argument
	Windowed   bool
	Fullscreen bool
	Width      int
	Height     int
}

// ParseFlags parses the viewer's arguments (without the program name).
// Usage and parse errors are written to output.
func ParseFlags(args []string, output io.Writer) (Flags, error) {
	var f Flags
	fs := flag.NewFlagSet("flythrough", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Heightmap, "heightmap", "", "Path to the heightmap image")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	if f.Heightmap == "" {
		f.Heightmap = fs.Arg(0)
	}
	return f, nil
}

// apply writes the overrides that were set onto cfg.
func (f Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Heightmap != "" {
		cfg.Terrain.Heightmap = f.Heightmap
	}
	switch {
	case f.Fullscreen:
		cfg.Graphics.Fullscreen = true
	case f.Windowed:
		cfg.Graphics.Fullscreen = false
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
}
