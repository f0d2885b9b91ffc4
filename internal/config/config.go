// Package config loads the server and CLI settings from an optional TOML
// file and the environment.
//
// Example file:
//
//	[gradient]
//	dimensionality = 2
//	handle_boundaries = true
//	axes = [0, 1]
//	workers = 4
//
//	[image]
//	spacing_x = 0.5
//	spacing_y = 0.5
//	blur_radius = 1.5
//
//	[render]
//	colormap = "heat"
//	heat_stops = ["#000000", "#ff0000", "#ffff00"]
//
//	[log]
//	level = "debug"
//
// Keys that are absent keep their defaults. Unknown keys are an error so
// that typos do not pass silently.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/ironsheep/image-gradient-mcp/internal/gradient"
)

// EnvLogLevel overrides [log] level when set.
const EnvLogLevel = "IMAGE_MCP_LOG_LEVEL"

// Config is the full set of settings.
type Config struct {
	Gradient gradient.Config `toml:"gradient"`
	Image    Image           `toml:"image"`
	Render   Render          `toml:"render"`
	Log      Log             `toml:"log"`
}

// Image holds conversion defaults applied when a request does not set them.
type Image struct {
	SpacingX   float64 `toml:"spacing_x"`
	SpacingY   float64 `toml:"spacing_y"`
	BlurRadius float64 `toml:"blur_radius"`
}

// Render holds rendering defaults.
type Render struct {
	Colormap  string   `toml:"colormap"`
	HeatStops []string `toml:"heat_stops"`
}

// Log holds logging settings.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Gradient: gradient.DefaultConfig(),
		Image:    Image{SpacingX: 1, SpacingY: 1},
		Render:   Render{Colormap: "gray"},
		Log:      Log{Level: "info"},
	}
}

// Load reads path over the defaults and applies the environment. An empty
// path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.Log.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Gradient.Validate(); err != nil {
		return err
	}
	if c.Image.SpacingX <= 0 || c.Image.SpacingY <= 0 {
		return fmt.Errorf("image spacing must be positive, got %g x %g", c.Image.SpacingX, c.Image.SpacingY)
	}
	if c.Image.BlurRadius < 0 {
		return fmt.Errorf("blur radius must not be negative, got %g", c.Image.BlurRadius)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}
