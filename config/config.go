// Package config loads visualizer settings from TOML, a .env file and the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/lixenwraith/maze-bfs/engine"
	"github.com/lixenwraith/maze-bfs/render"
)

// ErrInvalidConfig wraps every configuration failure
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variable names
const (
	EnvMaze     = "MAZEBFS_MAZE"
	EnvDelay    = "MAZEBFS_DELAY"
	EnvStrategy = "MAZEBFS_STRATEGY"
	EnvAudio    = "MAZEBFS_AUDIO"
	EnvDebug    = "MAZEBFS_DEBUG"
)

// Config is the full visualizer configuration
type Config struct {
	Maze     string       `toml:"maze"`     // Maze file; empty selects the built-in maze
	Strategy string       `toml:"strategy"` // fullpath | parent
	Debug    bool         `toml:"debug"`
	Render   RenderConfig `toml:"render"`
	Audio    AudioConfig  `toml:"audio"`
}

// RenderConfig controls drawing and pacing
type RenderConfig struct {
	Delay     time.Duration  `toml:"delay"`
	CellWidth int            `toml:"cell_width"`
	Colors    render.Palette `toml:"colors"`
}

// AudioConfig controls tone cues
type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
	Ticks   bool    `toml:"ticks"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Strategy: engine.FullPath.String(),
		Render: RenderConfig{
			Delay:     render.DefaultDelay,
			CellWidth: render.DefaultCellWidth,
		},
		Audio: AudioConfig{
			Volume: 0.5,
			Ticks:  true,
		},
	}
}

// Load reads a TOML file over the defaults
// Keys absent from the file keep their default; unknown keys are rejected
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// LookupFunc resolves an environment variable
type LookupFunc func(key string) (string, bool)

// EnvLookup resolves from the process environment first, then from a .env file at path
// A missing .env file is not an error
func EnvLookup(path string) (LookupFunc, error) {
	dotenv, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
		dotenv = map[string]string{}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides fields from MAZEBFS_* variables
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvMaze); ok {
		c.Maze = v
	}
	if v, ok := lookup(EnvStrategy); ok {
		c.Strategy = v
	}
	if v, ok := lookup(EnvDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvDelay, err)
		}
		c.Render.Delay = d
	}
	if v, ok := lookup(EnvAudio); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvAudio, err)
		}
		c.Audio.Enabled = b
	}
	if v, ok := lookup(EnvDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvDebug, err)
		}
		c.Debug = b
	}
	return nil
}

// Validate checks value ranges and names
func (c *Config) Validate() error {
	if _, err := engine.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Render.Delay < 0 {
		return fmt.Errorf("%w: render.delay must not be negative (%v)", ErrInvalidConfig, c.Render.Delay)
	}
	if c.Render.CellWidth < 1 {
		return fmt.Errorf("%w: render.cell_width must be at least 1 (%d)", ErrInvalidConfig, c.Render.CellWidth)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be within [0, 1] (%v)", ErrInvalidConfig, c.Audio.Volume)
	}
	if _, err := render.ThemeFromPalette(c.Render.Colors); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Theme resolves the configured palette
func (c *Config) Theme() (render.Theme, error) {
	return render.ThemeFromPalette(c.Render.Colors)
}

// EngineStrategy resolves the configured strategy name
func (c *Config) EngineStrategy() (engine.Strategy, error) {
	return engine.ParseStrategy(c.Strategy)
}
