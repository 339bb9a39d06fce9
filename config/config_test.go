package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/maze-bfs/engine"
	"github.com/lixenwraith/maze-bfs/maze"
	"github.com/lixenwraith/maze-bfs/render"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func mapLookup(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 200*time.Millisecond, cfg.Render.Delay)
	assert.Equal(t, 2, cfg.Render.CellWidth)
	assert.False(t, cfg.Audio.Enabled)

	s, err := cfg.EngineStrategy()
	require.NoError(t, err)
	assert.Equal(t, engine.FullPath, s)
}

func TestLoad_PartialOverridesDefaults(t *testing.T) {
	path := writeFile(t, "maze-bfs.toml", `
maze = "mazes/spiral.txt"
strategy = "parent"

[render]
delay = "50ms"

[render.colors]
path = "green"

[audio]
enabled = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "mazes/spiral.txt", cfg.Maze)
	assert.Equal(t, "parent", cfg.Strategy)
	assert.Equal(t, 50*time.Millisecond, cfg.Render.Delay)
	assert.Equal(t, 2, cfg.Render.CellWidth)
	assert.Equal(t, "green", cfg.Render.Colors.Path)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.5, cfg.Audio.Volume)
	assert.True(t, cfg.Audio.Ticks)
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "maze-bfs.example.toml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	def := Default()
	assert.Equal(t, def.Strategy, cfg.Strategy)
	assert.Equal(t, def.Render.Delay, cfg.Render.Delay)
	assert.Equal(t, def.Render.CellWidth, cfg.Render.CellWidth)
	assert.Equal(t, def.Audio, cfg.Audio)
	assert.False(t, cfg.Debug)

	// The example palette spells out the stock colors
	theme, err := cfg.Theme()
	require.NoError(t, err)
	assert.Equal(t, render.DefaultTheme(), theme)

	g, err := maze.LoadFile(filepath.Join("..", cfg.Maze))
	require.NoError(t, err)
	assert.Positive(t, g.PassableCount())
}

func TestLoad_Errors(t *testing.T) {
	unknown := writeFile(t, "unknown.toml", "[render]\nfps = 60\n")
	_, err := Load(unknown)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "render.fps")

	broken := writeFile(t, "broken.toml", "maze = \n")
	_, err = Load(broken)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(mapLookup(map[string]string{
		EnvMaze:     "small.txt",
		EnvDelay:    "0s",
		EnvStrategy: "parent",
		EnvAudio:    "true",
		EnvDebug:    "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, "small.txt", cfg.Maze)
	assert.Equal(t, time.Duration(0), cfg.Render.Delay)
	assert.Equal(t, "parent", cfg.Strategy)
	assert.True(t, cfg.Audio.Enabled)
	assert.True(t, cfg.Debug)

	for _, key := range []string{EnvDelay, EnvAudio, EnvDebug} {
		c := Default()
		err := c.ApplyEnv(mapLookup(map[string]string{key: "bogus"}))
		assert.ErrorIs(t, err, ErrInvalidConfig, key)
	}
}

func TestEnvLookup_DotEnv(t *testing.T) {
	path := writeFile(t, ".env", "MAZEBFS_MAZE=from-dotenv.txt\nMAZEBFS_DELAY=10ms\n")
	t.Setenv(EnvDelay, "30ms")

	lookup, err := EnvLookup(path)
	require.NoError(t, err)

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "from-dotenv.txt", cfg.Maze)

	// Process environment wins over the file
	assert.Equal(t, 30*time.Millisecond, cfg.Render.Delay)

	_, err = EnvLookup(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"strategy", func(c *Config) { c.Strategy = "dfs" }},
		{"delay", func(c *Config) { c.Render.Delay = -time.Second }},
		{"cell width", func(c *Config) { c.Render.CellWidth = 0 }},
		{"volume", func(c *Config) { c.Audio.Volume = 1.5 }},
		{"color", func(c *Config) { c.Render.Colors.Maze = "plaid" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
