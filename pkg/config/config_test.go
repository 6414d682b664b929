// pkg/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1200, cfg.Screen.Width)
	assert.Equal(t, 800, cfg.Screen.Height)
	assert.Equal(t, 45*time.Millisecond, cfg.Timing.TickInterval())
	assert.Equal(t, 89, cfg.Timing.GameOverDelayTicks)
	assert.Equal(t, 67, cfg.Timing.MusicDelayTicks)
	assert.Equal(t, 0, cfg.Economy.StartCredits)
	assert.Equal(t, 100, cfg.Economy.StandardCost)
	assert.Equal(t, 200, cfg.Economy.FrostCost)
	assert.Equal(t, []int{200, 300, 400, 500}, cfg.Spawn.Lanes)
	assert.Equal(t, -20.0, cfg.Combat.HitMargin)
	assert.Equal(t, -80.0, cfg.Combat.OverrunMargin)
	assert.False(t, cfg.Combat.AutoThaw)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lawn.json")
	content := `{"seed": 7, "timing": {"tickMillis": 30}, "economy": {"startCredits": 250}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 30, cfg.Timing.TickMillis)
	assert.Equal(t, 250, cfg.Economy.StartCredits)
	// untouched fields keep defaults
	assert.Equal(t, 89, cfg.Timing.GameOverDelayTicks)
	assert.Equal(t, 100, cfg.Economy.StandardCost)
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timing": `), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.json")
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Combat.AutoThaw = true

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveConfig_InvalidPath(t *testing.T) {
	err := SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "no", "such", "dir", "x.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*GameConfig)
		expectError bool
	}{
		{"Defaults", func(*GameConfig) {}, false},
		{"ZeroTick", func(c *GameConfig) { c.Timing.TickMillis = 0 }, true},
		{"SlowTick", func(c *GameConfig) { c.Timing.TickMillis = 5000 }, true},
		{"NegativeDelay", func(c *GameConfig) { c.Timing.GameOverDelayTicks = -1 }, true},
		{"NoLanes", func(c *GameConfig) { c.Spawn.Lanes = nil }, true},
		{"ZeroOdds", func(c *GameConfig) { c.Spawn.HostileOdds = 0 }, true},
		{"ZeroCell", func(c *GameConfig) { c.Placement.Cell = 0 }, true},
		{"EmptyBounds", func(c *GameConfig) { c.Placement.MinX = c.Placement.MaxX }, true},
		{"NegativeCost", func(c *GameConfig) { c.Economy.FrostCost = -5 }, true},
		{"AudioWithoutDir", func(c *GameConfig) { c.Audio.Dir = "" }, true},
		{"AudioDisabledWithoutDir", func(c *GameConfig) {
			c.Audio.Enabled = false
			c.Audio.Dir = ""
		}, false},
		{"UnknownRenderer", func(c *GameConfig) { c.Frontend.Renderer = "vga" }, true},
		{"HeadlessRenderer", func(c *GameConfig) { c.Frontend.Renderer = RendererHeadless }, false},
		{"ZeroWindow", func(c *GameConfig) { c.Frontend.Width = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
