// cmd/lawndefense/main_test.go
package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-lawndefense/pkg/config"
	"github.com/opd-ai/go-lawndefense/pkg/engine"
	"github.com/opd-ai/go-lawndefense/pkg/logging"
)

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := parseOptions(nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "config.json", opts.configPath)
	assert.Equal(t, config.RendererTerminal, opts.renderer)
	assert.Zero(t, opts.ticks)
	assert.Empty(t, opts.set)
}

func TestParseOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"UnknownFlag", []string{"-bogus"}},
		{"NegativeTicks", []string{"-ticks", "-5"}},
		{"BadSeed", []string{"-seed", "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOptions(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_LayersFlags(t *testing.T) {
	t.Setenv(config.EnvTickMillis, "20")
	opts, err := parseOptions([]string{
		"-config", filepath.Join(t.TempDir(), "missing.json"),
		"-renderer", "engo",
		"-seed", "42",
		"-width", "900",
		"-height", "600",
		"-fullscreen",
	}, io.Discard)
	require.NoError(t, err)

	cfg, err := opts.loadConfig()
	require.NoError(t, err)

	assert.Equal(t, config.RendererEngo, cfg.Frontend.Renderer)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 900, cfg.Frontend.Width)
	assert.Equal(t, 600, cfg.Frontend.Height)
	assert.True(t, cfg.Frontend.Fullscreen)
	assert.Equal(t, 20, cfg.Timing.TickMillis, "environment overrides still apply")
}

func TestLoadConfig_FlagsBeatEnvironment(t *testing.T) {
	t.Setenv(config.EnvRenderer, config.RendererEngo)
	opts, err := parseOptions([]string{"-config", filepath.Join(t.TempDir(), "none.json"), "-renderer", "headless"}, io.Discard)
	require.NoError(t, err)

	cfg, err := opts.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.RendererHeadless, cfg.Frontend.Renderer)
}

func TestLoadConfig_PresetFlagBeatsEnvironment(t *testing.T) {
	t.Setenv(config.EnvPreset, "siege")
	opts, err := parseOptions([]string{"-config", filepath.Join(t.TempDir(), "none.json"), "-preset", "relaxed"}, io.Discard)
	require.NoError(t, err)

	cfg, err := opts.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Spawn.HostileOdds, "flag preset wins")
	assert.Equal(t, 150, cfg.Economy.StartCredits)
	assert.Equal(t, 0, cfg.Spawn.RunnerMinLevel, "environment preset still applies underneath")
}

func TestLoadConfig_TicksImplyHeadless(t *testing.T) {
	opts, err := parseOptions([]string{"-config", filepath.Join(t.TempDir(), "none.json"), "-ticks", "10"}, io.Discard)
	require.NoError(t, err)

	cfg, err := opts.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.RendererHeadless, cfg.Frontend.Renderer)
}

func TestLoadConfig_ReadsFileAndPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := config.DefaultConfig()
	cfg.Timing.TickMillis = 30
	require.NoError(t, config.SaveConfig(cfg, path))

	opts, err := parseOptions([]string{"-config", path, "-preset", "relaxed"}, io.Discard)
	require.NoError(t, err)

	loaded, err := opts.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30, loaded.Timing.TickMillis)
	assert.Equal(t, 150, loaded.Economy.StartCredits)
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"UnknownRenderer", []string{"-renderer", "opengl"}},
		{"UnknownPreset", []string{"-preset", "nightmare"}},
		{"ZeroWidth", []string{"-width", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-config", filepath.Join(t.TempDir(), "none.json")}, tt.args...)
			opts, err := parseOptions(args, io.Discard)
			require.NoError(t, err)
			_, err = opts.loadConfig()
			assert.Error(t, err)
		})
	}
}

func TestRunHeadless_FixedTicks(t *testing.T) {
	game := engine.NewGame(config.DefaultConfig(), engine.NewRand(5), nil)
	var out bytes.Buffer

	require.NoError(t, runHeadless(t.Context(), game, 25, &out, nil))

	s := game.Snapshot()
	assert.Equal(t, engine.StatePlaying, s.State)
	assert.Equal(t, 25, s.Tick)
	assert.Equal(t, "state=playing tick=25 score=0 level=0 credits=0\n", out.String())
}

func TestRunHeadless_Cancelled(t *testing.T) {
	game := engine.NewGame(config.DefaultConfig(), engine.NewRand(5), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runHeadless(ctx, game, 10, io.Discard, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunHeadless_PacedUntilQuit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timing.TickMillis = 1
	game := engine.NewGame(cfg, engine.NewRand(5), nil)
	game.Quit()

	var out bytes.Buffer
	err := runHeadless(t.Context(), game, 0, &out, nil)
	assert.ErrorIs(t, err, engine.ErrQuit)
	assert.True(t, strings.HasPrefix(out.String(), "state="))
}

func TestOpenLogger_FileGetsText(t *testing.T) {
	t.Setenv("LAWN_LOG_LEVEL", "INFO")
	path := filepath.Join(t.TempDir(), "lawn.log")
	fallback := logging.Discard()

	logger, closeLog, err := openLogger(path, config.RendererTerminal, fallback)
	require.NoError(t, err)
	assert.NotSame(t, fallback, logger)
	logger.Info(context.Background(), "game started", "credits", 50)
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg="game started"`)
	assert.Contains(t, string(data), "credits=50")
}

func TestOpenLogger_ByRenderer(t *testing.T) {
	fallback := logging.Discard()

	logger, closeLog, err := openLogger("", config.RendererTerminal, fallback)
	require.NoError(t, err)
	closeLog()
	assert.NotSame(t, fallback, logger, "terminal keeps logs off the screen")

	for _, renderer := range []string{config.RendererEngo, config.RendererHeadless} {
		logger, _, err := openLogger("", renderer, fallback)
		require.NoError(t, err)
		assert.Same(t, fallback, logger, renderer)
	}
}

func TestOpenLogger_BadPath(t *testing.T) {
	fallback := logging.Discard()
	logger, _, err := openLogger(filepath.Join(t.TempDir(), "missing", "lawn.log"), config.RendererTerminal, fallback)
	assert.Error(t, err)
	assert.Same(t, fallback, logger)
}
