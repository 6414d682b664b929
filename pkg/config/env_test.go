// pkg/config/env_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvTickMillis, "30")
	t.Setenv(EnvSeed, "1234")
	t.Setenv(EnvStartCredits, "500")
	t.Setenv(EnvAudioDir, "/tmp/sounds")
	t.Setenv(EnvAudioEnabled, "false")
	t.Setenv(EnvAutoThaw, "true")
	t.Setenv(EnvRenderer, RendererEngo)

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnvironmentOverrides(cfg))

	assert.Equal(t, 30, cfg.Timing.TickMillis)
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.Equal(t, 500, cfg.Economy.StartCredits)
	assert.Equal(t, "/tmp/sounds", cfg.Audio.Dir)
	assert.False(t, cfg.Audio.Enabled)
	assert.True(t, cfg.Combat.AutoThaw)
	assert.Equal(t, RendererEngo, cfg.Frontend.Renderer)
}

func TestApplyEnvironmentOverrides_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		value       string
		expectError bool
	}{
		{"TickTooSlow", EnvTickMillis, "2000", true},
		{"NegativeCredits", EnvStartCredits, "-1", true},
		{"UnparsableTickIgnored", EnvTickMillis, "fast", false},
		{"UnknownPreset", EnvPreset, "nightmare", true},
		{"KnownPreset", EnvPreset, "siege", false},
		{"UnknownRenderer", EnvRenderer, "vga", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			err := ApplyEnvironmentOverrides(DefaultConfig())
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyEnvironmentOverrides_NilConfig(t *testing.T) {
	assert.Error(t, ApplyEnvironmentOverrides(nil))
}

func TestGetEnvHelperFunctions(t *testing.T) {
	t.Setenv("LAWN_TEST_STRING", "value")
	assert.Equal(t, "value", getEnvOrDefault("LAWN_TEST_STRING", "default"))
	assert.Equal(t, "default", getEnvOrDefault("LAWN_TEST_MISSING", "default"))

	t.Setenv("LAWN_TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsIntOrDefault("LAWN_TEST_INT", 10))
	t.Setenv("LAWN_TEST_INT", "invalid")
	assert.Equal(t, 10, getEnvAsIntOrDefault("LAWN_TEST_INT", 10))

	t.Setenv("LAWN_TEST_UINT", "18446744073709551615")
	assert.Equal(t, uint64(18446744073709551615), getEnvAsUint64OrDefault("LAWN_TEST_UINT", 1))
	t.Setenv("LAWN_TEST_UINT", "-3")
	assert.Equal(t, uint64(1), getEnvAsUint64OrDefault("LAWN_TEST_UINT", 1))

	t.Setenv("LAWN_TEST_BOOL", "true")
	assert.True(t, getEnvAsBoolOrDefault("LAWN_TEST_BOOL", false))
	t.Setenv("LAWN_TEST_BOOL", "maybe")
	assert.False(t, getEnvAsBoolOrDefault("LAWN_TEST_BOOL", false))
}
