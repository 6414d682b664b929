// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables recognised by ApplyEnvironmentOverrides.
const (
	EnvTickMillis   = "LAWN_TICK_MS"
	EnvSeed         = "LAWN_SEED"
	EnvStartCredits = "LAWN_START_CREDITS"
	EnvAudioDir     = "LAWN_AUDIO_DIR"
	EnvAudioEnabled = "LAWN_AUDIO_ENABLED"
	EnvAutoThaw     = "LAWN_AUTO_THAW"
	EnvPreset       = "LAWN_PRESET"
	EnvRenderer     = "LAWN_RENDERER"
)

// ApplyEnvironmentOverrides applies LAWN_* variables on top of a loaded
// configuration and validates the result.
func ApplyEnvironmentOverrides(cfg *GameConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if preset := getEnvOrDefault(EnvPreset, ""); preset != "" {
		if err := ApplyPreset(cfg, preset); err != nil {
			return err
		}
	}

	cfg.Timing.TickMillis = getEnvAsIntOrDefault(EnvTickMillis, cfg.Timing.TickMillis)
	cfg.Seed = getEnvAsUint64OrDefault(EnvSeed, cfg.Seed)
	cfg.Economy.StartCredits = getEnvAsIntOrDefault(EnvStartCredits, cfg.Economy.StartCredits)
	cfg.Audio.Dir = getEnvOrDefault(EnvAudioDir, cfg.Audio.Dir)
	cfg.Audio.Enabled = getEnvAsBoolOrDefault(EnvAudioEnabled, cfg.Audio.Enabled)
	cfg.Combat.AutoThaw = getEnvAsBoolOrDefault(EnvAutoThaw, cfg.Combat.AutoThaw)
	cfg.Frontend.Renderer = getEnvOrDefault(EnvRenderer, cfg.Frontend.Renderer)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration after environment overrides: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsUint64OrDefault(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
