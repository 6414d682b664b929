// pkg/config/presets.go
package config

import (
	"fmt"
	"sort"
)

// Preset is a named difficulty that adjusts the spawn cadence and economy
type Preset struct {
	Name        string
	Description string
	apply       func(cfg *GameConfig)
}

var presets = map[string]Preset{
	"classic": {
		Name:        "Classic",
		Description: "The original pacing",
		apply:       func(cfg *GameConfig) {},
	},
	"relaxed": {
		Name:        "Relaxed",
		Description: "Fewer zombies and a head start on suns",
		apply: func(cfg *GameConfig) {
			cfg.Economy.StartCredits = 150
			cfg.Spawn.HostileOdds = 10
			cfg.Spawn.RunnerOdds = 12
			cfg.Spawn.CollectibleOdds = 3
		},
	},
	"siege": {
		Name:        "Siege",
		Description: "Runners from the start and a denser horde",
		apply: func(cfg *GameConfig) {
			cfg.Spawn.HostileEveryLow = 30
			cfg.Spawn.HostileEveryHigh = 12
			cfg.Spawn.HostileOdds = 5
			cfg.Spawn.RunnerMinLevel = 0
			cfg.Spawn.RunnerOdds = 5
		},
	},
}

// GetPreset returns the named preset, or nil when it does not exist.
func GetPreset(name string) *Preset {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	return &p
}

// ListPresets returns the preset keys in sorted order
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset overlays a preset on cfg. Fields the preset does not touch keep
// their current values.
func ApplyPreset(cfg *GameConfig, name string) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	p.apply(cfg)
	return nil
}

// LoadConfigWithPreset loads path, or the defaults when path is empty, then
// applies the preset.
func LoadConfigWithPreset(path, preset string) (*GameConfig, error) {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" {
		if err := ApplyPreset(cfg, preset); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
