// pkg/config/presets_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetSystem(t *testing.T) {
	p := GetPreset("relaxed")
	require.NotNil(t, p)
	assert.Equal(t, "Relaxed", p.Name)
	assert.Nil(t, GetPreset("nightmare"))

	assert.Equal(t, []string{"classic", "relaxed", "siege"}, ListPresets())

	cfg := DefaultConfig()
	require.NoError(t, ApplyPreset(cfg, "siege"))
	assert.Equal(t, 0, cfg.Spawn.RunnerMinLevel)
	assert.Equal(t, 12, cfg.Spawn.HostileEveryHigh)
	// untouched
	assert.Equal(t, 100, cfg.Economy.StandardCost)
	assert.NoError(t, cfg.Validate())

	classic := DefaultConfig()
	require.NoError(t, ApplyPreset(classic, "classic"))
	assert.Equal(t, DefaultConfig(), classic)

	assert.Error(t, ApplyPreset(DefaultConfig(), "nightmare"))
}

func TestLoadConfigWithPreset(t *testing.T) {
	cfg, err := LoadConfigWithPreset("", "relaxed")
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.Economy.StartCredits)

	path := filepath.Join(t.TempDir(), "lawn.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"seed": 9}`), 0o644))
	cfg, err = LoadConfigWithPreset(path, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), cfg.Seed)

	_, err = LoadConfigWithPreset(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.Error(t, err)

	_, err = LoadConfigWithPreset("", "nightmare")
	assert.Error(t, err)
}
