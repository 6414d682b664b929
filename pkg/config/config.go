// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// GameConfig contains every tunable of a lawn defense session
type GameConfig struct {
	Seed      uint64          `json:"seed"`
	Screen    ScreenConfig    `json:"screen"`
	Timing    TimingConfig    `json:"timing"`
	Economy   EconomyConfig   `json:"economy"`
	Spawn     SpawnConfig     `json:"spawn"`
	Combat    CombatConfig    `json:"combat"`
	Placement PlacementConfig `json:"placement"`
	Audio     AudioConfig     `json:"audio"`
	Frontend  FrontendConfig  `json:"frontend"`
}

// ScreenConfig is the size of the play field in field units
type ScreenConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TimingConfig controls frame pacing and delayed transitions
type TimingConfig struct {
	TickMillis         int `json:"tickMillis"`
	GameOverDelayTicks int `json:"gameOverDelayTicks"`
	MusicDelayTicks    int `json:"musicDelayTicks"`
}

// TickInterval returns the target time between two frames.
func (t TimingConfig) TickInterval() time.Duration {
	return time.Duration(t.TickMillis) * time.Millisecond
}

// EconomyConfig contains credit and score rules
type EconomyConfig struct {
	StartCredits     int `json:"startCredits"`
	StandardCost     int `json:"standardCost"`
	FrostCost        int `json:"frostCost"`
	CollectibleValue int `json:"collectibleValue"`
	KillScore        int `json:"killScore"`
	LevelScoreStep   int `json:"levelScoreStep"`
	// AnnouncedLevels is the first level that no longer gets a banner.
	AnnouncedLevels int `json:"announcedLevels"`
}

// SpawnConfig contains the spawn cadence and odds
type SpawnConfig struct {
	CollectibleEvery   int   `json:"collectibleEvery"`
	CollectibleOdds    int   `json:"collectibleOdds"`
	HostileEveryLow    int   `json:"hostileEveryLow"`
	HostileEveryHigh   int   `json:"hostileEveryHigh"`
	HostileLowMaxLevel int   `json:"hostileLowMaxLevel"`
	HostileOdds        int   `json:"hostileOdds"`
	RunnerMinLevel     int   `json:"runnerMinLevel"`
	RunnerEvery        int   `json:"runnerEvery"`
	RunnerOdds         int   `json:"runnerOdds"`
	Lanes              []int `json:"lanes"`
	SpawnX             int   `json:"spawnX"`
}

// CombatConfig contains the collision margins and firing cadence
type CombatConfig struct {
	HitMargin       float64 `json:"hitMargin"`
	SecondHitOffset float64 `json:"secondHitOffset"`
	OverrunMargin   float64 `json:"overrunMargin"`
	FireInterval    int     `json:"fireInterval"`
	AutoThaw        bool    `json:"autoThaw"`
}

// PlacementConfig contains the lawn bounds and pointer tolerances
type PlacementConfig struct {
	MinX         int     `json:"minX"`
	MaxX         int     `json:"maxX"`
	MinY         int     `json:"minY"`
	MaxY         int     `json:"maxY"`
	Cell         int     `json:"cell"`
	CollectSlack float64 `json:"collectSlack"`
	SelectSlack  float64 `json:"selectSlack"`
}

// AudioConfig locates the sound clips
type AudioConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir"`
}

// Renderer names accepted by FrontendConfig.Renderer.
const (
	RendererTerminal = "terminal"
	RendererEngo     = "engo"
	RendererHeadless = "headless"
)

// FrontendConfig selects how the session is presented
type FrontendConfig struct {
	Renderer   string `json:"renderer"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Fullscreen bool   `json:"fullscreen"`
}

// LoadConfig loads a configuration from a file. Missing fields keep their
// default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the classic game rules
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Screen: ScreenConfig{Width: 1200, Height: 800},
		Timing: TimingConfig{
			TickMillis:         45,
			GameOverDelayTicks: 89,
			MusicDelayTicks:    67,
		},
		Economy: EconomyConfig{
			StartCredits:     0,
			StandardCost:     100,
			FrostCost:        200,
			CollectibleValue: 50,
			KillScore:        100,
			LevelScoreStep:   300,
			AnnouncedLevels:  4,
		},
		Spawn: SpawnConfig{
			CollectibleEvery:   13,
			CollectibleOdds:    5,
			HostileEveryLow:    50,
			HostileEveryHigh:   20,
			HostileLowMaxLevel: 1,
			HostileOdds:        7,
			RunnerMinLevel:     2,
			RunnerEvery:        15,
			RunnerOdds:         7,
			Lanes:              []int{200, 300, 400, 500},
			SpawnX:             1190,
		},
		Combat: CombatConfig{
			HitMargin:       -20,
			SecondHitOffset: 15,
			OverrunMargin:   -80,
			FireInterval:    130,
		},
		Placement: PlacementConfig{
			MinX:         51,
			MaxX:         1150,
			MinY:         51,
			MaxY:         550,
			Cell:         100,
			CollectSlack: 20,
			SelectSlack:  10,
		},
		Audio: AudioConfig{
			Enabled: true,
			Dir:     "assets/sounds",
		},
		Frontend: FrontendConfig{
			Renderer: RendererTerminal,
			Width:    1200,
			Height:   800,
		},
	}
}

// Validate checks that the configuration can drive a session.
func (c *GameConfig) Validate() error {
	var errs []error

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}
	if c.Timing.TickMillis < 1 || c.Timing.TickMillis > 1000 {
		errs = append(errs, fmt.Errorf("tickMillis %d out of range [1,1000]", c.Timing.TickMillis))
	}
	if c.Timing.GameOverDelayTicks < 0 || c.Timing.MusicDelayTicks < 0 {
		errs = append(errs, errors.New("delays must not be negative"))
	}

	positive := map[string]int{
		"collectibleEvery": c.Spawn.CollectibleEvery,
		"collectibleOdds":  c.Spawn.CollectibleOdds,
		"hostileEveryLow":  c.Spawn.HostileEveryLow,
		"hostileEveryHigh": c.Spawn.HostileEveryHigh,
		"hostileOdds":      c.Spawn.HostileOdds,
		"runnerEvery":      c.Spawn.RunnerEvery,
		"runnerOdds":       c.Spawn.RunnerOdds,
		"cell":             c.Placement.Cell,
		"levelScoreStep":   c.Economy.LevelScoreStep,
	}
	for _, name := range []string{
		"collectibleEvery", "collectibleOdds", "hostileEveryLow", "hostileEveryHigh",
		"hostileOdds", "runnerEvery", "runnerOdds", "cell", "levelScoreStep",
	} {
		if positive[name] <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, positive[name]))
		}
	}

	if len(c.Spawn.Lanes) == 0 {
		errs = append(errs, errors.New("at least one lane is required"))
	}
	if c.Economy.StandardCost < 0 || c.Economy.FrostCost < 0 || c.Economy.StartCredits < 0 {
		errs = append(errs, errors.New("costs and starting credits must not be negative"))
	}
	if c.Placement.MinX >= c.Placement.MaxX || c.Placement.MinY >= c.Placement.MaxY {
		errs = append(errs, errors.New("placement bounds are empty"))
	}
	if c.Audio.Enabled && c.Audio.Dir == "" {
		errs = append(errs, errors.New("audio dir is required when audio is enabled"))
	}
	switch c.Frontend.Renderer {
	case RendererTerminal, RendererEngo, RendererHeadless:
	default:
		errs = append(errs, fmt.Errorf("unknown renderer %q", c.Frontend.Renderer))
	}
	if c.Frontend.Width <= 0 || c.Frontend.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Frontend.Width, c.Frontend.Height))
	}

	return errors.Join(errs...)
}
