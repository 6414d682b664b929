// pkg/engine/spawner.go
package engine

import (
	"math/rand/v2"

	"github.com/opd-ai/go-lawndefense/pkg/config"
	"github.com/opd-ai/go-lawndefense/pkg/entity"
)

// maxTick is the last tick value before the counter wraps.
const maxTick = 1<<31 - 1

// Rand is the random source behind every spawn gate and defender phase.
// *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG source seeded with seed. A zero seed draws a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Spawner decides from the tick counter and level which collectibles and
// hostiles enter play.
type Spawner struct {
	cfg   config.SpawnConfig
	rng   Rand
	width int
}

// NewSpawner creates a spawner over a field width units wide.
func NewSpawner(cfg config.SpawnConfig, rng Rand, width int) *Spawner {
	if width <= 0 {
		width = entity.FieldWidth
	}
	return &Spawner{cfg: cfg, rng: rng, width: width}
}

// Step returns the entities to spawn on tick at level, in spawn order.
func (s *Spawner) Step(tick, level int) []entity.Entity {
	var out []entity.Entity

	if c := s.collectible(tick); c != nil {
		out = append(out, c)
	}
	if h := s.hostile(tick, level); h != nil {
		out = append(out, h)
	}
	if h := s.runner(tick, level); h != nil {
		out = append(out, h)
	}
	return out
}

func (s *Spawner) collectible(tick int) *entity.Collectible {
	if tick%s.cfg.CollectibleEvery != 0 || s.rng.IntN(s.cfg.CollectibleOdds) != 0 {
		return nil
	}
	x := float64(s.rng.IntN(s.width))
	stopOffset := s.rng.IntN(199) - 99
	clockwise := s.rng.IntN(2) == 0
	return entity.NewFallingCollectible(x, stopOffset, clockwise)
}

func (s *Spawner) hostile(tick, level int) *entity.Hostile {
	every := s.cfg.HostileEveryHigh
	if level <= s.cfg.HostileLowMaxLevel {
		every = s.cfg.HostileEveryLow
	}
	if tick%every != 0 || s.rng.IntN(s.cfg.HostileOdds) != 0 {
		return nil
	}
	return entity.NewHostile(entity.Walker, float64(s.cfg.SpawnX), float64(s.lane()))
}

func (s *Spawner) runner(tick, level int) *entity.Hostile {
	if level < s.cfg.RunnerMinLevel {
		return nil
	}
	if tick%s.cfg.RunnerEvery != 0 || s.rng.IntN(s.cfg.RunnerOdds) != 0 {
		return nil
	}
	return entity.NewHostile(entity.Runner, float64(s.cfg.SpawnX), float64(s.lane()))
}

func (s *Spawner) lane() int {
	return s.cfg.Lanes[s.rng.IntN(len(s.cfg.Lanes))]
}
