// pkg/engine/snapshot.go
package engine

import (
	"github.com/opd-ai/go-lawndefense/pkg/entity"
)

// Snapshot is a value copy of everything a frontend draws. It shares no
// memory with the live registry.
type Snapshot struct {
	State  State
	Paused bool
	Tick   int
	Frame  uint64

	Credits int
	Score   int
	Level   int

	// Costs is the credit price of every defender kind.
	Costs map[entity.DefenderKind]int

	Planting bool
	Selected entity.DefenderKind
	Guide    string
	Breached bool

	Defenders    []entity.Defender
	Candidates   []entity.Candidate
	Hostiles     []entity.Hostile
	Projectiles  []entity.Projectile
	Collectibles []entity.Collectible
	Effects      []entity.ExplodingHead
	Banners      []entity.Banner
	Preview      *entity.Preview
}

// EntityCount returns the number of drawable entities in the snapshot.
func (s *Snapshot) EntityCount() int {
	n := len(s.Defenders) + len(s.Candidates) + len(s.Hostiles) + len(s.Projectiles) +
		len(s.Collectibles) + len(s.Effects) + len(s.Banners)
	if s.Preview != nil {
		n++
	}
	return n
}

// createSnapshot builds the snapshot. Called with g.mu held.
func (g *Game) createSnapshot() *Snapshot {
	r := g.registry
	s := &Snapshot{
		State:        g.state,
		Paused:       g.paused,
		Tick:         r.tick,
		Frame:        g.frame,
		Credits:      r.credits,
		Score:        r.score,
		Level:        r.level,
		Planting:     r.planting,
		Selected:     r.selected,
		Guide:        r.guide,
		Breached:     r.breached,
		Defenders:    copyValues(r.defenders),
		Candidates:   copyValues(r.candidates),
		Hostiles:     copyValues(r.hostiles),
		Projectiles:  copyValues(r.projectiles),
		Collectibles: copyValues(r.collectibles),
		Effects:      copyValues(r.effects),
		Banners:      copyValues(r.banners),
	}
	s.Costs = make(map[entity.DefenderKind]int, len(entity.DefenderKinds()))
	for _, kind := range entity.DefenderKinds() {
		s.Costs[kind] = r.Cost(kind)
	}
	if r.preview != nil {
		p := *r.preview
		s.Preview = &p
	}
	return s
}

func copyValues[T any](src []*T) []T {
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = *v
	}
	return out
}
