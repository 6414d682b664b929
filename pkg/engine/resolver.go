// pkg/engine/resolver.go
package engine

import (
	"github.com/opd-ai/go-lawndefense/pkg/config"
	"github.com/opd-ai/go-lawndefense/pkg/entity"
	"github.com/opd-ai/go-lawndefense/pkg/event"
	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

// quadCapacity is the number of hostiles a quadtree node holds before it splits.
const quadCapacity = 8

// interaction is the contact rule for an (attacker, target) kind pair.
type interaction struct {
	// margin is added to the radius sum; negative values demand overlap.
	margin float64
	// repeatOffset widens the margin for an attacker that already hit
	// something this tick.
	repeatOffset float64
}

type kindPair struct {
	attacker entity.Kind
	target   entity.Kind
}

// ResolveStats summarises one collision pass.
type ResolveStats struct {
	Hits     int
	Kills    int
	Overruns int
}

// Resolver runs the collision passes of a tick against a registry.
type Resolver struct {
	rules     map[kindPair]interaction
	killScore int
	tree      *physics.QuadTree[*entity.Hostile]
	// stray holds hostiles that fell outside the tree boundary this tick.
	stray map[*entity.Hostile]struct{}
}

// NewResolver builds the interaction table from the combat rules.
func NewResolver(cfg *config.GameConfig) *Resolver {
	bounds := physics.FieldRect(float64(cfg.Screen.Width), float64(cfg.Screen.Height))
	return &Resolver{
		rules: map[kindPair]interaction{
			{entity.KindProjectile, entity.KindHostile}: {
				margin:       cfg.Combat.HitMargin,
				repeatOffset: cfg.Combat.SecondHitOffset,
			},
			{entity.KindDefender, entity.KindHostile}: {
				margin: cfg.Combat.OverrunMargin,
			},
		},
		killScore: cfg.Economy.KillScore,
		tree:      physics.NewQuadTree[*entity.Hostile](bounds, quadCapacity),
		stray:     make(map[*entity.Hostile]struct{}),
	}
}

// Resolve runs the projectile pass and then the defender pass. Removals are
// only queued; the caller flushes the registry afterwards.
func (rs *Resolver) Resolve(r *Registry) ResolveStats {
	var stats ResolveStats
	rs.index(r.hostiles)
	rs.projectilePass(r, &stats)
	rs.defenderPass(r, &stats)
	return stats
}

func (rs *Resolver) index(hostiles []*entity.Hostile) {
	rs.tree.Clear()
	clear(rs.stray)
	for _, h := range hostiles {
		if !rs.tree.Insert(h.Position, h) {
			rs.stray[h] = struct{}{}
		}
	}
}

// near returns the hostiles that might touch c under rule, keyed for lookup.
func (rs *Resolver) near(c physics.Circle, rule interaction, maxRadius float64) map[*entity.Hostile]struct{} {
	pad := maxRadius + max(0, rule.margin+rule.repeatOffset)
	found := rs.tree.Query(c.Bounds(pad))
	set := make(map[*entity.Hostile]struct{}, len(found)+len(rs.stray))
	for _, h := range found {
		set[h] = struct{}{}
	}
	for h := range rs.stray {
		set[h] = struct{}{}
	}
	return set
}

func maxHostileRadius(hostiles []*entity.Hostile) float64 {
	var m float64
	for _, h := range hostiles {
		m = max(m, h.Radius)
	}
	return m
}

func (rs *Resolver) projectilePass(r *Registry, stats *ResolveStats) {
	rule := rs.rules[kindPair{entity.KindProjectile, entity.KindHostile}]
	hostiles := r.hostiles
	if len(hostiles) == 0 {
		return
	}
	maxR := maxHostileRadius(hostiles)

	for _, p := range r.projectiles {
		pc := p.GetCollider()
		candidates := rs.near(pc, rule, maxR)
		offset := 0.0

		// registry order keeps the outcome independent of the tree layout
		for _, h := range hostiles {
			if _, ok := candidates[h]; !ok || h.Destroyed() {
				continue
			}
			if !pc.Overlaps(h.GetCollider(), rule.margin+offset) {
				continue
			}
			offset = rule.repeatOffset
			rs.hit(r, p, h, stats)
		}
	}
}

func (rs *Resolver) hit(r *Registry, p *entity.Projectile, h *entity.Hostile, stats *ResolveStats) {
	stats.Hits++
	r.MarkForRemoval(p)

	destroyed := h.Hit(p.Damage)
	r.publish(event.NewHitEvent(r, uint64(p.ID), uint64(h.ID), p.Damage.String(), h.Stage))

	switch {
	case destroyed:
		stats.Kills++
		r.MarkForRemoval(h)
		r.publish(event.NewEntityEvent(event.HostileDestroyed, r, uint64(h.ID), h.Class.String(), h.Position.X, h.Position.Y))
		r.AddScore(rs.killScore)
	case h.Stage == 1:
		r.Add(entity.NewExplodingHead(h.Position, h.Color))
	}
}

func (rs *Resolver) defenderPass(r *Registry, stats *ResolveStats) {
	rule := rs.rules[kindPair{entity.KindDefender, entity.KindHostile}]
	hostiles := r.hostiles
	if len(hostiles) == 0 {
		return
	}
	maxR := maxHostileRadius(hostiles)

	for _, d := range r.defenders {
		dc := d.GetCollider()
		candidates := rs.near(dc, rule, maxR)
		for _, h := range hostiles {
			if _, ok := candidates[h]; !ok || h.Destroyed() {
				continue
			}
			if !dc.Overlaps(h.GetCollider(), rule.margin) {
				continue
			}
			r.SetGuide(GuideOverrun)
			if r.MarkForRemoval(d) {
				stats.Overruns++
				r.publish(event.NewEntityEvent(event.DefenderOverrun, r, uint64(d.ID), d.Type.String(), d.Position.X, d.Position.Y))
			}
		}
	}
}
