// pkg/entity/defender.go
package entity

import (
	"image/color"

	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

// DefenderKind selects which plant the player places.
type DefenderKind int

const (
	Peashooter DefenderKind = iota
	FrostShooter
)

func (k DefenderKind) String() string {
	switch k {
	case Peashooter:
		return "peashooter"
	case FrostShooter:
		return "frostshooter"
	default:
		return "unknown"
	}
}

// DefenderStats contains the fixed properties of a defender kind
type DefenderStats struct {
	Damage DamageType
	Color  color.RGBA
	// IconAt is where the selection icon for this kind sits below the lawn.
	IconAt physics.Vector2D
}

const (
	DefenderRadius = 100
	// DefaultFireInterval is the number of ticks between two shots.
	DefaultFireInterval = 130
)

// muzzleOffset is where projectiles leave the defender, relative to its centre.
var muzzleOffset = physics.Vector2D{X: 20, Y: -20}

func getDefenderStats(kind DefenderKind) DefenderStats {
	switch kind {
	case FrostShooter:
		return DefenderStats{
			Damage: DamageFrost,
			Color:  color.RGBA{R: 80, G: 170, B: 255, A: 255},
			IconAt: physics.Pt(470, 650),
		}
	default:
		return DefenderStats{
			Damage: DamageStandard,
			Color:  color.RGBA{R: 40, G: 200, B: 40, A: 255},
			IconAt: physics.Pt(230, 650),
		}
	}
}

// DefenderKinds lists every placeable kind in icon order.
func DefenderKinds() []DefenderKind {
	return []DefenderKind{Peashooter, FrostShooter}
}

// Defender is a stationary plant that fires projectiles along its lane.
type Defender struct {
	BaseEntity
	Type      DefenderKind
	Stats     DefenderStats
	Phase     int
	FireEvery int
}

// NewDefender creates a defender at an already snapped cell position. phase
// offsets its firing cadence so that neighbours do not shoot in lockstep.
func NewDefender(kind DefenderKind, position physics.Vector2D, phase, fireEvery int) *Defender {
	return &Defender{
		BaseEntity: BaseEntity{Position: position, Radius: DefenderRadius},
		Type:       kind,
		Stats:      getDefenderStats(kind),
		Phase:      phase,
		FireEvery:  fireEvery,
	}
}

// Kind implements Entity.
func (d *Defender) Kind() Kind { return KindDefender }

// ShouldFire reports whether the defender shoots on the given tick.
func (d *Defender) ShouldFire(tick int) bool {
	if d.FireEvery <= 0 {
		return false
	}
	return (tick+d.Phase)%d.FireEvery == 0
}

// Advance fires a projectile on the defender's cadence.
func (d *Defender) Advance(w World) {
	if d.ShouldFire(w.Tick()) {
		w.Spawn(NewProjectile(d.Position.Add(muzzleOffset), d.Stats.Damage))
	}
}

// Candidate is the selection icon for a defender kind. It never moves or fires.
type Candidate struct {
	BaseEntity
	Type  DefenderKind
	Color color.RGBA
}

// NewCandidate creates the icon for kind at its fixed slot.
func NewCandidate(kind DefenderKind) *Candidate {
	stats := getDefenderStats(kind)
	return &Candidate{
		BaseEntity: BaseEntity{Position: stats.IconAt, Radius: DefenderRadius},
		Type:       kind,
		Color:      stats.Color,
	}
}

// Kind implements Entity.
func (c *Candidate) Kind() Kind { return KindCandidate }

// Advance is a no-op: candidates are static.
func (c *Candidate) Advance(World) {}

// Preview is the ghost of the defender being dragged onto the lawn.
type Preview struct {
	BaseEntity
	Type DefenderKind
}

// NewPreview creates a placement preview at position.
func NewPreview(kind DefenderKind, position physics.Vector2D) *Preview {
	return &Preview{
		BaseEntity: BaseEntity{Position: position, Radius: DefenderRadius},
		Type:       kind,
	}
}

// Kind implements Entity.
func (p *Preview) Kind() Kind { return KindPreview }

// Advance is a no-op.
func (p *Preview) Advance(World) {}

// MoveTo repositions the preview.
func (p *Preview) MoveTo(position physics.Vector2D) {
	p.Position = position
}
