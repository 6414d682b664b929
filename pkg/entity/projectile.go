// pkg/entity/projectile.go
package entity

import "github.com/opd-ai/go-lawndefense/pkg/physics"

const (
	ProjectileRadius = 40
	ProjectileSpeed  = 15
)

// Projectile is a pea travelling right along a lane.
type Projectile struct {
	BaseEntity
	Damage DamageType
	Speed  float64
}

// NewProjectile creates a projectile at position carrying damage.
func NewProjectile(position physics.Vector2D, damage DamageType) *Projectile {
	return &Projectile{
		BaseEntity: BaseEntity{Position: position, Radius: ProjectileRadius},
		Damage:     damage,
		Speed:      ProjectileSpeed,
	}
}

// Kind implements Entity.
func (p *Projectile) Kind() Kind { return KindProjectile }

// Advance moves the projectile horizontally.
func (p *Projectile) Advance(World) {
	p.Position.X += p.Speed
}

// Expired is true once the projectile has left the right edge of play.
func (p *Projectile) Expired() bool {
	return p.Position.X > FieldRight
}
