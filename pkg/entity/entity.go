// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

// ID is a unique identifier for an entity. Zero means "not yet registered".
type ID uint64

// Kind tags every simulated object so interaction rules can be looked up
// by (attacker, target) pair instead of by concrete type.
type Kind int

const (
	KindDefender Kind = iota
	KindCandidate
	KindHostile
	KindProjectile
	KindCollectible
	KindEffect
	KindBanner
	KindPreview
)

var kindNames = [...]string{
	KindDefender:    "defender",
	KindCandidate:   "candidate",
	KindHostile:     "hostile",
	KindProjectile:  "projectile",
	KindCollectible: "collectible",
	KindEffect:      "effect",
	KindBanner:      "banner",
	KindPreview:     "preview",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Field geometry shared by the entity rules.
const (
	FieldWidth  = 1200
	FieldHeight = 800
	// FieldRight is the x beyond which projectiles leave play.
	FieldRight = 1150
	// BreachX is the x below which a hostile has reached the house.
	BreachX = 50
)

// World is the part of the simulation an entity may consult or extend while
// it advances one tick.
type World interface {
	Tick() int
	Level() int
	Spawn(e Entity)
}

// Entity is the base interface for all simulated objects
type Entity interface {
	GetID() ID
	SetID(id ID)
	Kind() Kind
	GetPosition() physics.Vector2D
	GetCollider() physics.Circle
	// Advance applies one tick of movement and internal timers.
	Advance(w World)
	// Expired reports that the entity's countdown has run out and it should
	// leave its collection.
	Expired() bool
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID          ID
	Position    physics.Vector2D
	Radius      float64
	Orientation float64
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// SetID is called once by the registry when the entity is inserted.
func (e *BaseEntity) SetID(id ID) {
	e.ID = id
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// GetCollider returns the entity's bounding circle
func (e *BaseEntity) GetCollider() physics.Circle {
	return physics.Circle{Center: e.Position, Radius: e.Radius}
}

// Expired is false for entities without a countdown.
func (e *BaseEntity) Expired() bool {
	return false
}

// Countdown is a tick budget. An armed countdown that reaches zero marks its
// owner as expired.
type Countdown struct {
	Remaining int
	Armed     bool
}

// NewCountdown returns an armed countdown of n ticks.
func NewCountdown(n int) Countdown {
	return Countdown{Remaining: n, Armed: true}
}

// Step consumes one tick.
func (c *Countdown) Step() {
	if c.Armed && c.Remaining > 0 {
		c.Remaining--
	}
}

// Done reports whether the budget is spent.
func (c Countdown) Done() bool {
	return c.Armed && c.Remaining <= 0
}

// DamageType is carried by projectiles and decides the secondary effect of a hit.
type DamageType int

const (
	DamageStandard DamageType = iota
	DamageFrost
)

func (d DamageType) String() string {
	if d == DamageFrost {
		return "frost"
	}
	return "standard"
}

// HitEffect is what one projectile hit does to a hostile.
type HitEffect struct {
	Stages int
	Freeze bool
}

var damageTable = map[DamageType]HitEffect{
	DamageStandard: {Stages: 1},
	DamageFrost:    {Stages: 1, Freeze: true},
}

// Effect returns the hit effect for the damage type.
func (d DamageType) Effect() HitEffect {
	if e, ok := damageTable[d]; ok {
		return e
	}
	return HitEffect{Stages: 1}
}
