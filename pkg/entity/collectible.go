// pkg/entity/collectible.go
package entity

import "github.com/opd-ai/go-lawndefense/pkg/physics"

const (
	CollectibleRadius   = 40
	CollectibleValue    = 50
	CollectibleLifetime = 400
	// CollectibleFloor is where falling suns come to rest.
	CollectibleFloor = 540
	// spinStopBase is added to a sun's random offset to find where it stops spinning.
	spinStopBase = 300
)

// Collectible is a sun the player clicks to earn credits.
type Collectible struct {
	BaseEntity
	Value     int
	Static    bool
	FallSpeed float64
	Spin      float64
	SpinStopY float64
	Life      Countdown
}

// NewCollectible creates a sun that never moves or expires.
func NewCollectible(position physics.Vector2D) *Collectible {
	return &Collectible{
		BaseEntity: BaseEntity{Position: position, Radius: CollectibleRadius},
		Value:      CollectibleValue,
		Static:     true,
	}
}

// NewFallingCollectible creates a sun dropping from the top edge at x.
// stopOffset shifts the height at which it stops spinning and clockwise picks
// the spin direction.
func NewFallingCollectible(x float64, stopOffset int, clockwise bool) *Collectible {
	spin := -1.0
	if clockwise {
		spin = 1
	}
	return &Collectible{
		BaseEntity: BaseEntity{Position: physics.Vector2D{X: x}, Radius: CollectibleRadius},
		Value:      CollectibleValue,
		FallSpeed:  1,
		Spin:       spin,
		SpinStopY:  float64(spinStopBase + stopOffset),
		Life:       NewCountdown(CollectibleLifetime),
	}
}

// Kind implements Entity.
func (c *Collectible) Kind() Kind { return KindCollectible }

// Advance drops the sun towards the floor and ages it.
func (c *Collectible) Advance(World) {
	if c.Static {
		return
	}
	if c.Position.Y <= c.SpinStopY {
		c.Orientation += c.Spin
	}
	c.Position.Y += c.FallSpeed
	if c.Position.Y > CollectibleFloor {
		c.Position.Y = CollectibleFloor
	}
	c.Life.Step()
}

// Expired reports whether the sun has timed out.
func (c *Collectible) Expired() bool {
	return c.Life.Done()
}
