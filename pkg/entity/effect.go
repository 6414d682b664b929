// pkg/entity/effect.go
package entity

import (
	"image/color"

	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

const (
	HeadLifetime = 100
	HeadRadius   = 50
	// headDrop caps how far below its origin the head may fall.
	headDrop = 40

	BannerLifetime = 150
	BannerRadius   = 500
	// BannerRestY is the lowest point a falling banner reaches.
	BannerRestY = 200
)

// ExplodingHead is the head a hostile loses on its second to last stage.
type ExplodingHead struct {
	BaseEntity
	Color    color.RGBA
	Velocity physics.Vector2D
	OriginY  float64
	Life     Countdown
	spinDir  float64
}

// NewExplodingHead creates a head at position tinted with c.
func NewExplodingHead(position physics.Vector2D, c color.RGBA) *ExplodingHead {
	return &ExplodingHead{
		BaseEntity: BaseEntity{Position: position, Radius: HeadRadius},
		Color:      c,
		Velocity:   physics.Vector2D{Y: 1},
		OriginY:    position.Y,
		Life:       NewCountdown(HeadLifetime),
		spinDir:    1,
	}
}

// Kind implements Entity.
func (e *ExplodingHead) Kind() Kind { return KindEffect }

// Advance plays the recoil, fall and wobble phases.
func (e *ExplodingHead) Advance(World) {
	r := e.Life.Remaining
	switch {
	case r > 90:
		e.Velocity = physics.Vector2D{X: 1, Y: -1}
		e.Orientation++
	case r > 70:
		e.Velocity = physics.Vector2D{Y: 1}
	default:
		if r%10 == 0 {
			e.spinDir = -e.spinDir
		}
		e.Orientation += e.spinDir
	}

	e.Position = e.Position.Add(e.Velocity)
	if e.Position.Y > e.OriginY+headDrop {
		e.Position.Y = e.OriginY + headDrop
	}
	e.Life.Step()
}

// Expired implements Entity.
func (e *ExplodingHead) Expired() bool {
	return e.Life.Done()
}

// Banner is on-screen instruction text such as level announcements.
type Banner struct {
	BaseEntity
	Text      string
	FallSpeed float64
	Life      Countdown
}

// NewBanner creates a banner at position that drifts down by fallSpeed per tick.
func NewBanner(text string, position physics.Vector2D, fallSpeed float64) *Banner {
	return &Banner{
		BaseEntity: BaseEntity{Position: position, Radius: BannerRadius},
		Text:       text,
		FallSpeed:  fallSpeed,
		Life:       NewCountdown(BannerLifetime),
	}
}

// Kind implements Entity.
func (b *Banner) Kind() Kind { return KindBanner }

// Advance drifts the banner down to its resting line.
func (b *Banner) Advance(World) {
	if b.FallSpeed != 0 {
		b.Position.Y += b.FallSpeed
		if b.Position.Y > BannerRestY {
			b.Position.Y = BannerRestY
		}
	}
	b.Life.Step()
}

// Expired implements Entity.
func (b *Banner) Expired() bool {
	return b.Life.Done()
}
