// pkg/entity/hostile.go
package entity

import (
	"image/color"
	"math"

	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

// HostileClass defines the type of zombie and its capabilities
type HostileClass int

const (
	Walker HostileClass = iota
	Runner
)

func (c HostileClass) String() string {
	switch c {
	case Walker:
		return "walker"
	case Runner:
		return "runner"
	default:
		return "unknown"
	}
}

// HostileStats contains the base statistics for a hostile class
type HostileStats struct {
	Radius     float64
	Stages     int
	SpeedRatio float64
	BaseSpeed  float64
	FastSpeed  float64
	Stride     int
	FastStride int
	Color      color.RGBA
}

const (
	// FreezeTicks is how long a frost hit pins a hostile before the
	// recovery check runs.
	FreezeTicks = 200
	// FastAfterLevel is the level above which hostiles use their fast speed.
	FastAfterLevel = 2
	// MinLaneY is the smallest lane centre; anything above is moved to DefaultLaneY.
	MinLaneY     = 100
	DefaultLaneY = 300
)

func getHostileStats(class HostileClass) HostileStats {
	switch class {
	case Runner:
		return HostileStats{
			Radius:     30,
			Stages:     2,
			SpeedRatio: 5,
			BaseSpeed:  1,
			FastSpeed:  2,
			Stride:     6,
			FastStride: 8,
			Color:      color.RGBA{R: 255, G: 140, B: 0, A: 255},
		}
	default:
		return HostileStats{
			Radius:     50,
			Stages:     3,
			SpeedRatio: 1,
			BaseSpeed:  1,
			FastSpeed:  4,
			Stride:     10,
			FastStride: 14,
			Color:      color.RGBA{R: 220, G: 30, B: 30, A: 255},
		}
	}
}

// Hostile is a zombie walking left along a lane.
type Hostile struct {
	BaseEntity
	Class    HostileClass
	Stats    HostileStats
	Stage    int
	Speed    float64
	Frozen   bool
	IceTicks int
	// AutoThaw lets the freeze timer clear Frozen on its own.
	AutoThaw bool
	Breached bool
	Color    color.RGBA

	// leg swing for the walk cycle
	Swing    int
	swingDir int
}

// NewHostile creates a hostile of class at (x, laneY).
func NewHostile(class HostileClass, x, laneY float64) *Hostile {
	stats := getHostileStats(class)
	if laneY < MinLaneY {
		laneY = DefaultLaneY
	}
	return &Hostile{
		BaseEntity: BaseEntity{
			Position: physics.Vector2D{X: x, Y: laneY},
			Radius:   stats.Radius,
		},
		Class:    class,
		Stats:    stats,
		Stage:    stats.Stages,
		Speed:    stats.BaseSpeed * stats.SpeedRatio,
		Color:    stats.Color,
		swingDir: 1,
	}
}

// Kind implements Entity.
func (h *Hostile) Kind() Kind { return KindHostile }

// SpeedFor returns the speed the hostile should walk at on level. It is zero
// while frozen.
func (h *Hostile) SpeedFor(level int) float64 {
	if h.Frozen {
		return 0
	}
	base := h.Stats.BaseSpeed
	if level > FastAfterLevel {
		base = h.Stats.FastSpeed
	}
	return base * h.Stats.SpeedRatio
}

func (h *Hostile) stride(level int) int {
	if level > FastAfterLevel {
		return h.Stats.FastStride
	}
	return h.Stats.Stride
}

// Advance moves the hostile left and runs its freeze timer.
func (h *Hostile) Advance(w World) {
	level := w.Level()
	h.Speed = h.SpeedFor(level)
	h.Position.X -= math.Floor(h.Speed)
	h.swing(level)

	if h.Speed == 0 {
		h.IceTicks++
		if h.IceTicks >= FreezeTicks {
			h.IceTicks = 0
			if h.AutoThaw {
				h.Frozen = false
			}
			h.Speed = h.SpeedFor(level)
		}
	}

	if h.Position.X < BreachX {
		h.Breached = true
	}
}

func (h *Hostile) swing(level int) {
	limit := h.stride(level)
	h.Swing += h.swingDir * int(h.Speed)
	if h.Swing >= limit || h.Swing <= -limit {
		h.swingDir = -h.swingDir
	}
}

// Freeze pins the hostile in place.
func (h *Hostile) Freeze() {
	h.Speed = 0
	h.IceTicks = 0
	h.Frozen = true
}

// Recover clears the frozen state and restores the level speed.
func (h *Hostile) Recover(level int) {
	h.Frozen = false
	h.IceTicks = 0
	h.Speed = h.SpeedFor(level)
}

// Hit applies one projectile hit and reports whether the hostile is destroyed.
// Hits on an already destroyed hostile are ignored.
func (h *Hostile) Hit(d DamageType) bool {
	if h.Stage <= 0 {
		return false
	}
	effect := d.Effect()
	h.Stage -= effect.Stages
	if h.Stage <= 0 {
		h.Stage = 0
		return true
	}
	if effect.Freeze {
		h.Freeze()
	}
	return false
}

// Destroyed reports whether the hostile has no stages left.
func (h *Hostile) Destroyed() bool {
	return h.Stage <= 0
}
