// pkg/render/engo/viewport.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-lawndefense/pkg/physics"
)

// Viewport maps the fixed play field onto the window. The field keeps its
// aspect ratio and is centred, leaving bars on the longer window axis.
type Viewport struct {
	field  physics.Vector2D
	window engo.Point
	scale  float32
	offset engo.Point
}

// NewViewport creates a viewport for a field of fieldW x fieldH units shown
// in a window of width x height pixels.
func NewViewport(fieldW, fieldH int, width, height float32) *Viewport {
	v := &Viewport{field: physics.Pt(fieldW, fieldH)}
	v.Resize(width, height)
	return v
}

// Resize recomputes the scale and letterbox offset for a new window size.
func (v *Viewport) Resize(width, height float32) {
	v.window = engo.Point{X: max(width, 1), Y: max(height, 1)}
	sx := v.window.X / float32(v.field.X)
	sy := v.window.Y / float32(v.field.Y)
	v.scale = min(sx, sy)
	v.offset = engo.Point{
		X: (v.window.X - float32(v.field.X)*v.scale) / 2,
		Y: (v.window.Y - float32(v.field.Y)*v.scale) / 2,
	}
}

// Scale returns window pixels per field unit.
func (v *Viewport) Scale() float32 {
	return v.scale
}

// WorldToScreen converts a field position to window pixels.
func (v *Viewport) WorldToScreen(pos physics.Vector2D) engo.Point {
	return engo.Point{
		X: float32(pos.X)*v.scale + v.offset.X,
		Y: float32(pos.Y)*v.scale + v.offset.Y,
	}
}

// ScreenToWorld converts window pixels back to a field position.
func (v *Viewport) ScreenToWorld(x, y float32) physics.Vector2D {
	return physics.Vector2D{
		X: float64((x - v.offset.X) / v.scale),
		Y: float64((y - v.offset.Y) / v.scale),
	}
}

// Box returns the top-left corner and side of a square of the given field
// size centred on pos.
func (v *Viewport) Box(pos physics.Vector2D, size float64) (engo.Point, float32) {
	centre := v.WorldToScreen(pos)
	side := float32(size) * v.scale
	return engo.Point{X: centre.X - side/2, Y: centre.Y - side/2}, side
}
