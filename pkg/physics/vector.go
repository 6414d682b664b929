// pkg/physics/vector.go
package physics

import "math"

// Vector2D is a position or displacement on the lawn, in field units.
// The field origin is the top-left corner with y growing downwards.
type Vector2D struct {
	X float64
	Y float64
}

// Pt is shorthand for building a Vector2D from integer field coordinates.
func Pt(x, y int) Vector2D {
	return Vector2D{X: float64(x), Y: float64(y)}
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns magnitude squared
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the Euclidean distance between two points
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Truncate drops the fractional part of both components, matching the
// integer pixel grid the simulation steps on.
func (v Vector2D) Truncate() Vector2D {
	return Vector2D{X: math.Trunc(v.X), Y: math.Trunc(v.Y)}
}

// Ints returns the truncated integer components.
func (v Vector2D) Ints() (int, int) {
	return int(v.X), int(v.Y)
}
