// pkg/physics/circle.go
package physics

// Circle is the bounding shape every simulated entity exposes for hit tests.
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides reports whether two circles overlap.
func (c Circle) Collides(other Circle) bool {
	return c.Overlaps(other, 0)
}

// Overlaps reports whether the centre distance is strictly below the sum of
// the radii adjusted by margin. A negative margin requires the circles to
// sink into each other before they count as touching.
func (c Circle) Overlaps(other Circle, margin float64) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius+margin
}

// ContainsPoint reports whether p lies strictly within the circle grown by slack.
func (c Circle) ContainsPoint(p Vector2D, slack float64) bool {
	return c.Center.Distance(p) < c.Radius+slack
}

// Bounds returns the axis-aligned square enclosing the circle grown by pad.
func (c Circle) Bounds(pad float64) Rect {
	side := 2 * (c.Radius + pad)
	return Rect{Center: c.Center, Width: side, Height: side}
}
