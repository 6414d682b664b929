// pkg/physics/quadtree.go
package physics

// Rect is an axis-aligned rectangle described by its centre and size.
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// Contains reports whether point lies inside the rectangle. The left and top
// edges are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !(other.Center.X-other.Width/2 > r.Center.X+r.Width/2 ||
		other.Center.X+other.Width/2 < r.Center.X-r.Width/2 ||
		other.Center.Y-other.Height/2 > r.Center.Y+r.Height/2 ||
		other.Center.Y+other.Height/2 < r.Center.Y-r.Height/2)
}

// FieldRect returns the rectangle covering [0,width) x [0,height).
func FieldRect(width, height float64) Rect {
	return Rect{Center: Vector2D{X: width / 2, Y: height / 2}, Width: width, Height: height}
}

// minNodeSize stops subdivision so coincident points cannot recurse forever.
const minNodeSize = 1.0

// QuadTree is a point-region quadtree used as a collision broadphase.
// Points outside the root boundary are rejected by Insert.
type QuadTree[T any] struct {
	Boundary Rect
	Capacity int

	points   []Vector2D
	items    []T
	children *[4]*QuadTree[T]
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree[T any](boundary Rect, capacity int) *QuadTree[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree[T]{
		Boundary: boundary,
		Capacity: capacity,
		points:   make([]Vector2D, 0, capacity),
		items:    make([]T, 0, capacity),
	}
}

// Insert stores item at point. It returns false when point is outside the tree.
func (qt *QuadTree[T]) Insert(point Vector2D, item T) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if qt.children == nil && (len(qt.points) < qt.Capacity || qt.Boundary.Width <= minNodeSize) {
		qt.points = append(qt.points, point)
		qt.items = append(qt.items, item)
		return true
	}

	if qt.children == nil {
		qt.subdivide()
	}

	for _, child := range qt.children {
		if child.Insert(point, item) {
			return true
		}
	}
	return false
}

// subdivide splits the node into four quadrants.
func (qt *QuadTree[T]) subdivide() {
	x, y := qt.Boundary.Center.X, qt.Boundary.Center.Y
	w, h := qt.Boundary.Width/2, qt.Boundary.Height/2

	qt.children = &[4]*QuadTree[T]{
		NewQuadTree[T](Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity),
		NewQuadTree[T](Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity),
		NewQuadTree[T](Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity),
		NewQuadTree[T](Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity),
	}
}

// Query returns every item whose point lies inside area.
func (qt *QuadTree[T]) Query(area Rect) []T {
	var found []T
	qt.query(area, &found)
	return found
}

func (qt *QuadTree[T]) query(area Rect, found *[]T) {
	if !qt.Boundary.Intersects(area) {
		return
	}
	for i, point := range qt.points {
		if area.Contains(point) {
			*found = append(*found, qt.items[i])
		}
	}
	if qt.children == nil {
		return
	}
	for _, child := range qt.children {
		child.query(area, found)
	}
}

// Len returns the number of stored items.
func (qt *QuadTree[T]) Len() int {
	n := len(qt.points)
	if qt.children != nil {
		for _, child := range qt.children {
			n += child.Len()
		}
	}
	return n
}

// Clear empties the tree while keeping its boundary.
func (qt *QuadTree[T]) Clear() {
	qt.points = qt.points[:0]
	qt.items = qt.items[:0]
	qt.children = nil
}
