// pkg/physics/grid.go
package physics

// SnapAxis rounds v to a multiple of cell. Remainders below half a cell
// round down and the rest round up.
func SnapAxis(v, cell int) int {
	if cell <= 0 {
		return v
	}
	mod := v % cell
	if mod < cell/2 {
		return v - mod
	}
	return v + cell - mod
}

// SnapToGrid snaps both components of p onto the cell lattice.
func SnapToGrid(p Vector2D, cell int) Vector2D {
	x, y := p.Ints()
	return Pt(SnapAxis(x, cell), SnapAxis(y, cell))
}

// CellOf returns the column and row of the lattice point p snaps to.
func CellOf(p Vector2D, cell int) (col, row int) {
	s := SnapToGrid(p, cell)
	x, y := s.Ints()
	return x / cell, y / cell
}
