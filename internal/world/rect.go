package world

// Vec2 is an integer grid coordinate.
type Vec2 struct {
	X, Y int
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Manhattan returns the 4-directional distance between v and o.
func (v Vec2) Manhattan(o Vec2) int {
	return abs(v.X-o.X) + abs(v.Y-o.Y)
}

// Rect is the floor footprint of a room. Walls sit one cell outside it.
type Rect struct {
	X, Y int // Top-left floor cell
	W, H int // Dimensions of the floor area
}

// Origin returns the top-left floor cell.
func (r Rect) Origin() Vec2 {
	return Vec2{X: r.X, Y: r.Y}
}

// Center returns the center floor cell of the room.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains returns true if the given point is on the room's floor.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// HasMargin reports whether the room and its 1-cell wall border fit inside
// a width x height grid.
func (r Rect) HasMargin(width, height int) bool {
	return r.W > 0 && r.H > 0 &&
		r.X >= 1 && r.X+r.W < width &&
		r.Y >= 1 && r.Y+r.H < height
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
