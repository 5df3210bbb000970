package world

import "fmt"

// Rand is the subset of *math/rand.Rand the generator draws from.
type Rand interface {
	Intn(n int) int
}

type axis int

const (
	axisHorizontal axis = iota
	axisVertical
)

// TunnelStats summarizes one carved corridor.
type TunnelStats struct {
	From, To Vec2
	Moves    int // Cells stepped, including the opening step right
	Carved   int // Cells set to the corridor tile
	Doors    int // Walls converted to closed doors
}

// CarveTunnel walks from start to end with 4-directional steps, marking every
// cell it leaves. The walk opens with one unconditional step right, then runs
// along the current axis, switching axis once a coordinate lines up with end
// or, otherwise, on a 1-in-6 draw for each axis. The result is long straight
// runs with occasional turns.
//
// Marking a wall always punches a closed door. Any other cell receives tile,
// unless replaceEmptyOnly is set and the cell is not empty. The end cell is
// never written; the caller fills it, usually with a room's floor.
func CarveTunnel(g *Grid, rng Rand, start, end Vec2, tile TileType, replaceEmptyOnly bool) (TunnelStats, error) {
	stats := TunnelStats{From: start, To: end}
	if !g.InBounds(start.X, start.Y) || !g.InBounds(end.X, end.Y) {
		return stats, fmt.Errorf("tunnel %v -> %v in %dx%d grid: %w", start, end, g.Width(), g.Height(), ErrOutOfBounds)
	}

	mark := func(p Vec2) {
		cur := g.At(p)
		switch {
		case cur.IsWall():
			if g.Set(p.X, p.Y, TileDoorClosed) {
				stats.Doors++
			}
		case !replaceEmptyOnly || cur == TileEmpty:
			if g.Set(p.X, p.Y, tile) {
				stats.Carved++
			}
		}
	}

	cur := start
	mark(cur)
	cur.X++
	stats.Moves++

	dir := axisHorizontal
	for cur != end {
		switch dir {
		case axisHorizontal:
			if cur.X != end.X {
				mark(cur)
				cur.X += sign(end.X - cur.X)
				stats.Moves++
			}
		case axisVertical:
			if cur.Y != end.Y {
				mark(cur)
				cur.Y += sign(end.Y - cur.Y)
				stats.Moves++
			}
		}

		switch {
		case cur == end:
		case cur.Y == end.Y:
			dir = axisHorizontal
		case cur.X == end.X:
			dir = axisVertical
		default:
			switch rng.Intn(6) {
			case 0:
				dir = axisHorizontal
			case 1:
				dir = axisVertical
			}
		}
	}

	return stats, nil
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
