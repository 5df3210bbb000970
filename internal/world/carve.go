package world

import "fmt"

// CarveFloor sets every cell of the room's footprint to tile, overwriting
// whatever was there. Cells outside the grid are skipped.
func CarveFloor(g *Grid, r Rect, tile TileType) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			g.Set(x, y, tile)
		}
	}
}

// CarveWalls draws the 1-cell border around the room. Only empty cells are
// written, so floors and corridors that already cross the border stay open.
func CarveWalls(g *Grid, r Rect) error {
	if !r.HasMargin(g.Width(), g.Height()) {
		return fmt.Errorf("carve walls for room %+v in %dx%d grid: %w", r, g.Width(), g.Height(), ErrOutOfBounds)
	}

	setIfEmpty := func(x, y int, t TileType) {
		if g.Get(x, y) == TileEmpty {
			g.Set(x, y, t)
		}
	}

	for x := r.X - 1; x <= r.X+r.W; x++ {
		setIfEmpty(x, r.Y-1, TileWallHorizontal)
		setIfEmpty(x, r.Y+r.H, TileWallHorizontal)
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		setIfEmpty(r.X-1, y, TileWallVertical)
		setIfEmpty(r.X+r.W, y, TileWallVertical)
	}
	return nil
}
