package world

// Grid is a fixed-size, row-major tile map. All carving goes through Get and
// Set so bounds are enforced in one place.
type Grid struct {
	width  int
	height int
	cells  []TileType
}

// NewGrid creates a grid filled with TileEmpty.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]TileType, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds returns true if (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the tile at the given position, or TileEmpty outside the grid.
func (g *Grid) Get(x, y int) TileType {
	if !g.InBounds(x, y) {
		return TileEmpty
	}
	return g.cells[y*g.width+x]
}

// At is Get for a Vec2.
func (g *Grid) At(p Vec2) TileType {
	return g.Get(p.X, p.Y)
}

// Set writes a tile and reports whether the position was inside the grid.
// Writes outside the grid and unknown tile codes are dropped.
func (g *Grid) Set(x, y int, t TileType) bool {
	if !g.InBounds(x, y) || !t.Valid() {
		return false
	}
	g.cells[y*g.width+x] = t
	return true
}

// Fill sets every cell to t.
func (g *Grid) Fill(t TileType) {
	if !t.Valid() {
		return
	}
	for i := range g.cells {
		g.cells[i] = t
	}
}

// Count returns how many cells hold t.
func (g *Grid) Count(t TileType) int {
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]TileType, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// LoadRows replaces the grid contents with rows of tile codes, as used for
// hand-written maps. Rows shorter than the grid leave the remaining cells
// empty; anything past the grid edge is clipped.
func (g *Grid) LoadRows(rows [][]TileType) {
	g.Fill(TileEmpty)
	for y, row := range rows {
		for x, t := range row {
			g.Set(x, y, t)
		}
	}
}
