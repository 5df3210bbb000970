package world

// DefaultSightRadius is how far around the player cells get discovered.
const DefaultSightRadius = 2

// Fog tracks which cells the player has discovered on the current level.
type Fog struct {
	width, height int
	discovered    []bool
}

// NewFog creates a fog map with nothing discovered.
func NewFog(width, height int) *Fog {
	f := &Fog{}
	f.Reset(width, height)
	return f
}

// Reset forgets everything and resizes the map.
func (f *Fog) Reset(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f.width = width
	f.height = height
	f.discovered = make([]bool, width*height)
}

// DiscoverAround marks the square of cells within radius of pos as
// discovered. Cells outside the map are ignored.
func (f *Fog) DiscoverAround(pos Vec2, radius int) {
	for y := pos.Y - radius; y <= pos.Y+radius; y++ {
		for x := pos.X - radius; x <= pos.X+radius; x++ {
			if x >= 0 && x < f.width && y >= 0 && y < f.height {
				f.discovered[y*f.width+x] = true
			}
		}
	}
}

// IsDiscovered returns false for undiscovered and out-of-bounds cells.
func (f *Fog) IsDiscovered(x, y int) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false
	}
	return f.discovered[y*f.width+x]
}

// DiscoveredCount returns the number of discovered cells.
func (f *Fog) DiscoveredCount() int {
	n := 0
	for _, d := range f.discovered {
		if d {
			n++
		}
	}
	return n
}
