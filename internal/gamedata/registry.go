package gamedata

import (
	"fmt"

	"github.com/samdwyer/cavern/internal/world"
)

// TileRegistry maps every tile code to its definition.
type TileRegistry struct {
	defs [world.TileCount]TileDef
}

// NewTileRegistry creates a registry from loaded tile definitions. Every
// world tile code must be defined exactly once.
func NewTileRegistry(tiles []TileDef) (*TileRegistry, error) {
	r := &TileRegistry{}
	seen := make(map[world.TileType]bool, len(tiles))
	for _, t := range tiles {
		if !t.Code.Valid() {
			return nil, fmt.Errorf("tile %q: unknown code %d", t.ID, t.Code)
		}
		if seen[t.Code] {
			return nil, fmt.Errorf("tile %q: duplicate code %d", t.ID, t.Code)
		}
		if !t.Action.Valid() {
			return nil, fmt.Errorf("tile %q: unknown action %q", t.ID, t.Action)
		}
		seen[t.Code] = true
		r.defs[t.Code] = t
	}
	for code := 0; code < world.TileCount; code++ {
		if !seen[world.TileType(code)] {
			return nil, fmt.Errorf("no definition for tile %s (%d)", world.TileType(code), code)
		}
	}
	return r, nil
}

// LoadTileRegistry loads and creates a registry from the embedded tiles.json.
func LoadTileRegistry() (*TileRegistry, error) {
	tiles, err := LoadTiles()
	if err != nil {
		return nil, err
	}
	return NewTileRegistry(tiles)
}

// Get returns the definition for a tile code. Unknown codes get the empty
// tile's definition, matching what the grid returns off the map.
func (r *TileRegistry) Get(t world.TileType) *TileDef {
	if !t.Valid() {
		t = world.TileEmpty
	}
	return &r.defs[t]
}

// Collidable reports whether the tile blocks movement.
func (r *TileRegistry) Collidable(t world.TileType) bool {
	return r.Get(t).Collidable
}

// ActionFor returns the tile's bump/interact action.
func (r *TileRegistry) ActionFor(t world.TileType) Action {
	return r.Get(t).Action
}
