package gamedata

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cavern/internal/world"
)

// Action is what happens when the player runs into or interacts with a tile.
type Action string

const (
	ActionNone      Action = ""
	ActionOpenDoor  Action = "open_door"
	ActionCloseDoor Action = "close_door"
	ActionDescend   Action = "descend"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionNone, ActionOpenDoor, ActionCloseDoor, ActionDescend:
		return true
	default:
		return false
	}
}

// TileDef defines how a tile code looks and behaves, loaded from JSON.
type TileDef struct {
	Code       world.TileType `json:"code"`       // Grid code this definition applies to
	ID         string         `json:"id"`         // Unique identifier (e.g., "door_closed")
	Name       string         `json:"name"`       // Display name (e.g., "Closed door")
	Glyph      string         `json:"glyph"`      // Single character for rendering (e.g., "+")
	Color      string         `json:"color"`      // Hex color code (e.g., "#B5651D")
	Collidable bool           `json:"collidable"` // Blocks movement; bumping runs Action instead
	Action     Action         `json:"action,omitempty"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (t *TileDef) GlyphRune() rune {
	if len(t.Glyph) == 0 {
		return '?'
	}
	return []rune(t.Glyph)[0]
}

// TCellColor returns the color as a tcell.Color.
func (t *TileDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(t.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// TilesFile represents the structure of tiles.json.
type TilesFile struct {
	Tiles []TileDef `json:"tiles"`
}

// LoadTiles loads tile definitions from the embedded tiles.json file.
func LoadTiles() ([]TileDef, error) {
	file, err := Load[TilesFile]("tiles.json")
	if err != nil {
		return nil, err
	}
	return file.Tiles, nil
}

// StarterMap is a hand-drawn first level.
type StarterMap struct {
	Spawn struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"spawn"`
	Rows [][]int `json:"rows"`
}

// Tiles converts the rows of raw codes to tile types.
func (m *StarterMap) Tiles() [][]world.TileType {
	rows := make([][]world.TileType, len(m.Rows))
	for y, row := range m.Rows {
		rows[y] = make([]world.TileType, len(row))
		for x, code := range row {
			rows[y][x] = world.TileType(code)
		}
	}
	return rows
}

// SpawnPoint returns the spawn as a grid coordinate.
func (m *StarterMap) SpawnPoint() world.Vec2 {
	return world.Vec2{X: m.Spawn.X, Y: m.Spawn.Y}
}

// LoadStarterMap loads the embedded starter_map.json.
func LoadStarterMap() (*StarterMap, error) {
	m, err := Load[StarterMap]("starter_map.json")
	if err != nil {
		return nil, err
	}
	return &m, nil
}
