// Package world provides level generation and map management.
package world

// TileType is the code stored in each grid cell.
type TileType uint8

const (
	// TileEmpty is solid rock. It is also what out-of-bounds reads return.
	TileEmpty TileType = iota
	// TileFloor is the inside of a room.
	TileFloor
	// TileCorridor is a tunnel cell carved between rooms.
	TileCorridor
	// TileWallVertical is a left or right room border.
	TileWallVertical
	// TileWallHorizontal is a top or bottom room border.
	TileWallHorizontal
	// TileDoorClosed is punched where a corridor crosses a wall.
	TileDoorClosed
	// TileDoorOpen is a door the player has opened.
	TileDoorOpen
	// TileStairsDown leads to the next level.
	TileStairsDown
)

// TileCount is the number of valid tile codes.
const TileCount = int(TileStairsDown) + 1

// IsWall returns true for both wall orientations.
func (t TileType) IsWall() bool {
	return t == TileWallVertical || t == TileWallHorizontal
}

// IsDoor returns true for open and closed doors.
func (t TileType) IsDoor() bool {
	return t == TileDoorClosed || t == TileDoorOpen
}

// IsPassage returns true if the tile is part of the walkable network of a
// level: floor, corridor, doors (open or closed) and stairs.
func (t TileType) IsPassage() bool {
	switch t {
	case TileFloor, TileCorridor, TileDoorClosed, TileDoorOpen, TileStairsDown:
		return true
	default:
		return false
	}
}

// Valid reports whether t is a known tile code.
func (t TileType) Valid() bool {
	return int(t) < TileCount
}

// String returns a human-readable tile name.
func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileFloor:
		return "floor"
	case TileCorridor:
		return "corridor"
	case TileWallVertical:
		return "wall_vertical"
	case TileWallHorizontal:
		return "wall_horizontal"
	case TileDoorClosed:
		return "door_closed"
	case TileDoorOpen:
		return "door_open"
	case TileStairsDown:
		return "stairs_down"
	default:
		return "unknown"
	}
}
