package world

import (
	"errors"
	"fmt"
)

const (
	// Default grid dimensions
	DefaultWidth  = 50
	DefaultHeight = 30

	// Room generation parameters
	DefaultRoomsPerLevel = 5
	DefaultMinRoomWidth  = 4
	DefaultMaxRoomWidth  = 10
	DefaultMinRoomHeight = 2
	DefaultMaxRoomHeight = 10
)

// ErrOutOfBounds is returned when a carve or tunnel would leave the grid.
var ErrOutOfBounds = errors.New("out of grid bounds")

// Anchor selects which cell of a room corridors start and end on.
type Anchor string

const (
	// AnchorOrigin routes corridors between rooms' top-left floor cells.
	AnchorOrigin Anchor = "origin"
	// AnchorCenter routes corridors between rooms' center cells.
	AnchorCenter Anchor = "center"
)

// ParseAnchor converts a config string to an Anchor. An empty string
// selects AnchorOrigin.
func ParseAnchor(s string) (Anchor, error) {
	switch Anchor(s) {
	case "", AnchorOrigin:
		return AnchorOrigin, nil
	case AnchorCenter:
		return AnchorCenter, nil
	default:
		return "", fmt.Errorf("unknown corridor anchor %q", s)
	}
}

// Point returns the anchor cell of r.
func (a Anchor) Point(r Rect) Vec2 {
	if a == AnchorCenter {
		return r.Center()
	}
	return r.Origin()
}

// GenConfig holds level generation options.
type GenConfig struct {
	Width  int // Grid columns
	Height int // Grid rows

	Rooms int // Rooms per level

	// Room floor sizes are drawn from [Min, Max). Min == Max pins the size.
	MinRoomW, MaxRoomW int
	MinRoomH, MaxRoomH int

	Corridor TileType // Tile written by tunnels
	Anchor   Anchor   // Where corridors attach to rooms
}

// DefaultGenConfig returns the stock level layout.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Rooms:    DefaultRoomsPerLevel,
		MinRoomW: DefaultMinRoomWidth,
		MaxRoomW: DefaultMaxRoomWidth,
		MinRoomH: DefaultMinRoomHeight,
		MaxRoomH: DefaultMaxRoomHeight,
		Corridor: TileCorridor,
		Anchor:   AnchorOrigin,
	}
}

// ConfigError describes a generation config that cannot produce a level.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid level config: %s: %s", e.Field, e.Reason)
}

// Validate checks that every room the config can describe fits the grid with
// its wall margin, and that the spawn and stairs cells land inside a room.
func (c GenConfig) Validate() error {
	if c.Rooms < 1 {
		return &ConfigError{Field: "Rooms", Reason: fmt.Sprintf("need at least 1, got %d", c.Rooms)}
	}
	if err := checkRange("RoomW", c.MinRoomW, c.MaxRoomW, c.Width); err != nil {
		return err
	}
	if err := checkRange("RoomH", c.MinRoomH, c.MaxRoomH, c.Height); err != nil {
		return err
	}
	if !c.Corridor.IsPassage() {
		return &ConfigError{Field: "Corridor", Reason: fmt.Sprintf("tile %s is not walkable", c.Corridor)}
	}
	if _, err := ParseAnchor(string(c.Anchor)); err != nil {
		return &ConfigError{Field: "Anchor", Reason: err.Error()}
	}
	return nil
}

// checkRange validates one room dimension against its grid dimension.
// Spawn and stairs sit at +1,+1 from the room origin, so a room must be at
// least 2 cells in each direction.
func checkRange(name string, lo, hi, grid int) error {
	switch {
	case lo < 2:
		return &ConfigError{Field: "Min" + name, Reason: fmt.Sprintf("must be at least 2, got %d", lo)}
	case hi < lo:
		return &ConfigError{Field: "Max" + name, Reason: fmt.Sprintf("%d is below minimum %d", hi, lo)}
	case lo > grid-2:
		return &ConfigError{Field: "Min" + name, Reason: fmt.Sprintf("%d does not fit a grid of %d with wall margin", lo, grid)}
	}
	return nil
}
