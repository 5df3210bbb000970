package world

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/cavern/internal/telemetry"
)

// RoomPlacer decides where the rooms of a level go. The order of the
// returned rooms is the order they are carved and connected in.
type RoomPlacer interface {
	PlaceRooms(width, height int) []Rect
}

// RandomPlacer drops rooms of random size at random positions. Rooms may
// overlap; carving order settles what ends up on the map.
type RandomPlacer struct {
	cfg GenConfig
	rng Rand
}

// NewRandomPlacer creates a placer drawing sizes from cfg.
func NewRandomPlacer(cfg GenConfig, rng Rand) *RandomPlacer {
	return &RandomPlacer{cfg: cfg, rng: rng}
}

// PlaceRooms returns cfg.Rooms rooms, each leaving at least one cell of
// margin to every grid edge for its walls.
func (p *RandomPlacer) PlaceRooms(width, height int) []Rect {
	rooms := make([]Rect, 0, p.cfg.Rooms)
	for i := 0; i < p.cfg.Rooms; i++ {
		w := p.drawSize(p.cfg.MinRoomW, p.cfg.MaxRoomW, width)
		h := p.drawSize(p.cfg.MinRoomH, p.cfg.MaxRoomH, height)
		rooms = append(rooms, Rect{
			X: 1 + p.rng.Intn(width-w-1),
			Y: 1 + p.rng.Intn(height-h-1),
			W: w,
			H: h,
		})
	}
	return rooms
}

// drawSize picks a size in [lo, hi), capped at grid-2 so the room keeps its
// wall margin. lo must already fit (see GenConfig.Validate).
func (p *RandomPlacer) drawSize(lo, hi, grid int) int {
	if hi > grid-1 {
		hi = grid - 1
	}
	if hi <= lo {
		return lo
	}
	return lo + p.rng.Intn(hi-lo)
}

// Level is the outcome of one Generate call.
type Level struct {
	Rooms   []Rect // In carve and connection order
	Spawn   Vec2   // Player start, inside the first room
	Stairs  Vec2   // Stairs down, inside the last room
	Tunnels []TunnelStats
}

// Generator builds levels into a Grid.
type Generator struct {
	cfg    GenConfig
	rng    Rand
	placer RoomPlacer
}

// NewGenerator validates cfg and creates a generator drawing from rng.
func NewGenerator(cfg GenConfig, rng Rand) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Anchor == "" {
		cfg.Anchor = AnchorOrigin
	}
	return &Generator{
		cfg:    cfg,
		rng:    rng,
		placer: NewRandomPlacer(cfg, rng),
	}, nil
}

// SetPlacer replaces the room placer, e.g. with fixed rooms in tests.
func (g *Generator) SetPlacer(p RoomPlacer) {
	g.placer = p
}

// Generate wipes grid and carves a fresh level into it: rooms with walls,
// a corridor from each room to the next, one more from the first room to
// the last, and stairs down in the last room.
func (g *Generator) Generate(ctx context.Context, grid *Grid) (Level, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "level.generate")
	defer span.End()

	startTime := time.Now()

	level, err := g.generate(grid)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Level{}, err
	}

	doors := 0
	for _, t := range level.Tunnels {
		doors += t.Doors
	}
	span.SetAttributes(
		attribute.Int("level.width", grid.Width()),
		attribute.Int("level.height", grid.Height()),
		attribute.Int("level.room_count", len(level.Rooms)),
		attribute.Int("level.tunnel_count", len(level.Tunnels)),
		attribute.Int("level.door_count", doors),
		attribute.Bool("level.connected", Connected(grid, level.Spawn, level.Stairs)),
		attribute.String("level.anchor", string(g.cfg.Anchor)),
		attribute.Int64("level.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return level, nil
}

func (g *Generator) generate(grid *Grid) (Level, error) {
	if err := checkRange("RoomW", g.cfg.MinRoomW, g.cfg.MaxRoomW, grid.Width()); err != nil {
		return Level{}, err
	}
	if err := checkRange("RoomH", g.cfg.MinRoomH, g.cfg.MaxRoomH, grid.Height()); err != nil {
		return Level{}, err
	}

	grid.Fill(TileEmpty)

	rooms := g.placer.PlaceRooms(grid.Width(), grid.Height())
	if len(rooms) == 0 {
		return Level{}, errors.New("room placer returned no rooms")
	}
	for i, r := range rooms {
		if !r.HasMargin(grid.Width(), grid.Height()) {
			return Level{}, fmt.Errorf("room %d %+v: %w", i, r, ErrOutOfBounds)
		}
	}

	first, last := rooms[0], rooms[len(rooms)-1]
	level := Level{
		Rooms:  rooms,
		Spawn:  first.Origin().Add(Vec2{X: 1, Y: 1}),
		Stairs: last.Origin().Add(Vec2{X: 1, Y: 1}),
	}

	for i, r := range rooms {
		if err := CarveWalls(grid, r); err != nil {
			return Level{}, err
		}
		CarveFloor(grid, r, TileFloor)

		if i < len(rooms)-1 {
			if err := g.connect(grid, &level, r, rooms[i+1]); err != nil {
				return Level{}, err
			}
		}
	}

	// A single room has nothing to connect.
	if len(rooms) > 1 {
		if err := g.connect(grid, &level, first, last); err != nil {
			return Level{}, err
		}
	}

	grid.Set(level.Stairs.X, level.Stairs.Y, TileStairsDown)
	return level, nil
}

// connect carves a corridor between the anchors of two rooms.
func (g *Generator) connect(grid *Grid, level *Level, from, to Rect) error {
	stats, err := CarveTunnel(grid, g.rng, g.cfg.Anchor.Point(from), g.cfg.Anchor.Point(to), g.cfg.Corridor, true)
	if err != nil {
		return fmt.Errorf("connect rooms: %w", err)
	}
	level.Tunnels = append(level.Tunnels, stats)
	return nil
}
