package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// fixedPlacer returns the same rooms every time.
type fixedPlacer []Rect

func (p fixedPlacer) PlaceRooms(int, int) []Rect {
	return append([]Rect(nil), p...)
}

func newTestGenerator(t *testing.T, cfg GenConfig, rng Rand) *Generator {
	t.Helper()
	gen, err := NewGenerator(cfg, rng)
	if err != nil {
		t.Fatalf("NewGenerator() error: %v", err)
	}
	return gen
}

func TestPlaceRoomsKeepsMargin(t *testing.T) {
	cfg := DefaultGenConfig()

	for seed := int64(0); seed < 1000; seed++ {
		placer := NewRandomPlacer(cfg, rand.New(rand.NewSource(seed)))
		rooms := placer.PlaceRooms(cfg.Width, cfg.Height)

		if len(rooms) != cfg.Rooms {
			t.Fatalf("seed=%d: got %d rooms, want %d", seed, len(rooms), cfg.Rooms)
		}
		for i, r := range rooms {
			if !r.HasMargin(cfg.Width, cfg.Height) {
				t.Fatalf("seed=%d: room %d %+v breaks the wall margin", seed, i, r)
			}
			if r.W < cfg.MinRoomW || r.W >= cfg.MaxRoomW || r.H < cfg.MinRoomH || r.H >= cfg.MaxRoomH {
				t.Fatalf("seed=%d: room %d %+v outside size range", seed, i, r)
			}
		}
	}
}

func TestPlaceRoomsCapsSizeToGrid(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Width, cfg.Height = 8, 5

	for seed := int64(0); seed < 200; seed++ {
		placer := NewRandomPlacer(cfg, rand.New(rand.NewSource(seed)))
		for _, r := range placer.PlaceRooms(cfg.Width, cfg.Height) {
			if !r.HasMargin(cfg.Width, cfg.Height) {
				t.Fatalf("seed=%d: room %+v breaks the wall margin of an 8x5 grid", seed, r)
			}
		}
	}
}

func TestGenerateConnectsSpawnToStairs(t *testing.T) {
	for _, anchor := range []Anchor{AnchorOrigin, AnchorCenter} {
		cfg := DefaultGenConfig()
		cfg.Anchor = anchor

		for seed := int64(0); seed < 300; seed++ {
			gen := newTestGenerator(t, cfg, rand.New(rand.NewSource(seed)))
			grid := NewGrid(cfg.Width, cfg.Height)

			level, err := gen.Generate(context.Background(), grid)
			if err != nil {
				t.Fatalf("anchor=%s seed=%d: Generate() error: %v", anchor, seed, err)
			}

			if len(level.Rooms) != cfg.Rooms {
				t.Fatalf("anchor=%s seed=%d: %d rooms, want %d", anchor, seed, len(level.Rooms), cfg.Rooms)
			}
			if len(level.Tunnels) != cfg.Rooms {
				t.Errorf("anchor=%s seed=%d: %d tunnels, want %d", anchor, seed, len(level.Tunnels), cfg.Rooms)
			}

			reachable := Reachable(grid, level.Spawn)
			if !reachable.Has(level.Stairs) {
				t.Fatalf("anchor=%s seed=%d: stairs %v unreachable from spawn %v", anchor, seed, level.Stairs, level.Spawn)
			}
			for i, r := range level.Rooms {
				if !reachable.Has(r.Origin()) {
					t.Errorf("anchor=%s seed=%d: room %d unreachable", anchor, seed, i)
				}
			}

			if got := grid.Count(TileStairsDown); got != 1 {
				t.Errorf("anchor=%s seed=%d: %d staircases, want 1", anchor, seed, got)
			}
			if !level.Rooms[0].Contains(level.Spawn) {
				t.Errorf("anchor=%s seed=%d: spawn %v outside first room", anchor, seed, level.Spawn)
			}
		}
	}
}

func TestGenerateSingleRoom(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Rooms = 1
	cfg.MinRoomW, cfg.MaxRoomW = 4, 4
	cfg.MinRoomH, cfg.MaxRoomH = 2, 2

	gen := newTestGenerator(t, cfg, rand.New(rand.NewSource(5)))
	grid := NewGrid(cfg.Width, cfg.Height)
	level, err := gen.Generate(context.Background(), grid)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if len(level.Rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(level.Rooms))
	}
	room := level.Rooms[0]
	if room.W != 4 || room.H != 2 {
		t.Errorf("room size = %dx%d, want 4x2", room.W, room.H)
	}
	if len(level.Tunnels) != 0 {
		t.Errorf("got %d tunnels, want 0", len(level.Tunnels))
	}
	if grid.Count(TileCorridor) != 0 || grid.Count(TileDoorClosed) != 0 {
		t.Error("single room level should have no corridors or doors")
	}
	if !room.Contains(level.Spawn) || !room.Contains(level.Stairs) {
		t.Errorf("spawn %v and stairs %v should both be in %+v", level.Spawn, level.Stairs, room)
	}
	if got := grid.Count(TileFloor); got != 7 {
		t.Errorf("Count(floor) = %d, want 7", got)
	}
	if walls := grid.Count(TileWallHorizontal) + grid.Count(TileWallVertical); walls != 16 {
		t.Errorf("wall count = %d, want 16", walls)
	}
}

func TestGenerateFixedRoomsHorizontal(t *testing.T) {
	a := Rect{X: 2, Y: 5, W: 4, H: 3}
	b := Rect{X: 20, Y: 5, W: 4, H: 3}

	gen := newTestGenerator(t, DefaultGenConfig(), noRand{t})
	gen.SetPlacer(fixedPlacer{a, b})
	grid := NewGrid(DefaultWidth, DefaultHeight)

	level, err := gen.Generate(context.Background(), grid)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// The first tunnel punches a door in a's right wall and runs into b
	// before b's walls exist, so b's border is left open.
	if got := grid.Get(6, 5); got != TileDoorClosed {
		t.Errorf("a's right wall at (6,5) = %s, want door_closed", got)
	}
	for x := 7; x <= 19; x++ {
		if got := grid.Get(x, 5); got != TileCorridor {
			t.Errorf("(%d,5) = %s, want corridor", x, got)
		}
	}
	if got := grid.Get(19, 6); got != TileWallVertical {
		t.Errorf("b's left wall at (19,6) = %s, want wall_vertical", got)
	}
	if got := grid.At(b.Origin()); got != TileFloor {
		t.Errorf("b origin = %s, want floor", got)
	}

	if level.Spawn != (Vec2{X: 3, Y: 6}) || level.Stairs != (Vec2{X: 21, Y: 6}) {
		t.Errorf("spawn/stairs = %v/%v, want (3,6)/(21,6)", level.Spawn, level.Stairs)
	}
	if len(level.Tunnels) != 2 || level.Tunnels[0].Doors != 1 || level.Tunnels[1].Doors != 0 {
		t.Errorf("unexpected tunnel stats: %+v", level.Tunnels)
	}
	if !Connected(grid, a.Origin(), b.Origin()) {
		t.Error("rooms are not connected")
	}
}

func TestGenerateFixedRoomsVertical(t *testing.T) {
	a := Rect{X: 5, Y: 2, W: 4, H: 3}
	b := Rect{X: 6, Y: 15, W: 4, H: 3}

	gen := newTestGenerator(t, DefaultGenConfig(), noRand{t})
	gen.SetPlacer(fixedPlacer{a, b})
	grid := NewGrid(DefaultWidth, DefaultHeight)

	if _, err := gen.Generate(context.Background(), grid); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// One step right lines the walk up with b's origin column.
	if got := grid.Get(6, 5); got != TileDoorClosed {
		t.Errorf("a's bottom wall at (6,5) = %s, want door_closed", got)
	}
	for y := 6; y <= 14; y++ {
		if got := grid.Get(6, y); got != TileCorridor {
			t.Errorf("(6,%d) = %s, want corridor", y, got)
		}
	}
	if got := grid.Get(7, 14); got != TileWallHorizontal {
		t.Errorf("b's top wall at (7,14) = %s, want wall_horizontal", got)
	}
}

func TestGenerateRejectsRoomsWithoutMargin(t *testing.T) {
	gen := newTestGenerator(t, DefaultGenConfig(), rand.New(rand.NewSource(1)))
	gen.SetPlacer(fixedPlacer{{X: 0, Y: 3, W: 4, H: 3}})

	_, err := gen.Generate(context.Background(), NewGrid(DefaultWidth, DefaultHeight))
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Generate() error = %v, want ErrOutOfBounds", err)
	}

	gen.SetPlacer(fixedPlacer{})
	if _, err := gen.Generate(context.Background(), NewGrid(DefaultWidth, DefaultHeight)); err == nil {
		t.Error("Generate() with no rooms should fail")
	}
}

func TestGenerateReplacesPreviousLevel(t *testing.T) {
	gen := newTestGenerator(t, DefaultGenConfig(), rand.New(rand.NewSource(3)))
	grid := NewGrid(DefaultWidth, DefaultHeight)
	grid.Fill(TileStairsDown)

	if _, err := gen.Generate(context.Background(), grid); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if got := grid.Count(TileStairsDown); got != 1 {
		t.Errorf("%d staircases after regenerating, want 1", got)
	}
	if grid.Count(TileEmpty) == 0 {
		t.Error("regenerated level has no empty cells left")
	}
}

func TestGenerateReproducibility(t *testing.T) {
	seed := int64(12345)
	cfg := DefaultGenConfig()

	g1 := NewGrid(cfg.Width, cfg.Height)
	g2 := NewGrid(cfg.Width, cfg.Height)
	l1, err1 := newTestGenerator(t, cfg, rand.New(rand.NewSource(seed))).Generate(context.Background(), g1)
	l2, err2 := newTestGenerator(t, cfg, rand.New(rand.NewSource(seed))).Generate(context.Background(), g2)
	if err1 != nil || err2 != nil {
		t.Fatalf("Generate() errors: %v, %v", err1, err2)
	}

	for i := range l1.Rooms {
		if l1.Rooms[i] != l2.Rooms[i] {
			t.Errorf("Room %d mismatch: %+v != %+v", i, l1.Rooms[i], l2.Rooms[i])
		}
	}
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if g1.Get(x, y) != g2.Get(x, y) {
				t.Errorf("Tile mismatch at (%d,%d): %s != %s", x, y, g1.Get(x, y), g2.Get(x, y))
			}
		}
	}

	g3 := NewGrid(cfg.Width, cfg.Height)
	l3, err := newTestGenerator(t, cfg, rand.New(rand.NewSource(54321))).Generate(context.Background(), g3)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	identical := true
	for i := range l1.Rooms {
		if l1.Rooms[i] != l3.Rooms[i] {
			identical = false
			break
		}
	}
	if identical {
		t.Error("Levels with different seeds should not be identical")
	}
}

func TestGenConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*GenConfig)
		field  string
	}{
		{"defaults", func(*GenConfig) {}, ""},
		{"fixed size", func(c *GenConfig) { c.MinRoomW, c.MaxRoomW = 4, 4 }, ""},
		{"no rooms", func(c *GenConfig) { c.Rooms = 0 }, "Rooms"},
		{"tiny width", func(c *GenConfig) { c.MinRoomW = 1 }, "MinRoomW"},
		{"inverted height", func(c *GenConfig) { c.MinRoomH, c.MaxRoomH = 5, 3 }, "MaxRoomH"},
		{"grid too narrow", func(c *GenConfig) { c.Width = 5 }, "MinRoomW"},
		{"wall corridor", func(c *GenConfig) { c.Corridor = TileWallVertical }, "Corridor"},
		{"bad anchor", func(c *GenConfig) { c.Anchor = "corner" }, "Anchor"},
	}

	for _, tt := range tests {
		cfg := DefaultGenConfig()
		tt.modify(&cfg)
		err := cfg.Validate()

		if tt.field == "" {
			if err != nil {
				t.Errorf("%s: unexpected error: %v", tt.name, err)
			}
			continue
		}
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%s: error = %v, want *ConfigError", tt.name, err)
			continue
		}
		if cfgErr.Field != tt.field {
			t.Errorf("%s: Field = %q, want %q", tt.name, cfgErr.Field, tt.field)
		}
	}
}

func TestGenerateRecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	gen := newTestGenerator(t, DefaultGenConfig(), rand.New(rand.NewSource(8)))
	if _, err := gen.Generate(context.Background(), NewGrid(DefaultWidth, DefaultHeight)); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 || spans[0].Name() != "level.generate" {
		t.Fatalf("recorded spans = %v, want one level.generate", spans)
	}

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if got := attrs["level.room_count"].AsInt64(); got != DefaultRoomsPerLevel {
		t.Errorf("level.room_count = %d, want %d", got, DefaultRoomsPerLevel)
	}
	if !attrs["level.connected"].AsBool() {
		t.Error("level.connected = false, want true")
	}
}

func TestGenerateRejectsGridTooSmall(t *testing.T) {
	gen := newTestGenerator(t, DefaultGenConfig(), rand.New(rand.NewSource(1)))

	_, err := gen.Generate(context.Background(), NewGrid(5, 30))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Generate() error = %v, want *ConfigError", err)
	}
}
