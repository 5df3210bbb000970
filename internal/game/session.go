package game

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavern/internal/entity"
	"github.com/samdwyer/cavern/internal/gamedata"
	"github.com/samdwyer/cavern/internal/telemetry"
	"github.com/samdwyer/cavern/internal/world"
)

// Session owns the state of one play-through: the current level, what the
// player has discovered of it, and where the player stands.
type Session struct {
	cfg     Config
	tiles   *gamedata.TileRegistry
	gen     *world.Generator
	grid    *world.Grid
	fog     *world.Fog
	player  *entity.Player
	level   world.Level
	depth   int
	message string
}

// NewSession creates a session whose levels are drawn from rng.
func NewSession(cfg Config, tiles *gamedata.TileRegistry, rng *rand.Rand) (*Session, error) {
	gen, err := world.NewGenerator(cfg.Level, rng)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:    cfg,
		tiles:  tiles,
		gen:    gen,
		grid:   world.NewGrid(cfg.Level.Width, cfg.Level.Height),
		fog:    world.NewFog(cfg.Level.Width, cfg.Level.Height),
		player: entity.NewPlayer(world.Vec2{}),
	}, nil
}

// Grid returns the current level's tiles.
func (s *Session) Grid() *world.Grid { return s.grid }

// Fog returns what the player has discovered.
func (s *Session) Fog() *world.Fog { return s.fog }

// Player returns the player's position.
func (s *Session) Player() world.Vec2 { return s.player.Pos }

// PlayerSymbol returns the glyph the player is drawn with.
func (s *Session) PlayerSymbol() rune { return s.player.Symbol }

// Depth returns how many levels deep the player is, starting at 1.
func (s *Session) Depth() int { return s.depth }

// Message returns the last event worth telling the player about.
func (s *Session) Message() string { return s.message }

// Level returns the layout of the current generated level.
func (s *Session) Level() world.Level { return s.level }

// Start puts the player on the first level.
func (s *Session) Start(ctx context.Context) error {
	if s.cfg.StarterMap {
		m, err := gamedata.LoadStarterMap()
		if err != nil {
			return err
		}
		s.LoadMap(m.Tiles(), m.SpawnPoint())
		return nil
	}
	return s.NewLevel(ctx)
}

// LoadMap replaces the level with a hand-drawn one.
func (s *Session) LoadMap(rows [][]world.TileType, spawn world.Vec2) {
	s.grid.LoadRows(rows)
	s.level = world.Level{Spawn: spawn}
	s.enterLevel(spawn)
}

// NewLevel generates a fresh level, discarding the old one and everything
// discovered on it.
func (s *Session) NewLevel(ctx context.Context) error {
	level, err := s.gen.Generate(ctx, s.grid)
	if err != nil {
		return fmt.Errorf("generate level %d: %w", s.depth+1, err)
	}
	s.level = level
	s.enterLevel(level.Spawn)
	return nil
}

func (s *Session) enterLevel(spawn world.Vec2) {
	s.depth++
	s.fog.Reset(s.grid.Width(), s.grid.Height())
	s.player.Place(spawn)
	s.discover()
}

func (s *Session) discover() {
	s.fog.DiscoverAround(s.player.Pos, s.cfg.SightRadius)
}

// TryMove moves the player by d. Running into a collidable tile triggers
// its action instead.
func (s *Session) TryMove(ctx context.Context, d world.Vec2) error {
	s.message = ""
	target := s.player.Pos.Add(d)

	if s.tiles.Collidable(s.grid.At(target)) {
		return s.Interact(ctx, target)
	}

	s.player.Move(d)
	s.discover()
	return nil
}

// Interact runs the action of the tile at pos.
func (s *Session) Interact(ctx context.Context, pos world.Vec2) error {
	s.message = ""
	def := s.tiles.Get(s.grid.At(pos))

	switch def.Action {
	case gamedata.ActionOpenDoor:
		s.grid.Set(pos.X, pos.Y, world.TileDoorOpen)
		s.message = "The door opens."
	case gamedata.ActionCloseDoor:
		if pos == s.player.Pos {
			s.message = "You are standing in the doorway."
			break
		}
		s.grid.Set(pos.X, pos.Y, world.TileDoorClosed)
		s.message = "The door closes."
	case gamedata.ActionDescend:
		if err := s.descend(ctx); err != nil {
			return err
		}
		s.message = fmt.Sprintf("You descend to depth %d.", s.depth)
	}

	s.discover()
	return nil
}

func (s *Session) descend(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.descend")
	defer span.End()

	span.SetAttributes(attribute.Int("game.depth_from", s.depth))
	if err := s.NewLevel(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(
		attribute.Int("game.depth_to", s.depth),
		attribute.Int("player.x", s.player.Pos.X),
		attribute.Int("player.y", s.player.Pos.Y),
	)
	return nil
}
