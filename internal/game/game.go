package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavern/internal/gamedata"
	"github.com/samdwyer/cavern/internal/telemetry"
	"github.com/samdwyer/cavern/internal/ui"
	"github.com/samdwyer/cavern/internal/world"
)

// Game holds the entire game state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	state    State
	running  bool
}

// New creates a new game instance drawing to the terminal.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := newGame(cfg, screen)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

func newGame(cfg Config, screen *ui.Screen) (*Game, error) {
	tiles, err := gamedata.LoadTileRegistry()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg.Seed = seed

	session, err := NewSession(cfg, tiles, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen, tiles),
		session:  session,
		state:    StateExplore,
		running:  true,
	}, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	if err := g.init(ctx); err != nil {
		return err
	}

	for g.running {
		g.renderer.Render(g.session)

		// Handle input (blocking)
		if err := g.handleInput(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) init(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	if err := g.session.Start(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	spawn := g.session.Player()
	span.SetAttributes(
		attribute.Int64("game.seed", g.cfg.Seed),
		attribute.Bool("game.starter_map", g.cfg.StarterMap),
		attribute.Int("player.start_x", spawn.X),
		attribute.Int("player.start_y", spawn.Y),
	)
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) error {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized
		g.running = false
	}
	return nil
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	if g.state == StateChooseDirection {
		g.state = StateExplore
		if ev.Key() == tcell.KeyRune && ev.Rune() == '.' {
			return g.session.Interact(ctx, g.session.Player())
		}
		d, ok := direction(ev)
		if !ok {
			g.session.message = "Invalid direction."
			return nil
		}
		return g.session.Interact(ctx, g.session.Player().Add(d))
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return nil
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
			return nil
		case ' ':
			return g.session.Interact(ctx, g.session.Player())
		case 'a':
			g.state = StateChooseDirection
			g.session.message = "Interact: which direction (arrows, hjkl, . for here)?"
			return nil
		}
	}

	if d, ok := direction(ev); ok {
		return g.session.TryMove(ctx, d)
	}
	return nil
}

// direction maps arrow keys and vi keys to a step.
func direction(ev *tcell.EventKey) (world.Vec2, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return world.Vec2{Y: -1}, true
	case tcell.KeyDown:
		return world.Vec2{Y: 1}, true
	case tcell.KeyLeft:
		return world.Vec2{X: -1}, true
	case tcell.KeyRight:
		return world.Vec2{X: 1}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			return world.Vec2{Y: -1}, true
		case 'j':
			return world.Vec2{Y: 1}, true
		case 'h':
			return world.Vec2{X: -1}, true
		case 'l':
			return world.Vec2{X: 1}, true
		}
	}
	return world.Vec2{}, false
}
