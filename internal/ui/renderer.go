package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cavern/internal/gamedata"
	"github.com/samdwyer/cavern/internal/world"
)

// View is the game state the renderer draws.
type View interface {
	Grid() *world.Grid
	Fog() *world.Fog
	Player() world.Vec2
	PlayerSymbol() rune
	Depth() int
	Message() string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	tiles  *gamedata.TileRegistry
	styles [world.TileCount]tcell.Style
}

// NewRenderer creates a renderer that looks tiles up in the given registry.
func NewRenderer(screen *Screen, tiles *gamedata.TileRegistry) *Renderer {
	r := &Renderer{screen: screen, tiles: tiles}
	for code := range r.styles {
		def := tiles.Get(world.TileType(code))
		r.styles[code] = tcell.StyleDefault.Foreground(def.TCellColor())
	}
	return r
}

// Render draws the discovered part of the level, the player and the status
// line below the map.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	grid, fog := v.Grid(), v.Fog()
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if !fog.IsDiscovered(x, y) {
				continue
			}
			tile := grid.Get(x, y)
			r.screen.SetContent(x, y, r.tiles.Get(tile).GlyphRune(), r.styles[tile])
		}
	}

	playerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	p := v.Player()
	r.screen.SetContent(p.X, p.Y, v.PlayerSymbol(), playerStyle)

	r.RenderMessage(r.statusLine(v), grid.Height())

	r.screen.Show()
}

func (r *Renderer) statusLine(v View) string {
	status := fmt.Sprintf("Depth %d", v.Depth())
	if msg := v.Message(); msg != "" {
		status += "  " + msg
	}
	return status
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.screen.DrawText(0, y, msg, style)
}
