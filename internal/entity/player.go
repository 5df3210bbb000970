// Package entity provides the things that move around a level.
package entity

import "github.com/samdwyer/cavern/internal/world"

// Player is the adventurer controlled from the keyboard.
type Player struct {
	Pos    world.Vec2 // Current position on the level
	Symbol rune       // Display symbol
}

// NewPlayer creates a player at the given position.
func NewPlayer(pos world.Vec2) *Player {
	return &Player{
		Pos:    pos,
		Symbol: '@',
	}
}

// Move updates the player position by the given delta.
func (p *Player) Move(d world.Vec2) {
	p.Pos = p.Pos.Add(d)
}

// Place puts the player at pos, e.g. on a new level's spawn.
func (p *Player) Place(pos world.Vec2) {
	p.Pos = pos
}
