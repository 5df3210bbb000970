// Package game provides the level session, input handling and main loop.
package game

// State is what the next key press means.
type State int

const (
	// StateExplore maps keys to movement and commands.
	StateExplore State = iota
	// StateChooseDirection waits for the direction of an interaction.
	StateChooseDirection
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateChooseDirection:
		return "choose_direction"
	default:
		return "unknown"
	}
}
