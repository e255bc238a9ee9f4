package core

import "github.com/vovakirdan/torus-snake/internal/grid"

// Action represents a semantic input action, abstracted from physical key presses.
// Front ends map their own key events onto actions so the game sees one vocabulary.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the heading a directional action requests.
// ok is false for non-directional actions.
func (a Action) Direction() (d grid.Direction, ok bool) {
	switch a {
	case ActionUp:
		return grid.Up, true
	case ActionDown:
		return grid.Down, true
	case ActionLeft:
		return grid.Left, true
	case ActionRight:
		return grid.Right, true
	}
	return 0, false
}

// ActionForKey maps a key name to an action. Key names follow Bubble Tea's
// KeyMsg.String() spelling; other front ends translate into it.
func ActionForKey(key string) Action {
	switch key {
	case "up", "w", "k":
		return ActionUp
	case "down", "s", "j":
		return ActionDown
	case "left", "a", "h":
		return ActionLeft
	case "right", "d", "l":
		return ActionRight
	case "enter", " ":
		return ActionConfirm
	case "esc", "b":
		return ActionBack
	case "r":
		return ActionRestart
	case "q", "ctrl+c":
		return ActionQuit
	}
	return ActionNone
}
