package core

import "strings"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A, H - move one lane left
	ActionRight          // Right arrow, D, L - move one lane right
	ActionPause          // P, Escape - pause/unpause game
	ActionRestart        // R key - start a new run
	ActionQuit           // Q, Ctrl+C - exit
)

// actionOrder fixes the order actions are applied and encoded in.
var actionOrder = []Action{ActionLeft, ActionRight, ActionPause, ActionRestart, ActionQuit}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of Action.String. Unknown names map to ActionNone.
func ParseAction(name string) Action {
	for _, a := range actionOrder {
		if a.String() == name {
			return a
		}
	}
	return ActionNone
}

// InputFrame represents the input state for a single player during one frame.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Encode serializes the frame as a comma-separated list of action names in
// a stable order, e.g. "Left,Pause". An empty frame encodes to "".
func (f InputFrame) Encode() string {
	names := make([]string, 0, len(f.Actions))
	for _, a := range actionOrder {
		if f.Has(a) {
			names = append(names, a.String())
		}
	}
	return strings.Join(names, ",")
}

// DecodeInputFrame parses the output of Encode.
func DecodeInputFrame(s string) InputFrame {
	frame := NewInputFrame()
	if s == "" {
		return frame
	}
	for _, name := range strings.Split(s, ",") {
		if a := ParseAction(name); a != ActionNone {
			frame.Set(a)
		}
	}
	return frame
}
