// Package controls names the viewer's logical actions and turns a frame of
// action state into camera motion. It has no platform dependencies.
package controls

import "github.com/Faultbox/terrain-flythrough/internal/engine/camera"

// Action is a logical control bound to a key.
type Action int

const (
	Forward Action = iota
	Back
	Left
	Right
	Up
	Down
	Quit
	Screenshot

	// ActionCount sizes per-action arrays.
	ActionCount
)

var actionNames = [ActionCount]string{
	Forward:    "forward",
	Back:       "back",
	Left:       "left",
	Right:      "right",
	Up:         "up",
	Down:       "down",
	Quit:       "quit",
	Screenshot: "screenshot",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Frame is the input snapshot for one update step.
type Frame struct {
	Held    [ActionCount]bool // Keys down at poll time
	Pressed [ActionCount]bool // Keys that went down since the previous poll

	// Relative mouse motion since the previous poll, in pixels.
	MouseDX, MouseDY float32

	Quit    bool
	Resized bool // Window size changed since the previous poll
}

// Motion converts held movement actions and mouse deltas into camera motion.
func (f Frame) Motion() camera.Motion {
	return camera.Motion{
		Forward: f.Held[Forward],
		Back:    f.Held[Back],
		Left:    f.Held[Left],
		Right:   f.Held[Right],
		Up:      f.Held[Up],
		Down:    f.Held[Down],
		MouseDX: f.MouseDX,
		MouseDY: f.MouseDY,
	}
}
