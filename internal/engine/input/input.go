// Package input polls SDL2 events and keyboard/mouse state once per frame.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/terrain-flythrough/internal/engine/controls"
)

// Bindings maps actions to physical keys.
type Bindings [controls.ActionCount]sdl.Scancode

// DefaultBindings returns WASD movement, Space/LShift for vertical motion,
// Escape to quit and F12 for screenshots.
func DefaultBindings() Bindings {
	var b Bindings
	b[controls.Forward] = sdl.SCANCODE_W
	b[controls.Back] = sdl.SCANCODE_S
	b[controls.Left] = sdl.SCANCODE_A
	b[controls.Right] = sdl.SCANCODE_D
	b[controls.Up] = sdl.SCANCODE_SPACE
	b[controls.Down] = sdl.SCANCODE_LSHIFT
	b[controls.Quit] = sdl.SCANCODE_ESCAPE
	b[controls.Screenshot] = sdl.SCANCODE_F12
	return b
}

// Input turns SDL state into per-frame action snapshots.
type Input struct {
	bindings  Bindings
	firstMove bool
}

// New creates an input poller for the given bindings.
func New(bindings Bindings) *Input {
	return &Input{
		bindings:  bindings,
		firstMove: true,
	}
}

// Poll drains pending SDL events and samples keyboard and mouse state.
func (i *Input) Poll() controls.Frame {
	var f controls.Frame

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			f.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				f.Resized = true
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.markPressed(&f, e.Keysym.Scancode)
			}
		}
	}

	keys := sdl.GetKeyboardState()
	for a, key := range i.bindings {
		if int(key) < len(keys) && keys[key] != 0 {
			f.Held[a] = true
		}
	}
	if f.Pressed[controls.Quit] {
		f.Quit = true
	}

	// The first relative sample after capturing the mouse carries the jump
	// from wherever the cursor was; drop it.
	dx, dy, _ := sdl.GetRelativeMouseState()
	if i.firstMove {
		i.firstMove = false
	} else {
		f.MouseDX = float32(dx)
		f.MouseDY = float32(dy)
	}

	return f
}

func (i *Input) markPressed(f *controls.Frame, code sdl.Scancode) {
	for a, key := range i.bindings {
		if key == code {
			f.Pressed[a] = true
		}
	}
}
