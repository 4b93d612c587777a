package camera

import "github.com/Faultbox/terrain-flythrough/pkg/math"

// Controller defaults.
const (
	DefaultSpeed       float32 = 10.0 // World units per second
	DefaultSensitivity float32 = 0.2  // Degrees per pixel of mouse motion
)

// Motion is one frame of navigation input.
type Motion struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool

	// Relative mouse motion in pixels since the previous frame.
	MouseDX, MouseDY float32
}

// Controller applies per-frame input to a FlyCamera.
type Controller struct {
	Speed       float32
	Sensitivity float32
}

// Apply moves and turns the camera for a frame lasting dt seconds.
//
// Forward and back follow the look direction projected onto the ground plane
// (Y zeroed, not renormalized), strafing follows Right and vertical motion
// follows the camera's Up. Mouse X turns yaw; mouse Y turns pitch inverted,
// since screen Y grows downward.
func (ctl *Controller) Apply(c *FlyCamera, m Motion, dt float32) {
	step := ctl.Speed * dt

	front := c.Front()
	front.Y = 0
	right := c.Right()
	up := c.Up()

	pos := c.Position()
	if m.Forward {
		pos = pos.Add(front.Scale(step))
	}
	if m.Back {
		pos = pos.Sub(front.Scale(step))
	}
	if m.Left {
		pos = pos.Sub(right.Scale(step))
	}
	if m.Right {
		pos = pos.Add(right.Scale(step))
	}
	if m.Up {
		pos = pos.Add(up.Scale(step))
	}
	if m.Down {
		pos = pos.Sub(up.Scale(step))
	}
	c.SetPosition(pos)

	if m.MouseDX != 0 || m.MouseDY != 0 {
		c.SetYaw(c.Yaw() + m.MouseDX*ctl.Sensitivity)
		c.SetPitch(c.Pitch() - m.MouseDY*ctl.Sensitivity)
	}
}

// SpawnPosition returns the starting camera position above a ground sample.
func SpawnPosition(x, z int, ground, eyeHeight float32) math.Vec3 {
	return math.Vec3{X: float32(x), Y: ground + eyeHeight, Z: float32(z)}
}
