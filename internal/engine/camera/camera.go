// Package camera provides the first-person fly camera and its input controller.
package camera

import (
	gomath "math"

	"github.com/Faultbox/terrain-flythrough/pkg/math"
)

// Projection defaults.
const (
	DefaultFOV  float32 = 45.0 // Vertical field of view, degrees
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 2000.0
)

// MaxPitch is the largest pitch magnitude the camera stores, just inside 89 degrees.
// Keeping pitch strictly inside (-89, 89) stops Front from ever aligning with world up.
var MaxPitch = gomath.Nextafter32(89, 0)

// FlyCamera is a free-flying first-person camera.
// Orientation is yaw/pitch in degrees with +Y as world up. The basis vectors and
// both matrices are recomputed from the current state on every call.
type FlyCamera struct {
	position math.Vec3
	yaw      float32 // Degrees, unbounded
	pitch    float32 // Degrees, always inside (-89, 89)
	aspect   float32 // Width / height

	// Projection
	FOV  float32 // Vertical field of view, degrees
	Near float32
	Far  float32
}

// NewFlyCamera creates a camera at position looking down -Z (yaw -90).
func NewFlyCamera(position math.Vec3, aspect float32) *FlyCamera {
	return &FlyCamera{
		position: position,
		yaw:      -90,
		aspect:   aspect,
		FOV:      DefaultFOV,
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
}

// Position returns the camera position in world space.
func (c *FlyCamera) Position() math.Vec3 {
	return c.position
}

// SetPosition moves the camera.
func (c *FlyCamera) SetPosition(p math.Vec3) {
	c.position = p
}

// Yaw returns the horizontal look angle in degrees.
func (c *FlyCamera) Yaw() float32 {
	return c.yaw
}

// SetYaw sets the horizontal look angle. Any finite value is accepted;
// NaN and infinities are ignored.
func (c *FlyCamera) SetYaw(deg float32) {
	if !finite(deg) {
		return
	}
	c.yaw = deg
}

// Pitch returns the vertical look angle in degrees.
func (c *FlyCamera) Pitch() float32 {
	return c.pitch
}

// SetPitch sets the vertical look angle, clamped to (-89, 89).
// NaN is ignored and leaves the current pitch in place.
func (c *FlyCamera) SetPitch(deg float32) {
	if gomath.IsNaN(float64(deg)) {
		return
	}
	c.pitch = math.Clamp(deg, -MaxPitch, MaxPitch)
}

// AspectRatio returns the projection aspect ratio.
func (c *FlyCamera) AspectRatio() float32 {
	return c.aspect
}

// SetAspectRatio sets the projection aspect ratio.
func (c *FlyCamera) SetAspectRatio(aspect float32) {
	c.aspect = aspect
}

// SetViewport updates the aspect ratio from a framebuffer size.
// A zero height (minimized window) leaves the aspect ratio unchanged.
func (c *FlyCamera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}

// Front returns the unit look direction.
func (c *FlyCamera) Front() math.Vec3 {
	yaw := float64(math.Radians(c.yaw))
	pitch := float64(math.Radians(c.pitch))

	return math.Vec3{
		X: float32(gomath.Cos(pitch) * gomath.Cos(yaw)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Cos(pitch) * gomath.Sin(yaw)),
	}.Normalize()
}

// Right returns the unit right vector, always horizontal.
func (c *FlyCamera) Right() math.Vec3 {
	return c.Front().Cross(math.WorldUp).Normalize()
}

// Up returns the camera up vector, perpendicular to Front and Right.
func (c *FlyCamera) Up() math.Vec3 {
	return c.Right().Cross(c.Front())
}

// ViewMatrix returns the world-to-camera transform.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.position, c.position.Add(c.Front()), c.Up())
}

// ProjectionMatrix returns the camera-to-clip transform.
func (c *FlyCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), c.aspect, c.Near, c.Far)
}

func finite(v float32) bool {
	return !gomath.IsNaN(float64(v)) && !gomath.IsInf(float64(v), 0)
}
