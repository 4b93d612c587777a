package math

import "math"

// Mat4 is a column-major 4x4 matrix, the layout gl.UniformMatrix4fv expects
// without transposition: row r, column c lives at m[c*4+r].
type Mat4 [16]float32

// Identity returns the identity transform. Terrain vertices are already in
// world space, so it serves as the terrain model matrix.
func Identity() Mat4 {
	var m Mat4
	for i := range 4 {
		m[i*5] = 1
	}
	return m
}

// Perspective maps view-space depth [-near, -far] to clip z in [-1, 1].
// fovY is the vertical field of view in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	focal := float32(1 / math.Tan(float64(fovY)/2))
	depth := near - far

	var m Mat4
	m[0] = focal / aspect
	m[5] = focal
	m[10] = (far + near) / depth
	m[11] = -1
	m[14] = 2 * far * near / depth
	return m
}

// LookAt returns the view matrix of an eye facing target. The camera looks
// down its local -Z axis with local +Y as close to up as possible.
func LookAt(eye, target, up Vec3) Mat4 {
	forward := target.Sub(eye).Normalize()
	side := forward.Cross(up).Normalize()
	camUp := side.Cross(forward)

	var m Mat4
	for i, axis := range [3]Vec3{side, camUp, forward.Scale(-1)} {
		m[i] = axis.X
		m[4+i] = axis.Y
		m[8+i] = axis.Z
		m[12+i] = -axis.Dot(eye)
	}
	m[15] = 1
	return m
}

// Ptr returns the address of the first element for uniform uploads.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
