package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	var sum float32
	for _, v := range m {
		sum += v
	}
	if sum != 4 {
		t.Errorf("Identity has off-diagonal entries: %v", m)
	}
}

// project applies m to p with w=1 and divides by the resulting w.
func project(m Mat4, p Vec3) Vec3 {
	var out [4]float32
	for r := range 4 {
		out[r] = m[r]*p.X + m[4+r]*p.Y + m[8+r]*p.Z + m[12+r]
	}
	if out[3] != 0 && out[3] != 1 {
		return Vec3{out[0] / out[3], out[1] / out[3], out[2] / out[3]}
	}
	return Vec3{out[0], out[1], out[2]}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	m := Perspective(fov, 16.0/9.0, 0.1, 2000)

	f := float32(1.0 / math.Tan(math.Pi/8))
	if !nearlyEqual(m[5], f, 1e-5) {
		t.Errorf("Perspective [5] = %f, want %f", m[5], f)
	}
	if !nearlyEqual(m[0], f/(16.0/9.0), 1e-5) {
		t.Errorf("Perspective [0] = %f, want %f", m[0], f/(16.0/9.0))
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := float32(0.1), float32(100)
	m := Perspective(float32(math.Pi/4), 1, near, far)

	// Points on the near and far planes map to NDC z = -1 and +1.
	if z := project(m, Vec3{0, 0, -near}).Z; !nearlyEqual(z, -1, 1e-4) {
		t.Errorf("near plane z = %f, want -1", z)
	}
	if z := project(m, Vec3{0, 0, -far}).Z; !nearlyEqual(z, 1, 1e-4) {
		t.Errorf("far plane z = %f, want 1", z)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{4, 5, 6}
	m := LookAt(eye, Vec3{0, 0, 0}, WorldUp)

	got := project(m, eye)
	if got.Length() > 1e-4 {
		t.Errorf("eye in view space = %v, want origin", got)
	}
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func TestLookAtAlongX(t *testing.T) {
	eye := Vec3{1, 2, 3}
	m := LookAt(eye, eye.Add(Vec3{1, 0, 0}), WorldUp)

	want := Mat4{
		0, 0, -1, 0,
		0, 1, 0, 0,
		1, 0, 0, 0,
		-3, -2, 1, 1,
	}
	for i := range want {
		if !nearlyEqual(m[i], want[i], 1e-6) {
			t.Errorf("element %d: got %f, want %f", i, m[i], want[i])
		}
	}
}
