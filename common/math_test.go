package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-4

func assertVec3(t *testing.T, want [3]float32, got [4]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "component %d", i)
	}
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}
	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out, "I*M")
	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out, "M*I")
}

func TestPerspectiveDepthRange(t *testing.T) {
	var p [16]float32
	Perspective(p[:], float32(math.Pi/4), 1.5, 0.1, 100)

	tests := []struct {
		name  string
		z     float32
		depth float32
	}{
		{"near plane", -0.1, 0},
		{"far plane", -100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := TransformPoint(p[:], [3]float32{0, 0, tt.z})
			assert.InDelta(t, tt.depth, c[2]/c[3], tol)
		})
	}
}

func TestLookAtMapsTargetOntoNegativeZ(t *testing.T) {
	var v [16]float32
	eye := [3]float32{3, 4, 5}
	target := [3]float32{0, 1, 0}
	LookAt(v[:], eye, target, [3]float32{0, 1, 0})

	assertVec3(t, [3]float32{0, 0, 0}, TransformPoint(v[:], eye))

	dist := Length3(Sub3(eye, target))
	assertVec3(t, [3]float32{0, 0, -dist}, TransformPoint(v[:], target))
}

func TestComposeYawMatchesRotateY(t *testing.T) {
	var m [16]float32
	pos := [3]float32{1, 2, 3}
	angle := float32(0.7)
	scale := [3]float32{2, 3, 4}
	ComposeYaw(m[:], pos, angle, scale)

	p := [3]float32{0.5, -0.25, 1}
	want := Add3(pos, RotateY([3]float32{p[0] * scale[0], p[1] * scale[1], p[2] * scale[2]}, angle))
	assertVec3(t, want, TransformPoint(m[:], p))
}

func TestSincosTracksFloat64(t *testing.T) {
	for _, a := range []float32{0, 0.9, 2.0, -1.2, 10, -7.5, 100} {
		s, c := Sincos(a)
		assert.InDelta(t, math.Sin(float64(a)), s, 1e-6, "sin(%v)", a)
		assert.InDelta(t, math.Cos(float64(a)), c, 1e-6, "cos(%v)", a)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(50), Clamp(float32(60), 2, 50))
	assert.Equal(t, float32(2), Clamp(float32(-1), 2, 50))
	assert.Equal(t, 2, Clamp(3, 1, 2))
}

func TestFrustumSphereVisible(t *testing.T) {
	var view, proj, vp [16]float32
	LookAt(view[:], [3]float32{0, 0, 5}, [3]float32{0, 0, 0}, [3]float32{0, 1, 0})
	Perspective(proj[:], float32(math.Pi/4), 1, 0.1, 100)
	Mul4(vp[:], proj[:], view[:])
	f := ExtractFrustumFromMatrix(vp[:])

	tests := []struct {
		name   string
		center [3]float32
		radius float32
		want   bool
	}{
		{"in front", [3]float32{0, 0, 0}, 0.5, true},
		{"behind camera", [3]float32{0, 0, 10}, 0.5, false},
		{"far off to the side", [3]float32{50, 0, 0}, 0.5, false},
		{"beyond far plane", [3]float32{0, 0, -200}, 1, false},
		{"straddling left edge", [3]float32{-2.5, 0, 0}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.SphereVisible(tt.center, tt.radius))
		})
	}
}
