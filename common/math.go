package common

import (
	"math"

	"golang.org/x/exp/constraints"
	"golang.org/x/mobile/exp/f32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements, may alias a or b)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			buf[col*4+row] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective writes a right-handed perspective projection into out.
// Depth is mapped to the WebGPU clip range [0, 1], with near at 0 and far at 1.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / f32.Tan(fovY/2.0)
	for i := range out[:16] {
		out[i] = 0
	}

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
}

// LookAt creates a right-handed view matrix that transforms world coordinates to view space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: point the camera looks at
//   - up: up vector, typically +Y
func LookAt(out []float32, eye, center, up [3]float32) {
	z := Normalize3(Sub3(eye, center))
	if z == ([3]float32{}) {
		z = [3]float32{0, 0, 1}
	}
	x := Normalize3(Cross3(up, z))
	y := Cross3(z, x)

	out[0], out[4], out[8], out[12] = x[0], x[1], x[2], -Dot3(x, eye)
	out[1], out[5], out[9], out[13] = y[0], y[1], y[2], -Dot3(y, eye)
	out[2], out[6], out[10], out[14] = z[0], z[1], z[2], -Dot3(z, eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// ComposeYaw writes T(pos) * Ry(angle) * S(scale) into out.
// Positive angles rotate counter-clockwise when looking down -Y (right-handed about +Y).
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: translation in world space
//   - angle: rotation about +Y in radians
//   - scale: per-axis scale factors
func ComposeYaw(out []float32, pos [3]float32, angle float32, scale [3]float32) {
	s, c := Sincos(angle)

	out[0], out[1], out[2], out[3] = c*scale[0], 0, -s*scale[0], 0
	out[4], out[5], out[6], out[7] = 0, scale[1], 0, 0
	out[8], out[9], out[10], out[11] = s*scale[2], 0, c*scale[2], 0
	out[12], out[13], out[14], out[15] = pos[0], pos[1], pos[2], 1
}

// RotateY rotates v about +Y by angle radians, matching the rotation used by ComposeYaw.
func RotateY(v [3]float32, angle float32) [3]float32 {
	s, c := Sincos(angle)
	return [3]float32{c*v[0] + s*v[2], v[1], -s*v[0] + c*v[2]}
}

// TransformPoint multiplies the point p (w = 1) by the column-major matrix m and returns the
// homogeneous result.
func TransformPoint(m []float32, p [3]float32) [4]float32 {
	var r [4]float32
	for row := 0; row < 4; row++ {
		r[row] = m[row]*p[0] + m[4+row]*p[1] + m[8+row]*p[2] + m[12+row]
	}
	return r
}

// Add3 returns a + b.
func Add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns a - b.
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 returns v * s.
func Scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a x b.
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Sincos returns the sine and cosine of a, evaluated in float64.
func Sincos(a float32) (sin, cos float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}

// Length3 returns the Euclidean length of v.
func Length3(v [3]float32) float32 {
	return f32.Sqrt(Dot3(v, v))
}

// Normalize3 returns v scaled to unit length, or the zero vector if v has no length.
func Normalize3(v [3]float32) [3]float32 {
	l := Length3(v)
	if l == 0 {
		return [3]float32{}
	}
	return Scale3(v, 1/l)
}

// Clamp limits v to the closed range [lo, hi].
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
