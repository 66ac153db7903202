package common

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the signed offset from the origin.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// ExtractFrustumFromMatrix extracts frustum planes from a column-major view-projection matrix
// using the Gribb/Hartmann method, adjusted for the WebGPU [0, 1] clip depth range.
//
// Parameters:
//   - viewProj: 16 float32 values representing Projection * View (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	// row(i) returns the i-th matrix row; element (row i, col j) lives at j*4+i.
	row := func(i int) [4]float32 {
		return [4]float32{viewProj[i], viewProj[4+i], viewProj[8+i], viewProj[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	combine := func(a, b [4]float32, sign float32) Plane {
		return Plane{
			Normal:   [3]float32{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2]},
			Distance: a[3] + sign*b[3],
		}
	}

	var f Frustum
	f.Planes[FrustumLeft] = combine(r3, r0, 1)
	f.Planes[FrustumRight] = combine(r3, r0, -1)
	f.Planes[FrustumBottom] = combine(r3, r1, 1)
	f.Planes[FrustumTop] = combine(r3, r1, -1)
	// 0 <= z_clip, so the near plane is row 2 on its own.
	f.Planes[FrustumNear] = Plane{Normal: [3]float32{r2[0], r2[1], r2[2]}, Distance: r2[3]}
	f.Planes[FrustumFar] = combine(r3, r2, -1)

	for i := range f.Planes {
		f.normalizePlane(i)
	}
	return f
}

// SphereVisible reports whether a bounding sphere intersects the frustum.
// A sphere is rejected only when it lies entirely behind one of the six planes.
//
// Parameters:
//   - center: sphere center in world space
//   - radius: sphere radius
//
// Returns:
//   - bool: false if the sphere is fully outside, true otherwise
func (f *Frustum) SphereVisible(center [3]float32, radius float32) bool {
	for i := range f.Planes {
		p := &f.Planes[i]
		if Dot3(p.Normal, center)+p.Distance < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := Length3(p.Normal)
	if length > 0 {
		inv := 1.0 / length
		p.Normal = Scale3(p.Normal, inv)
		p.Distance *= inv
	}
}
