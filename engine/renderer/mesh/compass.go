package mesh

import "math"

// compassOptions holds the overlay placement for Compass.
type compassOptions struct {
	origin [2]float32
	length float32
	tilt   float32
	width  float32
}

// CompassOption is a functional option used to configure Compass.
type CompassOption func(*compassOptions)

const (
	DefaultCompassLength float32 = 0.10
	DefaultCompassTilt   float32 = 0.6
)

type compassArm struct {
	dir   [2]float32
	color [3]float32
}

// DefaultCompassOrigin is the compass centre in normalized device coordinates (upper right).
var DefaultCompassOrigin = [2]float32{0.82, 0.82}

var (
	compassColorX = [3]float32{0.95, 0.2, 0.2}
	compassColorY = [3]float32{0.2, 0.9, 0.3}
	compassColorZ = [3]float32{0.25, 0.45, 1.0}
)

// WithCompassOrigin sets the compass centre in normalized device coordinates.
func WithCompassOrigin(x, y float32) CompassOption {
	return func(o *compassOptions) {
		o.origin = [2]float32{x, y}
	}
}

// WithCompassLength sets the arm length in normalized device units.
func WithCompassLength(length float32) CompassOption {
	return func(o *compassOptions) {
		o.length = length
	}
}

// WithCompassTilt sets the apparent downward tilt of the ground plane, in radians.
func WithCompassTilt(tilt float32) CompassOption {
	return func(o *compassOptions) {
		o.tilt = tilt
	}
}

// WithCompassArmWidth draws each arm as a quad of the given width in normalized device units, so
// the compass becomes a triangle list. Zero keeps the line list.
func WithCompassArmWidth(width float32) CompassOption {
	return func(o *compassOptions) {
		o.width = width
	}
}

// Compass builds the axis-compass overlay as a screen-space line list, or a triangle list when an
// arm width is set.
//
// The X (red) and Z (blue) arms lie in a tilted ground plane and turn opposite to the camera yaw, so
// they keep pointing along the world axes as the camera orbits. The Y (green) arm stays vertical.
// X components are divided by aspect so the arms keep their length on non-square viewports.
//
// Parameters:
//   - yaw: camera yaw in radians
//   - aspect: viewport width / height
//   - options: placement overrides
//
// Returns:
//   - Data: six vertices and six line indices, or four vertices and six triangle indices per
//     arm that has a screen-space length
func Compass(yaw, aspect float32, options ...CompassOption) Data {
	o := compassOptions{
		origin: DefaultCompassOrigin,
		length: DefaultCompassLength,
		tilt:   DefaultCompassTilt,
	}
	for _, opt := range options {
		opt(&o)
	}
	if aspect <= 0 {
		aspect = 1
	}

	cy := float32(math.Cos(float64(yaw)))
	sy := float32(math.Sin(float64(yaw)))
	st := float32(math.Sin(float64(o.tilt)))
	ct := float32(math.Cos(float64(o.tilt)))

	arms := [3]compassArm{
		{[2]float32{cy, sy * st}, compassColorX},
		{[2]float32{0, ct}, compassColorY},
		{[2]float32{sy, -cy * st}, compassColorZ},
	}

	if o.width > 0 {
		return solidCompass(o, aspect, arms)
	}

	d := Data{
		Vertices: make([]Vertex, 0, 6),
		Indices:  make([]uint32, 0, 6),
		Topology: Lines,
	}
	origin := [3]float32{o.origin[0], o.origin[1], 0}
	for _, a := range arms {
		tip := [3]float32{
			o.origin[0] + a.dir[0]*o.length/aspect,
			o.origin[1] + a.dir[1]*o.length,
			0,
		}
		base := uint32(len(d.Vertices))
		d.Vertices = append(d.Vertices,
			Vertex{Position: origin, Color: a.color},
			Vertex{Position: tip, Color: a.color},
		)
		d.Indices = append(d.Indices, base, base+1)
	}
	return d
}

// solidCompass builds every arm as a quad centred on its line, widened perpendicular to the arm in
// aspect-corrected space.
func solidCompass(o compassOptions, aspect float32, arms [3]compassArm) Data {
	d := Data{
		Vertices: make([]Vertex, 0, 12),
		Indices:  make([]uint32, 0, 18),
		Topology: Triangles,
	}
	half := o.width / 2
	for _, a := range arms {
		n := float32(math.Hypot(float64(a.dir[0]), float64(a.dir[1])))
		if n == 0 {
			continue
		}
		px, py := -a.dir[1]/n*half/aspect, a.dir[0]/n*half
		tx := o.origin[0] + a.dir[0]*o.length/aspect
		ty := o.origin[1] + a.dir[1]*o.length
		d.appendQuad(a.color, [4][3]float32{
			{o.origin[0] - px, o.origin[1] - py, 0},
			{tx - px, ty - py, 0},
			{tx + px, ty + py, 0},
			{o.origin[0] + px, o.origin[1] + py, 0},
		})
	}
	return d
}
