package mesh

// CubeStyle selects solid faces or edges only.
type CubeStyle int

const (
	CubeSolid CubeStyle = iota
	CubeWireframe
)

// cubeFace describes one face by its outward normal n and two in-plane axes with u x v = n.
type cubeFace struct {
	n, u, v [3]float32
	shade   float32
}

// The shade factors give faces distinct brightness without a lighting pass.
var cubeFaces = [6]cubeFace{
	{n: [3]float32{1, 0, 0}, u: [3]float32{0, 1, 0}, v: [3]float32{0, 0, 1}, shade: 0.8},
	{n: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}, shade: 0.8},
	{n: [3]float32{0, 1, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{1, 0, 0}, shade: 1.0},
	{n: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}, shade: 0.5},
	{n: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}, shade: 0.9},
	{n: [3]float32{0, 0, -1}, u: [3]float32{0, 1, 0}, v: [3]float32{1, 0, 0}, shade: 0.65},
}

var cubeEdges = [12][2]uint32{
	{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom
	{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // verticals
}

// Cube builds a unit cube centred on the origin spanning [-0.5, 0.5] on every axis.
//
// Solid cubes have 24 vertices (four per face so each face can carry its own shade) and 36 indices
// wound counter-clockwise seen from outside. Wireframe cubes have the 8 corners and 24 line indices.
//
// Parameters:
//   - color: base vertex color
//   - style: CubeSolid or CubeWireframe
//
// Returns:
//   - Data: the cube geometry
func Cube(color [3]float32, style CubeStyle) Data {
	if style == CubeWireframe {
		return wireCube(color)
	}

	d := Data{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
		Topology: Triangles,
	}
	for _, f := range cubeFaces {
		var corners [4][3]float32
		signs := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for i, s := range signs {
			for k := 0; k < 3; k++ {
				corners[i][k] = 0.5 * (f.n[k] + s[0]*f.u[k] + s[1]*f.v[k])
			}
		}
		shaded := [3]float32{color[0] * f.shade, color[1] * f.shade, color[2] * f.shade}
		d.appendQuad(shaded, corners)
	}
	return d
}

func wireCube(color [3]float32) Data {
	d := Data{
		Vertices: make([]Vertex, 0, 8),
		Indices:  make([]uint32, 0, 24),
		Topology: Lines,
	}
	for _, y := range [2]float32{-0.5, 0.5} {
		for _, xz := range [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}} {
			d.Vertices = append(d.Vertices, Vertex{Position: [3]float32{xz[0], y, xz[1]}, Color: color})
		}
	}
	for _, e := range cubeEdges {
		d.Indices = append(d.Indices, e[0], e[1])
	}
	return d
}
