package mesh

// Vertex is the interleaved vertex layout shared by every mesh pipeline.
// The layout is 24 bytes: position at offset 0 (location 0), color at offset 12 (location 1).
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// VertexStride is the size of one Vertex in bytes.
const VertexStride = 24

// VertexSource is the WGSL declaration of Vertex, injected into shaders by the pre-processor.
const VertexSource = `struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) color: vec3<f32>,
};`

// Topology selects how indices are assembled into primitives.
type Topology int

const (
	// Triangles assembles every three indices into a triangle.
	Triangles Topology = iota
	// Lines assembles every two indices into a line segment.
	Lines
)

func (t Topology) String() string {
	switch t {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	default:
		return "unknown"
	}
}

// Data is CPU-side geometry produced by the builders, ready for Upload.
type Data struct {
	Vertices []Vertex
	Indices  []uint32
	Topology Topology
}

// IndexCount returns the number of indices in d.
func (d Data) IndexCount() int {
	return len(d.Indices)
}

// appendQuad appends four corners as two counter-clockwise triangles (0,1,2) and (0,2,3).
func (d *Data) appendQuad(color [3]float32, corners [4][3]float32) {
	base := uint32(len(d.Vertices))
	for _, c := range corners {
		d.Vertices = append(d.Vertices, Vertex{Position: c, Color: color})
	}
	d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
}
