package mesh

// FloorStyle selects how the ground plane is patterned.
type FloorStyle int

const (
	// FloorChecker alternates two colors per tile.
	FloorChecker FloorStyle = iota
	// FloorGrid draws thin raised lines over a single base color.
	FloorGrid
)

// FloorOptions configures Floor. Zero values fall back to the defaults below.
type FloorOptions struct {
	// HalfExtent is half the side length of the square floor. Default 10.
	HalfExtent float32
	// Tiles is the number of tiles along one side. Default 20.
	Tiles int
	Style FloorStyle
	// ColorA is the even-tile color for checker, the base color for grid.
	ColorA [3]float32
	// ColorB is the odd-tile color for checker, the line color for grid.
	ColorB [3]float32
	// LineWidth is the grid line width in world units. Default 0.02.
	LineWidth float32
}

const (
	DefaultFloorHalfExtent float32 = 10
	DefaultFloorTiles              = 20
	DefaultFloorLineWidth  float32 = 0.02

	// gridLift keeps grid lines above the base quad so they win the depth test.
	gridLift float32 = 0.002
)

var (
	DefaultFloorColorA = [3]float32{0.32, 0.34, 0.36}
	DefaultFloorColorB = [3]float32{0.22, 0.23, 0.25}
)

func (o FloorOptions) withDefaults() FloorOptions {
	if o.HalfExtent <= 0 {
		o.HalfExtent = DefaultFloorHalfExtent
	}
	if o.Tiles <= 0 {
		o.Tiles = DefaultFloorTiles
	}
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultFloorLineWidth
	}
	if o.ColorA == ([3]float32{}) && o.ColorB == ([3]float32{}) {
		o.ColorA, o.ColorB = DefaultFloorColorA, DefaultFloorColorB
	}
	return o
}

// Floor builds a square ground plane centred on the origin at y = 0, facing +Y.
// The result is deterministic for equal options.
//
// Parameters:
//   - opts: floor configuration
//
// Returns:
//   - Data: triangle-list geometry
func Floor(opts FloorOptions) Data {
	opts = opts.withDefaults()
	if opts.Style == FloorGrid {
		return gridFloor(opts)
	}
	return checkerFloor(opts)
}

func checkerFloor(o FloorOptions) Data {
	n := o.Tiles
	step := 2 * o.HalfExtent / float32(n)
	d := Data{
		Vertices: make([]Vertex, 0, n*n*4),
		Indices:  make([]uint32, 0, n*n*6),
		Topology: Triangles,
	}
	for i := 0; i < n; i++ {
		x0 := -o.HalfExtent + float32(i)*step
		x1 := x0 + step
		for j := 0; j < n; j++ {
			z0 := -o.HalfExtent + float32(j)*step
			z1 := z0 + step
			color := o.ColorA
			if (i+j)%2 != 0 {
				color = o.ColorB
			}
			d.appendQuad(color, flatQuad(x0, z0, x1, z1, 0))
		}
	}
	return d
}

func gridFloor(o FloorOptions) Data {
	h := o.HalfExtent
	d := Data{Topology: Triangles}
	d.appendQuad(o.ColorA, flatQuad(-h, -h, h, h, 0))

	step := 2 * h / float32(o.Tiles)
	w := o.LineWidth / 2
	for i := 0; i <= o.Tiles; i++ {
		c := -h + float32(i)*step
		// Line parallel to Z at x = c, then parallel to X at z = c.
		d.appendQuad(o.ColorB, flatQuad(c-w, -h, c+w, h, gridLift))
		d.appendQuad(o.ColorB, flatQuad(-h, c-w, h, c+w, gridLift))
	}
	return d
}

// flatQuad returns the corners of an axis-aligned rectangle at height y, ordered so that
// appendQuad winds it counter-clockwise when seen from +Y.
func flatQuad(x0, z0, x1, z1, y float32) [4][3]float32 {
	return [4][3]float32{
		{x0, y, z0},
		{x0, y, z1},
		{x1, y, z1},
		{x1, y, z0},
	}
}
