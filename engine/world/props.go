package world

import (
	"math"
	"math/rand/v2"

	"github.com/Carmen-Shannon/uvr-client/common"
	"github.com/furui/fastnoiselite-go"
)

// Prop is a static box placed on the floor.
type Prop struct {
	// Position is the box centre.
	Position  [3]float32
	Scale     [3]float32
	Color     [3]float32
	Wireframe bool
}

// Model returns the prop's world matrix.
func (p Prop) Model() [16]float32 {
	var m [16]float32
	common.ComposeYaw(m[:], p.Position, 0, p.Scale)
	return m
}

// BoundingRadius returns the radius of the sphere around Position that contains the whole box.
func (p Prop) BoundingRadius() float32 {
	return 0.5 * common.Length3(p.Scale)
}

// ScatterOptions configures ScatterProps. Zero values fall back to the defaults below.
type ScatterOptions struct {
	Seed uint64
	// Count is the maximum number of props. Zero places none.
	Count int
	// HalfExtent bounds props to the square [-HalfExtent, HalfExtent] on X and Z. Default 10.
	HalfExtent float32
	// ClearRadius keeps the spawn area around the origin empty. Default 2.5.
	ClearRadius float32
	// CellSize is the spacing of candidate positions. Default 2.
	CellSize float32
}

const (
	DefaultScatterHalfExtent  float32 = 10
	DefaultScatterClearRadius float32 = 2.5
	DefaultScatterCellSize    float32 = 2

	// scatterThreshold is the noise value above which a cell gets a prop.
	scatterThreshold = 0.05
	// wireframeEvery turns every n-th placed prop into a wireframe box.
	wireframeEvery = 5
)

var propPalette = [...][3]float32{
	{0.55, 0.45, 0.35},
	{0.35, 0.55, 0.4},
	{0.45, 0.5, 0.65},
	{0.7, 0.6, 0.3},
	{0.6, 0.35, 0.5},
}

// ScatterProps places up to opts.Count boxes over the floor. Candidate cells are visited in row-major
// order and kept where OpenSimplex2 fractal noise exceeds a threshold. Output is identical for
// identical options.
//
// Every prop lies fully inside the floor bounds and outside the clear radius.
//
// Parameters:
//   - opts: scatter configuration
//
// Returns:
//   - []Prop: the placed props
func ScatterProps(opts ScatterOptions) []Prop {
	if opts.Count <= 0 {
		return nil
	}
	h := common.Coalesce(opts.HalfExtent, DefaultScatterHalfExtent)
	clearRadius := common.Coalesce(opts.ClearRadius, DefaultScatterClearRadius)
	cell := common.Coalesce(opts.CellSize, DefaultScatterCellSize)

	noise := fastnoiselite.NewNoise()
	noise.SetNoiseType(fastnoiselite.NoiseTypeOpenSimplex2)
	noise.FractalType = fastnoiselite.FractalTypeFBm
	noise.Frequency = 0.2
	noise.SetFractalOctaves(3)

	rng := rand.New(rand.NewPCG(opts.Seed, 0x75767221))
	// The noise has no seed of its own here, so the seed moves the sample window instead.
	off := float32(opts.Seed%10007) * 7.31

	props := make([]Prop, 0, opts.Count)
	for z := -h + cell/2; z < h; z += cell {
		for x := -h + cell/2; x < h; x += cell {
			n := float32(noise.GetNoise2D(fastnoiselite.FNLfloat(x+off), fastnoiselite.FNLfloat(z-off)))
			// The jitter draws happen for every cell so a cell's result does not depend on earlier ones.
			jx, jz := rng.Float32()-0.5, rng.Float32()-0.5
			width := 0.5 + 0.5*rng.Float32()
			if n <= scatterThreshold {
				continue
			}

			height := 0.6 + 4*(n-scatterThreshold)
			half := width / 2
			px := common.Clamp(x+jx*(cell-width), -h+half, h-half)
			pz := common.Clamp(z+jz*(cell-width), -h+half, h-half)
			if float32(math.Hypot(float64(px), float64(pz)))-half*float32(math.Sqrt2) < clearRadius {
				continue
			}

			color := propPalette[int(math.Abs(float64(n))*97)%len(propPalette)]
			props = append(props, Prop{
				Position:  [3]float32{px, height / 2, pz},
				Scale:     [3]float32{width, height, width},
				Color:     color,
				Wireframe: (len(props)+1)%wireframeEvery == 0,
			})
			if len(props) == opts.Count {
				return props
			}
		}
	}
	return props
}
