package mesh

import (
	"errors"
	"math"
	"runtime"
	"testing"
	"time"

	"github.com/Carmen-Shannon/uvr-client/common"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/bind_group_provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUploader records uploads and fills providers with an index count but no GPU buffers.
type fakeUploader struct {
	calls     int
	lastBytes int
	fail      error
}

func (f *fakeUploader) InitMeshBuffers(p bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	f.calls++
	if f.fail != nil {
		return f.fail
	}
	f.lastBytes = len(vertexData)
	p.SetMeshBuffers(nil, nil, indexCount)
	return nil
}

// triangleNormal returns the unnormalized normal of triangle i in d.
func triangleNormal(d Data, i int) [3]float32 {
	a := d.Vertices[d.Indices[i*3]].Position
	b := d.Vertices[d.Indices[i*3+1]].Position
	c := d.Vertices[d.Indices[i*3+2]].Position
	return common.Cross3(common.Sub3(b, a), common.Sub3(c, a))
}

func TestBuildersAreDeterministic(t *testing.T) {
	tests := []struct {
		name  string
		build func() Data
	}{
		{"checker floor", func() Data { return Floor(FloorOptions{Tiles: 8}) }},
		{"grid floor", func() Data { return Floor(FloorOptions{Style: FloorGrid}) }},
		{"solid cube", func() Data { return Cube([3]float32{1, 0, 0}, CubeSolid) }},
		{"wire cube", func() Data { return Cube([3]float32{0, 1, 0}, CubeWireframe) }},
		{"compass", func() Data { return Compass(0.7, 16.0/9.0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.build(), tt.build())
		})
	}
}

func TestCheckerFloor(t *testing.T) {
	d := Floor(FloorOptions{HalfExtent: 2, Tiles: 4, ColorA: [3]float32{1, 1, 1}, ColorB: [3]float32{0, 0, 0}})
	require.Len(t, d.Vertices, 4*16)
	require.Len(t, d.Indices, 6*16)
	assert.Equal(t, Triangles, d.Topology)

	for i := 0; i < len(d.Indices)/3; i++ {
		require.Positive(t, triangleNormal(d, i)[1], "triangle %d should face +Y", i)
	}
	for _, v := range d.Vertices {
		require.Zero(t, v.Position[1])
		require.LessOrEqual(t, math.Abs(float64(v.Position[0])), 2.0)
		require.LessOrEqual(t, math.Abs(float64(v.Position[2])), 2.0)
	}
	// Neighbouring tiles alternate colors.
	assert.NotEqual(t, d.Vertices[0].Color, d.Vertices[4].Color, "adjacent tiles share a color")
}

func TestSingleTileFloorIsOneQuad(t *testing.T) {
	d := Floor(FloorOptions{Tiles: 1})
	assert.Len(t, d.Vertices, 4)
	assert.Len(t, d.Indices, 6)
}

func TestGridFloorLinesSitAboveBase(t *testing.T) {
	d := Floor(FloorOptions{Style: FloorGrid, Tiles: 2})
	// Base quad plus two quads per boundary line, three boundaries.
	require.Len(t, d.Vertices, 4*(1+2*3))
	for _, v := range d.Vertices[4:] {
		require.Positive(t, v.Position[1], "grid line vertex %v not above the base", v.Position)
	}
}

func TestSolidCube(t *testing.T) {
	d := Cube([3]float32{1, 1, 1}, CubeSolid)
	require.Len(t, d.Vertices, 24)
	require.Len(t, d.Indices, 36)

	for i := 0; i < 12; i++ {
		a := d.Vertices[d.Indices[i*3]].Position
		b := d.Vertices[d.Indices[i*3+1]].Position
		c := d.Vertices[d.Indices[i*3+2]].Position
		centroid := common.Scale3(common.Add3(common.Add3(a, b), c), 1.0/3)
		require.Positive(t, common.Dot3(triangleNormal(d, i), centroid), "triangle %d winds inward", i)
	}
	for _, v := range d.Vertices {
		for k := 0; k < 3; k++ {
			require.Equal(t, 0.5, math.Abs(float64(v.Position[k])), "vertex %v is not a unit cube corner", v.Position)
		}
	}
}

func TestWireCube(t *testing.T) {
	d := Cube([3]float32{0, 1, 0}, CubeWireframe)
	require.Len(t, d.Vertices, 8)
	require.Len(t, d.Indices, 24)
	require.Equal(t, Lines, d.Topology)

	for e := 0; e < 12; e++ {
		a := d.Vertices[d.Indices[e*2]].Position
		b := d.Vertices[d.Indices[e*2+1]].Position
		assert.InDelta(t, 1, common.Length3(common.Sub3(a, b)), 1e-6, "edge %d", e)
	}
}

func TestCompassCounterRotates(t *testing.T) {
	arm := func(d Data, i int) [2]float32 {
		o, tip := d.Vertices[i*2].Position, d.Vertices[i*2+1].Position
		return [2]float32{tip[0] - o[0], tip[1] - o[1]}
	}

	d0 := Compass(0, 1)
	require.Len(t, d0.Vertices, 6)
	require.Len(t, d0.Indices, 6)
	require.Equal(t, Lines, d0.Topology)

	o := d0.Vertices[0].Position
	assert.Equal(t, float32(0.82), o[0])
	assert.Equal(t, float32(0.82), o[1])

	x := arm(d0, 0)
	assert.InDelta(t, DefaultCompassLength, x[0], 1e-6, "X arm at yaw 0 points right")
	assert.Zero(t, x[1])

	// A quarter turn of the camera swings the X arm off the horizontal.
	d1 := Compass(float32(math.Pi/2), 1)
	x = arm(d1, 0)
	assert.InDelta(t, 0, x[0], 1e-6)
	assert.Positive(t, x[1], "X arm at yaw pi/2 points up-screen")

	assert.Equal(t, arm(d0, 1), arm(d1, 1), "Y arm changed with yaw")

	wide := Compass(0, 2)
	assert.InDelta(t, DefaultCompassLength/2, arm(wide, 0)[0], 1e-6, "X arm at aspect 2 is half width")
}

func TestSolidCompassArms(t *testing.T) {
	lines := Compass(0.4, 1.5)
	d := Compass(0.4, 1.5, WithCompassArmWidth(0.02))
	require.Equal(t, Triangles, d.Topology)
	require.Len(t, d.Vertices, 12)
	require.Len(t, d.Indices, 18)

	for arm := 0; arm < 3; arm++ {
		q := d.Vertices[arm*4 : arm*4+4]
		o, tip := lines.Vertices[arm*2].Position, lines.Vertices[arm*2+1].Position
		// The quad's long edges straddle the line arm.
		for k := 0; k < 2; k++ {
			assert.InDelta(t, o[k], (q[0].Position[k]+q[3].Position[k])/2, 1e-6, "arm %d origin", arm)
			assert.InDelta(t, tip[k], (q[1].Position[k]+q[2].Position[k])/2, 1e-6, "arm %d tip", arm)
		}
		assert.Equal(t, lines.Vertices[arm*2].Color, q[0].Color)
	}
}

func TestUploadReportsIndexCount(t *testing.T) {
	u := &fakeUploader{}
	d := Cube([3]float32{1, 1, 1}, CubeSolid)
	m, err := Upload(u, "cube", d)
	require.NoError(t, err)
	assert.Equal(t, 36, m.IndexCount())
	assert.Equal(t, 24*VertexStride, u.lastBytes)
	assert.Equal(t, "cube", m.Provider.Label())
}

func TestUploadErrors(t *testing.T) {
	_, err := Upload(&fakeUploader{}, "empty", Data{})
	assert.ErrorIs(t, err, ErrEmptyMesh)

	boom := errors.New("out of memory")
	_, err = Upload(&fakeUploader{fail: boom}, "cube", Cube([3]float32{}, CubeSolid))
	assert.ErrorIs(t, err, boom)
}

func TestCacheUploadsOncePerKey(t *testing.T) {
	u := &fakeUploader{}
	c, err := NewCache(u, 2)
	require.NoError(t, err)

	builds := 0
	build := func() Data {
		builds++
		return Compass(0, 1)
	}

	for i := 0; i < 3; i++ {
		_, err := c.Get("compass:0", build)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, builds)
	assert.Equal(t, 1, u.calls)

	first, _ := c.Get("compass:0", build)
	c.Get("a", build)
	c.Get("b", build)
	assert.Equal(t, 2, c.Len())
	// Eviction released the oldest mesh.
	assert.Zero(t, first.IndexCount(), "evicted mesh should be released")

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestBuildAllKeepsJobOrder(t *testing.T) {
	colors := [][3]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0}, {0, 1, 1}}
	jobs := make([]Job, len(colors))
	for i, c := range colors {
		jobs[i] = Job{Label: "cube", Build: func() Data { return Cube(c, CubeWireframe) }}
	}

	results := BuildAll(jobs, 3)
	require.Len(t, results, len(jobs))
	for i, r := range results {
		assert.Equal(t, colors[i], r.Vertices[0].Color, "result %d", i)
	}
	assert.Empty(t, BuildAll(nil, 2))
}

func TestBuilderReleaseEndsWorkers(t *testing.T) {
	before := runtime.NumGoroutine()
	jobs := []Job{
		{Label: "floor", Build: func() Data { return Floor(FloorOptions{}) }},
		{Label: "cube", Build: func() Data { return Cube([3]float32{1, 1, 1}, CubeSolid) }},
	}

	b := NewBuilder(4)
	for i := 0; i < 5; i++ {
		require.Len(t, b.BuildAll(jobs), len(jobs))
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before+4, "repeated builds grew the pool")

	b.Release()
	b.Release()
	assert.Eventually(t, func() bool { return runtime.NumGoroutine() <= before }, time.Second, 10*time.Millisecond,
		"workers still running after Release")
}

func TestBuildAllDoesNotLeakWorkers(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 5; i++ {
		BuildAll([]Job{{Label: "cube", Build: func() Data { return Cube([3]float32{}, CubeWireframe) }}}, 4)
	}
	assert.Eventually(t, func() bool { return runtime.NumGoroutine() <= before }, time.Second, 10*time.Millisecond,
		"BuildAll left worker goroutines behind")
}
