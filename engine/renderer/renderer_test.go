package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/uvr-client/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/mesh"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type configureCall struct {
	width, height int
	mode          PresentMode
	depth         bool
}

type fakeBackend struct {
	configures []configureCall
	acquireErr error
	writes     []uint64
	presents   int
	released   bool
}

func (f *fakeBackend) ConfigureSurface(width, height int, mode PresentMode, depth bool) (wgpu.TextureFormat, error) {
	f.configures = append(f.configures, configureCall{width, height, mode, depth})
	return wgpu.TextureFormatBGRA8Unorm, nil
}

func (f *fakeBackend) DepthView() *wgpu.TextureView { return nil }

func (f *fakeBackend) AcquireTexture() (*wgpu.Texture, *wgpu.TextureView, error) {
	return nil, nil, f.acquireErr
}

func (f *fakeBackend) Submit(*wgpu.CommandBuffer) {}

func (f *fakeBackend) Present() { f.presents++ }

func (f *fakeBackend) CreateMeshBuffers(string, []byte, []byte) (*wgpu.Buffer, *wgpu.Buffer, error) {
	return nil, nil, nil
}

func (f *fakeBackend) CreateBindGroupLayout(*wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	return nil, nil
}

func (f *fakeBackend) CreateUniformBindGroup(string, *wgpu.BindGroupLayout, uint64) (*wgpu.Buffer, *wgpu.BindGroup, error) {
	return nil, nil, nil
}

func (f *fakeBackend) WriteBuffer(_ *wgpu.Buffer, offset uint64, _ []byte) {
	f.writes = append(f.writes, offset)
}

func (f *fakeBackend) Device() *wgpu.Device { return nil }
func (f *fakeBackend) Queue() *wgpu.Queue   { return nil }
func (f *fakeBackend) Release()             { f.released = true }

func newTestContext(t *testing.T, width, height int, opts ...ContextBuilderOption) (*graphicsContext, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	c := newGraphicsContext(opts...)
	require.NoError(t, c.init(fb, width, height))
	return c, fb
}

func TestResize(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		wantConfigures int
		wantW, wantH   int
	}{
		{"zero width is ignored", 0, 600, 1, 800, 600},
		{"zero height is ignored", 800, 0, 1, 800, 600},
		{"same size is ignored", 800, 600, 1, 800, 600},
		{"new size reconfigures", 1024, 768, 2, 1024, 768},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, fb := newTestContext(t, 800, 600)
			c.Resize(tt.width, tt.height)

			assert.Len(t, fb.configures, tt.wantConfigures)
			cfg := c.Config()
			assert.Equal(t, tt.wantW, cfg.Width)
			assert.Equal(t, tt.wantH, cfg.Height)
		})
	}
}

func TestZeroSizedCreationWaitsForFirstResize(t *testing.T) {
	c, fb := newTestContext(t, 0, 0)
	cfg := c.Config()
	require.Equal(t, 1, cfg.Width)
	require.Equal(t, 1, cfg.Height)

	c.Resize(1, 1)
	assert.Len(t, fb.configures, 2, "first valid resize should reconfigure")
	c.Resize(1, 1)
	assert.Len(t, fb.configures, 2, "repeated size should be ignored")
}

func TestOptionsReachBackend(t *testing.T) {
	_, fb := newTestContext(t, 640, 480, WithPresentMode(PresentModeUncapped), WithDepth(false))
	require.NotEmpty(t, fb.configures)
	assert.Equal(t, configureCall{640, 480, PresentModeUncapped, false}, fb.configures[0])
	assert.Equal(t, wgpu.PresentModeFifo, PresentModeVSync.wgpuPresentMode())
	assert.Equal(t, wgpu.PresentModeImmediate, PresentModeUncapped.wgpuPresentMode())
}

func TestAcquireFrameWrapsError(t *testing.T) {
	c, fb := newTestContext(t, 800, 600)
	fb.acquireErr = errors.New("outdated")
	_, err := c.AcquireFrame()
	assert.ErrorIs(t, err, ErrSurfaceAcquireFailed)
	assert.ErrorIs(t, err, fb.acquireErr)
}

func TestPresentReleasesFrame(t *testing.T) {
	c, fb := newTestContext(t, 800, 600)
	f, err := c.AcquireFrame()
	require.NoError(t, err)
	c.Present(f)
	c.Present(nil)
	assert.Equal(t, 1, fb.presents)
}

func TestInitMeshBuffers(t *testing.T) {
	c, _ := newTestContext(t, 800, 600)
	p := bind_group_provider.NewBindGroupProvider("floor")

	assert.ErrorIs(t, c.InitMeshBuffers(p, nil, []byte{0, 0, 0, 0}, 1), mesh.ErrEmptyMesh)
	require.NoError(t, c.InitMeshBuffers(p, make([]byte, 72), make([]byte, 12), 3))
	assert.Equal(t, 3, p.IndexCount())
}

func TestWriteBuffersSkipsMissingBuffers(t *testing.T) {
	c, fb := newTestContext(t, 800, 600)
	bound := bind_group_provider.NewBindGroupProvider("camera")
	bound.SetBuffer(0, &wgpu.Buffer{})
	unbound := bind_group_provider.NewBindGroupProvider("model")

	c.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: bound, Binding: 0, Offset: 16, Data: []byte{1}},
		{Provider: unbound, Binding: 0, Data: []byte{2}},
	})
	assert.Equal(t, []uint64{16}, fb.writes)
}

func TestRelease(t *testing.T) {
	c, fb := newTestContext(t, 800, 600)
	c.Release()
	c.Release()
	assert.True(t, fb.released, "backend not released")
}
