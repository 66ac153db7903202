package pipeline

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/uvr-client/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	modules        []string
	layouts        []*wgpu.PipelineLayoutDescriptor
	pipelines      []*wgpu.RenderPipelineDescriptor
	failPipelineAt int
}

func (d *fakeDevice) CreateShaderModule(desc *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error) {
	d.modules = append(d.modules, desc.Label)
	return nil, nil
}

func (d *fakeDevice) CreatePipelineLayout(desc *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	d.layouts = append(d.layouts, desc)
	return nil, nil
}

func (d *fakeDevice) CreateRenderPipeline(desc *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	d.pipelines = append(d.pipelines, desc)
	if d.failPipelineAt > 0 && len(d.pipelines) == d.failPipelineAt {
		return nil, errors.New("validation error")
	}
	return nil, nil
}

func testLayouts() Layouts {
	return Layouts{Camera: &wgpu.BindGroupLayout{}, Model: &wgpu.BindGroupLayout{}}
}

func mustLoad(t *testing.T, key, asset string) shader.Shader {
	t.Helper()
	s, err := shader.Load(key, asset)
	require.NoError(t, err, "Load(%s)", asset)
	return s
}

func TestNewPipelineDisablingDepthTestDisablesWrite(t *testing.T) {
	p := NewPipeline("p", WithDepthTestEnabled(false), WithDepthWriteEnabled(true))
	assert.False(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
}

func TestRenderPipelineDescriptor(t *testing.T) {
	world := mustLoad(t, "world", shader.AssetWorld)
	overlay := mustLoad(t, "overlay", shader.AssetOverlay)
	sky := mustLoad(t, "sky", shader.AssetSky)
	format := wgpu.TextureFormatBGRA8UnormSrgb

	tests := []struct {
		name      string
		p         Pipeline
		topology  wgpu.PrimitiveTopology
		cull      wgpu.CullMode
		depth     bool
		blend     bool
		buffers   int
		usesVerts bool
	}{
		{"world with depth", NewWorldPipeline(world, true), wgpu.PrimitiveTopologyTriangleList, wgpu.CullModeBack, true, false, 1, true},
		{"world without depth", NewWorldPipeline(world, false), wgpu.PrimitiveTopologyTriangleList, wgpu.CullModeBack, false, false, 1, true},
		{"world lines", NewWorldLinesPipeline(world, true), wgpu.PrimitiveTopologyLineList, wgpu.CullModeNone, true, false, 1, true},
		{"overlay", NewOverlayPipeline(overlay, wgpu.PrimitiveTopologyLineList), wgpu.PrimitiveTopologyLineList, wgpu.CullModeNone, false, true, 1, true},
		{"sky", NewSkyPipeline(sky), wgpu.PrimitiveTopologyTriangleList, wgpu.CullModeNone, false, false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := renderPipelineDescriptor(tt.p, nil, format, nil)

			assert.Equal(t, tt.topology, desc.Primitive.Topology)
			assert.Equal(t, tt.cull, desc.Primitive.CullMode)
			assert.Equal(t, wgpu.FrontFaceCCW, desc.Primitive.FrontFace)

			require.Equal(t, tt.depth, desc.DepthStencil != nil, "has depth stencil")
			if tt.depth {
				assert.Equal(t, DepthFormat, desc.DepthStencil.Format)
				assert.True(t, desc.DepthStencil.DepthWriteEnabled)
				assert.Equal(t, wgpu.CompareFunctionLess, desc.DepthStencil.DepthCompare)
			}

			targets := desc.Fragment.Targets
			require.Len(t, targets, 1)
			require.Equal(t, format, targets[0].Format)
			require.Equal(t, tt.blend, targets[0].Blend != nil, "has blend")
			if tt.blend {
				assert.Equal(t, wgpu.BlendFactorSrcAlpha, targets[0].Blend.Color.SrcFactor)
			}

			assert.Len(t, desc.Vertex.Buffers, tt.buffers)
			assert.Equal(t, tt.usesVerts, tt.p.UsesVertexBuffers())
			assert.Equal(t, "vs_main", desc.Vertex.EntryPoint)
			assert.Equal(t, "fs_main", desc.Fragment.EntryPoint)
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		opts      []BundleOption
		modules   int
		pipelines int
		hasSky    bool
	}{
		{"with sky", nil, 3, 4, true},
		{"without sky", []BundleOption{WithSky(false)}, 2, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := &fakeDevice{}
			b, err := Build(dev, wgpu.TextureFormatBGRA8Unorm, testLayouts(), tt.opts...)
			require.NoError(t, err)
			assert.Len(t, dev.modules, tt.modules)
			assert.Len(t, dev.pipelines, tt.pipelines)
			assert.Equal(t, tt.hasSky, b.HasSky())
			assert.Equal(t, tt.hasSky, b.Sky() != nil)
			for i, l := range dev.layouts {
				want := 0
				if l.Label == "world" || l.Label == "world_lines" {
					want = 2
				}
				assert.Len(t, l.BindGroupLayouts, want, "layout %d (%s)", i, l.Label)
			}
			b.Release()
		})
	}
}

func TestBuildWrapsShaderCompilation(t *testing.T) {
	tests := []struct {
		name    string
		dev     *fakeDevice
		layouts Layouts
	}{
		{"pipeline creation fails", &fakeDevice{failPipelineAt: 2}, testLayouts()},
		{"missing shared layout", &fakeDevice{}, Layouts{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.dev, wgpu.TextureFormatBGRA8Unorm, tt.layouts)
			assert.ErrorIs(t, err, ErrShaderCompilation)
		})
	}
}

func TestMustBuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustBuild(&fakeDevice{failPipelineAt: 1}, wgpu.TextureFormatBGRA8Unorm, testLayouts())
	})
}
