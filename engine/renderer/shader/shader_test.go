package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/uvr-client/engine/renderer/mesh"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/uniform"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldShaderReflection(t *testing.T) {
	s, err := Load("world", AssetWorld)
	require.NoError(t, err)
	assert.Equal(t, "vs_main", s.EntryPoint(ShaderTypeVertex))
	assert.Equal(t, "fs_main", s.EntryPoint(ShaderTypeFragment))
	assert.NotContains(t, s.Source(), "@uvr:", "include directives left in processed source")

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)
	vl := layouts[0]
	assert.EqualValues(t, mesh.VertexStride, vl.ArrayStride)
	wantAttrs := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
	}
	assert.Equal(t, wantAttrs, vl.Attributes)

	tests := []struct {
		group   int
		varName string
		size    uint64
	}{
		{uniform.CameraGroup, "camera", uniform.CameraUniform{}.Size()},
		{uniform.ModelGroup, "model", uniform.ModelUniform{}.Size()},
	}
	for _, tt := range tests {
		desc := s.BindGroupLayoutDescriptor(tt.group)
		require.Len(t, desc.Entries, 1, "group %d", tt.group)
		e := desc.Entries[0]
		assert.Equal(t, wgpu.BufferBindingTypeUniform, e.Buffer.Type, "group %d", tt.group)
		assert.Equal(t, tt.size, e.Buffer.MinBindingSize, "group %d", tt.group)
		assert.Equal(t, tt.varName, s.BindGroupVarName(tt.group, 0), "group %d", tt.group)
	}
}

func TestSkyShaderHasNoInputs(t *testing.T) {
	s, err := Load("sky", AssetSky)
	require.NoError(t, err)
	assert.Empty(t, s.VertexLayouts())
	assert.Empty(t, s.BindGroupLayoutDescriptors())
}

func TestOverlayShaderSharesVertexLayout(t *testing.T) {
	s, err := Load("overlay", AssetOverlay)
	require.NoError(t, err)
	require.Len(t, s.VertexLayouts(), 1)
	assert.EqualValues(t, mesh.VertexStride, s.VertexLayouts()[0].ArrayStride)
	assert.Empty(t, s.BindGroupLayoutDescriptors())
}

func TestPreProcessor(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    []string
		wantErr bool
	}{
		{
			name:   "expands include",
			source: "// @uvr:include camera\nfn f() {}",
			want:   []string{"struct CameraUniform", "fn f() {}"},
		},
		{
			name:   "expands each name once",
			source: "// @uvr:include vertex\n//@uvr:include vertex",
			want:   []string{"struct VertexInput"},
		},
		{
			name:    "unknown include",
			source:  "// @uvr:include lights",
			wantErr: true,
		},
		{
			name:    "malformed directive",
			source:  "// @uvr:inclde camera",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewPreProcessor().Process(tt.source)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			assert.LessOrEqual(t, strings.Count(out, "struct VertexInput"), 1, "include expanded twice")
		})
	}
}

func TestMissingEntryPoint(t *testing.T) {
	_, err := NewShader("broken", "@vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(); }")
	assert.ErrorIs(t, err, ErrMissingEntryPoint)
}

func TestStructLayoutRules(t *testing.T) {
	structs := parseStructBlocks(stripComments(`
struct Inner { a: vec3<f32>, b: f32, };
struct Outer {
    x: f32,
    inner: Inner,      // aligned to 16
    rows: array<vec4<f32>, 2>,
};`))
	sizes := computeStructSizes(structs)
	assert.EqualValues(t, 16, sizes["Inner"].size)
	assert.EqualValues(t, 16, sizes["Inner"].align)
	assert.EqualValues(t, 64, sizes["Outer"].size)
}
