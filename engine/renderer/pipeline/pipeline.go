package pipeline

import (
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the depth attachment format every depth-tested pipeline is built against.
const DepthFormat = wgpu.TextureFormatDepth24Plus

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	key    string
	shader shader.Shader

	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline holds the configuration of one render pipeline: the WGSL module providing both stages
// plus depth, blend, cull and topology state. The GPU object is attached once Build has compiled it.
type Pipeline interface {
	// Key returns the unique key of this pipeline, used as its GPU label.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	Key() string

	// Shader returns the module providing the vertex and fragment stages.
	//
	// Returns:
	//   - shader.Shader: the pipeline's shader, or nil if none was set
	Shader() shader.Shader

	// RenderPipeline returns the compiled GPU pipeline.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the compiled pipeline, or nil before Build
	RenderPipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	// A pipeline without depth testing carries no depth-stencil state at all.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// BlendEnabled returns whether blending is enabled. When false the fragment replaces the target.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state used when blending is enabled.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline
	BlendState() *wgpu.BlendState

	// UsesVertexBuffers reports whether the shader consumes vertex buffers. Pipelines that generate
	// their vertices from the vertex index are drawn without binding any buffer.
	//
	// Returns:
	//   - bool: true if the shader reflects at least one vertex buffer layout
	UsesVertexBuffers() bool

	// SetRenderPipeline attaches the compiled GPU pipeline.
	//
	// Parameters:
	//   - rp: the WebGPU render pipeline to set
	SetRenderPipeline(rp *wgpu.RenderPipeline)

	// Release frees the compiled GPU pipeline. Calling it more than once is safe.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render Pipeline configuration. Defaults are depth test and write on,
// blending off, no culling, a CCW triangle list and a full write mask.
//
// Parameters:
//   - key: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(key string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:               key,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blendEnabled:      false,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	if !p.depthTestEnabled {
		p.depthWriteEnabled = false
	}
	return p
}

// NewWorldPipeline configures the opaque world pass: back-face culled CCW triangles that replace
// the target, depth tested with Less and written when depth is enabled.
//
// Parameters:
//   - s: the world shader
//   - depth: whether the context owns a depth attachment
//
// Returns:
//   - Pipeline: the world pipeline configuration
func NewWorldPipeline(s shader.Shader, depth bool) Pipeline {
	return NewPipeline("world",
		WithShader(s),
		WithTopology(wgpu.PrimitiveTopologyTriangleList),
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCCW),
		WithBlendEnabled(false),
		WithDepthTestEnabled(depth),
		WithDepthWriteEnabled(depth),
	)
}

// NewWorldLinesPipeline configures the world pass for line meshes such as wireframe props.
//
// Parameters:
//   - s: the world shader
//   - depth: whether the context owns a depth attachment
//
// Returns:
//   - Pipeline: the line-list world pipeline configuration
func NewWorldLinesPipeline(s shader.Shader, depth bool) Pipeline {
	return NewPipeline("world_lines",
		WithShader(s),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithCullMode(wgpu.CullModeNone),
		WithBlendEnabled(false),
		WithDepthTestEnabled(depth),
		WithDepthWriteEnabled(depth),
	)
}

// NewOverlayPipeline configures the screen-space overlay: alpha blended, unculled, no depth.
//
// Parameters:
//   - s: the overlay shader
//   - topology: the overlay primitive topology, usually a line list
//
// Returns:
//   - Pipeline: the overlay pipeline configuration
func NewOverlayPipeline(s shader.Shader, topology wgpu.PrimitiveTopology) Pipeline {
	return NewPipeline("overlay",
		WithShader(s),
		WithTopology(topology),
		WithCullMode(wgpu.CullModeNone),
		WithBlendEnabled(true),
		WithDepthTestEnabled(false),
	)
}

// NewSkyPipeline configures the background pass: a full-screen triangle with no buffers and no depth.
//
// Parameters:
//   - s: the sky shader
//
// Returns:
//   - Pipeline: the sky pipeline configuration
func NewSkyPipeline(s shader.Shader) Pipeline {
	return NewPipeline("sky",
		WithShader(s),
		WithTopology(wgpu.PrimitiveTopologyTriangleList),
		WithCullMode(wgpu.CullModeNone),
		WithBlendEnabled(false),
		WithDepthTestEnabled(false),
	)
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) UsesVertexBuffers() bool {
	return p.shader != nil && len(p.shader.VertexLayouts()) > 0
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
