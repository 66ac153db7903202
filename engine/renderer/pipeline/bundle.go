package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/uvr-client/engine/renderer/shader"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/uniform"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrShaderCompilation wraps every failure to turn a pass shader into a GPU pipeline.
var ErrShaderCompilation = errors.New("shader compilation failed")

// Device is the subset of *wgpu.Device needed to compile pipelines.
type Device interface {
	CreateShaderModule(descriptor *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error)
	CreatePipelineLayout(descriptor *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error)
	CreateRenderPipeline(descriptor *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error)
}

// Layouts carries the bind group layouts shared by every pipeline that reads the camera or model uniform.
type Layouts struct {
	Camera *wgpu.BindGroupLayout
	Model  *wgpu.BindGroupLayout
}

// forGroup returns the layout bound at a @group index.
func (l Layouts) forGroup(group int) *wgpu.BindGroupLayout {
	switch group {
	case uniform.CameraGroup:
		return l.Camera
	case uniform.ModelGroup:
		return l.Model
	}
	return nil
}

// bundle is the implementation of the Bundle interface.
type bundle struct {
	world      Pipeline
	worldLines Pipeline
	overlay    Pipeline
	sky        Pipeline
}

// Bundle holds the compiled pipelines of every render pass.
type Bundle interface {
	// World returns the depth-tested triangle pipeline for floor, avatar and solid props.
	World() Pipeline

	// WorldLines returns the depth-tested line pipeline for wireframe props.
	WorldLines() Pipeline

	// Overlay returns the alpha-blended screen-space pipeline for the compass.
	Overlay() Pipeline

	// Sky returns the background pipeline.
	//
	// Returns:
	//   - Pipeline: the sky pipeline, or nil when the bundle was built without a sky
	Sky() Pipeline

	// HasSky reports whether a sky pipeline was built.
	HasSky() bool

	// Release frees every compiled pipeline.
	Release()
}

var _ Bundle = &bundle{}

// bundleConfig collects the BundleOption settings.
type bundleConfig struct {
	depth           bool
	sky             bool
	overlayTopology wgpu.PrimitiveTopology
}

// BundleOption is a functional option used to configure Build.
type BundleOption func(*bundleConfig)

// WithDepth sets whether world pipelines are built with a depth-stencil state. It must match
// whether the render target carries a depth attachment. Defaults to true.
//
// Parameters:
//   - enabled: true when the context owns a depth texture
//
// Returns:
//   - BundleOption: a function that sets the depth flag
func WithDepth(enabled bool) BundleOption {
	return func(c *bundleConfig) {
		c.depth = enabled
	}
}

// WithSky sets whether the sky pipeline is built. Defaults to true.
//
// Parameters:
//   - enabled: whether to build the sky pass
//
// Returns:
//   - BundleOption: a function that sets the sky flag
func WithSky(enabled bool) BundleOption {
	return func(c *bundleConfig) {
		c.sky = enabled
	}
}

// WithOverlayTopology sets the overlay primitive topology. Defaults to a line list.
//
// Parameters:
//   - topology: the overlay topology
//
// Returns:
//   - BundleOption: a function that sets the overlay topology
func WithOverlayTopology(topology wgpu.PrimitiveTopology) BundleOption {
	return func(c *bundleConfig) {
		c.overlayTopology = topology
	}
}

// Build loads the embedded pass shaders and compiles every pass pipeline against the surface format.
//
// Parameters:
//   - dev: the device used to create modules, layouts and pipelines
//   - format: the surface color format
//   - layouts: the shared camera and model bind group layouts
//   - opts: a variadic list of BundleOption functions
//
// Returns:
//   - Bundle: the compiled pipelines
//   - error: wrapping ErrShaderCompilation if any shader, layout or pipeline fails
func Build(dev Device, format wgpu.TextureFormat, layouts Layouts, opts ...BundleOption) (Bundle, error) {
	cfg := &bundleConfig{
		depth:           true,
		sky:             true,
		overlayTopology: wgpu.PrimitiveTopologyLineList,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	worldShader, err := shader.Load("world", shader.AssetWorld)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompilation, err)
	}
	overlayShader, err := shader.Load("overlay", shader.AssetOverlay)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompilation, err)
	}

	b := &bundle{
		world:      NewWorldPipeline(worldShader, cfg.depth),
		worldLines: NewWorldLinesPipeline(worldShader, cfg.depth),
		overlay:    NewOverlayPipeline(overlayShader, cfg.overlayTopology),
	}
	if cfg.sky {
		skyShader, err := shader.Load("sky", shader.AssetSky)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrShaderCompilation, err)
		}
		b.sky = NewSkyPipeline(skyShader)
	}

	modules := make(map[string]*wgpu.ShaderModule)
	defer func() {
		for _, m := range modules {
			if m != nil {
				m.Release()
			}
		}
	}()

	for _, p := range b.all() {
		if err := compile(dev, p, format, layouts, modules); err != nil {
			b.Release()
			return nil, err
		}
	}
	return b, nil
}

// MustBuild is Build that panics on error.
func MustBuild(dev Device, format wgpu.TextureFormat, layouts Layouts, opts ...BundleOption) Bundle {
	b, err := Build(dev, format, layouts, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// compile creates (or reuses) the shader module for p, its pipeline layout and the render pipeline.
func compile(dev Device, p Pipeline, format wgpu.TextureFormat, layouts Layouts, modules map[string]*wgpu.ShaderModule) error {
	s := p.Shader()
	module, ok := modules[s.Key()]
	if !ok {
		var err error
		module, err = dev.CreateShaderModule(s.Module())
		if err != nil {
			return fmt.Errorf("%w: module %s: %w", ErrShaderCompilation, s.Key(), err)
		}
		modules[s.Key()] = module
	}

	groupLayouts, err := groupLayoutsFor(s, layouts)
	if err != nil {
		return fmt.Errorf("%w: pipeline %s: %w", ErrShaderCompilation, p.Key(), err)
	}
	pipelineLayout, err := dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.Key(),
		BindGroupLayouts: groupLayouts,
	})
	if err != nil {
		return fmt.Errorf("%w: layout %s: %w", ErrShaderCompilation, p.Key(), err)
	}
	if pipelineLayout != nil {
		defer pipelineLayout.Release()
	}

	created, err := dev.CreateRenderPipeline(renderPipelineDescriptor(p, module, format, pipelineLayout))
	if err != nil {
		return fmt.Errorf("%w: pipeline %s: %w", ErrShaderCompilation, p.Key(), err)
	}
	p.SetRenderPipeline(created)
	return nil
}

// groupLayoutsFor orders the shared layouts by the @group indices the shader declares.
// Groups must be contiguous from 0 and each must have a shared layout.
func groupLayoutsFor(s shader.Shader, layouts Layouts) ([]*wgpu.BindGroupLayout, error) {
	descs := s.BindGroupLayoutDescriptors()
	groups := make([]int, 0, len(descs))
	for g := range descs {
		groups = append(groups, g)
	}
	sort.Ints(groups)

	out := make([]*wgpu.BindGroupLayout, 0, len(groups))
	for i, g := range groups {
		if g != i {
			return nil, fmt.Errorf("bind group %d declared without group %d", g, i)
		}
		l := layouts.forGroup(g)
		if l == nil {
			return nil, fmt.Errorf("no shared layout for bind group %d", g)
		}
		out = append(out, l)
	}
	return out, nil
}

// renderPipelineDescriptor maps a pipeline configuration onto the WebGPU descriptor. Pipelines
// without a depth test get no depth-stencil state, matching passes that carry no depth attachment.
func renderPipelineDescriptor(p Pipeline, module *wgpu.ShaderModule, format wgpu.TextureFormat, layout *wgpu.PipelineLayout) *wgpu.RenderPipelineDescriptor {
	s := p.Shader()

	target := wgpu.ColorTargetState{
		Format:    format,
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	desc := &wgpu.RenderPipelineDescriptor{
		Label:  p.Key() + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: s.EntryPoint(shader.ShaderTypeVertex),
			Buffers:    s.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: s.EntryPoint(shader.ShaderTypeFragment),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
	if p.DepthTestEnabled() {
		desc.DepthStencil = &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}
	return desc
}

// all lists the configured pipelines in pass order, skipping the sky when absent.
func (b *bundle) all() []Pipeline {
	ps := make([]Pipeline, 0, 4)
	if b.sky != nil {
		ps = append(ps, b.sky)
	}
	return append(ps, b.world, b.worldLines, b.overlay)
}

func (b *bundle) World() Pipeline {
	return b.world
}

func (b *bundle) WorldLines() Pipeline {
	return b.worldLines
}

func (b *bundle) Overlay() Pipeline {
	return b.overlay
}

func (b *bundle) Sky() Pipeline {
	return b.sky
}

func (b *bundle) HasSky() bool {
	return b.sky != nil
}

func (b *bundle) Release() {
	for _, p := range b.all() {
		p.Release()
	}
}
