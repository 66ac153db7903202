package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/uvr-client/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/mesh"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrDeviceUnavailable is returned when no adapter or device can be obtained.
	ErrDeviceUnavailable = errors.New("gpu device unavailable")

	// ErrSurfaceCreationFailed is returned when the window cannot provide a presentable surface.
	ErrSurfaceCreationFailed = errors.New("surface creation failed")

	// ErrSurfaceAcquireFailed is returned when the next swapchain texture cannot be acquired,
	// typically because the surface is outdated or lost. The frame should be skipped.
	ErrSurfaceAcquireFailed = errors.New("surface acquire failed")
)

// SurfaceSource is anything that can describe a platform surface, typically the window.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// SurfaceConfig is the current surface configuration.
type SurfaceConfig struct {
	Width       int
	Height      int
	Format      wgpu.TextureFormat
	PresentMode PresentMode
}

// Aspect returns Width/Height.
func (c SurfaceConfig) Aspect() float32 {
	if c.Height == 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Frame is one acquired swapchain texture and the view render passes target.
type Frame struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
}

// Release frees the view and texture without presenting.
func (f *Frame) Release() {
	if f.View != nil {
		f.View.Release()
		f.View = nil
	}
	if f.Texture != nil {
		f.Texture.Release()
		f.Texture = nil
	}
}

// graphicsContext is the implementation of the Context interface.
type graphicsContext struct {
	mu      *sync.Mutex
	backend contextBackend

	config SurfaceConfig
	depth  bool

	// pendingConfigure is set while the surface still has the placeholder size from a zero-sized
	// window, so the first valid Resize configures it.
	pendingConfigure bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
}

// Context owns the GPU device, the presentable surface and its depth attachment.
//
// All methods must be called from the thread that created the Context.
type Context interface {
	// Resize reconfigures the surface and recreates the depth texture. A zero width or height
	// (a minimized window) leaves the configuration untouched.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Config returns the current surface configuration.
	//
	// Returns:
	//   - SurfaceConfig: width, height, format and present mode
	Config() SurfaceConfig

	// SurfaceFormat returns the color format of the surface.
	SurfaceFormat() wgpu.TextureFormat

	// DepthEnabled reports whether the surface is backed by a depth texture.
	DepthEnabled() bool

	// DepthView returns the depth texture view, or nil when depth is disabled.
	DepthView() *wgpu.TextureView

	// Device returns the logical device.
	Device() *wgpu.Device

	// Queue returns the device queue.
	Queue() *wgpu.Queue

	// AcquireFrame gets the next swapchain texture.
	//
	// Returns:
	//   - *Frame: the acquired frame; pass it to Present or Release it
	//   - error: wrapping ErrSurfaceAcquireFailed
	AcquireFrame() (*Frame, error)

	// Submit submits a finished command buffer.
	//
	// Parameters:
	//   - cmd: the command buffer to submit
	Submit(cmd *wgpu.CommandBuffer)

	// Present presents the frame and releases it.
	//
	// Parameters:
	//   - frame: the frame returned by AcquireFrame
	Present(frame *Frame)

	// InitMeshBuffers creates GPU vertex and index buffers from raw byte data and stores them
	// on the given BindGroupProvider for later use in draw calls.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// CreateBindGroupLayout creates a bind group layout from a reflected descriptor.
	//
	// Parameters:
	//   - desc: the layout descriptor
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the created layout
	//   - error: if layout creation fails
	CreateBindGroupLayout(desc wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)

	// InitUniformBindGroup creates a uniform buffer at binding 0 and a bind group onto it, and stores
	// both on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the buffer and bind group on
	//   - layout: the layout the bind group must match
	//   - size: the uniform buffer size in bytes
	//
	// Returns:
	//   - error: if buffer or bind group creation fails
	InitUniformBindGroup(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, size uint64) error

	// WriteBuffers queues all staged buffer writes.
	// Each BufferWrite targets a specific buffer on a BindGroupProvider at a given binding and offset.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// Release frees the device, surface and every object the context owns.
	Release()
}

var _ Context = &graphicsContext{}
var _ mesh.Uploader = &graphicsContext{}

// NewContext creates the GPU device and configures a surface for the given source.
// A zero width or height is stored as 1 until the first valid Resize.
//
// Parameters:
//   - source: the window providing the surface descriptor
//   - width, height: the initial surface size in pixels
//   - opts: a variadic list of ContextBuilderOption functions
//
// Returns:
//   - Context: the ready-to-use context
//   - error: ErrSurfaceCreationFailed or ErrDeviceUnavailable on failure
func NewContext(source SurfaceSource, width, height int, opts ...ContextBuilderOption) (Context, error) {
	c := newGraphicsContext(opts...)
	if source == nil {
		return nil, fmt.Errorf("%w: nil surface source", ErrSurfaceCreationFailed)
	}
	backend, err := newWGPUContextBackend(source.SurfaceDescriptor(), c.forceFallbackAdapter)
	if err != nil {
		return nil, err
	}
	if err := c.init(backend, width, height); err != nil {
		backend.Release()
		return nil, err
	}
	log.Printf("[Renderer] surface %dx%d format=%v present=%s depth=%t",
		c.config.Width, c.config.Height, c.config.Format, c.config.PresentMode, c.depth)
	return c, nil
}

func newGraphicsContext(opts ...ContextBuilderOption) *graphicsContext {
	c := &graphicsContext{
		mu:    &sync.Mutex{},
		depth: true,
		config: SurfaceConfig{
			PresentMode: PresentModeVSync,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// init performs the first surface configuration on a freshly created backend.
func (c *graphicsContext) init(backend contextBackend, width, height int) error {
	c.backend = backend
	if width <= 0 || height <= 0 {
		c.pendingConfigure = true
		width, height = max(width, 1), max(height, 1)
	}
	return c.configure(width, height)
}

func (c *graphicsContext) configure(width, height int) error {
	format, err := c.backend.ConfigureSurface(width, height, c.config.PresentMode, c.depth)
	if err != nil {
		return err
	}
	c.config.Width = width
	c.config.Height = height
	c.config.Format = format
	return nil
}

func (c *graphicsContext) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.pendingConfigure && width == c.config.Width && height == c.config.Height {
		return
	}
	if err := c.configure(width, height); err != nil {
		log.Printf("[Renderer] resize to %dx%d failed: %v", width, height, err)
		return
	}
	c.pendingConfigure = false
}

func (c *graphicsContext) Config() SurfaceConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

func (c *graphicsContext) SurfaceFormat() wgpu.TextureFormat {
	return c.Config().Format
}

func (c *graphicsContext) DepthEnabled() bool {
	return c.depth
}

func (c *graphicsContext) DepthView() *wgpu.TextureView {
	if !c.depth {
		return nil
	}
	return c.backend.DepthView()
}

func (c *graphicsContext) Device() *wgpu.Device {
	return c.backend.Device()
}

func (c *graphicsContext) Queue() *wgpu.Queue {
	return c.backend.Queue()
}

func (c *graphicsContext) AcquireFrame() (*Frame, error) {
	tex, view, err := c.backend.AcquireTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceAcquireFailed, err)
	}
	return &Frame{Texture: tex, View: view}, nil
}

func (c *graphicsContext) Submit(cmd *wgpu.CommandBuffer) {
	c.backend.Submit(cmd)
}

func (c *graphicsContext) Present(frame *Frame) {
	if frame == nil {
		return
	}
	c.backend.Present()
	frame.Release()
}

func (c *graphicsContext) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	if len(vertexData) == 0 || len(indexData) == 0 {
		return fmt.Errorf("mesh %s: %w", provider.Label(), mesh.ErrEmptyMesh)
	}
	vertex, index, err := c.backend.CreateMeshBuffers(provider.Label(), vertexData, indexData)
	if err != nil {
		return fmt.Errorf("mesh %s: %w", provider.Label(), err)
	}
	provider.SetMeshBuffers(vertex, index, indexCount)
	return nil
}

func (c *graphicsContext) CreateBindGroupLayout(desc wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	return c.backend.CreateBindGroupLayout(&desc)
}

func (c *graphicsContext) InitUniformBindGroup(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, size uint64) error {
	buf, bindGroup, err := c.backend.CreateUniformBindGroup(provider.Label(), layout, size)
	if err != nil {
		return fmt.Errorf("uniform %s: %w", provider.Label(), err)
	}
	provider.SetBuffer(0, buf)
	provider.SetBindGroup(bindGroup)
	return nil
}

func (c *graphicsContext) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		c.backend.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (c *graphicsContext) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backend != nil {
		c.backend.Release()
		c.backend = nil
	}
}
