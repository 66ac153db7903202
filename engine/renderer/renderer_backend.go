package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing. This is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// String returns the name of the present mode.
func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	}
	return "unknown"
}

// wgpuPresentMode maps a PresentMode onto the surface present mode.
func (m PresentMode) wgpuPresentMode() wgpu.PresentMode {
	if m == PresentModeUncapped {
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeFifo
}

// contextBackend owns the GPU objects behind a Context. The Context keeps the surface
// bookkeeping and calls into the backend only for work that touches the device.
type contextBackend interface {
	// ConfigureSurface (re)configures the surface and, when depth is set, recreates the depth texture.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels, both non-zero
	//   - mode: the present mode to configure
	//   - depth: whether a depth texture should back the surface
	//
	// Returns:
	//   - wgpu.TextureFormat: the surface color format
	//   - error: if the depth texture could not be created
	ConfigureSurface(width, height int, mode PresentMode, depth bool) (wgpu.TextureFormat, error)

	// DepthView returns the current depth texture view, or nil when depth is disabled.
	DepthView() *wgpu.TextureView

	// AcquireTexture gets the next swapchain texture and a view onto it.
	AcquireTexture() (*wgpu.Texture, *wgpu.TextureView, error)

	// Submit submits a finished command buffer to the queue.
	Submit(cmd *wgpu.CommandBuffer)

	// Present presents the most recently acquired texture.
	Present()

	// CreateMeshBuffers creates and fills a vertex and an index buffer.
	CreateMeshBuffers(label string, vertexData, indexData []byte) (*wgpu.Buffer, *wgpu.Buffer, error)

	// CreateBindGroupLayout creates a bind group layout from a reflected descriptor.
	CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)

	// CreateUniformBindGroup creates a uniform buffer of the given size at binding 0 and a bind group onto it.
	CreateUniformBindGroup(label string, layout *wgpu.BindGroupLayout, size uint64) (*wgpu.Buffer, *wgpu.BindGroup, error)

	// WriteBuffer queues a write into a GPU buffer.
	WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte)

	// Device returns the logical device.
	Device() *wgpu.Device

	// Queue returns the device queue.
	Queue() *wgpu.Queue

	// Release frees every GPU object the backend owns.
	Release()
}
