package renderer

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/uvr-client/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuContextBackend struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView
}

var _ contextBackend = &wgpuContextBackend{}

// newWGPUContextBackend creates the instance, surface, adapter, device and queue. The calling
// goroutine is locked to its OS thread, since surface presentation must stay on the window thread.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor of the window
//   - forceFallbackAdapter: whether to request a software adapter
//
// Returns:
//   - *wgpuContextBackend: the initialized backend
//   - error: ErrSurfaceCreationFailed or ErrDeviceUnavailable
func newWGPUContextBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*wgpuContextBackend, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("%w: nil surface descriptor", ErrSurfaceCreationFailed)
	}
	runtime.LockOSThread()

	b := &wgpuContextBackend{
		instance: wgpu.CreateInstance(nil),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)
	if b.surface == nil {
		b.Release()
		return nil, ErrSurfaceCreationFailed
	}

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("%w: request adapter: %w", ErrDeviceUnavailable, err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("%w: request device: %w", ErrDeviceUnavailable, err)
	}
	b.device = d
	b.queue = d.GetQueue()

	return b, nil
}

func (b *wgpuContextBackend) ConfigureSurface(width, height int, mode PresentMode, depth bool) (wgpu.TextureFormat, error) {
	capabilities := b.surface.GetCapabilities(b.adapter)
	format := capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: mode.wgpuPresentMode(),
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseDepth()
	if !depth {
		return format, nil
	}

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        pipeline.DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return format, fmt.Errorf("create depth texture: %w", err)
	}
	view, err := depthTexture.CreateView(nil)
	if err != nil {
		depthTexture.Release()
		return format, fmt.Errorf("create depth view: %w", err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView = view

	return format, nil
}

func (b *wgpuContextBackend) releaseDepth() {
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuContextBackend) DepthView() *wgpu.TextureView {
	return b.depthTextureView
}

func (b *wgpuContextBackend) AcquireTexture() (*wgpu.Texture, *wgpu.TextureView, error) {
	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return nil, nil, err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return nil, nil, err
	}
	return surfaceTexture, view, nil
}

func (b *wgpuContextBackend) Submit(cmd *wgpu.CommandBuffer) {
	b.queue.Submit(cmd)
}

func (b *wgpuContextBackend) Present() {
	b.surface.Present()
}

func (b *wgpuContextBackend) CreateMeshBuffers(label string, vertexData, indexData []byte) (*wgpu.Buffer, *wgpu.Buffer, error) {
	vertex, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Vertex Buffer",
		Size:             uint64(len(vertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, nil, err
	}
	b.queue.WriteBuffer(vertex, 0, vertexData)

	index, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Index Buffer",
		Size:             uint64(len(indexData)),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		vertex.Release()
		return nil, nil, err
	}
	b.queue.WriteBuffer(index, 0, indexData)

	return vertex, index, nil
}

func (b *wgpuContextBackend) CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	return b.device.CreateBindGroupLayout(desc)
}

func (b *wgpuContextBackend) CreateUniformBindGroup(label string, layout *wgpu.BindGroupLayout, size uint64) (*wgpu.Buffer, *wgpu.BindGroup, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, nil, err
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		buf.Release()
		return nil, nil, err
	}
	return buf, bindGroup, nil
}

func (b *wgpuContextBackend) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) {
	b.queue.WriteBuffer(buf, offset, data)
}

func (b *wgpuContextBackend) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuContextBackend) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuContextBackend) Release() {
	b.releaseDepth()
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
