package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label used for GPU object names and logging.
	label string

	// The following fields are GPU allocated resources populated by the graphics context, not by the caller.

	// bindGroup is the uniform bind group, or nil for mesh-only providers.
	bindGroup *wgpu.BindGroup
	// buffers holds the uniform buffers keyed by binding index.
	buffers map[int]*wgpu.Buffer

	// vertexBuffer is the GPU vertex buffer, or nil for uniform-only providers.
	vertexBuffer *wgpu.Buffer
	// indexBuffer is the GPU index buffer, or nil for uniform-only providers.
	indexBuffer *wgpu.Buffer
	// indexCount is the number of indices passed to DrawIndexed.
	indexCount int
}

// BindGroupProvider owns the GPU objects backing one drawable resource: a uniform bind group with its
// buffers, or a vertex/index buffer pair, or both.
//
// Usage pattern:
//  1. A component creates a provider with NewBindGroupProvider.
//  2. The graphics context fills it via InitUniformBindGroup or InitMeshBuffers.
//  3. Per frame, BufferWrite records targeting the provider are flushed through WriteBuffers.
//  4. The frame renderer binds BindGroup, VertexBuffer and IndexBuffer while encoding passes.
//
// Bind group layouts are shared between providers and are owned by whoever created them, so Release
// does not touch them.
type BindGroupProvider interface {
	// Release releases every GPU object held by this provider. Safe to call more than once.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the bind group, or nil if none has been created.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// Buffer returns the uniform buffer at a binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetBindGroup stores the bind group after GPU initialization.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBuffer stores a uniform buffer for a binding after GPU initialization.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the created buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetMeshBuffers stores the vertex and index buffers and the index count in one step.
	//
	// Parameters:
	//   - vertex: the created vertex buffer
	//   - index: the created index buffer
	//   - count: the number of indices in index
	SetMeshBuffers(vertex, index *wgpu.Buffer, count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty BindGroupProvider.
//
// Parameters:
//   - label: debug label for the provider and its GPU objects
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetMeshBuffers(vertex, index *wgpu.Buffer, count int) {
	p.vertexBuffer = vertex
	p.indexBuffer = index
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	// The bind group references the buffers, so it goes first.
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
