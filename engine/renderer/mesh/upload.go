package mesh

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/uvr-client/common"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/bind_group_provider"
)

// ErrEmptyMesh is returned by Upload when the geometry has no vertices or no indices.
var ErrEmptyMesh = errors.New("mesh has no vertices or indices")

// Uploader creates GPU vertex and index buffers for a provider. The graphics context implements it.
type Uploader interface {
	// InitMeshBuffers creates and fills the vertex and index buffers of provider.
	//
	// Parameters:
	//   - provider: the provider that takes ownership of the new buffers
	//   - vertexData: little-endian vertex bytes
	//   - indexData: little-endian uint32 index bytes
	//   - indexCount: number of indices in indexData
	//
	// Returns:
	//   - error: if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
}

// Mesh is an uploaded Data: GPU buffers plus the topology they are drawn with.
type Mesh struct {
	Provider bind_group_provider.BindGroupProvider
	Topology Topology
}

// IndexCount returns the number of indices to pass to DrawIndexed.
func (m Mesh) IndexCount() int {
	if m.Provider == nil {
		return 0
	}
	return m.Provider.IndexCount()
}

// Release frees the GPU buffers behind m.
func (m Mesh) Release() {
	if m.Provider != nil {
		m.Provider.Release()
	}
}

// Upload serializes d and hands it to u, returning the drawable Mesh.
//
// Parameters:
//   - u: the uploader creating GPU buffers
//   - label: debug label for the buffers
//   - d: geometry to upload
//
// Returns:
//   - Mesh: the uploaded mesh, whose IndexCount equals len(d.Indices)
//   - error: ErrEmptyMesh, or a wrapped serialization/upload failure
func Upload(u Uploader, label string, d Data) (Mesh, error) {
	if len(d.Vertices) == 0 || len(d.Indices) == 0 {
		return Mesh{}, fmt.Errorf("upload %s: %w", label, ErrEmptyMesh)
	}
	vb, err := common.LittleEndianBytes(d.Vertices)
	if err != nil {
		return Mesh{}, fmt.Errorf("upload %s: encode vertices: %w", label, err)
	}
	ib, err := common.LittleEndianBytes(d.Indices)
	if err != nil {
		return Mesh{}, fmt.Errorf("upload %s: encode indices: %w", label, err)
	}

	provider := bind_group_provider.NewBindGroupProvider(label)
	if err := u.InitMeshBuffers(provider, vb, ib, len(d.Indices)); err != nil {
		provider.Release()
		return Mesh{}, fmt.Errorf("upload %s: %w", label, err)
	}
	return Mesh{Provider: provider, Topology: d.Topology}, nil
}
