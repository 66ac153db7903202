package uniform

import (
	"bytes"
	"encoding/binary"

	"github.com/Carmen-Shannon/uvr-client/engine/camera"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/bind_group_provider"
)

// Bind group indices shared by the world and overlay shaders.
const (
	CameraGroup = 0
	ModelGroup  = 1
)

// CameraUniform is the per-frame camera data uploaded to group 0, binding 0.
// GPU layout (64 bytes): view_proj mat4x4<f32>.
type CameraUniform struct {
	ViewProj [16]float32
}

// CameraUniformSource is the WGSL declaration matching CameraUniform.
const CameraUniformSource = `struct CameraUniform {
    view_proj: mat4x4<f32>,
};`

// Size returns the byte size of the uniform as laid out on the GPU.
func (CameraUniform) Size() uint64 {
	return 64
}

// Marshal serializes the uniform to little-endian bytes for GPU upload.
func (u CameraUniform) Marshal() []byte {
	var buf bytes.Buffer
	buf.Grow(int(u.Size()))
	binary.Write(&buf, binary.LittleEndian, u.ViewProj)
	return buf.Bytes()
}

// NewCameraUniform computes the camera uniform for a viewport: projection * view, where the
// projection is the camera's right-handed perspective and the view its look-at with +Y up.
//
// Parameters:
//   - cam: the orbit camera
//   - aspect: viewport width / height
//
// Returns:
//   - CameraUniform: the uniform to upload
func NewCameraUniform(cam camera.Camera, aspect float32) CameraUniform {
	return CameraUniform{ViewProj: cam.ViewProjectionMatrix(aspect)}
}

// ModelUniform is the per-draw data uploaded to group 1, binding 0.
// GPU layout (80 bytes):
//
//	offset 0:  model mat4x4<f32>
//	offset 64: tint  vec4<f32>
type ModelUniform struct {
	Model [16]float32
	Tint  [4]float32
}

// ModelUniformSource is the WGSL declaration matching ModelUniform.
const ModelUniformSource = `struct ModelUniform {
    model: mat4x4<f32>,
    tint: vec4<f32>,
};`

// Size returns the byte size of the uniform as laid out on the GPU.
func (ModelUniform) Size() uint64 {
	return 80
}

// Marshal serializes the uniform to little-endian bytes for GPU upload.
func (u ModelUniform) Marshal() []byte {
	var buf bytes.Buffer
	buf.Grow(int(u.Size()))
	binary.Write(&buf, binary.LittleEndian, u.Model)
	binary.Write(&buf, binary.LittleEndian, u.Tint)
	return buf.Bytes()
}

// Marshaler is implemented by every uniform type.
type Marshaler interface {
	Size() uint64
	Marshal() []byte
}

// Write builds the queued write that uploads data into binding 0 of provider.
//
// Parameters:
//   - provider: the provider owning the uniform buffer
//   - data: the uniform value
//
// Returns:
//   - bind_group_provider.BufferWrite: the write record
func Write(provider bind_group_provider.BindGroupProvider, data Marshaler) bind_group_provider.BufferWrite {
	return bind_group_provider.BufferWrite{
		Provider: provider,
		Binding:  0,
		Offset:   0,
		Data:     data.Marshal(),
	}
}
