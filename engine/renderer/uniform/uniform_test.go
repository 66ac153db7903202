package uniform

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/uvr-client/common"
	"github.com/Carmen-Shannon/uvr-client/engine/camera"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/bind_group_provider"
	"github.com/stretchr/testify/assert"
)

func TestMarshalSizes(t *testing.T) {
	tests := []struct {
		name string
		u    Marshaler
	}{
		{"camera", CameraUniform{}},
		{"model", ModelUniform{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.u.Size(), uint64(len(tt.u.Marshal())))
		})
	}
}

func TestModelUniformTintOffset(t *testing.T) {
	u := ModelUniform{Tint: [4]float32{0.25, 0.5, 0.75, 1}}
	common.Identity(u.Model[:])
	b := u.Marshal()
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(b[64:])), "tint.r at offset 64")
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(b[60:])), "model[15] at offset 60")
}

func TestCameraUniformMatchesProjectionTimesView(t *testing.T) {
	cam := camera.NewCamera(camera.WithYaw(0.4), camera.WithPitch(-0.3))
	cam.Follow([3]float32{1, 0, -2})
	aspect := float32(4.0 / 3.0)

	var proj, want [16]float32
	common.Perspective(proj[:], camera.DefaultFov, aspect, camera.DefaultNear, camera.DefaultFar)
	view := cam.ViewMatrix()
	common.Mul4(want[:], proj[:], view[:])

	got := NewCameraUniform(cam, aspect)
	assert.InDeltaSlice(t, want[:], got.ViewProj[:], 1e-5)
}

func TestWriteTargetsBindingZero(t *testing.T) {
	p := bind_group_provider.NewBindGroupProvider("camera")
	w := Write(p, CameraUniform{})
	assert.Same(t, p, w.Provider)
	assert.Zero(t, w.Binding)
	assert.Zero(t, w.Offset)
	assert.Len(t, w.Data, 64)
}
