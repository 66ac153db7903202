package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderIsEmpty(t *testing.T) {
	p := NewBindGroupProvider("floor", WithIndexCount(6))
	assert.Equal(t, "floor", p.Label())
	assert.Equal(t, 6, p.IndexCount())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Nil(t, p.Buffer(0))

	p.Release()
	p.Release()
	assert.Zero(t, p.IndexCount(), "IndexCount after Release")
}
