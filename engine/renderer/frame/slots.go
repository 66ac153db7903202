package frame

import (
	"fmt"

	"github.com/Carmen-Shannon/uvr-client/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/uniform"
	"github.com/cogentcore/webgpu/wgpu"
)

// uniformAllocator creates a uniform buffer and bind group on a provider. The graphics context implements it.
type uniformAllocator interface {
	InitUniformBindGroup(provider bind_group_provider.BindGroupProvider, layout *wgpu.BindGroupLayout, size uint64) error
}

// slotPool hands out one model uniform bind group per draw. All writes of a frame are queued
// before the single submit, so draws cannot share a buffer. The pool grows to the largest frame
// seen and never shrinks until released.
type slotPool struct {
	alloc  uniformAllocator
	layout *wgpu.BindGroupLayout
	slots  []bind_group_provider.BindGroupProvider
}

func newSlotPool(alloc uniformAllocator, layout *wgpu.BindGroupLayout) *slotPool {
	return &slotPool{alloc: alloc, layout: layout}
}

// ensure grows the pool to at least n slots.
func (p *slotPool) ensure(n int) error {
	for len(p.slots) < n {
		provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("model slot %d", len(p.slots)))
		if err := p.alloc.InitUniformBindGroup(provider, p.layout, uniform.ModelUniform{}.Size()); err != nil {
			provider.Release()
			return fmt.Errorf("model slot %d: %w", len(p.slots), err)
		}
		p.slots = append(p.slots, provider)
	}
	return nil
}

// slot returns the provider of slot i. ensure must have been called with n > i.
func (p *slotPool) slot(i int) bind_group_provider.BindGroupProvider {
	return p.slots[i]
}

// writes queues one model uniform write per item, item i into slot i.
func (p *slotPool) writes(items []drawItem) []bind_group_provider.BufferWrite {
	out := make([]bind_group_provider.BufferWrite, len(items))
	for i, item := range items {
		out[i] = uniform.Write(p.slots[i], uniform.ModelUniform{Model: item.model, Tint: item.tint})
	}
	return out
}

func (p *slotPool) len() int {
	return len(p.slots)
}

func (p *slotPool) release() {
	for _, s := range p.slots {
		s.Release()
	}
	p.slots = nil
}
