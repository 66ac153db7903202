package frame

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// passKind identifies one render pass of a frame.
type passKind int

const (
	passSky passKind = iota
	passWorld
	passOverlay
)

// String returns the pass name.
func (k passKind) String() string {
	switch k {
	case passSky:
		return "sky"
	case passWorld:
		return "world"
	case passOverlay:
		return "overlay"
	}
	return "unknown"
}

// passPlan is how one pass treats its attachments.
type passPlan struct {
	kind   passKind
	loadOp wgpu.LoadOp
	depth  bool
}

// planPasses orders the passes of a frame. The first pass clears the color target and every later
// pass loads it. Only the world pass uses the depth attachment, and it clears it.
//
// Parameters:
//   - hasSky: whether a sky pass runs before the world
//   - depth: whether the context owns a depth attachment
//
// Returns:
//   - []passPlan: the passes in encoding order
func planPasses(hasSky, depth bool) []passPlan {
	plans := make([]passPlan, 0, 3)
	worldLoad := wgpu.LoadOpClear
	if hasSky {
		plans = append(plans, passPlan{kind: passSky, loadOp: wgpu.LoadOpClear})
		worldLoad = wgpu.LoadOpLoad
	}
	plans = append(plans,
		passPlan{kind: passWorld, loadOp: worldLoad, depth: depth},
		passPlan{kind: passOverlay, loadOp: wgpu.LoadOpLoad},
	)
	return plans
}

// passDescriptor builds the render pass descriptor for a planned pass.
//
// Parameters:
//   - p: the planned pass
//   - target: the swapchain view
//   - depthView: the depth attachment, ignored unless p.depth is set
//   - clear: the color used when the pass clears
//
// Returns:
//   - *wgpu.RenderPassDescriptor: the descriptor to begin the pass with
func passDescriptor(p passPlan, target, depthView *wgpu.TextureView, clear wgpu.Color) *wgpu.RenderPassDescriptor {
	desc := &wgpu.RenderPassDescriptor{
		Label: p.kind.String() + " Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     p.loadOp,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
	}
	if p.depth {
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		}
	}
	return desc
}
