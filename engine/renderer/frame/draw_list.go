package frame

import (
	"github.com/Carmen-Shannon/uvr-client/common"
	"github.com/Carmen-Shannon/uvr-client/engine/character"
	"github.com/Carmen-Shannon/uvr-client/engine/world"
)

// meshKind selects one of the renderer's static meshes.
type meshKind int

const (
	meshFloor meshKind = iota
	meshCube
	meshWireCube
	meshKindCount
)

// white is the identity tint.
var white = [4]float32{1, 1, 1, 1}

// drawItem is one world-pass draw: a static mesh with its model uniform.
type drawItem struct {
	mesh  meshKind
	model [16]float32
	tint  [4]float32
}

// lines reports whether the item is drawn with the line-list pipeline.
func (d drawItem) lines() bool {
	return d.mesh == meshWireCube
}

// drawList is the world pass content of one frame.
type drawList struct {
	items  []drawItem
	culled int
}

// buildDrawList lays out the world pass: the floor, then the avatar parts, then the visible solid
// props and finally the visible wireframe props, so each pipeline is bound at most once per run.
//
// Parameters:
//   - avatar: the avatar state
//   - parts: the avatar's boxes
//   - props: every prop in the world
//   - frustum: the camera frustum used to cull props, or nil to keep every prop
//
// Returns:
//   - drawList: the ordered items and the number of culled props
func buildDrawList(avatar character.State, parts []world.Part, props []world.Prop, frustum *common.Frustum) drawList {
	var dl drawList
	dl.items = make([]drawItem, 0, 1+len(parts)+len(props))

	var floor [16]float32
	common.Identity(floor[:])
	dl.items = append(dl.items, drawItem{mesh: meshFloor, model: floor, tint: white})

	for _, p := range parts {
		dl.items = append(dl.items, drawItem{
			mesh:  meshCube,
			model: world.PartTransform(p, avatar.Position, avatar.Yaw),
			tint:  opaque(p.Color),
		})
	}

	var wires []drawItem
	for _, p := range props {
		if frustum != nil && !frustum.SphereVisible(p.Position, p.BoundingRadius()) {
			dl.culled++
			continue
		}
		item := drawItem{mesh: meshCube, model: p.Model(), tint: opaque(p.Color)}
		if p.Wireframe {
			item.mesh = meshWireCube
			wires = append(wires, item)
			continue
		}
		dl.items = append(dl.items, item)
	}
	dl.items = append(dl.items, wires...)
	return dl
}

func opaque(c [3]float32) [4]float32 {
	return [4]float32{c[0], c[1], c[2], 1}
}
