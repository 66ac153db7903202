package world

import "github.com/Carmen-Shannon/uvr-client/common"

// Part is one box of the avatar, positioned relative to the avatar's feet.
type Part struct {
	Name   string
	Offset [3]float32
	Size   [3]float32
	Color  [3]float32
}

// Humanoid returns the blocky avatar: legs, body and head, plus a small nose block on the -Z side of
// the head that shows which way the avatar faces.
func Humanoid() []Part {
	return []Part{
		{Name: "legs", Offset: [3]float32{0, 0.35, 0}, Size: [3]float32{0.5, 0.6, 0.35}, Color: [3]float32{0.2, 0.25, 0.55}},
		{Name: "body", Offset: [3]float32{0, 0.9, 0}, Size: [3]float32{0.6, 1.2, 0.4}, Color: [3]float32{0.8, 0.2, 0.2}},
		{Name: "head", Offset: [3]float32{0, 1.7, 0}, Size: [3]float32{0.45, 0.45, 0.45}, Color: [3]float32{0.9, 0.75, 0.6}},
		{Name: "nose", Offset: [3]float32{0, 1.7, -0.27}, Size: [3]float32{0.12, 0.12, 0.12}, Color: [3]float32{1, 0.85, 0.1}},
	}
}

// PartTransform returns the world matrix of a part for an avatar at pos facing yaw:
// T(pos + Ry(-yaw) * offset) * Ry(-yaw) * S(size).
//
// The avatar model faces -Z. A yaw of h faces (sin h, 0, -cos h), which is -Z rotated by -h about +Y.
//
// Parameters:
//   - p: the part
//   - pos: avatar feet position in world space
//   - yaw: avatar facing in radians
//
// Returns:
//   - [16]float32: the model matrix (column-major)
func PartTransform(p Part, pos [3]float32, yaw float32) [16]float32 {
	var m [16]float32
	center := common.Add3(pos, common.RotateY(p.Offset, -yaw))
	common.ComposeYaw(m[:], center, -yaw, p.Size)
	return m
}
