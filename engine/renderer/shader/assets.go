package shader

import (
	"embed"
	"fmt"
)

//go:embed assets/*.wgsl
var assets embed.FS

// Embedded shader asset names.
const (
	AssetWorld   = "world.wgsl"
	AssetOverlay = "overlay.wgsl"
	AssetSky     = "sky.wgsl"
)

// Load reads an embedded WGSL asset and builds a Shader from it.
//
// Parameters:
//   - key: unique shader key, used as the module label
//   - asset: one of the Asset* names
//
// Returns:
//   - Shader: the parsed shader
//   - error: if the asset is missing or fails pre-processing/reflection
func Load(key, asset string) (Shader, error) {
	data, err := assets.ReadFile("assets/" + asset)
	if err != nil {
		return nil, fmt.Errorf("shader %s: read asset %q: %w", key, asset, err)
	}
	return NewShader(key, string(data))
}
