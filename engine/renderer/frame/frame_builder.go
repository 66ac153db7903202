package frame

import (
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/mesh"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a frame renderer during construction via NewRenderer.
type RendererBuilderOption func(*frameRenderer)

// WithClearColor sets the color the first pass of each frame clears to.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(c wgpu.Color) RendererBuilderOption {
	return func(r *frameRenderer) {
		r.clearColor = c
	}
}

// WithSky sets whether the gradient sky pass is drawn behind the world. Enabled by default.
//
// Parameters:
//   - enabled: false to clear to the clear color instead
//
// Returns:
//   - RendererBuilderOption: a function that applies the sky option to a renderer
func WithSky(enabled bool) RendererBuilderOption {
	return func(r *frameRenderer) {
		r.sky = enabled
	}
}

// WithFloor sets the floor geometry options.
//
// Parameters:
//   - opts: the floor options; zero fields use the mesh defaults
//
// Returns:
//   - RendererBuilderOption: a function that applies the floor option to a renderer
func WithFloor(opts mesh.FloorOptions) RendererBuilderOption {
	return func(r *frameRenderer) {
		r.floor = opts
	}
}

// WithCompass sets the overlay compass options. mesh.WithCompassArmWidth switches the overlay
// pipeline to a triangle list.
//
// Parameters:
//   - opts: compass options forwarded to mesh.Compass
//
// Returns:
//   - RendererBuilderOption: a function that applies the compass options to a renderer
func WithCompass(opts ...mesh.CompassOption) RendererBuilderOption {
	return func(r *frameRenderer) {
		r.compassOpts = append(r.compassOpts, opts...)
	}
}

// WithWorkers sets the worker pool size used to build the static meshes.
//
// Parameters:
//   - n: the number of workers; runtime.NumCPU() when <= 0
//
// Returns:
//   - RendererBuilderOption: a function that applies the worker count to a renderer
func WithWorkers(n int) RendererBuilderOption {
	return func(r *frameRenderer) {
		r.workers = n
	}
}

// WithCacheSize sets how many overlay meshes stay resident in the mesh cache.
//
// Parameters:
//   - n: the cache size; mesh.DefaultCacheSize when <= 0
//
// Returns:
//   - RendererBuilderOption: a function that applies the cache size to a renderer
func WithCacheSize(n int) RendererBuilderOption {
	return func(r *frameRenderer) {
		r.cacheSize = n
	}
}
