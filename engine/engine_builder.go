package engine

import (
	"github.com/Carmen-Shannon/uvr-client/engine/camera"
	"github.com/Carmen-Shannon/uvr-client/engine/character"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/frame"
	"github.com/Carmen-Shannon/uvr-client/engine/window"
	"github.com/Carmen-Shannon/uvr-client/engine/world"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate caps the loop at fps steps per second.
// Values <= 0 leave the loop uncapped, paced only by the present mode.
//
// Parameters:
//   - fps: maximum steps per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = frameDuration(fps)
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally. The engine still closes it on shutdown.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithWindowOptions forwards options to the internally created window.
// Ignored when WithWindow is also given.
func WithWindowOptions(opts ...window.WindowBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.windowOpts = append(e.windowOpts, opts...)
	}
}

// WithContextOptions forwards options to the graphics context.
func WithContextOptions(opts ...renderer.ContextBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.contextOpts = append(e.contextOpts, opts...)
	}
}

// WithRendererOptions forwards options to the frame renderer.
func WithRendererOptions(opts ...frame.RendererBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.rendererOpts = append(e.rendererOpts, opts...)
	}
}

// WithCameraOptions forwards options to the orbit camera.
func WithCameraOptions(opts ...camera.CameraBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.cameraOpts = append(e.cameraOpts, opts...)
	}
}

// WithControllerOptions forwards options to the avatar controller.
func WithControllerOptions(opts ...character.ControllerBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.controllerOpts = append(e.controllerOpts, opts...)
	}
}

// WithScatter replaces the prop scatter configuration.
//
// Parameters:
//   - opts: scatter configuration; a zero Count places no props
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScatter(opts world.ScatterOptions) EngineBuilderOption {
	return func(e *engine) {
		e.scatter = opts
	}
}

// WithFollowHeight sets how far above the avatar's feet the camera orbits.
func WithFollowHeight(height float32) EngineBuilderOption {
	return func(e *engine) {
		e.followHeight = height
	}
}
