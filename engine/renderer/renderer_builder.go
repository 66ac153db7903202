package renderer

// ContextBuilderOption is a functional option applied to a context during construction via NewContext.
type ContextBuilderOption func(*graphicsContext)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - ContextBuilderOption: a function that applies the present mode option to a context
func WithPresentMode(mode PresentMode) ContextBuilderOption {
	return func(c *graphicsContext) {
		c.config.PresentMode = mode
	}
}

// WithDepth sets whether the surface is backed by a depth texture. Enabled by default.
//
// Parameters:
//   - enabled: false to render without depth testing
//
// Returns:
//   - ContextBuilderOption: a function that applies the depth option to a context
func WithDepth(enabled bool) ContextBuilderOption {
	return func(c *graphicsContext) {
		c.depth = enabled
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - ContextBuilderOption: a function that applies the force software renderer option to a context
func WithForceSoftwareRenderer(force bool) ContextBuilderOption {
	return func(c *graphicsContext) {
		c.forceFallbackAdapter = force
	}
}
