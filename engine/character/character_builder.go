package character

// ControllerBuilderOption is a functional option used to configure a Controller during construction.
type ControllerBuilderOption func(*controllerImpl)

// WithSpeed sets the horizontal speed in units per second.
func WithSpeed(speed float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.speed = speed
	}
}

// WithGravity sets the downward acceleration in units per second squared.
func WithGravity(gravity float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.gravity = gravity
	}
}

// WithJumpImpulse sets the upward velocity a jump assigns.
func WithJumpImpulse(impulse float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.impulse = impulse
	}
}

// WithMaxJumps sets the jump budget: 1 for single jump, 2 for double jump.
// Values outside that range are clamped.
//
// Parameters:
//   - n: jumps allowed before touching the ground again
//
// Returns:
//   - ControllerBuilderOption: a function that sets the jump budget
func WithMaxJumps(n int) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.state.MaxJumps = n
	}
}

// WithPosition sets the spawn position.
func WithPosition(x, y, z float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.state.Position = [3]float32{x, y, z}
		c.state.Grounded = y <= 0
	}
}
