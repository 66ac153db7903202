package camera

// CameraBuilderOption is a functional option used to configure a Camera during construction.
type CameraBuilderOption func(*cameraImpl)

// WithTarget sets the initial orbit target.
//
// Parameters:
//   - x, y, z: target position in world space
//
// Returns:
//   - CameraBuilderOption: a function that sets the target
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = [3]float32{x, y, z}
	}
}

// WithDistance sets the initial orbit distance. It is clamped to the distance bounds.
//
// Parameters:
//   - distance: distance from eye to target
//
// Returns:
//   - CameraBuilderOption: a function that sets the distance
func WithDistance(distance float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.distance = distance
	}
}

// WithDistanceBounds sets the zoom clamp.
//
// Parameters:
//   - min: closest allowed distance
//   - max: farthest allowed distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the distance bounds
func WithDistanceBounds(min, max float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minDistance = min
		c.maxDistance = max
	}
}

// WithYaw sets the initial yaw in radians.
func WithYaw(yaw float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
	}
}

// WithPitch sets the initial pitch in radians. It is clamped to the pitch bounds.
func WithPitch(pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pitch = pitch
	}
}

// WithPitchBounds sets the pitch clamp in radians. Keep both bounds inside (-pi/2, pi/2) so the
// view direction never becomes parallel to +Y.
//
// Parameters:
//   - min: lowest allowed pitch
//   - max: highest allowed pitch
//
// Returns:
//   - CameraBuilderOption: a function that sets the pitch bounds
func WithPitchBounds(min, max float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minPitch = min
		c.maxPitch = max
	}
}

// WithSensitivity sets the radians of orbit per pixel of pointer movement.
func WithSensitivity(sensitivity float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.sensitivity = sensitivity
	}
}

// WithZoomSensitivity sets the distance change per scroll unit.
func WithZoomSensitivity(zoom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoomSensitivity = zoom
	}
}

// WithFov sets the vertical field of view in radians.
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithClipPlanes sets the near and far clipping distances.
//
// Parameters:
//   - near: near plane distance (must be > 0)
//   - far: far plane distance (must be > near)
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}
