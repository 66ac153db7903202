package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/uvr-client/common"
)

// Defaults for the third-person orbit camera.
const (
	DefaultDistance        float32 = 8
	DefaultMinDistance     float32 = 2
	DefaultMaxDistance     float32 = 50
	DefaultPitch           float32 = -0.35
	DefaultMinPitch        float32 = -1.5
	DefaultMaxPitch        float32 = 1.5
	DefaultSensitivity     float32 = 0.005
	DefaultZoomSensitivity float32 = 0.5
	DefaultFov             float32 = math.Pi / 4
	DefaultNear            float32 = 0.1
	DefaultFar             float32 = 100
)

type cameraImpl struct {
	mu *sync.Mutex

	target   [3]float32
	distance float32
	yaw      float32
	pitch    float32

	minDistance float32
	maxDistance float32
	minPitch    float32
	maxPitch    float32

	sensitivity     float32
	zoomSensitivity float32

	fov  float32
	near float32
	far  float32
}

// Camera is a third-person orbit camera: it sits distance units behind target along the direction
// given by yaw and pitch and looks at target with +Y up.
//
// Yaw 0 looks down -Z; positive yaw turns toward +X. Negative pitch looks down at the target.
type Camera interface {
	// HandlePointer applies one tick of pointer input.
	// Scroll always zooms: distance -= scroll * zoomSensitivity, clamped to the distance bounds.
	// Pointer deltas orbit only while rotateActive is true: yaw += dx * sensitivity,
	// pitch += dy * sensitivity, pitch clamped to the pitch bounds.
	//
	// Parameters:
	//   - dx, dy: pointer movement since the last tick, in pixels
	//   - scroll: scroll wheel movement since the last tick
	//   - rotateActive: whether the orbit button is held
	HandlePointer(dx, dy, scroll float32, rotateActive bool)

	// Follow moves the orbit target, carrying the eye along with it.
	//
	// Parameters:
	//   - target: new target position in world space
	Follow(target [3]float32)

	// Eye returns the camera position: target - direction * distance.
	//
	// Returns:
	//   - [3]float32: eye position in world space
	Eye() [3]float32

	// Direction returns the unit view direction from eye to target.
	//
	// Returns:
	//   - [3]float32: (cos p sin y, sin p, -cos p cos y)
	Direction() [3]float32

	// Forward returns the view direction flattened onto the ground plane, used as the movement heading.
	//
	// Returns:
	//   - [3]float32: (sin y, 0, -cos y)
	Forward() [3]float32

	// ViewMatrix returns the right-handed look-at matrix from Eye to Target with +Y up.
	//
	// Returns:
	//   - [16]float32: the view matrix (column-major)
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the right-handed perspective projection for a viewport.
	//
	// Parameters:
	//   - aspect: viewport width / height
	//
	// Returns:
	//   - [16]float32: the projection matrix (column-major)
	ProjectionMatrix(aspect float32) [16]float32

	// ViewProjectionMatrix returns ProjectionMatrix(aspect) * ViewMatrix().
	//
	// Parameters:
	//   - aspect: viewport width / height
	//
	// Returns:
	//   - [16]float32: the combined matrix (column-major)
	ViewProjectionMatrix(aspect float32) [16]float32

	Target() [3]float32
	Distance() float32
	Yaw() float32
	Pitch() float32
	Fov() float32
	Near() float32
	Far() float32

	// SetYaw sets the yaw in radians.
	SetYaw(yaw float32)

	// SetPitch sets the pitch in radians, clamped to the pitch bounds.
	SetPitch(pitch float32)

	// SetDistance sets the orbit distance, clamped to the distance bounds.
	SetDistance(distance float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates an orbit camera with the package defaults, then applies options.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the new camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:              &sync.Mutex{},
		distance:        DefaultDistance,
		pitch:           DefaultPitch,
		minDistance:     DefaultMinDistance,
		maxDistance:     DefaultMaxDistance,
		minPitch:        DefaultMinPitch,
		maxPitch:        DefaultMaxPitch,
		sensitivity:     DefaultSensitivity,
		zoomSensitivity: DefaultZoomSensitivity,
		fov:             DefaultFov,
		near:            DefaultNear,
		far:             DefaultFar,
	}
	for _, option := range options {
		option(c)
	}
	c.distance = common.Clamp(c.distance, c.minDistance, c.maxDistance)
	c.pitch = common.Clamp(c.pitch, c.minPitch, c.maxPitch)
	return c
}

func (c *cameraImpl) HandlePointer(dx, dy, scroll float32, rotateActive bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.distance = common.Clamp(c.distance-scroll*c.zoomSensitivity, c.minDistance, c.maxDistance)
	if !rotateActive {
		return
	}
	c.yaw += dx * c.sensitivity
	c.pitch = common.Clamp(c.pitch+dy*c.sensitivity, c.minPitch, c.maxPitch)
}

func (c *cameraImpl) Follow(target [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
}

// direction computes the view direction. Caller must hold the mutex.
func (c *cameraImpl) direction() [3]float32 {
	sp, cp := common.Sincos(c.pitch)
	sy, cy := common.Sincos(c.yaw)
	return [3]float32{cp * sy, sp, -cp * cy}
}

// eye computes the camera position. Caller must hold the mutex.
func (c *cameraImpl) eye() [3]float32 {
	return common.Sub3(c.target, common.Scale3(c.direction(), c.distance))
}

func (c *cameraImpl) Eye() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye()
}

func (c *cameraImpl) Direction() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.direction()
}

func (c *cameraImpl) Forward() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	sy, cy := common.Sincos(c.yaw)
	return [3]float32{sy, 0, -cy}
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var m [16]float32
	common.LookAt(m[:], c.eye(), c.target, [3]float32{0, 1, 0})
	return m
}

func (c *cameraImpl) ProjectionMatrix(aspect float32) [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect <= 0 {
		aspect = 1
	}
	var m [16]float32
	common.Perspective(m[:], c.fov, aspect, c.near, c.far)
	return m
}

func (c *cameraImpl) ViewProjectionMatrix(aspect float32) [16]float32 {
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix(aspect)
	var vp [16]float32
	common.Mul4(vp[:], proj[:], view[:])
	return vp
}

func (c *cameraImpl) Target() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Distance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distance
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) SetYaw(yaw float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw = yaw
}

func (c *cameraImpl) SetPitch(pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitch = common.Clamp(pitch, c.minPitch, c.maxPitch)
}

func (c *cameraImpl) SetDistance(distance float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.distance = common.Clamp(distance, c.minDistance, c.maxDistance)
}
