package character

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/uvr-client/common"
)

// Defaults for the avatar controller.
const (
	DefaultSpeed    float32 = 4
	DefaultGravity  float32 = 9.8
	DefaultImpulse  float32 = 5
	DefaultMaxJumps         = 2

	// MoveEpsilon is the input magnitude below which the avatar neither moves nor turns.
	MoveEpsilon float32 = 1e-4
)

// Input is one tick of movement intent.
type Input struct {
	// Forward is +1 for forward, -1 for backward.
	Forward float32
	// Strafe is +1 for right, -1 for left.
	Strafe float32
	// Heading is the camera yaw in radians that Forward is relative to.
	Heading float32
}

// State is a snapshot of the avatar.
type State struct {
	Position  [3]float32
	Yaw       float32
	VelocityY float32
	Grounded  bool
	Jumps     int
	MaxJumps  int
}

type controllerImpl struct {
	mu *sync.Mutex

	state State

	speed   float32
	gravity float32
	impulse float32
}

// Controller moves the avatar on the ground plane relative to the camera heading and integrates
// vertical motion with explicit Euler steps.
type Controller interface {
	// Update advances the avatar by dt seconds. Each call runs, in order:
	//  1. horizontal move along the normalized camera-relative input, turning the avatar to face it
	//  2. gravity: vy -= gravity * dt
	//  3. jump, if requested and the jump budget allows: vy = impulse
	//  4. integrate: y += vy * dt
	//  5. ground contact at y <= 0: y = 0, vy = 0, grounded, jump budget restored
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//   - in: movement axes and heading
	//   - jump: whether a jump was requested this tick
	Update(dt float32, in Input, jump bool)

	// State returns a copy of the current avatar state.
	//
	// Returns:
	//   - State: the avatar state
	State() State

	// Teleport places the avatar at a position with zero vertical velocity.
	//
	// Parameters:
	//   - pos: new world position
	Teleport(pos [3]float32)
}

var _ Controller = &controllerImpl{}

// NewController creates a grounded avatar at the origin facing -Z.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the new controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		mu:      &sync.Mutex{},
		speed:   DefaultSpeed,
		gravity: DefaultGravity,
		impulse: DefaultImpulse,
		state: State{
			Grounded: true,
			MaxJumps: DefaultMaxJumps,
		},
	}
	for _, option := range options {
		option(c)
	}
	c.state.MaxJumps = clampJumps(c.state.MaxJumps)
	return c
}

func clampJumps(n int) int {
	if n < 1 {
		return 1
	}
	if n > 2 {
		return 2
	}
	return n
}

func (c *controllerImpl) Update(dt float32, in Input, jump bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &c.state

	sh, ch := common.Sincos(in.Heading)
	// forward = (sin h, 0, -cos h), right = (cos h, 0, sin h)
	mx := sh*in.Forward + ch*in.Strafe
	mz := -ch*in.Forward + sh*in.Strafe
	if mag := float32(math.Hypot(float64(mx), float64(mz))); mag > MoveEpsilon {
		mx /= mag
		mz /= mag
		s.Position[0] += mx * c.speed * dt
		s.Position[2] += mz * c.speed * dt
		s.Yaw = float32(math.Atan2(float64(mx), float64(-mz)))
	}

	s.VelocityY -= c.gravity * dt

	if jump && s.Jumps < s.MaxJumps {
		s.VelocityY = c.impulse
		s.Jumps++
		s.Grounded = false
	}

	s.Position[1] += s.VelocityY * dt

	if s.Position[1] <= 0 {
		s.Position[1] = 0
		s.VelocityY = 0
		s.Grounded = true
		s.Jumps = 0
	}
}

func (c *controllerImpl) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *controllerImpl) Teleport(pos [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Position = pos
	c.state.VelocityY = 0
	c.state.Grounded = pos[1] <= 0
	if c.state.Grounded {
		c.state.Position[1] = 0
		c.state.Jumps = 0
	}
}
