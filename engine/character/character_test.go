package character

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func TestForwardMoveAlongHeading(t *testing.T) {
	tests := []struct {
		name    string
		heading float32
	}{
		{"north", 0},
		{"east", float32(math.Pi / 2)},
		{"oblique", 0.9},
		{"south-east", 2.0},
		{"negative", -1.2},
		{"past a full turn", 10},
		{"far negative", -7.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(WithSpeed(4))
			c.Update(0.1, Input{Forward: 1, Heading: tt.heading}, false)
			s := c.State()

			fwd := [2]float32{float32(math.Sin(float64(tt.heading))), -float32(math.Cos(float64(tt.heading)))}
			along := s.Position[0]*fwd[0] + s.Position[2]*fwd[1]
			assert.InDelta(t, 0.4, along, tol, "distance along forward")
			assert.InDelta(t, 0.4, math.Hypot(float64(s.Position[0]), float64(s.Position[2])), tol, "moved off the forward axis")
			// Yaw may come back wrapped into (-pi, pi].
			assert.InDelta(t, math.Sin(float64(tt.heading)), math.Sin(float64(s.Yaw)), 1e-5, "yaw sine")
			assert.InDelta(t, math.Cos(float64(tt.heading)), math.Cos(float64(s.Yaw)), 1e-5, "yaw cosine")
			assert.LessOrEqual(t, math.Abs(float64(s.Yaw)), math.Pi+tol)
		})
	}
}

func TestDiagonalInputIsNormalized(t *testing.T) {
	c := NewController()
	c.Update(0.5, Input{Forward: 1, Strafe: 1}, false)
	s := c.State()
	assert.InDelta(t, 2, math.Hypot(float64(s.Position[0]), float64(s.Position[2])), tol)
	// Right is +X and forward is -Z at heading 0.
	assert.Positive(t, s.Position[0])
	assert.Negative(t, s.Position[2])
}

func TestNoInputKeepsYaw(t *testing.T) {
	c := NewController()
	c.Update(0.1, Input{Strafe: 1}, false)
	yaw := c.State().Yaw
	c.Update(0.1, Input{Heading: 2}, false)
	assert.Equal(t, yaw, c.State().Yaw, "yaw changed without movement")
}

func TestGroundedWithoutJumpStaysOnGround(t *testing.T) {
	c := NewController()
	for i := 0; i < 100; i++ {
		c.Update(1.0/60, Input{Forward: 1}, false)
		s := c.State()
		require.Zero(t, s.Position[1], "tick %d", i)
		require.True(t, s.Grounded, "tick %d", i)
		require.Zero(t, s.VelocityY, "tick %d", i)
	}
}

func TestDoubleJumpBudget(t *testing.T) {
	c := NewController(WithMaxJumps(2), WithJumpImpulse(5), WithGravity(9.8))
	dt := float32(0.01)

	c.Update(dt, Input{}, true)
	s := c.State()
	require.Equal(t, 1, s.Jumps)
	require.False(t, s.Grounded)
	require.Positive(t, s.Position[1])
	c.Update(dt, Input{}, false)

	c.Update(dt, Input{}, true)
	s = c.State()
	require.Equal(t, 2, s.Jumps)
	require.Equal(t, float32(5), s.VelocityY)

	c.Update(dt, Input{}, true)
	third := c.State()
	assert.Equal(t, 2, third.Jumps, "third jump honored")
	assert.InDelta(t, s.VelocityY-9.8*dt, third.VelocityY, tol, "third jump changed velocity")

	// Fall back down and land; the budget is restored.
	for i := 0; i < 1000 && !c.State().Grounded; i++ {
		c.Update(dt, Input{}, false)
	}
	s = c.State()
	require.True(t, s.Grounded, "did not land")
	require.Zero(t, s.Jumps)
	require.Zero(t, s.Position[1])

	c.Update(dt, Input{}, true)
	assert.Equal(t, 1, c.State().Jumps, "jump after landing not honored")
}

func TestSingleJumpBudget(t *testing.T) {
	c := NewController(WithMaxJumps(1))
	c.Update(0.01, Input{}, true)
	vy := c.State().VelocityY
	c.Update(0.01, Input{}, true)
	s := c.State()
	assert.Equal(t, 1, s.Jumps)
	assert.Less(t, s.VelocityY, vy, "second jump honored with single-jump budget")
}

func TestMaxJumpsClamped(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{5, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewController(WithMaxJumps(tt.in)).State().MaxJumps, "WithMaxJumps(%d)", tt.in)
	}
}

func TestFallFromHeightLands(t *testing.T) {
	c := NewController(WithPosition(0, 3, 0))
	require.False(t, c.State().Grounded, "spawned in the air but grounded")
	for i := 0; i < 1000 && !c.State().Grounded; i++ {
		c.Update(0.02, Input{}, false)
		require.GreaterOrEqual(t, c.State().Position[1], float32(0), "below ground")
	}
	assert.True(t, c.State().Grounded, "never landed")
}
