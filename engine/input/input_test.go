package input

import (
	"testing"

	"github.com/Carmen-Shannon/uvr-client/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementAxes(t *testing.T) {
	tests := []struct {
		name          string
		keys          []int
		forward, side float32
	}{
		{"idle", nil, 0, 0},
		{"W", []int{common.KeyW}, 1, 0},
		{"S", []int{common.KeyS}, -1, 0},
		{"W and S cancel", []int{common.KeyW, common.KeyS}, 0, 0},
		{"D", []int{common.KeyD}, 0, 1},
		{"arrow left", []int{common.KeyLeft}, 0, -1},
		{"W and arrow up", []int{common.KeyW, common.KeyUp}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			for _, k := range tt.keys {
				s.KeyDown(k)
			}
			tick := s.Snapshot()
			assert.Equal(t, tt.forward, tick.Forward)
			assert.Equal(t, tt.side, tick.Strafe)
			// Held keys persist across snapshots.
			assert.Equal(t, tt.forward, s.Snapshot().Forward, "second snapshot")
		})
	}
}

func TestJumpIsAnEdge(t *testing.T) {
	s := NewState()
	s.KeyDown(common.KeySpace)
	s.KeyDown(common.KeySpace) // key repeat
	require.True(t, s.Snapshot().Jump, "press not reported")
	require.False(t, s.Snapshot().Jump, "held key reported a second jump")

	s.KeyUp(common.KeySpace)
	s.KeyDown(common.KeySpace)
	assert.True(t, s.Snapshot().Jump, "second press not reported")
}

func TestPointerDeltasAccumulateAndReset(t *testing.T) {
	s := NewState()
	s.CursorMoved(100, 100)
	s.CursorMoved(110, 95)
	s.CursorMoved(115, 90)
	s.Scroll(1)
	s.Scroll(-3)

	tick := s.Snapshot()
	assert.Equal(t, float32(15), tick.PointerDX)
	assert.Equal(t, float32(-10), tick.PointerDY)
	assert.Equal(t, float32(-2), tick.Scroll)

	next := s.Snapshot()
	assert.Zero(t, next.PointerDX)
	assert.Zero(t, next.PointerDY)
	assert.Zero(t, next.Scroll)
}

func TestRotateButtons(t *testing.T) {
	s := NewState()
	require.False(t, s.Snapshot().RotateActive, "rotate active with no buttons")

	s.MouseButton(common.MouseButtonLeft, true)
	assert.False(t, s.Snapshot().RotateActive, "left button should not rotate")

	s.MouseButton(common.MouseButtonRight, true)
	assert.True(t, s.Snapshot().RotateActive, "right button should rotate")

	s.MouseButton(common.MouseButtonRight, false)
	s.MouseButton(common.MouseButtonMiddle, true)
	assert.True(t, s.Snapshot().RotateActive, "middle button should rotate")
}

func TestResizeCoalesces(t *testing.T) {
	s := NewState()
	s.Resize(800, 600)
	s.Resize(0, 600)
	s.Resize(1024, 768)

	tick := s.Snapshot()
	require.NotNil(t, tick.Resize)
	assert.Equal(t, Size{1024, 768}, *tick.Resize)
	assert.Nil(t, s.Snapshot().Resize, "resize reported twice")
}

func TestCloseRequests(t *testing.T) {
	s := NewState()
	require.False(t, s.Snapshot().CloseRequested, "close requested at start")

	s.KeyDown(common.KeyEsc)
	assert.True(t, s.Snapshot().CloseRequested, "escape should request close")

	s = NewState()
	s.RequestClose()
	assert.True(t, s.Snapshot().CloseRequested, "RequestClose not reported")
}
