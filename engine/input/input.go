package input

import (
	"sync"

	"github.com/Carmen-Shannon/uvr-client/common"
)

// Size is a framebuffer size in pixels.
type Size struct {
	Width  int
	Height int
}

// Tick is everything the simulation needs from the user for one step.
type Tick struct {
	// Forward is +1 while moving forward, -1 backward, 0 when both or neither are held.
	Forward float32
	// Strafe is +1 while moving right, -1 left.
	Strafe float32
	// Jump is true for exactly one tick per key press.
	Jump bool

	// PointerDX and PointerDY are cursor movement in pixels since the previous tick.
	PointerDX float32
	PointerDY float32
	// Scroll is accumulated wheel movement since the previous tick.
	Scroll float32
	// RotateActive is true while the right or middle mouse button is held.
	RotateActive bool

	// Resize is the latest framebuffer size reported since the previous tick, or nil.
	Resize *Size
	// CloseRequested is true once the user asked to quit.
	CloseRequested bool
}

// State collects window events between ticks. Event methods may be called from the window callbacks;
// Snapshot is called once per tick by the engine.
type State struct {
	mu *sync.Mutex

	held    map[int]bool
	jump    bool
	buttons map[int]bool

	cursor     [2]float64
	haveCursor bool
	dx, dy     float32
	scroll     float32

	resize *Size
	close  bool
}

// NewState creates an empty input state.
func NewState() *State {
	return &State{
		mu:      &sync.Mutex{},
		held:    make(map[int]bool),
		buttons: make(map[int]bool),
	}
}

// KeyDown records a key press. Repeated presses of a held key do not trigger another jump.
func (s *State) KeyDown(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code == common.KeySpace && !s.held[code] {
		s.jump = true
	}
	if code == common.KeyEsc {
		s.close = true
	}
	s.held[code] = true
}

// KeyUp records a key release.
func (s *State) KeyUp(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.held, code)
}

// MouseButton records a mouse button transition.
func (s *State) MouseButton(button int, pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pressed {
		s.buttons[button] = true
	} else {
		delete(s.buttons, button)
	}
}

// CursorMoved records an absolute cursor position. The first position only sets the origin.
func (s *State) CursorMoved(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.haveCursor {
		s.dx += float32(x - s.cursor[0])
		s.dy += float32(y - s.cursor[1])
	}
	s.cursor = [2]float64{x, y}
	s.haveCursor = true
}

// Scroll records wheel movement. Positive values scroll up (zoom in).
func (s *State) Scroll(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll += float32(delta)
}

// Resize records a framebuffer size. Only the latest size before a Snapshot is kept.
func (s *State) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resize = &Size{Width: width, Height: height}
}

// RequestClose marks the session as finished.
func (s *State) RequestClose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.close = true
}

// Snapshot returns the input for one tick and resets the per-tick accumulators
// (jump edge, pointer deltas, scroll and resize).
//
// Returns:
//   - Tick: the collected input
func (s *State) Snapshot() Tick {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Tick{
		Forward:        axis(s.held, common.KeyW, common.KeyUp, common.KeyS, common.KeyDown),
		Strafe:         axis(s.held, common.KeyD, common.KeyRight, common.KeyA, common.KeyLeft),
		Jump:           s.jump,
		PointerDX:      s.dx,
		PointerDY:      s.dy,
		Scroll:         s.scroll,
		RotateActive:   s.buttons[common.MouseButtonRight] || s.buttons[common.MouseButtonMiddle],
		Resize:         s.resize,
		CloseRequested: s.close,
	}

	s.jump = false
	s.dx, s.dy = 0, 0
	s.scroll = 0
	s.resize = nil
	return t
}

// axis maps two pairs of opposing keys onto -1, 0 or +1.
func axis(held map[int]bool, pos, posAlt, neg, negAlt int) float32 {
	var v float32
	if held[pos] || held[posAlt] {
		v++
	}
	if held[neg] || held[negAlt] {
		v--
	}
	return v
}
