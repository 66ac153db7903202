package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/uvr-client/common"
	"github.com/Carmen-Shannon/uvr-client/engine/camera"
	"github.com/Carmen-Shannon/uvr-client/engine/character"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/frame"
	"github.com/Carmen-Shannon/uvr-client/engine/window"
	"github.com/Carmen-Shannon/uvr-client/engine/world"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	resizes  [][2]int
	released int
	log      *[]string
}

func (s *fakeSurface) Resize(width, height int) {
	s.resizes = append(s.resizes, [2]int{width, height})
}

func (s *fakeSurface) Release() {
	s.released++
	*s.log = append(*s.log, "context")
}

type fakeRenderer struct {
	err      error
	calls    int
	released int
	lastCam  [3]float32
	lastPos  [3]float32
	lastN    int
	log      *[]string
}

func (r *fakeRenderer) Render(cam camera.Camera, avatar character.State, props []world.Prop) error {
	r.calls++
	r.lastCam = cam.Target()
	r.lastPos = avatar.Position
	r.lastN = len(props)
	return r.err
}

func (r *fakeRenderer) Stats() frame.Stats { return frame.Stats{} }

func (r *fakeRenderer) Release() {
	r.released++
	*r.log = append(*r.log, "renderer")
}

// fakeWindow runs the update callback until stopped or a fixed number of iterations elapse.
type fakeWindow struct {
	update  func()
	sink    window.EventSink
	stopped bool
	maxIter int
	iters   int
	log     *[]string
}

func (w *fakeWindow) SetUpdateCallback(cb func())                { w.update = cb }
func (w *fakeWindow) SetEventSink(sink window.EventSink)         { w.sink = sink }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) IsRunning() bool                            { return !w.stopped }
func (w *fakeWindow) Stop()                                      { w.stopped = true }
func (w *fakeWindow) Width() int                                 { return 640 }
func (w *fakeWindow) Height() int                                { return 480 }

func (w *fakeWindow) Close() error {
	*w.log = append(*w.log, "window")
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	for w.IsRunning() && w.iters < w.maxIter {
		w.iters++
		if w.update != nil {
			w.update()
		}
	}
}

func newTestEngine(t *testing.T, opts ...EngineBuilderOption) (*engine, *fakeSurface, *fakeRenderer, *[]string) {
	t.Helper()
	var order []string
	e := newEngine(opts...)
	s := &fakeSurface{log: &order}
	r := &fakeRenderer{log: &order}
	e.ctx = s
	e.renderer = r
	e.camera = camera.NewCamera(e.cameraOpts...)
	e.controller = character.NewController(e.controllerOpts...)
	e.props = world.ScatterProps(e.scatter)
	return e, s, r, &order
}

func TestStepMovesAvatarAlongCameraHeading(t *testing.T) {
	e, _, r, _ := newTestEngine(t, WithCameraOptions(camera.WithYaw(0)))

	e.input.KeyDown(common.KeyW)
	e.step(0.1)

	pos := e.controller.State().Position
	assert.Negative(t, pos[2], "camera forward is -Z at yaw 0")
	require.Equal(t, 1, r.calls)
	assert.Equal(t, pos, r.lastPos)
}

func TestStepCameraFollowsAvatar(t *testing.T) {
	e, _, r, _ := newTestEngine(t, WithFollowHeight(2))
	e.controller.Teleport([3]float32{3, 0, -4})

	e.step(0.016)

	want := [3]float32{3, 2, -4}
	assert.Equal(t, want, e.camera.Target())
	assert.Equal(t, want, r.lastCam, "renderer saw a stale target")
}

func TestStepAppliesResize(t *testing.T) {
	e, s, _, _ := newTestEngine(t)

	e.input.Resize(800, 600)
	e.input.Resize(1024, 768)
	e.step(0.016)
	e.step(0.016)

	assert.Equal(t, [][2]int{{1024, 768}}, s.resizes, "want only the latest size once")
}

func TestStepRenderErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantQuit    bool
		wantSkipped int
	}{
		{"success", nil, false, 0},
		{"acquire failure skips frame", fmt.Errorf("%w: timeout", renderer.ErrSurfaceAcquireFailed), false, 1},
		{"other failure quits", errors.New("device lost"), true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, r, _ := newTestEngine(t)
			r.err = tt.err

			e.step(0.016)

			assert.Equal(t, tt.wantQuit, e.quitting())
			assert.Equal(t, tt.wantSkipped, e.profiler.Skipped())
		})
	}
}

func TestCloseRequestQuitsAfterFrame(t *testing.T) {
	e, _, r, _ := newTestEngine(t)

	e.input.RequestClose()
	e.step(0.016)
	assert.Equal(t, 1, r.calls, "the in-flight frame should finish")
	require.True(t, e.quitting(), "engine did not quit on close request")

	e.step(0.016)
	assert.Equal(t, 1, r.calls, "rendered after quit")
}

func TestRunReleasesInOrder(t *testing.T) {
	e, _, r, order := newTestEngine(t)
	w := &fakeWindow{maxIter: 100, log: order}
	e.window = w

	w.sinkInput(e)
	e.Run()

	assert.Equal(t, 1, r.calls)
	assert.Equal(t, []string{"renderer", "context", "window"}, *order, "release order")
}

// sinkInput queues a close request so Run exits after one step.
func (w *fakeWindow) sinkInput(e *engine) {
	w.SetEventSink(e.input)
	w.sink.RequestClose()
}

type panicRenderer struct{ fakeRenderer }

func (r *panicRenderer) Render(camera.Camera, character.State, []world.Prop) error {
	panic("encoder exploded")
}

func TestSafeStepRecoversAndQuits(t *testing.T) {
	e, _, _, order := newTestEngine(t)
	e.renderer = &panicRenderer{fakeRenderer{log: order}}

	e.safeStep(0.016)

	assert.True(t, e.quitting(), "panic in step did not quit the engine")
}

func TestQuitIsIdempotent(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	e.Quit()
	e.Quit()
	assert.True(t, e.quitting())
}

func TestScatterDefaultsAndOverride(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	assert.LessOrEqual(t, len(e.props), DefaultPropCount)

	e, _, _, _ = newTestEngine(t, WithScatter(world.ScatterOptions{Seed: 7}))
	assert.Empty(t, e.props, "zero count places no props")
}

func TestFrameDuration(t *testing.T) {
	tests := []struct {
		fps  float64
		want string
	}{
		{0, "0s"},
		{-5, "0s"},
		{50, "20ms"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, frameDuration(tt.fps).String(), "fps %v", tt.fps)
	}
}
