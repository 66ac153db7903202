package engine

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/uvr-client/common"
	"github.com/Carmen-Shannon/uvr-client/engine/camera"
	"github.com/Carmen-Shannon/uvr-client/engine/character"
	"github.com/Carmen-Shannon/uvr-client/engine/input"
	"github.com/Carmen-Shannon/uvr-client/engine/profiler"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/frame"
	"github.com/Carmen-Shannon/uvr-client/engine/window"
	"github.com/Carmen-Shannon/uvr-client/engine/world"
)

const (
	// DefaultFollowHeight is how far above the avatar's feet the camera orbits.
	DefaultFollowHeight float32 = 1.2

	// DefaultPropCount is the upper bound on scattered props when WithScatter is not given.
	DefaultPropCount = 24

	// DefaultSeed seeds the prop scatter when WithScatter is not given.
	DefaultSeed uint64 = 1

	// MaxDeltaTime caps the step length after stalls such as a window drag.
	MaxDeltaTime float32 = 0.1
)

// surface is the part of renderer.Context the loop drives directly.
type surface interface {
	Resize(width, height int)
	Release()
}

// engine implements the Engine interface.
// Owns the window, the GPU context and the simulation, and steps them on one thread.
type engine struct {
	quitOnce sync.Once
	quit     chan struct{}

	window     window.Window
	input      *input.State
	ctx        surface
	renderer   frame.Renderer
	camera     camera.Camera
	controller character.Controller
	props      []world.Prop

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameLimit   time.Duration // minimum frame duration; 0 = uncapped
	followHeight float32

	// Pre-creation config collected from builder options
	windowOpts     []window.WindowBuilderOption
	contextOpts    []renderer.ContextBuilderOption
	rendererOpts   []frame.RendererBuilderOption
	cameraOpts     []camera.CameraBuilderOption
	controllerOpts []character.ControllerBuilderOption
	scatter        world.ScatterOptions
}

// Engine is the main entry point for the client.
// It owns the window message loop and runs one simulation and render step per iteration.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the orbit camera.
	Camera() camera.Camera

	// Controller returns the avatar controller.
	Controller() character.Controller

	// Props returns the scattered props.
	Props() []world.Prop

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate caps the loop at fps steps per second.
	//
	// Parameters:
	//   - fps: maximum steps per second (0 = uncapped)
	SetTickRate(fps float64)

	// Run drives the window message loop on the calling goroutine until Quit or the window closes,
	// then releases every resource. The calling goroutine stays locked to its OS thread.
	Run()

	// Quit stops the loop after the in-flight step completes.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates the window, GPU context, frame renderer, camera, controller and props.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: if the window, context or renderer could not be created
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := newEngine(options...)

	if e.window == nil {
		w, err := window.NewWindow(e.windowOpts...)
		if err != nil {
			return nil, err
		}
		e.window = w
	}
	e.window.SetEventSink(e.input)

	ctx, err := renderer.NewContext(e.window, e.window.Width(), e.window.Height(), e.contextOpts...)
	if err != nil {
		e.window.Close()
		return nil, fmt.Errorf("graphics context: %w", err)
	}
	e.ctx = ctx

	e.renderer, err = frame.NewRenderer(ctx, e.rendererOpts...)
	if err != nil {
		ctx.Release()
		e.window.Close()
		return nil, fmt.Errorf("frame renderer: %w", err)
	}

	e.camera = camera.NewCamera(e.cameraOpts...)
	e.controller = character.NewController(e.controllerOpts...)
	e.props = world.ScatterProps(e.scatter)
	e.camera.Follow(e.followTarget(e.controller.State()))

	log.Printf("[Engine] %d props scattered (seed %d)", len(e.props), e.scatter.Seed)
	return e, nil
}

func newEngine(options ...EngineBuilderOption) *engine {
	e := &engine{
		quit:         make(chan struct{}),
		input:        input.NewState(),
		profiler:     profiler.NewProfiler(time.Second),
		followHeight: DefaultFollowHeight,
		scatter:      world.ScatterOptions{Seed: DefaultSeed, Count: DefaultPropCount},
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Controller() character.Controller {
	return e.controller
}

func (e *engine) Props() []world.Prop {
	return e.props
}

func (e *engine) Run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	last := time.Now()
	e.window.SetUpdateCallback(func() {
		start := time.Now()
		dt := min(float32(start.Sub(last).Seconds()), MaxDeltaTime)
		last = start

		e.safeStep(dt)

		// Frame rate limiting
		if e.frameLimit > 0 {
			if remaining := e.frameLimit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})
	e.window.ProcessMessages()
	e.shutdown()
}

// safeStep runs step and turns a panic into a logged quit so GPU resources are still released.
func (e *engine) safeStep(dt float32) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] panic in step: %v", r)
			e.Quit()
		}
	}()
	e.step(dt)
}

// step runs one iteration: input, resize, avatar, camera, render, profiler.
func (e *engine) step(dt float32) {
	if e.quitting() {
		return
	}
	tick := e.input.Snapshot()

	if tick.Resize != nil {
		e.ctx.Resize(tick.Resize.Width, tick.Resize.Height)
	}

	e.controller.Update(dt, character.Input{
		Forward: tick.Forward,
		Strafe:  tick.Strafe,
		Heading: e.camera.Yaw(),
	}, tick.Jump)

	e.camera.HandlePointer(tick.PointerDX, tick.PointerDY, tick.Scroll, tick.RotateActive)

	avatar := e.controller.State()
	e.camera.Follow(e.followTarget(avatar))

	switch err := e.renderer.Render(e.camera, avatar, e.props); {
	case err == nil:
		if e.profilingEnabled {
			e.profiler.Tick()
		}
	case errors.Is(err, renderer.ErrSurfaceAcquireFailed):
		log.Printf("[Engine] skipping frame: %v", err)
		e.profiler.SkipFrame()
	default:
		log.Printf("[Engine] render failed: %v", err)
		e.Quit()
	}

	if tick.CloseRequested {
		e.Quit()
	}
}

// followTarget is the orbit target for an avatar: its feet lifted by the follow height.
func (e *engine) followTarget(avatar character.State) [3]float32 {
	return common.Add3(avatar.Position, [3]float32{0, e.followHeight, 0})
}

// quitting reports whether Quit has been called.
func (e *engine) quitting() bool {
	select {
	case <-e.quit:
		return true
	default:
		return false
	}
}

// Quit stops the loop after the in-flight step completes.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quit)
		if e.window != nil {
			e.window.Stop()
		}
	})
}

// shutdown releases GPU objects before the surface's window goes away.
func (e *engine) shutdown() {
	e.Quit()
	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.ctx != nil {
		e.ctx.Release()
	}
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] close window: %v", err)
		}
	}
	log.Printf("[Engine] shut down")
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	e.frameLimit = frameDuration(fps)
}

// frameDuration converts a rate cap into a minimum step duration; 0 = uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

var _ Engine = &engine{}
