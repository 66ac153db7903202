// Package frame encodes and submits one complete frame: the sky, the world and the screen-space
// compass, with a single command buffer per frame.
package frame

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/Carmen-Shannon/uvr-client/common"
	"github.com/Carmen-Shannon/uvr-client/engine/camera"
	"github.com/Carmen-Shannon/uvr-client/engine/character"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/mesh"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/shader"
	"github.com/Carmen-Shannon/uvr-client/engine/renderer/uniform"
	"github.com/Carmen-Shannon/uvr-client/engine/world"
	"github.com/cogentcore/webgpu/wgpu"
)

// compassYawSteps is the number of distinct compass orientations per turn.
const compassYawSteps = 512

// Stats describes the most recently rendered frame.
type Stats struct {
	Draws  int
	Culled int
	Slots  int
}

// frameRenderer is the implementation of the Renderer interface.
type frameRenderer struct {
	mu  *sync.Mutex
	ctx renderer.Context

	bundle  pipeline.Bundle
	layouts pipeline.Layouts

	cameraProvider bind_group_provider.BindGroupProvider
	slots          *slotPool
	statics        [meshKindCount]mesh.Mesh
	compass        *mesh.Cache
	parts          []world.Part

	stats Stats

	// Pre-creation config collected from builder options
	clearColor  wgpu.Color
	sky         bool
	floor       mesh.FloorOptions
	compassOpts []mesh.CompassOption
	workers     int
	cacheSize   int
}

// Renderer draws the scene into the context's surface.
//
// It must be used from the thread that owns the context.
type Renderer interface {
	// Render encodes the sky, world and overlay passes, submits them once and presents.
	//
	// Parameters:
	//   - cam: the orbit camera
	//   - avatar: the avatar state
	//   - props: the props to draw; those outside the view frustum are skipped
	//
	// Returns:
	//   - error: wrapping renderer.ErrSurfaceAcquireFailed when the frame must be skipped, or an
	//     encoding failure
	Render(cam camera.Camera, avatar character.State, props []world.Prop) error

	// Stats returns draw statistics of the last rendered frame.
	Stats() Stats

	// Release frees every GPU object the renderer owns. The context is not released.
	Release()
}

var _ Renderer = &frameRenderer{}

// NewRenderer creates the uniform layouts, compiles the pass pipelines and uploads the static meshes.
//
// Parameters:
//   - ctx: the graphics context to draw with
//   - opts: a variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the ready-to-use renderer
//   - error: wrapping pipeline.ErrShaderCompilation, or an upload failure
func NewRenderer(ctx renderer.Context, opts ...RendererBuilderOption) (Renderer, error) {
	r := &frameRenderer{
		mu:         &sync.Mutex{},
		ctx:        ctx,
		clearColor: wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		sky:        true,
		parts:      world.Humanoid(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.init(); err != nil {
		r.Release()
		return nil, err
	}
	log.Printf("[Renderer] frame renderer ready (sky=%t depth=%t)", r.bundle.HasSky(), ctx.DepthEnabled())
	return r, nil
}

func (r *frameRenderer) init() error {
	worldShader, err := shader.Load("world", shader.AssetWorld)
	if err != nil {
		return fmt.Errorf("%w: %w", pipeline.ErrShaderCompilation, err)
	}
	r.layouts.Camera, err = r.ctx.CreateBindGroupLayout(worldShader.BindGroupLayoutDescriptor(uniform.CameraGroup))
	if err != nil {
		return fmt.Errorf("camera layout: %w", err)
	}
	r.layouts.Model, err = r.ctx.CreateBindGroupLayout(worldShader.BindGroupLayoutDescriptor(uniform.ModelGroup))
	if err != nil {
		return fmt.Errorf("model layout: %w", err)
	}

	r.bundle, err = pipeline.Build(r.ctx.Device(), r.ctx.SurfaceFormat(), r.layouts,
		pipeline.WithDepth(r.ctx.DepthEnabled()),
		pipeline.WithSky(r.sky),
		pipeline.WithOverlayTopology(overlayTopology(r.compassOpts)),
	)
	if err != nil {
		return err
	}

	r.cameraProvider = bind_group_provider.NewBindGroupProvider("camera")
	if err := r.ctx.InitUniformBindGroup(r.cameraProvider, r.layouts.Camera, uniform.CameraUniform{}.Size()); err != nil {
		return err
	}
	r.slots = newSlotPool(r.ctx, r.layouts.Model)

	if err := r.uploadStatics(); err != nil {
		return err
	}
	r.compass, err = mesh.NewCache(r.ctx, r.cacheSize)
	return err
}

// uploadStatics builds the floor and both cube variants concurrently and uploads them. The statics
// live as long as the renderer, so they are held directly rather than in the evicting cache.
func (r *frameRenderer) uploadStatics() error {
	floor := r.floor
	jobs := []mesh.Job{
		meshFloor:    {Label: "floor", Build: func() mesh.Data { return mesh.Floor(floor) }},
		meshCube:     {Label: "cube", Build: func() mesh.Data { return mesh.Cube([3]float32{1, 1, 1}, mesh.CubeSolid) }},
		meshWireCube: {Label: "wire cube", Build: func() mesh.Data { return mesh.Cube([3]float32{1, 1, 1}, mesh.CubeWireframe) }},
	}
	built := mesh.BuildAll(jobs, r.workers)
	for i, d := range built {
		m, err := mesh.Upload(r.ctx, jobs[i].Label, d)
		if err != nil {
			return err
		}
		r.statics[i] = m
	}
	return nil
}

func (r *frameRenderer) Render(cam camera.Camera, avatar character.State, props []world.Prop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	aspect := r.ctx.Config().Aspect()
	camUniform := uniform.NewCameraUniform(cam, aspect)
	frustum := common.ExtractFrustumFromMatrix(camUniform.ViewProj[:])
	dl := buildDrawList(avatar, r.parts, props, &frustum)

	// Everything that can fail without a surface texture runs before the acquire.
	if err := r.slots.ensure(len(dl.items)); err != nil {
		return err
	}
	overlay, err := r.compassMesh(cam.Yaw(), aspect)
	if err != nil {
		return err
	}
	encoder, err := r.ctx.Device().CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	frame, err := r.ctx.AcquireFrame()
	if err != nil {
		return err
	}

	writes := make([]bind_group_provider.BufferWrite, 0, 1+len(dl.items))
	writes = append(writes, uniform.Write(r.cameraProvider, camUniform))
	writes = append(writes, r.slots.writes(dl.items)...)
	r.ctx.WriteBuffers(writes)

	for _, plan := range planPasses(r.bundle.HasSky(), r.ctx.DepthEnabled()) {
		pass := encoder.BeginRenderPass(passDescriptor(plan, frame.View, r.ctx.DepthView(), r.clearColor))
		switch plan.kind {
		case passSky:
			pass.SetPipeline(r.bundle.Sky().RenderPipeline())
			pass.Draw(3, 1, 0, 0)
		case passWorld:
			r.encodeWorld(pass, dl.items)
		case passOverlay:
			pass.SetPipeline(r.bundle.Overlay().RenderPipeline())
			drawMesh(pass, overlay)
		}
		pass.End()
		pass.Release()
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		// The acquired image goes back to the swapchain either way.
		r.ctx.Present(frame)
		return fmt.Errorf("finish command encoder: %w", err)
	}
	r.ctx.Submit(cmd)
	cmd.Release()
	r.ctx.Present(frame)

	r.stats = Stats{Draws: len(dl.items) + 1, Culled: dl.culled, Slots: r.slots.len()}
	return nil
}

// encodeWorld draws every item with its model slot, switching between the triangle and line
// pipelines as the item topology changes.
func (r *frameRenderer) encodeWorld(pass *wgpu.RenderPassEncoder, items []drawItem) {
	var bound pipeline.Pipeline
	for i, item := range items {
		p := r.bundle.World()
		if item.lines() {
			p = r.bundle.WorldLines()
		}
		if p != bound {
			pass.SetPipeline(p.RenderPipeline())
			pass.SetBindGroup(uniform.CameraGroup, r.cameraProvider.BindGroup(), nil)
			bound = p
		}
		pass.SetBindGroup(uniform.ModelGroup, r.slots.slot(i).BindGroup(), nil)
		drawMesh(pass, r.statics[item.mesh])
	}
}

func drawMesh(pass *wgpu.RenderPassEncoder, m mesh.Mesh) {
	pass.SetVertexBuffer(0, m.Provider.VertexBuffer(), 0, wgpu.WholeSize)
	pass.SetIndexBuffer(m.Provider.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(m.IndexCount()), 1, 0, 0, 0)
}

// compassMesh returns the overlay compass for the camera yaw, built from the quantized key values
// so every cached mesh matches its key exactly.
func (r *frameRenderer) compassMesh(yaw, aspect float32) (mesh.Mesh, error) {
	key, qYaw, qAspect := compassKey(yaw, aspect)
	return r.compass.Get(key, func() mesh.Data {
		return mesh.Compass(qYaw, qAspect, r.compassOpts...)
	})
}

// overlayTopology picks the overlay primitive topology matching the compass geometry that opts
// produce.
func overlayTopology(opts []mesh.CompassOption) wgpu.PrimitiveTopology {
	if mesh.Compass(0, 1, opts...).Topology == mesh.Triangles {
		return wgpu.PrimitiveTopologyTriangleList
	}
	return wgpu.PrimitiveTopologyLineList
}

// compassKey quantizes yaw to 1/compassYawSteps of a turn and aspect to three decimals.
//
// Returns:
//   - string: the cache key
//   - float32: the quantized yaw in [0, 2π)
//   - float32: the quantized aspect
func compassKey(yaw, aspect float32) (string, float32, float32) {
	const turn = 2 * math.Pi
	step := turn / compassYawSteps

	y := math.Mod(float64(yaw), turn)
	if y < 0 {
		y += turn
	}
	steps := int(math.Round(y/step)) % compassYawSteps
	qAspect := math.Round(float64(aspect)*1000) / 1000

	return fmt.Sprintf("compass:%d:%.3f", steps, qAspect), float32(float64(steps) * step), float32(qAspect)
}

func (r *frameRenderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *frameRenderer) Release() {
	if r.bundle != nil {
		r.bundle.Release()
		r.bundle = nil
	}
	if r.compass != nil {
		r.compass.Purge()
		r.compass = nil
	}
	for i := range r.statics {
		r.statics[i].Release()
		r.statics[i] = mesh.Mesh{}
	}
	if r.slots != nil {
		r.slots.release()
	}
	if r.cameraProvider != nil {
		r.cameraProvider.Release()
		r.cameraProvider = nil
	}
	if r.layouts.Camera != nil {
		r.layouts.Camera.Release()
		r.layouts.Camera = nil
	}
	if r.layouts.Model != nil {
		r.layouts.Model.Release()
		r.layouts.Model = nil
	}
}
