package graphics

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/gogpu/korin"
	"github.com/gogpu/korin/gpu"
	"github.com/gogpu/korin/internal/parallel"
)

// ErrNoSurface is returned when a frame is requested while suspended.
var ErrNoSurface = errors.New("graphics: no surface")

// EngineOptions configures a new engine.
type EngineOptions struct {
	ScreenWidth     uint32
	ScreenHeight    uint32
	VSync           bool
	TripleBuffering bool
	ShadowDetail    ShadowDetail
	TextureSampler  TextureSamplerType
	LimitFramerate  LimitFramerate
	ClearColor      gpu.ClearColor

	// Workers sizes the prepare and record pool; 0 uses GOMAXPROCS.
	Workers int
}

// engineContext holds every pass context and drawer. It is bound to one
// surface format through its pipelines and is rebuilt as a whole when
// the format changes; nothing else ever invalidates it.
type engineContext struct {
	format gpu.TextureFormat

	interfacePass         *InterfacePassContext
	pickerPass            *PickerPassContext
	directionalShadowPass *DirectionalShadowPassContext
	pointShadowPass       *PointShadowPassContext
	geometryPass          *GeometryPassContext
	screenPass            *ScreenPassContext

	interfaceRectangle *InterfaceRectangleDrawer

	pickerEntity *PickerEntityDrawer
	pickerTile   *PickerTileDrawer
	pickerMarker *PickerMarkerDrawer

	directionalShadowModel     *DirectionalShadowModelDrawer
	directionalShadowEntity    *DirectionalShadowEntityDrawer
	directionalShadowIndicator *DirectionalShadowIndicatorDrawer

	pointShadowModel  *PointShadowModelDrawer
	pointShadowEntity *PointShadowEntityDrawer

	geometryModel     *GeometryModelDrawer
	geometryEntity    *GeometryEntityDrawer
	geometryWater     *GeometryWaterDrawer
	geometryIndicator *GeometryIndicatorDrawer

	screenAmbientLight     *ScreenAmbientLightDrawer
	screenDirectionalLight *ScreenDirectionalLightDrawer
	screenPointLight       *ScreenPointLightDrawer
	screenWaterLight       *ScreenWaterLightDrawer
	screenRectangle        *ScreenRectangleDrawer
	screenEffect           *ScreenEffectDrawer
	screenInterface        *ScreenInterfaceDrawer
	screenAabb             *ScreenAabbDrawer
	screenCircle           *ScreenCircleDrawer
	screenBuffer           *ScreenBufferDrawer

	// uploadOrder is the fixed drawer order of the upload walk. Staging
	// belt offsets depend on it, so it must not vary between frames.
	uploadOrder []Drawer

	// prepareGroups batch drawers of similar cost for the pool.
	prepareGroups [][]Drawer
}

func newEngineContext(device gpu.Device, global *GlobalContext, format gpu.TextureFormat) (*engineContext, error) {
	c := &engineContext{format: format}

	c.interfacePass = newInterfacePassContext(device)
	c.pickerPass = newPickerPassContext(device)
	c.directionalShadowPass = newDirectionalShadowPassContext(device)
	c.pointShadowPass = newPointShadowPassContext(device)
	c.geometryPass = newGeometryPassContext(device)
	c.screenPass = newScreenPassContext(device, global)

	var err error
	if c.interfaceRectangle, err = newInterfaceRectangleDrawer(device, global, c.interfacePass); err != nil {
		return nil, err
	}
	if c.pickerEntity, err = newPickerEntityDrawer(device, global, c.pickerPass); err != nil {
		return nil, err
	}
	if c.pickerTile, err = newPickerTileDrawer(device, global, c.pickerPass); err != nil {
		return nil, err
	}
	if c.pickerMarker, err = newPickerMarkerDrawer(device, global, c.pickerPass); err != nil {
		return nil, err
	}
	if c.directionalShadowModel, err = newDirectionalShadowModelDrawer(device, global, c.directionalShadowPass); err != nil {
		return nil, err
	}
	if c.directionalShadowEntity, err = newDirectionalShadowEntityDrawer(device, global, c.directionalShadowPass); err != nil {
		return nil, err
	}
	if c.directionalShadowIndicator, err = newDirectionalShadowIndicatorDrawer(device, global, c.directionalShadowPass); err != nil {
		return nil, err
	}
	if c.pointShadowModel, err = newPointShadowModelDrawer(device, global, c.pointShadowPass); err != nil {
		return nil, err
	}
	if c.pointShadowEntity, err = newPointShadowEntityDrawer(device, global, c.pointShadowPass); err != nil {
		return nil, err
	}
	if c.geometryModel, err = newGeometryModelDrawer(device, global, c.geometryPass, format); err != nil {
		return nil, err
	}
	if c.geometryEntity, err = newGeometryEntityDrawer(device, global, c.geometryPass, format); err != nil {
		return nil, err
	}
	if c.geometryWater, err = newGeometryWaterDrawer(device, global, c.geometryPass, format); err != nil {
		return nil, err
	}
	if c.geometryIndicator, err = newGeometryIndicatorDrawer(device, global, c.geometryPass, format); err != nil {
		return nil, err
	}
	if c.screenAmbientLight, err = newScreenAmbientLightDrawer(device, global, c.screenPass, format); err != nil {
		return nil, err
	}
	if c.screenDirectionalLight, err = newScreenDirectionalLightDrawer(device, global, c.screenPass, format); err != nil {
		return nil, err
	}
	if c.screenPointLight, err = newScreenPointLightDrawer(device, global, c.screenPass, format); err != nil {
		return nil, err
	}
	if c.screenWaterLight, err = newScreenWaterLightDrawer(device, global, c.screenPass, format); err != nil {
		return nil, err
	}
	if c.screenRectangle, err = newScreenRectangleDrawer(device, global, c.screenPass, format); err != nil {
		return nil, err
	}
	if c.screenEffect, err = newScreenEffectDrawer(device, global, c.screenPass, format); err != nil {
		return nil, err
	}
	if c.screenInterface, err = newScreenInterfaceDrawer(device, global, c.screenPass, format); err != nil {
		return nil, err
	}
	if c.screenAabb, err = newScreenAabbDrawer(device, global, c.screenPass, format); err != nil {
		return nil, err
	}
	if c.screenCircle, err = newScreenCircleDrawer(device, global, c.screenPass, format); err != nil {
		return nil, err
	}
	if c.screenBuffer, err = newScreenBufferDrawer(device, global, c.screenPass, format); err != nil {
		return nil, err
	}

	c.uploadOrder = []Drawer{
		c.interfaceRectangle,
		c.pickerEntity, c.pickerTile, c.pickerMarker,
		c.directionalShadowModel, c.directionalShadowEntity, c.directionalShadowIndicator,
		c.pointShadowModel, c.pointShadowEntity,
		c.geometryModel, c.geometryEntity, c.geometryWater, c.geometryIndicator,
		c.screenAmbientLight, c.screenDirectionalLight, c.screenPointLight, c.screenWaterLight,
		c.screenRectangle, c.screenEffect, c.screenInterface,
		c.screenAabb, c.screenCircle, c.screenBuffer,
	}
	sort.Slice(c.uploadOrder, func(i, j int) bool {
		return c.uploadOrder[i].Name() < c.uploadOrder[j].Name()
	})

	c.prepareGroups = [][]Drawer{
		{c.directionalShadowEntity, c.directionalShadowModel, c.directionalShadowIndicator},
		{c.geometryEntity, c.geometryModel, c.geometryWater, c.geometryIndicator},
		{c.interfaceRectangle, c.screenInterface},
		{c.pointShadowEntity, c.pointShadowModel},
		{c.screenDirectionalLight, c.screenEffect, c.screenAmbientLight},
		{c.screenPointLight, c.screenRectangle, c.screenWaterLight},
		{c.pickerMarker, c.screenAabb},
		{c.screenBuffer, c.screenCircle},
	}

	return c, nil
}

// destroy releases every drawer's format-bound buffers. Pipelines and
// bind groups have no release call in the device interface; they are
// dropped with the device.
func (c *engineContext) destroy() {
	for _, drawer := range c.uploadOrder {
		drawer.Destroy()
	}
}

// GraphicsEngine orchestrates the frame: it owns the device-facing
// contexts, the worker pool, the staging belt and the frame pacer, and
// drives the six render passes.
//
// The engine is single-goroutine from the caller's perspective: all
// methods must be called from the render loop goroutine. Internally it
// fans prepare and pass recording out over the worker pool.
type GraphicsEngine struct {
	device gpu.Device
	queue  gpu.Queue
	pool   *parallel.WorkerPool
	belt   *gpu.StagingBelt
	pacer  *FramePacer
	global *GlobalContext

	surface *Surface
	ctx     *engineContext

	vsync           bool
	tripleBuffering bool
	clearColor      gpu.ClearColor

	// contextGeneration counts engine context rebuilds; it only moves
	// when the surface format changes.
	contextGeneration uint64

	pickerValue atomic.Uint64
	stage       FrameStage
}

// NewGraphicsEngine creates the engine and its shared GPU resources.
// The surface and the format-bound pipelines are created by OnResume.
func NewGraphicsEngine(device gpu.Device, options EngineOptions) *GraphicsEngine {
	if options.ScreenWidth == 0 {
		options.ScreenWidth = 1
	}
	if options.ScreenHeight == 0 {
		options.ScreenHeight = 1
	}

	e := &GraphicsEngine{
		device:          device,
		queue:           device.Queue(),
		pool:            parallel.NewWorkerPool(options.Workers),
		belt:            gpu.NewStagingBelt(device, gpu.DefaultStagingChunkSize),
		pacer:           NewFramePacer(),
		vsync:           options.VSync,
		tripleBuffering: options.TripleBuffering,
		clearColor:      options.ClearColor,
	}
	e.global = newGlobalContext(device, options.ScreenWidth, options.ScreenHeight, options.ShadowDetail, options.TextureSampler)
	e.pacer.SetLimitFramerate(options.LimitFramerate)

	korin.Logger().Info("graphics: engine created",
		"width", options.ScreenWidth, "height", options.ScreenHeight,
		"shadow_detail", options.ShadowDetail.String(), "workers", e.pool.Workers())
	return e
}

// OnResume creates the presentable surface for a window and builds the
// format-bound pipelines if the surface format requires it.
func (e *GraphicsEngine) OnResume(windowHandle any) error {
	width, height := e.global.ScreenSize()
	raw, err := e.device.CreateSurface(&gpu.SurfaceDescriptor{
		Label:        "window surface",
		Width:        width,
		Height:       height,
		WindowHandle: windowHandle,
	})
	if err != nil {
		return fmt.Errorf("graphics: create surface: %w", err)
	}
	e.surface = newSurface(raw, width, height, e.vsync, e.tripleBuffering)
	return e.ensureContext()
}

// OnSuspended drops the surface. Pipelines and textures survive; only
// the swap chain is gone until the next OnResume.
func (e *GraphicsEngine) OnSuspended() {
	e.surface = nil
	korin.Logger().Debug("graphics: suspended")
}

// OnResize propagates a new window size. The surface reconfigures and
// the screen-size textures are swapped; pipelines are untouched.
func (e *GraphicsEngine) OnResize(width, height uint32) {
	if e.surface != nil {
		e.surface.SetSize(width, height)
	}
	e.global.UpdateScreenSizeTextures(width, height)
}

// ensureContext rebuilds the engine context if the surface format
// changed since it was built. This is the only rebuild trigger.
func (e *GraphicsEngine) ensureContext() error {
	format := e.surface.Format()
	if e.ctx != nil && e.ctx.format == format {
		return nil
	}
	ctx, err := newEngineContext(e.device, e.global, format)
	if err != nil {
		return err
	}
	if e.ctx != nil {
		e.ctx.destroy()
	}
	e.ctx = ctx
	e.contextGeneration++
	korin.Logger().Info("graphics: engine context built",
		"format", format.String(), "generation", e.contextGeneration)
	return nil
}

// SetVSync updates vertical sync; takes effect on the next acquire.
func (e *GraphicsEngine) SetVSync(enabled bool) {
	e.vsync = enabled
	if e.surface != nil {
		e.surface.SetVSync(enabled)
	}
}

// SetTripleBuffering updates the buffering preference.
func (e *GraphicsEngine) SetTripleBuffering(enabled bool) {
	e.tripleBuffering = enabled
	if e.surface != nil {
		e.surface.SetTripleBuffering(enabled)
	}
}

// SetLimitFramerate updates the framerate cap.
func (e *GraphicsEngine) SetLimitFramerate(limit LimitFramerate) {
	e.pacer.SetLimitFramerate(limit)
}

// SetMonitorFrequency reports the refresh rate of the active monitor.
func (e *GraphicsEngine) SetMonitorFrequency(hz uint32) {
	e.pacer.SetMonitorFrequency(hz)
}

// SetShadowDetail swaps the shadow maps for the new detail level.
// Unrelated textures keep their identity.
func (e *GraphicsEngine) SetShadowDetail(detail ShadowDetail) {
	e.global.UpdateShadowSizeTextures(detail)
}

// SetTextureSamplerType swaps the world-texture sampler.
func (e *GraphicsEngine) SetTextureSamplerType(samplerType TextureSamplerType) {
	e.global.UpdateTextureSampler(samplerType)
}

// PickerValue returns the object identifier under the cursor, delivered
// with one frame of latency by the asynchronous read-back.
func (e *GraphicsEngine) PickerValue() uint64 {
	return e.pickerValue.Load()
}

// ContextGeneration counts engine context rebuilds.
func (e *GraphicsEngine) ContextGeneration() uint64 { return e.contextGeneration }

// Global exposes the shared context for frame assembly and tests.
func (e *GraphicsEngine) Global() *GlobalContext { return e.global }

// WaitForNextFrame paces the CPU, revalidates the surface if needed and
// acquires the next presentable frame.
func (e *GraphicsEngine) WaitForNextFrame() (gpu.Frame, error) {
	if e.surface == nil {
		return nil, ErrNoSurface
	}
	e.pacer.WaitForFrame()
	if !e.surface.IsValid() {
		e.surface.Reconfigure()
		if err := e.ensureContext(); err != nil {
			return nil, err
		}
	}
	frame, err := e.surface.Acquire()
	if err != nil {
		return nil, err
	}
	e.stage = e.pacer.BeginFrameStage()
	return frame, nil
}

// RenderNextFrame records, submits and presents one frame from the
// given instruction.
//
// The caster limit is asserted before any recording starts, so an
// over-long caster list cannot leave half-recorded work behind. The
// prepare stage fans out over the pool while the pass contexts and the
// picker drawers prepare on the calling goroutine. Uploads then walk
// the drawers in a fixed order over a single encoder, five passes are
// recorded on the pool while the screen pass records here, and the
// seven command buffers are submitted in pass order after the previous
// frame's picker read-back resolved.
func (e *GraphicsEngine) RenderNextFrame(frame gpu.Frame, instruction *RenderInstruction) {
	if len(instruction.PointShadowCasters) > NumberOfPointLightsWithShadows {
		panic(fmt.Sprintf("graphics: %d point shadow casters exceed the supported %d",
			len(instruction.PointShadowCasters), NumberOfPointLightsWithShadows))
	}
	ctx := e.ctx

	e.belt.Recall()

	// Prepare. The pass contexts and picker drawers are cheap and feed
	// the copy recorded right after the picker pass, so they stay on
	// this goroutine.
	e.global.Prepare(instruction)
	ctx.directionalShadowPass.Prepare(instruction)
	ctx.pointShadowPass.Prepare(instruction)
	ctx.pickerEntity.Prepare(instruction)
	ctx.pickerTile.Prepare(instruction)

	work := make([]func(), 0, len(ctx.prepareGroups))
	for _, group := range ctx.prepareGroups {
		group := group
		work = append(work, func() {
			for _, drawer := range group {
				drawer.Prepare(instruction)
			}
		})
	}
	e.pool.ExecuteAll(work)

	// Upload everything through the belt in fixed drawer order.
	prepareEncoder := gpu.NewCommandEncoder("prepare")
	e.global.Upload(e.belt, prepareEncoder)
	ctx.directionalShadowPass.Upload(e.belt, prepareEncoder)
	ctx.pointShadowPass.Upload(e.belt, prepareEncoder)
	for _, drawer := range ctx.uploadOrder {
		drawer.Upload(e.belt, prepareEncoder)
	}

	frameView := frame.Texture().CreateView(nil)

	// Record the five offscreen passes on the pool while the screen
	// pass records here.
	var interfaceBuffer, pickerBuffer, directionalBuffer, pointBuffer, geometryBuffer *gpu.CommandBuffer
	finished := make(chan struct{})
	passWork := []func(){
		func() { interfaceBuffer = e.recordInterfacePass(instruction) },
		func() { pickerBuffer = e.recordPickerPass(instruction) },
		func() { directionalBuffer = e.recordDirectionalShadowPass(instruction) },
		func() { pointBuffer = e.recordPointShadowPass(instruction) },
		func() { geometryBuffer = e.recordGeometryPass(instruction, frameView) },
	}
	go func() {
		e.pool.ExecuteAll(passWork)
		close(finished)
	}()
	screenBuffer := e.recordScreenPass(instruction, frameView)
	<-finished

	e.belt.Finish()

	// Register this frame's read before polling, so the poll resolves
	// the previous frame's copy into the picker cell.
	e.global.QueuePickerRead(&e.pickerValue)
	e.device.Poll(true)

	e.queue.Submit([]*gpu.CommandBuffer{
		prepareEncoder.Finish(),
		interfaceBuffer,
		pickerBuffer,
		directionalBuffer,
		pointBuffer,
		geometryBuffer,
		screenBuffer,
	})
	frame.Present()
	e.pacer.EndFrameStage(e.stage)
}

func (e *GraphicsEngine) recordInterfacePass(instruction *RenderInstruction) *gpu.CommandBuffer {
	encoder := gpu.NewCommandEncoder("interface")
	pass := e.ctx.interfacePass.CreatePass(encoder, e.global)
	e.ctx.interfaceRectangle.Draw(pass, instruction)
	pass.End()
	return encoder.Finish()
}

func (e *GraphicsEngine) recordPickerPass(instruction *RenderInstruction) *gpu.CommandBuffer {
	encoder := gpu.NewCommandEncoder("picker")
	pass := e.ctx.pickerPass.CreatePass(encoder, e.global)
	e.ctx.pickerTile.Draw(pass, instruction)
	e.ctx.pickerEntity.Draw(pass, instruction)
	e.ctx.pickerMarker.Draw(pass, instruction)
	pass.End()

	// Single-texel copy of the hovered identifier, read back next frame.
	encoder.CopyTextureToBuffer(
		e.global.pickerTexture,
		e.global.pickerCopyOrigin(instruction.PickerPosition),
		e.global.pickerValueBuffer,
		0,
		gpu.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1},
	)
	return encoder.Finish()
}

func (e *GraphicsEngine) recordDirectionalShadowPass(instruction *RenderInstruction) *gpu.CommandBuffer {
	encoder := gpu.NewCommandEncoder("directional shadow")
	pass := e.ctx.directionalShadowPass.CreatePass(encoder, e.global)
	e.ctx.directionalShadowModel.Draw(pass, instruction)
	e.ctx.directionalShadowEntity.Draw(pass, instruction)
	e.ctx.directionalShadowIndicator.Draw(pass, instruction)
	pass.End()
	return encoder.Finish()
}

func (e *GraphicsEngine) recordPointShadowPass(instruction *RenderInstruction) *gpu.CommandBuffer {
	encoder := gpu.NewCommandEncoder("point shadow")
	for caster := range instruction.PointShadowCasters {
		for face := 0; face < pointShadowFaceCount; face++ {
			pass := e.ctx.pointShadowPass.CreateFacePass(encoder, e.global, caster, face)
			e.ctx.pointShadowModel.DrawFace(pass, instruction, caster)
			e.ctx.pointShadowEntity.DrawFace(pass, instruction, caster)
			pass.End()
		}
	}
	return encoder.Finish()
}

func (e *GraphicsEngine) recordGeometryPass(instruction *RenderInstruction, frameView gpu.TextureView) *gpu.CommandBuffer {
	encoder := gpu.NewCommandEncoder("geometry")
	pass := e.ctx.geometryPass.CreatePass(encoder, e.global, frameView, e.clearColor)
	e.ctx.geometryModel.Draw(pass, instruction)
	e.ctx.geometryEntity.Draw(pass, instruction)
	e.ctx.geometryWater.Draw(pass, instruction)
	e.ctx.geometryIndicator.Draw(pass, instruction)
	pass.End()
	return encoder.Finish()
}

// recordScreenPass composites in the fixed order: lighting, bottom
// rectangles, effects, middle rectangles, the interface overlay, top
// rectangles, then the debug overlays.
func (e *GraphicsEngine) recordScreenPass(instruction *RenderInstruction, frameView gpu.TextureView) *gpu.CommandBuffer {
	ctx := e.ctx
	encoder := gpu.NewCommandEncoder("screen")
	pass := ctx.screenPass.CreatePass(encoder, e.global, frameView)

	ctx.screenAmbientLight.Draw(pass, instruction)
	ctx.screenDirectionalLight.Draw(pass, instruction)
	ctx.screenPointLight.Draw(pass, instruction)
	ctx.screenWaterLight.Draw(pass, instruction)

	ctx.screenRectangle.DrawBottom(pass)
	ctx.screenEffect.Draw(pass, instruction)
	ctx.screenRectangle.DrawMiddle(pass)
	ctx.screenInterface.Draw(pass, instruction)
	ctx.screenRectangle.DrawTop(pass)

	ctx.screenAabb.Draw(pass, instruction)
	ctx.screenCircle.Draw(pass, instruction)
	ctx.screenRectangle.DrawDebug(pass)
	ctx.screenBuffer.Draw(pass, instruction)

	pass.End()
	return encoder.Finish()
}

// CPUFrameTime returns the smoothed CPU frame span.
func (e *GraphicsEngine) CPUFrameTime() time.Duration { return e.pacer.CPUTime() }

// Close releases the worker pool and the context's GPU buffers.
// Everything else is dropped with the device.
func (e *GraphicsEngine) Close() {
	e.pool.Close()
	if e.ctx != nil {
		e.ctx.destroy()
		e.ctx = nil
	}
}
