package graphics

import (
	"github.com/gogpu/korin/gpu"
	"github.com/gogpu/korin/linear"
)

// newScreenPipeline builds a screen pass pipeline: no depth attachment,
// one color target in the surface format.
func newScreenPipeline(device gpu.Device, label, source string, global *GlobalContext, pass *ScreenPassContext, drawerLayout gpu.BindGroupLayout, format gpu.TextureFormat, blend gpu.BlendMode) (gpu.RenderPipeline, error) {
	shader, err := createShader(device, label, source)
	if err != nil {
		return nil, err
	}
	return device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            label,
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), drawerLayout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
		FragmentShader:   shader,
		FragmentEntry:    "fs_main",
		ColorTargets:     []gpu.ColorTargetState{{Format: format, Blend: blend}},
	})
}

// ScreenAmbientLightDrawer applies the ambient term over the whole
// screen. Gated by the ambient light setting.
type ScreenAmbientLightDrawer struct {
	pipeline gpu.RenderPipeline
	uniform  *uniformSlot
	enabled  bool
}

func newScreenAmbientLightDrawer(device gpu.Device, global *GlobalContext, pass *ScreenPassContext, format gpu.TextureFormat) (*ScreenAmbientLightDrawer, error) {
	d := &ScreenAmbientLightDrawer{
		uniform: newUniformSlot(device, "ambient light uniforms", 32),
	}
	pipeline, err := newScreenPipeline(device, "screen ambient light", fullscreenLightShader, global, pass, d.uniform.layout, format, gpu.BlendModeAdditive)
	if err != nil {
		return nil, err
	}
	d.pipeline = pipeline
	return d, nil
}

func (d *ScreenAmbientLightDrawer) Name() string { return "screen ambient light" }

func (d *ScreenAmbientLightDrawer) Prepare(instruction *RenderInstruction) {
	d.enabled = instruction.Settings.ShowAmbientLight
	u := &d.uniform.uniforms
	u.reset()
	if !d.enabled {
		return
	}
	u.color(instruction.AmbientColor)
	u.vec4(linear.Vec4{})
}

func (d *ScreenAmbientLightDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.uniform.upload(belt, encoder)
}

func (d *ScreenAmbientLightDrawer) Destroy() {
	d.uniform.destroy()
}

func (d *ScreenAmbientLightDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if !d.enabled {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.uniform.bindGroup)
	pass.Draw(3, 1, 0, 0)
}

// ScreenDirectionalLightDrawer applies the sun contribution, shadowed
// by the directional shadow map bound at set 0. Gated by the
// directional light setting.
type ScreenDirectionalLightDrawer struct {
	pipeline gpu.RenderPipeline
	uniform  *uniformSlot
	enabled  bool
}

func newScreenDirectionalLightDrawer(device gpu.Device, global *GlobalContext, pass *ScreenPassContext, format gpu.TextureFormat) (*ScreenDirectionalLightDrawer, error) {
	d := &ScreenDirectionalLightDrawer{
		uniform: newUniformSlot(device, "directional light uniforms", 32),
	}
	pipeline, err := newScreenPipeline(device, "screen directional light", fullscreenLightShader, global, pass, d.uniform.layout, format, gpu.BlendModeAdditive)
	if err != nil {
		return nil, err
	}
	d.pipeline = pipeline
	return d, nil
}

func (d *ScreenDirectionalLightDrawer) Name() string { return "screen directional light" }

func (d *ScreenDirectionalLightDrawer) Prepare(instruction *RenderInstruction) {
	d.enabled = instruction.Settings.ShowDirectionalLight
	u := &d.uniform.uniforms
	u.reset()
	if !d.enabled {
		return
	}
	light := &instruction.DirectionalLight
	u.color(light.Color)
	u.vec4(light.Direction.Vec4(0))
}

func (d *ScreenDirectionalLightDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.uniform.upload(belt, encoder)
}

func (d *ScreenDirectionalLightDrawer) Destroy() {
	d.uniform.destroy()
}

func (d *ScreenDirectionalLightDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if !d.enabled {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.uniform.bindGroup)
	pass.Draw(3, 1, 0, 0)
}

// ScreenPointLightDrawer accumulates every point light contribution,
// sampling the shadow cube array for shadowed casters. Gated by the
// point lights setting.
type ScreenPointLightDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	count     uint32
	enabled   bool
}

func newScreenPointLightDrawer(device gpu.Device, global *GlobalContext, pass *ScreenPassContext, format gpu.TextureFormat) (*ScreenPointLightDrawer, error) {
	d := &ScreenPointLightDrawer{
		instances: newInstanceBuffer(device, "point light instances", 64*48),
	}
	pipeline, err := newScreenPipeline(device, "screen point light", pointLightShader, global, pass, d.instances.layout, format, gpu.BlendModeAdditive)
	if err != nil {
		return nil, err
	}
	d.pipeline = pipeline
	return d, nil
}

func (d *ScreenPointLightDrawer) Name() string { return "screen point light" }

func (d *ScreenPointLightDrawer) Prepare(instruction *RenderInstruction) {
	d.enabled = instruction.Settings.ShowPointLights
	p := &d.instances.instances
	p.reset()
	d.count = 0
	if !d.enabled {
		return
	}
	for i := range instruction.PointLights {
		light := &instruction.PointLights[i]
		p.vec4(light.Position.Vec4(1))
		p.color(light.Color)
		p.f32(light.Range)
		p.u32(uint32(int32(light.ShadowCasterIndex)))
		p.f32(0)
		p.f32(0)
	}
	d.count = uint32(len(instruction.PointLights))
}

func (d *ScreenPointLightDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *ScreenPointLightDrawer) Destroy() {
	d.instances.destroy()
}

func (d *ScreenPointLightDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if !d.enabled || d.count == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	pass.Draw(3, d.count, 0, 0)
}

// ScreenWaterLightDrawer applies the underwater tint below the water
// line. Not gated by any setting: disabling lighting must not strip
// the water tint.
type ScreenWaterLightDrawer struct {
	pipeline gpu.RenderPipeline
	uniform  *uniformSlot
	present  bool
}

func newScreenWaterLightDrawer(device gpu.Device, global *GlobalContext, pass *ScreenPassContext, format gpu.TextureFormat) (*ScreenWaterLightDrawer, error) {
	d := &ScreenWaterLightDrawer{
		uniform: newUniformSlot(device, "water light uniforms", 32),
	}
	pipeline, err := newScreenPipeline(device, "screen water light", fullscreenLightShader, global, pass, d.uniform.layout, format, gpu.BlendModeAdditive)
	if err != nil {
		return nil, err
	}
	d.pipeline = pipeline
	return d, nil
}

func (d *ScreenWaterLightDrawer) Name() string { return "screen water light" }

func (d *ScreenWaterLightDrawer) Prepare(instruction *RenderInstruction) {
	d.present = instruction.Water != nil
	u := &d.uniform.uniforms
	u.reset()
	if !d.present {
		return
	}
	u.color(instruction.Water.Color)
	u.vec4(linear.Vec4{})
}

func (d *ScreenWaterLightDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.uniform.upload(belt, encoder)
}

func (d *ScreenWaterLightDrawer) Destroy() {
	d.uniform.destroy()
}

func (d *ScreenWaterLightDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if !d.present {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.uniform.bindGroup)
	pass.Draw(3, 1, 0, 0)
}

// ScreenRectangleDrawer renders the three screen rectangle layers and
// the debug rectangles from one shared instance buffer. The layers are
// packed contiguously so each layer is one instanced draw at a fixed
// offset, preserving the bottom, middle, top compositing order.
type ScreenRectangleDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer

	bottomCount uint32
	middleCount uint32
	topCount    uint32
	debugCount  uint32
}

func newScreenRectangleDrawer(device gpu.Device, global *GlobalContext, pass *ScreenPassContext, format gpu.TextureFormat) (*ScreenRectangleDrawer, error) {
	d := &ScreenRectangleDrawer{
		instances: newInstanceBuffer(device, "screen rectangle instances", 256*64),
	}
	pipeline, err := newScreenPipeline(device, "screen rectangle", rectangleShader, global, pass, d.instances.layout, format, gpu.BlendModeAlpha)
	if err != nil {
		return nil, err
	}
	d.pipeline = pipeline
	return d, nil
}

func (d *ScreenRectangleDrawer) Name() string { return "screen rectangle" }

func (d *ScreenRectangleDrawer) Prepare(instruction *RenderInstruction) {
	p := &d.instances.instances
	p.reset()
	for i := range instruction.BottomRectangles {
		packRectangle(p, &instruction.BottomRectangles[i])
	}
	for i := range instruction.MiddleRectangles {
		packRectangle(p, &instruction.MiddleRectangles[i])
	}
	for i := range instruction.TopRectangles {
		packRectangle(p, &instruction.TopRectangles[i])
	}
	d.debugCount = 0
	if instruction.Settings.ShowDebugRectangles {
		for i := range instruction.DebugRectangles {
			packRectangle(p, &instruction.DebugRectangles[i])
		}
		d.debugCount = uint32(len(instruction.DebugRectangles))
	}
	d.bottomCount = uint32(len(instruction.BottomRectangles))
	d.middleCount = uint32(len(instruction.MiddleRectangles))
	d.topCount = uint32(len(instruction.TopRectangles))
}

func (d *ScreenRectangleDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *ScreenRectangleDrawer) Destroy() {
	d.instances.destroy()
}

func (d *ScreenRectangleDrawer) drawRange(pass *gpu.RenderPassEncoder, first, count uint32) {
	if count == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	pass.Draw(6, count, 0, first)
}

func (d *ScreenRectangleDrawer) DrawBottom(pass *gpu.RenderPassEncoder) {
	d.drawRange(pass, 0, d.bottomCount)
}

func (d *ScreenRectangleDrawer) DrawMiddle(pass *gpu.RenderPassEncoder) {
	d.drawRange(pass, d.bottomCount, d.middleCount)
}

func (d *ScreenRectangleDrawer) DrawTop(pass *gpu.RenderPassEncoder) {
	d.drawRange(pass, d.bottomCount+d.middleCount, d.topCount)
}

func (d *ScreenRectangleDrawer) DrawDebug(pass *gpu.RenderPassEncoder) {
	d.drawRange(pass, d.bottomCount+d.middleCount+d.topCount, d.debugCount)
}

// ScreenEffectDrawer renders additive effect quads between the bottom
// and middle rectangle layers.
type ScreenEffectDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	count     uint32
}

func newScreenEffectDrawer(device gpu.Device, global *GlobalContext, pass *ScreenPassContext, format gpu.TextureFormat) (*ScreenEffectDrawer, error) {
	d := &ScreenEffectDrawer{
		instances: newInstanceBuffer(device, "screen effect instances", 64*80),
	}
	pipeline, err := newScreenPipeline(device, "screen effect", effectShader, global, pass, d.instances.layout, format, gpu.BlendModeAdditive)
	if err != nil {
		return nil, err
	}
	d.pipeline = pipeline
	return d, nil
}

func (d *ScreenEffectDrawer) Name() string { return "screen effect" }

func (d *ScreenEffectDrawer) Prepare(instruction *RenderInstruction) {
	p := &d.instances.instances
	p.reset()
	for i := range instruction.Effects {
		effect := &instruction.Effects[i]
		for _, corner := range effect.Corners {
			p.f32(corner.X)
			p.f32(corner.Y)
			p.f32(0)
			p.f32(0)
		}
		p.color(effect.Color)
	}
	d.count = uint32(len(instruction.Effects))
}

func (d *ScreenEffectDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *ScreenEffectDrawer) Destroy() {
	d.instances.destroy()
}

func (d *ScreenEffectDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if d.count == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	pass.Draw(6, d.count, 0, 0)
}

// ScreenInterfaceDrawer composites the interface buffer over the scene
// between the middle and top rectangle layers.
type ScreenInterfaceDrawer struct {
	pipeline gpu.RenderPipeline
	empty    gpu.BindGroup
}

func newScreenInterfaceDrawer(device gpu.Device, global *GlobalContext, pass *ScreenPassContext, format gpu.TextureFormat) (*ScreenInterfaceDrawer, error) {
	layout, group := newEmptyPassBindings(device, "interface overlay bindings")
	pipeline, err := newScreenPipeline(device, "screen interface overlay", overlayShader, global, pass, layout, format, gpu.BlendModeAlpha)
	if err != nil {
		return nil, err
	}
	return &ScreenInterfaceDrawer{pipeline: pipeline, empty: group}, nil
}

func (d *ScreenInterfaceDrawer) Name() string { return "screen interface overlay" }

func (d *ScreenInterfaceDrawer) Prepare(instruction *RenderInstruction) {}

func (d *ScreenInterfaceDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {}

func (d *ScreenInterfaceDrawer) Destroy() {}

func (d *ScreenInterfaceDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if !instruction.ShowInterface {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.empty)
	pass.Draw(3, 1, 0, 0)
}
