package graphics

import (
	"github.com/gogpu/korin/gpu"
)

// Pass contexts own everything one render pass needs beyond the global
// context: its set-1 bind group, its attachments and its clear values.
// Every pipeline is created against the layout triple
// [global, pass, drawer], so passes without natural bindings still
// carry an empty set-1 layout.
//
// Pass contexts never hold references into screen-size or shadow-size
// textures across frames. The ones that do bind such textures cache the
// global version counters and rebuild their bind group lazily when a
// swap happened.

// newEmptyPassBindings builds an empty set-1 layout and group, shared
// by the passes without pass-specific bindings.
func newEmptyPassBindings(device gpu.Device, label string) (gpu.BindGroupLayout, gpu.BindGroup) {
	layout := device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{Label: label})
	group := device.CreateBindGroup(&gpu.BindGroupDescriptor{Label: label, Layout: layout})
	return layout, group
}

// InterfacePassContext renders user interface rectangles into the
// dedicated interface buffer. The buffer is cleared to transparent and
// later composited by the screen pass, so an empty interface leaves the
// scene untouched.
type InterfacePassContext struct {
	layout    gpu.BindGroupLayout
	bindGroup gpu.BindGroup
}

func newInterfacePassContext(device gpu.Device) *InterfacePassContext {
	layout, group := newEmptyPassBindings(device, "interface pass bindings")
	return &InterfacePassContext{layout: layout, bindGroup: group}
}

func (c *InterfacePassContext) BindGroupLayout() gpu.BindGroupLayout { return c.layout }

func (c *InterfacePassContext) CreatePass(encoder *gpu.CommandEncoder, global *GlobalContext) *gpu.RenderPassEncoder {
	pass := encoder.BeginRenderPass(&gpu.RenderPassDescriptor{
		Label: "interface",
		ColorAttachments: []gpu.RenderPassColorAttachment{{
			View:       global.interfaceView,
			LoadOp:     gpu.LoadOpClear,
			StoreOp:    gpu.StoreOpStore,
			ClearValue: gpu.ClearColor{},
		}},
	})
	pass.SetBindGroup(0, global.bindGroup)
	pass.SetBindGroup(1, c.bindGroup)
	return pass
}

// PickerPassContext renders object identifiers into the two-channel
// integer picker target.
type PickerPassContext struct {
	layout    gpu.BindGroupLayout
	bindGroup gpu.BindGroup
}

func newPickerPassContext(device gpu.Device) *PickerPassContext {
	layout, group := newEmptyPassBindings(device, "picker pass bindings")
	return &PickerPassContext{layout: layout, bindGroup: group}
}

func (c *PickerPassContext) BindGroupLayout() gpu.BindGroupLayout { return c.layout }

func (c *PickerPassContext) CreatePass(encoder *gpu.CommandEncoder, global *GlobalContext) *gpu.RenderPassEncoder {
	pass := encoder.BeginRenderPass(&gpu.RenderPassDescriptor{
		Label: "picker",
		ColorAttachments: []gpu.RenderPassColorAttachment{{
			View:       global.pickerView,
			LoadOp:     gpu.LoadOpClear,
			StoreOp:    gpu.StoreOpStore,
			ClearValue: gpu.ClearColor{},
		}},
		DepthStencil: &gpu.RenderPassDepthStencilAttachment{
			View:         global.pickerDepthView,
			DepthLoadOp:  gpu.LoadOpClear,
			DepthStoreOp: gpu.StoreOpStore,
			ClearDepth:   1.0,
		},
	})
	pass.SetBindGroup(0, global.bindGroup)
	pass.SetBindGroup(1, c.bindGroup)
	return pass
}

// DirectionalShadowPassContext renders the scene depth from the light's
// point of view. Its set-1 uniform holds the light view-projection.
type DirectionalShadowPassContext struct {
	uniformBuffer gpu.Buffer
	layout        gpu.BindGroupLayout
	bindGroup     gpu.BindGroup
	uniforms      packer
}

func newDirectionalShadowPassContext(device gpu.Device) *DirectionalShadowPassContext {
	c := &DirectionalShadowPassContext{}
	c.uniformBuffer = device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "directional shadow uniforms",
		Size:  64,
		Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	c.layout = device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label: "directional shadow pass bindings",
		Entries: []gpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gpu.ShaderStageVertex, Type: gpu.BindingTypeUniformBuffer},
		},
	})
	c.bindGroup = device.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:  "directional shadow pass bindings",
		Layout: c.layout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, Resource: gpu.BindingResource{Buffer: c.uniformBuffer}},
		},
	})
	return c
}

func (c *DirectionalShadowPassContext) BindGroupLayout() gpu.BindGroupLayout { return c.layout }

func (c *DirectionalShadowPassContext) Prepare(instruction *RenderInstruction) {
	c.uniforms.reset()
	c.uniforms.mat4(instruction.DirectionalShadow.ViewProjection)
}

func (c *DirectionalShadowPassContext) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	belt.Write(encoder, c.uniformBuffer, 0, c.uniforms.bytes())
}

func (c *DirectionalShadowPassContext) CreatePass(encoder *gpu.CommandEncoder, global *GlobalContext) *gpu.RenderPassEncoder {
	pass := encoder.BeginRenderPass(&gpu.RenderPassDescriptor{
		Label: "directional shadow",
		DepthStencil: &gpu.RenderPassDepthStencilAttachment{
			View:         global.directionalShadowView,
			DepthLoadOp:  gpu.LoadOpClear,
			DepthStoreOp: gpu.StoreOpStore,
			ClearDepth:   1.0,
		},
	})
	pass.SetBindGroup(0, global.bindGroup)
	pass.SetBindGroup(1, c.bindGroup)
	return pass
}

// pointShadowFaceCount is the number of cube faces per shadow caster.
const pointShadowFaceCount = 6

// PointShadowPassContext renders one depth sub-pass per caster cube
// face. A single uniform buffer holds every face view-projection; each
// (caster, face) slot gets its own bind group viewing a 64-byte slice
// of that buffer.
type PointShadowPassContext struct {
	uniformBuffer gpu.Buffer
	layout        gpu.BindGroupLayout
	faceGroups    [NumberOfPointLightsWithShadows][pointShadowFaceCount]gpu.BindGroup
	uniforms      packer
}

func newPointShadowPassContext(device gpu.Device) *PointShadowPassContext {
	c := &PointShadowPassContext{}
	c.uniformBuffer = device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "point shadow uniforms",
		Size:  NumberOfPointLightsWithShadows * pointShadowFaceCount * 64,
		Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	c.layout = device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label: "point shadow pass bindings",
		Entries: []gpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gpu.ShaderStageVertex, Type: gpu.BindingTypeUniformBuffer},
		},
	})
	for caster := 0; caster < NumberOfPointLightsWithShadows; caster++ {
		for face := 0; face < pointShadowFaceCount; face++ {
			offset := uint64(caster*pointShadowFaceCount+face) * 64
			c.faceGroups[caster][face] = device.CreateBindGroup(&gpu.BindGroupDescriptor{
				Label:  "point shadow face bindings",
				Layout: c.layout,
				Entries: []gpu.BindGroupEntry{
					{Binding: 0, Resource: gpu.BindingResource{
						Buffer:       c.uniformBuffer,
						BufferOffset: offset,
						BufferSize:   64,
					}},
				},
			})
		}
	}
	return c
}

func (c *PointShadowPassContext) BindGroupLayout() gpu.BindGroupLayout { return c.layout }

// Prepare packs every caster's six face matrices in slot order. Unused
// caster slots keep whatever the buffer held; no sub-pass reads them.
func (c *PointShadowPassContext) Prepare(instruction *RenderInstruction) {
	c.uniforms.reset()
	for _, caster := range instruction.PointShadowCasters {
		for face := 0; face < pointShadowFaceCount; face++ {
			c.uniforms.mat4(caster.ViewProjections[face])
		}
	}
}

func (c *PointShadowPassContext) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	if len(c.uniforms.bytes()) == 0 {
		return
	}
	belt.Write(encoder, c.uniformBuffer, 0, c.uniforms.bytes())
}

// CreateFacePass begins the depth sub-pass for one caster cube face.
func (c *PointShadowPassContext) CreateFacePass(encoder *gpu.CommandEncoder, global *GlobalContext, caster, face int) *gpu.RenderPassEncoder {
	pass := encoder.BeginRenderPass(&gpu.RenderPassDescriptor{
		Label: "point shadow face",
		DepthStencil: &gpu.RenderPassDepthStencilAttachment{
			View:         global.pointShadowFaceViews[caster][face],
			DepthLoadOp:  gpu.LoadOpClear,
			DepthStoreOp: gpu.StoreOpStore,
			ClearDepth:   1.0,
		},
	})
	pass.SetBindGroup(0, global.bindGroup)
	pass.SetBindGroup(1, c.faceGroups[caster][face])
	return pass
}

// GeometryPassContext renders the world geometry into the frame color
// target and the forward depth buffer.
type GeometryPassContext struct {
	layout    gpu.BindGroupLayout
	bindGroup gpu.BindGroup
}

func newGeometryPassContext(device gpu.Device) *GeometryPassContext {
	layout, group := newEmptyPassBindings(device, "geometry pass bindings")
	return &GeometryPassContext{layout: layout, bindGroup: group}
}

func (c *GeometryPassContext) BindGroupLayout() gpu.BindGroupLayout { return c.layout }

func (c *GeometryPassContext) CreatePass(encoder *gpu.CommandEncoder, global *GlobalContext, frameView gpu.TextureView, clearColor gpu.ClearColor) *gpu.RenderPassEncoder {
	pass := encoder.BeginRenderPass(&gpu.RenderPassDescriptor{
		Label: "geometry",
		ColorAttachments: []gpu.RenderPassColorAttachment{{
			View:       frameView,
			LoadOp:     gpu.LoadOpClear,
			StoreOp:    gpu.StoreOpStore,
			ClearValue: clearColor,
		}},
		DepthStencil: &gpu.RenderPassDepthStencilAttachment{
			View:         global.forwardDepthView,
			DepthLoadOp:  gpu.LoadOpClear,
			DepthStoreOp: gpu.StoreOpStore,
			ClearDepth:   1.0,
		},
	})
	pass.SetBindGroup(0, global.bindGroup)
	pass.SetBindGroup(1, c.bindGroup)
	return pass
}

// ScreenPassContext composites lighting, screen rectangles, effects and
// the interface buffer over the geometry output. Its set-1 binds the
// forward depth and interface textures, both screen-size resources, so
// the bind group is rebuilt lazily after a resize.
type ScreenPassContext struct {
	device        gpu.Device
	layout        gpu.BindGroupLayout
	bindGroup     gpu.BindGroup
	screenVersion uint64
}

func newScreenPassContext(device gpu.Device, global *GlobalContext) *ScreenPassContext {
	c := &ScreenPassContext{device: device}
	c.layout = device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label: "screen pass bindings",
		Entries: []gpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gpu.ShaderStageFragment, Type: gpu.BindingTypeDepthTexture},
			{Binding: 1, Visibility: gpu.ShaderStageFragment, Type: gpu.BindingTypeTexture2D},
		},
	})
	c.rebuild(global)
	return c
}

func (c *ScreenPassContext) BindGroupLayout() gpu.BindGroupLayout { return c.layout }

func (c *ScreenPassContext) rebuild(global *GlobalContext) {
	c.bindGroup = c.device.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:  "screen pass bindings",
		Layout: c.layout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, Resource: gpu.BindingResource{TextureView: global.forwardDepthView}},
			{Binding: 1, Resource: gpu.BindingResource{TextureView: global.interfaceView}},
		},
	})
	c.screenVersion = global.ScreenVersion()
}

// BindGroup returns the set-1 group, rebuilding it first if the screen
// targets were swapped since the last frame.
func (c *ScreenPassContext) BindGroup(global *GlobalContext) gpu.BindGroup {
	if c.screenVersion != global.ScreenVersion() {
		c.rebuild(global)
	}
	return c.bindGroup
}

func (c *ScreenPassContext) CreatePass(encoder *gpu.CommandEncoder, global *GlobalContext, frameView gpu.TextureView) *gpu.RenderPassEncoder {
	pass := encoder.BeginRenderPass(&gpu.RenderPassDescriptor{
		Label: "screen",
		ColorAttachments: []gpu.RenderPassColorAttachment{{
			View:    frameView,
			LoadOp:  gpu.LoadOpLoad,
			StoreOp: gpu.StoreOpStore,
		}},
	})
	pass.SetBindGroup(0, global.bindGroup)
	pass.SetBindGroup(1, c.BindGroup(global))
	return pass
}
