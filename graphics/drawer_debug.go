package graphics

import (
	"github.com/gogpu/korin/gpu"
)

// Debug overlay drawers for the screen pass. All of them are gated by
// their render setting and contribute nothing when disabled.

// ScreenAabbDrawer renders wireframe bounding boxes.
type ScreenAabbDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	count     uint32
	enabled   bool
}

func newScreenAabbDrawer(device gpu.Device, global *GlobalContext, pass *ScreenPassContext, format gpu.TextureFormat) (*ScreenAabbDrawer, error) {
	d := &ScreenAabbDrawer{
		instances: newInstanceBuffer(device, "debug aabb instances", 32*80),
	}
	shader, err := createShader(device, "screen aabb", debugLineShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "screen aabb",
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), d.instances.layout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
		FragmentShader:   shader,
		FragmentEntry:    "fs_main",
		ColorTargets:     []gpu.ColorTargetState{{Format: format, Blend: gpu.BlendModeAlpha}},
		Topology:         gpu.PrimitiveTopologyLineList,
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *ScreenAabbDrawer) Name() string { return "screen aabb" }

func (d *ScreenAabbDrawer) Prepare(instruction *RenderInstruction) {
	d.enabled = instruction.Settings.ShowBoundingBoxes
	p := &d.instances.instances
	p.reset()
	d.count = 0
	if !d.enabled {
		return
	}
	for i := range instruction.DebugAabbs {
		aabb := &instruction.DebugAabbs[i]
		p.mat4(aabb.Transform)
		p.color(aabb.Color)
	}
	d.count = uint32(len(instruction.DebugAabbs))
}

func (d *ScreenAabbDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *ScreenAabbDrawer) Destroy() {
	d.instances.destroy()
}

func (d *ScreenAabbDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if !d.enabled || d.count == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	// 12 cube edges, 2 vertices each.
	pass.Draw(24, d.count, 0, 0)
}

// ScreenCircleDrawer renders screen-space debug circles.
type ScreenCircleDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	count     uint32
	enabled   bool
}

func newScreenCircleDrawer(device gpu.Device, global *GlobalContext, pass *ScreenPassContext, format gpu.TextureFormat) (*ScreenCircleDrawer, error) {
	d := &ScreenCircleDrawer{
		instances: newInstanceBuffer(device, "debug circle instances", 32*32),
	}
	pipeline, err := newScreenPipeline(device, "screen circle", debugCircleShader, global, pass, d.instances.layout, format, gpu.BlendModeAlpha)
	if err != nil {
		return nil, err
	}
	d.pipeline = pipeline
	return d, nil
}

func (d *ScreenCircleDrawer) Name() string { return "screen circle" }

func (d *ScreenCircleDrawer) Prepare(instruction *RenderInstruction) {
	d.enabled = instruction.Settings.ShowDebugCircles
	p := &d.instances.instances
	p.reset()
	d.count = 0
	if !d.enabled {
		return
	}
	for i := range instruction.DebugCircles {
		circle := &instruction.DebugCircles[i]
		p.f32(circle.ScreenPosition.X)
		p.f32(circle.ScreenPosition.Y)
		p.f32(circle.ScreenSize.Width)
		p.f32(circle.ScreenSize.Height)
		p.color(circle.Color)
	}
	d.count = uint32(len(instruction.DebugCircles))
}

func (d *ScreenCircleDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *ScreenCircleDrawer) Destroy() {
	d.instances.destroy()
}

func (d *ScreenCircleDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if !d.enabled || d.count == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	pass.Draw(6, d.count, 0, 0)
}

// ScreenBufferDrawer blits an intermediate render target over the frame
// for inspection.
type ScreenBufferDrawer struct {
	pipeline gpu.RenderPipeline
	empty    gpu.BindGroup
}

func newScreenBufferDrawer(device gpu.Device, global *GlobalContext, pass *ScreenPassContext, format gpu.TextureFormat) (*ScreenBufferDrawer, error) {
	layout, group := newEmptyPassBindings(device, "buffer overlay bindings")
	pipeline, err := newScreenPipeline(device, "screen buffer overlay", bufferOverlayShader, global, pass, layout, format, gpu.BlendModeReplace)
	if err != nil {
		return nil, err
	}
	return &ScreenBufferDrawer{pipeline: pipeline, empty: group}, nil
}

func (d *ScreenBufferDrawer) Name() string { return "screen buffer overlay" }

func (d *ScreenBufferDrawer) Prepare(instruction *RenderInstruction) {}

func (d *ScreenBufferDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {}

func (d *ScreenBufferDrawer) Destroy() {}

func (d *ScreenBufferDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if !instruction.Settings.ShowBufferOverlay {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.empty)
	pass.Draw(3, 1, 0, 0)
}
