package graphics

import (
	"github.com/gogpu/korin"
	"github.com/gogpu/korin/gpu"
	"github.com/gogpu/korin/linear"
)

// GeometryModelDrawer renders static world models into the forward
// color and depth targets.
type GeometryModelDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	models    []ModelInstruction
}

func newGeometryModelDrawer(device gpu.Device, global *GlobalContext, pass *GeometryPassContext, format gpu.TextureFormat) (*GeometryModelDrawer, error) {
	d := &GeometryModelDrawer{
		instances: newInstanceBuffer(device, "geometry model instances", 256*96),
	}
	shader, err := createShader(device, "geometry model", geometryObjectShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "geometry model",
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), d.instances.layout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
		FragmentShader:   shader,
		FragmentEntry:    "fs_main",
		ColorTargets:     []gpu.ColorTargetState{{Format: format}},
		DepthStencil: &gpu.DepthStencilState{
			Format:            gpu.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			Compare:           gpu.CompareFunctionLess,
		},
		CullMode: gpu.CullModeBack,
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *GeometryModelDrawer) Name() string { return "geometry model" }

func (d *GeometryModelDrawer) Prepare(instruction *RenderInstruction) {
	d.models = instruction.Models
	p := &d.instances.instances
	p.reset()
	for i := range d.models {
		p.mat4(d.models[i].Transform)
		p.color(korin.ColorWhite)
		p.vec4(linear.Vec4{})
	}
}

func (d *GeometryModelDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *GeometryModelDrawer) Destroy() {
	d.instances.destroy()
}

func (d *GeometryModelDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if len(d.models) == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	for i := range d.models {
		model := &d.models[i]
		pass.Draw(model.VertexCount, 1, model.VertexOffset, uint32(i))
	}
}

// GeometryEntityDrawer renders billboarded entity sprites in one
// instanced draw.
type GeometryEntityDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	count     uint32
}

func newGeometryEntityDrawer(device gpu.Device, global *GlobalContext, pass *GeometryPassContext, format gpu.TextureFormat) (*GeometryEntityDrawer, error) {
	d := &GeometryEntityDrawer{
		instances: newInstanceBuffer(device, "geometry entity instances", 64*96),
	}
	shader, err := createShader(device, "geometry entity", geometryObjectShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "geometry entity",
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), d.instances.layout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
		FragmentShader:   shader,
		FragmentEntry:    "fs_main",
		ColorTargets:     []gpu.ColorTargetState{{Format: format, Blend: gpu.BlendModeAlpha}},
		DepthStencil: &gpu.DepthStencilState{
			Format:            gpu.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			Compare:           gpu.CompareFunctionLess,
		},
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *GeometryEntityDrawer) Name() string { return "geometry entity" }

func (d *GeometryEntityDrawer) Prepare(instruction *RenderInstruction) {
	p := &d.instances.instances
	p.reset()
	for i := range instruction.Entities {
		entity := &instruction.Entities[i]
		p.mat4(entity.Transform)
		p.color(entity.Color)
		p.vec2(entity.FrameSize)
		p.vec2(entity.FramePart)
	}
	d.count = uint32(len(instruction.Entities))
}

func (d *GeometryEntityDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *GeometryEntityDrawer) Destroy() {
	d.instances.destroy()
}

func (d *GeometryEntityDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if d.count == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	pass.Draw(6, d.count, 0, 0)
}

// GeometryWaterDrawer renders the animated water plane.
type GeometryWaterDrawer struct {
	pipeline gpu.RenderPipeline
	uniform  *uniformSlot
	present  bool
}

func newGeometryWaterDrawer(device gpu.Device, global *GlobalContext, pass *GeometryPassContext, format gpu.TextureFormat) (*GeometryWaterDrawer, error) {
	d := &GeometryWaterDrawer{
		uniform: newUniformSlot(device, "water uniforms", 32),
	}
	shader, err := createShader(device, "geometry water", waterShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "geometry water",
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), d.uniform.layout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
		FragmentShader:   shader,
		FragmentEntry:    "fs_main",
		ColorTargets:     []gpu.ColorTargetState{{Format: format, Blend: gpu.BlendModeAlpha}},
		DepthStencil: &gpu.DepthStencilState{
			Format:            gpu.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			Compare:           gpu.CompareFunctionLess,
		},
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *GeometryWaterDrawer) Name() string { return "geometry water" }

func (d *GeometryWaterDrawer) Prepare(instruction *RenderInstruction) {
	water := instruction.Water
	d.present = water != nil
	u := &d.uniform.uniforms
	u.reset()
	if !d.present {
		return
	}
	u.color(water.Color)
	u.f32(water.WaterLevel)
	u.f32(water.WaveAmplitude)
	u.f32(water.WaveSpeed)
	u.f32(0)
}

func (d *GeometryWaterDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.uniform.upload(belt, encoder)
}

func (d *GeometryWaterDrawer) Destroy() {
	d.uniform.destroy()
}

func (d *GeometryWaterDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if !d.present {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.uniform.bindGroup)
	pass.Draw(6, 1, 0, 0)
}

// GeometryIndicatorDrawer renders the tile cursor indicator quad.
type GeometryIndicatorDrawer struct {
	pipeline gpu.RenderPipeline
	uniform  *uniformSlot
	present  bool
}

func newGeometryIndicatorDrawer(device gpu.Device, global *GlobalContext, pass *GeometryPassContext, format gpu.TextureFormat) (*GeometryIndicatorDrawer, error) {
	d := &GeometryIndicatorDrawer{
		uniform: newUniformSlot(device, "indicator uniforms", 80),
	}
	shader, err := createShader(device, "geometry indicator", indicatorShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "geometry indicator",
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), d.uniform.layout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
		FragmentShader:   shader,
		FragmentEntry:    "fs_main",
		ColorTargets:     []gpu.ColorTargetState{{Format: format, Blend: gpu.BlendModeAlpha}},
		DepthStencil: &gpu.DepthStencilState{
			Format:            gpu.TextureFormatDepth32Float,
			DepthWriteEnabled: false,
			Compare:           gpu.CompareFunctionLessEqual,
		},
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *GeometryIndicatorDrawer) Name() string { return "geometry indicator" }

func (d *GeometryIndicatorDrawer) Prepare(instruction *RenderInstruction) {
	indicator := instruction.Indicator
	d.present = indicator != nil && instruction.Settings.ShowIndicator
	u := &d.uniform.uniforms
	u.reset()
	if !d.present {
		return
	}
	u.vec4(indicator.UpperLeft.Vec4(1))
	u.vec4(indicator.UpperRight.Vec4(1))
	u.vec4(indicator.LowerLeft.Vec4(1))
	u.vec4(indicator.LowerRight.Vec4(1))
	u.color(indicator.Color)
}

func (d *GeometryIndicatorDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.uniform.upload(belt, encoder)
}

func (d *GeometryIndicatorDrawer) Destroy() {
	d.uniform.destroy()
}

func (d *GeometryIndicatorDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if !d.present {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.uniform.bindGroup)
	pass.Draw(6, 1, 0, 0)
}
