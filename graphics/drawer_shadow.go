package graphics

import (
	"github.com/gogpu/korin/gpu"
)

// Directional shadow drawers render depth-only geometry from the sun's
// point of view. They share the shadow object shader; the pass context
// supplies the light view-projection at set 1.

// DirectionalShadowModelDrawer renders static model geometry into the
// directional shadow map.
type DirectionalShadowModelDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	models    []ModelInstruction
}

func newDirectionalShadowModelDrawer(device gpu.Device, global *GlobalContext, pass *DirectionalShadowPassContext) (*DirectionalShadowModelDrawer, error) {
	d := &DirectionalShadowModelDrawer{
		instances: newInstanceBuffer(device, "directional shadow model instances", 256*64),
	}
	shader, err := createShader(device, "directional shadow model", shadowObjectShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "directional shadow model",
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), d.instances.layout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
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

func (d *DirectionalShadowModelDrawer) Name() string { return "directional shadow model" }

func (d *DirectionalShadowModelDrawer) Prepare(instruction *RenderInstruction) {
	d.models = instruction.DirectionalShadow.Models
	d.instances.instances.reset()
	for i := range d.models {
		d.instances.instances.mat4(d.models[i].Transform)
	}
}

func (d *DirectionalShadowModelDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *DirectionalShadowModelDrawer) Destroy() {
	d.instances.destroy()
}

func (d *DirectionalShadowModelDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
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

// DirectionalShadowEntityDrawer renders entity sprites into the
// directional shadow map in one instanced draw.
type DirectionalShadowEntityDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	count     uint32
}

func newDirectionalShadowEntityDrawer(device gpu.Device, global *GlobalContext, pass *DirectionalShadowPassContext) (*DirectionalShadowEntityDrawer, error) {
	d := &DirectionalShadowEntityDrawer{
		instances: newInstanceBuffer(device, "directional shadow entity instances", 64*64),
	}
	shader, err := createShader(device, "directional shadow entity", shadowObjectShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "directional shadow entity",
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), d.instances.layout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
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

func (d *DirectionalShadowEntityDrawer) Name() string { return "directional shadow entity" }

func (d *DirectionalShadowEntityDrawer) Prepare(instruction *RenderInstruction) {
	entities := instruction.DirectionalShadow.Entities
	d.instances.instances.reset()
	for i := range entities {
		d.instances.instances.mat4(entities[i].Transform)
	}
	d.count = uint32(len(entities))
}

func (d *DirectionalShadowEntityDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *DirectionalShadowEntityDrawer) Destroy() {
	d.instances.destroy()
}

func (d *DirectionalShadowEntityDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if d.count == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	pass.Draw(6, d.count, 0, 0)
}

// DirectionalShadowIndicatorDrawer renders the tile cursor indicator
// into the shadow map, so the highlight shows up in shaded areas too.
type DirectionalShadowIndicatorDrawer struct {
	pipeline gpu.RenderPipeline
	uniform  *uniformSlot
	present  bool
}

func newDirectionalShadowIndicatorDrawer(device gpu.Device, global *GlobalContext, pass *DirectionalShadowPassContext) (*DirectionalShadowIndicatorDrawer, error) {
	d := &DirectionalShadowIndicatorDrawer{
		uniform: newUniformSlot(device, "directional shadow indicator", 80),
	}
	shader, err := createShader(device, "directional shadow indicator", shadowIndicatorShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "directional shadow indicator",
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), d.uniform.layout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
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

func (d *DirectionalShadowIndicatorDrawer) Name() string { return "directional shadow indicator" }

func (d *DirectionalShadowIndicatorDrawer) Prepare(instruction *RenderInstruction) {
	indicator := instruction.Indicator
	d.present = indicator != nil && instruction.Settings.ShowIndicator
	if !d.present {
		d.uniform.uniforms.reset()
		return
	}
	u := &d.uniform.uniforms
	u.reset()
	u.vec4(indicator.UpperLeft.Vec4(1))
	u.vec4(indicator.UpperRight.Vec4(1))
	u.vec4(indicator.LowerLeft.Vec4(1))
	u.vec4(indicator.LowerRight.Vec4(1))
	u.color(indicator.Color)
}

func (d *DirectionalShadowIndicatorDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.uniform.upload(belt, encoder)
}

func (d *DirectionalShadowIndicatorDrawer) Destroy() {
	d.uniform.destroy()
}

func (d *DirectionalShadowIndicatorDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if !d.present {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.uniform.bindGroup)
	pass.Draw(6, 1, 0, 0)
}
