package graphics

import (
	"github.com/gogpu/korin/gpu"
)

// Point shadow drawers render depth into one cube face per sub-pass.
// All casters share one instance buffer; each caster's geometry is a
// contiguous range drawn six times with a different face matrix bound
// by the pass context.

// PointShadowModelDrawer renders static model geometry into the point
// shadow cube faces.
type PointShadowModelDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	ranges    []pointShadowModelRange
}

type pointShadowModelRange struct {
	base   uint32
	models []ModelInstruction
}

func newPointShadowModelDrawer(device gpu.Device, global *GlobalContext, pass *PointShadowPassContext) (*PointShadowModelDrawer, error) {
	d := &PointShadowModelDrawer{
		instances: newInstanceBuffer(device, "point shadow model instances", 256*64),
	}
	shader, err := createShader(device, "point shadow model", shadowObjectShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "point shadow model",
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

func (d *PointShadowModelDrawer) Name() string { return "point shadow model" }

func (d *PointShadowModelDrawer) Prepare(instruction *RenderInstruction) {
	d.instances.instances.reset()
	d.ranges = d.ranges[:0]
	base := uint32(0)
	for c := range instruction.PointShadowCasters {
		caster := &instruction.PointShadowCasters[c]
		for i := range caster.Models {
			d.instances.instances.mat4(caster.Models[i].Transform)
		}
		d.ranges = append(d.ranges, pointShadowModelRange{base: base, models: caster.Models})
		base += uint32(len(caster.Models))
	}
}

func (d *PointShadowModelDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *PointShadowModelDrawer) Destroy() {
	d.instances.destroy()
}

// DrawFace records one caster's model draws; the face selection lives
// entirely in the pass bind group.
func (d *PointShadowModelDrawer) DrawFace(pass *gpu.RenderPassEncoder, instruction *RenderInstruction, caster int) {
	r := d.ranges[caster]
	if len(r.models) == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	for i := range r.models {
		model := &r.models[i]
		pass.Draw(model.VertexCount, 1, model.VertexOffset, r.base+uint32(i))
	}
}

// PointShadowEntityDrawer renders entity sprites into the point shadow
// cube faces.
type PointShadowEntityDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	bases     []uint32
	counts    []uint32
}

func newPointShadowEntityDrawer(device gpu.Device, global *GlobalContext, pass *PointShadowPassContext) (*PointShadowEntityDrawer, error) {
	d := &PointShadowEntityDrawer{
		instances: newInstanceBuffer(device, "point shadow entity instances", 64*64),
	}
	shader, err := createShader(device, "point shadow entity", shadowObjectShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "point shadow entity",
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

func (d *PointShadowEntityDrawer) Name() string { return "point shadow entity" }

func (d *PointShadowEntityDrawer) Prepare(instruction *RenderInstruction) {
	d.instances.instances.reset()
	d.bases = d.bases[:0]
	d.counts = d.counts[:0]
	base := uint32(0)
	for c := range instruction.PointShadowCasters {
		caster := &instruction.PointShadowCasters[c]
		for i := range caster.Entities {
			d.instances.instances.mat4(caster.Entities[i].Transform)
		}
		d.bases = append(d.bases, base)
		d.counts = append(d.counts, uint32(len(caster.Entities)))
		base += uint32(len(caster.Entities))
	}
}

func (d *PointShadowEntityDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *PointShadowEntityDrawer) Destroy() {
	d.instances.destroy()
}

func (d *PointShadowEntityDrawer) DrawFace(pass *gpu.RenderPassEncoder, instruction *RenderInstruction, caster int) {
	if d.counts[caster] == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	pass.Draw(6, d.counts[caster], 0, d.bases[caster])
}
