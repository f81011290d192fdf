package graphics

import (
	"github.com/gogpu/korin/gpu"
)

// packRectangle serializes one rectangle into the shared instance
// layout used by the interface and screen rectangle pipelines.
func packRectangle(p *packer, r *RectangleInstruction) {
	p.f32(r.Position.X)
	p.f32(r.Position.Y)
	p.f32(r.Size.Width)
	p.f32(r.Size.Height)
	p.f32(r.Clip.Min.X)
	p.f32(r.Clip.Min.Y)
	p.f32(r.Clip.Max.X)
	p.f32(r.Clip.Max.Y)
	p.color(r.Color)
	p.f32(r.TexturePosition.X)
	p.f32(r.TexturePosition.Y)
	p.f32(r.TextureSize.Width)
	p.f32(r.TextureSize.Height)
}

// InterfaceRectangleDrawer renders the user interface rectangles into
// the interface buffer. Text glyphs, sprites and plain fills all arrive
// as rectangles; the drawer batches them into one instanced draw.
type InterfaceRectangleDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	count     uint32
}

func newInterfaceRectangleDrawer(device gpu.Device, global *GlobalContext, pass *InterfacePassContext) (*InterfaceRectangleDrawer, error) {
	d := &InterfaceRectangleDrawer{
		instances: newInstanceBuffer(device, "interface rectangle instances", 256*64),
	}
	shader, err := createShader(device, "interface rectangle", rectangleShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "interface rectangle",
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), d.instances.layout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
		FragmentShader:   shader,
		FragmentEntry:    "fs_main",
		ColorTargets: []gpu.ColorTargetState{
			{Format: gpu.TextureFormatRGBA8Unorm, Blend: gpu.BlendModeAlpha},
		},
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *InterfaceRectangleDrawer) Name() string { return "interface rectangle" }

func (d *InterfaceRectangleDrawer) Prepare(instruction *RenderInstruction) {
	d.instances.instances.reset()
	for i := range instruction.InterfaceRectangles {
		packRectangle(&d.instances.instances, &instruction.InterfaceRectangles[i])
	}
	d.count = uint32(len(instruction.InterfaceRectangles))
}

func (d *InterfaceRectangleDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *InterfaceRectangleDrawer) Destroy() {
	d.instances.destroy()
}

func (d *InterfaceRectangleDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if d.count == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	pass.Draw(6, d.count, 0, 0)
}
