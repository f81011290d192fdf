package graphics

import (
	"github.com/gogpu/korin/gpu"
)

// PickerEntityDrawer renders entity identifiers into the picker target.
// Entities flagged as not pickable are skipped during prepare.
type PickerEntityDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	count     uint32
}

func newPickerEntityDrawer(device gpu.Device, global *GlobalContext, pass *PickerPassContext) (*PickerEntityDrawer, error) {
	d := &PickerEntityDrawer{
		instances: newInstanceBuffer(device, "picker entity instances", 64*80),
	}
	shader, err := createShader(device, "picker entity", pickerObjectShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "picker entity",
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), d.instances.layout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
		FragmentShader:   shader,
		FragmentEntry:    "fs_main",
		ColorTargets:     []gpu.ColorTargetState{{Format: gpu.TextureFormatRG32Uint}},
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

func (d *PickerEntityDrawer) Name() string { return "picker entity" }

func (d *PickerEntityDrawer) Prepare(instruction *RenderInstruction) {
	p := &d.instances.instances
	p.reset()
	count := uint32(0)
	for i := range instruction.Entities {
		entity := &instruction.Entities[i]
		if !entity.AddToPicker {
			continue
		}
		p.mat4(entity.Transform)
		p.u32(uint32(entity.EntityID))
		p.u32(uint32(entity.EntityID >> 32))
		p.u32(0)
		p.u32(0)
		count++
	}
	d.count = count
}

func (d *PickerEntityDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *PickerEntityDrawer) Destroy() {
	d.instances.destroy()
}

func (d *PickerEntityDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if d.count == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	pass.Draw(6, d.count, 0, 0)
}

// PickerTileDrawer renders the map tile grid from the map-owned vertex
// buffer, so clicks on open ground resolve to walkable tiles.
type PickerTileDrawer struct {
	pipeline gpu.RenderPipeline
	empty    gpu.BindGroup
}

func newPickerTileDrawer(device gpu.Device, global *GlobalContext, pass *PickerPassContext) (*PickerTileDrawer, error) {
	shader, err := createShader(device, "picker tile", pickerTileShader)
	if err != nil {
		return nil, err
	}
	layout, group := newEmptyPassBindings(device, "picker tile bindings")
	pipeline, err := device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "picker tile",
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), layout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
		FragmentShader:   shader,
		FragmentEntry:    "fs_main",
		VertexBuffers: []gpu.VertexBufferLayout{{
			ArrayStride: 20,
			Attributes: []gpu.VertexAttribute{
				{Format: gpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: gpu.VertexFormatUint32x2, Offset: 12, ShaderLocation: 1},
			},
		}},
		ColorTargets: []gpu.ColorTargetState{{Format: gpu.TextureFormatRG32Uint}},
		DepthStencil: &gpu.DepthStencilState{
			Format:            gpu.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			Compare:           gpu.CompareFunctionLess,
		},
	})
	if err != nil {
		return nil, err
	}
	return &PickerTileDrawer{pipeline: pipeline, empty: group}, nil
}

func (d *PickerTileDrawer) Name() string { return "picker tile" }

// Prepare is a no-op: the tile geometry lives in the map's own buffer.
func (d *PickerTileDrawer) Prepare(instruction *RenderInstruction) {}

func (d *PickerTileDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {}

func (d *PickerTileDrawer) Destroy() {}

func (d *PickerTileDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	tiles := instruction.MapPicker
	if tiles == nil || tiles.VertexCount == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.empty)
	pass.SetVertexBuffer(0, tiles.VertexBuffer, 0)
	pass.Draw(tiles.VertexCount, 1, 0, 0)
}

// PickerMarkerDrawer renders clickable debug markers for light, sound
// and effect sources. Only active when the marker overlay is enabled.
type PickerMarkerDrawer struct {
	pipeline  gpu.RenderPipeline
	instances *instanceBuffer
	count     uint32
}

func newPickerMarkerDrawer(device gpu.Device, global *GlobalContext, pass *PickerPassContext) (*PickerMarkerDrawer, error) {
	d := &PickerMarkerDrawer{
		instances: newInstanceBuffer(device, "picker marker instances", 32*32),
	}
	shader, err := createShader(device, "picker marker", pickerMarkerShader)
	if err != nil {
		return nil, err
	}
	d.pipeline, err = device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:            "picker marker",
		BindGroupLayouts: []gpu.BindGroupLayout{global.BindGroupLayout(), pass.BindGroupLayout(), d.instances.layout},
		VertexShader:     shader,
		VertexEntryPoint: "vs_main",
		FragmentShader:   shader,
		FragmentEntry:    "fs_main",
		ColorTargets:     []gpu.ColorTargetState{{Format: gpu.TextureFormatRG32Uint}},
		DepthStencil: &gpu.DepthStencilState{
			Format:  gpu.TextureFormatDepth32Float,
			Compare: gpu.CompareFunctionAlways,
		},
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *PickerMarkerDrawer) Name() string { return "picker marker" }

func (d *PickerMarkerDrawer) Prepare(instruction *RenderInstruction) {
	p := &d.instances.instances
	p.reset()
	d.count = 0
	if !instruction.Settings.ShowPickerMarker {
		return
	}
	for i := range instruction.Markers {
		marker := &instruction.Markers[i]
		p.f32(marker.Position.X)
		p.f32(marker.Position.Y)
		p.f32(marker.Size.Width)
		p.f32(marker.Size.Height)
		p.u32(uint32(marker.Identifier))
		p.u32(uint32(marker.Identifier >> 32))
		p.u32(0)
		p.u32(0)
	}
	d.count = uint32(len(instruction.Markers))
}

func (d *PickerMarkerDrawer) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	d.instances.upload(belt, encoder)
}

func (d *PickerMarkerDrawer) Destroy() {
	d.instances.destroy()
}

func (d *PickerMarkerDrawer) Draw(pass *gpu.RenderPassEncoder, instruction *RenderInstruction) {
	if d.count == 0 {
		return
	}
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(drawerBindGroupIndex, d.instances.bindGroup)
	pass.Draw(6, d.count, 0, 0)
}
