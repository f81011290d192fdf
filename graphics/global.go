package graphics

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/gogpu/korin"
	"github.com/gogpu/korin/gpu"
)

// globalUniformBufferSize covers the packed GlobalUniforms block.
const globalUniformBufferSize = 512

// GlobalContext owns the cross-pass GPU resources: the shared uniform
// buffer, the samplers, the shadow maps, the screen-size render targets
// and the picker read-back buffer.
//
// Size-dependent sub-resources are mutated in place: a resize replaces
// only the screen-size textures, a shadow-detail change replaces only
// the shadow maps. Pass contexts observe these swaps through the
// version counters and rebuild their bind groups lazily.
type GlobalContext struct {
	device gpu.Device

	uniformBuffer gpu.Buffer

	nearestSampler gpu.Sampler
	linearSampler  gpu.Sampler
	shadowSampler  gpu.Sampler
	textureSampler gpu.Sampler
	samplerType    TextureSamplerType

	// Shadow resources, sized by ShadowDetail.
	shadowDetail             ShadowDetail
	directionalShadowTexture gpu.Texture
	directionalShadowView    gpu.TextureView
	pointShadowTexture       gpu.Texture
	pointShadowFaceViews     [NumberOfPointLightsWithShadows][6]gpu.TextureView
	pointShadowCubeView      gpu.TextureView

	// Screen-size resources.
	screenWidth      uint32
	screenHeight     uint32
	forwardDepth     gpu.Texture
	forwardDepthView gpu.TextureView
	interfaceTexture gpu.Texture
	interfaceView    gpu.TextureView
	pickerTexture    gpu.Texture
	pickerView       gpu.TextureView
	pickerDepth      gpu.Texture
	pickerDepthView  gpu.TextureView

	// pickerValueBuffer receives the single-texel picker copy; its
	// content is mapped into the shared picker cell one frame later.
	pickerValueBuffer gpu.Buffer

	bindGroupLayout gpu.BindGroupLayout
	bindGroup       gpu.BindGroup

	// Version counters bumped on in-place resource swaps.
	screenVersion uint64
	shadowVersion uint64

	uniforms packer
}

// newGlobalContext creates the shared resources for the given screen
// size, shadow detail and sampler type.
func newGlobalContext(device gpu.Device, width, height uint32, detail ShadowDetail, samplerType TextureSamplerType) *GlobalContext {
	g := &GlobalContext{
		device:       device,
		shadowDetail: detail,
		samplerType:  samplerType,
		screenWidth:  width,
		screenHeight: height,
	}

	g.uniformBuffer = device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "global uniforms",
		Size:  globalUniformBufferSize,
		Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	g.pickerValueBuffer = device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "picker value",
		Size:  8,
		Usage: gpu.BufferUsageCopyDst | gpu.BufferUsageMapRead,
	})

	g.nearestSampler = device.CreateSampler(&gpu.SamplerDescriptor{
		Label:     "nearest sampler",
		MagFilter: gpu.FilterModeNearest,
		MinFilter: gpu.FilterModeNearest,
	})
	g.linearSampler = device.CreateSampler(&gpu.SamplerDescriptor{
		Label:     "linear sampler",
		MagFilter: gpu.FilterModeLinear,
		MinFilter: gpu.FilterModeLinear,
	})
	g.shadowSampler = device.CreateSampler(&gpu.SamplerDescriptor{
		Label:     "shadow sampler",
		MagFilter: gpu.FilterModeLinear,
		MinFilter: gpu.FilterModeLinear,
		Compare:   gpu.CompareFunctionLessEqual,
	})
	g.textureSampler = createTextureSampler(device, samplerType)

	g.createShadowTextures()
	g.createScreenTextures()

	g.bindGroupLayout = device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label: "global bindings",
		Entries: []gpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gpu.ShaderStageVertex | gpu.ShaderStageFragment, Type: gpu.BindingTypeUniformBuffer},
			{Binding: 1, Visibility: gpu.ShaderStageFragment, Type: gpu.BindingTypeSampler},
			{Binding: 2, Visibility: gpu.ShaderStageFragment, Type: gpu.BindingTypeSampler},
			{Binding: 3, Visibility: gpu.ShaderStageFragment, Type: gpu.BindingTypeSampler},
			{Binding: 4, Visibility: gpu.ShaderStageFragment, Type: gpu.BindingTypeComparisonSampler},
			{Binding: 5, Visibility: gpu.ShaderStageFragment, Type: gpu.BindingTypeDepthTexture},
			{Binding: 6, Visibility: gpu.ShaderStageFragment, Type: gpu.BindingTypeTextureCubeArray},
		},
	})
	g.rebuildBindGroup()

	return g
}

// createTextureSampler builds the configurable world-texture sampler.
func createTextureSampler(device gpu.Device, samplerType TextureSamplerType) gpu.Sampler {
	desc := &gpu.SamplerDescriptor{
		Label:       "texture sampler",
		AddressMode: gpu.AddressModeRepeat,
	}
	switch samplerType {
	case TextureSamplerNearest:
		desc.MagFilter = gpu.FilterModeNearest
		desc.MinFilter = gpu.FilterModeNearest
	default:
		desc.MagFilter = gpu.FilterModeLinear
		desc.MinFilter = gpu.FilterModeLinear
		desc.MipmapFilter = gpu.FilterModeLinear
		desc.AnisotropyMax = samplerType.anisotropy()
	}
	return device.CreateSampler(desc)
}

func (g *GlobalContext) createShadowTextures() {
	size := g.shadowDetail.DirectionalSize()
	g.directionalShadowTexture = g.device.CreateTexture(&gpu.TextureDescriptor{
		Label:  "directional shadow map",
		Size:   gpu.Extent3D{Width: size, Height: size, DepthOrArrayLayers: 1},
		Format: gpu.TextureFormatDepth32Float,
		Usage:  gpu.TextureUsageRenderAttachment | gpu.TextureUsageTextureBinding,
	})
	g.directionalShadowView = g.directionalShadowTexture.CreateView(nil)

	pointSize := g.shadowDetail.PointSize()
	g.pointShadowTexture = g.device.CreateTexture(&gpu.TextureDescriptor{
		Label:  "point shadow maps",
		Size:   gpu.Extent3D{Width: pointSize, Height: pointSize, DepthOrArrayLayers: NumberOfPointLightsWithShadows * 6},
		Format: gpu.TextureFormatDepth32Float,
		Usage:  gpu.TextureUsageRenderAttachment | gpu.TextureUsageTextureBinding,
	})
	for caster := 0; caster < NumberOfPointLightsWithShadows; caster++ {
		for face := 0; face < 6; face++ {
			g.pointShadowFaceViews[caster][face] = g.pointShadowTexture.CreateView(&gpu.TextureViewDescriptor{
				Label:           "point shadow face",
				BaseArrayLayer:  uint32(caster*6 + face),
				ArrayLayerCount: 1,
			})
		}
	}
	g.pointShadowCubeView = g.pointShadowTexture.CreateView(&gpu.TextureViewDescriptor{
		Label:     "point shadow cube array",
		Dimension: gpu.TextureViewDimensionCube,
	})
}

func (g *GlobalContext) createScreenTextures() {
	w, h := g.screenWidth, g.screenHeight

	g.forwardDepth = g.device.CreateTexture(&gpu.TextureDescriptor{
		Label:  "forward depth",
		Size:   gpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		Format: gpu.TextureFormatDepth32Float,
		Usage:  gpu.TextureUsageRenderAttachment | gpu.TextureUsageTextureBinding,
	})
	g.forwardDepthView = g.forwardDepth.CreateView(nil)

	g.interfaceTexture = g.device.CreateTexture(&gpu.TextureDescriptor{
		Label:  "interface buffer",
		Size:   gpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		Format: gpu.TextureFormatRGBA8Unorm,
		Usage:  gpu.TextureUsageRenderAttachment | gpu.TextureUsageTextureBinding,
	})
	g.interfaceView = g.interfaceTexture.CreateView(nil)

	g.pickerTexture = g.device.CreateTexture(&gpu.TextureDescriptor{
		Label:  "picker buffer",
		Size:   gpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		Format: gpu.TextureFormatRG32Uint,
		Usage:  gpu.TextureUsageRenderAttachment | gpu.TextureUsageTextureBinding | gpu.TextureUsageCopySrc,
	})
	g.pickerView = g.pickerTexture.CreateView(nil)

	g.pickerDepth = g.device.CreateTexture(&gpu.TextureDescriptor{
		Label:  "picker depth",
		Size:   gpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		Format: gpu.TextureFormatDepth32Float,
		Usage:  gpu.TextureUsageRenderAttachment,
	})
	g.pickerDepthView = g.pickerDepth.CreateView(nil)
}

func (g *GlobalContext) rebuildBindGroup() {
	g.bindGroup = g.device.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:  "global bindings",
		Layout: g.bindGroupLayout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, Resource: gpu.BindingResource{Buffer: g.uniformBuffer}},
			{Binding: 1, Resource: gpu.BindingResource{Sampler: g.nearestSampler}},
			{Binding: 2, Resource: gpu.BindingResource{Sampler: g.linearSampler}},
			{Binding: 3, Resource: gpu.BindingResource{Sampler: g.textureSampler}},
			{Binding: 4, Resource: gpu.BindingResource{Sampler: g.shadowSampler}},
			{Binding: 5, Resource: gpu.BindingResource{TextureView: g.directionalShadowView}},
			{Binding: 6, Resource: gpu.BindingResource{TextureView: g.pointShadowCubeView}},
		},
	})
}

// UpdateScreenSizeTextures replaces the screen-size targets in place.
// Shadow maps and samplers keep their identity.
func (g *GlobalContext) UpdateScreenSizeTextures(width, height uint32) {
	if width == g.screenWidth && height == g.screenHeight {
		return
	}
	g.forwardDepth.Destroy()
	g.interfaceTexture.Destroy()
	g.pickerTexture.Destroy()
	g.pickerDepth.Destroy()

	g.screenWidth = width
	g.screenHeight = height
	g.createScreenTextures()
	g.screenVersion++
}

// UpdateShadowSizeTextures replaces the shadow maps for a new detail
// level in place. Screen-size targets keep their identity.
func (g *GlobalContext) UpdateShadowSizeTextures(detail ShadowDetail) {
	if detail == g.shadowDetail {
		return
	}
	g.directionalShadowTexture.Destroy()
	g.pointShadowTexture.Destroy()

	g.shadowDetail = detail
	g.createShadowTextures()
	g.shadowVersion++
	g.rebuildBindGroup()
}

// UpdateTextureSampler swaps only the configurable texture sampler.
func (g *GlobalContext) UpdateTextureSampler(samplerType TextureSamplerType) {
	if samplerType == g.samplerType {
		return
	}
	g.samplerType = samplerType
	g.textureSampler = createTextureSampler(g.device, samplerType)
	g.rebuildBindGroup()
}

// Prepare packs the frame's uniform block.
func (g *GlobalContext) Prepare(instruction *RenderInstruction) {
	u := &instruction.Uniforms
	g.uniforms.reset()
	g.uniforms.mat4(u.ViewProjection)
	g.uniforms.mat4(u.View)
	g.uniforms.mat4(u.InverseViewProjection)
	g.uniforms.vec4(u.CameraPosition)
	g.uniforms.color(u.AmbientColor)
	g.uniforms.f32(u.ScreenSize.Width)
	g.uniforms.f32(u.ScreenSize.Height)
	g.uniforms.f32(u.PointerPosition.X)
	g.uniforms.f32(u.PointerPosition.Y)
	g.uniforms.f32(u.AnimationTimer)
	g.uniforms.f32(u.DayTimer)
	g.uniforms.f32(u.WaterLevel)
	g.uniforms.pad(16)
}

// Upload stages the uniform block through the belt.
func (g *GlobalContext) Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	belt.Write(encoder, g.uniformBuffer, 0, g.uniforms.bytes())
}

// pickerCopyOrigin clamps the cursor position to the picker texture
// extent so the single-texel copy is always in bounds.
func (g *GlobalContext) pickerCopyOrigin(position korin.ScreenPosition) gpu.Origin3D {
	x := int64(position.X)
	y := int64(position.Y)
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= int64(g.screenWidth) {
		x = int64(g.screenWidth) - 1
	}
	if y >= int64(g.screenHeight) {
		y = int64(g.screenHeight) - 1
	}
	return gpu.Origin3D{X: uint32(x), Y: uint32(y)}
}

// QueuePickerRead registers the asynchronous read of the picker value
// into the shared cell. The callback runs during a later device poll;
// with the engine's poll-and-wait it delivers the value written by the
// previous frame's copy.
func (g *GlobalContext) QueuePickerRead(cell *atomic.Uint64) {
	g.pickerValueBuffer.MapReadAsync(0, 8, func(data []byte, err error) {
		if err != nil {
			korin.Logger().Warn("graphics: picker read failed", "err", err)
			return
		}
		cell.Store(binary.LittleEndian.Uint64(data))
	})
}

// ScreenVersion counts in-place swaps of the screen-size targets.
func (g *GlobalContext) ScreenVersion() uint64 { return g.screenVersion }

// ShadowVersion counts in-place swaps of the shadow maps.
func (g *GlobalContext) ShadowVersion() uint64 { return g.shadowVersion }

// ScreenSize returns the current target dimensions.
func (g *GlobalContext) ScreenSize() (width, height uint32) {
	return g.screenWidth, g.screenHeight
}

// BindGroup returns the set-0 bind group.
func (g *GlobalContext) BindGroup() gpu.BindGroup { return g.bindGroup }

// BindGroupLayout returns the set-0 layout.
func (g *GlobalContext) BindGroupLayout() gpu.BindGroupLayout { return g.bindGroupLayout }
