package headless

import (
	"fmt"

	"github.com/gogpu/korin/gpu"
)

type buffer struct {
	device *Device
	label  string
	usage  gpu.BufferUsage
	data   []byte
}

func (b *buffer) Label() string          { return b.label }
func (b *buffer) Size() uint64           { return uint64(len(b.data)) }
func (b *buffer) Usage() gpu.BufferUsage { return b.usage }

func (b *buffer) WriteAt(offset uint64, data []byte) {
	if b.usage&gpu.BufferUsageMapWrite == 0 {
		panic(fmt.Sprintf("headless: WriteAt on buffer %q without MapWrite usage", b.label))
	}
	if offset+uint64(len(data)) > uint64(len(b.data)) {
		panic(fmt.Sprintf("headless: write of %d bytes at %d overflows buffer %q (%d bytes)",
			len(data), offset, b.label, len(b.data)))
	}
	copy(b.data[offset:], data)
}

func (b *buffer) MapReadAsync(offset, size uint64, callback func([]byte, error)) {
	if b.usage&gpu.BufferUsageMapRead == 0 {
		panic(fmt.Sprintf("headless: MapReadAsync on buffer %q without MapRead usage", b.label))
	}
	b.device.mu.Lock()
	b.device.pendingMaps = append(b.device.pendingMaps, pendingMap{
		buffer: b, offset: offset, size: size, callback: callback,
	})
	b.device.mu.Unlock()
}

func (b *buffer) Destroy() {
	b.device.mu.Lock()
	b.device.destroyedBuffers++
	b.device.mu.Unlock()
}

type texture struct {
	label  string
	size   gpu.Extent3D
	format gpu.TextureFormat
	usage  gpu.TextureUsage
	data   []byte
}

func (t *texture) Label() string             { return t.label }
func (t *texture) Size() gpu.Extent3D        { return t.size }
func (t *texture) Format() gpu.TextureFormat { return t.format }
func (t *texture) Usage() gpu.TextureUsage   { return t.usage }
func (t *texture) Destroy()                  {}

func (t *texture) CreateView(desc *gpu.TextureViewDescriptor) gpu.TextureView {
	v := &textureView{texture: t}
	if desc != nil {
		v.label = desc.Label
		v.baseLayer = desc.BaseArrayLayer
	}
	return v
}

// texelOffset returns the byte offset of a texel in the backing store.
// Layers are stored contiguously after each full 2D slice.
func (t *texture) texelOffset(x, y, layer uint32) uint64 {
	bpp := uint64(t.format.BytesPerPixel())
	slice := uint64(t.size.Width) * uint64(t.size.Height) * bpp
	return uint64(layer)*slice + (uint64(y)*uint64(t.size.Width)+uint64(x))*bpp
}

func (t *texture) writeRegion(origin gpu.Origin3D, extent gpu.Extent3D, data []byte) {
	t.checkRegion(origin, extent)
	bpp := uint64(t.format.BytesPerPixel())
	rowBytes := uint64(extent.Width) * bpp
	layers := extent.DepthOrArrayLayers
	if layers == 0 {
		layers = 1
	}
	src := uint64(0)
	for l := uint32(0); l < layers; l++ {
		for y := uint32(0); y < extent.Height; y++ {
			off := t.texelOffset(origin.X, origin.Y+y, origin.Z+l)
			copy(t.data[off:off+rowBytes], data[src:src+rowBytes])
			src += rowBytes
		}
	}
}

func (t *texture) readRegion(origin gpu.Origin3D, extent gpu.Extent3D, out []byte) {
	t.checkRegion(origin, extent)
	bpp := uint64(t.format.BytesPerPixel())
	rowBytes := uint64(extent.Width) * bpp
	layers := extent.DepthOrArrayLayers
	if layers == 0 {
		layers = 1
	}
	dst := uint64(0)
	for l := uint32(0); l < layers; l++ {
		for y := uint32(0); y < extent.Height; y++ {
			off := t.texelOffset(origin.X, origin.Y+y, origin.Z+l)
			copy(out[dst:dst+rowBytes], t.data[off:off+rowBytes])
			dst += rowBytes
		}
	}
}

func (t *texture) checkRegion(origin gpu.Origin3D, extent gpu.Extent3D) {
	layers := extent.DepthOrArrayLayers
	if layers == 0 {
		layers = 1
	}
	if origin.X+extent.Width > t.size.Width ||
		origin.Y+extent.Height > t.size.Height ||
		origin.Z+layers > t.size.DepthOrArrayLayers {
		panic(fmt.Sprintf("headless: region %v+%v out of bounds of texture %q (%v)",
			origin, extent, t.label, t.size))
	}
}

type textureView struct {
	label     string
	texture   *texture
	baseLayer uint32
}

func (v *textureView) Label() string           { return v.label }
func (v *textureView) Texture() gpu.Texture    { return v.texture }
func (v *textureView) BaseArrayLayer() uint32  { return v.baseLayer }

type sampler struct {
	label string
	desc  gpu.SamplerDescriptor
}

func (s *sampler) Label() string { return s.label }

type shaderModule struct {
	label string
}

func (m *shaderModule) Label() string { return m.label }

type bindGroupLayout struct {
	label   string
	entries []gpu.BindGroupLayoutEntry
}

func (l *bindGroupLayout) Label() string { return l.label }

type bindGroup struct {
	label  string
	layout *bindGroupLayout
}

func (g *bindGroup) Label() string               { return g.label }
func (g *bindGroup) Layout() gpu.BindGroupLayout { return g.layout }

type renderPipeline struct {
	label string
}

func (p *renderPipeline) Label() string { return p.label }

// Surface is the headless gpu.Surface. It is always acquirable unless
// explicitly marked outdated, which tests use to drive the reconfigure
// path.
type Surface struct {
	device    *Device
	label     string
	width     uint32
	height    uint32
	preferred gpu.TextureFormat

	config     *gpu.SurfaceConfiguration
	outdated   bool
	presented  int
}

// PreferredFormat implements gpu.Surface.
func (s *Surface) PreferredFormat() gpu.TextureFormat { return s.preferred }

// SetPreferredFormat changes the negotiated format, simulating a
// platform format switch across a suspend/resume cycle.
func (s *Surface) SetPreferredFormat(f gpu.TextureFormat) { s.preferred = f }

// PresentModes implements gpu.Surface.
func (s *Surface) PresentModes() []gpu.PresentMode {
	return []gpu.PresentMode{
		gpu.PresentModeFifo,
		gpu.PresentModeMailbox,
		gpu.PresentModeImmediate,
	}
}

// Configure implements gpu.Surface.
func (s *Surface) Configure(config *gpu.SurfaceConfiguration) {
	c := *config
	s.config = &c
	s.width = c.Width
	s.height = c.Height
	s.outdated = false
}

// MarkOutdated makes the next Acquire fail with gpu.ErrSurfaceOutdated.
func (s *Surface) MarkOutdated() { s.outdated = true }

// Presented returns how many frames have been presented.
func (s *Surface) Presented() int { return s.presented }

// Acquire implements gpu.Surface.
func (s *Surface) Acquire() (gpu.Frame, error) {
	if s.config == nil {
		return nil, fmt.Errorf("headless: acquire on unconfigured surface %q", s.label)
	}
	if s.outdated {
		return nil, gpu.ErrSurfaceOutdated
	}
	tex := &texture{
		label:  "surface frame",
		size:   gpu.Extent3D{Width: s.width, Height: s.height, DepthOrArrayLayers: 1},
		format: s.config.Format,
		usage:  gpu.TextureUsageRenderAttachment | gpu.TextureUsageCopySrc,
	}
	tex.data = make([]byte, uint64(s.width)*uint64(s.height)*uint64(tex.format.BytesPerPixel()))
	return &frame{surface: s, texture: tex}, nil
}

type frame struct {
	surface *Surface
	texture *texture
}

func (f *frame) Texture() gpu.Texture { return f.texture }
func (f *frame) Present()             { f.surface.presented++ }
