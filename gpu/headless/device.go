// Package headless provides an in-memory gpu.Device that executes
// command buffers against CPU-side stores.
//
// It does not rasterize: draws are counted, copies and writes are applied
// for real. That is enough to exercise the whole frame protocol,
// including staged uploads and the picker read-back, without hardware.
// Tests and the server-side client mode run on it.
package headless

import (
	"fmt"
	"sync"

	"github.com/gogpu/korin/gpu"
)

// Device is the headless gpu.Device implementation.
type Device struct {
	mu    sync.Mutex
	queue *Queue

	// pendingMaps are MapReadAsync registrations waiting for a Poll.
	pendingMaps []pendingMap

	destroyed        bool
	destroyedBuffers int
}

type pendingMap struct {
	buffer   *buffer
	offset   uint64
	size     uint64
	callback func([]byte, error)
}

// New creates a headless device.
func New() *Device {
	d := &Device{}
	d.queue = &Queue{device: d}
	return d
}

// CreateBuffer implements gpu.Device.
func (d *Device) CreateBuffer(desc *gpu.BufferDescriptor) gpu.Buffer {
	if desc.Size == 0 {
		panic(fmt.Sprintf("headless: buffer %q has zero size", desc.Label))
	}
	return &buffer{
		device: d,
		label:  desc.Label,
		usage:  desc.Usage,
		data:   make([]byte, desc.Size),
	}
}

// CreateTexture implements gpu.Device.
func (d *Device) CreateTexture(desc *gpu.TextureDescriptor) gpu.Texture {
	bpp := desc.Format.BytesPerPixel()
	if bpp == 0 {
		panic(fmt.Sprintf("headless: texture %q has undefined format", desc.Label))
	}
	size := desc.Size
	if size.DepthOrArrayLayers == 0 {
		size.DepthOrArrayLayers = 1
	}
	return &texture{
		label:  desc.Label,
		size:   size,
		format: desc.Format,
		usage:  desc.Usage,
		data:   make([]byte, uint64(size.Width)*uint64(size.Height)*uint64(size.DepthOrArrayLayers)*uint64(bpp)),
	}
}

// CreateSampler implements gpu.Device.
func (d *Device) CreateSampler(desc *gpu.SamplerDescriptor) gpu.Sampler {
	return &sampler{label: desc.Label, desc: *desc}
}

// CreateShaderModule implements gpu.Device. Source is kept verbatim;
// headless execution never compiles it.
func (d *Device) CreateShaderModule(desc *gpu.ShaderModuleDescriptor) (gpu.ShaderModule, error) {
	if desc.Source == "" {
		return nil, fmt.Errorf("%w: module %q has empty source", gpu.ErrShaderCompile, desc.Label)
	}
	return &shaderModule{label: desc.Label}, nil
}

// CreateBindGroupLayout implements gpu.Device.
func (d *Device) CreateBindGroupLayout(desc *gpu.BindGroupLayoutDescriptor) gpu.BindGroupLayout {
	return &bindGroupLayout{label: desc.Label, entries: desc.Entries}
}

// CreateBindGroup implements gpu.Device.
func (d *Device) CreateBindGroup(desc *gpu.BindGroupDescriptor) gpu.BindGroup {
	layout, ok := desc.Layout.(*bindGroupLayout)
	if !ok || layout == nil {
		panic(fmt.Sprintf("headless: bind group %q has foreign layout", desc.Label))
	}
	if len(desc.Entries) != len(layout.entries) {
		panic(fmt.Sprintf("headless: bind group %q has %d entries, layout wants %d",
			desc.Label, len(desc.Entries), len(layout.entries)))
	}
	return &bindGroup{label: desc.Label, layout: layout}
}

// CreateRenderPipeline implements gpu.Device.
func (d *Device) CreateRenderPipeline(desc *gpu.RenderPipelineDescriptor) (gpu.RenderPipeline, error) {
	if desc.VertexShader == nil {
		return nil, fmt.Errorf("%w: pipeline %q has no vertex shader", gpu.ErrShaderCompile, desc.Label)
	}
	return &renderPipeline{label: desc.Label}, nil
}

// CreateSurface implements gpu.Device. The window handle is ignored.
func (d *Device) CreateSurface(desc *gpu.SurfaceDescriptor) (gpu.Surface, error) {
	return &Surface{
		device:    d,
		label:     desc.Label,
		width:     desc.Width,
		height:    desc.Height,
		preferred: gpu.TextureFormatBGRA8Unorm,
	}, nil
}

// Queue implements gpu.Device.
func (d *Device) Queue() gpu.Queue { return d.queue }

// Poll implements gpu.Device. Submissions execute synchronously, so the
// only outstanding work is pending map callbacks: they run against the
// buffer contents written by submissions that happened before this Poll,
// which is exactly the happens-before the frame protocol relies on.
func (d *Device) Poll(wait bool) {
	d.mu.Lock()
	pending := d.pendingMaps
	d.pendingMaps = nil
	d.mu.Unlock()

	for _, m := range pending {
		end := m.offset + m.size
		if end > uint64(len(m.buffer.data)) {
			m.callback(nil, fmt.Errorf("headless: map of [%d, %d) out of range on %q", m.offset, end, m.buffer.label))
			continue
		}
		snapshot := make([]byte, m.size)
		copy(snapshot, m.buffer.data[m.offset:end])
		m.callback(snapshot, nil)
	}
}

// DestroyedBuffers counts the buffers released with Destroy so far,
// for inspecting resource cleanup.
func (d *Device) DestroyedBuffers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.destroyedBuffers
}

// Destroy implements gpu.Device.
func (d *Device) Destroy() {
	d.mu.Lock()
	d.destroyed = true
	d.pendingMaps = nil
	d.mu.Unlock()
}

// Queue is the headless gpu.Queue. It executes command buffers
// synchronously on Submit and keeps a submission log for inspection.
type Queue struct {
	device *Device

	mu          sync.Mutex
	submissions [][]*gpu.CommandBuffer
}

// Submit implements gpu.Queue.
func (q *Queue) Submit(buffers []*gpu.CommandBuffer) {
	for _, b := range buffers {
		for _, c := range b.Commands {
			q.execute(c)
		}
	}

	logged := make([]*gpu.CommandBuffer, len(buffers))
	copy(logged, buffers)
	q.mu.Lock()
	q.submissions = append(q.submissions, logged)
	q.mu.Unlock()
}

func (q *Queue) execute(c gpu.Command) {
	switch cmd := c.(type) {
	case gpu.CmdCopyBufferToBuffer:
		src := cmd.Src.(*buffer)
		dst := cmd.Dst.(*buffer)
		copy(dst.data[cmd.DstOffset:cmd.DstOffset+cmd.Size], src.data[cmd.SrcOffset:cmd.SrcOffset+cmd.Size])

	case gpu.CmdCopyBufferToTexture:
		src := cmd.Src.(*buffer)
		dst := cmd.Dst.(*texture)
		dst.writeRegion(cmd.Origin, cmd.Extent, src.data[cmd.SrcOffset:])

	case gpu.CmdCopyTextureToBuffer:
		src := cmd.Src.(*texture)
		dst := cmd.Dst.(*buffer)
		src.readRegion(cmd.Origin, cmd.Extent, dst.data[cmd.DstOffset:])

	case *gpu.CmdRenderPass:
		// Draws are not rasterized; nothing to apply.
	}
}

// WriteBuffer implements gpu.Queue.
func (q *Queue) WriteBuffer(dst gpu.Buffer, offset uint64, data []byte) {
	b := dst.(*buffer)
	copy(b.data[offset:], data)
}

// WriteTexture implements gpu.Queue.
func (q *Queue) WriteTexture(dst gpu.Texture, origin gpu.Origin3D, extent gpu.Extent3D, data []byte) {
	t := dst.(*texture)
	t.writeRegion(origin, extent, data)
}

// Submissions returns the submission log: one slice of command buffers
// per Submit call, in order.
func (q *Queue) Submissions() [][]*gpu.CommandBuffer {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([][]*gpu.CommandBuffer, len(q.submissions))
	copy(out, q.submissions)
	return out
}

// LastSubmission returns the buffers of the most recent Submit, or nil.
func (q *Queue) LastSubmission() []*gpu.CommandBuffer {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.submissions) == 0 {
		return nil
	}
	return q.submissions[len(q.submissions)-1]
}
