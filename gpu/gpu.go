package gpu

import "errors"

// Errors returned by backends. Everything else in this package is a
// contract violation and panics (the renderer's callers cannot recover
// from malformed recording).
var (
	// ErrSurfaceOutdated reports that the surface no longer matches its
	// configuration (resize, device event) and must be reconfigured
	// before the next acquire.
	ErrSurfaceOutdated = errors.New("gpu: surface outdated")

	// ErrDeviceLost reports that the device is gone and all resources
	// created from it are invalid.
	ErrDeviceLost = errors.New("gpu: device lost")

	// ErrShaderCompile reports a shader compilation failure.
	ErrShaderCompile = errors.New("gpu: shader compilation failed")
)

// Device creates GPU resources and owns the submission queue.
//
// Resource creation never fails for valid descriptors; shader modules and
// pipelines return an error because compilation can genuinely fail.
type Device interface {
	CreateBuffer(desc *BufferDescriptor) Buffer
	CreateTexture(desc *TextureDescriptor) Texture
	CreateSampler(desc *SamplerDescriptor) Sampler
	CreateShaderModule(desc *ShaderModuleDescriptor) (ShaderModule, error)
	CreateBindGroupLayout(desc *BindGroupLayoutDescriptor) BindGroupLayout
	CreateBindGroup(desc *BindGroupDescriptor) BindGroup
	CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error)
	CreateSurface(desc *SurfaceDescriptor) (Surface, error)

	// Queue returns the device's submission queue.
	Queue() Queue

	// Poll processes outstanding device work. With wait=true it blocks
	// until all previously submitted work has finished and all pending
	// map callbacks have run; this is the renderer's one intentional
	// CPU-GPU synchronization point.
	Poll(wait bool)

	// Destroy releases the device and everything created from it.
	Destroy()
}

// Queue executes command buffers and performs direct writes.
type Queue interface {
	// Submit hands the command buffers to the GPU for execution in
	// submission order.
	Submit(buffers []*CommandBuffer)

	// WriteBuffer schedules an immediate buffer write, effective before
	// any subsequently submitted work.
	WriteBuffer(dst Buffer, offset uint64, data []byte)

	// WriteTexture schedules an immediate texture write of tightly
	// packed texel data.
	WriteTexture(dst Texture, origin Origin3D, extent Extent3D, data []byte)
}

// Buffer is a linear GPU allocation.
type Buffer interface {
	Label() string
	Size() uint64
	Usage() BufferUsage

	// WriteAt stores data at offset. Valid only for buffers created
	// with BufferUsageMapWrite (staging memory is host visible).
	WriteAt(offset uint64, data []byte)

	// MapReadAsync registers a callback delivering the buffer range
	// once all GPU work writing it has finished. The callback runs
	// during a later Poll; the data slice is only valid inside it.
	// Valid only for buffers created with BufferUsageMapRead.
	MapReadAsync(offset, size uint64, callback func(data []byte, err error))

	Destroy()
}

// Texture is a GPU image.
type Texture interface {
	Label() string
	Size() Extent3D
	Format() TextureFormat
	Usage() TextureUsage

	// CreateView returns a view over a subresource range. Passing nil
	// views the whole texture as 2D.
	CreateView(desc *TextureViewDescriptor) TextureView

	Destroy()
}

// TextureView is a bindable or attachable slice of a texture.
type TextureView interface {
	Label() string
	Texture() Texture
	BaseArrayLayer() uint32
}

// Sampler configures texture filtering.
type Sampler interface {
	Label() string
}

// ShaderModule is a compiled shader.
type ShaderModule interface {
	Label() string
}

// BindGroupLayout declares the shape of a bind group.
type BindGroupLayout interface {
	Label() string
}

// BindGroup binds concrete resources to a layout.
type BindGroup interface {
	Label() string
	Layout() BindGroupLayout
}

// RenderPipeline is a compiled render pipeline.
type RenderPipeline interface {
	Label() string
}

// Surface is the presentable target.
type Surface interface {
	// PreferredFormat returns the format the platform negotiates for
	// this surface. It can change between suspends (platform switches).
	PreferredFormat() TextureFormat

	// PresentModes returns the supported present modes. Fifo is always
	// included.
	PresentModes() []PresentMode

	// Configure (re)creates the swap chain. Must be called before the
	// first Acquire and after every ErrSurfaceOutdated.
	Configure(config *SurfaceConfiguration)

	// Acquire returns the next presentable frame.
	Acquire() (Frame, error)
}

// Frame is one acquired swap-chain image.
type Frame interface {
	Texture() Texture

	// Present schedules the frame for display. The frame and its
	// texture are invalid afterwards.
	Present()
}
