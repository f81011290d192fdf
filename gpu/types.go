package gpu

// Extent3D is a texture extent in texels.
type Extent3D struct {
	Width, Height, DepthOrArrayLayers uint32
}

// Origin3D is a texel origin inside a texture.
type Origin3D struct {
	X, Y, Z uint32
}

// BufferUsage is a bit set describing how a buffer may be used.
type BufferUsage uint32

const (
	BufferUsageMapRead BufferUsage = 1 << iota
	BufferUsageMapWrite
	BufferUsageCopySrc
	BufferUsageCopyDst
	BufferUsageVertex
	BufferUsageIndex
	BufferUsageUniform
	BufferUsageStorage
)

// TextureUsage is a bit set describing how a texture may be used.
type TextureUsage uint32

const (
	TextureUsageCopySrc TextureUsage = 1 << iota
	TextureUsageCopyDst
	TextureUsageTextureBinding
	TextureUsageRenderAttachment
)

// ShaderStage is a bit set of pipeline stages.
type ShaderStage uint32

const (
	ShaderStageVertex ShaderStage = 1 << iota
	ShaderStageFragment
	ShaderStageCompute
)

// PresentMode selects the swap-chain presentation strategy.
type PresentMode int

const (
	// PresentModeFifo waits for vertical blank; always supported.
	PresentModeFifo PresentMode = iota
	// PresentModeFifoRelaxed waits for vertical blank but tears on a
	// late frame.
	PresentModeFifoRelaxed
	// PresentModeMailbox replaces the queued image; vsync without
	// blocking the CPU (triple buffering).
	PresentModeMailbox
	// PresentModeImmediate presents without synchronization.
	PresentModeImmediate
)

// String returns the WebGPU-style name of the present mode.
func (m PresentMode) String() string {
	switch m {
	case PresentModeFifoRelaxed:
		return "fifo-relaxed"
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeImmediate:
		return "immediate"
	default:
		return "fifo"
	}
}

// BufferDescriptor describes a buffer allocation.
type BufferDescriptor struct {
	Label string
	Size  uint64
	Usage BufferUsage
}

// TextureDescriptor describes a texture allocation.
type TextureDescriptor struct {
	Label     string
	Size      Extent3D
	Format    TextureFormat
	Usage     TextureUsage
	MipLevels uint32 // 0 means 1
}

// TextureViewDimension selects how a view exposes its texture's layers.
type TextureViewDimension int

const (
	TextureViewDimension2D TextureViewDimension = iota
	TextureViewDimension2DArray
	TextureViewDimensionCube
)

// TextureViewDescriptor describes a view over a texture subresource.
type TextureViewDescriptor struct {
	Label           string
	Dimension       TextureViewDimension
	BaseArrayLayer  uint32
	ArrayLayerCount uint32 // 0 means all remaining layers
}

// FilterMode selects texture filtering.
type FilterMode int

const (
	FilterModeNearest FilterMode = iota
	FilterModeLinear
)

// AddressMode selects texture coordinate wrapping.
type AddressMode int

const (
	AddressModeClampToEdge AddressMode = iota
	AddressModeRepeat
)

// SamplerDescriptor describes a sampler.
type SamplerDescriptor struct {
	Label         string
	MagFilter     FilterMode
	MinFilter     FilterMode
	MipmapFilter  FilterMode
	AddressMode   AddressMode
	AnisotropyMax uint16 // 0 or 1 disables anisotropic filtering
	Compare       CompareFunction
}

// CompareFunction is a depth/sampler comparison.
type CompareFunction int

const (
	CompareFunctionUndefined CompareFunction = iota
	CompareFunctionNever
	CompareFunctionLess
	CompareFunctionLessEqual
	CompareFunctionGreater
	CompareFunctionGreaterEqual
	CompareFunctionEqual
	CompareFunctionAlways
)

// ShaderModuleDescriptor carries WGSL source. Backends compile it to
// their native representation on module creation.
type ShaderModuleDescriptor struct {
	Label  string
	Source string
}

// BindingType identifies what a bind group slot holds.
type BindingType int

const (
	BindingTypeUniformBuffer BindingType = iota
	BindingTypeStorageBufferReadOnly
	BindingTypeSampler
	BindingTypeComparisonSampler
	BindingTypeTexture2D
	BindingTypeTexture2DArray
	BindingTypeTextureCube
	BindingTypeTextureCubeArray
	BindingTypeDepthTexture
	BindingTypeUintTexture
)

// BindGroupLayoutEntry declares one slot of a bind group layout.
type BindGroupLayoutEntry struct {
	Binding    uint32
	Visibility ShaderStage
	Type       BindingType
}

// BindGroupLayoutDescriptor describes a bind group layout.
type BindGroupLayoutDescriptor struct {
	Label   string
	Entries []BindGroupLayoutEntry
}

// BindingResource is the resource bound at one bind group slot.
// Exactly one field is set, matching the layout entry's BindingType.
type BindingResource struct {
	Buffer       Buffer
	BufferOffset uint64
	BufferSize   uint64 // 0 means whole buffer
	TextureView  TextureView
	Sampler      Sampler
}

// BindGroupEntry assigns a resource to a binding slot.
type BindGroupEntry struct {
	Binding  uint32
	Resource BindingResource
}

// BindGroupDescriptor describes a bind group.
type BindGroupDescriptor struct {
	Label   string
	Layout  BindGroupLayout
	Entries []BindGroupEntry
}

// VertexFormat identifies a vertex attribute format.
type VertexFormat int

const (
	VertexFormatFloat32x2 VertexFormat = iota
	VertexFormatFloat32x3
	VertexFormatFloat32x4
	VertexFormatUint32
	VertexFormatUint32x2
)

// Size returns the attribute size in bytes.
func (f VertexFormat) Size() uint64 {
	switch f {
	case VertexFormatFloat32x2, VertexFormatUint32x2:
		return 8
	case VertexFormatFloat32x3:
		return 12
	case VertexFormatFloat32x4:
		return 16
	case VertexFormatUint32:
		return 4
	default:
		return 0
	}
}

// VertexAttribute declares one attribute within a vertex buffer layout.
type VertexAttribute struct {
	Format         VertexFormat
	Offset         uint64
	ShaderLocation uint32
}

// VertexStepMode selects per-vertex or per-instance stepping.
type VertexStepMode int

const (
	VertexStepModeVertex VertexStepMode = iota
	VertexStepModeInstance
)

// VertexBufferLayout declares the layout of one vertex buffer slot.
type VertexBufferLayout struct {
	ArrayStride uint64
	StepMode    VertexStepMode
	Attributes  []VertexAttribute
}

// BlendMode selects one of the fixed blend configurations the renderer
// uses. A full blend-equation surface is not needed.
type BlendMode int

const (
	BlendModeReplace BlendMode = iota
	BlendModeAlpha
	BlendModePremultiplied
	BlendModeAdditive
)

// ColorTargetState describes one color attachment of a pipeline.
type ColorTargetState struct {
	Format TextureFormat
	Blend  BlendMode
}

// DepthStencilState describes the depth attachment of a pipeline.
type DepthStencilState struct {
	Format            TextureFormat
	DepthWriteEnabled bool
	Compare           CompareFunction
}

// PrimitiveTopology selects the primitive assembly mode.
type PrimitiveTopology int

const (
	PrimitiveTopologyTriangleList PrimitiveTopology = iota
	PrimitiveTopologyTriangleStrip
	PrimitiveTopologyLineList
)

// CullMode selects back-face culling.
type CullMode int

const (
	CullModeNone CullMode = iota
	CullModeBack
	CullModeFront
)

// RenderPipelineDescriptor describes a render pipeline.
type RenderPipelineDescriptor struct {
	Label             string
	BindGroupLayouts  []BindGroupLayout
	PushConstantSize  uint32 // 0 disables push constants
	VertexShader      ShaderModule
	VertexEntryPoint  string
	FragmentShader    ShaderModule // nil for depth-only pipelines
	FragmentEntry     string
	VertexBuffers     []VertexBufferLayout
	ColorTargets      []ColorTargetState
	DepthStencil      *DepthStencilState
	Topology          PrimitiveTopology
	CullMode          CullMode
	MultisampleCount  uint32 // 0 means 1
}

// LoadOp selects how an attachment is initialized at pass begin.
type LoadOp int

const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
)

// StoreOp selects what happens to an attachment at pass end.
type StoreOp int

const (
	StoreOpStore StoreOp = iota
	StoreOpDiscard
)

// ClearColor is an attachment clear value.
type ClearColor struct {
	R, G, B, A float64
}

// RenderPassColorAttachment configures one color attachment of a pass.
type RenderPassColorAttachment struct {
	View       TextureView
	LoadOp     LoadOp
	StoreOp    StoreOp
	ClearValue ClearColor
}

// RenderPassDepthStencilAttachment configures the depth attachment.
type RenderPassDepthStencilAttachment struct {
	View         TextureView
	DepthLoadOp  LoadOp
	DepthStoreOp StoreOp
	ClearDepth   float32
}

// RenderPassDescriptor describes one render pass.
type RenderPassDescriptor struct {
	Label            string
	ColorAttachments []RenderPassColorAttachment
	DepthStencil     *RenderPassDepthStencilAttachment
}

// SurfaceDescriptor describes a presentable surface. WindowHandle is the
// platform window (backend-specific); headless surfaces ignore it.
type SurfaceDescriptor struct {
	Label        string
	Width        uint32
	Height       uint32
	WindowHandle any
}

// SurfaceConfiguration is applied by Surface.Configure.
type SurfaceConfiguration struct {
	Format      TextureFormat
	Width       uint32
	Height      uint32
	PresentMode PresentMode
}
