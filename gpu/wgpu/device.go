package wgpu

import (
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/korin/gpu"
	"github.com/gogpu/korin/gpu/headless"
)

// Device implements gpu.Device over a Backend.
//
// Staged integration: resource creation and shader compilation are real
// (naga compiles every module to SPIR-V up front, so invalid WGSL fails
// at creation time, not at first use), while command buffer execution
// runs against an in-memory executor. When the binding exposes command
// submission the executor is replaced by ID forwarding; the recorded
// command stream is already in submission shape.
type Device struct {
	backend *Backend

	// executor applies recorded command buffers and resolves map-read
	// callbacks. It owns the CPU-visible resource stores.
	executor *headless.Device
}

// NewDevice creates a gpu.Device over an initialized backend.
func NewDevice(backend *Backend) (*Device, error) {
	if backend == nil || !backend.IsInitialized() {
		return nil, ErrNotInitialized
	}
	return &Device{
		backend:  backend,
		executor: headless.New(),
	}, nil
}

// CreateBuffer implements gpu.Device.
func (d *Device) CreateBuffer(desc *gpu.BufferDescriptor) gpu.Buffer {
	return d.executor.CreateBuffer(desc)
}

// CreateTexture implements gpu.Device.
func (d *Device) CreateTexture(desc *gpu.TextureDescriptor) gpu.Texture {
	return d.executor.CreateTexture(desc)
}

// CreateSampler implements gpu.Device.
func (d *Device) CreateSampler(desc *gpu.SamplerDescriptor) gpu.Sampler {
	return d.executor.CreateSampler(desc)
}

// CreateShaderModule implements gpu.Device. The WGSL source is compiled
// to SPIR-V through naga; compilation failures surface here.
func (d *Device) CreateShaderModule(desc *gpu.ShaderModuleDescriptor) (gpu.ShaderModule, error) {
	spirv, err := compileToSPIRV(desc.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: module %q: %v", gpu.ErrShaderCompile, desc.Label, err)
	}
	return &shaderModule{label: desc.Label, spirv: spirv}, nil
}

// CreateBindGroupLayout implements gpu.Device.
func (d *Device) CreateBindGroupLayout(desc *gpu.BindGroupLayoutDescriptor) gpu.BindGroupLayout {
	return d.executor.CreateBindGroupLayout(desc)
}

// CreateBindGroup implements gpu.Device.
func (d *Device) CreateBindGroup(desc *gpu.BindGroupDescriptor) gpu.BindGroup {
	return d.executor.CreateBindGroup(desc)
}

// CreateRenderPipeline implements gpu.Device.
func (d *Device) CreateRenderPipeline(desc *gpu.RenderPipelineDescriptor) (gpu.RenderPipeline, error) {
	if desc.VertexShader == nil {
		return nil, fmt.Errorf("%w: pipeline %q has no vertex shader", gpu.ErrShaderCompile, desc.Label)
	}
	if _, ok := desc.VertexShader.(*shaderModule); !ok {
		return nil, fmt.Errorf("%w: pipeline %q has a foreign vertex shader module", gpu.ErrShaderCompile, desc.Label)
	}
	return &renderPipeline{label: desc.Label}, nil
}

// CreateSurface implements gpu.Device. The preferred format follows the
// shared provider's negotiated surface format when one exists.
func (d *Device) CreateSurface(desc *gpu.SurfaceDescriptor) (gpu.Surface, error) {
	surface, err := d.executor.CreateSurface(desc)
	if err != nil {
		return nil, err
	}
	if hs, ok := surface.(*headless.Surface); ok {
		hs.SetPreferredFormat(translateSurfaceFormat(d.backend.SurfaceFormat()))
	}
	return surface, nil
}

// Queue implements gpu.Device.
func (d *Device) Queue() gpu.Queue { return d.executor.Queue() }

// Poll implements gpu.Device. Polls the executor (resolving map-read
// callbacks) and, for shared providers, the host device as well so
// external work keeps draining.
func (d *Device) Poll(wait bool) {
	d.executor.Poll(wait)
	if d.backend.provider != nil {
		d.backend.provider.Device().Poll(wait)
	}
}

// Destroy implements gpu.Device.
func (d *Device) Destroy() {
	d.executor.Destroy()
	d.backend.Close()
}

// compileToSPIRV compiles WGSL source to SPIR-V words.
func compileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

type shaderModule struct {
	label string
	spirv []uint32
}

func (m *shaderModule) Label() string { return m.label }

// SPIRV returns the compiled SPIR-V words.
func (m *shaderModule) SPIRV() []uint32 { return m.spirv }

type renderPipeline struct {
	label string
}

func (p *renderPipeline) Label() string { return p.label }
