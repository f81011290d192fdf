package graphics

import (
	"fmt"

	"github.com/gogpu/korin/gpu"
)

// Drawer is one pipeline's CPU-side half. Prepare serializes the
// frame's instructions into the drawer's local packer and may run on a
// worker goroutine; Upload stages the packed bytes through the belt and
// always runs on the render goroutine, in the engine's fixed drawer
// order.
type Drawer interface {
	Name() string
	Prepare(instruction *RenderInstruction)
	Upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder)
	Destroy()
}

// drawerBindGroupIndex is the set every drawer binds its own data at.
const drawerBindGroupIndex = 2

// createShader compiles one WGSL module, wrapping failures with the
// pipeline label for diagnosis.
func createShader(device gpu.Device, label, source string) (gpu.ShaderModule, error) {
	module, err := device.CreateShaderModule(&gpu.ShaderModuleDescriptor{Label: label, Source: source})
	if err != nil {
		return nil, fmt.Errorf("graphics: compile %s: %w", label, err)
	}
	return module, nil
}

// instanceBuffer is a grow-only storage buffer with its set-2 layout
// and bind group. Growing replaces buffer and bind group together, so a
// drawer's pipeline layout stays valid across growth.
type instanceBuffer struct {
	device    gpu.Device
	label     string
	buffer    gpu.Buffer
	capacity  uint64
	layout    gpu.BindGroupLayout
	bindGroup gpu.BindGroup
	instances packer
}

// newInstanceBuffer creates the buffer with an initial capacity that
// covers small frames without growth.
func newInstanceBuffer(device gpu.Device, label string, initialCapacity uint64) *instanceBuffer {
	b := &instanceBuffer{
		device:   device,
		label:    label,
		capacity: initialCapacity,
	}
	b.layout = device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []gpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gpu.ShaderStageVertex | gpu.ShaderStageFragment, Type: gpu.BindingTypeStorageBufferReadOnly},
		},
	})
	b.create()
	return b
}

func (b *instanceBuffer) create() {
	b.buffer = b.device.CreateBuffer(&gpu.BufferDescriptor{
		Label: b.label,
		Size:  b.capacity,
		Usage: gpu.BufferUsageStorage | gpu.BufferUsageCopyDst,
	})
	b.bindGroup = b.device.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:  b.label,
		Layout: b.layout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, Resource: gpu.BindingResource{Buffer: b.buffer}},
		},
	})
}

func (b *instanceBuffer) destroy() {
	b.buffer.Destroy()
}

// upload stages the packed instances, doubling the buffer first when
// they outgrew it.
func (b *instanceBuffer) upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	data := b.instances.bytes()
	if len(data) == 0 {
		return
	}
	if uint64(len(data)) > b.capacity {
		for uint64(len(data)) > b.capacity {
			b.capacity *= 2
		}
		b.buffer.Destroy()
		b.create()
	}
	belt.Write(encoder, b.buffer, 0, data)
}

// uniformSlot is a small fixed-size uniform buffer with its set-2
// layout and bind group, for drawers with one uniform block instead of
// an instance list.
type uniformSlot struct {
	buffer    gpu.Buffer
	layout    gpu.BindGroupLayout
	bindGroup gpu.BindGroup
	uniforms  packer
}

func newUniformSlot(device gpu.Device, label string, size uint64) *uniformSlot {
	s := &uniformSlot{}
	s.buffer = device.CreateBuffer(&gpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	s.layout = device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []gpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gpu.ShaderStageVertex | gpu.ShaderStageFragment, Type: gpu.BindingTypeUniformBuffer},
		},
	})
	s.bindGroup = device.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:  label,
		Layout: s.layout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, Resource: gpu.BindingResource{Buffer: s.buffer}},
		},
	})
	return s
}

func (s *uniformSlot) destroy() {
	s.buffer.Destroy()
}

func (s *uniformSlot) upload(belt *gpu.StagingBelt, encoder *gpu.CommandEncoder) {
	if len(s.uniforms.bytes()) == 0 {
		return
	}
	belt.Write(encoder, s.buffer, 0, s.uniforms.bytes())
}
