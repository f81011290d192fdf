package gpu

import "fmt"

// Command is one recorded encoder-level command. The closed set of
// implementations below is what backends interpret on submit.
type Command interface {
	isCommand()
}

// CmdCopyBufferToBuffer copies a byte range between buffers.
type CmdCopyBufferToBuffer struct {
	Src       Buffer
	SrcOffset uint64
	Dst       Buffer
	DstOffset uint64
	Size      uint64
}

// CmdCopyBufferToTexture copies tightly packed texel rows from a buffer
// into a texture region.
type CmdCopyBufferToTexture struct {
	Src       Buffer
	SrcOffset uint64
	Dst       Texture
	Origin    Origin3D
	Extent    Extent3D
}

// CmdCopyTextureToBuffer copies a texture region into a buffer. The
// picker read-back records a single-texel instance of this.
type CmdCopyTextureToBuffer struct {
	Src       Texture
	Origin    Origin3D
	Dst       Buffer
	DstOffset uint64
	Extent    Extent3D
}

// CmdRenderPass is one complete recorded render pass.
type CmdRenderPass struct {
	Desc     RenderPassDescriptor
	Commands []PassCommand
}

func (CmdCopyBufferToBuffer) isCommand()  {}
func (CmdCopyBufferToTexture) isCommand() {}
func (CmdCopyTextureToBuffer) isCommand() {}
func (*CmdRenderPass) isCommand()         {}

// PassCommand is one recorded command inside a render pass.
type PassCommand interface {
	isPassCommand()
}

// PassSetPipeline selects the active pipeline.
type PassSetPipeline struct {
	Pipeline RenderPipeline
}

// PassSetBindGroup binds a group at an index.
type PassSetBindGroup struct {
	Index uint32
	Group BindGroup
}

// PassSetVertexBuffer binds a vertex buffer slot.
type PassSetVertexBuffer struct {
	Slot   uint32
	Buffer Buffer
	Offset uint64
}

// PassSetIndexBuffer binds the index buffer (uint32 indices).
type PassSetIndexBuffer struct {
	Buffer Buffer
	Offset uint64
}

// PassSetScissorRect restricts rasterization to a rectangle.
type PassSetScissorRect struct {
	X, Y, Width, Height uint32
}

// PassSetViewport sets the viewport transform.
type PassSetViewport struct {
	X, Y, Width, Height, MinDepth, MaxDepth float32
}

// PassSetPushConstants stores push constant bytes for subsequent draws.
type PassSetPushConstants struct {
	Stages ShaderStage
	Offset uint32
	Data   []byte
}

// PassDraw is a non-indexed draw.
type PassDraw struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

// PassDrawIndexed is an indexed draw.
type PassDrawIndexed struct {
	IndexCount    uint32
	InstanceCount uint32
	FirstIndex    uint32
	BaseVertex    int32
	FirstInstance uint32
}

func (PassSetPipeline) isPassCommand()      {}
func (PassSetBindGroup) isPassCommand()     {}
func (PassSetVertexBuffer) isPassCommand()  {}
func (PassSetIndexBuffer) isPassCommand()   {}
func (PassSetScissorRect) isPassCommand()   {}
func (PassSetViewport) isPassCommand()      {}
func (PassSetPushConstants) isPassCommand() {}
func (PassDraw) isPassCommand()             {}
func (PassDrawIndexed) isPassCommand()      {}

// CommandBuffer is a finished recording, ready for Queue.Submit.
// It is inert data: fully inspectable, executed only by a backend.
type CommandBuffer struct {
	Label    string
	Commands []Command
}

// RenderPassCount returns the number of render passes in the buffer.
func (b *CommandBuffer) RenderPassCount() int {
	n := 0
	for _, c := range b.Commands {
		if _, ok := c.(*CmdRenderPass); ok {
			n++
		}
	}
	return n
}

// RenderPasses returns the recorded render passes in order.
func (b *CommandBuffer) RenderPasses() []*CmdRenderPass {
	var passes []*CmdRenderPass
	for _, c := range b.Commands {
		if p, ok := c.(*CmdRenderPass); ok {
			passes = append(passes, p)
		}
	}
	return passes
}

// CommandEncoder records commands into a CommandBuffer.
//
// Recording is CPU-side and backend-independent. Misuse (recording after
// Finish, finishing with an open pass) is a programming error and panics;
// there is no recoverable failure at this layer.
type CommandEncoder struct {
	label    string
	commands []Command
	openPass *RenderPassEncoder
	finished bool
}

// NewCommandEncoder creates an encoder with a debug label.
func NewCommandEncoder(label string) *CommandEncoder {
	return &CommandEncoder{label: label}
}

// Label returns the encoder's debug label.
func (e *CommandEncoder) Label() string { return e.label }

func (e *CommandEncoder) ensureOpen() {
	if e.finished {
		panic(fmt.Sprintf("gpu: encoder %q used after Finish", e.label))
	}
	if e.openPass != nil {
		panic(fmt.Sprintf("gpu: encoder %q used while a render pass is open", e.label))
	}
}

// CopyBufferToBuffer records a buffer copy.
func (e *CommandEncoder) CopyBufferToBuffer(src Buffer, srcOffset uint64, dst Buffer, dstOffset, size uint64) {
	e.ensureOpen()
	if srcOffset+size > src.Size() || dstOffset+size > dst.Size() {
		panic(fmt.Sprintf("gpu: copy of %d bytes out of range (src %d, dst %d)", size, src.Size(), dst.Size()))
	}
	e.commands = append(e.commands, CmdCopyBufferToBuffer{
		Src: src, SrcOffset: srcOffset, Dst: dst, DstOffset: dstOffset, Size: size,
	})
}

// CopyBufferToTexture records a buffer-to-texture copy.
func (e *CommandEncoder) CopyBufferToTexture(src Buffer, srcOffset uint64, dst Texture, origin Origin3D, extent Extent3D) {
	e.ensureOpen()
	e.commands = append(e.commands, CmdCopyBufferToTexture{
		Src: src, SrcOffset: srcOffset, Dst: dst, Origin: origin, Extent: extent,
	})
}

// CopyTextureToBuffer records a texture-to-buffer copy.
func (e *CommandEncoder) CopyTextureToBuffer(src Texture, origin Origin3D, dst Buffer, dstOffset uint64, extent Extent3D) {
	e.ensureOpen()
	e.commands = append(e.commands, CmdCopyTextureToBuffer{
		Src: src, Origin: origin, Dst: dst, DstOffset: dstOffset, Extent: extent,
	})
}

// BeginRenderPass opens a render pass. Exactly one pass may be open per
// encoder at a time; it must be ended before the encoder is used again.
func (e *CommandEncoder) BeginRenderPass(desc *RenderPassDescriptor) *RenderPassEncoder {
	e.ensureOpen()
	if len(desc.ColorAttachments) == 0 && desc.DepthStencil == nil {
		panic(fmt.Sprintf("gpu: render pass %q has no attachments", desc.Label))
	}
	p := &RenderPassEncoder{
		encoder: e,
		pass:    &CmdRenderPass{Desc: *desc},
	}
	e.openPass = p
	return p
}

// Finish closes the encoder and returns the recorded command buffer.
func (e *CommandEncoder) Finish() *CommandBuffer {
	e.ensureOpen()
	e.finished = true
	return &CommandBuffer{Label: e.label, Commands: e.commands}
}

// RenderPassEncoder records commands inside one open render pass.
type RenderPassEncoder struct {
	encoder     *CommandEncoder
	pass        *CmdRenderPass
	hasPipeline bool
	ended       bool
}

func (p *RenderPassEncoder) ensureRecording() {
	if p.ended {
		panic("gpu: render pass used after End")
	}
}

// SetPipeline selects the pipeline for subsequent draws.
func (p *RenderPassEncoder) SetPipeline(pipeline RenderPipeline) {
	p.ensureRecording()
	p.pass.Commands = append(p.pass.Commands, PassSetPipeline{Pipeline: pipeline})
	p.hasPipeline = true
}

// SetBindGroup binds a group at the given index.
func (p *RenderPassEncoder) SetBindGroup(index uint32, group BindGroup) {
	p.ensureRecording()
	p.pass.Commands = append(p.pass.Commands, PassSetBindGroup{Index: index, Group: group})
}

// SetVertexBuffer binds a vertex buffer slot.
func (p *RenderPassEncoder) SetVertexBuffer(slot uint32, buffer Buffer, offset uint64) {
	p.ensureRecording()
	p.pass.Commands = append(p.pass.Commands, PassSetVertexBuffer{Slot: slot, Buffer: buffer, Offset: offset})
}

// SetIndexBuffer binds the index buffer.
func (p *RenderPassEncoder) SetIndexBuffer(buffer Buffer, offset uint64) {
	p.ensureRecording()
	p.pass.Commands = append(p.pass.Commands, PassSetIndexBuffer{Buffer: buffer, Offset: offset})
}

// SetScissorRect restricts rasterization to a rectangle.
func (p *RenderPassEncoder) SetScissorRect(x, y, width, height uint32) {
	p.ensureRecording()
	p.pass.Commands = append(p.pass.Commands, PassSetScissorRect{X: x, Y: y, Width: width, Height: height})
}

// SetViewport sets the viewport transform.
func (p *RenderPassEncoder) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	p.ensureRecording()
	p.pass.Commands = append(p.pass.Commands, PassSetViewport{
		X: x, Y: y, Width: width, Height: height, MinDepth: minDepth, MaxDepth: maxDepth,
	})
}

// SetPushConstants stores push constant bytes for subsequent draws.
// The data is copied; callers may reuse their scratch buffer.
func (p *RenderPassEncoder) SetPushConstants(stages ShaderStage, offset uint32, data []byte) {
	p.ensureRecording()
	copied := make([]byte, len(data))
	copy(copied, data)
	p.pass.Commands = append(p.pass.Commands, PassSetPushConstants{Stages: stages, Offset: offset, Data: copied})
}

// Draw records a non-indexed draw. A pipeline must be set.
func (p *RenderPassEncoder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.ensureRecording()
	if !p.hasPipeline {
		panic(fmt.Sprintf("gpu: draw without pipeline in pass %q", p.pass.Desc.Label))
	}
	p.pass.Commands = append(p.pass.Commands, PassDraw{
		VertexCount: vertexCount, InstanceCount: instanceCount,
		FirstVertex: firstVertex, FirstInstance: firstInstance,
	})
}

// DrawIndexed records an indexed draw. A pipeline must be set.
func (p *RenderPassEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.ensureRecording()
	if !p.hasPipeline {
		panic(fmt.Sprintf("gpu: draw without pipeline in pass %q", p.pass.Desc.Label))
	}
	p.pass.Commands = append(p.pass.Commands, PassDrawIndexed{
		IndexCount: indexCount, InstanceCount: instanceCount,
		FirstIndex: firstIndex, BaseVertex: baseVertex, FirstInstance: firstInstance,
	})
}

// End closes the pass and returns control to the owning encoder.
func (p *RenderPassEncoder) End() {
	p.ensureRecording()
	p.ended = true
	p.encoder.commands = append(p.encoder.commands, p.pass)
	p.encoder.openPass = nil
}

// DrawCount returns the number of draw commands recorded so far.
// Exposed for tests and frame diagnostics.
func (p *RenderPassEncoder) DrawCount() int {
	n := 0
	for _, c := range p.pass.Commands {
		switch c.(type) {
		case PassDraw, PassDrawIndexed:
			n++
		}
	}
	return n
}
