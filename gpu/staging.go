package gpu

import "fmt"

// DefaultStagingChunkSize is the allocation granularity of the belt.
const DefaultStagingChunkSize = 1 << 20

// stagingChunk is one host-visible upload buffer with a bump allocator.
type stagingChunk struct {
	buffer Buffer
	offset uint64
}

// StagingBelt is a rotating pool of CPU-to-GPU upload buffers.
//
// The belt is exclusively owned by the frame orchestrator and follows its
// frame rhythm: Recall at frame start reclaims chunks whose GPU reads have
// finished, Write stages data during the upload walk, Finish closes the
// active chunks once all uploads are recorded. Chunk reuse is fully
// deterministic given a fixed upload order, because allocation is a bump
// pointer over an ordered chunk list.
//
// Reclamation relies on the orchestrator's poll-and-wait before submit:
// by the time Recall runs at the start of frame N, the device has
// finished every read submitted in frame N-1, so all finished chunks are
// safe to reuse. The belt itself never blocks.
//
// Not safe for concurrent use; the frame protocol serializes all access.
type StagingBelt struct {
	device    Device
	chunkSize uint64

	active   []*stagingChunk // receiving writes this frame
	inFlight []*stagingChunk // closed, GPU may still read
	free     []*stagingChunk // reclaimed, ready for reuse

	allocated int // total chunks ever created, for diagnostics
}

// NewStagingBelt creates a belt allocating chunks of chunkSize bytes.
// A chunkSize of 0 selects DefaultStagingChunkSize.
func NewStagingBelt(device Device, chunkSize uint64) *StagingBelt {
	if chunkSize == 0 {
		chunkSize = DefaultStagingChunkSize
	}
	return &StagingBelt{device: device, chunkSize: chunkSize}
}

// Recall reclaims all chunks whose submissions have completed. Called at
// the start of a frame, after the previous frame's poll-and-wait.
func (b *StagingBelt) Recall() {
	for _, c := range b.inFlight {
		c.offset = 0
	}
	b.free = append(b.free, b.inFlight...)
	b.inFlight = b.inFlight[:0]
}

// Write stages data and records a copy into dst at dstOffset on the
// given encoder. Oversized writes get a dedicated chunk.
func (b *StagingBelt) Write(encoder *CommandEncoder, dst Buffer, dstOffset uint64, data []byte) {
	if len(data) == 0 {
		return
	}
	size := uint64(len(data))
	chunk := b.chunkFor(size)
	chunk.buffer.WriteAt(chunk.offset, data)
	encoder.CopyBufferToBuffer(chunk.buffer, chunk.offset, dst, dstOffset, size)
	chunk.offset += align(size, 4)
}

// WriteTexture stages tightly packed texel data and records a copy into
// the given texture region.
func (b *StagingBelt) WriteTexture(encoder *CommandEncoder, dst Texture, origin Origin3D, extent Extent3D, data []byte) {
	if len(data) == 0 {
		return
	}
	size := uint64(len(data))
	chunk := b.chunkFor(size)
	chunk.buffer.WriteAt(chunk.offset, data)
	encoder.CopyBufferToTexture(chunk.buffer, chunk.offset, dst, origin, extent)
	chunk.offset += align(size, 4)
}

// chunkFor returns an active chunk with room for size bytes, reusing a
// free chunk or allocating a new one when none fits.
func (b *StagingBelt) chunkFor(size uint64) *stagingChunk {
	for _, c := range b.active {
		if c.offset+size <= c.buffer.Size() {
			return c
		}
	}

	// Prefer the oldest free chunk that fits; allocation order over an
	// ordered free list keeps reuse deterministic.
	for i, c := range b.free {
		if size <= c.buffer.Size() {
			b.free = append(b.free[:i], b.free[i+1:]...)
			b.active = append(b.active, c)
			return c
		}
	}

	allocSize := b.chunkSize
	if size > allocSize {
		allocSize = align(size, 4)
	}
	b.allocated++
	c := &stagingChunk{
		buffer: b.device.CreateBuffer(&BufferDescriptor{
			Label: fmt.Sprintf("staging chunk %d", b.allocated),
			Size:  allocSize,
			Usage: BufferUsageMapWrite | BufferUsageCopySrc,
		}),
	}
	b.active = append(b.active, c)
	return c
}

// Finish closes the active chunks. Their contents may still be read by
// the GPU until the frame's submission completes.
func (b *StagingBelt) Finish() {
	b.inFlight = append(b.inFlight, b.active...)
	b.active = b.active[:0]
}

// ChunkCount returns the total number of chunks the belt has allocated.
func (b *StagingBelt) ChunkCount() int { return b.allocated }

func align(v, to uint64) uint64 {
	return (v + to - 1) &^ (to - 1)
}
