package gpu_test

import (
	"testing"

	"github.com/gogpu/korin/gpu"
	"github.com/gogpu/korin/gpu/headless"
)

func TestStagingBeltWriteAndSubmit(t *testing.T) {
	device := headless.New()
	defer device.Destroy()

	dst := device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "uniforms", Size: 64,
		Usage: gpu.BufferUsageCopyDst | gpu.BufferUsageMapRead,
	})

	belt := gpu.NewStagingBelt(device, 256)
	belt.Recall()

	enc := gpu.NewCommandEncoder("prepare")
	belt.Write(enc, dst, 0, []byte{9, 8, 7, 6})
	belt.Write(enc, dst, 32, []byte{1, 2, 3, 4})
	belt.Finish()

	device.Queue().Submit([]*gpu.CommandBuffer{enc.Finish()})

	var head, tail []byte
	dst.MapReadAsync(0, 4, func(data []byte, err error) { head = data })
	dst.MapReadAsync(32, 4, func(data []byte, err error) { tail = data })
	device.Poll(true)

	if head[0] != 9 || head[3] != 6 {
		t.Errorf("head = %v, want [9 8 7 6]", head)
	}
	if tail[0] != 1 || tail[3] != 4 {
		t.Errorf("tail = %v, want [1 2 3 4]", tail)
	}
}

func TestStagingBeltReusesChunksAcrossFrames(t *testing.T) {
	device := headless.New()
	defer device.Destroy()

	dst := device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "dst", Size: 1024, Usage: gpu.BufferUsageCopyDst,
	})
	belt := gpu.NewStagingBelt(device, 256)

	// Three frames with identical write patterns must converge on a
	// stable chunk count: frame N reuses what frame N-1 recalled.
	for frame := 0; frame < 3; frame++ {
		belt.Recall()
		enc := gpu.NewCommandEncoder("prepare")
		belt.Write(enc, dst, 0, make([]byte, 200))
		belt.Write(enc, dst, 256, make([]byte, 200))
		belt.Finish()
		device.Queue().Submit([]*gpu.CommandBuffer{enc.Finish()})
		device.Poll(true)
	}

	// 200+200 bytes never fit one 256-byte chunk, so two chunks are
	// needed, and exactly two after reuse kicks in.
	if got := belt.ChunkCount(); got != 2 {
		t.Errorf("ChunkCount = %d, want 2 (deterministic reuse)", got)
	}
}

func TestStagingBeltOversizedWrite(t *testing.T) {
	device := headless.New()
	defer device.Destroy()

	dst := device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "dst", Size: 4096, Usage: gpu.BufferUsageCopyDst,
	})
	belt := gpu.NewStagingBelt(device, 64)

	enc := gpu.NewCommandEncoder("prepare")
	belt.Write(enc, dst, 0, make([]byte, 1000)) // larger than a chunk
	belt.Finish()
	device.Queue().Submit([]*gpu.CommandBuffer{enc.Finish()})

	if got := belt.ChunkCount(); got != 1 {
		t.Errorf("ChunkCount = %d, want 1 dedicated oversized chunk", got)
	}
}

func TestStagingBeltEmptyWriteIsNoop(t *testing.T) {
	device := headless.New()
	defer device.Destroy()

	dst := device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "dst", Size: 16, Usage: gpu.BufferUsageCopyDst,
	})
	belt := gpu.NewStagingBelt(device, 64)

	enc := gpu.NewCommandEncoder("prepare")
	belt.Write(enc, dst, 0, nil)
	buf := enc.Finish()

	if len(buf.Commands) != 0 {
		t.Errorf("empty write recorded %d commands, want 0", len(buf.Commands))
	}
	if belt.ChunkCount() != 0 {
		t.Errorf("empty write allocated a chunk")
	}
}
