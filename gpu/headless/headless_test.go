package headless

import (
	"testing"

	"github.com/gogpu/korin/gpu"
)

func TestTextureRegionRoundTrip(t *testing.T) {
	device := New()
	defer device.Destroy()

	tex := device.CreateTexture(&gpu.TextureDescriptor{
		Label:  "picker",
		Size:   gpu.Extent3D{Width: 8, Height: 8, DepthOrArrayLayers: 1},
		Format: gpu.TextureFormatRG32Uint,
		Usage:  gpu.TextureUsageRenderAttachment | gpu.TextureUsageCopySrc,
	})
	buf := device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "readback", Size: 8,
		Usage: gpu.BufferUsageCopyDst | gpu.BufferUsageMapRead,
	})

	// Write one texel at (3, 5), copy it out, read it back.
	texel := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04}
	device.Queue().WriteTexture(tex, gpu.Origin3D{X: 3, Y: 5}, gpu.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1}, texel)

	enc := gpu.NewCommandEncoder("picker copy")
	enc.CopyTextureToBuffer(tex, gpu.Origin3D{X: 3, Y: 5}, buf, 0, gpu.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1})
	device.Queue().Submit([]*gpu.CommandBuffer{enc.Finish()})

	var got []byte
	buf.MapReadAsync(0, 8, func(data []byte, err error) {
		if err != nil {
			t.Errorf("map error: %v", err)
		}
		got = data
	})
	device.Poll(true)

	for i := range texel {
		if got[i] != texel[i] {
			t.Fatalf("readback = %v, want %v", got, texel)
		}
	}
}

func TestMapCallbackSeesPrePollContents(t *testing.T) {
	device := New()
	defer device.Destroy()

	buf := device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "cell", Size: 4,
		Usage: gpu.BufferUsageCopyDst | gpu.BufferUsageMapRead,
	})
	device.Queue().WriteBuffer(buf, 0, []byte{1, 0, 0, 0})

	// Register a map, poll, then overwrite: the callback must have seen
	// the value from before the poll, not the later write.
	var seen byte
	buf.MapReadAsync(0, 4, func(data []byte, err error) { seen = data[0] })
	device.Poll(true)
	device.Queue().WriteBuffer(buf, 0, []byte{2, 0, 0, 0})

	if seen != 1 {
		t.Errorf("callback saw %d, want 1", seen)
	}
}

func TestSurfaceLifecycle(t *testing.T) {
	device := New()
	defer device.Destroy()

	surfaceIface, err := device.CreateSurface(&gpu.SurfaceDescriptor{Label: "window", Width: 640, Height: 480})
	if err != nil {
		t.Fatalf("CreateSurface: %v", err)
	}
	surface := surfaceIface.(*Surface)

	if _, err := surface.Acquire(); err == nil {
		t.Error("Acquire on unconfigured surface should fail")
	}

	surface.Configure(&gpu.SurfaceConfiguration{
		Format: surface.PreferredFormat(), Width: 640, Height: 480,
		PresentMode: gpu.PresentModeFifo,
	})

	frame, err := surface.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if got := frame.Texture().Size(); got.Width != 640 || got.Height != 480 {
		t.Errorf("frame size = %v, want 640x480", got)
	}
	frame.Present()
	if surface.Presented() != 1 {
		t.Errorf("Presented = %d, want 1", surface.Presented())
	}

	surface.MarkOutdated()
	if _, err := surface.Acquire(); err != gpu.ErrSurfaceOutdated {
		t.Errorf("Acquire after MarkOutdated = %v, want ErrSurfaceOutdated", err)
	}

	surface.Configure(&gpu.SurfaceConfiguration{
		Format: surface.PreferredFormat(), Width: 800, Height: 600,
		PresentMode: gpu.PresentModeFifo,
	})
	if _, err := surface.Acquire(); err != nil {
		t.Errorf("Acquire after reconfigure: %v", err)
	}
}

func TestSubmissionLog(t *testing.T) {
	device := New()
	defer device.Destroy()
	queue := device.Queue().(*Queue)

	a := gpu.NewCommandEncoder("a").Finish()
	b := gpu.NewCommandEncoder("b").Finish()
	queue.Submit([]*gpu.CommandBuffer{a, b})

	last := queue.LastSubmission()
	if len(last) != 2 || last[0].Label != "a" || last[1].Label != "b" {
		t.Errorf("LastSubmission = %v, want [a b]", last)
	}
	if len(queue.Submissions()) != 1 {
		t.Errorf("Submissions = %d, want 1", len(queue.Submissions()))
	}
}
