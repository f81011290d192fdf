package graphics

import (
	"testing"

	"github.com/gogpu/korin/gpu"
)

func TestChoosePresentMode(t *testing.T) {
	full := []gpu.PresentMode{
		gpu.PresentModeFifo, gpu.PresentModeFifoRelaxed,
		gpu.PresentModeMailbox, gpu.PresentModeImmediate,
	}
	fifoOnly := []gpu.PresentMode{gpu.PresentModeFifo}

	cases := []struct {
		name      string
		vsync     bool
		triple    bool
		supported []gpu.PresentMode
		want      gpu.PresentMode
	}{
		{"no vsync prefers immediate", false, false, full, gpu.PresentModeImmediate},
		{"triple buffering prefers mailbox", true, true, full, gpu.PresentModeMailbox},
		{"vsync falls back to fifo", true, false, full, gpu.PresentModeFifo},
		{"no vsync without immediate uses relaxed", false, false, []gpu.PresentMode{gpu.PresentModeFifo, gpu.PresentModeFifoRelaxed}, gpu.PresentModeFifoRelaxed},
		{"fifo is the guaranteed fallback", false, true, fifoOnly, gpu.PresentModeFifo},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := choosePresentMode(tc.vsync, tc.triple, tc.supported); got != tc.want {
				t.Errorf("choosePresentMode(%v, %v) = %v, want %v", tc.vsync, tc.triple, got, tc.want)
			}
		})
	}
}

func TestShadowDetailSizes(t *testing.T) {
	if ShadowDetailLow.DirectionalSize() != 512 || ShadowDetailUltra.DirectionalSize() != 4096 {
		t.Error("directional shadow sizes out of range")
	}
	if ShadowDetailLow.PointSize() != 64 || ShadowDetailUltra.PointSize() != 512 {
		t.Error("point shadow sizes out of range")
	}
}

func TestSurfaceInvalidation(t *testing.T) {
	_, device := newTestEngine(t)

	raw, err := device.CreateSurface(&gpu.SurfaceDescriptor{Width: 32, Height: 32})
	if err != nil {
		t.Fatalf("CreateSurface: %v", err)
	}
	s := newSurface(raw, 32, 32, true, false)
	if s.IsValid() {
		t.Fatal("fresh surface should require configuration")
	}
	s.Reconfigure()
	if !s.IsValid() {
		t.Fatal("surface invalid after reconfigure")
	}

	s.SetSize(32, 32)
	s.SetVSync(true)
	if !s.IsValid() {
		t.Error("no-op updates should not invalidate")
	}

	s.SetSize(64, 48)
	if s.IsValid() {
		t.Error("resize should invalidate")
	}
	s.Reconfigure()

	s.SetTripleBuffering(true)
	if s.IsValid() {
		t.Error("buffering change should invalidate")
	}
}
