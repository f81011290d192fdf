package graphics

import (
	"github.com/gogpu/korin"
	"github.com/gogpu/korin/gpu"
)

// Surface wraps the presentable target with the validity tracking the
// engine needs: resize, vsync and triple-buffering changes mark it
// invalid, and it must be reconfigured against the same device before
// the next acquire.
type Surface struct {
	raw    gpu.Surface
	format gpu.TextureFormat

	width  uint32
	height uint32

	vsync           bool
	tripleBuffering bool

	valid bool
	info  PresentModeInfo
}

// newSurface wraps a freshly created gpu.Surface. The surface starts
// invalid; the first WaitForNextFrame configures it.
func newSurface(raw gpu.Surface, width, height uint32, vsync, tripleBuffering bool) *Surface {
	return &Surface{
		raw:             raw,
		format:          raw.PreferredFormat(),
		width:           width,
		height:          height,
		vsync:           vsync,
		tripleBuffering: tripleBuffering,
	}
}

// Format returns the negotiated pixel format.
func (s *Surface) Format() gpu.TextureFormat { return s.format }

// IsValid reports whether the surface can acquire without reconfiguring.
func (s *Surface) IsValid() bool { return s.valid }

// Invalidate forces a reconfigure before the next acquire.
func (s *Surface) Invalidate() { s.valid = false }

// SetSize propagates new pixel dimensions, invalidating the surface.
func (s *Surface) SetSize(width, height uint32) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.valid = false
}

// Size returns the current pixel dimensions.
func (s *Surface) Size() (width, height uint32) { return s.width, s.height }

// SetVSync updates the vsync preference, invalidating the surface.
func (s *Surface) SetVSync(enabled bool) {
	if s.vsync == enabled {
		return
	}
	s.vsync = enabled
	s.valid = false
}

// SetTripleBuffering updates the buffering preference, invalidating the
// surface.
func (s *Surface) SetTripleBuffering(enabled bool) {
	if s.tripleBuffering == enabled {
		return
	}
	s.tripleBuffering = enabled
	s.valid = false
}

// PresentModeInfo returns the presentation configuration resolved by the
// last reconfigure.
func (s *Surface) PresentModeInfo() PresentModeInfo { return s.info }

// Reconfigure re-creates the swap chain against the same device using
// the current size and presentation preferences.
func (s *Surface) Reconfigure() {
	mode := choosePresentMode(s.vsync, s.tripleBuffering, s.raw.PresentModes())
	s.raw.Configure(&gpu.SurfaceConfiguration{
		Format:      s.format,
		Width:       s.width,
		Height:      s.height,
		PresentMode: mode,
	})
	s.info = PresentModeInfo{Mode: mode, VSync: s.vsync, TripleBuffering: s.tripleBuffering}
	s.valid = true

	korin.Logger().Debug("graphics: surface configured",
		"width", s.width, "height", s.height, "mode", mode.String())
}

// Acquire returns the next presentable frame. An outdated surface is
// absorbed by one reconfigure; any other failure is unexpected.
func (s *Surface) Acquire() (gpu.Frame, error) {
	frame, err := s.raw.Acquire()
	if err == gpu.ErrSurfaceOutdated {
		s.valid = false
		s.Reconfigure()
		return s.raw.Acquire()
	}
	return frame, err
}
