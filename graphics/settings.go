package graphics

import "github.com/gogpu/korin/gpu"

// NumberOfPointLightsWithShadows is the fixed maximum number of
// shadow-casting point lights per frame. Instructions exceeding it are a
// contract violation and abort the frame before any recording.
const NumberOfPointLightsWithShadows = 3

// ShadowDetail selects the directional shadow map resolution.
type ShadowDetail int

const (
	ShadowDetailLow ShadowDetail = iota
	ShadowDetailMedium
	ShadowDetailHigh
	ShadowDetailUltra
)

// DirectionalSize returns the directional shadow map edge length.
func (d ShadowDetail) DirectionalSize() uint32 {
	switch d {
	case ShadowDetailLow:
		return 512
	case ShadowDetailMedium:
		return 1024
	case ShadowDetailHigh:
		return 2048
	default:
		return 4096
	}
}

// PointSize returns the point-light shadow cube face edge length.
func (d ShadowDetail) PointSize() uint32 {
	switch d {
	case ShadowDetailLow:
		return 64
	case ShadowDetailMedium:
		return 128
	case ShadowDetailHigh:
		return 256
	default:
		return 512
	}
}

func (d ShadowDetail) String() string {
	switch d {
	case ShadowDetailLow:
		return "low"
	case ShadowDetailMedium:
		return "medium"
	case ShadowDetailHigh:
		return "high"
	default:
		return "ultra"
	}
}

// TextureSamplerType selects the sampler used for world textures.
// Changing it triggers a sampler-only update, never a context rebuild.
type TextureSamplerType int

const (
	TextureSamplerNearest TextureSamplerType = iota
	TextureSamplerLinear
	TextureSamplerAnisotropic4
	TextureSamplerAnisotropic8
	TextureSamplerAnisotropic16
)

// anisotropy returns the max anisotropy, 0 when not anisotropic.
func (t TextureSamplerType) anisotropy() uint16 {
	switch t {
	case TextureSamplerAnisotropic4:
		return 4
	case TextureSamplerAnisotropic8:
		return 8
	case TextureSamplerAnisotropic16:
		return 16
	default:
		return 0
	}
}

// LimitFramerate caps CPU-side frame submission.
type LimitFramerate struct {
	// Enabled turns the limiter on.
	Enabled bool
	// Rate is the target frames per second when enabled.
	Rate uint32
}

// PresentModeInfo is the resolved presentation configuration of the
// surface after vsync and triple-buffering preferences are matched
// against the surface's capabilities.
type PresentModeInfo struct {
	Mode            gpu.PresentMode
	VSync           bool
	TripleBuffering bool
}

// choosePresentMode resolves user preferences against the modes the
// surface supports. Fifo is the guaranteed fallback.
func choosePresentMode(vsync, tripleBuffering bool, supported []gpu.PresentMode) gpu.PresentMode {
	has := func(m gpu.PresentMode) bool {
		for _, s := range supported {
			if s == m {
				return true
			}
		}
		return false
	}

	if !vsync && has(gpu.PresentModeImmediate) {
		return gpu.PresentModeImmediate
	}
	if tripleBuffering && has(gpu.PresentModeMailbox) {
		return gpu.PresentModeMailbox
	}
	if !vsync && has(gpu.PresentModeFifoRelaxed) {
		return gpu.PresentModeFifoRelaxed
	}
	return gpu.PresentModeFifo
}

// RenderSettings are the per-frame toggles carried by the instruction.
// Lighting contributions are individually gated; water lighting is part
// of the fixed compositing contract and has no flag.
type RenderSettings struct {
	ShowAmbientLight     bool
	ShowDirectionalLight bool
	ShowPointLights      bool
	ShowIndicator        bool

	// Debug overlays.
	ShowPickerMarker    bool
	ShowBoundingBoxes   bool
	ShowDebugCircles    bool
	ShowDebugRectangles bool
	ShowBufferOverlay   bool
}

// DefaultRenderSettings enables all regular lighting contributions and
// no debug overlays.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		ShowAmbientLight:     true,
		ShowDirectionalLight: true,
		ShowPointLights:      true,
		ShowIndicator:        true,
	}
}
