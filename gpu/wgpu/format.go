package wgpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/korin/gpu"
)

// translateSurfaceFormat maps a negotiated gputypes surface format onto
// the renderer's format enum. Unknown formats fall back to BGRA8Unorm,
// the format every platform swap chain supports.
func translateSurfaceFormat(f gputypes.TextureFormat) gpu.TextureFormat {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return gpu.TextureFormatRGBA8Unorm
	case gputypes.TextureFormatBGRA8Unorm:
		return gpu.TextureFormatBGRA8Unorm
	default:
		return gpu.TextureFormatBGRA8Unorm
	}
}
