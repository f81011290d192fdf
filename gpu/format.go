package gpu

// TextureFormat identifies the pixel format of a texture.
//
// The set is intentionally small: the formats the renderer's attachments
// and sampled textures actually use. Backends translate these to their
// native equivalents.
type TextureFormat int

const (
	// TextureFormatUndefined is the zero value; creating a texture with
	// it is a contract violation.
	TextureFormatUndefined TextureFormat = iota

	// TextureFormatRGBA8Unorm is 8-bit-per-channel RGBA.
	TextureFormatRGBA8Unorm

	// TextureFormatRGBA8UnormSrgb is RGBA8 with sRGB encoding.
	TextureFormatRGBA8UnormSrgb

	// TextureFormatBGRA8Unorm is the common swap-chain format.
	TextureFormatBGRA8Unorm

	// TextureFormatBGRA8UnormSrgb is BGRA8 with sRGB encoding.
	TextureFormatBGRA8UnormSrgb

	// TextureFormatRG32Uint holds two 32-bit unsigned integers per texel.
	// The picker target uses it to store a 64-bit object identifier.
	TextureFormatRG32Uint

	// TextureFormatR32Uint holds one 32-bit unsigned integer per texel.
	TextureFormatR32Uint

	// TextureFormatDepth32Float is the depth attachment format.
	TextureFormatDepth32Float
)

// BytesPerPixel returns the texel size in bytes, or 0 for undefined.
func (f TextureFormat) BytesPerPixel() uint32 {
	switch f {
	case TextureFormatRGBA8Unorm, TextureFormatRGBA8UnormSrgb,
		TextureFormatBGRA8Unorm, TextureFormatBGRA8UnormSrgb,
		TextureFormatR32Uint, TextureFormatDepth32Float:
		return 4
	case TextureFormatRG32Uint:
		return 8
	default:
		return 0
	}
}

// IsDepth reports whether the format is a depth format.
func (f TextureFormat) IsDepth() bool {
	return f == TextureFormatDepth32Float
}

// String returns the WebGPU-style name of the format.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGBA8Unorm:
		return "rgba8unorm"
	case TextureFormatRGBA8UnormSrgb:
		return "rgba8unorm-srgb"
	case TextureFormatBGRA8Unorm:
		return "bgra8unorm"
	case TextureFormatBGRA8UnormSrgb:
		return "bgra8unorm-srgb"
	case TextureFormatRG32Uint:
		return "rg32uint"
	case TextureFormatR32Uint:
		return "r32uint"
	case TextureFormatDepth32Float:
		return "depth32float"
	default:
		return "undefined"
	}
}
