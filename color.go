package korin

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in the range [0, 1].
// It is the color type carried by render instructions; conversion to
// packed GPU formats happens in the drawers.
type Color struct {
	R, G, B, A float32
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	return Color{
		R: float32(r) / 65535,
		G: float32(g) / 65535,
		B: float32(b) / 65535,
		A: float32(a) / 65535,
	}
}

// Color converts to the standard color.Color interface.
func (c Color) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(float64(c.R) * 255)),
		G: uint8(clamp255(float64(c.G) * 255)),
		B: uint8(clamp255(float64(c.B) * 255)),
		A: uint8(clamp255(float64(c.A) * 255)),
	}
}

// Scaled returns the color with all components multiplied by f.
// Used for fade-in and distance attenuation.
func (c Color) Scaled(f float32) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A * f}
}

// Packed returns the color packed as four float32 values, the layout
// uniform buffers expect.
func (c Color) Packed() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

func clamp255(v float64) float64 {
	return math.Max(0, math.Min(255, math.Round(v)))
}

// Common colors.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{0, 0, 0, 0}
)
