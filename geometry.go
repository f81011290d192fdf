package korin

// ScreenPosition is a position in logical screen coordinates, measured
// from the top-left corner of the surface.
type ScreenPosition struct {
	X, Y float32
}

// ScreenSize is a size in logical screen coordinates.
type ScreenSize struct {
	Width, Height float32
}

// ScreenClip is an axis-aligned clip rectangle in screen coordinates.
// Min is inclusive, Max is exclusive.
type ScreenClip struct {
	Min, Max ScreenPosition
}

// Offset returns the position shifted by dx, dy.
func (p ScreenPosition) Offset(dx, dy float32) ScreenPosition {
	return ScreenPosition{X: p.X + dx, Y: p.Y + dy}
}

// Contains reports whether p lies inside the clip rectangle.
func (c ScreenClip) Contains(p ScreenPosition) bool {
	return p.X >= c.Min.X && p.X < c.Max.X && p.Y >= c.Min.Y && p.Y < c.Max.Y
}

// Shrink returns the clip rectangle inset by the given amount on all sides.
// A clip shrunk past its own size collapses to an empty rectangle.
func (c ScreenClip) Shrink(by float32) ScreenClip {
	out := ScreenClip{
		Min: ScreenPosition{X: c.Min.X + by, Y: c.Min.Y + by},
		Max: ScreenPosition{X: c.Max.X - by, Y: c.Max.Y - by},
	}
	if out.Max.X < out.Min.X {
		out.Max.X = out.Min.X
	}
	if out.Max.Y < out.Min.Y {
		out.Max.Y = out.Min.Y
	}
	return out
}
