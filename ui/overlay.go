package ui

import (
	"github.com/gogpu/korin"
	"github.com/gogpu/korin/graphics"
)

// Layer selects which screen rectangle layer an overlay shape lands
// in. The screen pass composites bottom first, then middle, then the
// interface overlay, then top.
type Layer int

const (
	LayerBottom Layer = iota
	LayerMiddle
	LayerTop
)

// Overlay collects in-world screen rectangles, status bars mostly,
// and flushes them into the frame instruction per layer.
type Overlay struct {
	theme  Theme
	bottom []graphics.RectangleInstruction
	middle []graphics.RectangleInstruction
	top    []graphics.RectangleInstruction
}

// NewOverlay returns an empty overlay with the default theme.
func NewOverlay() *Overlay {
	return &Overlay{theme: DefaultTheme()}
}

func (o *Overlay) layer(layer Layer) *[]graphics.RectangleInstruction {
	switch layer {
	case LayerBottom:
		return &o.bottom
	case LayerMiddle:
		return &o.middle
	default:
		return &o.top
	}
}

// AddRectangle queues one flat rectangle on a layer.
func (o *Overlay) AddRectangle(layer Layer, position korin.ScreenPosition, size korin.ScreenSize, color korin.Color) {
	target := o.layer(layer)
	*target = append(*target, graphics.RectangleInstruction{
		Position: position,
		Size:     size,
		Color:    color,
	})
}

// AddBar queues a value bar: a background rectangle on the layer and
// a fill scaled by current/maximum on top of it.
func (o *Overlay) AddBar(layer Layer, position korin.ScreenPosition, size korin.ScreenSize, color korin.Color, maximum, current float32) {
	o.AddRectangle(layer, position.Offset(-1, -1),
		korin.ScreenSize{Width: size.Width + 2, Height: size.Height + 2}, o.theme.BarBackground)

	fraction := float32(0)
	if maximum > 0 {
		fraction = current / maximum
		if fraction > 1 {
			fraction = 1
		} else if fraction < 0 {
			fraction = 0
		}
	}
	o.AddRectangle(layer, position,
		korin.ScreenSize{Width: size.Width * fraction, Height: size.Height}, color)
}

// Flush appends the queued rectangles to the instruction's screen
// layers and clears the overlay for the next frame.
func (o *Overlay) Flush(instruction *graphics.RenderInstruction) {
	instruction.BottomRectangles = append(instruction.BottomRectangles, o.bottom...)
	instruction.MiddleRectangles = append(instruction.MiddleRectangles, o.middle...)
	instruction.TopRectangles = append(instruction.TopRectangles, o.top...)

	o.bottom = o.bottom[:0]
	o.middle = o.middle[:0]
	o.top = o.top[:0]
}
