package ui

import (
	"github.com/gogpu/korin"
	"github.com/gogpu/korin/graphics"
)

// SizeConstraint bounds a window's size. Width is clamped between the
// minimum and maximum around the base width; height grows with the
// content up to a fraction of the available space.
type SizeConstraint struct {
	MinWidth          float32
	BaseWidth         float32
	MaxWidth          float32
	MaxHeightFraction float32
}

// Window is one interface window with a vertical element stack.
type Window struct {
	title    string
	class    string
	theme    Theme
	position korin.ScreenPosition
	size     korin.ScreenSize
	elements []Element
	focus    int
}

// WindowBuilder assembles a window. Use NewWindowBuilder and finish
// with Build.
type WindowBuilder struct {
	title    string
	class    string
	theme    Theme
	size     SizeConstraint
	elements []Element
}

// NewWindowBuilder returns a builder with the default theme.
func NewWindowBuilder() *WindowBuilder {
	return &WindowBuilder{theme: DefaultTheme()}
}

// WithTitle sets the title bar text.
func (b *WindowBuilder) WithTitle(title string) *WindowBuilder {
	b.title = title
	return b
}

// WithClass sets the window class used to deduplicate windows.
func (b *WindowBuilder) WithClass(class string) *WindowBuilder {
	b.class = class
	return b
}

// WithSize sets the size constraint.
func (b *WindowBuilder) WithSize(size SizeConstraint) *WindowBuilder {
	b.size = size
	return b
}

// WithTheme overrides the default colors.
func (b *WindowBuilder) WithTheme(theme Theme) *WindowBuilder {
	b.theme = theme
	return b
}

// WithElements sets the element stack, top to bottom.
func (b *WindowBuilder) WithElements(elements ...Element) *WindowBuilder {
	b.elements = elements
	return b
}

// Build lays the window out inside the available space and centers it.
func (b *WindowBuilder) Build(available korin.ScreenSize) *Window {
	width := b.size.BaseWidth
	if width < b.size.MinWidth {
		width = b.size.MinWidth
	}
	if b.size.MaxWidth > 0 && width > b.size.MaxWidth {
		width = b.size.MaxWidth
	}
	if width > available.Width {
		width = available.Width
	}

	height := titleBarHeight + windowPadding
	for _, element := range b.elements {
		height += element.Height() + elementGap
	}
	height += windowPadding - elementGap
	if b.size.MaxHeightFraction > 0 {
		if limit := available.Height * b.size.MaxHeightFraction; height > limit {
			height = limit
		}
	}

	window := &Window{
		title:    b.title,
		class:    b.class,
		theme:    b.theme,
		size:     korin.ScreenSize{Width: width, Height: height},
		elements: b.elements,
		focus:    -1,
	}
	window.position = korin.ScreenPosition{
		X: (available.Width - width) / 2,
		Y: (available.Height - height) / 2,
	}
	window.FocusNext()
	return window
}

// Title returns the title bar text.
func (w *Window) Title() string { return w.title }

// Class returns the window class.
func (w *Window) Class() string { return w.class }

// Size returns the laid-out size.
func (w *Window) Size() korin.ScreenSize { return w.size }

// Position returns the top-left corner.
func (w *Window) Position() korin.ScreenPosition { return w.position }

// SetPosition moves the window.
func (w *Window) SetPosition(position korin.ScreenPosition) {
	w.position = position
}

// FocusedElement returns the element holding keyboard focus, or nil.
func (w *Window) FocusedElement() Element {
	if w.focus < 0 || w.focus >= len(w.elements) {
		return nil
	}
	return w.elements[w.focus]
}

// FocusNext moves focus to the next focusable element, wrapping.
func (w *Window) FocusNext() {
	w.moveFocus(1)
}

// FocusPrevious moves focus to the previous focusable element,
// wrapping.
func (w *Window) FocusPrevious() {
	w.moveFocus(-1)
}

func (w *Window) moveFocus(direction int) {
	if len(w.elements) == 0 {
		return
	}
	index := w.focus
	for range w.elements {
		index += direction
		if index < 0 {
			index = len(w.elements) - 1
		} else if index >= len(w.elements) {
			index = 0
		}
		if w.elements[index].Focusable() {
			w.focus = index
			return
		}
	}
}

// Activate clicks the focused element and returns the emitted events.
// Focus-move actions are applied here, so an input field submit chains
// to the next field.
func (w *Window) Activate() []Event {
	element := w.FocusedElement()
	if element == nil {
		return nil
	}

	action, event := element.Click()
	switch action {
	case ClickEmit:
		if event != nil {
			return []Event{event}
		}
	case ClickFocusNext:
		w.FocusNext()
	case ClickFocusPrevious:
		w.FocusPrevious()
	}
	return nil
}

// Insert forwards a typed rune to the focused element.
func (w *Window) Insert(r rune) {
	if receiver, ok := w.FocusedElement().(TextReceiver); ok {
		receiver.Insert(r)
	}
}

// Backspace forwards a backspace to the focused element.
func (w *Window) Backspace() {
	if receiver, ok := w.FocusedElement().(TextReceiver); ok {
		receiver.Backspace()
	}
}

// Click focuses and activates the element under position. Clicks
// outside every element only move window focus.
func (w *Window) Click(position korin.ScreenPosition) []Event {
	y := w.position.Y + titleBarHeight + windowPadding
	for index, element := range w.elements {
		bottom := y + element.Height()
		inside := position.X >= w.position.X && position.X < w.position.X+w.size.Width &&
			position.Y >= y && position.Y < bottom
		if inside && element.Focusable() {
			w.focus = index
			return w.Activate()
		}
		y = bottom + elementGap
	}
	return nil
}

// Contains reports whether position lies inside the window.
func (w *Window) Contains(position korin.ScreenPosition) bool {
	return position.X >= w.position.X && position.X < w.position.X+w.size.Width &&
		position.Y >= w.position.Y && position.Y < w.position.Y+w.size.Height
}

// Render appends the window's rectangles to the interface pass
// content: background, title bar, then the elements top to bottom.
func (w *Window) Render(instruction *graphics.RenderInstruction) {
	instruction.InterfaceRectangles = append(instruction.InterfaceRectangles,
		graphics.RectangleInstruction{
			Position: w.position,
			Size:     w.size,
			Color:    w.theme.WindowBackground,
		},
		graphics.RectangleInstruction{
			Position: w.position,
			Size:     korin.ScreenSize{Width: w.size.Width, Height: titleBarHeight},
			Color:    w.theme.TitleBar,
		},
	)

	y := w.position.Y + titleBarHeight + windowPadding
	width := w.size.Width - 2*windowPadding
	for index, element := range w.elements {
		element.Render(&instruction.InterfaceRectangles,
			korin.ScreenPosition{X: w.position.X + windowPadding, Y: y},
			width, index == w.focus)
		y += element.Height() + elementGap
	}
}
