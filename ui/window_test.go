package ui

import (
	"testing"

	"github.com/gogpu/korin"
	"github.com/gogpu/korin/graphics"
)

func available(width, height float32) korin.ScreenSize {
	return korin.ScreenSize{Width: width, Height: height}
}

func TestWindowBuilderClampsWidth(t *testing.T) {
	constraint := SizeConstraint{MinWidth: 200, BaseWidth: 250, MaxWidth: 300}

	w := NewWindowBuilder().WithSize(constraint).Build(available(800, 600))
	if w.Size().Width != 250 {
		t.Errorf("width = %v, want base 250", w.Size().Width)
	}

	w = NewWindowBuilder().WithSize(SizeConstraint{MinWidth: 200, BaseWidth: 50, MaxWidth: 300}).Build(available(800, 600))
	if w.Size().Width != 200 {
		t.Errorf("width = %v, want minimum 200", w.Size().Width)
	}

	w = NewWindowBuilder().WithSize(SizeConstraint{MinWidth: 200, BaseWidth: 500, MaxWidth: 300}).Build(available(800, 600))
	if w.Size().Width != 300 {
		t.Errorf("width = %v, want maximum 300", w.Size().Width)
	}

	w = NewWindowBuilder().WithSize(constraint).Build(available(220, 600))
	if w.Size().Width != 220 {
		t.Errorf("width = %v, want clamped to the available 220", w.Size().Width)
	}
}

func TestWindowBuilderCentersWindow(t *testing.T) {
	w := NewWindowBuilder().
		WithSize(SizeConstraint{MinWidth: 100, BaseWidth: 200, MaxWidth: 200}).
		Build(available(800, 600))

	if w.Position().X != 300 {
		t.Errorf("x = %v, want centered at 300", w.Position().X)
	}
}

// fixedElement is a non-focusable spacer for focus tests.
type fixedElement struct{}

func (fixedElement) Height() float32             { return 10 }
func (fixedElement) Focusable() bool             { return false }
func (fixedElement) Click() (ClickAction, Event) { return ClickNone, nil }
func (fixedElement) Render(*[]graphics.RectangleInstruction, korin.ScreenPosition, float32, bool) {
}

func TestWindowBuilderStacksElementHeights(t *testing.T) {
	w := NewWindowBuilder().
		WithSize(SizeConstraint{MinWidth: 100, BaseWidth: 200, MaxWidth: 200}).
		WithElements(fixedElement{}, NewButton("ok")).
		Build(available(800, 600))

	want := titleBarHeight + 2*windowPadding + fixedElement{}.Height() + elementGap + elementHeight
	if w.Size().Height != want {
		t.Errorf("height = %v, want %v", w.Size().Height, want)
	}
}

func TestWindowFocusSkipsAndWraps(t *testing.T) {
	first := NewButton("first")
	second := NewButton("second")
	w := NewWindowBuilder().
		WithElements(fixedElement{}, first, fixedElement{}, second).
		Build(available(800, 600))

	if w.FocusedElement() != Element(first) {
		t.Fatal("initial focus not on the first focusable element")
	}

	w.FocusNext()
	if w.FocusedElement() != Element(second) {
		t.Fatal("focus did not skip the spacer")
	}

	w.FocusNext()
	if w.FocusedElement() != Element(first) {
		t.Fatal("focus did not wrap forward")
	}

	w.FocusPrevious()
	if w.FocusedElement() != Element(second) {
		t.Fatal("focus did not wrap backward")
	}
}

func TestWindowClickActivatesElementUnderCursor(t *testing.T) {
	var clicked bool
	button := NewButton("go").WithAction(func() (ClickAction, Event) {
		clicked = true
		return ClickEmit, CloseWindowEvent{}
	})
	w := NewWindowBuilder().
		WithSize(SizeConstraint{MinWidth: 100, BaseWidth: 200, MaxWidth: 200}).
		WithElements(NewButton("other"), button).
		Build(available(800, 600))

	// Second element row: below title bar, padding and the first row.
	inside := w.Position().Offset(10, titleBarHeight+windowPadding+elementHeight+elementGap+1)
	events := w.Click(inside)

	if !clicked {
		t.Fatal("element under cursor not activated")
	}
	if len(events) != 1 {
		t.Fatalf("events = %v, want the close event", events)
	}
	if w.FocusedElement() != Element(button) {
		t.Error("click did not move focus")
	}

	if events := w.Click(korin.ScreenPosition{X: -50, Y: -50}); events != nil {
		t.Errorf("click outside produced events: %v", events)
	}
}

func TestInputFieldEditing(t *testing.T) {
	field := NewInputField("name", 4, false)

	for _, r := range "abcdef" {
		field.Insert(r)
	}
	if field.Text() != "abcd" {
		t.Errorf("text = %q, want capped at %q", field.Text(), "abcd")
	}

	field.Backspace()
	if field.Text() != "abc" {
		t.Errorf("text after backspace = %q", field.Text())
	}

	field.SetText("overlong text well past four")
	if field.Text() != "over" {
		t.Errorf("SetText did not truncate: %q", field.Text())
	}
}

func TestButtonDisabledIgnoresClicks(t *testing.T) {
	enabled := false
	button := NewButton("go").
		WithDisabledWhen(func() bool { return !enabled }).
		WithEvent(CloseWindowEvent{})

	if action, _ := button.Click(); action != ClickNone {
		t.Error("disabled button activated")
	}

	enabled = true
	action, event := button.Click()
	if action != ClickEmit || event == nil {
		t.Error("enabled button did not emit")
	}
}

func TestOverlayFlushesLayersInOrder(t *testing.T) {
	overlay := NewOverlay()
	overlay.AddRectangle(LayerTop, korin.ScreenPosition{}, korin.ScreenSize{Width: 1, Height: 1}, korin.ColorWhite)
	overlay.AddBar(LayerBottom, korin.ScreenPosition{X: 10}, korin.ScreenSize{Width: 40, Height: 5}, korin.ColorWhite, 100, 25)
	overlay.AddRectangle(LayerMiddle, korin.ScreenPosition{}, korin.ScreenSize{Width: 2, Height: 2}, korin.ColorWhite)

	var instruction graphics.RenderInstruction
	overlay.Flush(&instruction)

	if len(instruction.BottomRectangles) != 2 {
		t.Errorf("bottom rectangles = %d, want bar background and fill", len(instruction.BottomRectangles))
	}
	if len(instruction.MiddleRectangles) != 1 || len(instruction.TopRectangles) != 1 {
		t.Error("middle and top layers not flushed")
	}

	fill := instruction.BottomRectangles[1]
	if fill.Size.Width != 10 {
		t.Errorf("bar fill width = %v, want a quarter of 40", fill.Size.Width)
	}

	overlay.Flush(&instruction)
	if len(instruction.BottomRectangles) != 2 {
		t.Error("flush did not clear the overlay")
	}
}
