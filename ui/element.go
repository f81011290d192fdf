// Package ui is a small retained window system. Windows stack their
// elements vertically and render into flat rectangle instructions; the
// screen overlay composites in the fixed bottom, middle, top layer
// order.
package ui

import (
	"github.com/gogpu/korin"
	"github.com/gogpu/korin/graphics"
)

// Event is something an element reports back to the application.
type Event interface {
	isEvent()
}

// LoginEvent asks the application to log in with the given
// credentials.
type LoginEvent struct {
	Username string
	Password string
}

// ToggleRememberUsernameEvent flips the remember-username setting.
type ToggleRememberUsernameEvent struct{}

// ToggleRememberPasswordEvent flips the remember-password setting.
type ToggleRememberPasswordEvent struct{}

// CloseWindowEvent asks the interface to close the emitting window.
type CloseWindowEvent struct{}

func (LoginEvent) isEvent()                  {}
func (ToggleRememberUsernameEvent) isEvent() {}
func (ToggleRememberPasswordEvent) isEvent() {}
func (CloseWindowEvent) isEvent()            {}

// ClickAction is what activating an element does beyond emitting an
// event.
type ClickAction int

const (
	// ClickNone leaves focus and state untouched.
	ClickNone ClickAction = iota
	// ClickEmit delivers the returned event.
	ClickEmit
	// ClickFocusNext moves focus to the next focusable element.
	ClickFocusNext
	// ClickFocusPrevious moves focus to the previous focusable element.
	ClickFocusPrevious
)

// Element is one row of a window.
type Element interface {
	// Height is the layout height of the element in logical pixels.
	Height() float32
	// Focusable reports whether keyboard focus may land here.
	Focusable() bool
	// Click activates the element and returns the follow-up action.
	// The event is only delivered when the action is ClickEmit.
	Click() (ClickAction, Event)
	// Render appends the element's rectangles at the given slot.
	Render(out *[]graphics.RectangleInstruction, position korin.ScreenPosition, width float32, focused bool)
}

// TextReceiver is implemented by elements that consume typed input.
type TextReceiver interface {
	Insert(r rune)
	Backspace()
}
