package ui

import (
	"github.com/gogpu/korin"
	"github.com/gogpu/korin/graphics"
)

// Button is a plain clickable row.
type Button struct {
	text        string
	theme       Theme
	transparent bool
	disabled    func() bool
	action      func() (ClickAction, Event)
}

// NewButton returns a button with the default theme and no action.
func NewButton(text string) *Button {
	return &Button{text: text, theme: DefaultTheme()}
}

// WithDisabledWhen makes the button ignore clicks while the selector
// reports true.
func (b *Button) WithDisabledWhen(selector func() bool) *Button {
	b.disabled = selector
	return b
}

// WithAction sets the activation handler.
func (b *Button) WithAction(action func() (ClickAction, Event)) *Button {
	b.action = action
	return b
}

// WithEvent makes activation emit a fixed event.
func (b *Button) WithEvent(event Event) *Button {
	b.action = func() (ClickAction, Event) { return ClickEmit, event }
	return b
}

// WithTransparentBackground drops the background rectangle.
func (b *Button) WithTransparentBackground() *Button {
	b.transparent = true
	return b
}

// Disabled reports whether clicks are currently ignored.
func (b *Button) Disabled() bool {
	return b.disabled != nil && b.disabled()
}

func (b *Button) Height() float32 { return elementHeight }

func (b *Button) Focusable() bool { return true }

func (b *Button) Click() (ClickAction, Event) {
	if b.Disabled() || b.action == nil {
		return ClickNone, nil
	}
	return b.action()
}

func (b *Button) Render(out *[]graphics.RectangleInstruction, position korin.ScreenPosition, width float32, focused bool) {
	if b.transparent {
		return
	}

	color := b.theme.ElementBase
	switch {
	case b.Disabled():
		color = b.theme.ElementDisabled
	case focused:
		color = b.theme.ElementFocused
	}
	*out = append(*out, graphics.RectangleInstruction{
		Position: position,
		Size:     korin.ScreenSize{Width: width, Height: elementHeight},
		Color:    color,
	})
}

// StateButton is a button with a checked indicator driven by a
// selector, used for settings toggles.
type StateButton struct {
	Button
	selector func() bool
}

// NewStateButton returns a toggle row showing the selector state.
func NewStateButton(text string, selector func() bool) *StateButton {
	return &StateButton{
		Button:   Button{text: text, theme: DefaultTheme()},
		selector: selector,
	}
}

// WithEvent makes activation emit a fixed event.
func (b *StateButton) WithEvent(event Event) *StateButton {
	b.Button.WithEvent(event)
	return b
}

// WithTransparentBackground drops the background rectangle, keeping
// only the state indicator.
func (b *StateButton) WithTransparentBackground() *StateButton {
	b.Button.WithTransparentBackground()
	return b
}

// Checked reports the selector state.
func (b *StateButton) Checked() bool {
	return b.selector != nil && b.selector()
}

func (b *StateButton) Render(out *[]graphics.RectangleInstruction, position korin.ScreenPosition, width float32, focused bool) {
	b.Button.Render(out, position, width, focused)

	indicator := b.theme.StateUnchecked
	if b.Checked() {
		indicator = b.theme.StateChecked
	}
	inset := (elementHeight - 12) / 2
	*out = append(*out, graphics.RectangleInstruction{
		Position: position.Offset(inset, inset),
		Size:     korin.ScreenSize{Width: 12, Height: 12},
		Color:    indicator,
	})
}
