package ui

import (
	"github.com/gogpu/korin"
	"github.com/gogpu/korin/graphics"
)

// InputField is a single-line text entry. A hidden field renders a
// mask indicator instead of per-character glyph boxes.
type InputField struct {
	placeholder string
	text        []rune
	maxLength   int
	hidden      bool
	theme       Theme

	// OnSubmit runs when the field is activated with text entry
	// confirmed, enter usually.
	OnSubmit func() (ClickAction, Event)
}

// NewInputField returns an empty field capped at maxLength runes.
func NewInputField(placeholder string, maxLength int, hidden bool) *InputField {
	return &InputField{
		placeholder: placeholder,
		maxLength:   maxLength,
		hidden:      hidden,
		theme:       DefaultTheme(),
	}
}

// Text returns the current content.
func (f *InputField) Text() string { return string(f.text) }

// SetText replaces the content, truncated to the length cap.
func (f *InputField) SetText(text string) {
	runes := []rune(text)
	if len(runes) > f.maxLength {
		runes = runes[:f.maxLength]
	}
	f.text = runes
}

// Insert appends one rune, ignored once the field is full.
func (f *InputField) Insert(r rune) {
	if len(f.text) >= f.maxLength {
		return
	}
	f.text = append(f.text, r)
}

// Backspace removes the last rune.
func (f *InputField) Backspace() {
	if len(f.text) > 0 {
		f.text = f.text[:len(f.text)-1]
	}
}

func (f *InputField) Height() float32 { return elementHeight }

func (f *InputField) Focusable() bool { return true }

func (f *InputField) Click() (ClickAction, Event) {
	if f.OnSubmit == nil {
		return ClickNone, nil
	}
	return f.OnSubmit()
}

func (f *InputField) Render(out *[]graphics.RectangleInstruction, position korin.ScreenPosition, width float32, focused bool) {
	background := f.theme.ElementBase
	if focused {
		background = f.theme.ElementFocused
	}
	*out = append(*out, graphics.RectangleInstruction{
		Position: position,
		Size:     korin.ScreenSize{Width: width, Height: elementHeight},
		Color:    background,
	})

	if len(f.text) == 0 {
		return
	}

	// A fill bar standing in for the typed text; hidden fields show a
	// fixed-width mask so the password length stays unreadable.
	fill := float32(len(f.text)) / float32(f.maxLength)
	if f.hidden {
		fill = 0.5
	}
	*out = append(*out, graphics.RectangleInstruction{
		Position: position.Offset(2, 2),
		Size:     korin.ScreenSize{Width: (width - 4) * fill, Height: elementHeight - 4},
		Color:    f.theme.StateUnchecked,
	})
}
