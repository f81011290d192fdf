package ui

import (
	"testing"

	"github.com/gogpu/korin"
	"github.com/gogpu/korin/graphics"
)

func newLoginWindow(settings *LoginSettings) *Window {
	return NewLoginWindow(settings, korin.ScreenSize{Width: 800, Height: 600})
}

func TestLoginWindowClassAndConstraints(t *testing.T) {
	w := newLoginWindow(&LoginSettings{})
	if w.Class() != LoginWindowClass {
		t.Errorf("class = %q, want %q", w.Class(), LoginWindowClass)
	}
	if w.Title() != "Log In" {
		t.Errorf("title = %q", w.Title())
	}
	if w.Size().Width != 250 {
		t.Errorf("width = %v, want the base width 250", w.Size().Width)
	}
}

func TestLoginSubmitChainsFocus(t *testing.T) {
	w := newLoginWindow(&LoginSettings{})

	// Empty username: submitting must not move focus.
	username := w.FocusedElement()
	if w.Activate() != nil {
		t.Fatal("empty submit emitted events")
	}
	if w.FocusedElement() != username {
		t.Fatal("focus moved despite empty username")
	}

	for _, r := range "alice" {
		w.Insert(r)
	}
	if w.Activate() != nil {
		t.Fatal("username submit emitted events")
	}
	password, ok := w.FocusedElement().(*InputField)
	if !ok || password.Text() != "" {
		t.Fatal("focus did not chain to the empty password field")
	}

	for _, r := range "hunter2" {
		w.Insert(r)
	}
	events := w.Activate()
	if len(events) != 1 {
		t.Fatalf("events = %v, want one login event", events)
	}
	login, ok := events[0].(LoginEvent)
	if !ok || login.Username != "alice" || login.Password != "hunter2" {
		t.Errorf("login event = %#v", events[0])
	}
}

func TestLoginPasswordSubmitWithEmptyUsernameFocusesBack(t *testing.T) {
	w := newLoginWindow(&LoginSettings{})
	usernameField := w.FocusedElement()

	w.FocusNext()
	for _, r := range "secret" {
		w.Insert(r)
	}
	if events := w.Activate(); events != nil {
		t.Fatalf("password submit without username emitted: %v", events)
	}
	if w.FocusedElement() != usernameField {
		t.Error("focus did not return to the username field")
	}
}

func TestLoginButtonDisabledUntilBothFieldsFilled(t *testing.T) {
	settings := &LoginSettings{Username: "bob"}
	w := newLoginWindow(settings)

	// Walk focus to the log-in button at the end of the stack.
	for i := 0; i < 4; i++ {
		w.FocusNext()
	}
	button, ok := w.FocusedElement().(*Button)
	if !ok {
		t.Fatalf("last element is %T, want the button", w.FocusedElement())
	}
	if !button.Disabled() {
		t.Error("button enabled with an empty password")
	}
	if events := w.Activate(); events != nil {
		t.Fatalf("disabled button emitted: %v", events)
	}

	w.FocusNext() // wraps to the username field
	w.FocusNext() // password field
	for _, r := range "pw" {
		w.Insert(r)
	}
	if button.Disabled() {
		t.Error("button still disabled with both fields filled")
	}
}

func TestLoginRememberTogglesEmitEvents(t *testing.T) {
	settings := &LoginSettings{RememberUsername: true}
	w := newLoginWindow(settings)

	w.FocusNext()
	w.FocusNext()
	toggle, ok := w.FocusedElement().(*StateButton)
	if !ok {
		t.Fatalf("third element is %T, want a state button", w.FocusedElement())
	}
	if !toggle.Checked() {
		t.Error("remember-username toggle not reflecting settings")
	}

	events := w.Activate()
	if len(events) != 1 {
		t.Fatalf("events = %v, want one toggle event", events)
	}
	if _, ok := events[0].(ToggleRememberUsernameEvent); !ok {
		t.Errorf("event = %#v, want toggle remember username", events[0])
	}

	settings.RememberUsername = false
	if toggle.Checked() {
		t.Error("toggle did not follow the settings change")
	}
}

func TestLoginWindowPrefillsSettings(t *testing.T) {
	w := newLoginWindow(&LoginSettings{Username: "carol", Password: "pw"})

	field, ok := w.FocusedElement().(*InputField)
	if !ok || field.Text() != "carol" {
		t.Errorf("username field not prefilled: %#v", w.FocusedElement())
	}

	events := w.Activate() // filled username chains focus
	if events != nil {
		t.Fatalf("unexpected events: %v", events)
	}
	password, ok := w.FocusedElement().(*InputField)
	if !ok || password.Text() != "pw" {
		t.Error("password field not prefilled")
	}
}

func TestLoginWindowRenderEmitsInterfaceRectangles(t *testing.T) {
	w := newLoginWindow(&LoginSettings{})

	var instruction graphics.RenderInstruction
	w.Render(&instruction)

	// Background, title bar, two empty input fields, two transparent
	// toggles (indicator only), and the disabled log-in button.
	if len(instruction.InterfaceRectangles) != 7 {
		t.Errorf("interface rectangles = %d, want 7", len(instruction.InterfaceRectangles))
	}
	if instruction.InterfaceRectangles[0].Size != w.Size() {
		t.Error("first rectangle is not the window background")
	}
}
