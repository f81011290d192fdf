package ui

import "github.com/gogpu/korin"

// LoginWindowClass deduplicates the login window.
const LoginWindowClass = "login"

// LoginSettings is the remembered login state the window starts from.
type LoginSettings struct {
	Username         string
	Password         string
	RememberUsername bool
	RememberPassword bool
}

// NewLoginWindow builds the login window: username and password
// fields, the two remember toggles, and the log-in button.
//
// Submitting the username field moves focus to the password field.
// Submitting the password field logs in when both fields are filled,
// jumps back to the username field when it is empty, and does nothing
// while the password itself is empty.
func NewLoginWindow(settings *LoginSettings, available korin.ScreenSize) *Window {
	username := NewInputField("username", 24, false)
	username.SetText(settings.Username)
	password := NewInputField("password", 24, true)
	password.SetText(settings.Password)

	username.OnSubmit = func() (ClickAction, Event) {
		if username.Text() == "" {
			return ClickNone, nil
		}
		return ClickFocusNext, nil
	}
	password.OnSubmit = func() (ClickAction, Event) {
		switch {
		case username.Text() == "":
			return ClickFocusPrevious, nil
		case password.Text() == "":
			return ClickNone, nil
		default:
			return ClickEmit, LoginEvent{Username: username.Text(), Password: password.Text()}
		}
	}

	rememberUsername := NewStateButton("remember username", func() bool {
		return settings.RememberUsername
	}).WithEvent(ToggleRememberUsernameEvent{}).WithTransparentBackground()

	rememberPassword := NewStateButton("remember password", func() bool {
		return settings.RememberPassword
	}).WithEvent(ToggleRememberPasswordEvent{}).WithTransparentBackground()

	login := NewButton("log in").
		WithDisabledWhen(func() bool {
			return username.Text() == "" || password.Text() == ""
		}).
		WithAction(func() (ClickAction, Event) {
			return ClickEmit, LoginEvent{Username: username.Text(), Password: password.Text()}
		})

	return NewWindowBuilder().
		WithTitle("Log In").
		WithClass(LoginWindowClass).
		WithSize(SizeConstraint{MinWidth: 200, BaseWidth: 250, MaxWidth: 300, MaxHeightFraction: 0.8}).
		WithElements(username, password, rememberUsername, rememberPassword, login).
		Build(available)
}
