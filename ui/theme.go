package ui

import "github.com/gogpu/korin"

// Layout metrics in logical pixels.
const (
	titleBarHeight float32 = 18
	elementHeight  float32 = 20
	elementGap     float32 = 4
	windowPadding  float32 = 6
)

// Theme holds the interface colors. DefaultTheme matches the dark
// client look.
type Theme struct {
	WindowBackground korin.Color
	TitleBar         korin.Color
	ElementBase      korin.Color
	ElementFocused   korin.Color
	ElementDisabled  korin.Color
	StateChecked     korin.Color
	StateUnchecked   korin.Color
	BarBackground    korin.Color
}

// DefaultTheme returns the standard interface colors.
func DefaultTheme() Theme {
	return Theme{
		WindowBackground: korin.Color{R: 0.11, G: 0.11, B: 0.13, A: 0.95},
		TitleBar:         korin.Color{R: 0.18, G: 0.18, B: 0.22, A: 1},
		ElementBase:      korin.Color{R: 0.22, G: 0.22, B: 0.26, A: 1},
		ElementFocused:   korin.Color{R: 0.32, G: 0.32, B: 0.40, A: 1},
		ElementDisabled:  korin.Color{R: 0.16, G: 0.16, B: 0.18, A: 1},
		StateChecked:     korin.Color{R: 0.30, G: 0.65, B: 0.35, A: 1},
		StateUnchecked:   korin.Color{R: 0.30, G: 0.30, B: 0.34, A: 1},
		BarBackground:    korin.Color{R: 0.08, G: 0.08, B: 0.08, A: 0.8},
	}
}
