package korin

import (
	"image/color"
	"testing"
)

func TestColorRoundTrip(t *testing.T) {
	c := RGBA(0.25, 0.5, 0.75, 1.0)
	got := FromColor(c.Color())

	const tolerance = 1.0 / 255
	if diff := got.R - c.R; diff > tolerance || diff < -tolerance {
		t.Errorf("R = %v, want %v", got.R, c.R)
	}
	if diff := got.G - c.G; diff > tolerance || diff < -tolerance {
		t.Errorf("G = %v, want %v", got.G, c.G)
	}
	if diff := got.B - c.B; diff > tolerance || diff < -tolerance {
		t.Errorf("B = %v, want %v", got.B, c.B)
	}
	if got.A != 1 {
		t.Errorf("A = %v, want 1", got.A)
	}
}

func TestColorClampsOnConversion(t *testing.T) {
	c := Color{R: 2, G: -1, B: 0.5, A: 1}
	nrgba := c.Color().(color.NRGBA)
	if nrgba.R != 255 {
		t.Errorf("R = %d, want clamped to 255", nrgba.R)
	}
	if nrgba.G != 0 {
		t.Errorf("G = %d, want clamped to 0", nrgba.G)
	}
}

func TestColorScaled(t *testing.T) {
	c := ColorWhite.Scaled(0.5)
	want := Color{0.5, 0.5, 0.5, 0.5}
	if c != want {
		t.Errorf("Scaled = %+v, want %+v", c, want)
	}
}

func TestColorPacked(t *testing.T) {
	packed := RGB(0.1, 0.2, 0.3).Packed()
	want := [4]float32{0.1, 0.2, 0.3, 1}
	if packed != want {
		t.Errorf("Packed = %v, want %v", packed, want)
	}
}
