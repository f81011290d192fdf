package audio

import (
	"testing"

	"github.com/gogpu/korin/linear"
)

func TestSpatialGainFalloff(t *testing.T) {
	listener := linear.Vec3{}

	gain, pan := spatialGain(listener, linear.Vec3{}, 250)
	if gain != 1 || pan != 0 {
		t.Errorf("at listener: gain %v pan %v, want 1 and 0", gain, pan)
	}

	gain, _ = spatialGain(listener, linear.Vec3{X: 125}, 250)
	if gain < 0.49 || gain > 0.51 {
		t.Errorf("half range gain = %v, want 0.5", gain)
	}

	gain, _ = spatialGain(listener, linear.Vec3{X: 250}, 250)
	if gain != 0 {
		t.Errorf("gain at range edge = %v, want 0", gain)
	}

	gain, _ = spatialGain(listener, linear.Vec3{Z: 9999}, 250)
	if gain != 0 {
		t.Errorf("gain beyond range = %v, want 0", gain)
	}
}

func TestSpatialGainPanFollowsSide(t *testing.T) {
	listener := linear.Vec3{X: 100}

	_, left := spatialGain(listener, linear.Vec3{X: 50}, 250)
	_, right := spatialGain(listener, linear.Vec3{X: 150}, 250)
	if left >= 0 || right <= 0 {
		t.Errorf("pan left %v right %v, want negative then positive", left, right)
	}
	if left < -0.5 || right > 0.5 {
		t.Errorf("pan exceeds half-width bounds: %v, %v", left, right)
	}
}

func TestPlaySpatialWithoutStartIsNoOp(t *testing.T) {
	engine := NewEngine()
	// Must not panic or touch the speaker; the device was never opened.
	engine.PlaySpatial(7, linear.Vec3{}, 250)
	engine.Close()
}
