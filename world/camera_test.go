package world

import (
	"testing"

	"github.com/gogpu/korin"
	"github.com/gogpu/korin/graphics"
	"github.com/gogpu/korin/linear"
)

func screenSize(width, height float32) korin.ScreenSize {
	return korin.ScreenSize{Width: width, Height: height}
}

func approxEqual(a, b, tolerance float32) bool {
	diff := a - b
	return diff < tolerance && diff > -tolerance
}

func TestCameraFocusProjectsToScreenCenter(t *testing.T) {
	camera := NewCamera(screenSize(800, 600))
	camera.SetFocus(linear.Vec3{X: 40, Y: 5, Z: 40})
	camera.Update()

	position, ok := camera.ScreenPosition(linear.Vec3{X: 40, Y: 5, Z: 40})
	if !ok {
		t.Fatal("focus behind camera")
	}
	if !approxEqual(position.X, 400, 0.1) || !approxEqual(position.Y, 300, 0.1) {
		t.Errorf("focus projects to %v, want screen center", position)
	}
}

func TestCameraRejectsPositionsBehind(t *testing.T) {
	camera := NewCamera(screenSize(800, 600))
	camera.Update()

	eye := camera.Eye()
	behind := eye.Add(eye.Sub(linear.Vec3{}))
	if _, ok := camera.ScreenPosition(behind); ok {
		t.Error("position behind the camera projected")
	}
}

func TestCameraZoomClamped(t *testing.T) {
	camera := NewCamera(screenSize(800, 600))

	camera.Zoom(-10000)
	if camera.zoom != minCameraZoom {
		t.Errorf("zoom = %v, want clamped to %v", camera.zoom, minCameraZoom)
	}
	camera.Zoom(10000)
	if camera.zoom != maxCameraZoom {
		t.Errorf("zoom = %v, want clamped to %v", camera.zoom, maxCameraZoom)
	}
}

func TestCameraBillboardCancelsViewRotation(t *testing.T) {
	camera := NewCamera(screenSize(800, 600))
	camera.Rotate(1.2)
	camera.Update()

	product := camera.View().Mul(camera.Billboard())
	identity := linear.Mat4Identity()
	// Only the rotation part must cancel; the view translation stays.
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			if !approxEqual(product[c*4+r], identity[c*4+r], 1e-5) {
				t.Fatalf("billboard does not cancel view rotation at (%d,%d): %v", r, c, product[c*4+r])
			}
		}
	}
}

func TestCameraWriteUniforms(t *testing.T) {
	camera := NewCamera(screenSize(800, 600))
	camera.SetFocus(linear.Vec3{X: 10, Z: 20})
	camera.Rotate(0.4)
	camera.Update()

	var uniforms graphics.GlobalUniforms
	camera.WriteUniforms(&uniforms)

	if uniforms.ViewProjection != camera.ViewProjection() {
		t.Error("view projection not written")
	}
	if uniforms.ScreenSize != screenSize(800, 600) {
		t.Error("screen size not written")
	}

	product := uniforms.ViewProjection.Mul(uniforms.InverseViewProjection)
	identity := linear.Mat4Identity()
	for i := range product {
		if !approxEqual(product[i], identity[i], 1e-3) {
			t.Fatalf("inverse view projection wrong at %d: %v", i, product[i])
		}
	}

	eye := camera.Eye()
	if uniforms.CameraPosition != eye.Vec4(1) {
		t.Errorf("camera position = %v, want %v", uniforms.CameraPosition, eye)
	}
}
