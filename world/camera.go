package world

import (
	"math"

	"github.com/gogpu/korin"
	"github.com/gogpu/korin/graphics"
	"github.com/gogpu/korin/linear"
)

const (
	cameraFieldOfView = 45.0 * math.Pi / 180.0
	cameraNearPlane   = 1.0
	cameraFarPlane    = 2000.0
	// cameraPitch is the fixed downward view angle in radians.
	cameraPitch = 50.0 * math.Pi / 180.0

	minCameraZoom = 60.0
	maxCameraZoom = 400.0
)

// Camera orbits the followed entity, the player usually, at a fixed
// pitch. Call Update after changing any parameter to recompute the
// matrices.
type Camera struct {
	focus      linear.Vec3
	rotation   float32
	zoom       float32
	screenSize korin.ScreenSize

	view           linear.Mat4
	projection     linear.Mat4
	viewProjection linear.Mat4
}

// NewCamera returns a camera at the default zoom looking at the
// origin.
func NewCamera(screenSize korin.ScreenSize) *Camera {
	camera := &Camera{
		zoom:       150,
		screenSize: screenSize,
	}
	camera.Update()
	return camera
}

// SetFocus aims the camera at a world position, usually the player.
func (c *Camera) SetFocus(focus linear.Vec3) {
	c.focus = focus
}

// SetScreenSize updates the projection aspect ratio.
func (c *Camera) SetScreenSize(size korin.ScreenSize) {
	c.screenSize = size
}

// Rotate orbits the camera around the focus by delta radians.
func (c *Camera) Rotate(delta float32) {
	c.rotation += delta
}

// Zoom moves the camera toward or away from the focus, clamped to the
// allowed range.
func (c *Camera) Zoom(delta float32) {
	c.zoom += delta
	if c.zoom < minCameraZoom {
		c.zoom = minCameraZoom
	} else if c.zoom > maxCameraZoom {
		c.zoom = maxCameraZoom
	}
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() linear.Vec3 {
	sinRotation := float32(math.Sin(float64(c.rotation)))
	cosRotation := float32(math.Cos(float64(c.rotation)))
	sinPitch := float32(math.Sin(cameraPitch))
	cosPitch := float32(math.Cos(cameraPitch))

	offset := linear.Vec3{
		X: sinRotation * cosPitch,
		Y: sinPitch,
		Z: cosRotation * cosPitch,
	}
	return c.focus.Add(offset.Scale(c.zoom))
}

// Update recomputes the view and projection matrices.
func (c *Camera) Update() {
	aspect := float32(1)
	if c.screenSize.Height > 0 {
		aspect = c.screenSize.Width / c.screenSize.Height
	}

	c.view = linear.Mat4LookAt(c.Eye(), c.focus, linear.Vec3{Y: 1})
	c.projection = linear.Mat4Perspective(cameraFieldOfView, aspect, cameraNearPlane, cameraFarPlane)
	c.viewProjection = c.projection.Mul(c.view)
}

// View returns the view matrix of the last Update.
func (c *Camera) View() linear.Mat4 { return c.view }

// Projection returns the projection matrix of the last Update.
func (c *Camera) Projection() linear.Mat4 { return c.projection }

// ViewProjection returns the combined matrix of the last Update.
func (c *Camera) ViewProjection() linear.Mat4 { return c.viewProjection }

// Billboard returns the rotation that turns a sprite quad to face the
// camera, the transpose of the view rotation.
func (c *Camera) Billboard() linear.Mat4 {
	v := c.view
	return linear.Mat4{
		v[0], v[4], v[8], 0,
		v[1], v[5], v[9], 0,
		v[2], v[6], v[10], 0,
		0, 0, 0, 1,
	}
}

// BillboardTransform places a camera-facing quad of the given size at
// a world position.
func (c *Camera) BillboardTransform(position linear.Vec3, size linear.Vec2) linear.Mat4 {
	scale := linear.Mat4Scale(linear.Vec3{X: size.X, Y: size.Y, Z: 1})
	return linear.Mat4Translation(position).Mul(c.Billboard()).Mul(scale)
}

// ScreenPosition projects a world position to logical screen
// coordinates. It reports false for positions behind the camera.
func (c *Camera) ScreenPosition(position linear.Vec3) (korin.ScreenPosition, bool) {
	clip := c.viewProjection.MulVec4(position.Vec4(1))
	if clip.W <= 0 {
		return korin.ScreenPosition{}, false
	}

	inv := 1 / clip.W
	return korin.ScreenPosition{
		X: (clip.X*inv*0.5 + 0.5) * c.screenSize.Width,
		Y: (0.5 - clip.Y*inv*0.5) * c.screenSize.Height,
	}, true
}

// WriteUniforms fills the camera-derived fields of the frame's global
// uniform block.
func (c *Camera) WriteUniforms(uniforms *graphics.GlobalUniforms) {
	uniforms.ViewProjection = c.viewProjection
	uniforms.View = c.view
	if inverse, ok := c.viewProjection.Inverse(); ok {
		uniforms.InverseViewProjection = inverse
	} else {
		uniforms.InverseViewProjection = linear.Mat4Identity()
	}
	uniforms.CameraPosition = c.Eye().Vec4(1)
	uniforms.ScreenSize = c.screenSize
}
