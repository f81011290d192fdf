package graphics

import (
	"github.com/gogpu/korin"
	"github.com/gogpu/korin/gpu"
	"github.com/gogpu/korin/linear"
)

// RenderInstruction is the immutable per-frame snapshot the simulation
// hands to the engine. It lives for exactly one frame and is consumed
// read-only by every drawer during prepare and draw.
type RenderInstruction struct {
	// ShowInterface draws the interface overlay between the middle and
	// top rectangle layers of the screen pass.
	ShowInterface bool

	// Settings gates the individually toggle-able contributions.
	Settings RenderSettings

	// Uniforms is the cross-pass uniform block.
	Uniforms GlobalUniforms

	// PickerPosition is the cursor position whose object identifier the
	// picker pass copies out this frame.
	PickerPosition korin.ScreenPosition

	// World content.
	Entities  []EntityInstruction
	Models    []ModelInstruction
	Water     *WaterInstruction
	Indicator *IndicatorInstruction

	// MapPicker draws the walkable tile grid into the picker target so
	// clicks resolve to tile coordinates.
	MapPicker *TilePickerInstruction

	// Lighting.
	AmbientColor       korin.Color
	DirectionalLight   DirectionalLightInstruction
	PointLights        []PointLightInstruction
	PointShadowCasters []PointShadowCasterInstruction

	// DirectionalShadow is the content of the directional shadow pass.
	DirectionalShadow DirectionalShadowInstruction

	// Interface pass content.
	InterfaceRectangles []RectangleInstruction

	// Screen pass rectangle layers; the compositing order is fixed as
	// bottom, middle, optional interface overlay, top.
	BottomRectangles []RectangleInstruction
	MiddleRectangles []RectangleInstruction
	TopRectangles    []RectangleInstruction

	// Effects are additive screen-space sprites drawn between the
	// bottom and middle layers.
	Effects []EffectInstruction

	// Debug overlays, drawn only when the matching setting is enabled.
	Markers         []MarkerInstruction
	DebugAabbs      []DebugAabbInstruction
	DebugCircles    []DebugCircleInstruction
	DebugRectangles []RectangleInstruction
}

// GlobalUniforms is the shared uniform block every pass binds at set 0.
type GlobalUniforms struct {
	ViewProjection        linear.Mat4
	View                  linear.Mat4
	InverseViewProjection linear.Mat4
	CameraPosition        linear.Vec4
	AmbientColor          korin.Color
	ScreenSize            korin.ScreenSize
	PointerPosition       korin.ScreenPosition
	AnimationTimer        float32
	DayTimer              float32
	WaterLevel            float32
}

// EntityInstruction draws one billboarded entity sprite.
type EntityInstruction struct {
	Transform linear.Mat4
	FrameSize linear.Vec2
	FramePart linear.Vec2
	Color     korin.Color
	// TextureKey groups entities into batches sharing one texture.
	TextureKey uint32
	// EntityID is the identifier the picker pass renders.
	EntityID uint64
	// AddToPicker excludes effects-only entities from picking.
	AddToPicker bool
}

// ModelInstruction draws one static model batch slice.
type ModelInstruction struct {
	Transform linear.Mat4
	// VertexBuffer holds the model geometry, externally owned.
	VertexBuffer gpu.Buffer
	VertexOffset uint32
	VertexCount  uint32
	// TextureKey groups draws sharing one texture atlas.
	TextureKey uint32
}

// WaterInstruction draws the water plane.
type WaterInstruction struct {
	WaterLevel    float32
	WaveAmplitude float32
	WaveSpeed     float32
	Color         korin.Color
}

// IndicatorInstruction draws the tile cursor indicator.
type IndicatorInstruction struct {
	UpperLeft  linear.Vec3
	UpperRight linear.Vec3
	LowerLeft  linear.Vec3
	LowerRight linear.Vec3
	Color      korin.Color
}

// DirectionalLightInstruction is the sun contribution.
type DirectionalLightInstruction struct {
	Direction linear.Vec3
	Color     korin.Color
}

// PointLightInstruction is one point light's screen contribution.
type PointLightInstruction struct {
	Position linear.Vec3
	Color    korin.Color
	Range    float32
	// ShadowCasterIndex is the index into PointShadowCasters, or -1
	// when the light casts no shadow.
	ShadowCasterIndex int
}

// PointShadowCasterInstruction is one shadow-casting point light with a
// view-projection per cube face.
type PointShadowCasterInstruction struct {
	Position        linear.Vec3
	Range           float32
	ViewProjections [6]linear.Mat4
	Entities        []EntityInstruction
	Models          []ModelInstruction
}

// DirectionalShadowInstruction is the sun shadow pass content.
type DirectionalShadowInstruction struct {
	ViewProjection linear.Mat4
	Entities       []EntityInstruction
	Models         []ModelInstruction
}

// RectangleInstruction draws one screen-space rectangle, either flat
// colored or sampling a texture region.
type RectangleInstruction struct {
	Position korin.ScreenPosition
	Size     korin.ScreenSize
	Clip     korin.ScreenClip
	Color    korin.Color
	// TextureKey selects the texture atlas; 0 draws flat color.
	TextureKey      uint32
	TexturePosition korin.ScreenPosition
	TextureSize     korin.ScreenSize
}

// TilePickerInstruction draws the map's pickable tile geometry. The
// vertex buffer is owned by the loaded map and already encodes the tile
// identifier per vertex.
type TilePickerInstruction struct {
	VertexBuffer gpu.Buffer
	VertexCount  uint32
}

// EffectInstruction draws one additive effect quad.
type EffectInstruction struct {
	Corners    [4]korin.ScreenPosition
	Color      korin.Color
	TextureKey uint32
}

// MarkerInstruction draws one clickable debug marker into the picker
// target, so light, sound and effect sources can be selected in debug
// mode.
type MarkerInstruction struct {
	Position   korin.ScreenPosition
	Size       korin.ScreenSize
	Identifier uint64
}

// DebugAabbInstruction draws one world-space wireframe box.
type DebugAabbInstruction struct {
	Transform linear.Mat4
	Color     korin.Color
}

// DebugCircleInstruction draws one world-space debug circle.
type DebugCircleInstruction struct {
	Position       linear.Vec3
	Color          korin.Color
	ScreenPosition korin.ScreenPosition
	ScreenSize     korin.ScreenSize
}
