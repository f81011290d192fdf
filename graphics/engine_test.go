package graphics

import (
	"encoding/binary"
	"testing"

	"github.com/gogpu/korin"
	"github.com/gogpu/korin/gpu"
	"github.com/gogpu/korin/gpu/headless"
)

func newTestEngine(t *testing.T) (*GraphicsEngine, *headless.Device) {
	t.Helper()
	device := headless.New()
	engine := NewGraphicsEngine(device, EngineOptions{
		ScreenWidth:  64,
		ScreenHeight: 64,
		Workers:      2,
	})
	if err := engine.OnResume(nil); err != nil {
		t.Fatalf("OnResume: %v", err)
	}
	t.Cleanup(engine.Close)
	t.Cleanup(device.Destroy)
	return engine, device
}

func renderFrame(t *testing.T, engine *GraphicsEngine, instruction *RenderInstruction) {
	t.Helper()
	frame, err := engine.WaitForNextFrame()
	if err != nil {
		t.Fatalf("WaitForNextFrame: %v", err)
	}
	engine.RenderNextFrame(frame, instruction)
}

func testInstruction() *RenderInstruction {
	return &RenderInstruction{
		Settings: DefaultRenderSettings(),
		Uniforms: GlobalUniforms{
			ScreenSize: korin.ScreenSize{Width: 64, Height: 64},
		},
	}
}

func TestRenderNextFrameSubmissionOrder(t *testing.T) {
	engine, device := newTestEngine(t)

	renderFrame(t, engine, testInstruction())

	last := device.Queue().(*headless.Queue).LastSubmission()
	if len(last) != 7 {
		t.Fatalf("submitted %d command buffers, want 7", len(last))
	}
	want := []string{"prepare", "interface", "picker", "directional shadow", "point shadow", "geometry", "screen"}
	for i, buffer := range last {
		if buffer.Label != want[i] {
			t.Errorf("buffer %d = %q, want %q", i, buffer.Label, want[i])
		}
	}
}

func TestRenderNextFrameTooManyCastersAbortsBeforeRecording(t *testing.T) {
	engine, device := newTestEngine(t)

	instruction := testInstruction()
	instruction.PointShadowCasters = make([]PointShadowCasterInstruction, NumberOfPointLightsWithShadows+1)

	frame, err := engine.WaitForNextFrame()
	if err != nil {
		t.Fatalf("WaitForNextFrame: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for too many shadow casters")
		}
		if n := len(device.Queue().(*headless.Queue).Submissions()); n != 0 {
			t.Errorf("submissions after aborted frame = %d, want 0", n)
		}
	}()
	engine.RenderNextFrame(frame, instruction)
}

func TestPointShadowSubPassCount(t *testing.T) {
	engine, device := newTestEngine(t)

	instruction := testInstruction()
	instruction.PointShadowCasters = make([]PointShadowCasterInstruction, 2)
	renderFrame(t, engine, instruction)

	last := device.Queue().(*headless.Queue).LastSubmission()
	pointShadow := last[4]
	if got := pointShadow.RenderPassCount(); got != 12 {
		t.Errorf("point shadow sub-passes = %d, want 12 (2 casters * 6 faces)", got)
	}
}

func TestContextRebuiltOnlyOnFormatChange(t *testing.T) {
	engine, _ := newTestEngine(t)

	if engine.ContextGeneration() != 1 {
		t.Fatalf("generation after resume = %d, want 1", engine.ContextGeneration())
	}

	renderFrame(t, engine, testInstruction())
	engine.OnResize(128, 128)
	renderFrame(t, engine, testInstruction())
	engine.SetShadowDetail(ShadowDetailHigh)
	engine.SetTextureSamplerType(TextureSamplerAnisotropic4)
	renderFrame(t, engine, testInstruction())

	if engine.ContextGeneration() != 1 {
		t.Errorf("generation after resize and settings = %d, want 1", engine.ContextGeneration())
	}

	// A format change is the one rebuild trigger.
	engine.surface.format = gpu.TextureFormatRGBA8Unorm
	engine.surface.Invalidate()
	renderFrame(t, engine, testInstruction())

	if engine.ContextGeneration() != 2 {
		t.Errorf("generation after format change = %d, want 2", engine.ContextGeneration())
	}
}

func TestFormatRebuildReleasesSupersededBuffers(t *testing.T) {
	engine, device := newTestEngine(t)
	renderFrame(t, engine, testInstruction())

	before := device.DestroyedBuffers()
	engine.surface.format = gpu.TextureFormatRGBA8Unorm
	engine.surface.Invalidate()
	renderFrame(t, engine, testInstruction())

	if got := device.DestroyedBuffers(); got <= before {
		t.Errorf("destroyed buffers after format rebuild = %d, want more than %d", got, before)
	}
}

func TestShadowDetailChangePreservesScreenTextures(t *testing.T) {
	engine, _ := newTestEngine(t)
	global := engine.Global()

	interfaceBefore := global.interfaceTexture
	pickerBefore := global.pickerTexture
	shadowBefore := global.directionalShadowTexture
	shadowVersion := global.ShadowVersion()

	engine.SetShadowDetail(ShadowDetailUltra)

	if global.interfaceTexture != interfaceBefore {
		t.Error("interface texture replaced by shadow detail change")
	}
	if global.pickerTexture != pickerBefore {
		t.Error("picker texture replaced by shadow detail change")
	}
	if global.directionalShadowTexture == shadowBefore {
		t.Error("directional shadow texture not replaced")
	}
	if global.ShadowVersion() != shadowVersion+1 {
		t.Errorf("shadow version = %d, want %d", global.ShadowVersion(), shadowVersion+1)
	}
}

func TestResizePreservesShadowTextures(t *testing.T) {
	engine, _ := newTestEngine(t)
	global := engine.Global()

	shadowBefore := global.directionalShadowTexture
	pointBefore := global.pointShadowTexture
	interfaceBefore := global.interfaceTexture
	screenVersion := global.ScreenVersion()

	engine.OnResize(320, 240)

	if global.directionalShadowTexture != shadowBefore || global.pointShadowTexture != pointBefore {
		t.Error("shadow textures replaced by resize")
	}
	if global.interfaceTexture == interfaceBefore {
		t.Error("interface texture not replaced by resize")
	}
	if global.ScreenVersion() != screenVersion+1 {
		t.Errorf("screen version = %d, want %d", global.ScreenVersion(), screenVersion+1)
	}
	if w, h := global.ScreenSize(); w != 320 || h != 240 {
		t.Errorf("screen size = %dx%d, want 320x240", w, h)
	}
}

func TestPickerValueOneFrameLatency(t *testing.T) {
	engine, device := newTestEngine(t)

	// Seed the picker target with a known identifier at (3, 5).
	texel := make([]byte, 8)
	binary.LittleEndian.PutUint64(texel, 42)
	device.Queue().WriteTexture(engine.Global().pickerTexture,
		gpu.Origin3D{X: 3, Y: 5}, gpu.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1}, texel)

	instruction := testInstruction()
	instruction.PickerPosition = korin.ScreenPosition{X: 3, Y: 5}

	renderFrame(t, engine, instruction)
	if got := engine.PickerValue(); got != 0 {
		t.Errorf("picker value after first frame = %d, want 0", got)
	}

	renderFrame(t, engine, instruction)
	if got := engine.PickerValue(); got != 42 {
		t.Errorf("picker value after second frame = %d, want 42", got)
	}
}

func TestPickerCopyClampedToScreen(t *testing.T) {
	engine, device := newTestEngine(t)

	instruction := testInstruction()
	instruction.PickerPosition = korin.ScreenPosition{X: -20, Y: 9000}
	renderFrame(t, engine, instruction)

	last := device.Queue().(*headless.Queue).LastSubmission()
	picker := last[2]
	var copied *gpu.CmdCopyTextureToBuffer
	for _, c := range picker.Commands {
		if cp, ok := c.(gpu.CmdCopyTextureToBuffer); ok {
			copied = &cp
		}
	}
	if copied == nil {
		t.Fatal("picker buffer has no texture-to-buffer copy")
	}
	if copied.Origin.X != 0 || copied.Origin.Y != 63 {
		t.Errorf("copy origin = (%d, %d), want (0, 63)", copied.Origin.X, copied.Origin.Y)
	}
}

// screenDraws returns the draw list of the screen pass.
func screenDraws(t *testing.T, device *headless.Device) []gpu.PassDraw {
	t.Helper()
	last := device.Queue().(*headless.Queue).LastSubmission()
	screen := last[6]
	passes := screen.RenderPasses()
	if len(passes) != 1 {
		t.Fatalf("screen buffer has %d passes, want 1", len(passes))
	}
	var draws []gpu.PassDraw
	for _, c := range passes[0].Commands {
		if d, ok := c.(gpu.PassDraw); ok {
			draws = append(draws, d)
		}
	}
	return draws
}

func TestScreenRectangleLayerOrder(t *testing.T) {
	engine, device := newTestEngine(t)

	instruction := testInstruction()
	instruction.Settings = RenderSettings{} // no lighting, no overlays
	instruction.ShowInterface = true
	instruction.BottomRectangles = make([]RectangleInstruction, 2)
	instruction.MiddleRectangles = make([]RectangleInstruction, 3)
	instruction.TopRectangles = make([]RectangleInstruction, 1)
	renderFrame(t, engine, instruction)

	draws := screenDraws(t, device)
	if len(draws) != 4 {
		t.Fatalf("screen draws = %d, want 4 (bottom, middle, overlay, top)", len(draws))
	}

	bottom, middle, overlay, top := draws[0], draws[1], draws[2], draws[3]
	if bottom.FirstInstance != 0 || bottom.InstanceCount != 2 {
		t.Errorf("bottom draw = %+v, want first 0 count 2", bottom)
	}
	if middle.FirstInstance != 2 || middle.InstanceCount != 3 {
		t.Errorf("middle draw = %+v, want first 2 count 3", middle)
	}
	if overlay.VertexCount != 3 {
		t.Errorf("overlay draw = %+v, want full-screen triangle", overlay)
	}
	if top.FirstInstance != 5 || top.InstanceCount != 1 {
		t.Errorf("top draw = %+v, want first 5 count 1", top)
	}
}

func TestLightingTogglesGateExactlyThatLight(t *testing.T) {
	base := func() *RenderInstruction {
		instruction := testInstruction()
		instruction.PointLights = make([]PointLightInstruction, 2)
		instruction.Water = &WaterInstruction{WaterLevel: 1}
		return instruction
	}

	count := func(t *testing.T, instruction *RenderInstruction) int {
		engine, device := newTestEngine(t)
		renderFrame(t, engine, instruction)
		return len(screenDraws(t, device))
	}

	// Water adds a geometry draw too, but here only screen draws count:
	// ambient, directional, point, water light.
	all := base()
	if got := count(t, all); got != 4 {
		t.Fatalf("draws with all lighting = %d, want 4", got)
	}

	noDirectional := base()
	noDirectional.Settings.ShowDirectionalLight = false
	if got := count(t, noDirectional); got != 3 {
		t.Errorf("draws without directional = %d, want 3", got)
	}

	noPoint := base()
	noPoint.Settings.ShowPointLights = false
	if got := count(t, noPoint); got != 3 {
		t.Errorf("draws without point lights = %d, want 3", got)
	}

	// Water lighting has no toggle; it survives disabling everything.
	onlyWater := base()
	onlyWater.Settings.ShowAmbientLight = false
	onlyWater.Settings.ShowDirectionalLight = false
	onlyWater.Settings.ShowPointLights = false
	if got := count(t, onlyWater); got != 1 {
		t.Errorf("draws with lighting disabled = %d, want 1 (water light)", got)
	}
}

func TestWaitForNextFrameWhileSuspended(t *testing.T) {
	engine, _ := newTestEngine(t)
	engine.OnSuspended()

	if _, err := engine.WaitForNextFrame(); err != ErrNoSurface {
		t.Errorf("err = %v, want ErrNoSurface", err)
	}
}

func TestDebugOverlaysGated(t *testing.T) {
	instruction := testInstruction()
	instruction.Settings = RenderSettings{}
	instruction.DebugAabbs = make([]DebugAabbInstruction, 3)
	instruction.DebugCircles = make([]DebugCircleInstruction, 2)
	instruction.DebugRectangles = make([]RectangleInstruction, 1)

	engine, device := newTestEngine(t)
	renderFrame(t, engine, instruction)
	if got := len(screenDraws(t, device)); got != 0 {
		t.Fatalf("draws with overlays disabled = %d, want 0", got)
	}

	instruction.Settings.ShowBoundingBoxes = true
	instruction.Settings.ShowDebugCircles = true
	instruction.Settings.ShowDebugRectangles = true
	engine2, device2 := newTestEngine(t)
	renderFrame(t, engine2, instruction)
	if got := len(screenDraws(t, device2)); got != 3 {
		t.Errorf("draws with overlays enabled = %d, want 3", got)
	}
}
