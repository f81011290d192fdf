package main

import (
	"math"

	"github.com/gogpu/korin"
	"github.com/gogpu/korin/audio"
	"github.com/gogpu/korin/config"
	"github.com/gogpu/korin/graphics"
	"github.com/gogpu/korin/linear"
	"github.com/gogpu/korin/ui"
	"github.com/gogpu/korin/world"
)

const demoMapSize = 32

// scene is the demo world the client renders until server-driven maps
// land: rolling terrain, the player, one wandering NPC and the login
// window.
type scene struct {
	gameMap *world.Map
	finder  *world.PathFinder
	player  *world.Player
	npc     *world.Npc
	camera  *world.Camera

	audio    *audio.Engine
	settings ui.LoginSettings
	window   *ui.Window
	overlay  *ui.Overlay

	screenSize korin.ScreenSize
	tick       world.ClientTick
	loggedIn   bool

	instruction graphics.RenderInstruction
}

func newScene(cfg config.Config) (*scene, error) {
	tiles := make([]world.Tile, demoMapSize*demoMapSize)
	for y := 0; y < demoMapSize; y++ {
		for x := 0; x < demoMapSize; x++ {
			height := float32(2 * math.Sin(float64(x)*0.4) * math.Cos(float64(y)*0.3))
			tiles[y*demoMapSize+x] = world.Tile{
				SouthwestHeight: height,
				SoutheastHeight: height,
				NorthwestHeight: height,
				NortheastHeight: height,
				Walkable:        true,
			}
		}
	}
	gameMap, err := world.NewMap("demo", demoMapSize, demoMapSize, tiles)
	if err != nil {
		return nil, err
	}

	finder := world.NewPathFinder()

	player := world.NewPlayer(world.EntityData{
		EntityID:            1,
		JobID:               0,
		MovementSpeed:       150,
		HealthPoints:        80,
		MaximumHealthPoints: 100,
	}, 3, 0)
	player.Common().SetPosition(gameMap, world.TilePosition{X: 16, Y: 16}, 0)

	destination := world.TilePosition{X: 24, Y: 20}
	npc, _ := world.NewNpc(gameMap, finder, world.EntityData{
		EntityID:            2,
		JobID:               100,
		Position:            world.TilePosition{X: 10, Y: 10},
		Destination:         &destination,
		MovementSpeed:       200,
		HealthPoints:        50,
		MaximumHealthPoints: 50,
		FootstepSound:       audio.SoundKey(1),
	}, 0)

	screenSize := korin.ScreenSize{
		Width:  float32(cfg.Graphics.ScreenWidth),
		Height: float32(cfg.Graphics.ScreenHeight),
	}

	username, password := cfg.Login.LoginSettings()
	settings := ui.LoginSettings{
		Username:         username,
		Password:         password,
		RememberUsername: cfg.Login.RememberUsername,
		RememberPassword: cfg.Login.RememberPassword,
	}

	engine := audio.NewEngine()
	if !cfg.Audio.Muted {
		if err := engine.Start(); err != nil {
			// No audio device is fine, effects are just dropped.
			korin.Logger().Warn("audio unavailable", "error", err)
		}
	}

	s := &scene{
		gameMap:    gameMap,
		finder:     finder,
		player:     player,
		npc:        npc,
		camera:     world.NewCamera(screenSize),
		audio:      engine,
		settings:   settings,
		overlay:    ui.NewOverlay(),
		screenSize: screenSize,
	}
	s.window = ui.NewLoginWindow(&s.settings, screenSize)

	// Fully remembered credentials submit themselves: the first
	// activation chains focus to the password field, the second logs
	// in.
	if settings.Username != "" && settings.Password != "" {
		s.handleEvents(s.window.Activate())
		s.handleEvents(s.window.Activate())
	}
	return s, nil
}

// directionalShadowMatrix builds the sun's orthographic view
// projection centered on the followed entity.
func directionalShadowMatrix(focus, direction linear.Vec3) linear.Mat4 {
	eye := focus.Sub(direction.Scale(200))
	view := linear.Mat4LookAt(eye, focus, linear.Vec3{Y: 1})
	projection := linear.Mat4Orthographic(-200, 200, -200, 200, 1, 500)
	return projection.Mul(view)
}

// Advance steps the simulation by one frame and rebuilds the frame's
// render instruction. pickerValue is last frame's hover result and
// feeds the picker marker overlay.
func (s *scene) Advance(pickerValue uint64) *graphics.RenderInstruction {
	s.tick += 16

	common := s.player.Common()
	common.Update(s.audio, s.gameMap, s.tick)
	if s.npc != nil {
		npcCommon := s.npc.Common()
		npcCommon.Update(s.audio, s.gameMap, s.tick)
		if npcCommon.StoppedMoving() {
			// Wander back and forth across the map.
			goal := world.TilePosition{
				X: demoMapSize - 1 - npcCommon.TilePosition.X,
				Y: npcCommon.TilePosition.Y,
			}
			npcCommon.MoveFromTo(s.gameMap, s.finder, npcCommon.TilePosition, goal, s.tick)
		}
	}

	s.camera.SetFocus(common.WorldPosition)
	s.camera.Update()
	s.audio.SetListenerPosition(common.WorldPosition)

	s.instruction = graphics.RenderInstruction{
		ShowInterface: !s.loggedIn,
		Settings:      graphics.DefaultRenderSettings(),
		PickerPosition: korin.ScreenPosition{
			X: s.screenSize.Width / 2,
			Y: s.screenSize.Height / 2,
		},
		AmbientColor: korin.Color{R: 0.35, G: 0.35, B: 0.4, A: 1},
	}
	s.camera.WriteUniforms(&s.instruction.Uniforms)
	s.instruction.Uniforms.AmbientColor = s.instruction.AmbientColor
	s.instruction.Uniforms.AnimationTimer = float32(s.tick) / 1000

	sunDirection := linear.Vec3{X: -0.4, Y: -1, Z: -0.2}.Normalized()
	s.instruction.DirectionalLight = graphics.DirectionalLightInstruction{
		Direction: sunDirection,
		Color:     korin.Color{R: 0.9, G: 0.85, B: 0.7, A: 1},
	}
	s.instruction.DirectionalShadow.ViewProjection = directionalShadowMatrix(common.WorldPosition, sunDirection)
	s.instruction.PointLights = append(s.instruction.PointLights, graphics.PointLightInstruction{
		Position:          common.WorldPosition.Add(linear.Vec3{Y: 30}),
		Color:             korin.Color{R: 1, G: 0.8, B: 0.5, A: 1},
		Range:             120,
		ShadowCasterIndex: -1,
	})

	common.Render(&s.instruction, s.camera, true, s.tick)
	if s.npc != nil {
		s.npc.Common().Render(&s.instruction, s.camera, true, s.tick)
	}
	s.instruction.DirectionalShadow.Entities = s.instruction.Entities

	s.renderStatusBars()
	s.overlay.Flush(&s.instruction)

	if !s.loggedIn {
		s.window.Render(&s.instruction)
		if pickerValue != 0 {
			korin.Logger().Debug("hovering entity", "id", pickerValue)
		}
	}
	return &s.instruction
}

func (s *scene) renderStatusBars() {
	entities := []world.Entity{s.player}
	if s.npc != nil {
		entities = append(entities, s.npc)
	}
	for _, entity := range entities {
		common := entity.Common()
		position, visible := s.camera.ScreenPosition(common.WorldPosition)
		if !visible {
			continue
		}
		s.overlay.AddBar(ui.LayerBottom,
			position.Offset(-20, 5),
			korin.ScreenSize{Width: 40, Height: 4},
			korin.Color{R: 0.2, G: 0.9, B: 0.3, A: 1},
			float32(common.MaximumHealthPoints),
			float32(common.HealthPoints))
	}
}

// handleEvents applies interface events to the scene state.
func (s *scene) handleEvents(events []ui.Event) {
	for _, event := range events {
		switch event.(type) {
		case ui.LoginEvent:
			s.loggedIn = true
		case ui.ToggleRememberUsernameEvent:
			s.settings.RememberUsername = !s.settings.RememberUsername
		case ui.ToggleRememberPasswordEvent:
			s.settings.RememberPassword = !s.settings.RememberPassword
		}
	}
}
