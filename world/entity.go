package world

import (
	"github.com/gogpu/korin"
	"github.com/gogpu/korin/audio"
	"github.com/gogpu/korin/graphics"
	"github.com/gogpu/korin/linear"
)

// EntityID is the server-assigned identifier of a world entity. It is
// also what the picker pass renders, so a click resolves back to it.
type EntityID uint64

// EntityType classifies an entity by its job id.
type EntityType int

const (
	EntityTypePlayer EntityType = iota
	EntityTypeNpc
	EntityTypeMonster
	EntityTypeWarp
	EntityTypeHidden
)

// EntityTypeFromJob derives the entity type from the job id ranges the
// server uses.
func EntityTypeFromJob(jobID int) EntityType {
	switch {
	case jobID == 45:
		return EntityTypeWarp
	case jobID == 111:
		return EntityTypeHidden
	case jobID >= 0 && jobID <= 44, jobID >= 4000 && jobID <= 5999:
		return EntityTypePlayer
	case jobID >= 46 && jobID <= 999, jobID >= 10000 && jobID <= 19999:
		return EntityTypeNpc
	case jobID >= 1000 && jobID <= 3999, jobID >= 20000 && jobID <= 29999:
		return EntityTypeMonster
	default:
		return EntityTypeNpc
	}
}

// Entity sprite extents in world units.
const (
	entityWidth  = 8.0
	entityHeight = 12.0
)

// diagonalMultiplier scales the per-tile walk duration of diagonal
// steps.
const diagonalMultiplier = 1.4

// EntityData is what the server sends when an entity spawns.
type EntityData struct {
	EntityID            EntityID
	JobID               int
	Position            TilePosition
	Destination         *TilePosition
	Direction           Direction
	HeadDirection       int
	MovementSpeed       int
	HealthPoints        int
	MaximumHealthPoints int
	FootstepSound       audio.SoundKey
}

// Common is the state shared by every entity variant.
type Common struct {
	EntityID            EntityID
	JobID               int
	EntityType          EntityType
	HealthPoints        int
	MaximumHealthPoints int
	MovementSpeed       int
	Direction           Direction
	HeadDirection       int

	TilePosition  TilePosition
	WorldPosition linear.Vec3

	ActiveMovement *Movement
	FootstepSound  audio.SoundKey

	animationState AnimationState
	soundState     SoundState
	fadeState      FadeState
	stoppedMoving  bool
}

// NewCommon builds the shared state from spawn data. The entity fades
// in starting at tick.
func NewCommon(data EntityData, tilePosition TilePosition, worldPosition linear.Vec3, tick ClientTick) Common {
	return Common{
		EntityID:            data.EntityID,
		JobID:               data.JobID,
		EntityType:          EntityTypeFromJob(data.JobID),
		HealthPoints:        data.HealthPoints,
		MaximumHealthPoints: data.MaximumHealthPoints,
		MovementSpeed:       data.MovementSpeed,
		Direction:           data.Direction,
		HeadDirection:       data.HeadDirection,
		TilePosition:        tilePosition,
		WorldPosition:       worldPosition,
		FootstepSound:       data.FootstepSound,
		animationState:      NewAnimationState(tick),
		fadeState:           NewFadeState(tick),
	}
}

// IsDead reports whether the death cycle plays.
func (c *Common) IsDead() bool { return c.animationState.IsDead() }

// IsFading reports whether the spawn fade-in is still running.
func (c *Common) IsFading() bool { return c.fadeState.IsFading() }

// StoppedMoving reports whether the entity arrived at its destination
// during the last Update.
func (c *Common) StoppedMoving() bool { return c.stoppedMoving }

// Action returns the current animation action.
func (c *Common) Action() AnimationAction { return c.animationState.Action }

// Update advances movement, animation, fade-in and footstep sound to
// tick.
func (c *Common) Update(player SoundPlayer, m *Map, tick ClientTick) {
	c.updateMovement(player, m, tick)
	c.animationState.Update(tick)

	if c.fadeState.IsFading() && c.fadeState.DoneFadingIn(tick) {
		c.fadeState = OpaqueFadeState()
	}

	if c.animationState.isOneShot() && c.animationState.CycleOver(tick) {
		c.animationState.Idle(tick)
	}
}

func (c *Common) updateMovement(player SoundPlayer, m *Map, tick ClientTick) {
	c.stoppedMoving = false

	movement := c.ActiveMovement
	if movement == nil {
		return
	}

	last := movement.Steps[len(movement.Steps)-1]
	if uint32(tick) > last.ArrivalTimestamp {
		c.SetPosition(m, last.ArrivalPosition, tick)
		c.stoppedMoving = true
		return
	}

	index := 0
	for movement.Steps[index+1].ArrivalTimestamp < uint32(tick) {
		index++
	}
	from := movement.Steps[index]
	to := movement.Steps[index+1]

	c.TilePosition = to.ArrivalPosition
	c.Direction = DirectionBetween(from.ArrivalPosition, to.ArrivalPosition)

	fromPosition, ok := m.WorldPosition(from.ArrivalPosition)
	if !ok {
		return
	}
	toPosition, ok := m.WorldPosition(to.ArrivalPosition)
	if !ok {
		return
	}

	clamped := uint32(tick)
	if from.ArrivalTimestamp > clamped {
		clamped = from.ArrivalTimestamp
	}
	// Steps can share a timestamp when the movement speed is zero;
	// snap to the destination instead of dividing by zero.
	if total := to.ArrivalTimestamp - from.ArrivalTimestamp; total == 0 {
		c.WorldPosition = toPosition
	} else {
		offset := clamped - from.ArrivalTimestamp
		c.WorldPosition = fromPosition.Lerp(toPosition, float32(offset)/float32(total))
	}

	c.soundState.Update(player, c.WorldPosition, c.FootstepSound, tick)
}

// SetPosition snaps the entity to a tile, cancelling any movement.
// An out-of-bounds position is logged by the map lookup and ignored.
func (c *Common) SetPosition(m *Map, position TilePosition, tick ClientTick) {
	worldPosition, ok := m.WorldPosition(position)
	if !ok {
		return
	}

	c.TilePosition = position
	c.WorldPosition = worldPosition
	c.ActiveMovement = nil
	c.animationState.Idle(tick)
}

// MoveFromTo walks the entity from start to goal along the shortest
// walkable path, if one exists. Step timestamps accumulate the per-tile
// movement speed; diagonal steps take 1.4 times as long.
func (c *Common) MoveFromTo(m *Map, finder *PathFinder, start, goal TilePosition, tick ClientTick) {
	path := finder.FindWalkablePath(m, start, goal)
	if len(path) <= 1 {
		return
	}

	steps := make([]Step, 0, len(path))
	timestamp := uint32(tick)
	previous := start
	for i, position := range path {
		if i > 0 {
			duration := uint32(c.MovementSpeed)
			if position.X != previous.X && position.Y != previous.Y {
				duration = uint32(float32(c.MovementSpeed) * diagonalMultiplier)
			}
			timestamp += duration
			previous = position
		}
		steps = append(steps, Step{ArrivalPosition: position, ArrivalTimestamp: timestamp})
	}

	c.ActiveMovement = NewMovement(steps, uint32(tick))
	if !c.animationState.IsWalking() {
		c.animationState.Walk(c.MovementSpeed, tick)
	}
}

// Render appends the entity's billboarded sprite instruction.
func (c *Common) Render(instruction *graphics.RenderInstruction, camera *Camera, addToPicker bool, tick ClientTick) {
	if c.EntityType == EntityTypeHidden {
		return
	}

	frame := c.animationState.Frame()
	instruction.Entities = append(instruction.Entities, graphics.EntityInstruction{
		Transform: camera.BillboardTransform(
			c.WorldPosition.Add(linear.Vec3{Y: entityHeight / 2}),
			linear.Vec2{X: entityWidth, Y: entityHeight},
		),
		FrameSize:   linear.Vec2{X: 1.0 / spriteFrameCount, Y: 1},
		FramePart:   linear.Vec2{X: float32(frame) / spriteFrameCount},
		Color:       korin.Color{R: 1, G: 1, B: 1, A: c.fadeState.Alpha(tick)},
		TextureKey:  uint32(c.JobID),
		EntityID:    uint64(c.EntityID),
		AddToPicker: addToPicker,
	})
}

// Entity is either a Player or an Npc, both delegating shared state to
// Common.
type Entity interface {
	Common() *Common
}

// Player is the controlled character.
type Player struct {
	common Common

	HairID             int
	BaseLevel          int
	JobLevel           int
	SpellPoints        int
	MaximumSpellPoints int
	ActivityPoints     int
	MaximumActivity    int
	StatPoints         int
}

// NewPlayer creates the player free-floating at the map origin; the
// server sends the real position when the map loads. The player's own
// character never fades in.
func NewPlayer(data EntityData, hairID int, tick ClientTick) *Player {
	common := NewCommon(data, TilePosition{}, linear.Vec3{}, tick)
	common.fadeState = OpaqueFadeState()

	return &Player{common: common, HairID: hairID}
}

// Common returns the shared entity state.
func (p *Player) Common() *Common { return &p.common }

// Npc is any non-player entity, monsters included.
type Npc struct {
	common Common
}

// NewNpc spawns an NPC from server data. It reports false when the
// spawn position lies outside the map, which the lookup logs.
func NewNpc(m *Map, finder *PathFinder, data EntityData, tick ClientTick) (*Npc, bool) {
	worldPosition, ok := m.WorldPosition(data.Position)
	if !ok {
		return nil, false
	}

	npc := &Npc{common: NewCommon(data, data.Position, worldPosition, tick)}
	if data.Destination != nil {
		npc.common.MoveFromTo(m, finder, data.Position, *data.Destination, tick)
	}
	return npc, true
}

// Common returns the shared entity state.
func (n *Npc) Common() *Common { return &n.common }
