package world

import (
	"math"
	"testing"

	"github.com/gogpu/korin/audio"
	"github.com/gogpu/korin/graphics"
	"github.com/gogpu/korin/linear"
)

// recordingPlayer captures spatial plays for inspection.
type recordingPlayer struct {
	keys      []audio.SoundKey
	positions []linear.Vec3
	ranges    []float32
}

func (r *recordingPlayer) PlaySpatial(key audio.SoundKey, position linear.Vec3, maxRange float32) {
	r.keys = append(r.keys, key)
	r.positions = append(r.positions, position)
	r.ranges = append(r.ranges, maxRange)
}

func testEntityData(id EntityID, jobID int, position TilePosition) EntityData {
	return EntityData{
		EntityID:            id,
		JobID:               jobID,
		Position:            position,
		MovementSpeed:       150,
		HealthPoints:        80,
		MaximumHealthPoints: 100,
		FootstepSound:       audio.SoundKey(9),
	}
}

func TestEntityTypeFromJob(t *testing.T) {
	cases := []struct {
		jobID int
		want  EntityType
	}{
		{0, EntityTypePlayer},
		{44, EntityTypePlayer},
		{4000, EntityTypePlayer},
		{5999, EntityTypePlayer},
		{45, EntityTypeWarp},
		{111, EntityTypeHidden},
		{46, EntityTypeNpc},
		{999, EntityTypeNpc},
		{10000, EntityTypeNpc},
		{1000, EntityTypeMonster},
		{3999, EntityTypeMonster},
		{20000, EntityTypeMonster},
		{50000, EntityTypeNpc},
	}
	for _, tc := range cases {
		if got := EntityTypeFromJob(tc.jobID); got != tc.want {
			t.Errorf("EntityTypeFromJob(%d) = %v, want %v", tc.jobID, got, tc.want)
		}
	}
}

func TestMoveFromToStepTimestamps(t *testing.T) {
	m := newFlatMap(t, 10, 10, 0)
	finder := NewPathFinder()

	common := NewCommon(testEntityData(1, 50, TilePosition{X: 1, Y: 1}), TilePosition{X: 1, Y: 1}, linear.Vec3{}, 1000)
	common.MoveFromTo(m, finder, TilePosition{X: 1, Y: 1}, TilePosition{X: 4, Y: 1}, 1000)

	movement := common.ActiveMovement
	if movement == nil {
		t.Fatal("no movement started")
	}
	want := []uint32{1000, 1150, 1300, 1450}
	if len(movement.Steps) != len(want) {
		t.Fatalf("step count = %d, want %d", len(movement.Steps), len(want))
	}
	for i, step := range movement.Steps {
		if step.ArrivalTimestamp != want[i] {
			t.Errorf("step %d arrives at %d, want %d", i, step.ArrivalTimestamp, want[i])
		}
	}
	if common.Action() != ActionWalk {
		t.Errorf("action = %v, want walk", common.Action())
	}
}

func TestMoveFromToDiagonalCostsMore(t *testing.T) {
	m := newFlatMap(t, 10, 10, 0)
	finder := NewPathFinder()

	common := NewCommon(testEntityData(1, 50, TilePosition{X: 1, Y: 1}), TilePosition{X: 1, Y: 1}, linear.Vec3{}, 1000)
	common.MoveFromTo(m, finder, TilePosition{X: 1, Y: 1}, TilePosition{X: 3, Y: 3}, 1000)

	movement := common.ActiveMovement
	if movement == nil {
		t.Fatal("no movement started")
	}
	// Two diagonal steps at 150 * 1.4 = 210 ms each.
	want := []uint32{1000, 1210, 1420}
	if len(movement.Steps) != len(want) {
		t.Fatalf("step count = %d, want %d", len(movement.Steps), len(want))
	}
	for i, step := range movement.Steps {
		if step.ArrivalTimestamp != want[i] {
			t.Errorf("step %d arrives at %d, want %d", i, step.ArrivalTimestamp, want[i])
		}
	}
}

func TestUpdateInterpolatesMovement(t *testing.T) {
	m := newFlatMap(t, 10, 10, 0)
	finder := NewPathFinder()
	player := &recordingPlayer{}

	start := TilePosition{X: 1, Y: 1}
	startPosition, _ := m.WorldPosition(start)
	common := NewCommon(testEntityData(1, 50, start), start, startPosition, 1000)
	common.MoveFromTo(m, finder, start, TilePosition{X: 3, Y: 1}, 1000)

	// Halfway through the first step: x between tile centers 15 and 25.
	common.Update(player, m, 1075)
	if common.WorldPosition.X != 20 {
		t.Errorf("interpolated x = %v, want 20", common.WorldPosition.X)
	}
	if common.TilePosition != (TilePosition{X: 2, Y: 1}) {
		t.Errorf("tile position = %v, want the next step's tile", common.TilePosition)
	}
	if common.Direction != DirectionEast {
		t.Errorf("direction = %v, want east", common.Direction)
	}
	if len(player.keys) != 1 || player.keys[0] != 9 || player.ranges[0] != 250 {
		t.Errorf("footstep not played with range 250: %v %v", player.keys, player.ranges)
	}
}

func TestUpdateCompletesMovement(t *testing.T) {
	m := newFlatMap(t, 10, 10, 0)
	finder := NewPathFinder()

	start := TilePosition{X: 1, Y: 1}
	startPosition, _ := m.WorldPosition(start)
	common := NewCommon(testEntityData(1, 50, start), start, startPosition, 1000)
	common.MoveFromTo(m, finder, start, TilePosition{X: 3, Y: 1}, 1000)

	common.Update(nil, m, 1400)
	if !common.StoppedMoving() {
		t.Error("arrival not reported")
	}
	if common.ActiveMovement != nil {
		t.Error("movement still active after arrival")
	}
	if common.TilePosition != (TilePosition{X: 3, Y: 1}) || common.WorldPosition.X != 35 {
		t.Errorf("final position = %v %v, want tile {3 1} at x 35", common.TilePosition, common.WorldPosition)
	}
	if common.Action() != ActionIdle {
		t.Errorf("action after arrival = %v, want idle", common.Action())
	}
}

func TestUpdateZeroDurationStepSnapsToDestination(t *testing.T) {
	m := newFlatMap(t, 10, 10, 0)
	finder := NewPathFinder()

	start := TilePosition{X: 1, Y: 1}
	startPosition, _ := m.WorldPosition(start)
	data := testEntityData(1, 50, start)
	data.MovementSpeed = 0
	common := NewCommon(data, start, startPosition, 1000)
	common.MoveFromTo(m, finder, start, TilePosition{X: 3, Y: 1}, 1000)

	// All steps share the start timestamp; interpolation must snap
	// instead of producing NaN.
	common.Update(nil, m, 1000)
	if math.IsNaN(float64(common.WorldPosition.X)) {
		t.Fatalf("world position = %v, want finite", common.WorldPosition)
	}
	if common.TilePosition != (TilePosition{X: 2, Y: 1}) || common.WorldPosition.X != 25 {
		t.Errorf("position = %v %v, want tile {2 1} at x 25", common.TilePosition, common.WorldPosition)
	}
}

func TestFadeInCompletesAfterHalfSecond(t *testing.T) {
	m := newFlatMap(t, 4, 4, 0)
	common := NewCommon(testEntityData(1, 50, TilePosition{}), TilePosition{}, linear.Vec3{}, 1000)

	if alpha := common.fadeState.Alpha(1000); alpha != 0 {
		t.Errorf("alpha at spawn = %v, want 0", alpha)
	}
	if alpha := common.fadeState.Alpha(1250); alpha != 0.5 {
		t.Errorf("alpha halfway = %v, want 0.5", alpha)
	}

	common.Update(nil, m, 1500)
	if common.IsFading() {
		t.Error("still fading after the fade-in duration")
	}
	if alpha := common.fadeState.Alpha(1500); alpha != 1 {
		t.Errorf("alpha after fade = %v, want 1", alpha)
	}
}

func TestSoundStateCooldown(t *testing.T) {
	player := &recordingPlayer{}
	state := SoundState{}
	position := linear.Vec3{X: 10}

	state.Update(player, position, 9, 1000)
	state.Update(player, position, 9, 1100)
	if len(player.keys) != 1 {
		t.Fatalf("repeat within cooldown played: %d plays", len(player.keys))
	}

	state.Update(player, position, 9, 1200)
	if len(player.keys) != 2 {
		t.Fatalf("repeat after cooldown suppressed: %d plays", len(player.keys))
	}

	state.Update(player, position, 10, 1250)
	if len(player.keys) != 3 || player.keys[2] != 10 {
		t.Errorf("different key within cooldown suppressed: %v", player.keys)
	}
}

func TestOneShotAnimationReturnsToIdle(t *testing.T) {
	m := newFlatMap(t, 4, 4, 0)
	common := NewCommon(testEntityData(1, 50, TilePosition{}), TilePosition{}, linear.Vec3{}, 1000)

	common.animationState.Attack(2000)
	common.Update(nil, m, 2300)
	if common.Action() != ActionAttack {
		t.Errorf("action mid-cycle = %v, want attack", common.Action())
	}

	common.Update(nil, m, 2700)
	if common.Action() != ActionIdle {
		t.Errorf("action after cycle = %v, want idle", common.Action())
	}

	common.animationState.Dead(3000)
	common.Update(nil, m, 9000)
	if !common.IsDead() {
		t.Error("death cycle did not hold")
	}
}

func TestPlayerSpawnsOpaque(t *testing.T) {
	player := NewPlayer(testEntityData(7, 0, TilePosition{}), 3, 1000)
	if player.Common().IsFading() {
		t.Error("own character fades in")
	}
	if player.Common().EntityType != EntityTypePlayer {
		t.Errorf("entity type = %v, want player", player.Common().EntityType)
	}
}

func TestNpcOutOfBoundsRejected(t *testing.T) {
	m := newFlatMap(t, 4, 4, 0)
	finder := NewPathFinder()

	if _, ok := NewNpc(m, finder, testEntityData(2, 100, TilePosition{X: 99, Y: 99}), 1000); ok {
		t.Error("out-of-bounds spawn accepted")
	}
}

func TestNpcSpawnsWalkingToDestination(t *testing.T) {
	m := newFlatMap(t, 10, 10, 0)
	finder := NewPathFinder()

	data := testEntityData(2, 100, TilePosition{X: 1, Y: 1})
	data.Destination = &TilePosition{X: 5, Y: 1}

	npc, ok := NewNpc(m, finder, data, 1000)
	if !ok {
		t.Fatal("spawn rejected")
	}
	if npc.Common().ActiveMovement == nil || npc.Common().Action() != ActionWalk {
		t.Error("NPC with destination did not start walking")
	}
}

func TestRenderAppendsEntityInstruction(t *testing.T) {
	m := newFlatMap(t, 10, 10, 0)
	camera := NewCamera(screenSize(640, 480))
	common := NewCommon(testEntityData(11, 50, TilePosition{X: 2, Y: 2}), TilePosition{X: 2, Y: 2}, linear.Vec3{}, 1000)
	common.Update(nil, m, 1250)

	var instruction graphics.RenderInstruction
	common.Render(&instruction, camera, true, 1250)

	if len(instruction.Entities) != 1 {
		t.Fatalf("entity count = %d, want 1", len(instruction.Entities))
	}
	entity := instruction.Entities[0]
	if entity.EntityID != 11 || !entity.AddToPicker {
		t.Errorf("identity not carried: id %d picker %v", entity.EntityID, entity.AddToPicker)
	}
	if entity.Color.A != 0.5 {
		t.Errorf("fade alpha = %v, want 0.5", entity.Color.A)
	}

	hidden := NewCommon(testEntityData(12, 111, TilePosition{}), TilePosition{}, linear.Vec3{}, 1000)
	hidden.Render(&instruction, camera, true, 1250)
	if len(instruction.Entities) != 1 {
		t.Error("hidden entity rendered")
	}
}
