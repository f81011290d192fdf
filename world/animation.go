package world

// fadeInDuration is how long a freshly spawned entity takes to fade to
// full opacity, in milliseconds.
const fadeInDuration = 500

// FadeState tracks the spawn fade-in of an entity sprite.
type FadeState struct {
	start    ClientTick
	duration uint32
	opaque   bool
}

// NewFadeState starts a fade-in at tick.
func NewFadeState(tick ClientTick) FadeState {
	return FadeState{start: tick, duration: fadeInDuration}
}

// OpaqueFadeState returns a state that never fades. The player's own
// character spawns fully opaque.
func OpaqueFadeState() FadeState {
	return FadeState{opaque: true}
}

// IsFading reports whether the fade-in is still tracked.
func (f FadeState) IsFading() bool {
	return !f.opaque
}

// DoneFadingIn reports whether the fade-in has completed at tick.
func (f FadeState) DoneFadingIn(tick ClientTick) bool {
	return uint32(tick)-uint32(f.start) >= f.duration
}

// Alpha returns the sprite opacity in [0, 1] at tick.
func (f FadeState) Alpha(tick ClientTick) float32 {
	if f.opaque {
		return 1
	}
	elapsed := uint32(tick) - uint32(f.start)
	if elapsed >= f.duration {
		return 1
	}
	return float32(elapsed) / float32(f.duration)
}

// AnimationAction is the sprite cycle an entity currently plays.
type AnimationAction int

const (
	ActionIdle AnimationAction = iota
	ActionWalk
	ActionAttack
	ActionPickup
	ActionDead
)

// Cycle durations in milliseconds. Walk cycles instead derive their
// duration from the entity's movement speed.
const (
	idleCycleDuration   = 1000
	attackCycleDuration = 600
	pickupCycleDuration = 400
	deadCycleDuration   = 800
)

// spriteFrameCount is the number of frames per animation cycle in the
// sprite sheets.
const spriteFrameCount = 8

// AnimationState tracks which cycle an entity plays and where in the
// cycle it is. Update advances it once per simulation tick.
type AnimationState struct {
	Action    AnimationAction
	StartTime ClientTick
	Duration  uint32
	Time      uint32
}

// NewAnimationState returns an idle state started at tick.
func NewAnimationState(tick ClientTick) AnimationState {
	return AnimationState{Action: ActionIdle, StartTime: tick, Duration: idleCycleDuration}
}

// Idle switches to the looping idle cycle.
func (a *AnimationState) Idle(tick ClientTick) {
	*a = AnimationState{Action: ActionIdle, StartTime: tick, Duration: idleCycleDuration}
}

// Walk switches to the looping walk cycle. One cycle spans one tile,
// so the cycle duration is the per-tile movement speed.
func (a *AnimationState) Walk(movementSpeed int, tick ClientTick) {
	duration := uint32(movementSpeed)
	if duration == 0 {
		duration = idleCycleDuration
	}
	*a = AnimationState{Action: ActionWalk, StartTime: tick, Duration: duration}
}

// Attack plays one attack cycle.
func (a *AnimationState) Attack(tick ClientTick) {
	*a = AnimationState{Action: ActionAttack, StartTime: tick, Duration: attackCycleDuration}
}

// Pickup plays one pickup cycle.
func (a *AnimationState) Pickup(tick ClientTick) {
	*a = AnimationState{Action: ActionPickup, StartTime: tick, Duration: pickupCycleDuration}
}

// Dead plays the death cycle once and holds its last frame.
func (a *AnimationState) Dead(tick ClientTick) {
	*a = AnimationState{Action: ActionDead, StartTime: tick, Duration: deadCycleDuration}
}

// Update advances the cycle position to tick. Looping actions wrap,
// one-shot actions clamp to their last frame.
func (a *AnimationState) Update(tick ClientTick) {
	elapsed := uint32(tick) - uint32(a.StartTime)
	switch a.Action {
	case ActionIdle, ActionWalk:
		a.Time = elapsed % a.Duration
	default:
		if elapsed >= a.Duration {
			elapsed = a.Duration - 1
		}
		a.Time = elapsed
	}
}

// CycleOver reports whether a one-shot cycle has finished at tick.
func (a *AnimationState) CycleOver(tick ClientTick) bool {
	return uint32(tick)-uint32(a.StartTime) >= a.Duration
}

// IsWalking reports whether the walk cycle plays.
func (a *AnimationState) IsWalking() bool { return a.Action == ActionWalk }

// IsDead reports whether the death cycle plays.
func (a *AnimationState) IsDead() bool { return a.Action == ActionDead }

// isOneShot reports whether the action returns to idle when its cycle
// completes.
func (a *AnimationState) isOneShot() bool {
	return a.Action == ActionAttack || a.Action == ActionPickup
}

// Frame returns the sprite sheet frame index for the current cycle
// position.
func (a *AnimationState) Frame() int {
	if a.Duration == 0 {
		return 0
	}
	frame := int(a.Time) * spriteFrameCount / int(a.Duration)
	if frame >= spriteFrameCount {
		frame = spriteFrameCount - 1
	}
	return frame
}
