package world

import (
	"github.com/gogpu/korin/audio"
	"github.com/gogpu/korin/linear"
)

const (
	// soundCooldown is the minimum gap in milliseconds between two
	// plays of the same effect by the same entity.
	soundCooldown = 200
	// spatialSoundRange is the audible radius of entity effects in
	// world units.
	spatialSoundRange = 250.0
)

// SoundPlayer plays positional sound effects. audio.Engine implements
// it; tests substitute a recorder.
type SoundPlayer interface {
	PlaySpatial(key audio.SoundKey, position linear.Vec3, maxRange float32)
}

// SoundState debounces an entity's repeating effect, footsteps mostly,
// so a looping animation does not restart the sample every tick.
type SoundState struct {
	previousKey  audio.SoundKey
	hasPrevious  bool
	lastPlayedAt ClientTick
}

// Update plays key at position unless the same key played within the
// cooldown window. A different key always plays immediately.
func (s *SoundState) Update(player SoundPlayer, position linear.Vec3, key audio.SoundKey, tick ClientTick) {
	if s.hasPrevious && key == s.previousKey {
		if uint32(tick)-uint32(s.lastPlayedAt) < soundCooldown {
			return
		}
	}

	if player != nil {
		player.PlaySpatial(key, position, spatialSoundRange)
	}
	s.previousKey = key
	s.hasPrevious = true
	s.lastPlayedAt = tick
}
