// Package audio plays positional sound effects through a single master
// mixer. Effects are decoded once into memory buffers and mixed with
// per-play volume and pan derived from the listener position.
package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/gogpu/korin/linear"
)

// SoundKey identifies one loaded sound effect.
type SoundKey uint32

const mixerSampleRate = beep.SampleRate(48000)

// Engine owns the speaker and the master mixer. The zero value is not
// usable, construct it with NewEngine.
type Engine struct {
	mu       sync.Mutex
	mixer    *beep.Mixer
	buffers  map[SoundKey]*beep.Buffer
	listener linear.Vec3
	muted    bool
	started  bool
}

// NewEngine creates an engine without opening the audio device. Call
// Start before playing anything; an engine that was never started
// silently drops every play request, which keeps headless runs working.
func NewEngine() *Engine {
	return &Engine{
		mixer:   &beep.Mixer{},
		buffers: make(map[SoundKey]*beep.Buffer),
	}
}

// Start opens the speaker and attaches the master mixer.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return nil
	}
	if err := speaker.Init(mixerSampleRate, mixerSampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(e.mixer)
	e.started = true
	return nil
}

// LoadEffect decodes a WAV stream and registers it under key,
// resampling to the mixer rate when needed. Loading the same key twice
// replaces the previous buffer.
func (e *Engine) LoadEffect(key SoundKey, rc io.ReadCloser) error {
	streamer, format, err := wav.Decode(rc)
	if err != nil {
		return fmt.Errorf("audio: decode effect %d: %w", key, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  mixerSampleRate,
		NumChannels: 2,
		Precision:   2,
	})
	if format.SampleRate != mixerSampleRate {
		buffer.Append(beep.Resample(4, format.SampleRate, mixerSampleRate, streamer))
	} else {
		buffer.Append(streamer)
	}

	e.mu.Lock()
	e.buffers[key] = buffer
	e.mu.Unlock()
	return nil
}

// SetListenerPosition moves the point spatial attenuation is measured
// from, usually the camera focus.
func (e *Engine) SetListenerPosition(position linear.Vec3) {
	e.mu.Lock()
	e.listener = position
	e.mu.Unlock()
}

// SetMuted suppresses all future plays without clearing loaded effects.
func (e *Engine) SetMuted(muted bool) {
	e.mu.Lock()
	e.muted = muted
	e.mu.Unlock()
}

// PlaySpatial plays the effect at a world position. The volume falls
// off linearly with listener distance and reaches zero at maxRange;
// plays outside the range are dropped entirely.
func (e *Engine) PlaySpatial(key SoundKey, position linear.Vec3, maxRange float32) {
	e.mu.Lock()
	buffer := e.buffers[key]
	listener := e.listener
	ready := e.started && !e.muted
	e.mu.Unlock()

	if buffer == nil || !ready {
		return
	}

	gain, pan := spatialGain(listener, position, maxRange)
	if gain <= 0 {
		return
	}

	streamer := beep.Streamer(buffer.Streamer(0, buffer.Len()))
	streamer = &effects.Pan{Streamer: streamer, Pan: pan}
	streamer = &effects.Volume{Streamer: streamer, Base: 2, Volume: math.Log2(gain)}

	speaker.Lock()
	e.mixer.Add(streamer)
	speaker.Unlock()
}

// Close drops all queued sounds. The speaker itself stays open since
// beep owns it process-wide.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	e.started = false
}

// spatialGain maps a listener-to-source offset to a linear volume gain
// in [0, 1] and a stereo pan in [-0.5, 0.5].
func spatialGain(listener, position linear.Vec3, maxRange float32) (gain, pan float64) {
	if maxRange <= 0 {
		return 0, 0
	}

	distance := listener.Distance(position)
	if distance >= maxRange {
		return 0, 0
	}
	gain = float64(1 - distance/maxRange)

	pan = float64((position.X - listener.X) / maxRange)
	if pan > 1 {
		pan = 1
	} else if pan < -1 {
		pan = -1
	}
	return gain, pan * 0.5
}
