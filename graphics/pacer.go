package graphics

import (
	"sync"
	"time"

	"github.com/gogpu/korin"
)

// FrameStage is the CPU timing span of one frame, tagged with a
// generation counter so a stale stage from before a surface rebuild
// cannot close the wrong measurement.
type FrameStage struct {
	generation uint64
	begin      time.Time
}

// FramePacer throttles CPU-side frame submission so the CPU does not
// queue frames faster than the presentation engine consumes them.
//
// It keeps a two-stage timing model: the CPU span between BeginFrameStage
// and EndFrameStage, and the GPU cadence inferred from the gap between
// consecutive begins. The pacing target is the configured framerate
// limit when enabled, otherwise the monitor refresh interval.
type FramePacer struct {
	mu sync.Mutex

	monitorHz  uint32
	limit      LimitFramerate
	generation uint64

	lastBegin time.Time
	cpuTime   time.Duration // smoothed CPU span of recent frames
	frameTime time.Duration // smoothed begin-to-begin cadence

	// now and sleep are injectable for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewFramePacer creates a pacer assuming a 60 Hz monitor until
// SetMonitorFrequency reports otherwise.
func NewFramePacer() *FramePacer {
	return &FramePacer{
		monitorHz: 60,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// SetMonitorFrequency updates the refresh rate of the active monitor.
func (p *FramePacer) SetMonitorFrequency(hz uint32) {
	if hz == 0 {
		hz = 60
	}
	p.mu.Lock()
	p.monitorHz = hz
	p.mu.Unlock()
}

// SetLimitFramerate configures the explicit framerate cap.
func (p *FramePacer) SetLimitFramerate(limit LimitFramerate) {
	p.mu.Lock()
	p.limit = limit
	p.mu.Unlock()
}

// targetInterval returns the pacing interval, or 0 for unlimited.
func (p *FramePacer) targetInterval() time.Duration {
	if p.limit.Enabled && p.limit.Rate > 0 {
		return time.Second / time.Duration(p.limit.Rate)
	}
	return 0
}

// WaitForFrame blocks until the next frame may begin, based on the time
// of the previous begin and the pacing target. Without a framerate limit
// it returns immediately: vsync pacing is the surface's job.
func (p *FramePacer) WaitForFrame() {
	p.mu.Lock()
	interval := p.targetInterval()
	last := p.lastBegin
	p.mu.Unlock()

	if interval == 0 || last.IsZero() {
		return
	}
	if wait := interval - p.now().Sub(last); wait > 0 {
		p.sleep(wait)
	}
}

// BeginFrameStage opens the CPU timing span of a new frame.
func (p *FramePacer) BeginFrameStage() FrameStage {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if !p.lastBegin.IsZero() {
		p.frameTime = smooth(p.frameTime, now.Sub(p.lastBegin))
	}
	p.lastBegin = now
	p.generation++
	return FrameStage{generation: p.generation, begin: now}
}

// EndFrameStage closes a timing span. Stages from an older generation
// are ignored; they belong to a frame that was superseded by a rebuild.
func (p *FramePacer) EndFrameStage(stage FrameStage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if stage.generation != p.generation {
		korin.Logger().Debug("graphics: stale frame stage dropped",
			"stage", stage.generation, "current", p.generation)
		return
	}
	p.cpuTime = smooth(p.cpuTime, p.now().Sub(stage.begin))
}

// Generation returns the current frame generation counter.
func (p *FramePacer) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// CPUTime returns the smoothed CPU frame span.
func (p *FramePacer) CPUTime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cpuTime
}

// FrameTime returns the smoothed begin-to-begin frame cadence.
func (p *FramePacer) FrameTime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frameTime
}

// smooth is an exponential moving average with a 1/4 step.
func smooth(old, sample time.Duration) time.Duration {
	if old == 0 {
		return sample
	}
	return old + (sample-old)/4
}
