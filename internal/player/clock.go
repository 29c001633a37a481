package player

import (
	"sync"
	"time"
)

// Clock is a playback position that advances with wall time at a given
// speed. It satisfies track.Playhead.
type Clock struct {
	mu     sync.Mutex
	now    func() time.Time
	origin time.Time
	offset float64
	speed  float64
	paused bool
}

// NewClock starts a clock at offset seconds.
func NewClock(offset, speed float64) *Clock {
	return newClockWithNow(offset, speed, time.Now)
}

func newClockWithNow(offset, speed float64, now func() time.Time) *Clock {
	if speed <= 0 {
		speed = 1
	}
	if offset < 0 {
		offset = 0
	}
	return &Clock{
		now:    now,
		origin: now(),
		offset: offset,
		speed:  speed,
	}
}

func (c *Clock) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position()
}

// Seek jumps to t seconds, keeping the paused state.
func (c *Clock) Seek(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t < 0 {
		t = 0
	}
	c.offset = t
	c.origin = c.now()
}

func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.offset = c.position()
	c.paused = true
}

func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.origin = c.now()
	c.paused = false
}

func (c *Clock) position() float64 {
	if c.paused {
		return c.offset
	}
	return c.offset + c.now().Sub(c.origin).Seconds()*c.speed
}
