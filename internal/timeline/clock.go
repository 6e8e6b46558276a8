package timeline

import (
	"sync"
	"time"
)

// PlaybackState is the playback clock state.
type PlaybackState string

// Playback states.
const (
	StateStopped PlaybackState = "stopped"
	StatePlaying PlaybackState = "playing"
	StatePaused  PlaybackState = "paused"
)

// AdvanceFunc applies one tick's worth of playhead movement. It returns
// false when playback must stop (the tick would reach or pass the end of
// the timeline); the callee is responsible for resetting the playhead.
type AdvanceFunc func(step float64) bool

// Clock is a timer-driven playback state machine. It advances the
// playhead by the tick interval's wall-clock duration on each tick; this
// is a simulated clock, not driven by media presentation timestamps.
//
// The ticker goroutine is singular: Play while already playing is a
// no-op guard, never a stacked timer.
type Clock struct {
	interval time.Duration
	advance  AdvanceFunc
	onStop   func()

	mu     sync.Mutex
	state  PlaybackState
	cancel chan struct{}
}

// NewClock creates a stopped clock. onStop, if non-nil, is called when a
// tick auto-stops playback at the end of the timeline.
func NewClock(interval time.Duration, advance AdvanceFunc, onStop func()) *Clock {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Clock{
		interval: interval,
		advance:  advance,
		onStop:   onStop,
		state:    StateStopped,
	}
}

// State returns the current playback state.
func (c *Clock) State() PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Interval returns the tick interval.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Play starts the tick goroutine. No-op while already playing.
func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StatePlaying {
		return
	}
	c.state = StatePlaying
	c.cancel = make(chan struct{})
	go c.run(c.cancel)
}

// Pause stops the tick and retains the playhead. No-op unless playing.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePlaying {
		return
	}
	close(c.cancel)
	c.state = StatePaused
}

// Stop stops the tick and enters Stopped. The caller resets the playhead.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StatePlaying {
		close(c.cancel)
	}
	c.state = StateStopped
}

func (c *Clock) run(cancel chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			// A tick already queued when Pause/Stop fired must not
			// advance the playhead.
			if c.State() != StatePlaying {
				return
			}
			if !c.advance(c.interval.Seconds()) {
				c.autoStop(cancel)
				return
			}
		}
	}
}

// autoStop transitions Playing → Stopped from inside the tick goroutine.
func (c *Clock) autoStop(cancel chan struct{}) {
	c.mu.Lock()
	// Only stop if this goroutine's run is still the active one.
	if c.state == StatePlaying && c.cancel == cancel {
		c.state = StateStopped
	}
	c.mu.Unlock()
	if c.onStop != nil {
		c.onStop()
	}
}
