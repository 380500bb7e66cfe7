package scheduler

import (
	"sync"
	"time"
)

// TimeProvider is the source of real time for a PausableClock.
type TimeProvider interface {
	Now() time.Time
}

// SystemTime reads the wall clock (with its monotonic component).
type SystemTime struct{}

func (SystemTime) Now() time.Time {
	return time.Now()
}

// ManualTime is a TimeProvider advanced explicitly by the caller. It lets
// hosts and tests drive frames deterministically.
type ManualTime struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualTime creates a provider frozen at start.
func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{now: start}
}

func (m *ManualTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the provider forward by d.
func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// PausableClock reports game time: real time minus every paused interval.
type PausableClock struct {
	mu       sync.RWMutex
	provider TimeProvider

	paused      bool
	pauseStart  time.Time
	pausedTotal time.Duration
}

// NewPausableClock creates a running clock over provider. A nil provider
// means SystemTime.
func NewPausableClock(provider TimeProvider) *PausableClock {
	if provider == nil {
		provider = SystemTime{}
	}
	return &PausableClock{provider: provider}
}

// Now returns the current game time. While paused it stays frozen at the
// moment the pause began.
func (c *PausableClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.paused {
		return c.pauseStart.Add(-c.pausedTotal)
	}
	return c.provider.Now().Add(-c.pausedTotal)
}

// Pause freezes game time. Pausing a paused clock does nothing.
func (c *PausableClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused {
		return
	}
	c.paused = true
	c.pauseStart = c.provider.Now()
}

// Resume lets game time advance again, excluding the paused interval.
func (c *PausableClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paused {
		return
	}
	c.pausedTotal += c.provider.Now().Sub(c.pauseStart)
	c.pauseStart = time.Time{}
	c.paused = false
}

func (c *PausableClock) IsPaused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// PausedTotal returns the cumulative paused duration, including the current
// pause.
func (c *PausableClock) PausedTotal() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.pausedTotal
	if c.paused {
		total += c.provider.Now().Sub(c.pauseStart)
	}
	return total
}
