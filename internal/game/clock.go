package game

import (
	"sync"
	"time"
)

// TimeProvider supplies wall-clock readings to the simulation clock.
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock with its monotonic component.
type MonotonicTimeProvider struct{}

// Now returns time.Now().
func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a controllable time source for tests.
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a mock provider starting at startTime.
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the current mocked time.
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current mocked time.
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the mocked time forward by d.
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// Clock is the single pausable simulation clock of a run. Every cooldown,
// lifespan and spawn timer reads Elapsed, so freezing it stops them all.
type Clock struct {
	provider TimeProvider

	runStart time.Time
	frozen   bool
	frozenAt time.Time
}

// NewClock creates a frozen clock reading from provider.
func NewClock(provider TimeProvider) *Clock {
	now := provider.Now()
	return &Clock{provider: provider, runStart: now, frozen: true, frozenAt: now}
}

// Start begins a new run at the current instant, running.
func (c *Clock) Start() {
	c.runStart = c.provider.Now()
	c.frozen = false
	c.frozenAt = time.Time{}
}

// Freeze records the instant simulation time stops. No-op if already frozen.
func (c *Clock) Freeze() {
	if c.frozen {
		return
	}
	c.frozen = true
	c.frozenAt = c.provider.Now()
}

// Thaw resumes the clock and shifts the run start forward by exactly the
// frozen duration. No-op if running.
func (c *Clock) Thaw() {
	if !c.frozen {
		return
	}
	c.runStart = c.runStart.Add(c.provider.Now().Sub(c.frozenAt))
	c.frozen = false
	c.frozenAt = time.Time{}
}

// Frozen reports whether simulation time is stopped.
func (c *Clock) Frozen() bool {
	return c.frozen
}

// Elapsed returns simulation time since run start.
func (c *Clock) Elapsed() time.Duration {
	if c.frozen {
		return c.frozenAt.Sub(c.runStart)
	}
	return c.provider.Now().Sub(c.runStart)
}
