package core

// Clock is a source of logical time in seconds.
type Clock interface {
	Now() float64
}

// GameClock is a monotonically increasing logical clock advanced by the host loop.
// A frozen clock ignores advances, which is how gameplay time stops while paused.
// The same type backs the unscaled clock domain; that one is simply never frozen.
type GameClock struct {
	now    float64
	frozen bool
}

// NewGameClock creates a running clock at time zero.
func NewGameClock() *GameClock {
	return &GameClock{}
}

// Now returns the current logical time in seconds.
func (c *GameClock) Now() float64 {
	return c.now
}

// Advance moves the clock forward and returns the delta actually applied.
// Negative deltas and advances on a frozen clock apply nothing.
func (c *GameClock) Advance(dt float64) float64 {
	if c.frozen || dt <= 0 {
		return 0
	}
	c.now += dt
	return dt
}

// SetFrozen freezes or unfreezes the clock.
func (c *GameClock) SetFrozen(frozen bool) {
	c.frozen = frozen
}

// Frozen reports whether the clock currently ignores advances.
func (c *GameClock) Frozen() bool {
	return c.frozen
}

// Scale returns 0 when frozen and 1 when running.
func (c *GameClock) Scale() float64 {
	if c.frozen {
		return 0
	}
	return 1
}
