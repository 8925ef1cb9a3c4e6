// Package simclock holds the simulator's virtual clock: a single
// monotonically non-decreasing value in fractional milliseconds.
package simclock

// Tolerance is the epsilon used for all virtual-time equality and
// ordering comparisons. Two timestamps within Tolerance of each other are
// considered simultaneous.
const Tolerance = 1e-4

// Clock is a monotonic virtual-time counter. The zero value starts at 0ms
// and is ready to use. Only the simulation kernel advances it.
type Clock struct {
	now float64
}

// Now returns the current virtual time in milliseconds.
func (c *Clock) Now() float64 { return c.now }

// Advance moves the clock forward by delta milliseconds. Advancing by a
// negative delta panics: the clock never decreases.
func (c *Clock) Advance(delta float64) {
	if delta < 0 {
		panic("simclock: Advance called with negative delta")
	}
	c.now += delta
}

// SetAtLeast jumps the clock forward to t if t is ahead of now; it is a
// no-op if t is at or behind now. The comparison is exact, without
// Tolerance.
func (c *Clock) SetAtLeast(t float64) {
	if t > c.now {
		c.now = t
	}
}

// Equal reports whether a and b are the same instant within Tolerance.
func Equal(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < Tolerance
}

// AtOrBefore reports whether a is at or before b within Tolerance.
func AtOrBefore(a, b float64) bool {
	return a < b || Equal(a, b)
}
