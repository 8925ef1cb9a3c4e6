package simclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockAdvanceMonotonic(t *testing.T) {
	var c Clock
	c.Advance(1.5)
	c.Advance(0.25)
	assert.InDelta(t, 1.75, c.Now(), Tolerance)
}

func TestClockAdvanceNegativePanics(t *testing.T) {
	var c Clock
	require.Panics(t, func() { c.Advance(-1) })
}

func TestClockSetAtLeast(t *testing.T) {
	var c Clock
	c.Advance(5)
	c.SetAtLeast(2) // behind now, no-op
	assert.InDelta(t, 5, c.Now(), Tolerance)
	c.SetAtLeast(10)
	assert.InDelta(t, 10, c.Now(), Tolerance)
}

func TestEqualWithinTolerance(t *testing.T) {
	assert.True(t, Equal(1.00001, 1.00002))
	assert.False(t, Equal(1.0, 1.001))
}

func TestAtOrBefore(t *testing.T) {
	assert.True(t, AtOrBefore(1.0, 1.00001))
	assert.True(t, AtOrBefore(0.5, 1.0))
	assert.False(t, AtOrBefore(2.0, 1.0))
}
