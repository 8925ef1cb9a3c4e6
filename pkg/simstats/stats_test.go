package simstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDiskStatsComputesAverages(t *testing.T) {
	d := NewDiskStats(4, 40.0, 16.0, 8.0)
	assert.Equal(t, 4, d.Completed)
	assert.InDelta(t, 10.0, d.AverageSeekMs, 1e-9)
	assert.InDelta(t, 4.0, d.AverageRotationMs, 1e-9)
	assert.InDelta(t, 2.0, d.AverageTransferMs, 1e-9)
	assert.InDelta(t, 64.0, d.TotalDiskTimeMs, 1e-9)
}

func TestNewDiskStatsZeroCompletedNoDivideByZero(t *testing.T) {
	d := NewDiskStats(0, 0, 0, 0)
	assert.Equal(t, 0.0, d.AverageSeekMs)
}

func TestNewCacheStatsHitRate(t *testing.T) {
	c := NewCacheStats(3, 1)
	assert.InDelta(t, 0.75, c.HitRate, 1e-9)
}

func TestNewCacheStatsNoAccessesYieldsZeroRate(t *testing.T) {
	c := NewCacheStats(0, 0)
	assert.Equal(t, 0.0, c.HitRate)
}

func TestNoopSinkIsSafeToCall(t *testing.T) {
	var sink Sink = NoopSink{}
	assert.NotPanics(t, func() {
		sink.Emit(Event{Kind: EventFlush, Message: "flush"})
	})
}
