package simconfig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 4.0, cfg.RotationLatencyMs(), 1e-9)
	assert.InDelta(t, 0.016, cfg.SectorRWMs(), 1e-3)
	assert.Equal(t, 5_000_000, cfg.TotalSectors())
}

func TestValidateRejectsUnknownPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = "bogus"
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestValidateRejectsNonPositiveSizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BufferCount = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidateRejectsNegativeTimes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SyscallReadMs = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidateRejectsZeroQuantum(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeQuantumMs = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestWorkloadValidateCatchesOutOfRangeSector(t *testing.T) {
	cfg := DefaultConfig()
	w := Workload{Processes: []ProcessSpec{
		{Name: "P1", Program: []Step{{Sector: cfg.TotalSectors(), Write: false}}},
	}}
	err := w.Validate(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSectorOutOfRange))
}

func TestSampleWorkloadIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	w1 := SampleWorkload(cfg)
	w2 := SampleWorkload(cfg)
	require.Equal(t, w1, w2)
	require.NoError(t, w1.Validate(cfg))
	assert.Len(t, w1.Processes, 8)
}
