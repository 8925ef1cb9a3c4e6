package simconfig

import "errors"

var (
	// ErrInvalidConfig is the sentinel wrapped by every Validate failure.
	// Callers should use errors.Is(err, ErrInvalidConfig) to detect a
	// configuration problem regardless of which field triggered it.
	ErrInvalidConfig = errors.New("simconfig: invalid configuration")

	// ErrUnknownPolicy indicates a disk-scheduler policy name that is not
	// one of "fifo", "look", "flook".
	ErrUnknownPolicy = errors.New("simconfig: unknown disk scheduler policy")

	// ErrSectorOutOfRange indicates a workload step referencing a sector
	// outside [0, TotalSectors) for the configured disk geometry.
	ErrSectorOutOfRange = errors.New("simconfig: sector out of range")
)
