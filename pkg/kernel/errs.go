package kernel

import "errors"

// ErrIterationCapReached is returned by Run when the configured safety
// iteration cap is hit before every process finished. It is non-fatal:
// Run still returns whatever statistics accumulated up to that point.
var ErrIterationCapReached = errors.New("kernel: safety iteration cap reached before all processes finished")
