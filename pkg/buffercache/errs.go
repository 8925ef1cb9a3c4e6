package buffercache

import "errors"

// ErrNoFreeBuffer indicates the eviction order exhausted every segment
// without finding a buffer to reclaim. This cannot happen when the cache
// holds at least one buffer; it is treated as a fatal programmer error,
// never a recoverable runtime condition.
var ErrNoFreeBuffer = errors.New("buffercache: no free buffer available")
