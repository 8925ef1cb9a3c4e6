// Package buffercache implements the segmented LFU buffer cache: three
// frequency bands (Left/Middle/Right), a free pool, and the
// promotion/rebalance/eviction rules that move buffers between them.
package buffercache

// Cache is the segmented LFU buffer cache. Segment slices are kept
// most-recent-first: index 0 is the front, the last element is the tail.
// Not safe for concurrent use: the kernel owns it exclusively.
type Cache struct {
	leftMax   int
	middleMax int

	left   []*Buffer
	middle []*Buffer
	right  []*Buffer
	free   []*Buffer

	index map[int]*Buffer

	Hits   int
	Misses int
}

// NewCache allocates bufferCount buffers, all initially free.
func NewCache(bufferCount, leftMax, middleMax int) *Cache {
	c := &Cache{
		leftMax:   leftMax,
		middleMax: middleMax,
		index:     make(map[int]*Buffer, bufferCount),
	}
	for i := 0; i < bufferCount; i++ {
		c.free = append(c.free, &Buffer{ID: i})
	}
	return c
}

// Lookup finds the buffer currently holding sector, if any, in constant
// time via the sector index.
func (c *Cache) Lookup(sector int) (*Buffer, bool) {
	b, ok := c.index[sector]
	return b, ok
}

// Access implements the cache's access(sector, mode) operation. On a
// hit it promotes the buffer and dirties it on write; on a miss it
// acquires a buffer (evicting if necessary), binds the new sector, and
// reports whether the kernel must schedule a disk read.
func (c *Cache) Access(sector int, write bool) (buf *Buffer, hit bool, needsDiskRead bool, err error) {
	if b, ok := c.index[sector]; ok {
		c.Hits++
		c.promote(b)
		if write {
			b.Dirty = true
		}
		return b, true, false, nil
	}

	c.Misses++
	b, err := c.acquireFreeBuffer()
	if err != nil {
		return nil, false, false, err
	}

	if oldSector, assigned := b.assignedSector(); assigned {
		delete(c.index, oldSector)
	}

	b.assign(sector)
	b.Counter = 1
	b.Dirty = write
	c.index[sector] = b

	c.left = prepend(c.left, b)
	b.Segment = SegmentLeft
	c.rebalance()

	return b, false, !write, nil
}

// promote moves b to the front of Left. The counter increments only on a
// cold-to-hot transition (from Middle or Right); repeated Left hits do
// not increment it.
func (c *Cache) promote(b *Buffer) {
	switch b.Segment {
	case SegmentLeft:
		c.left = removeBuffer(c.left, b)
	case SegmentMiddle:
		c.middle = removeBuffer(c.middle, b)
		b.Counter++
	case SegmentRight:
		c.right = removeBuffer(c.right, b)
		b.Counter++
	}

	c.left = prepend(c.left, b)
	b.Segment = SegmentLeft
	c.rebalance()
}

// rebalance enforces the Left/Middle caps by demoting tail buffers
// forward into the next colder segment. Demotions never change the
// counter.
func (c *Cache) rebalance() {
	for len(c.left) > c.leftMax {
		var b *Buffer
		c.left, b = popTail(c.left)
		b.Segment = SegmentMiddle
		c.middle = prepend(c.middle, b)
	}
	for len(c.middle) > c.middleMax {
		var b *Buffer
		c.middle, b = popTail(c.middle)
		b.Segment = SegmentRight
		c.right = prepend(c.right, b)
	}
}

// acquireFreeBuffer implements the eviction order: free pool, then
// clean-preferred Right, then dirty-only Right, then Middle tail, then
// Left tail.
func (c *Cache) acquireFreeBuffer() (*Buffer, error) {
	if len(c.free) > 0 {
		b := c.free[0]
		c.free = c.free[1:]
		return b, nil
	}

	if len(c.right) > 0 {
		if b := pickMinCounter(c.right, false); b != nil {
			c.right = removeBuffer(c.right, b)
			return b, nil
		}
		// Right holds only dirty buffers.
		if b := pickMinCounter(c.right, true); b != nil {
			c.right = removeBuffer(c.right, b)
			return b, nil
		}
	}

	if len(c.middle) > 0 {
		var b *Buffer
		c.middle, b = popTail(c.middle)
		return b, nil
	}

	if len(c.left) > 0 {
		var b *Buffer
		c.left, b = popTail(c.left)
		return b, nil
	}

	return nil, ErrNoFreeBuffer
}

// pickMinCounter scans segment front-to-back for the buffer with the
// smallest Counter, restricted to dirty buffers when dirtyOnly is set and
// to clean buffers otherwise. Ties favor whichever is encountered first,
// i.e. closest to the front.
func pickMinCounter(segment []*Buffer, dirtyOnly bool) *Buffer {
	var best *Buffer
	for _, b := range segment {
		if b.Dirty != dirtyOnly {
			continue
		}
		if best == nil || b.Counter < best.Counter {
			best = b
		}
	}
	return best
}

// DirtyBuffers enumerates every currently-dirty buffer, used by the
// kernel's end-of-run flush.
func (c *Cache) DirtyBuffers() []*Buffer {
	var dirty []*Buffer
	for _, segment := range [][]*Buffer{c.left, c.middle, c.right} {
		for _, b := range segment {
			if b.Dirty {
				dirty = append(dirty, b)
			}
		}
	}
	return dirty
}

// Remove detaches buf from its segment and the sector index, clears its
// fields, and returns it to the free pool.
func (c *Cache) Remove(buf *Buffer) {
	if sector, assigned := buf.assignedSector(); assigned {
		delete(c.index, sector)
	}
	switch buf.Segment {
	case SegmentLeft:
		c.left = removeBuffer(c.left, buf)
	case SegmentMiddle:
		c.middle = removeBuffer(c.middle, buf)
	case SegmentRight:
		c.right = removeBuffer(c.right, buf)
	}
	buf.clear()
	c.free = append(c.free, buf)
}

// State is a trace-friendly, structured snapshot of the cache.
type State struct {
	Left, Middle, Right []*Buffer
	Free                int
	Hits, Misses        int
}

// Snapshot returns the current cache state for the trace sink/CLI.
func (c *Cache) Snapshot() State {
	return State{
		Left:   append([]*Buffer(nil), c.left...),
		Middle: append([]*Buffer(nil), c.middle...),
		Right:  append([]*Buffer(nil), c.right...),
		Free:   len(c.free),
		Hits:   c.Hits,
		Misses: c.Misses,
	}
}

// HitRate returns Hits/(Hits+Misses), or 0 if no accesses have occurred.
func (c *Cache) HitRate() float64 {
	total := c.Hits + c.Misses
	if total == 0 {
		return 0
	}
	return float64(c.Hits) / float64(total)
}

// --- segment slice helpers (front = most recent) -------------------------

func prepend(segment []*Buffer, b *Buffer) []*Buffer {
	out := make([]*Buffer, 0, len(segment)+1)
	out = append(out, b)
	out = append(out, segment...)
	return out
}

func popTail(segment []*Buffer) ([]*Buffer, *Buffer) {
	n := len(segment)
	b := segment[n-1]
	return segment[:n-1], b
}

func removeBuffer(segment []*Buffer, target *Buffer) []*Buffer {
	out := make([]*Buffer, 0, len(segment))
	for _, b := range segment {
		if b != target {
			out = append(out, b)
		}
	}
	return out
}
