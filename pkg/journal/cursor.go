package journal

import (
	"fmt"
	"iter"
)

// Sequence is an ordered container that supports only forward iteration and
// a length query. XactSeq and ChildSeq are the two implementations in this
// package.
type Sequence[T any] interface {
	Len() int
	All() iter.Seq[T]
}

// Cursor provides positional access over a Sequence. It keeps a single
// cached suspended iterator: when a Get targets the same container as the
// previous call and the requested index is exactly one past it, the cached
// iterator is advanced one step instead of walking from the front, making
// strictly ascending access amortized O(1). Any other pattern rewinds and
// walks to the target, then refreshes the cache.
//
// The cache is keyed on container identity and is not revalidated against
// mutation; see Get. A Cursor must not be shared between goroutines.
type Cursor[T any] struct {
	owner any
	last  int
	next  func() (T, bool)
	stop  func()

	steps int // forward steps taken, for tests
}

// Get returns the element at index i. Negative indices resolve from the
// end (-1 is the last element). Indices with |i| >= Len fail with
// ErrIndexOutOfRange.
//
// Adjacency is judged on the requested index, not the resolved one, so a
// descent like Get(-3), Get(-2) also rides the fast path. If the container
// was mutated since the cache was built, the fast path serves from the old
// iteration state without noticing; the bounds check alone uses the live
// length.
func (c *Cursor[T]) Get(seq Sequence[T], i int) (T, error) {
	var zero T
	n := seq.Len()
	if i >= n || i <= -n {
		return zero, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, n)
	}

	if c.next != nil && c.owner == any(seq) && i == c.last+1 {
		if v, ok := c.next(); ok {
			c.last = i
			c.steps++
			return v, nil
		}
		// Cached iterator ran dry (container shrank); fall through and
		// rebuild from the front.
	}

	target := i
	if target < 0 {
		target = n + i
	}

	c.release()
	next, stop := iter.Pull(seq.All())
	var v T
	for k := 0; k <= target; k++ {
		var ok bool
		if v, ok = next(); !ok {
			stop()
			return zero, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, n)
		}
		c.steps++
	}

	c.owner = any(seq)
	c.last = i
	c.next = next
	c.stop = stop
	return v, nil
}

// Reset discards the cached iterator state.
func (c *Cursor[T]) Reset() {
	c.release()
	c.owner = nil
	c.last = 0
}

func (c *Cursor[T]) release() {
	if c.stop != nil {
		c.stop()
		c.next = nil
		c.stop = nil
	}
}
