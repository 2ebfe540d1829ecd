package query

import (
	"fmt"
	"iter"

	"github.com/shunichi-ikebuchi/journal-query/pkg/journal"
)

// Collector is the terminal handler of a query chain. It accumulates
// non-owning references to the postings that survived the chain, in arrival
// order. The referenced postings are borrowed from the journal: a Collector
// must not outlive its journal, and posting references obtained from it
// must not be retained after either is closed.
//
// A Collector holds the journal's pending-collection flag until Close is
// called; closing clears the journal's transient annotations and releases
// the flag.
type Collector struct {
	journal *journal.Journal
	posts   []*journal.Posting
	closed  bool
}

// NewCollector creates a collector bound to j.
func NewCollector(j *journal.Journal) *Collector {
	return &Collector{journal: j}
}

// Handle appends the posting to the result set.
func (c *Collector) Handle(p *journal.Posting) error {
	c.posts = append(c.posts, p)
	return nil
}

// Flush implements PostHandler; the collector has nothing to drain.
func (c *Collector) Flush() error { return nil }

// Len returns the number of collected postings.
func (c *Collector) Len() int { return len(c.posts) }

// Get returns the collected posting at index i. Negative indices resolve
// from the end; out-of-range indices fail with journal.ErrIndexOutOfRange.
func (c *Collector) Get(i int) (*journal.Posting, error) {
	n := len(c.posts)
	if i >= n || i <= -n {
		return nil, fmt.Errorf("%w: index %d, length %d", journal.ErrIndexOutOfRange, i, n)
	}
	if i < 0 {
		i += n
	}
	return c.posts[i], nil
}

// All iterates the collected postings in arrival order. Each call starts a
// fresh pass over the stored sequence.
func (c *Collector) All() iter.Seq[*journal.Posting] {
	return func(yield func(*journal.Posting) bool) {
		for _, p := range c.posts {
			if !yield(p) {
				return
			}
		}
	}
}

// Close releases the result set: the journal's transient annotations are
// cleared and its pending-collection flag is dropped, allowing the next
// collection. Close is idempotent.
func (c *Collector) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.journal.ClearXData()
	c.journal.EndCollection()
	return nil
}
