package query

import (
	"fmt"

	"github.com/shunichi-ikebuchi/journal-query/pkg/journal"
)

// Session owns the active-journal slot: the single reference to "the
// journal currently in scope for ambient configuration". Collect installs
// its journal into the slot for the duration of one collection run and
// restores the previous value on every exit path.
//
// A Session is single-threaded state; concurrent use requires external
// serialization.
type Session struct {
	config Config
	active *journal.Journal
}

// NewSession creates a session with the given report configuration.
func NewSession(cfg Config) *Session {
	return &Session{config: cfg}
}

// Active returns the journal currently installed in the session slot, or
// nil.
func (s *Session) Active() *journal.Journal { return s.active }

// SetActive installs a journal into the slot outside of any collection,
// for hosts that keep a long-lived default journal.
func (s *Session) SetActive(j *journal.Journal) { s.active = j }

// Collect compiles the query against the session's report configuration,
// walks every posting of j through the resulting handler chain, and
// returns the collected matches.
//
// While the walk runs, j is installed as the session's active journal; the
// previous slot value is restored before Collect returns, on success and on
// every failure path. A second Collect on a journal whose collector is
// still open fails with ErrConcurrentCollection without touching the slot.
//
// The returned Collector keeps j's pending-collection flag set until it is
// closed; callers own the Close.
func (s *Session) Collect(j *journal.Journal, queryStr string) (*Collector, error) {
	if !j.BeginCollection() {
		return nil, ErrConcurrentCollection
	}

	coll := NewCollector(j)
	saved := s.active
	s.active = j
	done := false
	defer func() {
		// Restore the slot before any result or error propagates. On
		// failure no collector survives to own the pending flag, so the
		// close here releases it and drops any annotations a partial walk
		// left behind.
		s.active = saved
		if !done {
			coll.Close()
		}
	}()

	chain, err := Compile(queryStr, s.config, coll)
	if err != nil {
		return nil, err
	}
	if err := WalkPosts(j, chain); err != nil {
		return nil, fmt.Errorf("failed to walk postings: %w", err)
	}

	done = true
	return coll, nil
}
