package query

import "github.com/shunichi-ikebuchi/journal-query/pkg/journal"

// WalkPosts pushes every posting of every transaction in j into the head of
// the handler chain: transactions in insertion order, postings in insertion
// order within each transaction. After the last posting the chain is
// flushed. The walk is deterministic and repeatable over an unmodified
// journal; it performs no filtering and leaves any annotations the handlers
// attached in place.
func WalkPosts(j *journal.Journal, chain PostHandler) error {
	for t := range j.Xacts().All() {
		for _, p := range t.Postings {
			if err := chain.Handle(p); err != nil {
				return err
			}
		}
	}
	return chain.Flush()
}
