// Package query implements the query-collection pipeline over a journal:
// a textual query is compiled into a chain of posting handlers, every
// posting is walked through the chain in canonical order, and matches are
// accumulated into a Collector whose lifetime is bound to the journal.
package query

import "github.com/shunichi-ikebuchi/journal-query/pkg/journal"

// PostHandler processes postings pushed down a handler chain. Handle may
// decide not to forward a posting to the next handler (a filtering
// decision). Flush is called once after the walk completes so buffering
// handlers can drain; handlers must forward it downstream.
type PostHandler interface {
	Handle(p *journal.Posting) error
	Flush() error
}
