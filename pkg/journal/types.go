// Package journal provides the in-memory object graph for a double-entry
// accounting journal: transactions, postings, and a tree of accounts.
//
// A Journal exclusively owns its transactions and accounts. Postings belong
// to exactly one Transaction and hold a non-owning reference to one Account;
// each Account keeps a non-owning back-reference list of the postings that
// target it. None of the types in this package are safe for concurrent use.
package journal

import "time"

// Transaction represents a set of postings recorded together.
type Transaction struct {
	Date      string // YYYY-MM-DD
	Payee     string
	Narration string
	Tags      []string
	Postings  []*Posting

	xdata map[string]any
}

// Posting represents a single leg of a transaction.
type Posting struct {
	Xact     *Transaction // owning transaction, set by AddPosting
	Account  *Account     // non-owning account reference
	Amount   int64        // amount in minor units (positive debit, negative credit)
	Currency string       // currency code (e.g. "JPY")
	Comment  string

	xdata map[string]any
}

// FileInfo records a source file a journal was populated from.
type FileInfo struct {
	Filename   string
	Size       int64
	ModTime    time.Time
	FromStream bool
}

// AddPosting appends a posting to the transaction and sets its owning
// back-reference. Account back-references are wired when the transaction is
// added to a journal.
func (t *Transaction) AddPosting(p *Posting) {
	p.Xact = t
	t.Postings = append(t.Postings, p)
}

// XData returns the transaction's transient annotation store, allocating it
// on first use. Annotations live only for the duration of one query run.
func (t *Transaction) XData() map[string]any {
	if t.xdata == nil {
		t.xdata = make(map[string]any)
	}
	return t.xdata
}

// HasXData reports whether any annotations are attached.
func (t *Transaction) HasXData() bool { return len(t.xdata) > 0 }

// ClearXData drops all attached annotations.
func (t *Transaction) ClearXData() { t.xdata = nil }

// XData returns the posting's transient annotation store, allocating it on
// first use.
func (p *Posting) XData() map[string]any {
	if p.xdata == nil {
		p.xdata = make(map[string]any)
	}
	return p.xdata
}

// HasXData reports whether any annotations are attached.
func (p *Posting) HasXData() bool { return len(p.xdata) > 0 }

// ClearXData drops all attached annotations.
func (p *Posting) ClearXData() { p.xdata = nil }
