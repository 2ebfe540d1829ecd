package journal

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
)

// Journal owns an ordered sequence of transactions, an account tree rooted
// at the master account, and the list of source files it was populated from.
type Journal struct {
	Master    *Account
	Bucket    *Account // default balancing account, may be nil
	Sources   []FileInfo
	WasLoaded bool

	xacts   []*Transaction
	pending bool // a live collection result references this journal's xdata
}

// New creates an empty journal with an unnamed master account.
func New() *Journal {
	return &Journal{Master: NewAccount(nil, "")}
}

// FindAccount looks up an account by its colon-separated full name. With
// autoCreate, missing path segments are created under the master account;
// otherwise absent lookups return nil.
func (j *Journal) FindAccount(name string, autoCreate bool) *Account {
	if name == "" {
		return j.Master
	}
	return j.Master.findOrCreate(strings.Split(name, AccountSeparator), autoCreate)
}

// FindAccountRe returns the first account (depth-first, insertion order)
// whose full name matches the regular expression, or nil. An invalid
// pattern is reported as an error.
func (j *Journal) FindAccountRe(pattern string) (*Account, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile account pattern: %w", err)
	}
	var found *Account
	var walk func(a *Account) bool
	walk = func(a *Account) bool {
		if a != j.Master && re.MatchString(a.FullName()) {
			found = a
			return true
		}
		for _, c := range a.children {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(j.Master)
	return found, nil
}

// AddAccount attaches an account under the master, nesting by the segments
// of its name. Returns false if the name is already taken.
func (j *Journal) AddAccount(account *Account) bool {
	segs := strings.Split(account.Name, AccountSeparator)
	if len(segs) > 1 {
		parent := j.Master.findOrCreate(segs[:len(segs)-1], true)
		account.Name = segs[len(segs)-1]
		return parent.AddChild(account)
	}
	return j.Master.AddChild(account)
}

// RemoveAccount detaches an account from its parent. Returns false if the
// account is not part of this journal's tree.
func (j *Journal) RemoveAccount(account *Account) bool {
	if account == nil || account.Parent == nil {
		return false
	}
	root := account
	for root.Parent != nil {
		root = root.Parent
	}
	if root != j.Master {
		return false
	}
	return account.Parent.RemoveChild(account.Name)
}

// AddXact appends a transaction and wires each posting's account
// back-reference.
func (j *Journal) AddXact(t *Transaction) {
	for _, p := range t.Postings {
		if p.Account != nil {
			p.Account.Postings = append(p.Account.Postings, p)
		}
	}
	j.xacts = append(j.xacts, t)
}

// RemoveXact removes a transaction and unwires its postings' account
// back-references. Returns false if the transaction is not in this journal.
func (j *Journal) RemoveXact(t *Transaction) bool {
	idx := -1
	for i, x := range j.xacts {
		if x == t {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	for _, p := range t.Postings {
		if p.Account == nil {
			continue
		}
		refs := p.Account.Postings
		for i, ref := range refs {
			if ref == p {
				p.Account.Postings = append(refs[:i], refs[i+1:]...)
				break
			}
		}
	}
	j.xacts = append(j.xacts[:idx], j.xacts[idx+1:]...)
	return true
}

// XactSeq is the forward-iteration view over a journal's transactions in
// insertion order. It satisfies Sequence[*Transaction] for cursor access.
type XactSeq struct {
	journal *Journal
}

// Xacts returns the journal's transaction sequence.
func (j *Journal) Xacts() XactSeq { return XactSeq{journal: j} }

// Len returns the number of transactions.
func (s XactSeq) Len() int { return len(s.journal.xacts) }

// All iterates the transactions in insertion order.
func (s XactSeq) All() iter.Seq[*Transaction] {
	return func(yield func(*Transaction) bool) {
		for _, t := range s.journal.xacts {
			if !yield(t) {
				return
			}
		}
	}
}

// PostCount returns the total number of postings across all transactions.
func (j *Journal) PostCount() int {
	n := 0
	for _, t := range j.xacts {
		n += len(t.Postings)
	}
	return n
}

// HasPendingCollection reports whether a live collection result currently
// references this journal's transient data.
func (j *Journal) HasPendingCollection() bool { return j.pending }

// BeginCollection marks the journal as having a collection in flight.
// Returns false if one is already pending.
func (j *Journal) BeginCollection() bool {
	if j.pending {
		return false
	}
	j.pending = true
	return true
}

// EndCollection releases the pending-collection flag.
func (j *Journal) EndCollection() { j.pending = false }

// ClearXData drops every transient annotation attached to the journal's
// transactions, postings, and accounts during a query run.
func (j *Journal) ClearXData() {
	for _, t := range j.xacts {
		t.ClearXData()
		for _, p := range t.Postings {
			p.ClearXData()
		}
	}
	j.Master.ClearXData()
}

// Valid checks graph consistency: every posting belongs to its transaction,
// and every posting's account resolves to a live node in this journal's
// tree.
func (j *Journal) Valid() bool {
	for _, t := range j.xacts {
		for _, p := range t.Postings {
			if p.Xact != t {
				return false
			}
			if p.Account == nil {
				return false
			}
			if found := j.FindAccount(p.Account.FullName(), false); found != p.Account {
				return false
			}
		}
	}
	return true
}
