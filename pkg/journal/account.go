package journal

import (
	"iter"
	"strings"
)

// AccountSeparator joins account name segments into a full name.
const AccountSeparator = ":"

// Account is a node in a journal's account tree. Children are keyed by name
// with insertion order preserved. The Postings slice holds non-owning
// back-references to every posting that targets this account.
type Account struct {
	Parent   *Account
	Name     string
	Note     string
	Postings []*Posting

	children   []*Account
	childIndex map[string]*Account

	xdata map[string]any
}

// NewAccount creates an account node. The parent may be nil for a root
// (master) account.
func NewAccount(parent *Account, name string) *Account {
	return &Account{Parent: parent, Name: name}
}

// FullName returns the colon-joined path from the tree root, excluding
// unnamed ancestors (the master account has an empty name).
func (a *Account) FullName() string {
	var parts []string
	for node := a; node != nil; node = node.Parent {
		if node.Name != "" {
			parts = append(parts, node.Name)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, AccountSeparator)
}

// Depth returns the number of named ancestors above this account.
func (a *Account) Depth() int {
	depth := 0
	for node := a.Parent; node != nil; node = node.Parent {
		if node.Name != "" {
			depth++
		}
	}
	return depth
}

// FindChild returns the direct child with the given name, or nil.
func (a *Account) FindChild(name string) *Account {
	return a.childIndex[name]
}

// AddChild attaches child under this account, replacing its parent link.
// Adding a name that already exists returns false and leaves the tree
// unchanged.
func (a *Account) AddChild(child *Account) bool {
	if a.childIndex == nil {
		a.childIndex = make(map[string]*Account)
	}
	if _, exists := a.childIndex[child.Name]; exists {
		return false
	}
	child.Parent = a
	a.children = append(a.children, child)
	a.childIndex[child.Name] = child
	return true
}

// RemoveChild detaches the direct child with the given name. Returns false
// if no such child exists.
func (a *Account) RemoveChild(name string) bool {
	child, ok := a.childIndex[name]
	if !ok {
		return false
	}
	delete(a.childIndex, name)
	for i, c := range a.children {
		if c == child {
			a.children = append(a.children[:i], a.children[i+1:]...)
			break
		}
	}
	child.Parent = nil
	return true
}

// findOrCreate walks a name path below this account, creating missing nodes
// when create is true. Returns nil when a segment is absent and create is
// false.
func (a *Account) findOrCreate(path []string, create bool) *Account {
	node := a
	for _, seg := range path {
		child := node.FindChild(seg)
		if child == nil {
			if !create {
				return nil
			}
			child = NewAccount(node, seg)
			node.AddChild(child)
		}
		node = child
	}
	return node
}

// ChildSeq is the forward-iteration view over an account's direct children,
// in insertion order. It satisfies Sequence[*Account] for cursor access.
type ChildSeq struct {
	account *Account
}

// Children returns the account's child sequence.
func (a *Account) Children() ChildSeq { return ChildSeq{account: a} }

// Len returns the number of direct children.
func (s ChildSeq) Len() int { return len(s.account.children) }

// All iterates the children in insertion order.
func (s ChildSeq) All() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		for _, c := range s.account.children {
			if !yield(c) {
				return
			}
		}
	}
}

// XData returns the account's transient annotation store, allocating it on
// first use.
func (a *Account) XData() map[string]any {
	if a.xdata == nil {
		a.xdata = make(map[string]any)
	}
	return a.xdata
}

// HasXData reports whether any annotations are attached.
func (a *Account) HasXData() bool { return len(a.xdata) > 0 }

// ClearXData drops annotations from this account and every descendant.
func (a *Account) ClearXData() {
	a.xdata = nil
	for _, c := range a.children {
		c.ClearXData()
	}
}
