package query

import (
	"errors"
	"testing"

	"github.com/shunichi-ikebuchi/journal-query/pkg/journal"
)

// exampleJournal builds three transactions of two postings each; two of the
// six postings target accounts under Assets.
func exampleJournal(t *testing.T) (*journal.Journal, []*journal.Posting) {
	t.Helper()
	j := journal.New()

	add := func(date, payee string, legs ...*journal.Posting) {
		x := &journal.Transaction{Date: date, Payee: payee}
		for _, p := range legs {
			x.AddPosting(p)
		}
		j.AddXact(x)
	}
	post := func(account string, amount int64) *journal.Posting {
		return &journal.Posting{
			Account:  j.FindAccount(account, true),
			Amount:   amount,
			Currency: "JPY",
		}
	}

	food := post("Expenses:Food", 4500)
	foodPay := post("Assets:Bank:Checking", -4500)
	add("2024-01-05", "Grocery", food, foodPay)

	transport := post("Expenses:Transport", 800)
	card := post("Liabilities:Card", -800)
	add("2024-01-07", "Metro", transport, card)

	salary := post("Income:Salary", -300000)
	salaryDep := post("Assets:Bank:Checking", 300000)
	add("2024-01-25", "Acme Corp", salary, salaryDep)

	return j, []*journal.Posting{food, foodPay, transport, card, salary, salaryDep}
}

func TestCollectExample(t *testing.T) {
	j, posts := exampleJournal(t)
	session := NewSession(Config{})

	coll, err := session.Collect(j, "assets")
	if err != nil {
		t.Fatalf("Collect error = %v", err)
	}
	defer coll.Close()

	if coll.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", coll.Len())
	}

	// Matches arrive in traversal order: posting 1 then posting 5.
	expected := []*journal.Posting{posts[1], posts[5]}
	for i, want := range expected {
		got, err := coll.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", i, err)
		}
		if got != want {
			t.Errorf("Get(%d) is not the expected posting", i)
		}
	}

	if !j.HasPendingCollection() {
		t.Error("pending-collection flag not held while collector is open")
	}
}

func TestCollectorGet(t *testing.T) {
	j, _ := exampleJournal(t)
	session := NewSession(Config{})

	coll, err := session.Collect(j, "assets")
	if err != nil {
		t.Fatalf("Collect error = %v", err)
	}
	defer coll.Close()

	last, err := coll.Get(-1)
	if err != nil {
		t.Fatalf("Get(-1) error = %v", err)
	}
	straight, _ := coll.Get(coll.Len() - 1)
	if last != straight {
		t.Error("Get(-1) != Get(len-1)")
	}

	for _, i := range []int{2, -2, 10} {
		if _, err := coll.Get(i); !errors.Is(err, journal.ErrIndexOutOfRange) {
			t.Errorf("Get(%d) error = %v, expected ErrIndexOutOfRange", i, err)
		}
	}
}

func TestCollectorRestartableIteration(t *testing.T) {
	j, _ := exampleJournal(t)
	session := NewSession(Config{})

	coll, err := session.Collect(j, "assets")
	if err != nil {
		t.Fatalf("Collect error = %v", err)
	}
	defer coll.Close()

	var first, second []*journal.Posting
	for p := range coll.All() {
		first = append(first, p)
	}
	for p := range coll.All() {
		second = append(second, p)
	}

	if len(first) != coll.Len() || len(second) != coll.Len() {
		t.Fatalf("iteration lengths %d/%d, expected %d", len(first), len(second), coll.Len())
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("iteration pass differs at %d", i)
		}
	}
}

func TestCollectRestoresActiveOnSuccess(t *testing.T) {
	j, _ := exampleJournal(t)
	prior := journal.New()
	session := NewSession(Config{})
	session.SetActive(prior)

	coll, err := session.Collect(j, "assets")
	if err != nil {
		t.Fatalf("Collect error = %v", err)
	}
	defer coll.Close()

	if session.Active() != prior {
		t.Error("active-journal slot not restored after success")
	}
}

func TestCollectRestoresActiveOnCompileFailure(t *testing.T) {
	j, _ := exampleJournal(t)
	prior := journal.New()
	session := NewSession(Config{})
	session.SetActive(prior)

	_, err := session.Collect(j, `assets "unterminated`)
	if !errors.Is(err, ErrMalformedQuery) {
		t.Fatalf("Collect error = %v, expected ErrMalformedQuery", err)
	}
	if session.Active() != prior {
		t.Error("active-journal slot not restored after compile failure")
	}
	if j.HasPendingCollection() {
		t.Error("pending-collection flag held after compile failure")
	}
}

// failHandler fails on the nth posting it sees.
type failHandler struct {
	err   error
	after int
	seen  int
}

func (h *failHandler) Handle(p *journal.Posting) error {
	h.seen++
	if h.seen > h.after {
		return h.err
	}
	return nil
}

func (h *failHandler) Flush() error { return nil }

func TestCollectRestoresActiveOnWalkFailure(t *testing.T) {
	j, _ := exampleJournal(t)
	prior := journal.New()
	walkErr := errors.New("handler blew up")

	session := NewSession(Config{
		Chain: func(args []string, terminal PostHandler) (PostHandler, error) {
			return &failHandler{err: walkErr, after: 3}, nil
		},
	})
	session.SetActive(prior)

	_, err := session.Collect(j, "assets")
	if !errors.Is(err, walkErr) {
		t.Fatalf("Collect error = %v, expected wrapped handler error", err)
	}
	if session.Active() != prior {
		t.Error("active-journal slot not restored after walk failure")
	}
	if j.HasPendingCollection() {
		t.Error("pending-collection flag held after walk failure")
	}
}

func TestCollectConcurrent(t *testing.T) {
	j, _ := exampleJournal(t)
	session := NewSession(Config{})

	first, err := session.Collect(j, "assets")
	if err != nil {
		t.Fatalf("first Collect error = %v", err)
	}

	if _, err := session.Collect(j, "expenses"); !errors.Is(err, ErrConcurrentCollection) {
		t.Errorf("second Collect error = %v, expected ErrConcurrentCollection", err)
	}

	first.Close()

	third, err := session.Collect(j, "expenses")
	if err != nil {
		t.Fatalf("Collect after Close error = %v", err)
	}
	third.Close()
}

func TestCollectSequential(t *testing.T) {
	j, _ := exampleJournal(t)
	session := NewSession(Config{})

	for i := 0; i < 2; i++ {
		coll, err := session.Collect(j, "assets")
		if err != nil {
			t.Fatalf("Collect %d error = %v", i, err)
		}
		if coll.Len() != 2 {
			t.Errorf("Collect %d Len() = %d, expected 2", i, coll.Len())
		}
		coll.Close()
	}
}

// annotatingChain marks every posting it forwards.
func annotatingChain(args []string, terminal PostHandler) (PostHandler, error) {
	return &annotateHandler{next: terminal}, nil
}

type annotateHandler struct {
	next PostHandler
}

func (h *annotateHandler) Handle(p *journal.Posting) error {
	p.XData()["visited"] = true
	return h.next.Handle(p)
}

func (h *annotateHandler) Flush() error { return h.next.Flush() }

func TestCollectorCloseClearsTransientData(t *testing.T) {
	j, posts := exampleJournal(t)
	session := NewSession(Config{Chain: annotatingChain})

	coll, err := session.Collect(j, "")
	if err != nil {
		t.Fatalf("Collect error = %v", err)
	}

	if !posts[0].HasXData() {
		t.Fatal("handler annotations not attached during walk")
	}

	if err := coll.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}

	if j.HasPendingCollection() {
		t.Error("pending-collection flag held after Close")
	}
	for i, p := range posts {
		if p.HasXData() {
			t.Errorf("posting %d still annotated after Close", i)
		}
	}

	// Close is idempotent and must not disturb a following collection.
	next, err := session.Collect(j, "assets")
	if err != nil {
		t.Fatalf("Collect after Close error = %v", err)
	}
	if err := coll.Close(); err != nil {
		t.Fatalf("second Close error = %v", err)
	}
	if !j.HasPendingCollection() {
		t.Error("stale Close released the next collection's flag")
	}
	next.Close()
}

func TestCollectEmptyQueryMatchesAll(t *testing.T) {
	j, posts := exampleJournal(t)
	session := NewSession(Config{})

	coll, err := session.Collect(j, "")
	if err != nil {
		t.Fatalf("Collect error = %v", err)
	}
	defer coll.Close()

	if coll.Len() != len(posts) {
		t.Errorf("Len() = %d, expected %d", coll.Len(), len(posts))
	}
}

func TestCollectHeadTail(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
		firstIdx int // index into the full posting list
	}{
		{"head", "--head 2", 2, 0},
		{"tail", "--tail 2", 2, 4},
		{"head with term", "assets --head 1", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, posts := exampleJournal(t)
			session := NewSession(Config{})

			coll, err := session.Collect(j, tt.query)
			if err != nil {
				t.Fatalf("Collect(%q) error = %v", tt.query, err)
			}
			defer coll.Close()

			if coll.Len() != tt.expected {
				t.Fatalf("Len() = %d, expected %d", coll.Len(), tt.expected)
			}
			got, err := coll.Get(0)
			if err != nil {
				t.Fatal(err)
			}
			if got != posts[tt.firstIdx] {
				t.Errorf("first collected posting is not posting %d", tt.firstIdx)
			}
		})
	}
}

func TestCollectWithAliasesAndDefaults(t *testing.T) {
	j, posts := exampleJournal(t)
	session := NewSession(Config{
		DefaultArgs: []string{"--head", "1"},
		Aliases:     map[string]string{"bank": "assets:bank"},
	})

	coll, err := session.Collect(j, "bank")
	if err != nil {
		t.Fatalf("Collect error = %v", err)
	}
	defer coll.Close()

	if coll.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1 (head applied from defaults)", coll.Len())
	}
	got, _ := coll.Get(0)
	if got != posts[1] {
		t.Error("alias did not expand to the assets:bank pattern")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"unknown option", "--frobnicate"},
		{"head missing count", "--head"},
		{"head bad count", "--head many"},
		{"head negative count", "--head -1"},
		{"bad pattern", "("},
		{"unterminated quote", `"oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, _ := exampleJournal(t)
			session := NewSession(Config{})

			if _, err := session.Collect(j, tt.query); !errors.Is(err, ErrMalformedQuery) {
				t.Errorf("Collect(%q) error = %v, expected ErrMalformedQuery", tt.query, err)
			}
			if j.HasPendingCollection() {
				t.Errorf("Collect(%q) left the pending flag set", tt.query)
			}
		})
	}
}
