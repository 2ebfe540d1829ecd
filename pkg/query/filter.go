package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shunichi-ikebuchi/journal-query/pkg/journal"
)

// DefaultChain builds the built-in register-style handler chain:
//
//   - bare terms compile to case-insensitive regular expressions matched
//     against each posting's full account name, OR-combined;
//   - "--head N" forwards only the first N postings that reach it;
//   - "--tail N" buffers and forwards only the last N at flush time.
//
// With no arguments at all, every posting is forwarded. Unknown options and
// invalid patterns or counts fail with ErrMalformedQuery. Richer predicate
// vocabularies are supplied by the host via Config.Chain.
func DefaultChain(args []string, terminal PostHandler) (PostHandler, error) {
	head, tail := 0, 0
	var terms []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--head", "--tail":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%w: %s requires a count", ErrMalformedQuery, arg)
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: %s count %q", ErrMalformedQuery, arg, args[i+1])
			}
			if arg == "--head" {
				head = n
			} else {
				tail = n
			}
			i++
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("%w: unknown option %q", ErrMalformedQuery, arg)
			}
			terms = append(terms, arg)
		}
	}

	// Chain is assembled back to front so postings flow filter → head →
	// tail → terminal.
	chain := terminal
	if tail > 0 {
		chain = &tailHandler{next: chain, keep: tail}
	}
	if head > 0 {
		chain = &headHandler{next: chain, keep: head}
	}
	if len(terms) > 0 {
		patterns := make([]*regexp.Regexp, 0, len(terms))
		for _, term := range terms {
			re, err := regexp.Compile("(?i)" + term)
			if err != nil {
				return nil, fmt.Errorf("%w: account pattern %q", ErrMalformedQuery, term)
			}
			patterns = append(patterns, re)
		}
		chain = &accountFilter{next: chain, patterns: patterns}
	}
	return chain, nil
}

// accountFilter forwards postings whose account full name matches any of
// the patterns.
type accountFilter struct {
	next     PostHandler
	patterns []*regexp.Regexp
}

func (h *accountFilter) Handle(p *journal.Posting) error {
	name := ""
	if p.Account != nil {
		name = p.Account.FullName()
	}
	for _, re := range h.patterns {
		if re.MatchString(name) {
			return h.next.Handle(p)
		}
	}
	return nil
}

func (h *accountFilter) Flush() error { return h.next.Flush() }

// headHandler forwards only the first keep postings.
type headHandler struct {
	next PostHandler
	keep int
	seen int
}

func (h *headHandler) Handle(p *journal.Posting) error {
	if h.seen >= h.keep {
		return nil
	}
	h.seen++
	return h.next.Handle(p)
}

func (h *headHandler) Flush() error { return h.next.Flush() }

// tailHandler buffers postings and forwards the last keep of them when
// flushed.
type tailHandler struct {
	next PostHandler
	keep int
	buf  []*journal.Posting
}

func (h *tailHandler) Handle(p *journal.Posting) error {
	h.buf = append(h.buf, p)
	if len(h.buf) > h.keep {
		h.buf = h.buf[1:]
	}
	return nil
}

func (h *tailHandler) Flush() error {
	for _, p := range h.buf {
		if err := h.next.Handle(p); err != nil {
			return err
		}
	}
	h.buf = nil
	return h.next.Flush()
}
