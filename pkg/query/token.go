package query

import (
	"fmt"
	"strings"
	"unicode"
)

// SplitQuery splits a query string into tokens using shell-like rules:
// tokens are separated by whitespace, and a single- or double-quoted run is
// kept as one token including embedded whitespace. Quotes may open in the
// middle of a token. An unterminated quote fails with ErrMalformedQuery.
func SplitQuery(s string) ([]string, error) {
	var tokens []string
	var buf strings.Builder
	inToken := false
	var quote rune // 0 when outside quotes

	flush := func() {
		if inToken {
			tokens = append(tokens, buf.String())
			buf.Reset()
			inToken = false
		}
	}

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				buf.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			flush()
		default:
			buf.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated %q quote", ErrMalformedQuery, quote)
	}
	flush()
	return tokens, nil
}
