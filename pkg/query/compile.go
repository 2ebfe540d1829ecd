package query

import "fmt"

// Compile tokenizes a query string, normalizes the tokens against the
// report configuration, and assembles a handler chain ending in terminal.
// Any tokenization or argument failure surfaces as ErrMalformedQuery with
// no partial side effects.
func Compile(queryStr string, cfg Config, terminal PostHandler) (PostHandler, error) {
	tokens, err := SplitQuery(queryStr)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize query: %w", err)
	}
	args, err := cfg.normalize(tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize query arguments: %w", err)
	}
	build := cfg.Chain
	if build == nil {
		build = DefaultChain
	}
	chain, err := build(args, terminal)
	if err != nil {
		return nil, fmt.Errorf("failed to build handler chain: %w", err)
	}
	return chain, nil
}
