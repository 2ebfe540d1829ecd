package query

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChainFunc builds a handler chain from a normalized argument list, ending
// in the supplied terminal handler. Hosts embedding this package may supply
// their own to install a richer predicate vocabulary.
type ChainFunc func(args []string, terminal PostHandler) (PostHandler, error)

// Config carries the report-level defaults applied to every query before
// compilation.
type Config struct {
	// DefaultArgs are prepended to every query's argument list.
	DefaultArgs []string

	// Aliases maps a single token to its replacement argument list
	// (the replacement is itself tokenized with shell rules).
	Aliases map[string]string

	// Chain builds the handler chain; nil selects DefaultChain.
	Chain ChainFunc
}

// configFile is the on-disk shape of a report-defaults file.
type configFile struct {
	DefaultArgs []string          `yaml:"default_args"`
	Aliases     map[string]string `yaml:"aliases"`
}

// LoadConfig reads report defaults from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read report defaults: %w", err)
	}
	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("failed to parse report defaults: %w", err)
	}
	return Config{DefaultArgs: f.DefaultArgs, Aliases: f.Aliases}, nil
}

// normalize expands aliases and prepends the default arguments, producing
// the canonical ordered argument list for chain building.
func (c Config) normalize(tokens []string) ([]string, error) {
	args := make([]string, 0, len(c.DefaultArgs)+len(tokens))
	args = append(args, c.DefaultArgs...)
	for _, tok := range tokens {
		expansion, ok := c.Aliases[tok]
		if !ok {
			args = append(args, tok)
			continue
		}
		expanded, err := SplitQuery(expansion)
		if err != nil {
			return nil, fmt.Errorf("alias %q: %w", tok, err)
		}
		args = append(args, expanded...)
	}
	return args, nil
}
