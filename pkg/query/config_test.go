package query

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		tokens   []string
		expected []string
	}{
		{
			"no defaults",
			Config{},
			[]string{"assets"},
			[]string{"assets"},
		},
		{
			"default args prepended",
			Config{DefaultArgs: []string{"--head", "100"}},
			[]string{"assets"},
			[]string{"--head", "100", "assets"},
		},
		{
			"alias expanded",
			Config{Aliases: map[string]string{"food": "expenses:food --head 10"}},
			[]string{"food", "cash"},
			[]string{"expenses:food", "--head", "10", "cash"},
		},
		{
			"alias with quoting",
			Config{Aliases: map[string]string{"dining": `"Expenses:Dining Out"`}},
			[]string{"dining"},
			[]string{"Expenses:Dining Out"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.normalize(tt.tokens)
			if err != nil {
				t.Fatalf("normalize error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("normalize(%v) = %#v, expected %#v", tt.tokens, got, tt.expected)
			}
		})
	}
}

func TestConfigNormalizeBadAlias(t *testing.T) {
	cfg := Config{Aliases: map[string]string{"broken": `"unterminated`}}
	if _, err := cfg.normalize([]string{"broken"}); !errors.Is(err, ErrMalformedQuery) {
		t.Errorf("normalize error = %v, expected ErrMalformedQuery", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.yaml")
	content := `
default_args: ["--head", "50"]
aliases:
  food: "expenses:food"
  dining: '"Expenses:Dining Out"'
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}
	if !reflect.DeepEqual(cfg.DefaultArgs, []string{"--head", "50"}) {
		t.Errorf("DefaultArgs = %#v", cfg.DefaultArgs)
	}
	if cfg.Aliases["food"] != "expenses:food" {
		t.Errorf("Aliases[food] = %q", cfg.Aliases["food"])
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig for missing file succeeded")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("default_args: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig for malformed YAML succeeded")
	}
}
