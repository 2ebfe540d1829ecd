package pathutil

import (
	"path/filepath"
	"testing"
)

func TestDefaultDatabasePath(t *testing.T) {
	p := New(Config{JournalFile: "/data/ledger/journal.yaml"})

	expected := filepath.Join("/data/ledger", ".history", "query.db")
	if p.GetDatabasePath() != expected {
		t.Errorf("GetDatabasePath() = %q, expected %q", p.GetDatabasePath(), expected)
	}
	if p.GetJournalFile() != "/data/ledger/journal.yaml" {
		t.Errorf("GetJournalFile() = %q", p.GetJournalFile())
	}
}

func TestExplicitDatabasePath(t *testing.T) {
	p := New(Config{
		JournalFile:  "/data/journal.yaml",
		DatabasePath: "/var/lib/jq/history.db",
	})

	if p.GetDatabasePath() != "/var/lib/jq/history.db" {
		t.Errorf("GetDatabasePath() = %q", p.GetDatabasePath())
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde slash", "~/ledger/journal.yaml", "/home/tester/ledger/journal.yaml"},
		{"bare tilde", "~", "/home/tester"},
		{"no tilde", "/data/journal.yaml", "/data/journal.yaml"},
		{"mid-path tilde", "/data/~/x", "/data/~/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandHome(tt.input); got != tt.expected {
				t.Errorf("ExpandHome(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEnsureDirAndFileExists(t *testing.T) {
	p := New(Config{JournalFile: "/tmp/journal.yaml"})
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := p.EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir error = %v", err)
	}
	if !p.FileExists(dir) {
		t.Error("created directory does not exist")
	}
	if p.FileExists(filepath.Join(dir, "nope")) {
		t.Error("FileExists true for a missing path")
	}
}
