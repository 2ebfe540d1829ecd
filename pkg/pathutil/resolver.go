// Package pathutil provides centralized path management for journal files
// and the query-history database.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathResolver manages paths for the journal snapshot and history database.
type PathResolver struct {
	journalFile  string
	databasePath string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// JournalFile is the path to the YAML journal snapshot.
	JournalFile string
	// DatabasePath is the path to the SQLite database file for query history
	DatabasePath string
}

// New creates a new PathResolver with the given configuration. Both paths
// support ~ expansion. If DatabasePath is empty, it defaults to
// {journal dir}/.history/query.db
func New(config Config) *PathResolver {
	journalFile := ExpandHome(config.JournalFile)

	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(filepath.Dir(journalFile), ".history", "query.db")
	} else {
		dbPath = ExpandHome(dbPath)
	}

	return &PathResolver{
		journalFile:  journalFile,
		databasePath: dbPath,
	}
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// GetJournalFile returns the journal snapshot path.
func (p *PathResolver) GetJournalFile() string {
	return p.journalFile
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
