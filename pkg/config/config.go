// Package config provides configuration management for journal-query.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Journal JournalConfig
	Debug   bool
}

// JournalConfig represents journal-related configuration.
type JournalConfig struct {
	// File is the path to the YAML journal snapshot.
	File string
	// DBPath is the path to the SQLite query-history database.
	DBPath string
	// ReportDefaults is the path to the report-defaults YAML file
	// (default query arguments and aliases).
	ReportDefaults string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		Journal: JournalConfig{
			File:           os.Getenv("JOURNAL_FILE"),
			DBPath:         os.Getenv("JOURNAL_DB_PATH"),
			ReportDefaults: os.Getenv("JOURNAL_REPORT_DEFAULTS"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate checks that the named configuration fields are set. Field names
// are dotted paths like "journal.file".
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, name := range required {
		var value string
		switch name {
		case "journal.file":
			value = c.Journal.File
		case "journal.dbPath":
			value = c.Journal.DBPath
		case "journal.reportDefaults":
			value = c.Journal.ReportDefaults
		default:
			return fmt.Errorf("unknown configuration field: %s", name)
		}
		if value == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s\nPlease check your .env file or environment variables", strings.Join(missing, ", "))
	}

	return nil
}
