// Package history provides SQLite storage for query-run history.
package history

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Query run history table
-- Tracks every collection run executed through the CLI
CREATE TABLE IF NOT EXISTS query_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL UNIQUE,       -- UUID assigned per run
    query TEXT NOT NULL,               -- query string as entered
    journal_file TEXT NOT NULL,        -- journal snapshot the run was against
    matched INTEGER NOT NULL,          -- postings collected
    total_posts INTEGER NOT NULL,      -- postings walked
    ran_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_query_runs_journal
    ON query_runs(journal_file);

CREATE INDEX IF NOT EXISTS idx_query_runs_ran_at
    ON query_runs(ran_at);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
