package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunRecord represents one recorded query run.
type RunRecord struct {
	ID          int64
	RunID       string
	Query       string
	JournalFile string
	Matched     int
	TotalPosts  int
	RanAt       time.Time
}

// Stats summarizes the recorded runs.
type Stats struct {
	TotalRuns    int
	TotalMatched int64
	LastRun      sql.NullString
}

// History manages query-run history operations.
type History struct {
	conn *Connection
}

// New creates a new History instance.
func New(conn *Connection) *History {
	return &History{conn: conn}
}

// RecordRun records a query run and returns its assigned run ID.
func (h *History) RecordRun(query, journalFile string, matched, totalPosts int) (string, error) {
	runID := uuid.NewString()

	insert := `
		INSERT INTO query_runs (run_id, query, journal_file, matched, total_posts)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := h.conn.Exec(insert, runID, query, journalFile, matched, totalPosts)
	if err != nil {
		return "", fmt.Errorf("failed to record query run: %w", err)
	}

	return runID, nil
}

// ListRecent retrieves the most recent runs, newest first.
func (h *History) ListRecent(limit int) ([]RunRecord, error) {
	query := `
		SELECT id, run_id, query, journal_file, matched, total_posts, ran_at
		FROM query_runs
		ORDER BY ran_at DESC, id DESC
		LIMIT ?
	`

	rows, err := h.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		if err := rows.Scan(
			&record.ID,
			&record.RunID,
			&record.Query,
			&record.JournalFile,
			&record.Matched,
			&record.TotalPosts,
			&record.RanAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan query run: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// GetStats returns summary statistics over all recorded runs.
func (h *History) GetStats() (*Stats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(matched), 0), MAX(ran_at)
		FROM query_runs
	`

	var stats Stats
	err := h.conn.QueryRow(query).Scan(&stats.TotalRuns, &stats.TotalMatched, &stats.LastRun)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	return &stats, nil
}
