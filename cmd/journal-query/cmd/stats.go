package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/journal-query/pkg/config"
	"github.com/shunichi-ikebuchi/journal-query/pkg/history"
	"github.com/shunichi-ikebuchi/journal-query/pkg/pathutil"
)

var statsRecent int

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display query run statistics",
	Long: `Display statistics about recorded query runs.

Shows:
- Total number of recorded runs
- Total number of matched postings
- Last run timestamp
- The most recent runs

Example:
  journal-query stats
  journal-query stats --recent 20`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsRecent, "recent", 10, "Number of recent runs to list")
}

func runStats(cmd *cobra.Command, args []string) {
	slog.Info("Loading configuration")

	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate("journal.file"); err != nil {
		exitOnError(err, "invalid configuration")
	}

	pathResolver := pathutil.New(pathutil.Config{
		JournalFile:  cfg.Journal.File,
		DatabasePath: cfg.Journal.DBPath,
	})

	dbPath := pathResolver.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)

	conn, err := history.Open(dbPath)
	exitOnError(err, "failed to open history database")
	defer conn.Close()

	hist := history.New(conn)

	stats, err := hist.GetStats()
	exitOnError(err, "failed to get statistics")

	fmt.Println("\n=== Query Run Statistics ===")
	fmt.Printf("Total runs:            %d\n", stats.TotalRuns)
	fmt.Printf("Total matched posts:   %d\n", stats.TotalMatched)

	if stats.LastRun.Valid {
		fmt.Printf("Last run:              %s\n", stats.LastRun.String)
	} else {
		fmt.Printf("Last run:              (never)\n")
	}

	if statsRecent > 0 {
		records, err := hist.ListRecent(statsRecent)
		exitOnError(err, "failed to list recent runs")

		if len(records) > 0 {
			fmt.Println("\nRecent runs:")
			for _, r := range records {
				fmt.Printf("  %s  %-32q  %d/%d matched\n",
					r.RanAt.Format("2006-01-02 15:04:05"), r.Query, r.Matched, r.TotalPosts)
			}
		}
	}

	fmt.Println()

	slog.Info("Statistics displayed successfully")
}
