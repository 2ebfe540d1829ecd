package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/journal-query/pkg/config"
	"github.com/shunichi-ikebuchi/journal-query/pkg/history"
	"github.com/shunichi-ikebuchi/journal-query/pkg/journalfile"
	"github.com/shunichi-ikebuchi/journal-query/pkg/pathutil"
	"github.com/shunichi-ikebuchi/journal-query/pkg/query"
)

var noHistory bool

// queryCmd represents the query command.
var queryCmd = &cobra.Command{
	Use:   "query <expression>",
	Short: "Collect postings matching a query",
	Long: `Collect postings matching a query expression.

This command:
1. Loads the journal snapshot from JOURNAL_FILE
2. Applies report defaults and aliases, if configured
3. Compiles the expression into a handler chain
4. Walks every posting through the chain
5. Prints the matches and records the run in SQLite

Example:
  journal-query query "assets"
  journal-query query 'expenses:food --head 10' --no-history`,
	Args: cobra.ExactArgs(1),
	Run:  runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history database")
}

func runQuery(cmd *cobra.Command, args []string) {
	expr := args[0]
	slog.Info("Running query", "query", expr)

	// Load configuration
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate("journal.file"); err != nil {
		exitOnError(err, "invalid configuration")
	}

	pathResolver := pathutil.New(pathutil.Config{
		JournalFile:  cfg.Journal.File,
		DatabasePath: cfg.Journal.DBPath,
	})

	// Load the journal snapshot
	journalFile := pathResolver.GetJournalFile()
	slog.Debug("Loading journal", "path", journalFile)

	j, err := journalfile.Load(journalFile)
	exitOnError(err, "failed to load journal")

	// Report defaults are optional
	var queryCfg query.Config
	if cfg.Journal.ReportDefaults != "" {
		queryCfg, err = query.LoadConfig(pathutil.ExpandHome(cfg.Journal.ReportDefaults))
		exitOnError(err, "failed to load report defaults")
	}

	session := query.NewSession(queryCfg)
	coll, err := session.Collect(j, expr)
	exitOnError(err, "query failed")
	defer coll.Close()

	for p := range coll.All() {
		fmt.Printf("%-10s  %-24s  %-40s  %10d %s\n",
			p.Xact.Date, p.Xact.Payee, p.Account.FullName(), p.Amount, p.Currency)
	}
	fmt.Printf("\n%d of %d postings matched\n", coll.Len(), j.PostCount())

	if noHistory {
		slog.Debug("Skipping history recording")
		return
	}

	// Record the run
	dbPath := pathResolver.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)

	conn, err := history.Open(dbPath)
	exitOnError(err, "failed to open history database")
	defer conn.Close()

	runID, err := history.New(conn).RecordRun(expr, journalFile, coll.Len(), j.PostCount())
	exitOnError(err, "failed to record query run")

	slog.Info("Query run recorded", "run_id", runID, "matched", coll.Len())
}
