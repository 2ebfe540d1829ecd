package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/journal-query/pkg/config"
	"github.com/shunichi-ikebuchi/journal-query/pkg/journal"
	"github.com/shunichi-ikebuchi/journal-query/pkg/journalfile"
	"github.com/shunichi-ikebuchi/journal-query/pkg/pathutil"
)

var flatAccounts bool

// accountsCmd represents the accounts command.
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the journal's account tree",
	Long: `List every account in the journal snapshot with its posting count.

By default the tree structure is shown with indentation; --flat prints
colon-joined full names instead.

Example:
  journal-query accounts
  journal-query accounts --flat`,
	Run: runAccounts,
}

func init() {
	accountsCmd.Flags().BoolVar(&flatAccounts, "flat", false, "Print full account names instead of a tree")
}

func runAccounts(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate("journal.file"); err != nil {
		exitOnError(err, "invalid configuration")
	}

	pathResolver := pathutil.New(pathutil.Config{
		JournalFile:  cfg.Journal.File,
		DatabasePath: cfg.Journal.DBPath,
	})

	journalFile := pathResolver.GetJournalFile()
	slog.Debug("Loading journal", "path", journalFile)

	j, err := journalfile.Load(journalFile)
	exitOnError(err, "failed to load journal")

	printChildren(j.Master)
}

func printChildren(a *journal.Account) {
	for child := range a.Children().All() {
		if flatAccounts {
			fmt.Printf("%-48s  %d postings\n", child.FullName(), len(child.Postings))
		} else {
			indent := strings.Repeat("  ", child.Depth())
			fmt.Printf("%s%s  (%d postings)\n", indent, child.Name, len(child.Postings))
		}
		printChildren(child)
	}
}
