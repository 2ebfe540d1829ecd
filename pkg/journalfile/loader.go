// Package journalfile loads journal snapshots from YAML files into the
// in-memory object graph. It stands in for a full ledger-text parser: the
// file lists transactions with their postings, and accounts are created on
// demand from the posting account names.
package journalfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/journal-query/pkg/journal"
)

// fileDoc is the on-disk shape of a journal snapshot.
type fileDoc struct {
	Currency     string        `yaml:"currency"` // default for postings without one
	Bucket       string        `yaml:"bucket"`   // default balancing account, optional
	Transactions []fileXact    `yaml:"transactions"`
	Accounts     []fileAccount `yaml:"accounts"` // predeclared accounts, optional
}

type fileAccount struct {
	Name string `yaml:"name"`
	Note string `yaml:"note"`
}

type fileXact struct {
	Date      string        `yaml:"date"` // YYYY-MM-DD
	Payee     string        `yaml:"payee"`
	Narration string        `yaml:"narration"`
	Tags      []string      `yaml:"tags"`
	Postings  []filePosting `yaml:"postings"`
}

type filePosting struct {
	Account  string `yaml:"account"`
	Amount   int64  `yaml:"amount"` // minor units
	Currency string `yaml:"currency"`
	Comment  string `yaml:"comment"`
}

// Load reads a YAML journal snapshot and builds the object graph. The file
// is recorded in the journal's source list.
func Load(path string) (*journal.Journal, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat journal file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal file: %w", err)
	}

	j, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	j.Sources = append(j.Sources, journal.FileInfo{
		Filename: path,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	})
	j.WasLoaded = true
	return j, nil
}

// Parse builds a journal from YAML snapshot bytes. Sources are left for the
// caller to record; journals parsed from a stream get a FromStream entry.
func Parse(data []byte) (*journal.Journal, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse journal YAML: %w", err)
	}

	j := journal.New()

	for _, fa := range doc.Accounts {
		if fa.Name == "" {
			return nil, fmt.Errorf("declared account with empty name")
		}
		acct := j.FindAccount(fa.Name, true)
		acct.Note = fa.Note
	}
	if doc.Bucket != "" {
		j.Bucket = j.FindAccount(doc.Bucket, true)
	}

	for i, fx := range doc.Transactions {
		if fx.Date == "" {
			return nil, fmt.Errorf("transaction %d: missing date", i)
		}
		t := &journal.Transaction{
			Date:      fx.Date,
			Payee:     fx.Payee,
			Narration: fx.Narration,
			Tags:      fx.Tags,
		}
		for k, fp := range fx.Postings {
			if fp.Account == "" {
				return nil, fmt.Errorf("transaction %d posting %d: missing account", i, k)
			}
			currency := fp.Currency
			if currency == "" {
				currency = doc.Currency
			}
			t.AddPosting(&journal.Posting{
				Account:  j.FindAccount(fp.Account, true),
				Amount:   fp.Amount,
				Currency: currency,
				Comment:  fp.Comment,
			})
		}
		j.AddXact(t)
	}

	return j, nil
}
