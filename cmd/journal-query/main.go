// Package main is the entry point for journal-query CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/journal-query/cmd/journal-query/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
