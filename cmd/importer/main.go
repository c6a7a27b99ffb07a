package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "timetabler",
		Short: "Import exam and class timetables from document text",
		Long: `Timetabler reads exam schedules and weekly class timetables extracted
from PDF or word-processor documents and turns them into schedule records.

  detect   report which grammar a document is read with
  preview  list the entries recognized in a document
  import   preview a document and commit its entries to the database`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(detectCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(importCmd())
	return rootCmd
}
