package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "epubstamp",
	Short: "Batch EPUB metadata updater driven by filename templates",
	Long: `Epubstamp rewrites EPUB metadata in bulk. It extracts fields such as
author, year and issue number from filenames using a placeholder template,
then updates each file's OPF metadata in place.

Configuration for the batch run flows through environment variables
(DIRECTORY, TEMPLATE, TITLE, DESCRIPTION, SUBJECT), so the tool runs
unchanged inside a container.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env file if present (ignore errors)
		_ = godotenv.Load()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
