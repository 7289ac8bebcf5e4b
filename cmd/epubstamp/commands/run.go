package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"epubstamp/internal/batch"
	"epubstamp/internal/config"
	"epubstamp/internal/logging"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Update metadata for every EPUB under DIRECTORY",
	Long: `Run performs one batch pass: it walks DIRECTORY recursively, matches
each EPUB filename against TEMPLATE, and rewrites the matching files'
metadata in place. Files whose names do not match are left untouched.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, config.Usage())
			return err
		}

		log := logging.Setup(cfg.LogLevel)

		updater, err := batch.New(cfg, cmd.OutOrStdout(), log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		summary, err := updater.Run(ctx)
		if err != nil {
			return err
		}
		log.Info("sweep complete",
			"processed", summary.Processed,
			"updated", summary.Updated,
			"skipped", summary.Skipped,
			"failed", summary.Failed)
		return nil
	},
}
