// Package root contains the root command for the application.
package root

import (
	"fjacquet/statement-import/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded configuration, available after PersistentPreRunE.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "statement-import",
		Short: "Import bank and card statements into canonical transaction records.",
		Long: `statement-import parses bank/card statement exports (CSV, XML, or scanned
documents via remote extraction), maps their columns to canonical fields,
normalizes dates, amounts and categories, flags likely duplicates against
existing history, and commits the result as one atomic batch.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to statement-import!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)
			return nil
		},
	}
)
