// Package importer contains the import subcommand, a non-interactive run of
// the whole session flow: upload, confirm the inferred (or overridden)
// mapping, review, commit.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/statement-import/cmd/root"
	"fjacquet/statement-import/internal/amountutils"
	"fjacquet/statement-import/internal/categorizer"
	"fjacquet/statement-import/internal/dateutils"
	"fjacquet/statement-import/internal/export"
	"fjacquet/statement-import/internal/extraction"
	"fjacquet/statement-import/internal/importerror"
	"fjacquet/statement-import/internal/logging"
	"fjacquet/statement-import/internal/mapping"
	"fjacquet/statement-import/internal/models"
	"fjacquet/statement-import/internal/normalizer"
	"fjacquet/statement-import/internal/router"
	"fjacquet/statement-import/internal/session"
	"fjacquet/statement-import/internal/store"

	"github.com/spf13/cobra"
)

var (
	inputFile      string
	userID         string
	outputFile     string
	skipDuplicates bool
	dryRun         bool

	dateColumn        string
	descriptionColumn string
	amountColumn      string
	categoryColumn    string
)

// Cmd is the import subcommand.
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a statement file",
	Long: `Import a statement file end to end. The column mapping is inferred from the
headers (or reused from a saved template) and can be overridden per slot with
the --*-column flags. With --dry-run the review table is printed and nothing
is committed.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "i", "", "Statement file to import (required)")
	Cmd.Flags().StringVarP(&userID, "user", "u", "", "Owning user identifier (required)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Also export the review table to this CSV file")
	Cmd.Flags().BoolVar(&skipDuplicates, "skip-duplicates", false, "Exclude likely duplicates from the commit")
	Cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the review table without committing")
	Cmd.Flags().StringVar(&dateColumn, "date-column", "", "Override the date column")
	Cmd.Flags().StringVar(&descriptionColumn, "description-column", "", "Override the description column")
	Cmd.Flags().StringVar(&amountColumn, "amount-column", "", "Override the amount column")
	Cmd.Flags().StringVar(&categoryColumn, "category-column", "", "Override the category column")
	_ = Cmd.MarkFlagRequired("file")
	_ = Cmd.MarkFlagRequired("user")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := root.Cfg
	logger := logging.FromLogrus(root.Log)

	var extractor router.Extractor
	if cfg.Extraction.Endpoint != "" {
		extractor = extraction.NewClient(
			cfg.Extraction.Endpoint,
			time.Duration(cfg.Extraction.TimeoutSeconds)*time.Second,
			logger,
		)
	}

	strategies := []categorizer.Strategy{categorizer.NewKeywordStrategy(logger)}
	if cfg.AI.Enabled {
		gemini, err := categorizer.NewGeminiStrategy(ctx, cfg.AI.APIKey, cfg.AI.Model, logger)
		if err != nil {
			return err
		}
		defer func() { _ = gemini.Close() }()
		strategies = append(strategies, gemini)
	}

	txStore, cleanup, err := openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	sess := session.New(userID, session.Deps{
		Router:      router.New(extractor, cfg.Delimiter(), logger),
		Templates:   mapping.NewFileTemplateStore(cfg.Templates.File, logger),
		Normalizer:  normalizer.New(categorizer.New(logger, strategies...), logger),
		Store:       txStore,
		Logger:      logger,
		DedupWindow: cfg.Store.DedupWindow,
	})
	sess.SetSkipDuplicates(skipDuplicates)

	file, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("opening input file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := sess.Upload(ctx, filepath.Base(inputFile), file); err != nil {
		return err
	}

	if err := sess.SetMapping(applyOverrides(sess.Mapping())); err != nil {
		return err
	}

	if err := sess.ConfirmMapping(ctx); err != nil {
		var incomplete *importerror.MappingIncompleteError
		if errors.As(err, &incomplete) {
			root.Log.Errorf("Mapping incomplete for headers %v: use the --*-column flags to map %v",
				sess.Headers(), incomplete.Missing)
		}
		return err
	}

	printReview(sess)

	if outputFile != "" {
		if err := export.WriteReviewCSV(sess.Rows(), outputFile, cfg.Delimiter()); err != nil {
			return err
		}
		root.Log.Infof("Review table exported to %s", outputFile)
	}

	if dryRun {
		root.Log.Infof("Dry run: %d rows would be committed", len(sess.CommitSet()))
		return nil
	}

	count, err := sess.Commit(ctx)
	if err != nil {
		return err
	}
	root.Log.Infof("Import completed successfully! Committed %d transactions.", count)
	return nil
}

// openStore picks Postgres when a database URL is configured, otherwise an
// in-memory store (useful together with --dry-run and --output).
func openStore(ctx context.Context, logger logging.Logger) (store.TransactionStore, func(), error) {
	if root.Cfg.Store.DatabaseURL == "" {
		root.Log.Warn("No database configured; using in-memory store (nothing will persist)")
		return store.NewMemoryStore(), func() {}, nil
	}

	pg, err := store.NewPostgresStore(ctx, root.Cfg.Store.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	return pg, pg.Close, nil
}

func applyOverrides(m models.ColumnMapping) models.ColumnMapping {
	if dateColumn != "" {
		m.Date = dateColumn
	}
	if descriptionColumn != "" {
		m.Description = descriptionColumn
	}
	if amountColumn != "" {
		m.Amount = amountColumn
	}
	if categoryColumn != "" {
		m.Category = categoryColumn
	}
	return m
}

func printReview(sess *session.Session) {
	fmt.Printf("%-12s  %-32s  %12s  %-15s  %-5s  %-9s\n",
		"DATE", "DESCRIPTION", "AMOUNT", "CATEGORY", "VALID", "DUPLICATE")
	for _, row := range sess.Rows() {
		date := row.RawDate
		if row.DateOK {
			date = dateutils.ToISO(row.Date)
		}
		fmt.Printf("%-12s  %-32s  %12s  %-15s  %-5t  %-9t\n",
			date, truncate(row.Description, 32), amountutils.Format(row.Amount),
			row.Category, row.IsValid, row.IsDuplicate)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
