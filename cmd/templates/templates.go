// Package templates contains the templates subcommand, which lists the
// saved column mapping templates.
package templates

import (
	"fmt"
	"sort"

	"fjacquet/statement-import/cmd/root"
	"fjacquet/statement-import/internal/logging"
	"fjacquet/statement-import/internal/mapping"

	"github.com/spf13/cobra"
)

// Cmd is the templates subcommand.
var Cmd = &cobra.Command{
	Use:   "templates",
	Short: "List saved column mapping templates",
	Long: `List every saved column mapping template, keyed by the header signature it
was confirmed for. Templates are written automatically when a mapping is
confirmed during an import.`,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	store := mapping.NewFileTemplateStore(root.Cfg.Templates.File, logging.FromLogrus(root.Log))

	templates, err := store.All()
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		root.Log.Info("No mapping templates saved yet")
		return nil
	}

	signatures := make([]string, 0, len(templates))
	for signature := range templates {
		signatures = append(signatures, signature)
	}
	sort.Strings(signatures)

	for _, signature := range signatures {
		m := templates[signature]
		fmt.Printf("%s\n", signature)
		fmt.Printf("  date=%s description=%s amount=%s category=%s\n",
			m.Date, m.Description, m.Amount, m.Category)
	}
	return nil
}
