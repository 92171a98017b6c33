// Package categorizer assigns a spending category to a transaction from its
// description. Strategies are tried in order; the amount-sign fallback
// applies only when every strategy declines.
package categorizer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Strategy is one way of categorizing a transaction.
type Strategy interface {
	// Categorize returns the category, whether this strategy produced one,
	// and any error. A strategy error is not fatal to categorization; the
	// next strategy is consulted.
	Categorize(ctx context.Context, description string, amount decimal.Decimal) (string, bool, error)

	// Name identifies the strategy in logs.
	Name() string
}

// Fallback categories used when no strategy matches.
const (
	CategoryIncome        = "Income"
	CategoryUncategorized = "Uncategorized"
)
