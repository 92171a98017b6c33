package categorizer

import (
	"context"

	"fjacquet/statement-import/internal/logging"

	"github.com/shopspring/decimal"
)

// Categorizer runs its strategies in order and falls back to the amount
// sign: positive amounts become Income, everything else Uncategorized.
type Categorizer struct {
	strategies []Strategy
	log        logging.Logger
}

// New creates a Categorizer with the given strategy chain.
func New(logger logging.Logger, strategies ...Strategy) *Categorizer {
	return &Categorizer{strategies: strategies, log: logger}
}

// Categorize returns the category for a transaction. amountOK reports
// whether the amount parsed; an unparsable amount can never indicate income.
func (c *Categorizer) Categorize(ctx context.Context, description string, amount decimal.Decimal, amountOK bool) string {
	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, description, amount)
		if err != nil {
			c.log.WithError(err).WithField("strategy", strategy.Name()).
				Warn("Categorization strategy failed")
			continue
		}
		if found {
			return category
		}
	}

	if amountOK && amount.Sign() > 0 {
		return CategoryIncome
	}
	return CategoryUncategorized
}
