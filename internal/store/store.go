// Package store is the interface to the external document store holding the
// user's transaction history, plus its Postgres and in-memory
// implementations.
package store

import (
	"context"

	"fjacquet/statement-import/internal/models"
)

// DefaultDedupWindow bounds the history snapshot fetched for duplicate
// comparison.
const DefaultDedupWindow = 500

// TransactionStore reads recent history and writes accepted import batches.
type TransactionStore interface {
	// Recent returns up to limit of the user's most recent transactions,
	// ordered by transaction date descending.
	Recent(ctx context.Context, userID string, limit int) ([]models.Transaction, error)

	// CreateMany writes the batch atomically: either every record is durably
	// written or none are. No partial commit is ever visible.
	CreateMany(ctx context.Context, userID string, txs []models.Transaction) error
}
