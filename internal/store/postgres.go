package store

import (
	"context"
	"fmt"

	"fjacquet/statement-import/internal/logging"
	"fjacquet/statement-import/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore backs TransactionStore with Postgres. CreateMany runs inside
// a single transaction, which is what gives the batch its all-or-nothing
// guarantee.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  logging.Logger
}

// NewPostgresStore connects a pool to the given database URL.
func NewPostgresStore(ctx context.Context, databaseURL string, logger logging.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return &PostgresStore{pool: pool, log: logger}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Recent returns the user's most recent transactions, newest first.
func (s *PostgresStore) Recent(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = DefaultDedupWindow
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, date, description, amount::text, category, type
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY date DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var amount string
		if err := rows.Scan(&tx.ID, &tx.Date, &tx.Description, &amount, &tx.Category, &tx.Type); err != nil {
			return nil, fmt.Errorf("scanning transaction row: %w", err)
		}
		tx.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parsing stored amount '%s': %w", amount, err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading recent transactions: %w", err)
	}

	s.log.WithField("count", len(txs)).Debug("Fetched recent transactions")
	return txs, nil
}

// CreateMany inserts the whole batch in one transaction and rolls back on
// the first failed insert.
func (s *PostgresStore) CreateMany(ctx context.Context, userID string, txs []models.Transaction) error {
	dbTx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		if err := dbTx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			s.log.WithError(err).Warn("Failed to roll back transaction")
		}
	}()

	for _, tx := range txs {
		id := tx.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := dbTx.Exec(ctx,
			`INSERT INTO transactions (id, user_id, date, description, amount, category, type)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, userID, tx.Date, tx.Description, tx.Amount.StringFixed(2), tx.Category, string(tx.Type)); err != nil {
			return fmt.Errorf("inserting transaction: %w", err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}

	s.log.WithField("count", len(txs)).Info("Committed transaction batch")
	return nil
}
