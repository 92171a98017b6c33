package store

import (
	"context"
	"sort"
	"sync"

	"fjacquet/statement-import/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory TransactionStore used by tests and dry runs.
// Error fields let tests inject failures; FailAtIndex simulates a write
// failing partway through a batch, which must leave nothing behind.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]models.Transaction

	RecentErr     error
	CreateManyErr error
	FailAtIndex   int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string][]models.Transaction{}}
}

// Recent returns up to limit records, newest first.
func (s *MemoryStore) Recent(_ context.Context, userID string, limit int) ([]models.Transaction, error) {
	if s.RecentErr != nil {
		return nil, s.RecentErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Transaction, len(s.records[userID]))
	copy(out, s.records[userID])
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CreateMany stages the whole batch and publishes it in one step, so an
// injected mid-batch failure persists nothing.
func (s *MemoryStore) CreateMany(_ context.Context, userID string, txs []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make([]models.Transaction, 0, len(txs))
	for i, tx := range txs {
		if s.CreateManyErr != nil && i >= s.FailAtIndex {
			return s.CreateManyErr
		}
		if tx.ID == "" {
			tx.ID = uuid.New().String()
		}
		staged = append(staged, tx)
	}

	s.records[userID] = append(s.records[userID], staged...)
	return nil
}

// Count returns the number of persisted records for a user.
func (s *MemoryStore) Count(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records[userID])
}
