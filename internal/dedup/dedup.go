// Package dedup flags rows that likely already exist in the user's
// transaction history. The comparison uses amount (within a cent) and
// case-insensitive description only; dates are excluded because raw date
// strings from different statement formats cannot be compared reliably.
package dedup

import (
	"strings"

	"fjacquet/statement-import/internal/models"

	"github.com/shopspring/decimal"
)

// Epsilon is the amount tolerance for considering two records equal.
var Epsilon = decimal.New(1, -2)

// Index is the snapshot of recent history used for duplicate comparison. It
// is fetched once per session; concurrent writes elsewhere are an accepted
// staleness window.
type Index struct {
	records []models.Transaction
}

// NewIndex builds an index over the given history window.
func NewIndex(records []models.Transaction) *Index {
	return &Index{records: records}
}

// Size returns the number of records in the window.
func (i *Index) Size() int {
	return len(i.records)
}

// IsDuplicate reports whether an existing record matches the candidate
// amount and description.
func (i *Index) IsDuplicate(amount decimal.Decimal, description string) bool {
	lowered := strings.ToLower(description)
	for _, existing := range i.records {
		if existing.Amount.Sub(amount).Abs().LessThan(Epsilon) &&
			strings.ToLower(existing.Description) == lowered {
			return true
		}
	}
	return false
}

// MarkDuplicates flags every normalized row against the index. Flags are
// computed unconditionally; whether duplicates are committed is decided
// later by the batch committer.
func MarkDuplicates(rows []models.NormalizedRow, index *Index) {
	if index == nil {
		return
	}
	for i := range rows {
		rows[i].IsDuplicate = index.IsDuplicate(rows[i].Amount, rows[i].Description)
	}
}
