// Package normalizer converts raw statement rows into typed, validated
// records using the confirmed column mapping.
package normalizer

import (
	"context"

	"fjacquet/statement-import/internal/amountutils"
	"fjacquet/statement-import/internal/categorizer"
	"fjacquet/statement-import/internal/dateutils"
	"fjacquet/statement-import/internal/logging"
	"fjacquet/statement-import/internal/models"
)

// Normalizer applies amount, date and category normalization per row.
type Normalizer struct {
	categorizer *categorizer.Categorizer
	log         logging.Logger
}

// New creates a Normalizer.
func New(cat *categorizer.Categorizer, logger logging.Logger) *Normalizer {
	return &Normalizer{categorizer: cat, log: logger}
}

// NormalizeRows converts every raw row. A row is valid when its amount
// parsed, its date resolved, and both the raw date and description are
// non-empty; invalid rows are kept so the review step can show them.
func (n *Normalizer) NormalizeRows(ctx context.Context, rows []models.RawRow, m models.ColumnMapping) []models.NormalizedRow {
	normalized := make([]models.NormalizedRow, 0, len(rows))
	valid := 0
	for i := range rows {
		row := n.normalizeRow(ctx, &rows[i], m)
		if row.IsValid {
			valid++
		}
		normalized = append(normalized, row)
	}

	n.log.WithField("rows", len(normalized)).WithField("valid", valid).
		Info("Normalized statement rows")
	return normalized
}

func (n *Normalizer) normalizeRow(ctx context.Context, raw *models.RawRow, m models.ColumnMapping) models.NormalizedRow {
	rawDate := raw.Get(m.Date)
	description := raw.Get(m.Description)

	amount, amountOK := amountutils.Parse(raw.Get(m.Amount))
	date, dateOK := dateutils.Parse(rawDate)

	// A category column value is trusted verbatim; inference only covers the
	// rows that arrive without one.
	category := raw.Get(m.Category)
	if category == "" {
		category = n.categorizer.Categorize(ctx, description, amount, amountOK)
	}

	return models.NormalizedRow{
		Raw:         raw,
		RawDate:     rawDate,
		Date:        date,
		DateOK:      dateOK,
		Description: description,
		Amount:      amount,
		AmountOK:    amountOK,
		Category:    category,
		IsValid:     amountOK && dateOK && rawDate != "" && description != "",
	}
}
