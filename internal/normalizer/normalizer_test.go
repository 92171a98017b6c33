package normalizer

import (
	"context"
	"testing"
	"time"

	"fjacquet/statement-import/internal/categorizer"
	"fjacquet/statement-import/internal/logging"
	"fjacquet/statement-import/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNormalizer() *Normalizer {
	log := logging.Discard()
	return New(categorizer.New(log, categorizer.NewKeywordStrategy(log)), log)
}

func rawRow(values map[string]string) models.RawRow {
	return models.RawRow{Values: values}
}

var testMapping = models.ColumnMapping{
	Date:        "Date",
	Description: "Description",
	Amount:      "Amount",
	Category:    "Category",
}

func TestNormalizeRowValid(t *testing.T) {
	rows := newNormalizer().NormalizeRows(context.Background(), []models.RawRow{
		rawRow(map[string]string{"Date": "31/01/2024", "Description": "Woolworths", "Amount": "-45.20"}),
	}, testMapping)

	require.Len(t, rows, 1)
	row := rows[0]

	assert.True(t, row.IsValid)
	assert.True(t, row.DateOK)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), row.Date)
	assert.True(t, row.AmountOK)
	assert.Equal(t, "-45.20", row.Amount.StringFixed(2))
	assert.Equal(t, "Groceries", row.Category)
}

func TestNormalizeRowValidityInvariant(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		valid  bool
	}{
		{
			"All fields good",
			map[string]string{"Date": "01/02/2024", "Description": "Salary", "Amount": "3000.00"},
			true,
		},
		{
			"Unparsable amount",
			map[string]string{"Date": "01/02/2024", "Description": "Salary", "Amount": "pending"},
			false,
		},
		{
			"Unparsable date",
			map[string]string{"Date": "someday", "Description": "Salary", "Amount": "3000.00"},
			false,
		},
		{
			"Empty date",
			map[string]string{"Date": "", "Description": "Salary", "Amount": "3000.00"},
			false,
		},
		{
			"Empty description",
			map[string]string{"Date": "01/02/2024", "Description": "", "Amount": "3000.00"},
			false,
		},
	}

	n := newNormalizer()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := n.NormalizeRows(context.Background(), []models.RawRow{rawRow(tc.values)}, testMapping)
			require.Len(t, rows, 1)

			row := rows[0]
			assert.Equal(t, tc.valid, row.IsValid)
			// The invariant itself, not just the expected value.
			assert.Equal(t,
				row.AmountOK && row.DateOK && row.RawDate != "" && row.Description != "",
				row.IsValid)
		})
	}
}

func TestNormalizeRowCategoryColumnTrustedVerbatim(t *testing.T) {
	rows := newNormalizer().NormalizeRows(context.Background(), []models.RawRow{
		rawRow(map[string]string{
			"Date": "01/02/2024", "Description": "Woolworths", "Amount": "-45.20",
			"Category": "Household",
		}),
	}, testMapping)

	// The mapped category wins over what the keyword rules would say.
	assert.Equal(t, "Household", rows[0].Category)
}

func TestNormalizeRowCategoryFallbacks(t *testing.T) {
	tests := []struct {
		name        string
		description string
		amount      string
		expected    string
	}{
		{"Keyword match", "NETFLIX.COM", "-15.99", "Entertainment"},
		{"Positive amount is income", "Salary", "3000.00", "Income"},
		{"Negative unknown is uncategorized", "ACME WIDGETS", "-10.00", "Uncategorized"},
	}

	n := newNormalizer()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := n.NormalizeRows(context.Background(), []models.RawRow{
				rawRow(map[string]string{"Date": "01/02/2024", "Description": tc.description, "Amount": tc.amount}),
			}, testMapping)
			assert.Equal(t, tc.expected, rows[0].Category)
		})
	}
}

func TestNormalizeRowsKeepsInvalidRows(t *testing.T) {
	rows := newNormalizer().NormalizeRows(context.Background(), []models.RawRow{
		rawRow(map[string]string{"Date": "01/02/2024", "Description": "Good", "Amount": "1.00"}),
		rawRow(map[string]string{"Date": "bad", "Description": "Bad", "Amount": "x"}),
	}, testMapping)

	require.Len(t, rows, 2)
	assert.True(t, rows[0].IsValid)
	assert.False(t, rows[1].IsValid)
}
