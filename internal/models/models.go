// Package models holds the data types shared by the import pipeline: raw
// rows as parsed from the source file, the column mapping that binds them to
// canonical fields, normalized rows, and the canonical transaction record.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CanonicalHeaders is the synthesized header set used when the source is not
// a user-schema table: remote document extraction and the XML statement
// branch both produce exactly these four columns.
var CanonicalHeaders = []string{"Date", "Description", "Amount", "Category"}

// RawRow is one source line of the uploaded file, keyed by column header.
// Immutable once parsed; owned by the session that parsed it.
type RawRow struct {
	Index  int
	Values map[string]string
}

// Get returns the raw value for a header, or "" when the header is unmapped
// or absent from this row.
func (r RawRow) Get(header string) string {
	if header == "" {
		return ""
	}
	return r.Values[header]
}

// ColumnMapping binds the canonical fields to source headers. Date,
// Description and Amount are required to advance past the mapping step;
// Category is optional.
type ColumnMapping struct {
	Date        string `yaml:"date" json:"date"`
	Description string `yaml:"description" json:"description"`
	Amount      string `yaml:"amount" json:"amount"`
	Category    string `yaml:"category,omitempty" json:"category,omitempty"`
}

// Missing returns the required slots that are empty or refer to a header not
// present in headers. Category is never reported.
func (m ColumnMapping) Missing(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, slot := range []struct {
		name   string
		header string
	}{
		{"date", m.Date},
		{"description", m.Description},
		{"amount", m.Amount},
	} {
		if slot.header == "" || !present[slot.header] {
			missing = append(missing, slot.name)
		}
	}
	return missing
}

// CanonicalMapping returns the perfect mapping for CanonicalHeaders.
func CanonicalMapping() ColumnMapping {
	return ColumnMapping{
		Date:        "Date",
		Description: "Description",
		Amount:      "Amount",
		Category:    "Category",
	}
}

// NormalizedRow is a RawRow after type coercion, category inference and
// duplicate flagging.
type NormalizedRow struct {
	Raw *RawRow

	RawDate     string
	Date        time.Time
	DateOK      bool
	Description string
	Amount      decimal.Decimal
	AmountOK    bool
	Category    string

	IsValid     bool
	IsDuplicate bool
}

// TransactionType classifies a record by the sign of its amount.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// TypeForAmount derives the record type: income for amounts >= 0, expense
// otherwise.
func TypeForAmount(amount decimal.Decimal) TransactionType {
	if amount.Sign() >= 0 {
		return TypeIncome
	}
	return TypeExpense
}

// Transaction is the canonical financial record written to the store.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
}

// Transaction converts a normalized row into a canonical record. The caller
// is expected to only convert valid rows.
func (n NormalizedRow) Transaction() Transaction {
	return Transaction{
		ID:          uuid.New().String(),
		Date:        n.Date,
		Description: n.Description,
		Amount:      n.Amount,
		Category:    n.Category,
		Type:        TypeForAmount(n.Amount),
	}
}
