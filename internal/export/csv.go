// Package export writes the review-step table to a CSV file so a normalized
// batch can be inspected or archived outside the tool.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/statement-import/internal/amountutils"
	"fjacquet/statement-import/internal/dateutils"
	"fjacquet/statement-import/internal/models"

	"github.com/gocarina/gocsv"
)

// reviewRow is the flat CSV shape of a normalized row.
type reviewRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Type        string `csv:"Type"`
	Valid       bool   `csv:"Valid"`
	Duplicate   bool   `csv:"Duplicate"`
}

// WriteReviewCSV writes the normalized rows to csvFile. Invalid rows are
// included with their raw date so the reader can see what failed to parse.
func WriteReviewCSV(rows []models.NormalizedRow, csvFile string, delimiter rune) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil rows to CSV")
	}

	out := make([]reviewRow, len(rows))
	for i, row := range rows {
		date := row.RawDate
		if row.DateOK {
			date = dateutils.ToISO(row.Date)
		}
		out[i] = reviewRow{
			Date:        date,
			Description: row.Description,
			Amount:      amountutils.Format(row.Amount),
			Category:    row.Category,
			Type:        string(models.TypeForAmount(row.Amount)),
			Valid:       row.IsValid,
			Duplicate:   row.IsDuplicate,
		}
	}

	if dir := filepath.Dir(csvFile); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if delimiter != 0 {
		writer.Comma = delimiter
	}
	if err := gocsv.MarshalCSV(&out, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("writing CSV data: %w", err)
	}
	return nil
}
