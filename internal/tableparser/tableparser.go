// Package tableparser turns delimited statement exports into a uniform
// header/row table without assuming anything about the column schema.
package tableparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"fjacquet/statement-import/internal/models"
)

// Parse reads a delimited table. The first non-empty line is treated as the
// header row, blank lines are skipped, and short rows are padded so every
// RawRow carries a value for every header. Rows are allowed to be ragged
// because real bank exports frequently are.
func Parse(r io.Reader, delimiter rune) ([]string, []models.RawRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var headers []string
	var rows []models.RawRow

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading delimited data: %w", err)
		}
		if isBlank(record) {
			continue
		}

		if headers == nil {
			headers = trimAll(record)
			continue
		}

		values := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				values[header] = strings.TrimSpace(record[i])
			} else {
				values[header] = ""
			}
		}
		rows = append(rows, models.RawRow{Index: len(rows), Values: values})
	}

	if headers == nil {
		return nil, nil, fmt.Errorf("no header line found")
	}
	return headers, rows, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func trimAll(record []string) []string {
	out := make([]string, len(record))
	for i, field := range record {
		out[i] = strings.TrimSpace(field)
	}
	return out
}
