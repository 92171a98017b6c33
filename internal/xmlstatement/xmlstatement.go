// Package xmlstatement parses XML statement exports into the canonical
// four-column table. Some banks offer XML alongside CSV; the XPath-based
// extraction keeps us independent of the exact envelope around the
// transaction list.
package xmlstatement

import (
	"fmt"
	"io"

	"fjacquet/statement-import/internal/models"

	"gopkg.in/xmlpath.v2"
)

var (
	transactionPath = xmlpath.MustCompile("//transaction")
	datePath        = xmlpath.MustCompile("date")
	descriptionPath = xmlpath.MustCompile("description")
	amountPath      = xmlpath.MustCompile("amount")
	categoryPath    = xmlpath.MustCompile("category")
)

// Parse reads an XML statement and synthesizes the canonical table. Every
// <transaction> element becomes one row; missing child elements become empty
// values and are caught later by row validation.
func Parse(r io.Reader) ([]string, []models.RawRow, error) {
	root, err := xmlpath.Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing XML statement: %w", err)
	}

	var rows []models.RawRow
	iter := transactionPath.Iter(root)
	for iter.Next() {
		node := iter.Node()
		rows = append(rows, models.RawRow{
			Index: len(rows),
			Values: map[string]string{
				"Date":        stringOrEmpty(datePath, node),
				"Description": stringOrEmpty(descriptionPath, node),
				"Amount":      stringOrEmpty(amountPath, node),
				"Category":    stringOrEmpty(categoryPath, node),
			},
		})
	}

	return models.CanonicalHeaders, rows, nil
}

func stringOrEmpty(path *xmlpath.Path, node *xmlpath.Node) string {
	if value, ok := path.String(node); ok {
		return value
	}
	return ""
}
