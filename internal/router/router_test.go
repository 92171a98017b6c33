package router

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"fjacquet/statement-import/internal/extraction"
	"fjacquet/statement-import/internal/importerror"
	"fjacquet/statement-import/internal/logging"
	"fjacquet/statement-import/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	txs []extraction.Transaction
	err error
}

func (s *stubExtractor) Extract(context.Context, string, io.Reader) ([]extraction.Transaction, error) {
	return s.txs, s.err
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		fileName string
		expected Format
	}{
		{"statement.csv", FormatDelimited},
		{"Statement.CSV", FormatDelimited},
		{"export.txt", FormatDelimited},
		{"statement.xml", FormatXML},
		{"scan.pdf", FormatDocument},
		{"photo.jpeg", FormatDocument},
		{"mystery.dat", FormatUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.fileName, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectFormat(tc.fileName))
		})
	}
}

func TestRouteDelimited(t *testing.T) {
	r := New(nil, ',', logging.Discard())

	result, err := r.Route(context.Background(), "statement.csv",
		strings.NewReader("Date,Description,Amount\n01/02/2024,Coffee,-4.50\n"))
	require.NoError(t, err)

	assert.Equal(t, FormatDelimited, result.Format)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, result.Headers)
	assert.Len(t, result.Rows, 1)
	assert.Nil(t, result.Premapped)
}

func TestRouteDelimitedEmptyFileFails(t *testing.T) {
	r := New(nil, ',', logging.Discard())

	_, err := r.Route(context.Background(), "empty.csv", strings.NewReader(""))

	var parseErr *importerror.FileParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestRouteDelimitedHeaderOnlyFails(t *testing.T) {
	r := New(nil, ',', logging.Discard())

	_, err := r.Route(context.Background(), "header.csv", strings.NewReader("Date,Description,Amount\n"))

	var parseErr *importerror.FileParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestRouteXML(t *testing.T) {
	r := New(nil, ',', logging.Discard())

	xml := `<statement>
		<transaction><date>2024-02-01</date><description>Coffee</description><amount>-4.50</amount></transaction>
		<transaction><date>2024-02-02</date><description>Salary</description><amount>3000</amount><category>Wages</category></transaction>
	</statement>`

	result, err := r.Route(context.Background(), "statement.xml", strings.NewReader(xml))
	require.NoError(t, err)

	assert.Equal(t, models.CanonicalHeaders, result.Headers)
	require.NotNil(t, result.Premapped)
	assert.Equal(t, models.CanonicalMapping(), *result.Premapped)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Wages", result.Rows[1].Get("Category"))
}

func TestRouteDocument(t *testing.T) {
	r := New(&stubExtractor{txs: []extraction.Transaction{
		{Date: "2024-02-01", Description: "Woolworths", Amount: -45.2, Category: "Groceries"},
	}}, ',', logging.Discard())

	result, err := r.Route(context.Background(), "scan.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, FormatDocument, result.Format)
	assert.Equal(t, models.CanonicalHeaders, result.Headers)
	require.NotNil(t, result.Premapped)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "-45.2", result.Rows[0].Get("Amount"))
	assert.Equal(t, "Groceries", result.Rows[0].Get("Category"))
}

func TestRouteDocumentExtractionErrorPassesThrough(t *testing.T) {
	r := New(&stubExtractor{err: &importerror.RemoteTimeoutError{File: "scan.pdf"}}, ',', logging.Discard())

	_, err := r.Route(context.Background(), "scan.pdf", strings.NewReader("%PDF"))

	var timeout *importerror.RemoteTimeoutError
	assert.True(t, errors.As(err, &timeout))
}

func TestRouteDocumentWithoutExtractor(t *testing.T) {
	r := New(nil, ',', logging.Discard())

	_, err := r.Route(context.Background(), "scan.pdf", strings.NewReader("%PDF"))

	var extractionErr *importerror.RemoteExtractionError
	assert.True(t, errors.As(err, &extractionErr))
}

func TestRouteDocumentZeroTransactionsFails(t *testing.T) {
	r := New(&stubExtractor{}, ',', logging.Discard())

	_, err := r.Route(context.Background(), "scan.pdf", strings.NewReader("%PDF"))

	var parseErr *importerror.FileParseError
	assert.True(t, errors.As(err, &parseErr))
}
