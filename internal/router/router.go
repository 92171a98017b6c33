// Package router classifies an uploaded statement file and produces a
// uniform header/row table from it, regardless of whether the source is a
// delimited export, an XML statement or a scanned document that needs remote
// extraction.
package router

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"fjacquet/statement-import/internal/extraction"
	"fjacquet/statement-import/internal/importerror"
	"fjacquet/statement-import/internal/logging"
	"fjacquet/statement-import/internal/models"
	"fjacquet/statement-import/internal/tableparser"
	"fjacquet/statement-import/internal/xmlstatement"
)

// Format classifies an uploaded file by its declared type.
type Format string

const (
	FormatDelimited Format = "delimited"
	FormatXML       Format = "xml"
	FormatDocument  Format = "document"
	FormatUnknown   Format = "unknown"
)

// DetectFormat classifies a file by extension. Unknown extensions fall back
// to the delimited parser, which either succeeds or fails cleanly.
func DetectFormat(fileName string) Format {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".tsv", ".txt":
		return FormatDelimited
	case ".xml":
		return FormatXML
	case ".pdf", ".jpg", ".jpeg", ".png", ".heic":
		return FormatDocument
	default:
		return FormatUnknown
	}
}

// Result is the uniform table produced from any supported source. Premapped
// is non-nil when the table was synthesized with the canonical headers and
// no mapping heuristics are needed.
type Result struct {
	Format    Format
	Headers   []string
	Rows      []models.RawRow
	Premapped *models.ColumnMapping
}

// Extractor is the remote document extraction collaborator.
type Extractor interface {
	Extract(ctx context.Context, fileName string, file io.Reader) ([]extraction.Transaction, error)
}

// Router produces tables from uploaded files.
type Router struct {
	extractor Extractor
	delimiter rune
	log       logging.Logger
}

// New creates a Router. The extractor may be nil when document extraction is
// not configured; document uploads then fail with RemoteExtractionError.
func New(extractor Extractor, delimiter rune, logger logging.Logger) *Router {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Router{extractor: extractor, delimiter: delimiter, log: logger}
}

// Route parses the uploaded file into a table. Zero resulting rows or a
// parse failure yield FileParseError; extraction failures keep their own
// error types so the caller can show distinct guidance.
func (r *Router) Route(ctx context.Context, fileName string, file io.Reader) (*Result, error) {
	format := DetectFormat(fileName)
	r.log.WithField("file", fileName).WithField("format", string(format)).Info("Routing uploaded statement")

	switch format {
	case FormatXML:
		return r.routeXML(fileName, file)
	case FormatDocument:
		return r.routeDocument(ctx, fileName, file)
	default:
		return r.routeDelimited(fileName, file)
	}
}

func (r *Router) routeDelimited(fileName string, file io.Reader) (*Result, error) {
	headers, rows, err := tableparser.Parse(file, r.delimiter)
	if err != nil {
		return nil, &importerror.FileParseError{File: fileName, Err: err}
	}
	if len(rows) == 0 {
		return nil, &importerror.FileParseError{File: fileName}
	}

	r.log.WithField("rows", len(rows)).Info("Parsed delimited statement")
	return &Result{Format: FormatDelimited, Headers: headers, Rows: rows}, nil
}

func (r *Router) routeXML(fileName string, file io.Reader) (*Result, error) {
	headers, rows, err := xmlstatement.Parse(file)
	if err != nil {
		return nil, &importerror.FileParseError{File: fileName, Err: err}
	}
	if len(rows) == 0 {
		return nil, &importerror.FileParseError{File: fileName}
	}

	mapping := models.CanonicalMapping()
	r.log.WithField("rows", len(rows)).Info("Parsed XML statement")
	return &Result{Format: FormatXML, Headers: headers, Rows: rows, Premapped: &mapping}, nil
}

func (r *Router) routeDocument(ctx context.Context, fileName string, file io.Reader) (*Result, error) {
	if r.extractor == nil {
		return nil, &importerror.RemoteExtractionError{File: fileName, Message: "extraction service not configured"}
	}

	extracted, err := r.extractor.Extract(ctx, fileName, file)
	if err != nil {
		return nil, err
	}
	if len(extracted) == 0 {
		return nil, &importerror.FileParseError{File: fileName}
	}

	rows := make([]models.RawRow, len(extracted))
	for i, tx := range extracted {
		rows[i] = models.RawRow{
			Index: i,
			Values: map[string]string{
				"Date":        tx.Date,
				"Description": tx.Description,
				"Amount":      strconv.FormatFloat(tx.Amount, 'f', -1, 64),
				"Category":    tx.Category,
			},
		}
	}

	mapping := models.CanonicalMapping()
	r.log.WithField("rows", len(rows)).Info("Synthesized table from extracted document")
	return &Result{Format: FormatDocument, Headers: models.CanonicalHeaders, Rows: rows, Premapped: &mapping}, nil
}
