// Package mapping infers and persists the correspondence between a file's
// columns and the canonical transaction fields. The heuristic guess is a
// pure function; template reuse is a separate lookup layered on top, so each
// stays independently testable.
package mapping

import (
	"strings"

	"fjacquet/statement-import/internal/importerror"
	"fjacquet/statement-import/internal/logging"
	"fjacquet/statement-import/internal/models"
)

// Keyword sets per canonical slot, in match priority order. The first header
// containing any keyword wins the slot.
var (
	dateKeywords        = []string{"date", "time", "day"}
	descriptionKeywords = []string{"desc", "narrative", "details", "merchant"}
	amountKeywords      = []string{"amount", "debit", "value", "cost"}
	categoryKeywords    = []string{"category", "type", "class"}
)

// SignatureDelimiter joins headers into a template cache key.
const SignatureDelimiter = ","

// Signature returns the cache key for a header set: the headers joined in
// their original order.
func Signature(headers []string) string {
	return strings.Join(headers, SignatureDelimiter)
}

// Infer computes the best-guess mapping for a header set. Unmatched slots
// stay empty.
func Infer(headers []string) models.ColumnMapping {
	return models.ColumnMapping{
		Date:        firstMatch(headers, dateKeywords),
		Description: firstMatch(headers, descriptionKeywords),
		Amount:      firstMatch(headers, amountKeywords),
		Category:    firstMatch(headers, categoryKeywords),
	}
}

func firstMatch(headers, keywords []string) string {
	for _, header := range headers {
		lowered := strings.ToLower(header)
		for _, keyword := range keywords {
			if strings.Contains(lowered, keyword) {
				return header
			}
		}
	}
	return ""
}

// Resolve computes the heuristic guess and then overrides it entirely with a
// saved template when one exists for the exact header signature. Template
// lookup failures degrade to the heuristic guess.
func Resolve(headers []string, store TemplateStore, logger logging.Logger) models.ColumnMapping {
	guess := Infer(headers)
	if store == nil {
		return guess
	}

	signature := Signature(headers)
	saved, found, err := store.Get(signature)
	if err != nil {
		logger.WithError(err).Warn("Failed to look up mapping template")
		return guess
	}
	if found {
		logger.WithField("signature", signature).Info("Reusing saved column mapping")
		return saved
	}
	return guess
}

// Validate checks that the required slots are filled and refer to headers
// present in the current header set.
func Validate(m models.ColumnMapping, headers []string) error {
	if missing := m.Missing(headers); len(missing) > 0 {
		return &importerror.MappingIncompleteError{Missing: missing}
	}
	return nil
}
