package categorizer

import (
	"context"
	"strings"

	"fjacquet/statement-import/internal/logging"

	"github.com/shopspring/decimal"
)

// keywordRule maps an ordered keyword list to a category. Rules are checked
// in order and the first keyword contained in the lowercased description
// wins, so more specific merchants should come before generic terms.
type keywordRule struct {
	Category string
	Keywords []string
}

var defaultRules = []keywordRule{
	{"Groceries", []string{
		"woolworths", "coles", "aldi", "iga", "lidl", "tesco", "safeway",
		"grocery", "supermarket",
	}},
	{"Transport", []string{
		"uber", "lyft", "taxi", "metro", "transit", "opal", "myki",
		"fuel", "petrol", "parking",
	}},
	{"Entertainment", []string{
		"netflix", "spotify", "disney", "hulu", "prime video", "youtube",
		"cinema", "steam",
	}},
	{"Food", []string{
		"cafe", "coffee", "restaurant", "mcdonald", "kfc", "subway",
		"bakery", "pizza", "takeaway",
	}},
}

// KeywordStrategy categorizes by ordered substring matching against the
// description.
type KeywordStrategy struct {
	rules []keywordRule
	log   logging.Logger
}

// NewKeywordStrategy creates the keyword strategy with the built-in rules.
func NewKeywordStrategy(logger logging.Logger) *KeywordStrategy {
	return &KeywordStrategy{rules: defaultRules, log: logger}
}

// Name returns the strategy name.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize matches the lowercased description against the rule list.
func (s *KeywordStrategy) Categorize(_ context.Context, description string, _ decimal.Decimal) (string, bool, error) {
	lowered := strings.ToLower(description)
	if strings.TrimSpace(lowered) == "" {
		return "", false, nil
	}

	for _, rule := range s.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				s.log.WithField("keyword", keyword).WithField("category", rule.Category).
					Debug("Transaction categorized by keyword")
				return rule.Category, true, nil
			}
		}
	}
	return "", false, nil
}
