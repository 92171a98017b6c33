package categorizer

import (
	"context"
	"errors"
	"testing"

	"fjacquet/statement-import/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestKeywordStrategy(t *testing.T) {
	strategy := NewKeywordStrategy(logging.Discard())

	tests := []struct {
		name        string
		description string
		expected    string
		found       bool
	}{
		{"Grocery chain", "WOOLWORTHS METRO 2000", "Groceries", true},
		{"Rideshare", "Uber *Trip", "Transport", true},
		{"Streaming", "NETFLIX.COM", "Entertainment", true},
		{"Cafe", "The Corner Cafe", "Food", true},
		{"Unknown merchant", "ACME WIDGETS", "", false},
		{"Empty description", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			category, found, err := strategy.Categorize(context.Background(), tc.description, decimal.Zero)

			assert.NoError(t, err)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.expected, category)
		})
	}
}

func TestKeywordStrategyRuleOrder(t *testing.T) {
	// "uber eats cafe" matches both Transport and Food keywords; Transport
	// comes first in the rule list and wins.
	strategy := NewKeywordStrategy(logging.Discard())

	category, found, _ := strategy.Categorize(context.Background(), "UBER EATS CAFE", decimal.Zero)
	assert.True(t, found)
	assert.Equal(t, "Transport", category)
}

type stubStrategy struct {
	category string
	found    bool
	err      error
}

func (s *stubStrategy) Categorize(context.Context, string, decimal.Decimal) (string, bool, error) {
	return s.category, s.found, s.err
}

func (s *stubStrategy) Name() string { return "Stub" }

func TestCategorizeFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		amountOK bool
		expected string
	}{
		{"Positive amount", decimal.RequireFromString("3000.00"), true, CategoryIncome},
		{"Negative amount", decimal.RequireFromString("-15.99"), true, CategoryUncategorized},
		{"Zero amount", decimal.Zero, true, CategoryUncategorized},
		{"Unparsable amount", decimal.Zero, false, CategoryUncategorized},
	}

	cat := New(logging.Discard(), NewKeywordStrategy(logging.Discard()))
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := cat.Categorize(context.Background(), "Salary", tc.amount, tc.amountOK)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCategorizeStrategyErrorFallsThrough(t *testing.T) {
	failing := &stubStrategy{err: errors.New("boom")}
	succeeding := &stubStrategy{category: "Groceries", found: true}

	cat := New(logging.Discard(), failing, succeeding)
	got := cat.Categorize(context.Background(), "anything", decimal.Zero, true)
	assert.Equal(t, "Groceries", got)
}
