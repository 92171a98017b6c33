package categorizer

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/statement-import/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
)

// GeminiStrategy asks a Gemini model to categorize descriptions the keyword
// rules don't know. It is optional and sits between the keyword strategy and
// the amount-sign fallback; any API failure simply declines the transaction.
type GeminiStrategy struct {
	client *genai.Client
	model  string
	log    logging.Logger
}

// NewGeminiStrategy creates the AI strategy. The caller owns closing it.
func NewGeminiStrategy(ctx context.Context, apiKey, model string, logger logging.Logger) (*GeminiStrategy, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiStrategy{client: client, model: model, log: logger}, nil
}

// Name returns the strategy name.
func (s *GeminiStrategy) Name() string {
	return "Gemini"
}

// Categorize prompts the model for a single category word.
func (s *GeminiStrategy) Categorize(ctx context.Context, description string, amount decimal.Decimal) (string, bool, error) {
	if strings.TrimSpace(description) == "" {
		return "", false, nil
	}

	prompt := fmt.Sprintf(
		"Categorize this bank transaction into exactly one of: Groceries, Transport, Entertainment, Food, Income, Uncategorized.\n"+
			"Respond with the category name only.\n"+
			"Description: %s\nAmount: %s", description, amount.StringFixed(2))

	model := s.client.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		s.log.WithError(err).Warn("Gemini categorization failed")
		return "", false, nil
	}

	category := firstText(resp)
	if category == "" || category == CategoryUncategorized {
		return "", false, nil
	}

	s.log.WithField("category", category).Debug("Transaction categorized by Gemini")
	return category, true, nil
}

// Close releases the underlying API client.
func (s *GeminiStrategy) Close() error {
	return s.client.Close()
}

func firstText(resp *genai.GenerateContentResponse) string {
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				return strings.TrimSpace(string(text))
			}
		}
	}
	return ""
}
