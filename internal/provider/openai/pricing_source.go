package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/davidbz/pricebook/internal/domain"
	"github.com/davidbz/pricebook/internal/observability"
)

const (
	pricingSystemPrompt = "You are a helpful assistant that provides accurate, " +
		"up-to-date OpenAI API pricing information. Respond only with valid JSON."

	pricingPrompt = `Provide the current OpenAI API pricing for chat completion models.
I need the input and output token costs per 1000 tokens in USD for each model.

Respond with a single JSON object mapping each model identifier to an object of
this exact shape: {"input": 0.0025, "output": 0.010, "description": "short description"}.

Include all currently available chat completion models. Use the most recent
pricing information available. Only include the JSON object in your response,
no other text.`

	pricingTemperature = 0.1
	pricingMaxTokens   = 1000

	// A plausible pricing table covers at least this many families; anything
	// smaller is treated as a failed fetch.
	minTableSize = 3
)

// PricingSource fetches current pricing by asking a cheap chat model for the
// table as JSON. Best-effort: every failure mode returns an error for the
// pricing cache to swallow.
type PricingSource struct {
	client openai.Client
	model  string
}

// NewPricingSource creates a model-assisted pricing source. The model is the
// one queried for the table, not the one being priced.
func NewPricingSource(config Config, model string) (*PricingSource, error) {
	opts, err := requestOptions(config)
	if err != nil {
		return nil, err
	}

	if model == "" {
		return nil, errors.New("pricing source model is required")
	}

	return &PricingSource{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Name returns the source identifier.
func (s *PricingSource) Name() string {
	return "model"
}

// FetchPricing asks the configured model for the current pricing table and
// parses the outermost JSON object from its reply.
func (s *PricingSource) FetchPricing(ctx context.Context) (domain.PricingTable, error) {
	logger := observability.FromContext(ctx)

	//nolint:exhaustruct // OpenAI SDK struct has many optional fields
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(pricingSystemPrompt),
			openai.UserMessage(pricingPrompt),
		},
		Temperature: openai.Float(pricingTemperature),
		MaxTokens:   openai.Int(pricingMaxTokens),
	})
	if err != nil {
		return nil, fmt.Errorf("pricing completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("pricing response has no choices")
	}

	raw, err := extractJSONObject(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	var payload map[string]domain.PricingPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode pricing payload: %w", err)
	}

	table := domain.TableFromPayload(payload)
	if len(table) < minTableSize {
		return nil, fmt.Errorf("pricing payload too small: %d models", len(table))
	}

	logger.Debug("parsed pricing payload", observability.Int("models", len(table)))
	return table, nil
}

// extractJSONObject returns the outermost JSON object in a completion that
// may wrap it in prose or markdown fences.
func extractJSONObject(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", errors.New("no JSON object in pricing response")
	}
	return content[start : end+1], nil
}
