package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"spendwise/internal/ai"
	"spendwise/internal/logger"
)

// TextRequest is the input to the text extraction path.
type TextRequest struct {
	Text     string
	Timezone string
	Currency string
	Locale   string
}

// TextExtractor is the primary extraction path for typed or transcribed free
// text. It submits the prompt to a chat-completion endpoint and expects a
// single JSON object in the reply.
type TextExtractor struct {
	client  ai.ChatClient
	prompts PromptConfig
}

// NewTextExtractor creates a TextExtractor using the given chat client and
// prompt configuration.
func NewTextExtractor(client ai.ChatClient, prompts PromptConfig) *TextExtractor {
	return &TextExtractor{client: client, prompts: prompts}
}

// parsedExpense mirrors the JSON schema the system prompt asks for. Pointer
// fields distinguish "absent" from zero.
type parsedExpense struct {
	Amount      *float64 `json:"amount"`
	Currency    string   `json:"currency"`
	Date        string   `json:"date"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Description string   `json:"description"`
	Merchant    string   `json:"merchant"`
	Confidence  *float64 `json:"confidence"`
}

// Extract runs one AI extraction attempt. Failures are classified as
// ErrTransport, ErrMalformedResponse, or ErrMissingAmount so the caller can
// branch to the regex fallback; no failure from here is fit to show a user.
func (e *TextExtractor) Extract(ctx context.Context, req TextRequest, ref time.Time) (*Draft, error) {
	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		loc = time.UTC
	}

	messages := []ai.ChatMessage{
		{Role: "system", Content: e.prompts.System},
		{Role: "user", Content: userPayload(req.Text, req.Timezone, req.Currency, req.Locale)},
	}

	content, err := e.client.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	jsonOnly, ok := extractJSONObject(content)
	if !ok {
		logger.Get().Warnw("ai reply contained no JSON object", "prompt_version", e.prompts.Version)
		return nil, ErrMalformedResponse
	}

	var parsed parsedExpense
	if err := json.Unmarshal([]byte(jsonOnly), &parsed); err != nil {
		logger.Get().Warnw("ai reply did not deserialize", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if parsed.Amount == nil || *parsed.Amount <= 0 {
		return nil, ErrMissingAmount
	}

	confidence := 0.0
	if parsed.Confidence != nil {
		confidence = clampConfidence(*parsed.Confidence)
	}

	currency := parsed.Currency
	if currency == "" {
		currency = req.Currency
	}

	name := parsed.Description
	if name == "" {
		name = truncateName(req.Text)
	}

	return &Draft{
		Name:        name,
		Category:    ResolveCategory(parsed.Category),
		Subcategory: parsed.Subcategory,
		Description: parsed.Description,
		Merchant:    parsed.Merchant,
		Currency:    currency,
		Amount:      *parsed.Amount,
		Date:        ResolveDate(parsed.Date, ref, loc),
		Confidence:  confidence,
		Source:      "AI",
	}, nil
}

// extractJSONObject returns the substring spanning the first '{' through the
// last '}' of content.
func extractJSONObject(content string) (string, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return "", false
	}
	return content[start : end+1], true
}
