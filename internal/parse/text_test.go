package parse

import (
	"context"
	"errors"
	"testing"

	"spendwise/internal/ai"
)

// stubChatClient returns a canned reply or error.
type stubChatClient struct {
	reply string
	err   error
}

func (s *stubChatClient) Chat(_ context.Context, _ []ai.ChatMessage) (string, error) {
	return s.reply, s.err
}

func newTextExtractor(reply string, err error) *TextExtractor {
	return NewTextExtractor(&stubChatClient{reply: reply, err: err}, DefaultPrompts())
}

func textReq(text string) TextRequest {
	return TextRequest{Text: text, Timezone: "Asia/Kolkata", Currency: "INR", Locale: "en-IN"}
}

func TestTextExtract(t *testing.T) {
	reply := `{"amount": 450.0, "currency": "INR", "date": "yesterday", "category": "Food & Dining",
		"subcategory": "Sandwich", "description": "Lunch at Subway", "merchant": "Subway", "confidence": 0.92}`

	draft, err := newTextExtractor(reply, nil).Extract(context.Background(), textReq("spent 450 at subway yesterday"), ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if draft.Amount != 450 {
		t.Errorf("expected amount 450, got %f", draft.Amount)
	}
	if draft.Category != "Food & Dining" {
		t.Errorf("expected category Food & Dining, got %q", draft.Category)
	}
	if !draft.Date.Equal(date(2025, 8, 14)) {
		t.Errorf("expected yesterday, got %v", draft.Date)
	}
	if draft.Confidence != 0.92 {
		t.Errorf("expected confidence 0.92, got %f", draft.Confidence)
	}
	if draft.Merchant != "Subway" {
		t.Errorf("expected merchant Subway, got %q", draft.Merchant)
	}
	if draft.Source != "AI" {
		t.Errorf("expected source AI, got %q", draft.Source)
	}
	if draft.Name != "Lunch at Subway" {
		t.Errorf("expected name from description, got %q", draft.Name)
	}
}

func TestTextExtractJSONInsideProse(t *testing.T) {
	reply := "Sure! Here is the extraction:\n```json\n" +
		`{"amount": 120, "category": "Transportation", "date": "2025-08-10", "confidence": 0.8}` +
		"\n```\nLet me know if you need anything else."

	draft, err := newTextExtractor(reply, nil).Extract(context.Background(), textReq("auto 120"), ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Amount != 120 {
		t.Errorf("expected amount 120, got %f", draft.Amount)
	}
	if draft.Category != "Transportation" {
		t.Errorf("expected category Transportation, got %q", draft.Category)
	}
}

func TestTextExtractConfidenceClamped(t *testing.T) {
	tests := []struct {
		name       string
		confidence string
		want       float64
	}{
		{"above one", "1.5", 1.0},
		{"below zero", "-0.2", 0.0},
		{"in range", "0.5", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := `{"amount": 100, "category": "Others", "confidence": ` + tt.confidence + `}`
			draft, err := newTextExtractor(reply, nil).Extract(context.Background(), textReq("stuff 100"), ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if draft.Confidence != tt.want {
				t.Errorf("expected confidence %f, got %f", tt.want, draft.Confidence)
			}
		})
	}
}

func TestTextExtractUnknownCategoryBecomesOthers(t *testing.T) {
	reply := `{"amount": 100, "category": "Groceries", "confidence": 0.7}`
	draft, err := newTextExtractor(reply, nil).Extract(context.Background(), textReq("groceries 100"), ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Category != "Others" {
		t.Errorf("expected unknown category to resolve to Others, got %q", draft.Category)
	}
}

func TestTextExtractErrorClasses(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		callErr error
		want    error
	}{
		{"transport failure", "", errors.New("connection refused"), ErrTransport},
		{"no json object", "I could not parse that, sorry!", nil, ErrMalformedResponse},
		{"broken json", `{"amount": 100,,}`, nil, ErrMalformedResponse},
		{"missing amount", `{"category": "Others", "confidence": 0.9}`, nil, ErrMissingAmount},
		{"zero amount", `{"amount": 0, "category": "Others"}`, nil, ErrMissingAmount},
		{"negative amount", `{"amount": -50, "category": "Others"}`, nil, ErrMissingAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTextExtractor(tt.reply, tt.callErr).Extract(context.Background(), textReq("whatever"), ref)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestTextExtractMissingCurrencyUsesRequest(t *testing.T) {
	reply := `{"amount": 100, "category": "Others", "confidence": 0.5}`
	draft, err := newTextExtractor(reply, nil).Extract(context.Background(), textReq("stuff 100"), ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Currency != "INR" {
		t.Errorf("expected request currency INR, got %q", draft.Currency)
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{`{"a":1}`, `{"a":1}`, true},
		{"prefix {\"a\":1} suffix", `{"a":1}`, true},
		{`{"a":{"b":2}}`, `{"a":{"b":2}}`, true},
		{"no braces here", "", false},
		{"}{", "", false},
	}

	for _, tt := range tests {
		got, ok := extractJSONObject(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("extractJSONObject(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
