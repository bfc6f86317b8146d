// Package parse implements the natural-language expense extraction pipeline:
// resolving relative dates, normalizing free-text category labels onto the
// closed category set, AI-backed extraction for typed text and voice
// transcripts, and the deterministic regex fallback used when AI extraction
// is unavailable or returns garbage.
package parse

import (
	"errors"
	"time"
)

// Extraction failure classes. The text path's caller treats all three as a
// signal to run the regex fallback; none of them is ever shown to a client.
var (
	// ErrTransport wraps AI endpoint failures: unreachable host, timeout,
	// or a non-2xx response.
	ErrTransport = errors.New("ai endpoint unavailable")

	// ErrMalformedResponse means the model reply contained no JSON object,
	// or the object did not deserialize.
	ErrMalformedResponse = errors.New("malformed ai response")

	// ErrMissingAmount means the model reply parsed but carried no positive
	// amount, which is the one mandatory field.
	ErrMissingAmount = errors.New("amount missing or not positive")
)

// Draft is the normalized, not-yet-persisted result of parsing free text
// into an expense candidate. Immutable once produced by an extractor.
type Draft struct {
	Name        string
	Category    string // member of the canonical 12-name set
	Subcategory string
	Description string
	Merchant    string
	Currency    string
	Amount      float64
	Date        time.Time
	Confidence  float64 // clamped to [0,1]
	Source      string  // "AI" or "AI_FALLBACK"
}

// VoiceDraft is the voice path's extraction result. It carries a numeric
// category id from the 10-way voice table, which is deliberately a different
// enumeration from Draft.Category's 12-name set.
type VoiceDraft struct {
	Name        string
	Amount      float64
	CategoryID  int // 1..10, 10 = "Other"
	Date        time.Time
	Description string
}

// clampConfidence bounds a model-reported confidence to [0,1].
func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// truncateName shortens raw text to a displayable expense name.
func truncateName(text string) string {
	const max = 60
	if len(text) > max {
		return text[:max]
	}
	return text
}
