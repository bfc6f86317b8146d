package parse

import (
	"regexp"
	"strconv"
	"time"

	apperrors "spendwise/internal/errors"
)

// amountPattern matches the first decimal number in the text, optionally
// followed by an Indian currency word.
var amountPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:rs|inr|rupees)?`)

// FallbackExtract is the deterministic, low-confidence extraction path used
// when AI extraction is unavailable or malformed. It recovers only the
// amount; everything else is defaulted. Fails with EXTRACTION_FAILED when
// the text contains no number at all.
func FallbackExtract(text string, ref time.Time, loc *time.Location) (*Draft, error) {
	match := amountPattern.FindStringSubmatch(text)
	if match == nil {
		return nil, apperrors.ErrExtractionFailed
	}

	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExtractionFailed, err)
	}

	return &Draft{
		Name:        truncateName(text),
		Category:    DefaultCategory,
		Description: text,
		Currency:    "INR",
		Amount:      amount,
		Date:        dateIn(ref, loc),
		Confidence:  0.3,
		Source:      "AI_FALLBACK",
	}, nil
}
