package services

import (
	"context"
	"errors"
	"time"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/logger"
	"spendwise/internal/models"
	"spendwise/internal/parse"
)

// TextDraftExtractor produces a draft from typed free text, or a classified
// extraction error.
type TextDraftExtractor interface {
	Extract(ctx context.Context, req parse.TextRequest, ref time.Time) (*parse.Draft, error)
}

// VoiceDraftExtractor produces a draft from a voice transcript. It never
// fails.
type VoiceDraftExtractor interface {
	Extract(ctx context.Context, voiceText string) parse.VoiceDraft
}

// extractionService orchestrates the two extraction pipelines and persists
// the resulting expenses.
type extractionService struct {
	text       TextDraftExtractor
	voice      VoiceDraftExtractor
	categories CategoryServicer
	expenses   ExpenseServicer

	defaultTimezone string
	defaultCurrency string
	now             func() time.Time
}

// NewExtractionService creates a new ExtractionServicer.
func NewExtractionService(
	text TextDraftExtractor,
	voice VoiceDraftExtractor,
	categories CategoryServicer,
	expenses ExpenseServicer,
	defaultTimezone, defaultCurrency string,
) ExtractionServicer {
	return &extractionService{
		text:            text,
		voice:           voice,
		categories:      categories,
		expenses:        expenses,
		defaultTimezone: defaultTimezone,
		defaultCurrency: defaultCurrency,
		now:             time.Now,
	}
}

// ParseExpense runs the text extraction pipeline: AI first, regex fallback
// on any transport, malformed-response, or missing-amount failure. The
// request fails only when the fallback cannot find a number either.
func (s *extractionService) ParseExpense(ctx context.Context, userID uint, req parse.TextRequest) (*ExtractionResult, error) {
	if req.Text == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "text is required")
	}
	if req.Timezone == "" {
		req.Timezone = s.defaultTimezone
	}
	if req.Currency == "" {
		req.Currency = s.defaultCurrency
	}

	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		loc = time.UTC
	}
	ref := s.now()

	draft, err := s.text.Extract(ctx, req, ref)
	if err != nil {
		if !isRecoverable(err) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		logger.Get().Warnw("ai extraction failed, using regex fallback",
			"user_id", userID,
			"error", err,
		)
		draft, err = parse.FallbackExtract(req.Text, ref, loc)
		if err != nil {
			return nil, err
		}
	}

	category, err := s.categoryByName(draft.Category)
	if err != nil {
		return nil, err
	}

	expense, err := s.expenses.CreateExpense(userID, ExpenseInput{
		Name:        draft.Name,
		Description: draft.Description,
		CategoryID:  category.ID,
		Amount:      draft.Amount,
		Date:        draft.Date,
		Source:      models.ExpenseSource(draft.Source),
	})
	if err != nil {
		return nil, err
	}

	return &ExtractionResult{
		ExpenseID:   expense.ID,
		Name:        expense.Name,
		Category:    category.Name,
		Subcategory: draft.Subcategory,
		Amount:      expense.Amount,
		Currency:    draft.Currency,
		Date:        expense.Date,
		Description: expense.Description,
		Merchant:    draft.Merchant,
		Confidence:  draft.Confidence,
		Source:      string(expense.Source),
	}, nil
}

// ProcessVoiceExpense runs the voice pipeline. Extraction never fails, so
// the only failure mode is persistence; in that case the result reports
// Success = false rather than surfacing an error status.
func (s *extractionService) ProcessVoiceExpense(ctx context.Context, userID uint, voiceText string) (*VoiceExtractionResult, error) {
	if voiceText == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "voice text is required")
	}

	draft := s.voice.Extract(ctx, voiceText)

	// Voice category ids address the seeded category rows directly.
	category, err := s.categories.GetCategoryByID(uint(draft.CategoryID))
	if err != nil {
		if !errors.Is(err, apperrors.ErrCategoryNotFound) {
			return nil, err
		}
		category, err = s.categoryByName(parse.DefaultCategory)
		if err != nil {
			return nil, err
		}
	}

	confidence := "low"
	if draft.Amount > 0 {
		confidence = "high"
	}

	expense, err := s.expenses.CreateExpense(userID, ExpenseInput{
		Name:        draft.Name,
		Description: draft.Description,
		CategoryID:  category.ID,
		Amount:      draft.Amount,
		Date:        draft.Date,
		Source:      models.SourceVoice,
	})
	if err != nil {
		logger.Get().Errorw("failed to persist voice expense", "user_id", userID, "error", err)
		return &VoiceExtractionResult{
			Success:    false,
			Message:    "Could not save the extracted expense",
			ParsedText: voiceText,
			Confidence: confidence,
		}, nil
	}

	return &VoiceExtractionResult{
		Success:    true,
		Message:    "Expense created successfully from voice input",
		Expense:    expense,
		ParsedText: voiceText,
		Confidence: confidence,
	}, nil
}

// isRecoverable reports whether a text extraction failure should degrade to
// the regex fallback.
func isRecoverable(err error) bool {
	return errors.Is(err, parse.ErrTransport) ||
		errors.Is(err, parse.ErrMalformedResponse) ||
		errors.Is(err, parse.ErrMissingAmount)
}

// categoryByName resolves a canonical category name to its seeded row,
// falling back to the catch-all category when the name is missing.
func (s *extractionService) categoryByName(name string) (*models.Category, error) {
	category, err := s.categories.GetCategoryByName(name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, apperrors.ErrCategoryNotFound) {
		return nil, err
	}
	return s.categories.GetCategoryByName(parse.DefaultCategory)
}
