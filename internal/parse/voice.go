package parse

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"spendwise/internal/ai"
	"spendwise/internal/logger"
)

// Per-field recovery patterns for the quasi-JSON the voice model returns.
// Each field is recovered independently; a missing field simply stays unset.
var (
	voiceNamePattern     = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)
	voiceAmountPattern   = regexp.MustCompile(`"amount"\s*:\s*(\d+\.?\d*)`)
	voiceCategoryPattern = regexp.MustCompile(`"categoryId"\s*:\s*(\d+)`)
	voiceDatePattern     = regexp.MustCompile(`"date"\s*:\s*"([^"]+)"`)
	voiceDescPattern     = regexp.MustCompile(`"description"\s*:\s*"([^"]*)"`)
)

// VoiceExtractor turns a voice transcript into a VoiceDraft via a generative
// completion endpoint. It never fails: whatever goes wrong, the caller gets
// a usable draft with defaulted fields.
type VoiceExtractor struct {
	client ai.GenerativeClient
	loc    *time.Location
	now    func() time.Time
}

// NewVoiceExtractor creates a VoiceExtractor resolving dates in loc.
func NewVoiceExtractor(client ai.GenerativeClient, loc *time.Location) *VoiceExtractor {
	if loc == nil {
		loc = time.UTC
	}
	return &VoiceExtractor{client: client, loc: loc, now: time.Now}
}

// Extract parses the transcript. The model's reply is not assumed to be
// valid JSON; fields are recovered one by one and a single defaulting pass
// fills whatever could not be read. On total failure (including transport
// errors) the all-defaults draft is returned.
func (e *VoiceExtractor) Extract(ctx context.Context, voiceText string) VoiceDraft {
	today := dateIn(e.now(), e.loc)

	response, err := e.client.Generate(ctx, buildVoicePrompt(voiceText, today))
	if err != nil {
		logger.Get().Warnw("voice extraction call failed, returning defaults", "error", err)
		return failedVoiceDraft(today)
	}

	draft := VoiceDraft{CategoryID: -1}

	if m := voiceNamePattern.FindStringSubmatch(response); m != nil {
		draft.Name = strings.TrimSpace(m[1])
	}
	if m := voiceAmountPattern.FindStringSubmatch(response); m != nil {
		if amount, err := strconv.ParseFloat(m[1], 64); err == nil {
			draft.Amount = amount
		}
	}
	if m := voiceCategoryPattern.FindStringSubmatch(response); m != nil {
		if id, err := strconv.Atoi(m[1]); err == nil {
			draft.CategoryID = id
		}
	}
	if m := voiceDatePattern.FindStringSubmatch(response); m != nil {
		// The transcript, not the model, is the source of truth when the
		// model's date is implausible.
		draft.Date = ResolveAndValidateDate(m[1], voiceText, today, e.loc)
	}
	if m := voiceDescPattern.FindStringSubmatch(response); m != nil {
		draft.Description = strings.TrimSpace(m[1])
	}

	applyVoiceDefaults(&draft, today)
	return draft
}

// applyVoiceDefaults is the single defaulting pass that upholds the
// always-returns-a-usable-draft guarantee.
func applyVoiceDefaults(draft *VoiceDraft, today time.Time) {
	if draft.Name == "" {
		draft.Name = "Voice Expense"
	}
	if draft.Amount < 0 {
		draft.Amount = 0.0
	}
	draft.CategoryID = NormalizeVoiceCategoryID(draft.CategoryID)
	if draft.Date.IsZero() {
		draft.Date = today
	}
	if draft.Description == "" {
		draft.Description = "Expense from voice input"
	}
}

// failedVoiceDraft is the all-defaults draft produced on total extraction
// failure.
func failedVoiceDraft(today time.Time) VoiceDraft {
	return VoiceDraft{
		Name:        "Voice Expense",
		Amount:      0.0,
		CategoryID:  DefaultVoiceCategoryID,
		Date:        today,
		Description: "Failed to parse voice input",
	}
}

