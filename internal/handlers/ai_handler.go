package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/parse"
	"spendwise/internal/services"
)

// AIHandler handles natural-language expense extraction requests.
type AIHandler struct {
	extractionService services.ExtractionServicer
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(extractionService services.ExtractionServicer) *AIHandler {
	return &AIHandler{extractionService: extractionService}
}

// ParseExpenseRequest represents the text extraction payload.
type ParseExpenseRequest struct {
	Text     string `json:"text" binding:"required,max=1000"`
	Timezone string `json:"timezone" binding:"omitempty,timezone"`
	Currency string `json:"currency" binding:"omitempty,iso4217"`
	Locale   string `json:"locale" binding:"omitempty,max=20"`
}

// VoiceExpenseRequest represents the voice extraction payload.
type VoiceExpenseRequest struct {
	VoiceText string `json:"voice_text" binding:"required,max=2000"`
}

// ParseExpense extracts and records an expense from free text
// @Summary     Parse expense from text
// @Description Extract an expense from a natural-language sentence and record it. Falls back to regex extraction when the AI endpoint is unavailable.
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ParseExpenseRequest true "Text to parse"
// @Success     201 {object} map[string]interface{} "Extracted and recorded expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     422 {object} ErrorResponse "No amount could be extracted"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Router      /ai/parse-expense [post]
func (h *AIHandler) ParseExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ParseExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.extractionService.ParseExpense(c.Request.Context(), userID, parse.TextRequest{
		Text:     req.Text,
		Timezone: req.Timezone,
		Currency: req.Currency,
		Locale:   req.Locale,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// VoiceExpense extracts and records an expense from a voice transcript
// @Summary     Parse expense from voice transcript
// @Description Extract an expense from a voice transcript and record it. Extraction never fails; missing fields are defaulted.
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body VoiceExpenseRequest true "Voice transcript"
// @Success     200 {object} map[string]interface{} "Extraction result"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Router      /ai/voice-expense [post]
func (h *AIHandler) VoiceExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req VoiceExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.extractionService.ProcessVoiceExpense(c.Request.Context(), userID, req.VoiceText)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
