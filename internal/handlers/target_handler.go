package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// TargetHandler handles monthly budget target requests.
type TargetHandler struct {
	targetService services.TargetServicer
}

// NewTargetHandler creates a new TargetHandler
func NewTargetHandler(targetService services.TargetServicer) *TargetHandler {
	return &TargetHandler{targetService: targetService}
}

// TargetRequest represents the create/update target payload.
type TargetRequest struct {
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0"`
	Month        string  `json:"month" binding:"required,month"`
}

// targetQuery represents query parameters for fetching a target.
type targetQuery struct {
	Month string `form:"month" binding:"required,month"`
}

// SetTarget creates or replaces the month's target
// @Summary     Set monthly target
// @Description Set the overall spending target for a month, superseding any previous one
// @Tags        targets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TargetRequest true "Target data"
// @Success     200 {object} map[string]interface{} "Active target"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /budgets/target [post]
func (h *TargetHandler) SetTarget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	target, err := h.targetService.CreateOrUpdateTarget(userID, req.TargetAmount, req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"target": target})
}

// GetTarget returns the month's active target
// @Summary     Get monthly target
// @Description Get the active overall spending target for a month
// @Tags        targets
// @Produce     json
// @Security    BearerAuth
// @Param       month query string true "Month (YYYY-MM)"
// @Success     200 {object} map[string]interface{} "Active target"
// @Failure     404 {object} ErrorResponse "No target for this month"
// @Router      /budgets/target [get]
func (h *TargetHandler) GetTarget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query targetQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.ErrInvalidMonth)
		return
	}

	target, err := h.targetService.GetTarget(userID, query.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"target": target})
}

// DeleteTarget deletes a target
// @Summary     Delete target
// @Description Delete a monthly target by ID
// @Tags        targets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Target ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Target not found"
// @Router      /budgets/target/{id} [delete]
func (h *TargetHandler) DeleteTarget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.targetService.DeleteTarget(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
