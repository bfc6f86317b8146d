package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// BudgetHandler handles budget CRUD and summary requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// BudgetRequest represents the create/update budget payload.
type BudgetRequest struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	LimitAmount float64 `json:"limit_amount" binding:"required,gt=0"`
	Month       string  `json:"month" binding:"required,month"`
}

// budgetListQuery represents query parameters for listing budgets.
type budgetListQuery struct {
	Month *string `form:"month" binding:"omitempty,month"`
}

// summaryQuery represents query parameters for the budget summary.
type summaryQuery struct {
	Month string `form:"month" binding:"required,month"`
}

// CreateBudget creates a budget
// @Summary     Create budget
// @Description Create a per-category spending limit for one month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BudgetRequest true "Budget data"
// @Success     201 {object} map[string]interface{} "Created budget with derived status"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Budget already exists for this category and month"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(userID, req.CategoryID, req.LimitAmount, req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "budget", budget.ID, c.ClientIP(), map[string]any{
		"category_id":  budget.CategoryID,
		"limit_amount": budget.LimitAmount,
		"month":        budget.Month,
	})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets lists the user's budgets
// @Summary     List budgets
// @Description Get the derived status of each budget, optionally for one month
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Filter by month (YYYY-MM)"
// @Success     200 {object} map[string]interface{} "Budget statuses"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query budgetListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budgets, err := h.budgetService.GetUserBudgets(userID, query.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// GetBudget returns one budget
// @Summary     Get budget
// @Description Get the derived status of a single budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} map[string]interface{} "Budget status"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
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

	budget, err := h.budgetService.GetBudgetByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget updates a budget
// @Summary     Update budget
// @Description Update an existing budget's category, limit, or month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Param       request body BudgetRequest true "Budget data"
// @Success     200 {object} map[string]interface{} "Updated budget with derived status"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Budget already exists for this category and month"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
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

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(userID, id, req.CategoryID, req.LimitAmount, req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "update", "budget", budget.ID, c.ClientIP(), map[string]any{
		"category_id":  budget.CategoryID,
		"limit_amount": budget.LimitAmount,
		"month":        budget.Month,
	})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget deletes a budget
// @Summary     Delete budget
// @Description Delete a budget by ID
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
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

	if err := h.budgetService.DeleteBudget(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "budget", id, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// GetBudgetSummary returns the monthly aggregation
// @Summary     Budget summary
// @Description Aggregate all budgets for a month into per-category and overall figures
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       month query string true "Month (YYYY-MM)"
// @Success     200 {object} map[string]interface{} "Budget summary"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Router      /budgets/summary [get]
func (h *BudgetHandler) GetBudgetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query summaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.ErrInvalidMonth)
		return
	}

	summary, err := h.budgetService.GetBudgetSummary(userID, query.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
