package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
	"spendwise/internal/services"
)

// ExpenseHandler handles expense CRUD requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// ExpenseRequest represents the create/update expense payload.
type ExpenseRequest struct {
	Name          string  `json:"name" binding:"required,max=255"`
	Description   string  `json:"description" binding:"max=1000"`
	CategoryID    uint    `json:"category_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Date          string  `json:"date" binding:"required,datetime=2006-01-02"`
	Source        string  `json:"source" binding:"omitempty,expense_source"`
	PaymentMethod string  `json:"payment_method" binding:"max=50"`
	Tags          string  `json:"tags" binding:"max=255"`
}

// expenseListQuery represents query parameters for listing expenses.
type expenseListQuery struct {
	pagination.PageRequest
	Month      *string `form:"month" binding:"omitempty,month"`
	CategoryID *uint   `form:"category_id"`
	Source     *string `form:"source" binding:"omitempty,expense_source"`
}

func (r *ExpenseRequest) toInput() (services.ExpenseInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return services.ExpenseInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date format. Expected format: YYYY-MM-DD")
	}
	return services.ExpenseInput{
		Name:          r.Name,
		Description:   r.Description,
		CategoryID:    r.CategoryID,
		Amount:        r.Amount,
		Date:          date,
		Source:        models.ExpenseSource(r.Source),
		PaymentMethod: r.PaymentMethod,
		Tags:          r.Tags,
	}, nil
}

// CreateExpense records a new expense
// @Summary     Create expense
// @Description Record a new expense for the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense data"
// @Success     201 {object} map[string]interface{} "Created expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create", "expense", expense.ID, c.ClientIP(), map[string]any{
		"amount":      expense.Amount,
		"category_id": expense.CategoryID,
	})

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenses lists the user's expenses
// @Summary     List expenses
// @Description Get a paginated list of the user's expenses, newest first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       month query string false "Filter by month (YYYY-MM)"
// @Param       category_id query int false "Filter by category"
// @Param       source query string false "Filter by source"
// @Success     200 {object} map[string]interface{} "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid query parameters"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query expenseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.ExpenseFilter{
		Month:      query.Month,
		CategoryID: query.CategoryID,
	}
	if query.Source != nil {
		source := models.ExpenseSource(*query.Source)
		filter.Source = &source
	}

	page, err := h.expenseService.GetUserExpenses(userID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetExpense returns one expense
// @Summary     Get expense
// @Description Get a single expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} map[string]interface{} "Expense"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
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

	expense, err := h.expenseService.GetExpenseByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense updates an expense
// @Summary     Update expense
// @Description Update an existing expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Param       request body ExpenseRequest true "Expense data"
// @Success     200 {object} map[string]interface{} "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
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

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, id, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "update", "expense", expense.ID, c.ClientIP(), map[string]any{
		"amount":      expense.Amount,
		"category_id": expense.CategoryID,
	})

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense deletes an expense
// @Summary     Delete expense
// @Description Delete an expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
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

	if err := h.expenseService.DeleteExpense(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "delete", "expense", id, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
