package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GoalRequest represents the create/update goal payload.
type GoalRequest struct {
	Name         string   `json:"name" binding:"required,max=255"`
	Description  string   `json:"description" binding:"max=1000"`
	TargetAmount float64  `json:"target_amount" binding:"required,gt=0"`
	SavedAmount  *float64 `json:"saved_amount" binding:"omitempty,gte=0"`
	Deadline     *string  `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

func (r *GoalRequest) toInput() (services.GoalInput, error) {
	input := services.GoalInput{
		Name:         r.Name,
		Description:  r.Description,
		TargetAmount: r.TargetAmount,
		SavedAmount:  r.SavedAmount,
	}
	if r.Deadline != nil {
		deadline, err := time.Parse("2006-01-02", *r.Deadline)
		if err != nil {
			return services.GoalInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid deadline format. Expected format: YYYY-MM-DD")
		}
		input.Deadline = &deadline
	}
	return input, nil
}

// CreateGoal creates a savings goal
// @Summary     Create goal
// @Description Create a savings goal for the authenticated user
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GoalRequest true "Goal data"
// @Success     201 {object} map[string]interface{} "Created goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.CreateGoal(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals lists the user's goals
// @Summary     List goals
// @Description Get all of the user's savings goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Goals"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.GetUserGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetGoal returns one goal
// @Summary     Get goal
// @Description Get a single goal by ID
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} map[string]interface{} "Goal"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
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

	goal, err := h.goalService.GetGoalByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal updates a goal
// @Summary     Update goal
// @Description Update an existing goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       request body GoalRequest true "Goal data"
// @Success     200 {object} map[string]interface{} "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
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

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.UpdateGoal(userID, id, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal deletes a goal
// @Summary     Delete goal
// @Description Delete a goal by ID
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
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

	if err := h.goalService.DeleteGoal(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
