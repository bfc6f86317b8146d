package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

type mockGoalService struct {
	createGoalFn   func(userID uint, input services.GoalInput) (*models.Goal, error)
	getUserGoalsFn func(userID uint) ([]models.Goal, error)
	getGoalByIDFn  func(userID, goalID uint) (*models.Goal, error)
	updateGoalFn   func(userID, goalID uint, input services.GoalInput) (*models.Goal, error)
	deleteGoalFn   func(userID, goalID uint) error
}

func (m *mockGoalService) CreateGoal(userID uint, input services.GoalInput) (*models.Goal, error) {
	if m.createGoalFn != nil {
		return m.createGoalFn(userID, input)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) GetUserGoals(userID uint) ([]models.Goal, error) {
	if m.getUserGoalsFn != nil {
		return m.getUserGoalsFn(userID)
	}
	return nil, nil
}

func (m *mockGoalService) GetGoalByID(userID, goalID uint) (*models.Goal, error) {
	if m.getGoalByIDFn != nil {
		return m.getGoalByIDFn(userID, goalID)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) UpdateGoal(userID, goalID uint, input services.GoalInput) (*models.Goal, error) {
	if m.updateGoalFn != nil {
		return m.updateGoalFn(userID, goalID, input)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) DeleteGoal(userID, goalID uint) error {
	if m.deleteGoalFn != nil {
		return m.deleteGoalFn(userID, goalID)
	}
	return nil
}

func setupGoalRouter(handler *GoalHandler) *gin.Engine {
	r := gin.New()
	goals := r.Group("/goals", injectUserID(1))
	goals.POST("", handler.CreateGoal)
	goals.GET("", handler.GetGoals)
	goals.GET("/:id", handler.GetGoal)
	goals.PUT("/:id", handler.UpdateGoal)
	goals.DELETE("/:id", handler.DeleteGoal)
	return r
}

func TestGoalHandler_CreateGoal(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotInput services.GoalInput
		goalSvc := &mockGoalService{
			createGoalFn: func(_ uint, input services.GoalInput) (*models.Goal, error) {
				gotInput = input
				return &models.Goal{Base: models.Base{ID: 1}, Name: input.Name, TargetAmount: input.TargetAmount}, nil
			},
		}
		handler := NewGoalHandler(goalSvc)
		r := setupGoalRouter(handler)

		rec := doRequest(r, "POST", "/goals",
			`{"name":"Emergency fund","target_amount":100000,"saved_amount":1000,"deadline":"2026-01-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotInput.SavedAmount == nil || *gotInput.SavedAmount != 1000 {
			t.Errorf("expected saved amount 1000, got %v", gotInput.SavedAmount)
		}
		if gotInput.Deadline == nil {
			t.Error("expected deadline parsed")
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewGoalHandler(&mockGoalService{})
		r := setupGoalRouter(handler)

		rec := doRequest(r, "POST", "/goals", `{"target_amount":100000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed deadline", func(t *testing.T) {
		handler := NewGoalHandler(&mockGoalService{})
		r := setupGoalRouter(handler)

		rec := doRequest(r, "POST", "/goals",
			`{"name":"x","target_amount":100,"deadline":"January 2026"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGoalHandler_GetGoals(t *testing.T) {
	t.Run("returns 200 with all goals", func(t *testing.T) {
		goalSvc := &mockGoalService{
			getUserGoalsFn: func(_ uint) ([]models.Goal, error) {
				return []models.Goal{
					{Base: models.Base{ID: 2}, Name: "Vacation"},
					{Base: models.Base{ID: 1}, Name: "Emergency fund"},
				}, nil
			},
		}
		handler := NewGoalHandler(goalSvc)
		r := setupGoalRouter(handler)

		rec := doRequest(r, "GET", "/goals", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		goals := result["goals"].([]interface{})
		if len(goals) != 2 {
			t.Errorf("expected 2 goals, got %d", len(goals))
		}
	})
}

func TestGoalHandler_GetGoal(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		goalSvc := &mockGoalService{
			getGoalByIDFn: func(_, _ uint) (*models.Goal, error) {
				return nil, apperrors.ErrGoalNotFound
			},
		}
		handler := NewGoalHandler(goalSvc)
		r := setupGoalRouter(handler)

		rec := doRequest(r, "GET", "/goals/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "GOAL_NOT_FOUND")
	})
}

func TestGoalHandler_UpdateGoal(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		goalSvc := &mockGoalService{
			updateGoalFn: func(_, goalID uint, input services.GoalInput) (*models.Goal, error) {
				return &models.Goal{Base: models.Base{ID: goalID}, Name: input.Name, TargetAmount: input.TargetAmount}, nil
			},
		}
		handler := NewGoalHandler(goalSvc)
		r := setupGoalRouter(handler)

		rec := doRequest(r, "PUT", "/goals/1", `{"name":"Vacation","target_amount":50000}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		goal := result["goal"].(map[string]interface{})
		if goal["name"] != "Vacation" {
			t.Errorf("expected Vacation, got %v", goal["name"])
		}
	})
}

func TestGoalHandler_DeleteGoal(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		handler := NewGoalHandler(&mockGoalService{})
		r := setupGoalRouter(handler)

		rec := doRequest(r, "DELETE", "/goals/1", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		goalSvc := &mockGoalService{
			deleteGoalFn: func(_, _ uint) error { return apperrors.ErrGoalNotFound },
		}
		handler := NewGoalHandler(goalSvc)
		r := setupGoalRouter(handler)

		rec := doRequest(r, "DELETE", "/goals/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
