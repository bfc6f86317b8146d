package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
	"spendwise/internal/services"
)

type mockExpenseService struct {
	createExpenseFn   func(userID uint, input services.ExpenseInput) (*models.Expense, error)
	getUserExpensesFn func(userID uint, page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	getExpenseByIDFn  func(userID, expenseID uint) (*models.Expense, error)
	updateExpenseFn   func(userID, expenseID uint, input services.ExpenseInput) (*models.Expense, error)
	deleteExpenseFn   func(userID, expenseID uint) error
}

func (m *mockExpenseService) CreateExpense(userID uint, input services.ExpenseInput) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(userID, input)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) GetUserExpenses(userID uint, page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	if m.getUserExpensesFn != nil {
		return m.getUserExpensesFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse[models.Expense](nil, 1, 20, 0)
	return &resp, nil
}

func (m *mockExpenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(userID, expenseID)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) UpdateExpense(userID, expenseID uint, input services.ExpenseInput) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(userID, expenseID, input)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) DeleteExpense(userID, expenseID uint) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(userID, expenseID)
	}
	return nil
}

func setupExpenseRouter(handler *ExpenseHandler) *gin.Engine {
	r := gin.New()
	expenses := r.Group("/expenses", injectUserID(1))
	expenses.POST("", handler.CreateExpense)
	expenses.GET("", handler.GetExpenses)
	expenses.GET("/:id", handler.GetExpense)
	expenses.PUT("/:id", handler.UpdateExpense)
	expenses.DELETE("/:id", handler.DeleteExpense)
	return r
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotInput services.ExpenseInput
		expenseSvc := &mockExpenseService{
			createExpenseFn: func(_ uint, input services.ExpenseInput) (*models.Expense, error) {
				gotInput = input
				return &models.Expense{
					Base:       models.Base{ID: 1},
					Name:       input.Name,
					Amount:     input.Amount,
					CategoryID: input.CategoryID,
					Date:       input.Date,
					Source:     models.SourceManual,
				}, nil
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"name":"Lunch","category_id":3,"amount":450,"date":"2025-08-14","payment_method":"upi"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotInput.Name != "Lunch" || gotInput.Amount != 450 || gotInput.CategoryID != 3 {
			t.Errorf("unexpected input %+v", gotInput)
		}
		if !gotInput.Date.Equal(time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected date %v", gotInput.Date)
		}
		result := parseJSON(t, rec)
		expense := result["expense"].(map[string]interface{})
		if expense["source"] != string(models.SourceManual) {
			t.Errorf("expected source manual, got %v", expense["source"])
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"name":"Lunch","category_id":3,"amount":450,"date":"14-08-2025"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on non-positive amount", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"name":"Lunch","category_id":3,"amount":0,"date":"2025-08-14"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown source", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"name":"Lunch","category_id":3,"amount":450,"date":"2025-08-14","source":"telepathy"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown category", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			createExpenseFn: func(_ uint, _ services.ExpenseInput) (*models.Expense, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"name":"Lunch","category_id":999,"amount":450,"date":"2025-08-14"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_GetExpenses(t *testing.T) {
	t.Run("returns 200 with page metadata", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			getUserExpensesFn: func(_ uint, page pagination.PageRequest, _ services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
				resp := pagination.NewPageResponse([]models.Expense{
					{Base: models.Base{ID: 2}, Amount: 200},
					{Base: models.Base{ID: 1}, Amount: 100},
				}, page.Page, page.PageSize, 5)
				return &resp, nil
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?page=1&page_size=2", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_items"] != float64(5) {
			t.Errorf("expected total_items 5, got %v", result["total_items"])
		}
		data := result["data"].([]interface{})
		if len(data) != 2 {
			t.Errorf("expected 2 items, got %d", len(data))
		}
	})

	t.Run("passes filters through", func(t *testing.T) {
		var gotFilter services.ExpenseFilter
		expenseSvc := &mockExpenseService{
			getUserExpensesFn: func(_ uint, _ pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse[models.Expense](nil, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?month=2025-08&category_id=3&source=voice", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter.Month == nil || *gotFilter.Month != "2025-08" {
			t.Errorf("expected month filter, got %v", gotFilter.Month)
		}
		if gotFilter.CategoryID == nil || *gotFilter.CategoryID != 3 {
			t.Errorf("expected category filter, got %v", gotFilter.CategoryID)
		}
		if gotFilter.Source == nil || *gotFilter.Source != models.SourceVoice {
			t.Errorf("expected source filter, got %v", gotFilter.Source)
		}
	})

	t.Run("returns 400 on invalid source filter", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?source=carrier-pigeon", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on oversized page_size", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?page_size=1000", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_GetExpense(t *testing.T) {
	t.Run("returns 200 with expense", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			getExpenseByIDFn: func(_, expenseID uint) (*models.Expense, error) {
				return &models.Expense{Base: models.Base{ID: expenseID}, Name: "Lunch", Amount: 450}, nil
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses/7", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		expense := result["expense"].(map[string]interface{})
		if expense["name"] != "Lunch" {
			t.Errorf("expected Lunch, got %v", expense["name"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			getExpenseByIDFn: func(_, _ uint) (*models.Expense, error) {
				return nil, apperrors.ErrExpenseNotFound
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "EXPENSE_NOT_FOUND")
	})
}

func TestExpenseHandler_UpdateExpense(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			updateExpenseFn: func(_, expenseID uint, input services.ExpenseInput) (*models.Expense, error) {
				return &models.Expense{Base: models.Base{ID: expenseID}, Name: input.Name, Amount: input.Amount}, nil
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "PUT", "/expenses/7",
			`{"name":"Dinner","category_id":3,"amount":600,"date":"2025-08-14"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		expense := result["expense"].(map[string]interface{})
		if expense["name"] != "Dinner" {
			t.Errorf("expected Dinner, got %v", expense["name"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			updateExpenseFn: func(_, _ uint, _ services.ExpenseInput) (*models.Expense, error) {
				return nil, apperrors.ErrExpenseNotFound
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "PUT", "/expenses/999",
			`{"name":"Dinner","category_id":3,"amount":600,"date":"2025-08-14"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_DeleteExpense(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		var deletedID uint
		expenseSvc := &mockExpenseService{
			deleteExpenseFn: func(_, expenseID uint) error {
				deletedID = expenseID
				return nil
			},
		}
		handler := NewExpenseHandler(expenseSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/expenses/7", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if deletedID != 7 {
			t.Errorf("expected delete of expense 7, got %d", deletedID)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		expenseSvc := &mockExpenseService{
			deleteExpenseFn: func(_, _ uint) error { return apperrors.ErrExpenseNotFound },
		}
		handler := NewExpenseHandler(expenseSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/expenses/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
