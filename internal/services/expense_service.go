package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/events"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// expenseService handles expense-related business logic. Every successful
// write publishes a lifecycle event; this is the only place that publishes,
// so AI-created and manually created expenses flow through the same stream.
type expenseService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, publisher events.Publisher) ExpenseServicer {
	return &expenseService{db: db, publisher: publisher}
}

// CreateExpense records a new expense for the user.
func (s *expenseService) CreateExpense(userID uint, input ExpenseInput) (*models.Expense, error) {
	if input.Amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	// Category must exist; the set is fixed so a miss is a client error.
	var count int64
	s.db.Model(&models.Category{}).Where("id = ?", input.CategoryID).Count(&count)
	if count == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}

	source := input.Source
	if source == "" {
		source = models.SourceManual
	}

	expense := &models.Expense{
		UserID:        userID,
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Description:   input.Description,
		Amount:        input.Amount,
		Date:          input.Date,
		Source:        source,
		PaymentMethod: input.PaymentMethod,
		Tags:          input.Tags,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Preload("Category").First(expense, expense.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publisher.PublishExpenseEvent(context.Background(), events.NewExpenseEvent(
		events.ExpenseCreated, expense.ID, userID, expense.CategoryID, expense.Amount, string(expense.Source)))
	return expense, nil
}

// GetUserExpenses returns a page of the user's expenses, newest first,
// optionally filtered by month, category, or source.
func (s *expenseService) GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	query := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)

	if filter.Month != nil {
		start, end, err := monthRange(*filter.Month)
		if err != nil {
			return nil, err
		}
		query = query.Where("date >= ? AND date < ?", start, end)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Source != nil {
		query = query.Where("source = ?", *filter.Source)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := query.Preload("Category").
		Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(expenses, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetExpenseByID retrieves one of the user's expenses.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", expenseID, userID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense replaces the mutable fields of one of the user's expenses.
func (s *expenseService) UpdateExpense(userID, expenseID uint, input ExpenseInput) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if input.Amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	if input.CategoryID != expense.CategoryID {
		var count int64
		s.db.Model(&models.Category{}).Where("id = ?", input.CategoryID).Count(&count)
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}
	}

	expense.Name = input.Name
	expense.Description = input.Description
	expense.CategoryID = input.CategoryID
	expense.Amount = input.Amount
	expense.Date = input.Date
	expense.PaymentMethod = input.PaymentMethod
	expense.Tags = input.Tags
	if input.Source != "" {
		expense.Source = input.Source
	}

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Preload("Category").First(expense, expense.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publisher.PublishExpenseEvent(context.Background(), events.NewExpenseEvent(
		events.ExpenseUpdated, expense.ID, userID, expense.CategoryID, expense.Amount, string(expense.Source)))
	return expense, nil
}

// DeleteExpense soft-deletes one of the user's expenses.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publisher.PublishExpenseEvent(context.Background(), events.NewExpenseEvent(
		events.ExpenseDeleted, expense.ID, userID, expense.CategoryID, expense.Amount, string(expense.Source)))
	return nil
}
