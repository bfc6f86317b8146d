package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// budgetService handles budget CRUD and the monthly aggregation engine.
// Spend figures are never stored on the budget row; they are recomputed
// from expenses on every read so the numbers cannot drift.
type budgetService struct {
	db      *gorm.DB
	targets TargetServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, targets TargetServicer) BudgetServicer {
	return &budgetService{db: db, targets: targets}
}

// CreateBudget creates a per-category spending limit for one month. At most
// one budget may exist per (user, category, month).
func (s *budgetService) CreateBudget(userID, categoryID uint, limitAmount float64, month string) (*BudgetStatus, error) {
	if _, err := parseMonth(month); err != nil {
		return nil, err
	}
	if limitAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit amount must not be negative")
	}

	var count int64
	s.db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count)
	if count == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}

	s.db.Model(&models.Budget{}).
		Where("user_id = ? AND category_id = ? AND month = ?", userID, categoryID, month).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		UserID:      userID,
		CategoryID:  categoryID,
		LimitAmount: limitAmount,
		Month:       month,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetBudgetByID(userID, budget.ID)
}

// UpdateBudget changes the category, limit, or month of an existing budget,
// re-checking uniqueness when the key fields move.
func (s *budgetService) UpdateBudget(userID, budgetID, categoryID uint, limitAmount float64, month string) (*BudgetStatus, error) {
	if _, err := parseMonth(month); err != nil {
		return nil, err
	}
	if limitAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit amount must not be negative")
	}

	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	s.db.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count)
	if count == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}

	if categoryID != budget.CategoryID || month != budget.Month {
		s.db.Model(&models.Budget{}).
			Where("user_id = ? AND category_id = ? AND month = ? AND id <> ?", userID, categoryID, month, budget.ID).
			Count(&count)
		if count > 0 {
			return nil, apperrors.ErrDuplicateBudget
		}
	}

	budget.CategoryID = categoryID
	budget.LimitAmount = limitAmount
	budget.Month = month
	if err := s.db.Save(&budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetBudgetByID(userID, budget.ID)
}

// GetBudgetByID returns the derived status of one budget.
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*BudgetStatus, error) {
	var budget models.Budget
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", budgetID, userID).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	status, err := s.deriveStatus(&budget)
	if err != nil {
		return nil, err
	}
	return status, nil
}

// GetUserBudgets returns the derived status of each of the user's budgets,
// optionally restricted to one month.
func (s *budgetService) GetUserBudgets(userID uint, month *string) ([]BudgetStatus, error) {
	query := s.db.Preload("Category").Where("user_id = ?", userID)
	if month != nil {
		if _, err := parseMonth(*month); err != nil {
			return nil, err
		}
		query = query.Where("month = ?", *month)
	}

	var budgets []models.Budget
	if err := query.Order("month DESC, category_id ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for i := range budgets {
		status, err := s.deriveStatus(&budgets[i])
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, *status)
	}
	return statuses, nil
}

// DeleteBudget soft-deletes one of the user's budgets.
func (s *budgetService) DeleteBudget(userID, budgetID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", budgetID, userID).Delete(&models.Budget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// GetBudgetSummary aggregates every budget of the month into category-level
// statuses plus overall totals, and folds in the active monthly target when
// one exists.
func (s *budgetService) GetBudgetSummary(userID uint, month string) (*BudgetSummary, error) {
	statuses, err := s.GetUserBudgets(userID, &month)
	if err != nil {
		return nil, err
	}

	summary := &BudgetSummary{
		Month:           month,
		Budgets:         statuses,
		TotalCategories: len(statuses),
	}

	for _, st := range statuses {
		summary.TotalBudget += st.LimitAmount
		summary.TotalSpent += st.SpentAmount
		switch st.Status {
		case StatusOverBudget:
			summary.CategoriesOverBudget++
		case StatusUnderBudget:
			summary.CategoriesUnderBudget++
		}
	}
	summary.TotalRemaining = summary.TotalBudget - summary.TotalSpent
	summary.OverallPercentageUsed = percentageUsed(summary.TotalSpent, summary.TotalBudget)
	summary.OverallStatus = budgetStatusFor(summary.OverallPercentageUsed)

	target, err := s.targets.GetActiveTarget(userID, month)
	if err != nil {
		if !errors.Is(err, apperrors.ErrTargetNotFound) {
			return nil, err
		}
	} else {
		summary.TargetBudget = &target.TargetAmount
		pct := percentageUsed(summary.TotalSpent, target.TargetAmount)
		summary.TargetVsActualPercentage = &pct
	}

	return summary, nil
}

// deriveStatus computes the spend-vs-limit view of one budget from the
// expenses recorded in its month and category.
func (s *budgetService) deriveStatus(budget *models.Budget) (*BudgetStatus, error) {
	start, end, err := monthRange(budget.Month)
	if err != nil {
		return nil, err
	}

	var spent float64
	if err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND category_id = ? AND date >= ? AND date < ?",
			budget.UserID, budget.CategoryID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&spent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	pct := percentageUsed(spent, budget.LimitAmount)
	return &BudgetStatus{
		ID:              budget.ID,
		CategoryID:      budget.CategoryID,
		CategoryName:    budget.Category.Name,
		Month:           budget.Month,
		LimitAmount:     budget.LimitAmount,
		SpentAmount:     spent,
		RemainingAmount: budget.LimitAmount - spent,
		PercentageUsed:  pct,
		Status:          budgetStatusFor(pct),
	}, nil
}

// percentageUsed returns spent as a percentage of limit. A zero limit always
// reads as 0% rather than dividing by zero.
func percentageUsed(spent, limit float64) float64 {
	if limit == 0 {
		return 0
	}
	return spent / limit * 100
}

// budgetStatusFor maps a percentage to its status band.
func budgetStatusFor(pct float64) string {
	switch {
	case pct >= 100:
		return StatusOverBudget
	case pct >= 80:
		return StatusOnTrack
	default:
		return StatusUnderBudget
	}
}
