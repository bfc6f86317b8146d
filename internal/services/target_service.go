package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// targetService handles monthly overall spending targets. Only one target
// per (user, month) is active at a time; setting a new one deactivates the
// previous rather than deleting it.
type targetService struct {
	db *gorm.DB
}

// NewTargetService creates a new TargetServicer.
func NewTargetService(db *gorm.DB) TargetServicer {
	return &targetService{db: db}
}

// CreateOrUpdateTarget sets the user's overall target for a month,
// deactivating any previously active target for the same month.
func (s *targetService) CreateOrUpdateTarget(userID uint, targetAmount float64, month string) (*models.MonthlyBudgetTarget, error) {
	if _, err := parseMonth(month); err != nil {
		return nil, err
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
	}

	target := &models.MonthlyBudgetTarget{
		UserID:       userID,
		TargetAmount: targetAmount,
		Month:        month,
		IsActive:     true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MonthlyBudgetTarget{}).
			Where("user_id = ? AND month = ? AND is_active = ?", userID, month, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(target).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return target, nil
}

// GetTarget returns the active target for a month, or ErrTargetNotFound.
func (s *targetService) GetTarget(userID uint, month string) (*models.MonthlyBudgetTarget, error) {
	if _, err := parseMonth(month); err != nil {
		return nil, err
	}
	return s.GetActiveTarget(userID, month)
}

// GetActiveTarget returns the active target for a month without validating
// the month string; callers on internal paths already hold a valid month.
func (s *targetService) GetActiveTarget(userID uint, month string) (*models.MonthlyBudgetTarget, error) {
	var target models.MonthlyBudgetTarget
	if err := s.db.Where("user_id = ? AND month = ? AND is_active = ?", userID, month, true).
		Order("id DESC").
		First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTargetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &target, nil
}

// DeleteTarget soft-deletes one of the user's targets.
func (s *targetService) DeleteTarget(userID, targetID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", targetID, userID).Delete(&models.MonthlyBudgetTarget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTargetNotFound
	}
	return nil
}
