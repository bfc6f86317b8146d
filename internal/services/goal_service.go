package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// goalService handles savings goals.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a savings goal for the user.
func (s *goalService) CreateGoal(userID uint, input GoalInput) (*models.Goal, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if input.TargetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
	}

	goal := &models.Goal{
		UserID:       userID,
		Name:         input.Name,
		Description:  input.Description,
		TargetAmount: input.TargetAmount,
		Deadline:     input.Deadline,
	}
	if input.SavedAmount != nil {
		goal.SavedAmount = *input.SavedAmount
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals returns all of the user's goals, newest first.
func (s *goalService) GetUserGoals(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("id DESC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// GetGoalByID retrieves one of the user's goals.
func (s *goalService) GetGoalByID(userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal replaces the mutable fields of one of the user's goals.
func (s *goalService) UpdateGoal(userID, goalID uint, input GoalInput) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if input.TargetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
	}

	goal.Name = input.Name
	goal.Description = input.Description
	goal.TargetAmount = input.TargetAmount
	goal.Deadline = input.Deadline
	if input.SavedAmount != nil {
		goal.SavedAmount = *input.SavedAmount
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// DeleteGoal soft-deletes one of the user's goals.
func (s *goalService) DeleteGoal(userID, goalID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.Goal{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}
