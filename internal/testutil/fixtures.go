package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/parse"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// SeedCategories inserts the canonical category set in order, mirroring the
// production migration. Idempotent so it is safe with a shared test database.
func SeedCategories(t *testing.T, db *gorm.DB) []models.Category {
	t.Helper()

	categories := make([]models.Category, 0, len(parse.CategoryNames))
	for _, name := range parse.CategoryNames {
		var category models.Category
		if err := db.Where(models.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
			t.Fatalf("failed to seed category %q: %v", name, err)
		}
		categories = append(categories, category)
	}
	return categories
}

// CategoryByName returns the seeded category with the given name.
func CategoryByName(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	var category models.Category
	if err := db.Where("name = ?", name).First(&category).Error; err != nil {
		t.Fatalf("failed to find category %q: %v", name, err)
	}
	return &category
}

// CreateTestExpense creates an expense with the given amount and date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, categoryID uint, amount float64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:     userID,
		CategoryID: categoryID,
		Name:       fmt.Sprintf("Test Expense %d", nextID()),
		Amount:     amount,
		Date:       date,
		Source:     models.SourceManual,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestBudget creates a budget with the given limit for one month.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, categoryID uint, limitAmount float64, month string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:      userID,
		CategoryID:  categoryID,
		LimitAmount: limitAmount,
		Month:       month,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestTarget creates an active monthly budget target.
func CreateTestTarget(t *testing.T, db *gorm.DB, userID uint, targetAmount float64, month string) *models.MonthlyBudgetTarget {
	t.Helper()

	target := &models.MonthlyBudgetTarget{
		UserID:       userID,
		TargetAmount: targetAmount,
		Month:        month,
		IsActive:     true,
	}
	if err := db.Create(target).Error; err != nil {
		t.Fatalf("failed to create test target: %v", err)
	}
	return target
}

// CreateTestGoal creates a savings goal.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, targetAmount float64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: targetAmount,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
