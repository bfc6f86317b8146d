package services

import (
	"context"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/pagination"
	"spendwise/internal/parse"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CategoryServicer defines the contract for the fixed category set.
type CategoryServicer interface {
	GetCategories() ([]models.Category, error)
	GetCategoryByID(id uint) (*models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
}

// ExpenseInput holds the fields for creating or updating an expense.
type ExpenseInput struct {
	Name          string
	Description   string
	CategoryID    uint
	Amount        float64
	Date          time.Time
	Source        models.ExpenseSource
	PaymentMethod string
	Tags          string
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Month      *string // "YYYY-MM"
	CategoryID *uint
	Source     *models.ExpenseSource
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, input ExpenseInput) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, input ExpenseInput) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
}

// Budget status values derived from the percentage of the limit spent.
const (
	StatusUnderBudget = "UNDER_BUDGET" // < 80%
	StatusOnTrack     = "ON_TRACK"     // 80% – 99.999%
	StatusOverBudget  = "OVER_BUDGET"  // >= 100%
)

// BudgetStatus is the derived spend-vs-limit view of one budget. It is
// recomputed on every read and never stored.
type BudgetStatus struct {
	ID              uint    `json:"id"`
	CategoryID      uint    `json:"category_id"`
	CategoryName    string  `json:"category_name"`
	Month           string  `json:"month"`
	LimitAmount     float64 `json:"limit_amount"`
	SpentAmount     float64 `json:"spent_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
	PercentageUsed  float64 `json:"percentage_used"`
	Status          string  `json:"status"`
}

// BudgetSummary aggregates all budget statuses for a user and month, plus
// the active monthly target when one exists.
type BudgetSummary struct {
	Month                    string         `json:"month"`
	TotalBudget              float64        `json:"total_budget"`
	TotalSpent               float64        `json:"total_spent"`
	TotalRemaining           float64        `json:"total_remaining"`
	OverallPercentageUsed    float64        `json:"overall_percentage_used"`
	OverallStatus            string         `json:"overall_status"`
	Budgets                  []BudgetStatus `json:"budgets"`
	TotalCategories          int            `json:"total_categories"`
	CategoriesUnderBudget    int            `json:"categories_under_budget"`
	CategoriesOverBudget     int            `json:"categories_over_budget"`
	TargetBudget             *float64       `json:"target_budget,omitempty"`
	TargetVsActualPercentage *float64       `json:"target_vs_actual_percentage,omitempty"`
}

// BudgetServicer defines the contract for budget-related business logic,
// including the monthly aggregation engine.
type BudgetServicer interface {
	CreateBudget(userID, categoryID uint, limitAmount float64, month string) (*BudgetStatus, error)
	UpdateBudget(userID, budgetID, categoryID uint, limitAmount float64, month string) (*BudgetStatus, error)
	GetBudgetByID(userID, budgetID uint) (*BudgetStatus, error)
	GetUserBudgets(userID uint, month *string) ([]BudgetStatus, error)
	DeleteBudget(userID, budgetID uint) error
	GetBudgetSummary(userID uint, month string) (*BudgetSummary, error)
}

// TargetServicer defines the contract for monthly budget targets.
type TargetServicer interface {
	CreateOrUpdateTarget(userID uint, targetAmount float64, month string) (*models.MonthlyBudgetTarget, error)
	GetTarget(userID uint, month string) (*models.MonthlyBudgetTarget, error)
	GetActiveTarget(userID uint, month string) (*models.MonthlyBudgetTarget, error)
	DeleteTarget(userID, targetID uint) error
}

// GoalInput holds the fields for creating or updating a savings goal.
type GoalInput struct {
	Name         string
	Description  string
	TargetAmount float64
	SavedAmount  *float64
	Deadline     *time.Time
}

// GoalServicer defines the contract for savings goals.
type GoalServicer interface {
	CreateGoal(userID uint, input GoalInput) (*models.Goal, error)
	GetUserGoals(userID uint) ([]models.Goal, error)
	GetGoalByID(userID, goalID uint) (*models.Goal, error)
	UpdateGoal(userID, goalID uint, input GoalInput) (*models.Goal, error)
	DeleteGoal(userID, goalID uint) error
}

// ExtractionResult is returned to clients after a successful text
// extraction, whether it came from the AI path or the regex fallback.
type ExtractionResult struct {
	ExpenseID   uint      `json:"expense_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Merchant    string    `json:"merchant,omitempty"`
	Confidence  float64   `json:"confidence"`
	Source      string    `json:"source"`
}

// VoiceExtractionResult is returned to clients after a voice extraction.
// Voice extraction itself never fails; Success is false only when the
// resulting expense could not be persisted.
type VoiceExtractionResult struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Expense    *models.Expense `json:"expense,omitempty"`
	ParsedText string          `json:"parsed_text"`
	Confidence string          `json:"confidence"`
}

// ExtractionServicer orchestrates the extraction pipelines: AI call,
// mandatory degradation to the regex fallback on the text path, defaulted
// drafts on the voice path, and persistence of the resulting expense.
type ExtractionServicer interface {
	ParseExpense(ctx context.Context, userID uint, req parse.TextRequest) (*ExtractionResult, error)
	ProcessVoiceExpense(ctx context.Context, userID uint, voiceText string) (*VoiceExtractionResult, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]any)
}
