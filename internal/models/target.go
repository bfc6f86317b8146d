package models

// MonthlyBudgetTarget is a user's overall spending target for one month,
// independent of per-category budgets. At most one target per (user, month)
// may be active; superseded targets are kept with is_active = false.
type MonthlyBudgetTarget struct {
	Base
	UserID       uint    `gorm:"not null;index" json:"user_id"`
	TargetAmount float64 `gorm:"not null" json:"target_amount"`
	Month        string  `gorm:"size:7;not null" json:"month"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
}
