package models

// Budget represents a per-category spending limit for one calendar month.
// Month is stored as "YYYY-MM"; at most one budget may exist per
// (user, category, month).
type Budget struct {
	Base
	UserID      uint    `gorm:"not null;index;uniqueIndex:idx_budget_user_category_month" json:"user_id"`
	CategoryID  uint    `gorm:"not null;uniqueIndex:idx_budget_user_category_month" json:"category_id"`
	LimitAmount float64 `gorm:"not null" json:"limit_amount"`
	Month       string  `gorm:"size:7;not null;uniqueIndex:idx_budget_user_category_month" json:"month"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
