package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Name        string     `json:"name"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Expenses []Expense             `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Budgets  []Budget              `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	Targets  []MonthlyBudgetTarget `gorm:"foreignKey:UserID" json:"targets,omitempty"`
	Goals    []Goal                `gorm:"foreignKey:UserID" json:"goals,omitempty"`
}
