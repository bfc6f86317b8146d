package models

import "time"

// Goal represents a savings goal the user is working towards.
type Goal struct {
	Base
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	Name         string     `gorm:"not null" json:"name"`
	Description  string     `json:"description"`
	TargetAmount float64    `gorm:"not null" json:"target_amount"`
	SavedAmount  float64    `gorm:"default:0" json:"saved_amount"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}
