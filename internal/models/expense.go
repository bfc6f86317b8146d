package models

import "time"

// ExpenseSource identifies how an expense entered the system.
type ExpenseSource string

const (
	SourceManual     ExpenseSource = "manual"
	SourceAI         ExpenseSource = "AI"
	SourceAIFallback ExpenseSource = "AI_FALLBACK"
	SourceVoice      ExpenseSource = "voice"
)

// Expense represents a single spend record.
type Expense struct {
	Base
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	CategoryID    uint          `gorm:"not null;index" json:"category_id"`
	Name          string        `gorm:"not null" json:"name"`
	Description   string        `json:"description"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Date          time.Time     `gorm:"not null" json:"date"`
	Source        ExpenseSource `gorm:"not null;default:manual" json:"source"`
	PaymentMethod string        `json:"payment_method"`
	Tags          string        `json:"tags"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
