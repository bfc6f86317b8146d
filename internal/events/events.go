// Package events publishes expense lifecycle events to RabbitMQ so
// downstream consumers (exports, notifications) can react without coupling
// to the API process.
package events

import (
	"encoding/json"
	"time"
)

// Event types carried by ExpenseEvent.
const (
	ExpenseCreated = "expense.created"
	ExpenseUpdated = "expense.updated"
	ExpenseDeleted = "expense.deleted"
)

// ExpenseEvent is the lightweight message published on expense changes.
// Consumers fetch the full record from the database; the payload carries
// only what is needed for routing and dedup.
type ExpenseEvent struct {
	Type       string    `json:"type"`
	ExpenseID  uint      `json:"expense_id"`
	UserID     uint      `json:"user_id"`
	CategoryID uint      `json:"category_id"`
	Amount     float64   `json:"amount"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewExpenseEvent creates an event stamped with the current time.
func NewExpenseEvent(eventType string, expenseID, userID, categoryID uint, amount float64, source string) *ExpenseEvent {
	return &ExpenseEvent{
		Type:       eventType,
		ExpenseID:  expenseID,
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Source:     source,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON creates an event from JSON bytes.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var event ExpenseEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
