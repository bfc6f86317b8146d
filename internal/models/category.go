package models

// Category represents one of the fixed, globally seeded expense categories.
// The set is closed: rows are inserted by migration in canonical order and
// never created through the API. "Others" always exists and is the default
// for anything the extractors cannot classify.
type Category struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
	Budgets  []Budget  `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}
