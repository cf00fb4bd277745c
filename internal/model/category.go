package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType enum constants
const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
)

const (
	DefaultCategoryColor = "#6B7280"
	DefaultCategoryIcon  = "folder"
)

// Category groups income or expense entries. Deleting one only deactivates it.
type Category struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Type        string     `gorm:"type:varchar(10);not null;index" json:"type"`
	Description string     `gorm:"type:text" json:"description"`
	Color       string     `gorm:"type:varchar(7);not null;default:'#6B7280'" json:"color"`
	Icon        string     `gorm:"type:varchar(50);not null;default:'folder'" json:"icon"`
	IsDefault   bool       `gorm:"not null;default:false" json:"is_default"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid" json:"created_by"` // nil for seeded defaults
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TransactionTable is where entries of this category live
func (c Category) TransactionTable() string {
	if c.Type == CategoryTypeIncome {
		return "incomes"
	}
	return "expenses"
}
