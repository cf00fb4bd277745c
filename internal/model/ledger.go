package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod enum constants
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCheck        = "check"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodOther        = "other"
)

// RecurringPeriod enum constants
const (
	RecurringDaily   = "daily"
	RecurringWeekly  = "weekly"
	RecurringMonthly = "monthly"
	RecurringYearly  = "yearly"
)

// Income is money received outside of invoicing
type Income struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Amount          decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	Description     string          `gorm:"type:varchar(255);not null" json:"description"`
	TransactionDate time.Time       `gorm:"type:date;not null;index" json:"transaction_date"`
	ReferenceNumber string          `gorm:"type:varchar(50)" json:"reference_number"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CategoryID      uint64          `gorm:"not null;index" json:"category_id"`
	Category        *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Expense is money spent. BudgetLimit, when set, caps the owner's monthly spending.
type Expense struct {
	ID              uint64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Amount          decimal.Decimal  `gorm:"type:numeric(15,2);not null" json:"amount"`
	Description     string           `gorm:"type:varchar(255);not null" json:"description"`
	TransactionDate time.Time        `gorm:"type:date;not null;index" json:"transaction_date"`
	ReferenceNumber string           `gorm:"type:varchar(50)" json:"reference_number"`
	PaymentMethod   string           `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	Vendor          string           `gorm:"type:varchar(100)" json:"vendor"`
	Notes           string           `gorm:"type:text" json:"notes"`
	IsRecurring     bool             `gorm:"not null;default:false" json:"is_recurring"`
	RecurringPeriod string           `gorm:"type:varchar(10);not null;default:''" json:"recurring_period"`
	BudgetLimit     *decimal.Decimal `gorm:"type:numeric(15,2)" json:"budget_limit"`
	CategoryID      uint64           `gorm:"not null;index" json:"category_id"`
	Category        *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// CategoryTotal is one row of a per-category ledger summary
type CategoryTotal struct {
	CategoryID   uint64          `gorm:"column:category_id"`
	CategoryName string          `gorm:"column:category_name"`
	Count        int64           `gorm:"column:count"`
	Total        decimal.Decimal `gorm:"column:total"`
}
