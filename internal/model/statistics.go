package model

import (
	"github.com/shopspring/decimal"
)

// InvoiceStatusTotal aggregates invoice amounts for one status over a date range
type InvoiceStatusTotal struct {
	Status     string          `gorm:"column:status"`
	Count      int64           `gorm:"column:count"`
	Subtotal   decimal.Decimal `gorm:"column:subtotal"`
	VATAmount  decimal.Decimal `gorm:"column:vat_amount"`
	WHTAmount  decimal.Decimal `gorm:"column:wht_amount"`
	GrandTotal decimal.Decimal `gorm:"column:grand_total"`
	PaidAmount decimal.Decimal `gorm:"column:paid_amount"`
}

// CustomerRanking represents a customer ranked by invoiced value
type CustomerRanking struct {
	CustomerID   uint64          `gorm:"column:customer_id"`
	CustomerName string          `gorm:"column:customer_name"`
	InvoiceCount int64           `gorm:"column:invoice_count"`
	GrandTotal   decimal.Decimal `gorm:"column:grand_total"`
}
