package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocType enum constants
const (
	DocTypeInvoice    = "invoice"
	DocTypeReceipt    = "receipt"
	DocTypeCreditNote = "credit_note"
)

// InvoiceStatus enum constants
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusIssued    = "issued"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// PaymentStatus enum constants
const (
	PaymentUnpaid  = "unpaid"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// Line kinds. Withholding tax only ever applies to services.
const (
	LineKindService = "service"
	LineKindProduct = "product"
)

// Invoice is a tax invoice header. Customer fields are a snapshot taken when
// the invoice is saved, not a live reference.
type Invoice struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	DocNo           string          `gorm:"column:doc_no;type:varchar(50);uniqueIndex;not null" json:"doc_no"`
	DocType         string          `gorm:"column:doc_type;type:varchar(20);not null;default:'invoice'" json:"doc_type"`
	DocDate         time.Time       `gorm:"column:doc_date;type:date;not null" json:"doc_date"`
	DueDate         *time.Time      `gorm:"column:due_date;type:date" json:"due_date"`
	CustomerID      uint64          `gorm:"column:customer_id;not null;index" json:"customer_id"`
	CustomerName    string          `gorm:"column:customer_name;type:varchar(200);not null" json:"customer_name"`
	CustomerTaxID   string          `gorm:"column:customer_tax_id;type:varchar(20)" json:"customer_tax_id"`
	CustomerAddress string          `gorm:"column:customer_address;type:text" json:"customer_address"`
	CustomerPhone   string          `gorm:"column:customer_phone;type:varchar(20)" json:"customer_phone"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(15,2);not null;default:0" json:"subtotal"`
	VATRate         decimal.Decimal `gorm:"column:vat_rate;type:numeric(5,2);not null;default:0" json:"vat_rate"`
	VATAmount       decimal.Decimal `gorm:"column:vat_amount;type:numeric(15,2);not null;default:0" json:"vat_amount"`
	WHTRate         decimal.Decimal `gorm:"column:wht_rate;type:numeric(5,2);not null;default:0" json:"wht_rate"`
	WHTAmount       decimal.Decimal `gorm:"column:wht_amount;type:numeric(15,2);not null;default:0" json:"wht_amount"`
	GrandTotal      decimal.Decimal `gorm:"column:grand_total;type:numeric(15,2);not null;default:0" json:"grand_total"` // subtotal + vat_amount
	PaidAmount      decimal.Decimal `gorm:"column:paid_amount;type:numeric(15,2);not null;default:0" json:"paid_amount"`
	Status          string          `gorm:"column:status;type:varchar(20);not null;default:'draft';index" json:"status"`
	PaymentStatus   string          `gorm:"column:payment_status;type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	Note            string          `gorm:"column:note;type:text" json:"note"`
	IssuedBy        uuid.UUID       `gorm:"column:issued_by;type:uuid;not null;index" json:"issued_by"`
	Issuer          *User           `gorm:"foreignKey:IssuedBy" json:"issuer,omitempty"`
	IssuedAt        *time.Time      `gorm:"column:issued_at" json:"issued_at"`
	CancelledAt     *time.Time      `gorm:"column:cancelled_at" json:"cancelled_at"`
	Items           []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NetPayable is what the customer actually transfers: the grand total less
// the tax they withhold on our behalf.
func (i Invoice) NetPayable() decimal.Decimal {
	return i.GrandTotal.Sub(i.WHTAmount)
}

// InvoiceItem is one line of an invoice. ItemNo follows the order of the
// submitted lines and is reassigned on every save.
type InvoiceItem struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceID   uint64          `gorm:"column:invoice_id;not null;index" json:"invoice_id"`
	ItemNo      int             `gorm:"column:item_no;not null" json:"item_no"`
	Description string          `gorm:"column:description;type:text;not null" json:"description"`
	Kind        string          `gorm:"column:kind;type:varchar(20);not null;default:'product'" json:"kind"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric(10,2);not null;default:1" json:"quantity"`
	Unit        string          `gorm:"column:unit;type:varchar(20)" json:"unit"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(15,2);not null;default:0" json:"unit_price"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(15,2);not null;default:0" json:"amount"`
	VATRate     decimal.Decimal `gorm:"column:vat_rate;type:numeric(5,2);not null;default:0" json:"vat_rate"`
	VATAmount   decimal.Decimal `gorm:"column:vat_amount;type:numeric(15,2);not null;default:0" json:"vat_amount"`
	WHTRate     decimal.Decimal `gorm:"column:wht_rate;type:numeric(5,2);not null;default:0" json:"wht_rate"`
	WHTAmount   decimal.Decimal `gorm:"column:wht_amount;type:numeric(15,2);not null;default:0" json:"wht_amount"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(15,2);not null;default:0" json:"total_amount"` // amount + vat - wht
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InvoiceSequence is the per-period document number counter.
type InvoiceSequence struct {
	Prefix    string    `gorm:"primaryKey;type:varchar(10)" json:"prefix"`
	Period    string    `gorm:"primaryKey;type:char(6)" json:"period"` // YYYYMM
	LastValue int64     `gorm:"not null;default:0" json:"last_value"`
	UpdatedAt time.Time `json:"updated_at"`
}
