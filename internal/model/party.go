package model

import (
	"time"
)

// PartyType enum constants
const (
	PartyTypeCustomer = "customer"
	PartyTypeVendor   = "vendor"
	PartyTypeBoth     = "both"
)

// Party is a customer, vendor, or both
type Party struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PartyType     string    `gorm:"column:party_type;type:varchar(20);not null;index" json:"party_type"`
	Code          string    `gorm:"type:varchar(20);index" json:"code"`
	Name          string    `gorm:"type:varchar(200);not null" json:"name"`
	TaxID         string    `gorm:"column:tax_id;type:varchar(20);index" json:"tax_id"`
	Address       string    `gorm:"type:text" json:"address"`
	Phone         string    `gorm:"type:varchar(20)" json:"phone"`
	Email         string    `gorm:"type:varchar(100)" json:"email"`
	ContactPerson string    `gorm:"type:varchar(100)" json:"contact_person"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	Note          string    `gorm:"type:text" json:"note"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
