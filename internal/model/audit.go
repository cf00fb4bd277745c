package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateInvoice = "CREATE_INVOICE"
	ActionUpdateInvoice = "UPDATE_INVOICE"
	ActionIssueInvoice  = "ISSUE_INVOICE"
	ActionCancelInvoice = "CANCEL_INVOICE"
	ActionDeleteInvoice = "DELETE_INVOICE"
	ActionRecordPayment = "RECORD_PAYMENT"
	ActionCreateParty   = "CREATE_PARTY"
	ActionUpdateParty   = "UPDATE_PARTY"
	ActionDeleteParty   = "DELETE_PARTY"
	ActionCreateUser    = "CREATE_USER"

	ActionCreateCategory  = "CREATE_CATEGORY"
	ActionUpdateCategory  = "UPDATE_CATEGORY"
	ActionDeleteCategory  = "DELETE_CATEGORY"
	ActionRestoreCategory = "RESTORE_CATEGORY"
	ActionCreateIncome    = "CREATE_INCOME"
	ActionUpdateIncome    = "UPDATE_INCOME"
	ActionDeleteIncome    = "DELETE_INCOME"
	ActionCreateExpense   = "CREATE_EXPENSE"
	ActionUpdateExpense   = "UPDATE_EXPENSE"
	ActionDeleteExpense   = "DELETE_EXPENSE"
)

// AuditLog tracks who changed what and when
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nil for CLI/system actions
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
