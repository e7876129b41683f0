package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodCard         Method = "card"
	MethodOther        Method = "other"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCard, MethodOther:
		return true
	}
	return false
}

// Payment is a collected amount. Recording one never changes invoice status.
type Payment struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	CompanyID snowflake.ID    `gorm:"not null;index" json:"company_id"`
	InvoiceID *snowflake.ID   `gorm:"index" json:"invoice_id,omitempty"`
	Amount    decimal.Decimal `gorm:"type:decimal(24,6);not null" json:"amount"`
	Currency  string          `gorm:"type:varchar(8);not null" json:"currency"`
	Method    Method          `gorm:"type:varchar(32);not null" json:"method"`
	Reference string          `gorm:"type:varchar(128)" json:"reference,omitempty"`
	PaidAt    time.Time       `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
