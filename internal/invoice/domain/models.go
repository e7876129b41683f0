package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Invoice is the persisted invoice record.
type Invoice struct {
	ID            snowflake.ID                  `gorm:"primaryKey" json:"id"`
	CompanyID     snowflake.ID                  `gorm:"not null;index" json:"company_id"`
	InvoiceNumber string                        `gorm:"type:varchar(64);not null" json:"invoice_number"`
	ClientID      snowflake.ID                  `gorm:"not null;index" json:"client_id"`
	ProjectID     *snowflake.ID                 `gorm:"index" json:"project_id,omitempty"`
	IssueDate     string                        `gorm:"type:varchar(10);not null" json:"issue_date"`
	DueDate       string                        `gorm:"type:varchar(10);not null" json:"due_date"`
	Currency      Currency                      `gorm:"type:varchar(8);not null" json:"currency"`
	Notes         string                        `gorm:"type:text" json:"notes,omitempty"`
	LineItems     datatypes.JSONSlice[LineItem] `gorm:"not null" json:"line_items"`
	Subtotal      decimal.Decimal               `gorm:"type:decimal(24,6);not null" json:"subtotal"`
	Tax           decimal.Decimal               `gorm:"type:decimal(24,6);not null" json:"tax"`
	Total         decimal.Decimal               `gorm:"type:decimal(24,6);not null" json:"total"`
	Status        Status                        `gorm:"type:varchar(16);not null;index" json:"status"`
	CreatedAt     time.Time                     `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time                     `gorm:"not null" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

func (i Invoice) Totals() Totals {
	return Totals{Subtotal: i.Subtotal, Tax: i.Tax, Total: i.Total}
}
