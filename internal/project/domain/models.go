package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Project struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	CompanyID   snowflake.ID  `gorm:"not null;index" json:"company_id"`
	ClientID    *snowflake.ID `gorm:"index" json:"client_id,omitempty"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

// BelongsTo reports whether the project is offered for the given client.
// A zero clientID matches every project.
func (p Project) BelongsTo(clientID snowflake.ID) bool {
	if clientID == 0 {
		return true
	}
	return p.ClientID != nil && *p.ClientID == clientID
}
