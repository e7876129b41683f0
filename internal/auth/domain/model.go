// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is an operator account. Every user belongs to exactly one company.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID    snowflake.ID `gorm:"not null;index" json:"company_id"`
	Email        string       `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	DisplayName  string       `gorm:"type:varchar(255)" json:"display_name"`
	PasswordHash string       `gorm:"type:text;not null" json:"-"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Session is a persisted login. Only the sha256 of the token is stored.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"not null;index"`
	CompanyID        snowflake.ID `gorm:"not null;index"`
	SessionTokenHash string       `gorm:"type:varchar(64);not null;uniqueIndex"`
	UserAgent        string       `gorm:"type:text"`
	IPAddress        string       `gorm:"type:varchar(64)"`
	ExpiresAt        time.Time    `gorm:"not null;index"`
	RevokedAt        *time.Time
	CreatedAt        time.Time `gorm:"not null"`
	LastSeenAt       time.Time `gorm:"not null"`
}

func (Session) TableName() string { return "sessions" }
