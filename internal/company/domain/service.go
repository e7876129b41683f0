package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Ensure returns the company with the slug of name, creating it when absent.
	Ensure(ctx context.Context, name string) (*Company, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Company, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("company_not_found")
)
