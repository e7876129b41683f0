package domain

import (
	"context"
	"errors"
)

type CreateProjectRequest struct {
	Name        string
	ClientID    string
	Description string
}

type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (Project, error)
	// List returns all projects when clientID is empty, otherwise only that client's.
	List(ctx context.Context, clientID string) ([]Project, error)
	GetByID(ctx context.Context, id string) (Project, error)
}

var (
	ErrInvalidCompany  = errors.New("invalid_company")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidClientID = errors.New("invalid_client_id")
	ErrNotFound        = errors.New("not_found")
)
