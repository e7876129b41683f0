package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
)

type ListClientRequest struct {
	PageToken string
	PageSize  int
	Name      string
}

type ListClientFilter struct {
	Name string
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

type CreateClientRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	List(ctx context.Context, req ListClientRequest) (ListClientResponse, error)
	// ListAll returns every client of the company, used for name lookups.
	ListAll(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id string) (Client, error)
}

var (
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
