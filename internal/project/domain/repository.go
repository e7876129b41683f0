package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, companyID, id snowflake.ID) (*Project, error)
	// List returns the projects of the company; a non-zero clientID narrows it to one client.
	List(ctx context.Context, companyID, clientID snowflake.ID) ([]*Project, error)
}
