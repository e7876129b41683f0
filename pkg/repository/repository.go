package repository

import (
	"context"

	"github.com/smallbiznis/bizdesk/pkg/db/option"
)

// Repository is a generic collection store over one gorm model.
// The zero-valued fields of a query struct are ignored by Find, FindOne and Count.
type Repository[T any] interface {
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	// FindOne returns nil, nil when nothing matches.
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Create(ctx context.Context, resource *T) error
	// Update writes the given fields onto the record with resourceID and reports whether it existed.
	Update(ctx context.Context, resourceID any, fields any) (bool, error)
	Count(ctx context.Context, query *T) (int64, error)
	BatchCreate(ctx context.Context, resources []*T) error
}
