package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/domain/entity"
	"github.com/kiplagat/billify-api/pkg/pagination"
)

// ItemRepository defines the interface for catalog item data operations.
// Lookups are scoped to the company carried in the context.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns items with page-based pagination. Inactive items are
	// excluded unless includeInactive is set.
	List(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) ([]entity.Item, int64, error)
}
