package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/domain/entity"
	"github.com/kiplagat/billify-api/internal/domain/repository"
	infraRepo "github.com/kiplagat/billify-api/internal/infrastructure/repository"
	"github.com/kiplagat/billify-api/pkg/apperror"
	"github.com/kiplagat/billify-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ItemService handles catalog item operations
type ItemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// CreateItemInput represents the create item input
type CreateItemInput struct {
	Name        string
	Description *string
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Active      *bool
}

// CreateItem creates a new catalog item for the active company
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	if input.UnitPrice.IsNegative() {
		return nil, apperror.NewUnprocessableError("Unit price must not be negative")
	}
	if input.TaxRate.IsNegative() {
		return nil, apperror.NewUnprocessableError("Tax rate must not be negative")
	}

	item := &entity.Item{
		CompanyID:   companyID,
		Name:        input.Name,
		Description: input.Description,
		UnitPrice:   input.UnitPrice,
		TaxRate:     input.TaxRate,
		Active:      true,
	}
	if input.Active != nil {
		item.Active = *input.Active
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves a catalog item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// UpdateItemInput represents the update item input. Nil fields are left
// unchanged. Price changes never touch already-created invoice lines.
type UpdateItemInput struct {
	Name        *string
	Description *string
	UnitPrice   *decimal.Decimal
	TaxRate     *decimal.Decimal
	Active      *bool
}

// UpdateItem updates an existing catalog item
func (s *ItemService) UpdateItem(ctx context.Context, id uuid.UUID, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.Name != nil && *input.Name != "" {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, apperror.NewUnprocessableError("Unit price must not be negative")
		}
		item.UnitPrice = *input.UnitPrice
	}
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() {
			return nil, apperror.NewUnprocessableError("Tax rate must not be negative")
		}
		item.TaxRate = *input.TaxRate
	}
	if input.Active != nil {
		item.Active = *input.Active
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeactivateItem marks an item inactive, hiding it from default listings.
// Existing invoice lines keep their snapshots.
func (s *ItemService) DeactivateItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	inactive := false
	return s.UpdateItem(ctx, id, &UpdateItemInput{Active: &inactive})
}

// ListItems lists catalog items with page-based pagination
func (s *ItemService) ListItems(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) (*pagination.PaginatedResult[entity.Item], error) {
	items, total, err := s.itemRepo.List(ctx, params, search, includeInactive)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}
