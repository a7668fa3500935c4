package request

import "github.com/shopspring/decimal"

// CreateItemRequest represents a catalog item creation request
type CreateItemRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=255"`
	Description *string          `json:"description"`
	UnitPrice   decimal.Decimal  `json:"unit_price" binding:"required"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
	Active      *bool            `json:"active"`
}

// UpdateItemRequest represents a catalog item update request
type UpdateItemRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
	Active      *bool            `json:"active"`
}

// ItemFilterRequest represents item filter parameters
type ItemFilterRequest struct {
	Search          string `form:"search"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page"`
	PerPage         int    `form:"per_page"`
}
