package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceLineRequest represents one line in a create or add-line request.
// Either item_id or an explicit unit_price must be given; description is
// optional and defaults to the item name when an item is referenced.
type InvoiceLineRequest struct {
	ItemID      *uuid.UUID       `json:"item_id"`
	Description string           `json:"description" binding:"omitempty,max=500"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest represents an invoice creation request
type CreateInvoiceRequest struct {
	CustomerID uuid.UUID            `json:"customer_id" binding:"required"`
	InvoiceNo  string               `json:"invoice_no" binding:"omitempty,max=50"`
	IssueDate  *time.Time           `json:"issue_date"`
	DueDate    *time.Time           `json:"due_date"`
	Currency   string               `json:"currency" binding:"omitempty,len=3"`
	TaxRate    *decimal.Decimal     `json:"tax_rate"`
	Notes      *string              `json:"notes"`
	Lines      []InvoiceLineRequest `json:"lines" binding:"dive"`
}

// UpdateInvoiceRequest represents an invoice header update request
type UpdateInvoiceRequest struct {
	CustomerID *uuid.UUID       `json:"customer_id"`
	InvoiceNo  *string          `json:"invoice_no" binding:"omitempty,max=50"`
	IssueDate  *time.Time       `json:"issue_date"`
	DueDate    *time.Time       `json:"due_date"`
	Currency   *string          `json:"currency" binding:"omitempty,len=3"`
	TaxRate    *decimal.Decimal `json:"tax_rate"`
	Notes      *string          `json:"notes"`
}

// SetInvoiceStatusRequest represents a status transition request. The
// status value is normalized by the handler, so casing is not enforced here.
type SetInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// InvoiceFilterRequest represents invoice filter parameters
type InvoiceFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	StartDate  string `form:"start_date"` // YYYY-MM-DD
	EndDate    string `form:"end_date"`   // YYYY-MM-DD
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Cursor     string `form:"cursor"`
	Limit      int    `form:"limit"` // For cursor-based pagination
}
