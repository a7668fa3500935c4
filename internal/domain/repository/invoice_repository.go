package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/domain/entity"
	"github.com/kiplagat/billify-api/internal/domain/enum"
	"github.com/kiplagat/billify-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations.
// Lookups are scoped to the company carried in the context.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetWithLines retrieves an invoice with its lines preloaded
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	ListWithCursor(ctx context.Context, params *InvoiceCursorFilterParams) ([]entity.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// InvoiceCursorFilterParams contains cursor-based filtering for invoice queries
type InvoiceCursorFilterParams struct {
	Cursor     *pagination.CursorParams
	Search     string
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// InvoiceLineRepository defines the interface for invoice line data operations
type InvoiceLineRepository interface {
	Create(ctx context.Context, line *entity.InvoiceLine) error
	CreateBatch(ctx context.Context, lines []entity.InvoiceLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InvoiceLine, error)
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceLine, error)
	Update(ctx context.Context, line *entity.InvoiceLine) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error
}
