package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/domain/entity"
	"github.com/kiplagat/billify-api/internal/domain/enum"
	domainRepo "github.com/kiplagat/billify-api/internal/domain/repository"
	"github.com/kiplagat/billify-api/pkg/pagination"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).WithContext(ctx).Scopes(CompanyScope(ctx)).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).WithContext(ctx).
		Scopes(CompanyScope(ctx)).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_lines.created_at ASC, invoice_lines.id ASC")
		}).
		Preload("Customer").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).WithContext(ctx).Scopes(CompanyScope(ctx)).First(&invoice, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return conn(ctx, r.db).WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.applyFilters(ctx, params.Search, params.Status, params.CustomerID, params.StartDate, params.EndDate)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := params.SortBy
	switch sortBy {
	case "issue_date", "due_date", "total", "invoice_no", "status", "created_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Find(&invoices).Error

	return invoices, total, err
}

// ListWithCursor returns invoices using cursor-based pagination.
// Fetches limit+1 items to detect if there are more results.
func (r *invoiceRepository) ListWithCursor(ctx context.Context, params *domainRepo.InvoiceCursorFilterParams) ([]entity.Invoice, error) {
	var invoices []entity.Invoice

	params.Cursor.Validate()
	query := r.applyFilters(ctx, params.Search, params.Status, params.CustomerID, params.StartDate, params.EndDate)

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Customer").
		Order("created_at ASC, id ASC").
		Find(&invoices).Error

	return invoices, err
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	return conn(ctx, r.db).WithContext(ctx).Model(&entity.Invoice{}).
		Scopes(CompanyScope(ctx)).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *invoiceRepository) applyFilters(ctx context.Context, search string, status *enum.InvoiceStatus, customerID *uuid.UUID, startDate, endDate *time.Time) *gorm.DB {
	query := conn(ctx, r.db).WithContext(ctx).Model(&entity.Invoice{}).Scopes(CompanyScope(ctx))

	if search != "" {
		query = query.Where("invoice_no ILIKE ?", "%"+search+"%")
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	if startDate != nil {
		query = query.Where("issue_date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("issue_date <= ?", *endDate)
	}

	return query
}
