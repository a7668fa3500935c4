package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/domain/entity"
	domainRepo "github.com/kiplagat/billify-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceLineRepository struct {
	db *gorm.DB
}

// NewInvoiceLineRepository creates a new invoice line repository.
// Lines are not company-scoped directly; callers must resolve the parent
// invoice through the scoped InvoiceRepository first.
func NewInvoiceLineRepository(db *gorm.DB) domainRepo.InvoiceLineRepository {
	return &invoiceLineRepository{db: db}
}

func (r *invoiceLineRepository) Create(ctx context.Context, line *entity.InvoiceLine) error {
	return conn(ctx, r.db).WithContext(ctx).Create(line).Error
}

func (r *invoiceLineRepository) CreateBatch(ctx context.Context, lines []entity.InvoiceLine) error {
	if len(lines) == 0 {
		return nil
	}
	return conn(ctx, r.db).WithContext(ctx).Create(&lines).Error
}

func (r *invoiceLineRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InvoiceLine, error) {
	var line entity.InvoiceLine
	err := conn(ctx, r.db).WithContext(ctx).First(&line, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &line, err
}

func (r *invoiceLineRepository) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceLine, error) {
	var lines []entity.InvoiceLine
	err := conn(ctx, r.db).WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC, id ASC").
		Find(&lines).Error
	return lines, err
}

func (r *invoiceLineRepository) Update(ctx context.Context, line *entity.InvoiceLine) error {
	return conn(ctx, r.db).WithContext(ctx).Save(line).Error
}

func (r *invoiceLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).WithContext(ctx).Delete(&entity.InvoiceLine{}, "id = ?", id).Error
}

func (r *invoiceLineRepository) DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error {
	return conn(ctx, r.db).WithContext(ctx).Delete(&entity.InvoiceLine{}, "invoice_id = ?", invoiceID).Error
}
