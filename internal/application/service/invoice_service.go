package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/domain/entity"
	"github.com/kiplagat/billify-api/internal/domain/enum"
	"github.com/kiplagat/billify-api/internal/domain/repository"
	infraRepo "github.com/kiplagat/billify-api/internal/infrastructure/repository"
	"github.com/kiplagat/billify-api/pkg/apperror"
	"github.com/kiplagat/billify-api/pkg/email"
	"github.com/kiplagat/billify-api/pkg/pagination"
	"github.com/kiplagat/billify-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// InvoiceService handles invoice lifecycle operations. Totals are always
// recomputed from the lines inside the same transaction as the mutation
// that changed them.
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	lineRepo     repository.InvoiceLineRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	txManager    repository.TxManager
	emailService *email.EmailService
}

// NewInvoiceService creates a new invoice service. emailService may be nil
// when outbound mail is not configured.
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	lineRepo repository.InvoiceLineRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	txManager repository.TxManager,
	emailService *email.EmailService,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		lineRepo:     lineRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		txManager:    txManager,
		emailService: emailService,
	}
}

// InvoiceLineInput represents one line in a create or add-line request.
// When ItemID is set, description and unit price default to snapshots of
// the catalog item.
type InvoiceLineInput struct {
	ItemID      *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	CustomerID uuid.UUID
	InvoiceNo  string
	IssueDate  time.Time
	DueDate    *time.Time
	Currency   string
	TaxRate    decimal.Decimal
	Notes      *string
	Lines      []InvoiceLineInput
}

// UpdateInvoiceInput represents the update invoice input. Nil fields are
// left unchanged. Status changes go through SetStatus, never through here.
type UpdateInvoiceInput struct {
	CustomerID *uuid.UUID
	InvoiceNo  *string
	IssueDate  *time.Time
	DueDate    *time.Time
	Currency   *string
	TaxRate    *decimal.Decimal
	Notes      *string
}

// CreateInvoice creates a new invoice with its lines and computed totals
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.TaxRate.IsNegative() {
		return nil, apperror.NewUnprocessableError("Tax rate must not be negative")
	}

	invoiceNo := input.InvoiceNo
	if invoiceNo == "" {
		invoiceNo = utils.GenerateInvoiceNo("")
	}
	existing, err := s.invoiceRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Invoice number already in use")
	}

	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	lines := make([]entity.InvoiceLine, 0, len(input.Lines))
	for _, lineInput := range input.Lines {
		line, err := s.buildLine(ctx, lineInput)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	invoice := &entity.Invoice{
		CustomerID: input.CustomerID,
		InvoiceNo:  invoiceNo,
		Status:     enum.InvoiceStatusDraft,
		IssueDate:  issueDate,
		DueDate:    input.DueDate,
		Currency:   currency,
		TaxRate:    input.TaxRate,
		Notes:      input.Notes,
	}
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	invoice.CompanyID = companyID

	ApplyTotals(invoice, lines)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}
		for i := range lines {
			lines[i].InvoiceID = invoice.ID
		}
		return s.lineRepo.CreateBatch(ctx, lines)
	})
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithLines(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice with its lines
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering and page-based pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ListInvoicesWithCursor lists invoices with cursor-based pagination
func (s *InvoiceService) ListInvoicesWithCursor(ctx context.Context, params *repository.InvoiceCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Invoice], error) {
	invoices, err := s.invoiceRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(invoices, params.Cursor.Limit,
		func(i entity.Invoice) string { return i.ID.String() },
		func(i entity.Invoice) time.Time { return i.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateInvoice updates header fields of an editable invoice. Changing the
// tax rate recomputes the totals.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if !invoice.Editable() {
		return nil, apperror.NewInvoiceLockedError(invoice.Status.String())
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		invoice.CustomerID = *input.CustomerID
	}
	if input.InvoiceNo != nil && *input.InvoiceNo != invoice.InvoiceNo {
		existing, err := s.invoiceRepo.GetByInvoiceNo(ctx, *input.InvoiceNo)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Invoice number already in use")
		}
		invoice.InvoiceNo = *input.InvoiceNo
	}
	if input.IssueDate != nil {
		invoice.IssueDate = *input.IssueDate
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}
	if input.Currency != nil {
		invoice.Currency = *input.Currency
	}
	if input.Notes != nil {
		invoice.Notes = input.Notes
	}
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() {
			return nil, apperror.NewUnprocessableError("Tax rate must not be negative")
		}
		invoice.TaxRate = *input.TaxRate
	}

	ApplyTotals(invoice, invoice.Lines)

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return s.invoiceRepo.GetWithLines(ctx, id)
}

// AddLine appends a line to an editable invoice and recomputes its totals
func (s *InvoiceService) AddLine(ctx context.Context, invoiceID uuid.UUID, input *InvoiceLineInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if !invoice.Editable() {
		return nil, apperror.NewInvoiceLockedError(invoice.Status.String())
	}

	line, err := s.buildLine(ctx, *input)
	if err != nil {
		return nil, err
	}
	line.InvoiceID = invoice.ID

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.lineRepo.Create(ctx, line); err != nil {
			return err
		}
		lines, err := s.lineRepo.GetByInvoiceID(ctx, invoice.ID)
		if err != nil {
			return err
		}
		ApplyTotals(invoice, lines)
		return s.invoiceRepo.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithLines(ctx, invoiceID)
}

// DeleteLine removes a line from an editable invoice and recomputes totals
func (s *InvoiceService) DeleteLine(ctx context.Context, invoiceID, lineID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if !invoice.Editable() {
		return nil, apperror.NewInvoiceLockedError(invoice.Status.String())
	}

	line, err := s.lineRepo.GetByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil || line.InvoiceID != invoice.ID {
		return nil, apperror.NewNotFoundError("Invoice line")
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.lineRepo.Delete(ctx, line.ID); err != nil {
			return err
		}
		lines, err := s.lineRepo.GetByInvoiceID(ctx, invoice.ID)
		if err != nil {
			return err
		}
		ApplyTotals(invoice, lines)
		return s.invoiceRepo.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithLines(ctx, invoiceID)
}

// DeleteInvoice removes an editable invoice and all of its lines
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	if !invoice.Editable() {
		return apperror.NewInvoiceLockedError(invoice.Status.String())
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.lineRepo.DeleteByInvoiceID(ctx, invoice.ID); err != nil {
			return err
		}
		return s.invoiceRepo.Delete(ctx, invoice.ID)
	})
}

// SetStatus moves an invoice through its status machine. Requesting the
// current status is a no-op that leaves the invoice untouched.
func (s *InvoiceService) SetStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) (*entity.Invoice, error) {
	if !status.IsValid() {
		return nil, apperror.NewUnprocessableError("Unknown invoice status: " + status.String())
	}

	invoice, err := s.invoiceRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if invoice.Status == status {
		return invoice, nil
	}

	if !invoice.Status.CanTransitionTo(status) {
		return nil, apperror.NewInvalidTransitionError(invoice.Status.String(), status.String())
	}

	// Recompute before the transition commits so the status change
	// observes the latest line figures, even when leaving draft.
	ApplyTotals(invoice, invoice.Lines)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return err
		}
		return s.invoiceRepo.UpdateStatus(ctx, id, status)
	})
	if err != nil {
		return nil, err
	}
	invoice.Status = status

	if status == enum.InvoiceStatusSent {
		s.notifyCustomer(ctx, invoice)
	}

	return invoice, nil
}

// notifyCustomer emails the customer when an invoice goes out. Failures are
// logged, never surfaced; the status change already committed.
func (s *InvoiceService) notifyCustomer(ctx context.Context, invoice *entity.Invoice) {
	if s.emailService == nil {
		return
	}

	customer := invoice.Customer
	if customer == nil {
		var err error
		customer, err = s.customerRepo.GetByID(ctx, invoice.CustomerID)
		if err != nil || customer == nil {
			return
		}
	}
	if customer.Email == nil || *customer.Email == "" {
		return
	}

	to := *customer.Email
	invoiceNo := invoice.InvoiceNo
	total := invoice.Total.StringFixed(2)
	currency := invoice.Currency
	go func() {
		if err := s.emailService.SendInvoiceSentEmail(to, invoiceNo, total, currency); err != nil {
			log.Printf("Warning: failed to send invoice email for %s: %v", invoiceNo, err)
		}
	}()
}

// buildLine validates a line input and resolves catalog snapshots
func (s *InvoiceService) buildLine(ctx context.Context, input InvoiceLineInput) (*entity.InvoiceLine, error) {
	line := &entity.InvoiceLine{
		ItemID:      input.ItemID,
		Description: input.Description,
		Quantity:    input.Quantity,
	}

	if input.ItemID != nil {
		item, err := s.itemRepo.GetByID(ctx, *input.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, apperror.NewNotFoundError("Item")
		}
		// The active flag only hides items from listings; an existing
		// item can still be referenced on a line.
		if line.Description == "" {
			line.Description = item.Name
		}
		if input.UnitPrice == nil {
			line.UnitPrice = item.UnitPrice
		}
	}
	if input.UnitPrice != nil {
		line.UnitPrice = *input.UnitPrice
	} else if input.ItemID == nil {
		return nil, apperror.NewUnprocessableError("Unit price is required when no item is referenced")
	}

	if !line.Quantity.IsPositive() {
		return nil, apperror.NewUnprocessableError("Quantity must be greater than zero")
	}
	if line.UnitPrice.IsNegative() {
		return nil, apperror.NewUnprocessableError("Unit price must not be negative")
	}

	line.LineTotal = ComputeLineTotal(line.Quantity, line.UnitPrice)
	return line, nil
}
