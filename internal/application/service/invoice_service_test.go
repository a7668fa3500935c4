package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/domain/entity"
	"github.com/kiplagat/billify-api/internal/domain/enum"
	"github.com/kiplagat/billify-api/internal/domain/repository"
	infraRepo "github.com/kiplagat/billify-api/internal/infrastructure/repository"
	"github.com/kiplagat/billify-api/pkg/apperror"
	"github.com/kiplagat/billify-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ----- in-memory fakes -----

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLineRepo struct {
	lines map[uuid.UUID]entity.InvoiceLine
}

func newFakeLineRepo() *fakeLineRepo {
	return &fakeLineRepo{lines: make(map[uuid.UUID]entity.InvoiceLine)}
}

func (r *fakeLineRepo) Create(ctx context.Context, line *entity.InvoiceLine) error {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	r.lines[line.ID] = *line
	return nil
}

func (r *fakeLineRepo) CreateBatch(ctx context.Context, lines []entity.InvoiceLine) error {
	for i := range lines {
		if err := r.Create(ctx, &lines[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeLineRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.InvoiceLine, error) {
	line, ok := r.lines[id]
	if !ok {
		return nil, nil
	}
	return &line, nil
}

func (r *fakeLineRepo) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.InvoiceLine, error) {
	var out []entity.InvoiceLine
	for _, line := range r.lines {
		if line.InvoiceID == invoiceID {
			out = append(out, line)
		}
	}
	return out, nil
}

func (r *fakeLineRepo) Update(ctx context.Context, line *entity.InvoiceLine) error {
	r.lines[line.ID] = *line
	return nil
}

func (r *fakeLineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.lines, id)
	return nil
}

func (r *fakeLineRepo) DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error {
	for id, line := range r.lines {
		if line.InvoiceID == invoiceID {
			delete(r.lines, id)
		}
	}
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]entity.Invoice
	lineRepo *fakeLineRepo
}

func newFakeInvoiceRepo(lineRepo *fakeLineRepo) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]entity.Invoice), lineRepo: lineRepo}
}

// scoped mirrors the production repositories: an invoice belonging to a
// different company than the one in the context behaves as missing.
func (r *fakeInvoiceRepo) scoped(ctx context.Context, invoice entity.Invoice) *entity.Invoice {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok || invoice.CompanyID != companyID {
		return nil
	}
	return &invoice
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	invoice.CreatedAt = time.Now()
	r.invoices[invoice.ID] = *invoice
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	return r.scoped(ctx, invoice), nil
}

func (r *fakeInvoiceRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := r.GetByID(ctx, id)
	if err != nil || invoice == nil {
		return invoice, err
	}
	lines, _ := r.lineRepo.GetByInvoiceID(ctx, invoice.ID)
	invoice.Lines = lines
	return invoice, nil
}

func (r *fakeInvoiceRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error) {
	for _, invoice := range r.invoices {
		if invoice.InvoiceNo == invoiceNo {
			if scoped := r.scoped(ctx, invoice); scoped != nil {
				return scoped, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	r.invoices[invoice.ID] = *invoice
	return nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, invoice := range r.invoices {
		if scoped := r.scoped(ctx, invoice); scoped != nil {
			out = append(out, *scoped)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) ListWithCursor(ctx context.Context, params *repository.InvoiceCursorFilterParams) ([]entity.Invoice, error) {
	invoices, _, err := r.List(ctx, nil)
	return invoices, err
}

func (r *fakeInvoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	invoice, ok := r.invoices[id]
	if !ok {
		return nil
	}
	invoice.Status = status
	r.invoices[id] = invoice
	return nil
}

type fakeCustomerRepo struct {
	customers   map[uuid.UUID]entity.Customer
	hasInvoices bool
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]entity.Customer)}
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	companyID, scoped := infraRepo.GetCompanyID(ctx)
	if !scoped || customer.CompanyID != companyID {
		return nil, nil
	}
	return &customer, nil
}

func (r *fakeCustomerRepo) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	companyID, scoped := infraRepo.GetCompanyID(ctx)
	if !scoped {
		return nil, nil
	}
	for _, customer := range r.customers {
		if customer.CompanyID == companyID && customer.Email != nil && *customer.Email == email {
			c := customer
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return nil, 0, nil
}

func (r *fakeCustomerRepo) ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) HasInvoices(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.hasInvoices, nil
}

type fakeItemRepo struct {
	items map[uuid.UUID]entity.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]entity.Item)}
}

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	companyID, scoped := infraRepo.GetCompanyID(ctx)
	if !scoped || item.CompanyID != companyID {
		return nil, nil
	}
	return &item, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) List(ctx context.Context, params *pagination.PaginationParams, search string, includeInactive bool) ([]entity.Item, int64, error) {
	return nil, 0, nil
}

// ----- fixture -----

type invoiceFixture struct {
	svc          *InvoiceService
	invoiceRepo  *fakeInvoiceRepo
	lineRepo     *fakeLineRepo
	customerRepo *fakeCustomerRepo
	itemRepo     *fakeItemRepo
	companyID    uuid.UUID
	customer     *entity.Customer
	ctx          context.Context
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	lineRepo := newFakeLineRepo()
	invoiceRepo := newFakeInvoiceRepo(lineRepo)
	customerRepo := newFakeCustomerRepo()
	itemRepo := newFakeItemRepo()

	companyID := uuid.New()
	ctx := infraRepo.WithCompany(context.Background(), companyID)

	customer := &entity.Customer{CompanyID: companyID, Name: "Acme Ltd"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	return &invoiceFixture{
		svc:          NewInvoiceService(invoiceRepo, lineRepo, customerRepo, itemRepo, fakeTxManager{}, nil),
		invoiceRepo:  invoiceRepo,
		lineRepo:     lineRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		companyID:    companyID,
		customer:     customer,
		ctx:          ctx,
	}
}

func (f *invoiceFixture) createDraft(t *testing.T, lines ...InvoiceLineInput) *entity.Invoice {
	t.Helper()
	invoice, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		CustomerID: f.customer.ID,
		TaxRate:    dec("0.0800"),
		Lines:      lines,
	})
	require.NoError(t, err)
	return invoice
}

func lineInput(description, quantity, unitPrice string) InvoiceLineInput {
	price := dec(unitPrice)
	return InvoiceLineInput{
		Description: description,
		Quantity:    dec(quantity),
		UnitPrice:   &price,
	}
}

// ----- tests -----

func TestCreateInvoiceComputesTotals(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice := f.createDraft(t,
		lineInput("Consulting", "2", "10.00"),
		lineInput("Support", "1", "5.00"),
	)

	require.Equal(t, enum.InvoiceStatusDraft, invoice.Status)
	require.Equal(t, f.companyID, invoice.CompanyID)
	require.True(t, strings.HasPrefix(invoice.InvoiceNo, "INV-"), "invoice no = %s", invoice.InvoiceNo)
	require.Len(t, invoice.Lines, 2)
	require.True(t, dec("25.00").Equal(invoice.Subtotal), "subtotal = %s", invoice.Subtotal)
	require.True(t, dec("2.00").Equal(invoice.TaxAmount))
	require.True(t, dec("27.00").Equal(invoice.Total))
}

func TestCreateInvoiceUnknownCustomer(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		CustomerID: uuid.New(),
	})
	require.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCreateInvoiceDuplicateNumber(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		CustomerID: f.customer.ID,
		InvoiceNo:  "INV-2026-001",
	})
	require.NoError(t, err)

	_, err = f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		CustomerID: f.customer.ID,
		InvoiceNo:  "INV-2026-001",
	})
	require.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestCreateInvoiceSameNumberDifferentCompany(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		CustomerID: f.customer.ID,
		InvoiceNo:  "INV-2026-001",
	})
	require.NoError(t, err)

	// Invoice numbers are unique per company, not globally
	otherCompany := uuid.New()
	otherCtx := infraRepo.WithCompany(context.Background(), otherCompany)
	otherCustomer := &entity.Customer{CompanyID: otherCompany, Name: "Globex Inc"}
	require.NoError(t, f.customerRepo.Create(otherCtx, otherCustomer))

	invoice, err := f.svc.CreateInvoice(otherCtx, &CreateInvoiceInput{
		CustomerID: otherCustomer.ID,
		InvoiceNo:  "INV-2026-001",
	})
	require.NoError(t, err)
	require.Equal(t, otherCompany, invoice.CompanyID)
}

func TestCreateInvoiceNegativeTaxRate(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		CustomerID: f.customer.ID,
		TaxRate:    dec("-0.01"),
	})
	require.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCreateInvoiceSnapshotsItem(t *testing.T) {
	f := newInvoiceFixture(t)

	item := &entity.Item{
		CompanyID: f.companyID,
		Name:      "Hosting",
		UnitPrice: dec("30.00"),
		Active:    true,
	}
	require.NoError(t, f.itemRepo.Create(f.ctx, item))

	invoice := f.createDraft(t, InvoiceLineInput{
		ItemID:   &item.ID,
		Quantity: dec("2"),
	})

	require.Len(t, invoice.Lines, 1)
	line := invoice.Lines[0]
	require.Equal(t, "Hosting", line.Description)
	require.True(t, dec("30.00").Equal(line.UnitPrice))
	require.True(t, dec("60.00").Equal(line.LineTotal))

	// Later catalog edits must not change the issued line
	item.UnitPrice = dec("99.00")
	require.NoError(t, f.itemRepo.Update(f.ctx, item))

	reloaded, err := f.svc.GetInvoice(f.ctx, invoice.ID)
	require.NoError(t, err)
	require.True(t, dec("30.00").Equal(reloaded.Lines[0].UnitPrice))
}

func TestCreateInvoiceAllowsInactiveItem(t *testing.T) {
	f := newInvoiceFixture(t)

	// Deactivation hides an item from listings but existing references
	// still resolve for billing
	item := &entity.Item{CompanyID: f.companyID, Name: "Legacy", UnitPrice: dec("10.00"), Active: false}
	require.NoError(t, f.itemRepo.Create(f.ctx, item))

	invoice, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		CustomerID: f.customer.ID,
		Lines:      []InvoiceLineInput{{ItemID: &item.ID, Quantity: dec("1")}},
	})
	require.NoError(t, err)
	require.Equal(t, "Legacy", invoice.Lines[0].Description)
	require.True(t, dec("10.00").Equal(invoice.Total))
}

func TestCreateInvoiceLineValidation(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		CustomerID: f.customer.ID,
		Lines:      []InvoiceLineInput{lineInput("Zero quantity", "0", "10.00")},
	})
	require.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		CustomerID: f.customer.ID,
		Lines:      []InvoiceLineInput{lineInput("Negative price", "1", "-5.00")},
	})
	require.True(t, apperror.IsKind(err, apperror.KindValidation))

	// Without an item to snapshot from, a unit price is mandatory
	_, err = f.svc.CreateInvoice(f.ctx, &CreateInvoiceInput{
		CustomerID: f.customer.ID,
		Lines:      []InvoiceLineInput{{Description: "No price", Quantity: dec("1")}},
	})
	require.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestAddLineWithoutDescription(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t)

	// Description is optional; a bare quantity and unit price is a valid line
	updated, err := f.svc.AddLine(f.ctx, invoice.ID, &InvoiceLineInput{
		Quantity:  dec("2"),
		UnitPrice: decPtr("10.00"),
	})
	require.NoError(t, err)
	require.Len(t, updated.Lines, 1)
	require.Empty(t, updated.Lines[0].Description)
	require.True(t, dec("20.00").Equal(updated.Subtotal))
}

func TestGetInvoiceOtherCompanyNotFound(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "1", "10.00"))

	otherCtx := infraRepo.WithCompany(context.Background(), uuid.New())
	_, err := f.svc.GetInvoice(otherCtx, invoice.ID)
	require.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestAddLineRecomputesTotals(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "2", "10.00"))

	updated, err := f.svc.AddLine(f.ctx, invoice.ID, &InvoiceLineInput{
		Description: "Support",
		Quantity:    dec("1"),
		UnitPrice:   decPtr("5.00"),
	})
	require.NoError(t, err)
	require.Len(t, updated.Lines, 2)
	require.True(t, dec("25.00").Equal(updated.Subtotal), "subtotal = %s", updated.Subtotal)
	require.True(t, dec("27.00").Equal(updated.Total))
}

func TestAddLineOnSentInvoiceAllowed(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "1", "10.00"))

	_, err := f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusSent)
	require.NoError(t, err)

	_, err = f.svc.AddLine(f.ctx, invoice.ID, &InvoiceLineInput{
		Description: "Late fee",
		Quantity:    dec("1"),
		UnitPrice:   decPtr("2.00"),
	})
	require.NoError(t, err)
}

func TestAddLineOnPaidInvoiceLocked(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "1", "10.00"))

	_, err := f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusSent)
	require.NoError(t, err)
	_, err = f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusPaid)
	require.NoError(t, err)

	_, err = f.svc.AddLine(f.ctx, invoice.ID, &InvoiceLineInput{
		Description: "Extra",
		Quantity:    dec("1"),
		UnitPrice:   decPtr("2.00"),
	})
	require.True(t, apperror.IsKind(err, apperror.KindInvoiceLocked))
}

func TestUpdateInvoiceRecomputesOnTaxRateChange(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "2", "10.00"))

	newRate := dec("0.1000")
	updated, err := f.svc.UpdateInvoice(f.ctx, invoice.ID, &UpdateInvoiceInput{TaxRate: &newRate})
	require.NoError(t, err)
	require.True(t, dec("20.00").Equal(updated.Subtotal))
	require.True(t, dec("2.00").Equal(updated.TaxAmount))
	require.True(t, dec("22.00").Equal(updated.Total))
}

func TestUpdateInvoiceVoidLocked(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "1", "10.00"))

	_, err := f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusVoid)
	require.NoError(t, err)

	notes := "too late"
	_, err = f.svc.UpdateInvoice(f.ctx, invoice.ID, &UpdateInvoiceInput{Notes: &notes})
	require.True(t, apperror.IsKind(err, apperror.KindInvoiceLocked))
}

func TestUpdateInvoiceRenumber(t *testing.T) {
	f := newInvoiceFixture(t)
	first := f.createDraft(t, lineInput("Consulting", "1", "10.00"))
	second := f.createDraft(t, lineInput("Support", "1", "5.00"))

	taken := first.InvoiceNo
	_, err := f.svc.UpdateInvoice(f.ctx, second.ID, &UpdateInvoiceInput{InvoiceNo: &taken})
	require.True(t, apperror.IsKind(err, apperror.KindConflict))

	fresh := "INV-CUSTOM01"
	updated, err := f.svc.UpdateInvoice(f.ctx, second.ID, &UpdateInvoiceInput{InvoiceNo: &fresh})
	require.NoError(t, err)
	require.Equal(t, "INV-CUSTOM01", updated.InvoiceNo)
}

func TestDeleteLineRecomputesTotals(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t,
		lineInput("Consulting", "2", "10.00"),
		lineInput("Support", "1", "5.00"),
	)

	var supportLine *entity.InvoiceLine
	for i := range invoice.Lines {
		if invoice.Lines[i].Description == "Support" {
			supportLine = &invoice.Lines[i]
		}
	}
	require.NotNil(t, supportLine)

	updated, err := f.svc.DeleteLine(f.ctx, invoice.ID, supportLine.ID)
	require.NoError(t, err)
	require.Len(t, updated.Lines, 1)
	require.True(t, dec("20.00").Equal(updated.Subtotal))
	require.True(t, dec("21.60").Equal(updated.Total))
}

func TestDeleteLineOnPaidInvoiceLocked(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "1", "10.00"))

	_, err := f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusSent)
	require.NoError(t, err)
	_, err = f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusPaid)
	require.NoError(t, err)

	_, err = f.svc.DeleteLine(f.ctx, invoice.ID, invoice.Lines[0].ID)
	require.True(t, apperror.IsKind(err, apperror.KindInvoiceLocked))
}

func TestDeleteLineFromOtherInvoiceNotFound(t *testing.T) {
	f := newInvoiceFixture(t)
	first := f.createDraft(t, lineInput("Consulting", "1", "10.00"))
	second := f.createDraft(t, lineInput("Support", "1", "5.00"))

	_, err := f.svc.DeleteLine(f.ctx, first.ID, second.Lines[0].ID)
	require.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteInvoiceRemovesLines(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "1", "10.00"))

	require.NoError(t, f.svc.DeleteInvoice(f.ctx, invoice.ID))

	lines, err := f.lineRepo.GetByInvoiceID(f.ctx, invoice.ID)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestDeleteInvoicePaidLocked(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "1", "10.00"))

	_, err := f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusSent)
	require.NoError(t, err)
	_, err = f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusPaid)
	require.NoError(t, err)

	err = f.svc.DeleteInvoice(f.ctx, invoice.ID)
	require.True(t, apperror.IsKind(err, apperror.KindInvoiceLocked))
}

func TestSetStatusSameStatusIsNoOp(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "1", "10.00"))

	result, err := f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusDraft)
	require.NoError(t, err)
	require.Equal(t, enum.InvoiceStatusDraft, result.Status)
}

func TestSetStatusInvalidTransition(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "1", "10.00"))

	_, err := f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusPaid)
	require.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
	require.Contains(t, err.Error(), "draft -> paid")
}

func TestSetStatusUnknownStatus(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "1", "10.00"))

	_, err := f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatus("cancelled"))
	require.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestSetStatusFullLifecycle(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createDraft(t, lineInput("Consulting", "1", "10.00"))

	sent, err := f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusSent)
	require.NoError(t, err)
	require.Equal(t, enum.InvoiceStatusSent, sent.Status)

	paid, err := f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusPaid)
	require.NoError(t, err)
	require.Equal(t, enum.InvoiceStatusPaid, paid.Status)

	// Paid is terminal
	_, err = f.svc.SetStatus(f.ctx, invoice.ID, enum.InvoiceStatusVoid)
	require.True(t, apperror.IsKind(err, apperror.KindInvalidTransition))
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
