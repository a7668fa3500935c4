package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice represents a bill issued by a company to one of its customers.
// Subtotal, TaxAmount and Total are always computed server-side from the
// lines; client-supplied totals are ignored.
type Invoice struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID  uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoices_company_no" json:"company_id"`
	CustomerID uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	InvoiceNo  string             `gorm:"size:100;not null;uniqueIndex:idx_invoices_company_no" json:"invoice_no"`
	Status     enum.InvoiceStatus `gorm:"size:20;not null;default:'draft'" json:"status"`
	IssueDate  time.Time          `gorm:"type:date;not null" json:"issue_date"`
	DueDate    *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	Currency   string             `gorm:"size:3;not null;default:'USD'" json:"currency"`
	TaxRate    decimal.Decimal    `gorm:"type:numeric(6,4);not null;default:0" json:"tax_rate"`
	Subtotal   decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"subtotal"`
	TaxAmount  decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"tax_amount"`
	Total      decimal.Decimal    `gorm:"type:numeric(12,2);not null;default:0" json:"total"`
	Notes      *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Company  Company       `gorm:"foreignKey:CompanyID" json:"-"`
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []InvoiceLine `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// Editable reports whether the invoice's content may still change
func (i *Invoice) Editable() bool {
	return i.Status.Editable()
}

// InvoiceLine represents one billed position on an invoice. Description and
// UnitPrice are snapshots taken when the line was added, so later catalog
// edits never change issued amounts.
type InvoiceLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ItemID      *uuid.UUID      `gorm:"type:uuid;index" json:"item_id,omitempty"`
	Description string          `gorm:"size:500" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Item    *Item   `gorm:"foreignKey:ItemID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice line
func (l *InvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLine model
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}
