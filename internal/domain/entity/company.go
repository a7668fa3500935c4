package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Company represents a tenant in the billing system. Every customer, item
// and invoice belongs to exactly one company.
type Company struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Settings  CompanySettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Owner   User                `gorm:"foreignKey:OwnerID" json:"-"`
	Members []CompanyMembership `gorm:"foreignKey:CompanyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new company
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// Membership roles
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// MemberUser represents a subset of user fields for membership responses
type MemberUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// CompanyMembership represents a user's membership in a company
type CompanyMembership struct {
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey" json:"company_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      string    `gorm:"size:50;default:'member'" json:"role"` // owner, admin, member
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`

	// Computed field for JSON response
	MemberUser *MemberUser `gorm:"-" json:"user,omitempty"`
}

// PopulateUserDetails populates the MemberUser field from the User relationship
func (cm *CompanyMembership) PopulateUserDetails() {
	if cm.User.ID != uuid.Nil {
		cm.MemberUser = &MemberUser{
			ID:        cm.User.ID,
			FirstName: cm.User.FirstName,
			LastName:  cm.User.LastName,
			Email:     cm.User.Email,
		}
	}
}

// TableName returns the table name for the CompanyMembership model
func (CompanyMembership) TableName() string {
	return "company_memberships"
}

// CompanySettings holds customizable company configuration
type CompanySettings struct {
	// Localization
	Currency   string `json:"currency,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	DateFormat string `json:"date_format,omitempty"`

	// Billing configuration
	DefaultTaxRate decimal.Decimal `json:"default_tax_rate"`
	TaxLabel       string          `json:"tax_label,omitempty"`
	InvoicePrefix  string          `json:"invoice_prefix,omitempty"`

	// Notification settings
	EmailNotifications bool `json:"email_notifications,omitempty"`
}

// Scan implements the sql.Scanner interface for CompanySettings
func (cs *CompanySettings) Scan(value interface{}) error {
	if value == nil {
		*cs = CompanySettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan CompanySettings: unsupported type")
	}

	return json.Unmarshal(bytes, cs)
}

// Value implements the driver.Valuer interface for CompanySettings
func (cs CompanySettings) Value() (driver.Value, error) {
	return json.Marshal(cs)
}

// DefaultCompanySettings returns default settings for new companies
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		Currency:           "USD",
		Timezone:           "UTC",
		DateFormat:         "YYYY-MM-DD",
		DefaultTaxRate:     decimal.Zero,
		TaxLabel:           "Tax",
		InvoicePrefix:      "INV-",
		EmailNotifications: true,
	}
}
