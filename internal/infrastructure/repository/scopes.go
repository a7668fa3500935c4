package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// CompanyIDKey is the context key for the active company ID
	CompanyIDKey ctxKey = "company_id"
	// txKey is the context key for an in-flight transaction
	txKey ctxKey = "tx"
)

// CompanyScope returns a GORM scope that filters by company.
// This should be applied to all queries for company-scoped entities.
func CompanyScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		companyID, ok := ctx.Value(CompanyIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if company context missing
			// This prevents accidental cross-company data access
			return db.Where("1 = 0")
		}
		return db.Where("company_id = ?", companyID)
	}
}

// WithCompany adds the active company ID to context
func WithCompany(ctx context.Context, companyID uuid.UUID) context.Context {
	return context.WithValue(ctx, CompanyIDKey, companyID)
}

// GetCompanyID extracts the active company ID from context
func GetCompanyID(ctx context.Context) (uuid.UUID, bool) {
	companyID, ok := ctx.Value(CompanyIDKey).(uuid.UUID)
	return companyID, ok
}

// withTx stores a transaction handle in the context
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// conn resolves the database handle for the current context: the in-flight
// transaction if one is running, otherwise the shared connection.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return db
}
