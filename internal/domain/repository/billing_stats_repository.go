package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusCountResult represents the number of invoices in one status
type StatusCountResult struct {
	Status string
	Count  int64
}

// TopCustomerResult represents a customer's billed volume
type TopCustomerResult struct {
	CustomerID   uuid.UUID
	CustomerName string
	TotalBilled  decimal.Decimal
	InvoiceCount int64
}

// MonthlyRevenueResult represents paid revenue for a single month
type MonthlyRevenueResult struct {
	Month   time.Time
	Revenue decimal.Decimal
}

// BillingStatsRepository defines interface for dashboard aggregation queries.
// All queries are scoped to the company carried in the context.
type BillingStatsRepository interface {
	// CountByStatus returns invoice counts grouped by status
	CountByStatus(ctx context.Context) ([]StatusCountResult, error)

	// GetTotalRevenue returns the sum of totals for paid invoices
	GetTotalRevenue(ctx context.Context) (decimal.Decimal, error)

	// GetOutstanding returns the sum of totals for sent invoices
	GetOutstanding(ctx context.Context) (decimal.Decimal, error)

	// GetTopCustomers returns customers ranked by billed volume
	GetTopCustomers(ctx context.Context, limit int) ([]TopCustomerResult, error)

	// GetMonthlyRevenue returns paid revenue per month for the last N months
	GetMonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenueResult, error)
}
