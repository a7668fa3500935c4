package service

import (
	"context"

	"github.com/kiplagat/billify-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardService aggregates billing numbers for the dashboard
type DashboardService struct {
	statsRepo repository.BillingStatsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(statsRepo repository.BillingStatsRepository) *DashboardService {
	return &DashboardService{statsRepo: statsRepo}
}

// DashboardStats is the aggregate view for a company
type DashboardStats struct {
	InvoicesByStatus map[string]int64                  `json:"invoices_by_status"`
	TotalRevenue     decimal.Decimal                   `json:"total_revenue"`
	Outstanding      decimal.Decimal                   `json:"outstanding"`
	TopCustomers     []repository.TopCustomerResult    `json:"top_customers"`
	MonthlyRevenue   []repository.MonthlyRevenueResult `json:"monthly_revenue"`
}

// GetStats returns the dashboard aggregates for the active company
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	statusCounts, err := s.statsRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := map[string]int64{
		"draft": 0,
		"sent":  0,
		"paid":  0,
		"void":  0,
	}
	for _, sc := range statusCounts {
		byStatus[sc.Status] = sc.Count
	}

	revenue, err := s.statsRepo.GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	outstanding, err := s.statsRepo.GetOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	topCustomers, err := s.statsRepo.GetTopCustomers(ctx, 5)
	if err != nil {
		return nil, err
	}

	monthly, err := s.statsRepo.GetMonthlyRevenue(ctx, 12)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		InvoicesByStatus: byStatus,
		TotalRevenue:     revenue,
		Outstanding:      outstanding,
		TopCustomers:     topCustomers,
		MonthlyRevenue:   monthly,
	}, nil
}
