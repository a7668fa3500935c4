package repository

import (
	"context"

	"github.com/kiplagat/billify-api/internal/domain/entity"
	"github.com/kiplagat/billify-api/internal/domain/enum"
	domainRepo "github.com/kiplagat/billify-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type billingStatsRepository struct {
	db *gorm.DB
}

// NewBillingStatsRepository creates a new billing stats repository
func NewBillingStatsRepository(db *gorm.DB) domainRepo.BillingStatsRepository {
	return &billingStatsRepository{db: db}
}

func (r *billingStatsRepository) CountByStatus(ctx context.Context) ([]domainRepo.StatusCountResult, error) {
	var results []domainRepo.StatusCountResult
	err := conn(ctx, r.db).WithContext(ctx).
		Model(&entity.Invoice{}).
		Scopes(CompanyScope(ctx)).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&results).Error
	return results, err
}

func (r *billingStatsRepository) GetTotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Revenue decimal.Decimal
	}
	err := conn(ctx, r.db).WithContext(ctx).
		Model(&entity.Invoice{}).
		Scopes(CompanyScope(ctx)).
		Select("COALESCE(SUM(total), 0) as revenue").
		Where("status = ?", enum.InvoiceStatusPaid).
		Scan(&result).Error
	return result.Revenue, err
}

func (r *billingStatsRepository) GetOutstanding(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Outstanding decimal.Decimal
	}
	err := conn(ctx, r.db).WithContext(ctx).
		Model(&entity.Invoice{}).
		Scopes(CompanyScope(ctx)).
		Select("COALESCE(SUM(total), 0) as outstanding").
		Where("status = ?", enum.InvoiceStatusSent).
		Scan(&result).Error
	return result.Outstanding, err
}

func (r *billingStatsRepository) GetTopCustomers(ctx context.Context, limit int) ([]domainRepo.TopCustomerResult, error) {
	var results []domainRepo.TopCustomerResult
	err := conn(ctx, r.db).WithContext(ctx).
		Model(&entity.Invoice{}).
		Scopes(CompanyScope(ctx)).
		Select("invoices.customer_id, customers.name as customer_name, SUM(invoices.total) as total_billed, COUNT(*) as invoice_count").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.status IN ?", []enum.InvoiceStatus{enum.InvoiceStatusSent, enum.InvoiceStatusPaid}).
		Group("invoices.customer_id, customers.name").
		Order("total_billed DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *billingStatsRepository) GetMonthlyRevenue(ctx context.Context, months int) ([]domainRepo.MonthlyRevenueResult, error) {
	var results []domainRepo.MonthlyRevenueResult
	err := conn(ctx, r.db).WithContext(ctx).
		Model(&entity.Invoice{}).
		Scopes(CompanyScope(ctx)).
		Select("DATE_TRUNC('month', issue_date) as month, COALESCE(SUM(total), 0) as revenue").
		Where("status = ?", enum.InvoiceStatusPaid).
		Where("issue_date >= DATE_TRUNC('month', NOW()) - (? || ' months')::interval", months).
		Group("month").
		Order("month ASC").
		Scan(&results).Error
	return results, err
}
