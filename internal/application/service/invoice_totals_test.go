package service

import (
	"testing"

	"github.com/kiplagat/billify-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func line(quantity, unitPrice string) entity.InvoiceLine {
	return entity.InvoiceLine{
		Quantity:  dec(quantity),
		UnitPrice: dec(unitPrice),
	}
}

func TestComputeLineTotalRoundsToCents(t *testing.T) {
	require.True(t, dec("20.00").Equal(ComputeLineTotal(dec("2"), dec("10.00"))))
	require.True(t, dec("1.01").Equal(ComputeLineTotal(dec("3"), dec("0.335"))))
	require.True(t, dec("0.33").Equal(ComputeLineTotal(dec("0.5"), dec("0.665"))))
}

func TestComputeInvoiceTotals(t *testing.T) {
	lines := []entity.InvoiceLine{
		line("2", "10.00"),
		line("1", "5.00"),
	}

	totals := ComputeInvoiceTotals(lines, dec("0.0800"))
	require.True(t, dec("25.00").Equal(totals.Subtotal), "subtotal = %s", totals.Subtotal)
	require.True(t, dec("2.00").Equal(totals.TaxAmount), "tax = %s", totals.TaxAmount)
	require.True(t, dec("27.00").Equal(totals.Total), "total = %s", totals.Total)
}

func TestComputeInvoiceTotalsNoLines(t *testing.T) {
	totals := ComputeInvoiceTotals(nil, dec("0.19"))
	require.True(t, totals.Subtotal.IsZero())
	require.True(t, totals.TaxAmount.IsZero())
	require.True(t, totals.Total.IsZero())
}

func TestComputeInvoiceTotalsZeroTaxRate(t *testing.T) {
	totals := ComputeInvoiceTotals([]entity.InvoiceLine{line("4", "2.50")}, decimal.Zero)
	require.True(t, dec("10.00").Equal(totals.Subtotal))
	require.True(t, totals.TaxAmount.IsZero())
	require.True(t, dec("10.00").Equal(totals.Total))
}

// Lines are rounded before summing, so the subtotal matches the sum of
// the displayed line totals rather than the raw products.
func TestComputeInvoiceTotalsRoundsPerLine(t *testing.T) {
	lines := []entity.InvoiceLine{
		line("3", "0.335"), // 1.005 -> 1.01
		line("3", "0.335"), // 1.005 -> 1.01
	}

	totals := ComputeInvoiceTotals(lines, decimal.Zero)
	require.True(t, dec("2.02").Equal(totals.Subtotal), "subtotal = %s", totals.Subtotal)
}

func TestApplyTotalsIsIdempotent(t *testing.T) {
	invoice := &entity.Invoice{TaxRate: dec("0.0700")}
	lines := []entity.InvoiceLine{
		line("2", "19.99"),
		line("1", "0.02"),
	}

	ApplyTotals(invoice, lines)
	require.True(t, dec("40.00").Equal(invoice.Subtotal))
	require.True(t, dec("2.80").Equal(invoice.TaxAmount))
	require.True(t, dec("42.80").Equal(invoice.Total))

	// Recomputing from the same lines must not drift
	ApplyTotals(invoice, lines)
	require.True(t, dec("40.00").Equal(invoice.Subtotal))
	require.True(t, dec("2.80").Equal(invoice.TaxAmount))
	require.True(t, dec("42.80").Equal(invoice.Total))
}
