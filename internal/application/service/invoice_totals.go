package service

import (
	"github.com/kiplagat/billify-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InvoiceTotals is the server-computed money summary of an invoice
type InvoiceTotals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeLineTotal returns quantity * unit price rounded to cents
func ComputeLineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(2)
}

// ComputeInvoiceTotals derives an invoice's totals from its lines. Each line
// total is rounded to cents before summing, so the subtotal always equals the
// sum of the displayed line totals. Tax applies once to the subtotal.
func ComputeInvoiceTotals(lines []entity.InvoiceLine, taxRate decimal.Decimal) InvoiceTotals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(ComputeLineTotal(line.Quantity, line.UnitPrice))
	}
	subtotal = subtotal.Round(2)

	taxAmount := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(taxAmount)

	return InvoiceTotals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     total,
	}
}

// ApplyTotals recomputes and writes totals onto the invoice in place
func ApplyTotals(invoice *entity.Invoice, lines []entity.InvoiceLine) {
	totals := ComputeInvoiceTotals(lines, invoice.TaxRate)
	invoice.Subtotal = totals.Subtotal
	invoice.TaxAmount = totals.TaxAmount
	invoice.Total = totals.Total
}
