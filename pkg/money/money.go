// Package money computes order totals in fixed-point decimal.
// All results are rounded to 2 decimal places, half up.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/loftpos/concessions-api/pkg/apperror"
)

// Line is one (quantity, unit price) pair to be totalled.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Totals holds the computed amounts for an order.
// Invariant: Total = round2(Subtotal + Tax - Discount).
type Totals struct {
	LineTotals []decimal.Decimal
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
}

// Round2 rounds an amount to 2 decimal places, half up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Calculate computes line totals, subtotal, tax and grand total for the
// given lines, tax rate (a fraction such as 0.18) and discount amount.
// Line totals are exact (quantity * unit price carries no rounding when
// unit prices have 2 decimal places), so the subtotal always equals the
// sum of the line totals.
func Calculate(lines []Line, taxRate, discount decimal.Decimal) (*Totals, error) {
	if len(lines) == 0 {
		return nil, apperror.NewBadRequestError("Order must contain at least one item")
	}
	if discount.IsNegative() {
		return nil, apperror.NewBadRequestError("Discount cannot be negative")
	}
	if taxRate.IsNegative() {
		return nil, apperror.NewBadRequestError("Tax rate cannot be negative")
	}

	lineTotals := make([]decimal.Decimal, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Item quantity must be at least 1")
		}
		if line.UnitPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Item price cannot be negative")
		}
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		lineTotals = append(lineTotals, lineTotal)
		subtotal = subtotal.Add(lineTotal)
	}

	tax := Round2(subtotal.Mul(taxRate))
	if discount.GreaterThan(subtotal.Add(tax)) {
		return nil, apperror.NewBadRequestError("Discount cannot exceed subtotal plus tax")
	}
	total := Round2(subtotal.Add(tax).Sub(discount))

	return &Totals{
		LineTotals: lineTotals,
		Subtotal:   subtotal,
		Tax:        tax,
		Discount:   Round2(discount),
		Total:      total,
	}, nil
}
