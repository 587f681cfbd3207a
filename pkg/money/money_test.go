package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		lines        []Line
		taxRate      string
		discount     string
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name:         "two large popcorn at 150",
			lines:        []Line{{Quantity: 2, UnitPrice: dec("150.00")}},
			taxRate:      "0.18",
			discount:     "0",
			wantSubtotal: "300.00",
			wantTax:      "54.00",
			wantTotal:    "354.00",
		},
		{
			name: "multiple lines with discount",
			lines: []Line{
				{Quantity: 1, UnitPrice: dec("120.00")},
				{Quantity: 3, UnitPrice: dec("45.50")},
			},
			taxRate:      "0.18",
			discount:     "20.00",
			wantSubtotal: "256.50",
			wantTax:      "46.17",
			wantTotal:    "282.67",
		},
		{
			name:         "tax rounds half up",
			lines:        []Line{{Quantity: 1, UnitPrice: dec("10.25")}},
			taxRate:      "0.18",
			discount:     "0",
			wantSubtotal: "10.25",
			wantTax:      "1.85", // 1.845 rounds up
			wantTotal:    "12.10",
		},
		{
			name:         "zero tax rate",
			lines:        []Line{{Quantity: 4, UnitPrice: dec("25.00")}},
			taxRate:      "0",
			discount:     "0",
			wantSubtotal: "100.00",
			wantTax:      "0.00",
			wantTotal:    "100.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := Calculate(tt.lines, dec(tt.taxRate), dec(tt.discount))
			require.NoError(t, err)
			assert.True(t, totals.Subtotal.Equal(dec(tt.wantSubtotal)), "subtotal %s", totals.Subtotal)
			assert.True(t, totals.Tax.Equal(dec(tt.wantTax)), "tax %s", totals.Tax)
			assert.True(t, totals.Total.Equal(dec(tt.wantTotal)), "total %s", totals.Total)
		})
	}
}

func TestCalculateLineTotalsSumToSubtotal(t *testing.T) {
	lines := []Line{
		{Quantity: 3, UnitPrice: dec("33.33")},
		{Quantity: 7, UnitPrice: dec("0.01")},
		{Quantity: 2, UnitPrice: dec("199.99")},
		{Quantity: 11, UnitPrice: dec("12.45")},
	}

	totals, err := Calculate(lines, dec("0.18"), decimal.Zero)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, lt := range totals.LineTotals {
		sum = sum.Add(lt)
	}
	assert.True(t, sum.Equal(totals.Subtotal), "line totals %s vs subtotal %s", sum, totals.Subtotal)
}

func TestCalculateTotalInvariant(t *testing.T) {
	lines := []Line{
		{Quantity: 2, UnitPrice: dec("149.95")},
		{Quantity: 1, UnitPrice: dec("89.99")},
	}
	discount := dec("15.00")

	totals, err := Calculate(lines, dec("0.18"), discount)
	require.NoError(t, err)

	want := Round2(totals.Subtotal.Add(totals.Tax).Sub(discount))
	assert.True(t, totals.Total.Equal(want))
}

func TestCalculateRejectsBadInput(t *testing.T) {
	valid := []Line{{Quantity: 1, UnitPrice: dec("10.00")}}

	tests := []struct {
		name     string
		lines    []Line
		taxRate  decimal.Decimal
		discount decimal.Decimal
	}{
		{"empty lines", nil, dec("0.18"), decimal.Zero},
		{"zero quantity", []Line{{Quantity: 0, UnitPrice: dec("10.00")}}, dec("0.18"), decimal.Zero},
		{"negative quantity", []Line{{Quantity: -2, UnitPrice: dec("10.00")}}, dec("0.18"), decimal.Zero},
		{"negative price", []Line{{Quantity: 1, UnitPrice: dec("-1.00")}}, dec("0.18"), decimal.Zero},
		{"negative discount", valid, dec("0.18"), dec("-5.00")},
		{"negative tax rate", valid, dec("-0.18"), decimal.Zero},
		{"discount exceeds subtotal plus tax", valid, dec("0.18"), dec("12.00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.lines, tt.taxRate, tt.discount)
			assert.Error(t, err)
		})
	}
}

func TestCalculateDiscountEqualToSubtotalPlusTax(t *testing.T) {
	// Boundary: discount may consume the whole order but not more.
	totals, err := Calculate(
		[]Line{{Quantity: 1, UnitPrice: dec("100.00")}},
		dec("0.18"),
		dec("118.00"),
	)
	require.NoError(t, err)
	assert.True(t, totals.Total.IsZero(), "total %s", totals.Total)
}
