package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestComputeWorkedExample(t *testing.T) {
	// Item with sale rate 100, tax rate 18, quantity 2 on a sale invoice
	// with discount 0 and CGST 9 / SGST 9.
	totals := Compute(
		[]LineInput{{Quantity: 2, Rate: 100, TaxRate: ptr(18)}},
		0, 0,
		TaxRates{CGST: 9, SGST: 9},
	)

	require.Len(t, totals.Lines, 1)
	assert.Equal(t, 200.0, totals.Lines[0].Amount)
	assert.Equal(t, 36.0, totals.Lines[0].TaxAmount)
	assert.Equal(t, 236.0, totals.Lines[0].Total)

	assert.Equal(t, 200.0, totals.SubTotal)
	assert.Equal(t, 18.0, totals.CGSTAmount)
	assert.Equal(t, 18.0, totals.SGSTAmount)
	assert.Equal(t, 0.0, totals.IGSTAmount)
	assert.Equal(t, 36.0, totals.TaxTotal)
	assert.Equal(t, 0.0, totals.RoundOff)
	assert.Equal(t, 236.0, totals.GrandTotal)
	assert.Equal(t, 236.0, totals.Balance)
}

func TestComputeLineRateFallsBackToGSTTriple(t *testing.T) {
	totals := Compute(
		[]LineInput{{Quantity: 1, Rate: 100}},
		0, 0,
		TaxRates{CGST: 9, SGST: 9, IGST: 0},
	)
	assert.Equal(t, 18.0, totals.Lines[0].TaxAmount)
}

func TestComputeRoundingHalfAwayFromZero(t *testing.T) {
	// 1 * 100.50 with no tax: grand total rounds 100.50 -> 101.
	totals := Compute(
		[]LineInput{{Quantity: 1, Rate: 100.50, TaxRate: ptr(0)}},
		0, 0,
		TaxRates{},
	)
	assert.Equal(t, 101.0, totals.GrandTotal)
	assert.InDelta(t, 0.5, totals.RoundOff, 1e-9)

	// Subtracting a discount below the half boundary rounds down.
	totals = Compute(
		[]LineInput{{Quantity: 1, Rate: 100.50, TaxRate: ptr(0)}},
		0.1, 0,
		TaxRates{},
	)
	assert.Equal(t, 100.0, totals.GrandTotal)
	assert.InDelta(t, -0.4, totals.RoundOff, 1e-9)
}

func TestComputeInvariants(t *testing.T) {
	totals := Compute(
		[]LineInput{
			{Quantity: 3, Rate: 33.33, TaxRate: ptr(18)},
			{Quantity: 1.5, Rate: 9.99},
		},
		5.25, 40,
		TaxRates{CGST: 9, SGST: 9},
	)

	unrounded := totals.SubTotal + totals.TaxTotal - totals.Discount
	assert.InDelta(t, totals.GrandTotal, unrounded+totals.RoundOff, 1e-9)
	assert.InDelta(t, totals.Balance, totals.GrandTotal-totals.PaidAmount, 1e-9)
	assert.InDelta(t, totals.TaxTotal, totals.CGSTAmount+totals.SGSTAmount+totals.IGSTAmount, 1e-9)
}

func TestComputeZeroLinesAreLegitimate(t *testing.T) {
	totals := Compute(
		[]LineInput{{Quantity: 0, Rate: 0}},
		0, 0,
		TaxRates{CGST: 9, SGST: 9},
	)
	assert.Equal(t, 0.0, totals.SubTotal)
	assert.Equal(t, 0.0, totals.GrandTotal)
	assert.Equal(t, 0.0, totals.Balance)
}

func TestComputeEmptyLines(t *testing.T) {
	totals := Compute(nil, 0, 0, TaxRates{})
	assert.Empty(t, totals.Lines)
	assert.Equal(t, 0.0, totals.GrandTotal)
}
