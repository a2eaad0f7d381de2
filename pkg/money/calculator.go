// Package money implements the monetary calculations behind invoices:
// per-line totals, GST breakdowns, grand-total rounding, and the
// amount-in-words rendering. It performs no I/O.
//
// All arithmetic runs through shopspring/decimal; float64 only appears at
// the package boundary because the persisted models store floats. Rounding
// uses decimal's Round, i.e. round half away from zero.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineInput is one invoice line before computation. TaxRate overrides the
// invoice-level GST triple for that line when non-nil.
type LineInput struct {
	Quantity float64
	Rate     float64
	TaxRate  *float64
}

// LineTotal is the computed view of one line. EffectiveRate is the rate the
// tax amount was derived from, either the line's own rate or the combined
// invoice-level rate.
type LineTotal struct {
	Amount        float64
	TaxAmount     float64
	Total         float64
	EffectiveRate float64
}

// TaxRates is the invoice-level GST triple, in percent.
type TaxRates struct {
	CGST float64
	SGST float64
	IGST float64
}

// Sum returns the combined percentage, used as the effective rate for lines
// without their own tax rate.
func (r TaxRates) Sum() float64 {
	return r.CGST + r.SGST + r.IGST
}

// Totals is the full monetary snapshot of an invoice.
type Totals struct {
	Lines      []LineTotal
	SubTotal   float64
	CGSTAmount float64
	SGSTAmount float64
	IGSTAmount float64
	TaxTotal   float64
	Discount   float64
	RoundOff   float64
	GrandTotal float64
	PaidAmount float64
	Balance    float64
}

// Compute derives every total an invoice persists. Zero quantities and
// rates are legitimate inputs and produce zero-valued lines.
//
//	amount     = quantity * rate
//	taxAmount  = amount * effectiveRate / 100
//	subTotal   = sum(amount)
//	gstAmount  = subTotal * gstRate / 100   (per CGST/SGST/IGST component)
//	taxTotal   = cgstAmount + sgstAmount + igstAmount
//	grandTotal = round(subTotal + taxTotal - discount)
//	roundOff   = grandTotal - (subTotal + taxTotal - discount)
//	balance    = grandTotal - paidAmount
func Compute(lines []LineInput, discount, paidAmount float64, rates TaxRates) Totals {
	subTotal := decimal.Zero
	defaultRate := decimal.NewFromFloat(rates.Sum())

	lineTotals := make([]LineTotal, 0, len(lines))
	for _, line := range lines {
		amount := decimal.NewFromFloat(line.Quantity).Mul(decimal.NewFromFloat(line.Rate))

		rate := defaultRate
		if line.TaxRate != nil {
			rate = decimal.NewFromFloat(*line.TaxRate)
		}
		taxAmount := amount.Mul(rate).Div(hundred)

		subTotal = subTotal.Add(amount)
		lineTotals = append(lineTotals, LineTotal{
			Amount:        amount.InexactFloat64(),
			TaxAmount:     taxAmount.InexactFloat64(),
			Total:         amount.Add(taxAmount).InexactFloat64(),
			EffectiveRate: rate.InexactFloat64(),
		})
	}

	cgst := subTotal.Mul(decimal.NewFromFloat(rates.CGST)).Div(hundred)
	sgst := subTotal.Mul(decimal.NewFromFloat(rates.SGST)).Div(hundred)
	igst := subTotal.Mul(decimal.NewFromFloat(rates.IGST)).Div(hundred)
	taxTotal := cgst.Add(sgst).Add(igst)

	unrounded := subTotal.Add(taxTotal).Sub(decimal.NewFromFloat(discount))
	grandTotal := unrounded.Round(0)
	roundOff := grandTotal.Sub(unrounded)
	balance := grandTotal.Sub(decimal.NewFromFloat(paidAmount))

	return Totals{
		Lines:      lineTotals,
		SubTotal:   subTotal.InexactFloat64(),
		CGSTAmount: cgst.InexactFloat64(),
		SGSTAmount: sgst.InexactFloat64(),
		IGSTAmount: igst.InexactFloat64(),
		TaxTotal:   taxTotal.InexactFloat64(),
		Discount:   discount,
		RoundOff:   roundOff.InexactFloat64(),
		GrandTotal: grandTotal.InexactFloat64(),
		PaidAmount: paidAmount,
		Balance:    balance.InexactFloat64(),
	}
}
