package core

import "math"

// TaxInclusiveTotal computes the TTC amount in euros from a pre-tax
// amount in cents and a tax rate in percent. No rounding happens here;
// callers round at display or export boundaries so that monthly sums
// accumulate in full precision.
func TaxInclusiveTotal(amountCents int64, ratePercent float64) float64 {
	return float64(amountCents) / 100.0 * (1 + ratePercent/100.0)
}

// TTC is the tax-inclusive total of the document.
func (d Document) TTC() float64 {
	return TaxInclusiveTotal(d.Amount.Cents, d.TaxRatePercent)
}

// Round2 rounds to 2 decimal places. Presentation/export only.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place, used for the conversion rate.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
