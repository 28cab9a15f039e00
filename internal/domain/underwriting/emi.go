// Package underwriting holds the pure lending math: installment amount,
// the synthetic risk score and the automated eligibility rules.
package underwriting

import (
	"math"

	"github.com/shopspring/decimal"
)

// ComputeEMI returns the equated monthly installment for an amortizing loan,
// rounded to currency precision. A non-positive tenure yields 0.
func ComputeEMI(principal, annualRatePercent float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	r := annualRatePercent / 100 / 12
	if r == 0 {
		return RoundCurrency(principal / float64(months))
	}
	growth := math.Pow(1+r, float64(months))
	return RoundCurrency(principal * r * growth / (growth - 1))
}

// RoundCurrency rounds half away from zero to 2 decimal places.
func RoundCurrency(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
