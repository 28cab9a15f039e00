package underwriting

import "math"

const (
	MinCreditScore = 300
	MaxCreditScore = 850

	// dtiEpsilon keeps the ratio finite when income is zero.
	dtiEpsilon = 1e-6
)

// Terms are the facts the scorer needs from an application.
type Terms struct {
	Principal    float64
	AnnualRate   float64
	TenureMonths int
	Income       float64
}

// Metrics are the derived values persisted on an application.
type Metrics struct {
	EMI         float64
	CreditScore int
	DTI         float64
}

// Score derives the synthetic credit score and debt-to-income ratio.
//
// The score is a placeholder, not a bureau score:
// 300 + floor(income/1000) + tenure, clamped to [300, 850]. The sum is
// clamped as a float so very large incomes saturate at 850 instead of
// overflowing the int conversion.
func Score(income float64, tenureMonths int, emi float64) (int, float64) {
	raw := MinCreditScore + math.Floor(income/1000) + float64(tenureMonths)
	if math.IsNaN(raw) {
		raw = MinCreditScore
	}
	score := int(math.Min(math.Max(raw, MinCreditScore), MaxCreditScore))
	return score, emi / (income + dtiEpsilon)
}

// Assess computes EMI, score and DTI in one pass.
func Assess(t Terms) Metrics {
	emi := ComputeEMI(t.Principal, t.AnnualRate, t.TenureMonths)
	score, dti := Score(t.Income, t.TenureMonths, emi)
	return Metrics{EMI: emi, CreditScore: score, DTI: dti}
}
