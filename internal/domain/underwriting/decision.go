package underwriting

import (
	"fmt"
	"strings"
)

const (
	ReasonApproved   = "meets automated underwriting criteria"
	reasonIncome     = "income below minimum threshold"
	reasonScoreFmt   = "credit score too low (%d)"
	reasonDTIFmt     = "debt-to-income ratio too high (%.2f)"
	reasonSeparator  = " | "
	defaultMinIncome = 8000
	defaultMinScore  = 600
	defaultMaxDTI    = 0.5
)

// Policy carries the eligibility thresholds.
type Policy struct {
	MinIncome      float64
	MinCreditScore int
	MaxDTI         float64
}

// DefaultPolicy returns the standard automated underwriting thresholds.
func DefaultPolicy() Policy {
	return Policy{
		MinIncome:      defaultMinIncome,
		MinCreditScore: defaultMinScore,
		MaxDTI:         defaultMaxDTI,
	}
}

// Decision is the engine's proposal. It never touches an application.
type Decision struct {
	Approved bool
	Reasons  []string
}

// Reason is the human-readable decision text stored on the application.
func (d Decision) Reason() string {
	if d.Approved {
		return ReasonApproved
	}
	return strings.Join(d.Reasons, reasonSeparator)
}

// Decide evaluates every rule; each violated rule adds a reason in fixed order.
func (p Policy) Decide(income float64, m Metrics) Decision {
	var reasons []string
	if income < p.MinIncome {
		reasons = append(reasons, reasonIncome)
	}
	if m.CreditScore < p.MinCreditScore {
		reasons = append(reasons, fmt.Sprintf(reasonScoreFmt, m.CreditScore))
	}
	if m.DTI > p.MaxDTI {
		reasons = append(reasons, fmt.Sprintf(reasonDTIFmt, m.DTI))
	}
	return Decision{Approved: len(reasons) == 0, Reasons: reasons}
}
