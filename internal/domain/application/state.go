package application

import (
	"math"
	"time"

	"loanstream/internal/domain/underwriting"

	"github.com/shopspring/decimal"
)

const (
	ReasonManualApproval  = "manual approval by admin"
	ReasonManualRejection = "manual rejection by admin"

	// MaxAmount bounds loan_amount and income_monthly well inside decimal(18,2).
	MaxAmount = 1e12
)

// Validate checks intake facts before an application is created.
func (a *Application) Validate() error {
	switch {
	case !finite(a.LoanAmount) || a.LoanAmount <= 0:
		return &ValidationError{Field: "loan_amount", Reason: "must be greater than 0"}
	case a.LoanAmount > MaxAmount:
		return &ValidationError{Field: "loan_amount", Reason: "must be less than or equal to 1000000000000"}
	case a.TenureMonths <= 0:
		return &ValidationError{Field: "tenure_months", Reason: "must be greater than 0"}
	case !finite(a.AnnualRate) || a.AnnualRate < 0:
		return &ValidationError{Field: "annual_rate", Reason: "must be 0 or more"}
	case !finite(a.IncomeMonthly) || a.IncomeMonthly < 0:
		return &ValidationError{Field: "income_monthly", Reason: "must be 0 or more"}
	case a.IncomeMonthly > MaxAmount:
		return &ValidationError{Field: "income_monthly", Reason: "must be less than or equal to 1000000000000"}
	case !a.EmploymentType.Valid():
		return &ValidationError{Field: "employment_type", Reason: "must be one of Salaried, Self-Employed, Business, Other"}
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func (a *Application) Terms() underwriting.Terms {
	return underwriting.Terms{
		Principal:    a.LoanAmount,
		AnnualRate:   a.AnnualRate,
		TenureMonths: a.TenureMonths,
		Income:       a.IncomeMonthly,
	}
}

// StartReview moves a submitted application under review.
func (a *Application) StartReview(now time.Time) error {
	if a.Status != StatusSubmitted {
		return ErrInvalidTransition
	}
	a.Status = StatusUnderReview
	a.StatusUpdatedAt = now.UTC()
	return nil
}

// ApplyDecision records an automated outcome. Only submitted or under-review
// applications accept one; the application is left untouched otherwise.
func (a *Application) ApplyDecision(m underwriting.Metrics, d underwriting.Decision, sanctionID string, now time.Time) error {
	if a.Status.Terminal() {
		return ErrInvalidTransition
	}
	if d.Approved && sanctionID == "" {
		return ErrInvalidTransition
	}
	next := *a
	next.CreditScore = &m.CreditScore
	next.DTI = &m.DTI
	next.EMI = &m.EMI
	next.DecisionReason = d.Reason()
	if d.Approved {
		next.Status = StatusApproved
		next.SanctionID = sanctionID
	} else {
		next.Status = StatusRejected
		next.SanctionID = ""
	}
	next.StatusUpdatedAt = now.UTC()
	*a = next
	return nil
}

// ForceApprove is the manual override; it applies from any status and keeps
// previously computed metrics.
func (a *Application) ForceApprove(sanctionID string, now time.Time) error {
	if sanctionID == "" {
		return ErrInvalidTransition
	}
	a.Status = StatusApproved
	a.SanctionID = sanctionID
	a.DecisionReason = ReasonManualApproval
	a.StatusUpdatedAt = now.UTC()
	return nil
}

// ForceReject is the manual override; it applies from any status and keeps
// previously computed metrics.
func (a *Application) ForceReject(now time.Time) {
	a.Status = StatusRejected
	a.SanctionID = ""
	a.DecisionReason = ReasonManualRejection
	a.StatusUpdatedAt = now.UTC()
}

// Letter assembles the renderer input for an approved application.
func (a *Application) Letter(borrowerName, borrowerEmail string) (*SanctionLetter, error) {
	if a.Status != StatusApproved {
		return nil, ErrNotApproved
	}
	emi := underwriting.ComputeEMI(a.LoanAmount, a.AnnualRate, a.TenureMonths)
	if a.EMI != nil {
		emi = *a.EMI
	}
	return &SanctionLetter{
		AppID:          a.AppID,
		SanctionID:     a.SanctionID,
		BorrowerName:   borrowerName,
		BorrowerEmail:  borrowerEmail,
		LoanAmount:     decimal.NewFromFloat(a.LoanAmount).StringFixed(2),
		TenureMonths:   a.TenureMonths,
		AnnualRate:     decimal.NewFromFloat(a.AnnualRate).StringFixed(2),
		EMI:            decimal.NewFromFloat(emi).StringFixed(2),
		DecisionReason: a.DecisionReason,
		ApprovedAt:     a.StatusUpdatedAt,
	}, nil
}
