package application

import (
	"time"
)

type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

type EmploymentType string

const (
	EmploymentSalaried     EmploymentType = "Salaried"
	EmploymentSelfEmployed EmploymentType = "Self-Employed"
	EmploymentBusiness     EmploymentType = "Business"
	EmploymentOther        EmploymentType = "Other"
)

func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentSalaried, EmploymentSelfEmployed, EmploymentBusiness, EmploymentOther:
		return true
	}
	return false
}

// Table: loan_applications
type Application struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	AppID  string `gorm:"column:app_id;size:32;uniqueIndex:ux_loan_applications_app_id;not null" json:"app_id"`
	UserID string `gorm:"column:user_id;size:64;index:idx_loan_applications_user;not null" json:"user_id"`

	LoanAmount     float64        `gorm:"column:loan_amount;type:decimal(18,2);not null" json:"loan_amount"`
	TenureMonths   int            `gorm:"column:tenure_months;not null" json:"tenure_months"`
	AnnualRate     float64        `gorm:"column:annual_rate;type:decimal(6,3);not null" json:"annual_rate"`
	IncomeMonthly  float64        `gorm:"column:income_monthly;type:decimal(18,2);not null" json:"income_monthly"`
	EmploymentType EmploymentType `gorm:"column:employment_type;size:32;not null" json:"employment_type"`

	// nil until the first underwriting run
	CreditScore *int     `gorm:"column:credit_score" json:"credit_score"`
	DTI         *float64 `gorm:"column:dti" json:"dti"`
	EMI         *float64 `gorm:"column:emi;type:decimal(18,2)" json:"emi"`

	Status          Status    `gorm:"column:status;size:16;not null;default:'submitted';index" json:"status"`
	SanctionID      string    `gorm:"column:sanction_id;size:32" json:"sanction_id,omitempty"`
	DecisionReason  string    `gorm:"column:decision_reason;type:text" json:"decision_reason,omitempty"`
	StatusUpdatedAt time.Time `gorm:"column:status_updated_at" json:"status_updated_at"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime;index:idx_loan_applications_user" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "loan_applications" }

// SanctionLetter is the fixed input handed to the letter renderer once an
// application is approved.
type SanctionLetter struct {
	AppID          string    `json:"app_id"`
	SanctionID     string    `json:"sanction_id"`
	BorrowerName   string    `json:"borrower_name"`
	BorrowerEmail  string    `json:"borrower_email"`
	LoanAmount     string    `json:"loan_amount"`
	TenureMonths   int       `json:"tenure_months"`
	AnnualRate     string    `json:"annual_rate"`
	EMI            string    `json:"emi"`
	DecisionReason string    `json:"decision_reason"`
	ApprovedAt     time.Time `json:"approved_at"`
}
