package application

import (
	"time"

	appDomain "loanstream/internal/domain/application"
	auditDomain "loanstream/internal/domain/audit"
	docDomain "loanstream/internal/domain/document"
)

type SubmitInput struct {
	LoanAmount     float64 `json:"loan_amount"`
	TenureMonths   int     `json:"tenure_months"`
	AnnualRate     float64 `json:"annual_rate"`
	IncomeMonthly  float64 `json:"income_monthly"`
	EmploymentType string  `json:"employment_type"`
}

type DocumentInput struct {
	Filename   string
	UploadedAt time.Time // zero means now
}

type ApplicationDTO struct {
	AppID           string    `json:"app_id"`
	UserID          string    `json:"user_id"`
	LoanAmount      float64   `json:"loan_amount"`
	TenureMonths    int       `json:"tenure_months"`
	AnnualRate      float64   `json:"annual_rate"`
	IncomeMonthly   float64   `json:"income_monthly"`
	EmploymentType  string    `json:"employment_type"`
	CreditScore     *int      `json:"credit_score"`
	DTI             *float64  `json:"dti"`
	EMI             *float64  `json:"emi"`
	Status          string    `json:"status"`
	SanctionID      string    `json:"sanction_id,omitempty"`
	DecisionReason  string    `json:"decision_reason,omitempty"`
	StatusUpdatedAt time.Time `json:"status_updated_at"`
	CreatedAt       time.Time `json:"created_at"`
}

type DocumentDTO struct {
	AppID      string    `json:"app_id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type EventDTO struct {
	EventID   string    `json:"event_id"`
	Event     string    `json:"event"`
	AppID     string    `json:"app_id"`
	Status    string    `json:"status"`
	ActorID   string    `json:"actor_id"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

type EMIPreviewDTO struct {
	EMI           float64 `json:"emi"`
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
}

func toDTO(a *appDomain.Application) *ApplicationDTO {
	return &ApplicationDTO{
		AppID:           a.AppID,
		UserID:          a.UserID,
		LoanAmount:      a.LoanAmount,
		TenureMonths:    a.TenureMonths,
		AnnualRate:      a.AnnualRate,
		IncomeMonthly:   a.IncomeMonthly,
		EmploymentType:  string(a.EmploymentType),
		CreditScore:     a.CreditScore,
		DTI:             a.DTI,
		EMI:             a.EMI,
		Status:          string(a.Status),
		SanctionID:      a.SanctionID,
		DecisionReason:  a.DecisionReason,
		StatusUpdatedAt: a.StatusUpdatedAt,
		CreatedAt:       a.CreatedAt,
	}
}

func toDocumentDTO(d docDomain.Document) DocumentDTO {
	return DocumentDTO{AppID: d.AppID, Filename: d.Filename, UploadedAt: d.UploadedAt}
}

func toEventDTO(e auditDomain.Event) EventDTO {
	return EventDTO{
		EventID:   e.EventID,
		Event:     string(e.Kind),
		AppID:     e.AppID,
		Status:    e.Status,
		ActorID:   e.ActorID,
		Payload:   e.Payload,
		CreatedAt: e.CreatedAt,
	}
}
