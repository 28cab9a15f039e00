package application

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"time"

	appDomain "loanstream/internal/domain/application"
	auditDomain "loanstream/internal/domain/audit"
	docDomain "loanstream/internal/domain/document"
	"loanstream/internal/domain/underwriting"
	"loanstream/internal/domain/uow"
	"loanstream/internal/domain/user"
	auditUC "loanstream/internal/usecase/audit"
	"loanstream/pkg/id"

	"gorm.io/gorm"
)

// System is the principal used for automated underwriting right after submit.
var System = user.Principal{UserID: "system", Name: "automated underwriting", IsAdmin: true}

type Usecase struct {
	repos    uow.Repos
	uow      uow.UnitOfWork
	policy   underwriting.Policy
	recorder *auditUC.Recorder
	locks    *keyedMutex
	now      func() time.Time
	newID    func(prefix string, t time.Time) string
	autoRun  bool
}

type Option func(*Usecase)

func WithPolicy(p underwriting.Policy) Option { return func(u *Usecase) { u.policy = p } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func WithIDGenerator(fn func(prefix string, t time.Time) string) Option {
	return func(u *Usecase) { u.newID = fn }
}

// WithAutoUnderwrite runs automated underwriting as soon as an application is submitted.
// The submission is already committed when the engine runs, so an engine
// failure is logged and Submit still succeeds with the submitted application;
// an admin can run underwriting for it later.
func WithAutoUnderwrite(on bool) Option { return func(u *Usecase) { u.autoRun = on } }

// NewUsecase: repos serve reads, the UoW serves every state change.
func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		repos:    repos,
		uow:      tx,
		policy:   underwriting.DefaultPolicy(),
		recorder: auditUC.NewRecorder(),
		locks:    newKeyedMutex(),
		now:      time.Now,
		newID:    id.WithPrefix,
	}
	for _, opt := range opts {
		opt(u)
	}
	u.recorder = u.recorder.WithClock(u.now)
	return u
}

// Submit creates the application in submitted status. It is the only way in.
func (u *Usecase) Submit(ctx context.Context, p user.Principal, in SubmitInput) (*ApplicationDTO, error) {
	if p.UserID == "" {
		return nil, appDomain.ErrForbidden
	}
	now := u.now().UTC()
	a := &appDomain.Application{
		AppID:           u.newID(id.PrefixApplication, now),
		UserID:          p.UserID,
		LoanAmount:      in.LoanAmount,
		TenureMonths:    in.TenureMonths,
		AnnualRate:      in.AnnualRate,
		IncomeMonthly:   in.IncomeMonthly,
		EmploymentType:  appDomain.EmploymentType(in.EmploymentType),
		Status:          appDomain.StatusSubmitted,
		StatusUpdatedAt: now,
		CreatedAt:       now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Users.Upsert(ctx, user.FromPrincipal(p)); err != nil {
			return err
		}
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		_, err := u.recorder.Record(ctx, r.Audit, auditUC.Entry{
			Kind:    auditDomain.KindSubmitted,
			AppID:   a.AppID,
			Status:  string(a.Status),
			ActorID: p.UserID,
			Detail:  p.Email,
		})
		return err
	})
	if err != nil {
		return nil, wrapErr("submit application", err)
	}
	log.Printf("application %s submitted by %s", a.AppID, p.UserID)

	if u.autoRun {
		dto, err := u.RunUnderwriting(ctx, System, a.AppID)
		if err == nil {
			return dto, nil
		}
		log.Printf("auto underwriting %s: %v", a.AppID, err)
	}
	return toDTO(a), nil
}

// RunUnderwriting scores the application and applies the engine's decision.
// Terminal applications return ErrInvalidTransition and are not touched.
func (u *Usecase) RunUnderwriting(ctx context.Context, p user.Principal, appID string) (*ApplicationDTO, error) {
	if !p.IsAdmin {
		return nil, appDomain.ErrForbidden
	}
	return u.transition(ctx, p, appID, auditDomain.KindUnderwritingRun, func(a *appDomain.Application, now time.Time) (string, error) {
		m := underwriting.Assess(a.Terms())
		d := u.policy.Decide(a.IncomeMonthly, m)
		sanctionID := ""
		if d.Approved {
			sanctionID = u.newID(id.PrefixSanction, now)
		}
		if err := a.ApplyDecision(m, d, sanctionID, now); err != nil {
			return "", err
		}
		return d.Reason(), nil
	})
}

// StartReview moves a submitted application under manual review.
func (u *Usecase) StartReview(ctx context.Context, p user.Principal, appID string) (*ApplicationDTO, error) {
	if !p.IsAdmin {
		return nil, appDomain.ErrForbidden
	}
	return u.transition(ctx, p, appID, auditDomain.KindReviewStarted, func(a *appDomain.Application, now time.Time) (string, error) {
		return "", a.StartReview(now)
	})
}

// ForceApprove is the admin override: any status to approved with a fresh sanction id.
func (u *Usecase) ForceApprove(ctx context.Context, p user.Principal, appID string) (*ApplicationDTO, error) {
	if !p.IsAdmin {
		return nil, appDomain.ErrForbidden
	}
	return u.transition(ctx, p, appID, auditDomain.KindManualApproval, func(a *appDomain.Application, now time.Time) (string, error) {
		if err := a.ForceApprove(u.newID(id.PrefixSanction, now), now); err != nil {
			return "", err
		}
		return a.DecisionReason, nil
	})
}

// ForceReject is the admin override: any status to rejected, sanction id cleared.
func (u *Usecase) ForceReject(ctx context.Context, p user.Principal, appID string) (*ApplicationDTO, error) {
	if !p.IsAdmin {
		return nil, appDomain.ErrForbidden
	}
	return u.transition(ctx, p, appID, auditDomain.KindManualRejection, func(a *appDomain.Application, now time.Time) (string, error) {
		a.ForceReject(now)
		return a.DecisionReason, nil
	})
}

// transition locks the application, applies fn, then saves and audits in one tx.
func (u *Usecase) transition(
	ctx context.Context,
	p user.Principal,
	appID string,
	kind auditDomain.Kind,
	fn func(a *appDomain.Application, now time.Time) (string, error),
) (*ApplicationDTO, error) {
	unlock := u.locks.Lock(appID)
	defer unlock()

	var out *appDomain.Application
	err := u.uow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *appDomain.Application) error {
		now := u.now().UTC()
		detail, err := fn(a, now)
		if err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		if _, err := u.recorder.Record(ctx, r.Audit, auditUC.Entry{
			Kind:    kind,
			AppID:   a.AppID,
			Status:  string(a.Status),
			ActorID: p.UserID,
			Detail:  detail,
		}); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, wrapErr(string(kind), err)
	}
	log.Printf("application %s -> %s (%s by %s)", out.AppID, out.Status, kind, p.UserID)
	return toDTO(out), nil
}

func (u *Usecase) Get(ctx context.Context, p user.Principal, appID string) (*ApplicationDTO, error) {
	a, err := u.load(ctx, p, appID)
	if err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

// ListMine returns the caller's applications, newest first.
func (u *Usecase) ListMine(ctx context.Context, p user.Principal) ([]ApplicationDTO, error) {
	if p.UserID == "" {
		return nil, appDomain.ErrForbidden
	}
	apps, err := u.repos.Applications.ListByUserID(ctx, p.UserID)
	if err != nil {
		return nil, wrapErr("list applications", err)
	}
	return toDTOs(apps), nil
}

// ListAll returns every application, newest first. Admin only.
func (u *Usecase) ListAll(ctx context.Context, p user.Principal) ([]ApplicationDTO, error) {
	if !p.IsAdmin {
		return nil, appDomain.ErrForbidden
	}
	apps, err := u.repos.Applications.List(ctx)
	if err != nil {
		return nil, wrapErr("list applications", err)
	}
	return toDTOs(apps), nil
}

// AttachDocument associates an uploaded KYC descriptor with the application.
// Stored as <app_id>_<base filename>; bytes are not handled here.
func (u *Usecase) AttachDocument(ctx context.Context, p user.Principal, appID string, in DocumentInput) (*DocumentDTO, error) {
	name := filepath.Base(strings.TrimSpace(in.Filename))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return nil, &appDomain.ValidationError{Field: "filename", Reason: "is required"}
	}
	a, err := u.load(ctx, p, appID)
	if err != nil {
		return nil, err
	}
	uploadedAt := in.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = u.now()
	}
	d := &docDomain.Document{AppID: a.AppID, Filename: a.AppID + "_" + name, UploadedAt: uploadedAt.UTC()}
	if err := u.repos.Documents.Create(ctx, d); err != nil {
		return nil, wrapErr("attach document", err)
	}
	dto := toDocumentDTO(*d)
	return &dto, nil
}

func (u *Usecase) ListDocuments(ctx context.Context, p user.Principal, appID string) ([]DocumentDTO, error) {
	if _, err := u.load(ctx, p, appID); err != nil {
		return nil, err
	}
	docs, err := u.repos.Documents.ListByAppID(ctx, appID)
	if err != nil {
		return nil, wrapErr("list documents", err)
	}
	out := make([]DocumentDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentDTO(d))
	}
	return out, nil
}

// SanctionLetter returns renderer input for an approved application.
func (u *Usecase) SanctionLetter(ctx context.Context, p user.Principal, appID string) (*appDomain.SanctionLetter, error) {
	a, err := u.load(ctx, p, appID)
	if err != nil {
		return nil, err
	}
	var name, email string
	owner, err := u.repos.Users.GetByUserID(ctx, a.UserID)
	switch {
	case err == nil:
		name, email = owner.Name, owner.Email
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, wrapErr("load owner", err)
	}
	return a.Letter(name, email)
}

// History lists the audit trail of one application, newest first. Admin only.
func (u *Usecase) History(ctx context.Context, p user.Principal, appID string) ([]EventDTO, error) {
	if !p.IsAdmin {
		return nil, appDomain.ErrForbidden
	}
	if _, err := u.load(ctx, p, appID); err != nil {
		return nil, err
	}
	events, err := u.repos.Audit.ListByAppID(ctx, appID)
	if err != nil {
		return nil, wrapErr("list audit events", err)
	}
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, toEventDTO(e))
	}
	return out, nil
}

// PreviewEMI quotes the installment before an application exists.
func (u *Usecase) PreviewEMI(amount, annualRate float64, tenureMonths int) (*EMIPreviewDTO, error) {
	probe := appDomain.Application{
		LoanAmount:     amount,
		AnnualRate:     annualRate,
		TenureMonths:   tenureMonths,
		EmploymentType: appDomain.EmploymentOther,
	}
	if err := probe.Validate(); err != nil {
		return nil, err
	}
	emi := underwriting.ComputeEMI(amount, annualRate, tenureMonths)
	total := underwriting.RoundCurrency(emi * float64(tenureMonths))
	return &EMIPreviewDTO{
		EMI:           emi,
		TotalPayment:  total,
		TotalInterest: underwriting.RoundCurrency(total - amount),
	}, nil
}

func (u *Usecase) load(ctx context.Context, p user.Principal, appID string) (*appDomain.Application, error) {
	a, err := u.repos.Applications.GetByAppID(ctx, appID)
	if err != nil {
		return nil, wrapErr("load application", err)
	}
	if !p.Owns(a.UserID) {
		return nil, appDomain.ErrForbidden
	}
	return a, nil
}

func toDTOs(apps []appDomain.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, *toDTO(&apps[i]))
	}
	return out
}

// wrapErr keeps business errors as-is and marks everything else as a store failure.
func wrapErr(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return appDomain.ErrNotFound
	case appDomain.IsDomain(err):
		return err
	}
	return &appDomain.PersistenceError{Op: op, Err: err}
}
