package http

import (
	"net/http"
	"time"

	mw "loanstream/internal/adapter/middleware"
	"loanstream/internal/domain/user"
	uc "loanstream/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct{ uc *uc.Usecase }

func NewApplicationHandler(u *uc.Usecase) *ApplicationHandler { return &ApplicationHandler{uc: u} }

type submitReq struct {
	LoanAmount     float64 `json:"loan_amount"     validate:"gt=0,lte=1000000000000,dec2"`
	TenureMonths   int     `json:"tenure_months"   validate:"gt=0"`
	AnnualRate     float64 `json:"annual_rate"     validate:"gte=0"`
	IncomeMonthly  float64 `json:"income_monthly"  validate:"gte=0,lte=1000000000000,dec2"`
	EmploymentType string  `json:"employment_type" validate:"required,employment"`
}

type documentReq struct {
	Filename   string     `json:"filename"    validate:"required,max=255"`
	UploadedAt *time.Time `json:"uploaded_at"`
}

type emiReq struct {
	Principal float64 `query:"principal" validate:"gt=0"`
	Rate      float64 `query:"rate"      validate:"gte=0"`
	Tenure    int     `query:"tenure"    validate:"gt=0"`
}

// principal is zero when auth did not run; usecases reject it.
func principal(c echo.Context) user.Principal {
	p, _ := mw.PrincipalFrom(c)
	return p
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Submit(c.Request().Context(), principal(c), uc.SubmitInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) List(c echo.Context) error {
	out, err := h.uc.ListMine(c.Request().Context(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), principal(c), c.Param("app_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) AttachDocument(c echo.Context) error {
	var req documentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	in := uc.DocumentInput{Filename: req.Filename}
	if req.UploadedAt != nil {
		in.UploadedAt = *req.UploadedAt
	}
	dto, err := h.uc.AttachDocument(c.Request().Context(), principal(c), c.Param("app_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) ListDocuments(c echo.Context) error {
	out, err := h.uc.ListDocuments(c.Request().Context(), principal(c), c.Param("app_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) SanctionLetter(c echo.Context) error {
	letter, err := h.uc.SanctionLetter(c.Request().Context(), principal(c), c.Param("app_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, letter)
}

// PreviewEMI: GET /emi?principal=&rate=&tenure=
func (h *ApplicationHandler) PreviewEMI(c echo.Context) error {
	var req emiReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.PreviewEMI(req.Principal, req.Rate, req.Tenure)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
