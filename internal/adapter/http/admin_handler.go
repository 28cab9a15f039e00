package http

import (
	"context"
	"net/http"

	"loanstream/internal/domain/user"
	uc "loanstream/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves the /admin group; RequireAdmin guards it and the
// usecase checks again.
type AdminHandler struct{ uc *uc.Usecase }

func NewAdminHandler(u *uc.Usecase) *AdminHandler { return &AdminHandler{uc: u} }

type transitionFn func(ctx context.Context, p user.Principal, appID string) (*uc.ApplicationDTO, error)

func (h *AdminHandler) transition(fn transitionFn) echo.HandlerFunc {
	return func(c echo.Context) error {
		appID := c.Param("app_id")
		if appID == "" {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing app_id path param"})
		}
		dto, err := fn(c.Request().Context(), principal(c), appID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, dto)
	}
}

func (h *AdminHandler) StartReview(c echo.Context) error  { return h.transition(h.uc.StartReview)(c) }
func (h *AdminHandler) Underwrite(c echo.Context) error   { return h.transition(h.uc.RunUnderwriting)(c) }
func (h *AdminHandler) ForceApprove(c echo.Context) error { return h.transition(h.uc.ForceApprove)(c) }
func (h *AdminHandler) ForceReject(c echo.Context) error  { return h.transition(h.uc.ForceReject)(c) }

func (h *AdminHandler) List(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) History(c echo.Context) error {
	out, err := h.uc.History(c.Request().Context(), principal(c), c.Param("app_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
