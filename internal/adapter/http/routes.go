package http

import (
	mw "loanstream/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
)

type Routes struct {
	Health       *Handler
	Applications *ApplicationHandler
	Admin        *AdminHandler

	Auth        echo.MiddlewareFunc
	Idempotency echo.MiddlewareFunc // optional
}

func (r Routes) Register(e *echo.Echo) {
	e.GET("/health", r.Health.Health)
	e.GET("/emi", r.Applications.PreviewEMI)

	chain := []echo.MiddlewareFunc{r.Auth}
	if r.Idempotency != nil {
		chain = append(chain, r.Idempotency)
	}

	apps := e.Group("/applications", chain...)
	apps.POST("", r.Applications.Submit)
	apps.GET("", r.Applications.List)
	apps.GET("/:app_id", r.Applications.Get)
	apps.POST("/:app_id/documents", r.Applications.AttachDocument)
	apps.GET("/:app_id/documents", r.Applications.ListDocuments)
	apps.GET("/:app_id/sanction-letter", r.Applications.SanctionLetter)

	admin := e.Group("/admin/applications", append(chain, mw.RequireAdmin)...)
	admin.GET("", r.Admin.List)
	admin.POST("/:app_id/review", r.Admin.StartReview)
	admin.POST("/:app_id/underwrite", r.Admin.Underwrite)
	admin.POST("/:app_id/force-approve", r.Admin.ForceApprove)
	admin.POST("/:app_id/force-reject", r.Admin.ForceReject)
	admin.GET("/:app_id/history", r.Admin.History)
}
