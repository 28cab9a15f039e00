package http

import (
	"errors"
	"log"
	"net/http"

	appDomain "loanstream/internal/domain/application"

	"github.com/labstack/echo/v4"
)

// writeError maps domain errors → HTTP codes.
func writeError(c echo.Context, err error) error {
	var ve *appDomain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: ve.Field, Message: ve.Reason}},
		})
	case errors.Is(err, appDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "application not found"})
	case errors.Is(err, appDomain.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, appDomain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "transition not allowed in current status"})
	case errors.Is(err, appDomain.ErrNotApproved):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "application is not approved"})
	}
	log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
