package http

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// statusFor maps use case errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrConcurrencyConflict),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c echo.Context, err error, message string) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error(message,
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err))
		return c.JSON(code, Error{Code: code, Message: message})
	}
	return c.JSON(code, Error{Code: code, Message: message + ": " + err.Error()})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
