package http

import (
	"context"
	"net/http"

	"storefront/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HealthCheck reports whether the service can serve traffic.
type HealthCheck func(ctx context.Context) error

type health struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewRouter builds the echo instance with probes, metrics and the order API.
func NewRouter(s *Server, m *metrics.Metrics, metricsHandler http.Handler, check HealthCheck) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(m.Middleware())

	e.GET("/health", func(c echo.Context) error {
		if check != nil {
			if err := check(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, health{Status: "unavailable", Error: err.Error()})
			}
		}
		return c.JSON(http.StatusOK, health{Status: "ok"})
	})
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}

	s.Register(e)
	return e
}
