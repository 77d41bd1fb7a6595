package http

import (
	"net/http"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Identity headers are set by the upstream gateway after authentication.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	identityKey = "identity"
)

type Identity struct {
	UserID kernel.UUID
	Role   ports.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == ports.RoleAdmin
}

// Authenticate rejects requests without a valid user id header and stores
// the caller's Identity in the echo context.
func Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := kernel.UUIDFromString(strings.TrimSpace(c.Request().Header.Get(HeaderUserID)))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing or invalid " + HeaderUserID + " header",
				})
			}

			role := ports.Role(strings.ToLower(strings.TrimSpace(c.Request().Header.Get(HeaderUserRole))))
			if role != ports.RoleAdmin {
				role = ports.RoleCustomer
			}

			c.Set(identityKey, Identity{UserID: userID, Role: role})
			return next(c)
		}
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !identityFrom(c).IsAdmin() {
				return c.JSON(http.StatusForbidden, Error{
					Code:    http.StatusForbidden,
					Message: "Admin access required",
				})
			}
			return next(c)
		}
	}
}

func identityFrom(c echo.Context) Identity {
	id, _ := c.Get(identityKey).(Identity)
	return id
}
