package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
)

func (a *Authenticator) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := a.authenticate(c)
		if err != nil {
			return a.reject(err)
		}
		if !p.IsAdmin() {
			logging.FromContext(c.Request().Context()).Warn("admin_denied",
				"status", http.StatusForbidden,
				"user_id", p.UserID,
				"path", c.Path(),
			)
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}
