package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

// Resolve attaches the principal when a valid token is present and lets the
// request through either way. Used where guests are served too.
func (a *Authenticator) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := a.authenticate(c); err != nil && !errors.Is(err, errMissingToken) {
			if !isTokenError(err) && !errors.Is(err, errUnknownUser) {
				return a.reject(err)
			}
			logging.FromContext(c.Request().Context()).Debug("auth_ignored", "reason", err.Error())
		}
		return next(c)
	}
}

func (a *Authenticator) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := a.authenticate(c); err != nil {
			return a.reject(err)
		}
		return next(c)
	}
}

func isTokenError(err error) bool {
	return errors.Is(err, tokens.ErrInvalidToken) ||
		errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenExpired) ||
		errors.Is(err, jwt.ErrTokenNotValidYet) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) ||
		errors.Is(err, jwt.ErrTokenInvalidClaims)
}
