package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
	loggingmw "github.com/Skotchmaster/storefront/pkg/middleware/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

const (
	HeaderSessionID = "X-Session-Id"

	principalKey = "principal"
)

var (
	errMissingToken = errors.New("missing access token")
	errUnknownUser  = errors.New("unknown user")
)

type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Authenticator resolves bearer tokens into a domain.Principal. The role is
// read from the users table so a demotion takes effect on the next request.
type Authenticator struct {
	Secret []byte
	Users  UserLookup
}

func (a *Authenticator) authenticate(c echo.Context) (*domain.Principal, error) {
	raw := bearerToken(c.Request())
	if raw == "" {
		return nil, errMissingToken
	}

	claims, err := tokens.AccessClaimsFromToken(raw, a.Secret)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, tokens.ErrInvalidToken
	}

	user, err := a.Users.GetUserByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUnknownUser
		}
		return nil, err
	}

	p := &domain.Principal{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Phone:  user.Phone,
		Role:   user.Role,
	}
	c.Set(principalKey, p)
	c.Set(loggingmw.ActorKey, user.ID.String())
	return p, nil
}

func (a *Authenticator) reject(err error) error {
	switch {
	case errors.Is(err, errMissingToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	case errors.Is(err, errUnknownUser):
		return echo.NewHTTPError(http.StatusUnauthorized, "user no longer exists")
	case isTokenError(err):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}

// PrincipalFrom returns the principal set by the middleware, or nil.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

// CartOwnerFrom combines the principal with the X-Session-Id header.
func CartOwnerFrom(c echo.Context) (domain.CartOwner, error) {
	return domain.NewCartOwner(PrincipalFrom(c), c.Request().Header.Get(HeaderSessionID))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
