package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/httpserver"
	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/notify"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/testutil"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/response"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

var jwtSecret = []byte("handler-test-secret")

type app struct {
	e      *echo.Echo
	db     *gorm.DB
	issuer tokens.Issuer
}

func newApp(t *testing.T) *app {
	t.Helper()

	db := testutil.NewDB(t)
	r := &repo.GormRepo{DB: db}
	issuer := tokens.Issuer{Secret: jwtSecret, TTL: time.Hour}

	e := echo.New()
	e.HTTPErrorHandler = response.ErrorHandler

	httpserver.Register(e, &httpserver.Deps{
		Auth:           &authmw.Authenticator{Secret: jwtSecret, Users: r},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: r}},
		OrderHandler:   &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r}},
		AuthHandler: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Repo:    r,
			Hasher:  hash.Secret{Cost: bcrypt.MinCost},
			Issuer:  issuer,
			Sender:  notify.LogSender{},
			OTPTTL:  10 * time.Minute,
			NewCode: func() (string, error) { return "1357", nil },
		}},
		UserHandler:      &httpserver.UserHTTP{Svc: &service.UserService{Repo: r}},
		ReviewHandler:    &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: r}},
		AnalyticsHandler: &httpserver.AnalyticsHTTP{Svc: &service.AnalyticsService{Repo: r}},
	})

	return &app{e: e, db: db, issuer: issuer}
}

func (a *app) tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	tok, _, err := a.issuer.Issue(u.ID, u.Email, u.Role)
	require.NoError(t, err)
	return tok
}

type call struct {
	method  string
	path    string
	body    any
	token   string
	session string
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (a *app) do(t *testing.T, c call) (int, envelope) {
	t.Helper()

	var body bytes.Buffer
	if c.body != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if c.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+c.token)
	}
	if c.session != "" {
		req.Header.Set(authmw.HeaderSessionID, c.session)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}
