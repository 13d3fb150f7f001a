package httpserver_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func TestAuth_RegisterVerifyLoginProfile(t *testing.T) {
	a := newApp(t)

	code, env := a.do(t, call{method: http.MethodPost, path: "/auth/register", body: map[string]any{
		"name": "Ann", "email": "Ann@Example.com", "password": "secret1", "phone": "555",
	}})
	require.Equal(t, http.StatusCreated, code, env.Error)
	reg := decode[transport.RegisterResult](t, env.Data)
	assert.Equal(t, "ann@example.com", reg.Email)
	assert.True(t, reg.OTPSent)

	code, env = a.do(t, call{method: http.MethodPost, path: "/auth/login", body: map[string]any{"email": "ann@example.com", "password": "secret1"}})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "please verify your email first", env.Error)

	code, env = a.do(t, call{method: http.MethodPost, path: "/auth/verify-otp", body: map[string]any{"email": "ann@example.com", "otp": "9999"}})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid verification code", env.Error)

	code, env = a.do(t, call{method: http.MethodPost, path: "/auth/verify-otp", body: map[string]any{"email": "ann@example.com", "otp": "1357"}})
	require.Equal(t, http.StatusOK, code, env.Error)
	verified := decode[transport.AuthResult](t, env.Data)
	assert.NotEmpty(t, verified.Token)

	code, env = a.do(t, call{method: http.MethodPost, path: "/auth/login", body: map[string]any{"email": "ann@example.com", "password": "nope!!"}})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid email or password", env.Error)

	code, env = a.do(t, call{method: http.MethodPost, path: "/auth/login", body: map[string]any{"email": "ann@example.com", "password": "secret1"}})
	require.Equal(t, http.StatusOK, code)
	login := decode[transport.AuthResult](t, env.Data)

	code, env = a.do(t, call{method: http.MethodPut, path: "/auth/profile", token: login.Token, body: map[string]any{"name": "Ann Lee"}})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = a.do(t, call{method: http.MethodGet, path: "/auth/profile", token: login.Token})
	require.Equal(t, http.StatusOK, code)
	profile := decode[models.User](t, env.Data)
	assert.Equal(t, "Ann Lee", profile.Name)
	assert.NotContains(t, string(env.Data), "password")
	assert.NotContains(t, string(env.Data), "otp")

	code, env = a.do(t, call{method: http.MethodPost, path: "/auth/register", body: map[string]any{
		"name": "Ann", "email": "ann@example.com", "password": "secret1",
	}})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "user with this email already exists", env.Error)

	code, _ = a.do(t, call{method: http.MethodPost, path: "/auth/resend-otp", body: map[string]any{"email": "ghost@example.com"}})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealth(t *testing.T) {
	a := newApp(t)

	code, _ := a.do(t, call{method: http.MethodGet, path: "/health/live"})
	assert.Equal(t, http.StatusOK, code)
	code, _ = a.do(t, call{method: http.MethodGet, path: "/health/ready"})
	assert.Equal(t, http.StatusOK, code)
}
