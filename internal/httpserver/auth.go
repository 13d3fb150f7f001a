package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/response"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "register_failed", "invalid body", err)
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(l, "register_failed", err)
	}

	l.Info("register_success", "otp_sent", res.OTPSent)
	return response.Message(c, http.StatusCreated, "verification code sent to your email", res)
}

func (h *AuthHTTP) VerifyOTP(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.verify_otp")

	var req transport.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "verify_otp_failed", "invalid body", err)
	}

	res, err := h.Svc.VerifyOTP(ctx, req)
	if err != nil {
		return fail(l, "verify_otp_failed", err)
	}

	l.Info("verify_otp_success", "user_id", res.User.ID)
	return response.Message(c, http.StatusOK, "email verified", res)
}

func (h *AuthHTTP) ResendOTP(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.resend_otp")

	var req transport.EmailRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "resend_otp_failed", "invalid body", err)
	}

	res, err := h.Svc.ResendOTP(ctx, req)
	if err != nil {
		return fail(l, "resend_otp_failed", err)
	}
	return response.Message(c, http.StatusOK, "verification code sent to your email", res)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login_failed", "invalid body", err)
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return fail(l, "login_failed", err)
	}

	l.Info("login_success", "user_id", res.User.ID)
	return response.Message(c, http.StatusOK, "login successful", res)
}

func (h *AuthHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.get_profile")

	user, err := h.Svc.Profile(ctx, authmw.PrincipalFrom(c))
	if err != nil {
		return fail(l, "get_profile_failed", err)
	}
	return response.OK(c, http.StatusOK, user)
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.update_profile")

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_profile_failed", "invalid body", err)
	}

	user, err := h.Svc.UpdateProfile(ctx, authmw.PrincipalFrom(c), req)
	if err != nil {
		return fail(l, "update_profile_failed", err)
	}
	return response.Message(c, http.StatusOK, "profile updated", user)
}
