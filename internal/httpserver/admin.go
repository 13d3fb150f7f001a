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

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	pq := pageFrom(c)
	total, users, err := h.Svc.List(ctx, pq.offset, pq.limit)
	if err != nil {
		return fail(l, "list_users_failed", err)
	}
	return response.OK(c, http.StatusOK, transport.UserList{Users: users, Meta: pq.meta(total)})
}

func (h *UserHTTP) SetRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.set_role")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "set_role_failed", "invalid user id", err)
	}

	var req transport.RoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "set_role_failed", "invalid body", err)
	}

	user, err := h.Svc.SetRole(ctx, authmw.PrincipalFrom(c), id, req.Role)
	if err != nil {
		return fail(l, "set_role_failed", err)
	}
	return response.Message(c, http.StatusOK, "user role updated", user)
}

func (h *UserHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "delete_user_failed", "invalid user id", err)
	}
	if err := h.Svc.Delete(ctx, authmw.PrincipalFrom(c), id); err != nil {
		return fail(l, "delete_user_failed", err)
	}

	l.Info("delete_user_success", "user_id", id)
	return response.Message(c, http.StatusOK, "user deleted", nil)
}

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.submit")

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "submit_review_failed", "invalid body", err)
	}

	rv, err := h.Svc.Submit(ctx, req)
	if err != nil {
		return fail(l, "submit_review_failed", err)
	}
	return response.Message(c, http.StatusCreated, "review submitted for moderation", rv)
}

func (h *ReviewHTTP) GetApproved(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.approved")

	pq := pageFrom(c)
	total, reviews, err := h.Svc.Approved(ctx, pq.offset, pq.limit)
	if err != nil {
		return fail(l, "list_reviews_failed", err)
	}
	return response.OK(c, http.StatusOK, transport.ReviewList{Reviews: reviews, Meta: pq.meta(total)})
}

func (h *ReviewHTTP) GetAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.list_all")

	pq := pageFrom(c)
	total, reviews, err := h.Svc.List(ctx, c.QueryParam("status"), pq.offset, pq.limit)
	if err != nil {
		return fail(l, "list_reviews_failed", err)
	}
	return response.OK(c, http.StatusOK, transport.ReviewList{Reviews: reviews, Meta: pq.meta(total)})
}

func (h *ReviewHTTP) SetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.set_status")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "set_review_status_failed", "invalid review id", err)
	}

	var req transport.ReviewStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "set_review_status_failed", "invalid body", err)
	}

	rv, err := h.Svc.SetStatus(ctx, id, req.Status)
	if err != nil {
		return fail(l, "set_review_status_failed", err)
	}
	return response.Message(c, http.StatusOK, "review status updated", rv)
}

func (h *ReviewHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "delete_review_failed", "invalid review id", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_review_failed", err)
	}
	return response.Message(c, http.StatusOK, "review deleted", nil)
}

type AnalyticsHTTP struct {
	Svc *service.AnalyticsService
}

func (h *AnalyticsHTTP) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.dashboard")

	stats, err := h.Svc.Dashboard(ctx)
	if err != nil {
		return fail(l, "dashboard_failed", err)
	}
	return response.OK(c, http.StatusOK, stats)
}
