package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/util"
)

var statusByKind = []struct {
	kind   error
	status int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrInsufficientStock, http.StatusBadRequest},
	{service.ErrOrderNotPending, http.StatusBadRequest},
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrRateLimited, http.StatusTooManyRequests},
}

// fail logs err under event and converts it to the HTTP error the client sees.
// Unclassified errors become a 500 whose cause stays in the log.
func fail(l *slog.Logger, event string, err error) error {
	var se *service.Error
	if errors.As(err, &se) {
		for _, m := range statusByKind {
			if errors.Is(err, m.kind) {
				l.Warn(event, "status", m.status, "reason", se.Msg)
				return echo.NewHTTPError(m.status, se.Msg)
			}
		}
	}
	l.Error(event, "status", http.StatusInternalServerError, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}

func badRequest(l *slog.Logger, event, reason string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}

func parseID(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

type pageQuery struct {
	page, offset, limit int
}

func pageFrom(c echo.Context) pageQuery {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	offset, limit := util.Calculate(page, util.ParseIntDefault(c.QueryParam("per_page"), util.DefaultPageSize))
	return pageQuery{page: page, offset: offset, limit: limit}
}

func (p pageQuery) meta(total int64) util.Meta {
	return util.NewMeta(p.page, p.offset, p.limit, total)
}

func parseBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
