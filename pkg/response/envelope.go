package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(c echo.Context, code int, data any) error {
	return c.JSON(code, Envelope{Success: true, Data: data})
}

func Message(c echo.Context, code int, msg string, data any) error {
	return c.JSON(code, Envelope{Success: true, Message: msg, Data: data})
}

// ErrorHandler renders every error as an Envelope. Messages of 5xx errors
// are replaced so storage or driver errors never reach the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		} else {
			msg = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", code, "error", err)
		msg = "internal server error"
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, Envelope{Success: false, Error: msg})
	}
	if writeErr != nil {
		c.Logger().Error(writeErr)
	}
}
