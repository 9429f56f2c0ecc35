package contact

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/portfolio/internal"
	"github.com/dmitrymomot/portfolio/middlewares"
)

// ErrorHandler renders handler errors in the relay's JSON shape.
// Client errors keep their message; anything else is logged and reported
// with a generic message so internals never reach the browser.
func ErrorHandler(c internal.Context, err error) error {
	if httpErr := internal.AsHTTPError(err); httpErr != nil && httpErr.Code < http.StatusInternalServerError {
		msg := httpErr.Message
		if msg == "" {
			msg = httpErr.StatusText()
		}
		return c.JSON(httpErr.Code, failure(msg))
	}

	// Recover has already logged panics with their stack.
	if !middlewares.IsPanicError(err) {
		c.LogError("request failed", slog.Any("error", err))
	}
	return c.JSON(http.StatusInternalServerError, failure(MessageInternal))
}

// NotFound answers unmatched routes.
func NotFound(c internal.Context) error {
	return c.JSON(http.StatusNotFound, failure(MessageNotFound))
}

// MethodNotAllowed answers known routes called with the wrong method,
// such as GET /api/contact.
func MethodNotAllowed(c internal.Context) error {
	return c.JSON(http.StatusMethodNotAllowed, failure(MessageNotAllowed))
}
