package middlewares

import (
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/portfolio/internal"
)

// DefaultStackSize caps the captured stack trace, in bytes.
const DefaultStackSize = 4096

type recoverConfig struct {
	stackSize int
	withStack bool
}

// RecoverOption configures Recover.
type RecoverOption func(*recoverConfig)

// WithRecoverStackSize caps the captured stack at size bytes.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		if size > 0 {
			cfg.stackSize = size
		}
	}
}

// WithRecoverDisablePrintStack skips capturing the stack trace.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.withStack = false
	}
}

// Recover turns a panic further down the chain into a *PanicError for the
// app's ErrorHandler. The panic is logged at error level with the request
// method and path, so it reaches Sentry when the logger has a DSN.
// http.ErrAbortHandler is re-panicked untouched.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := recoverConfig{stackSize: DefaultStackSize, withStack: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				perr := &PanicError{Value: v}
				attrs := []any{
					slog.Any("panic", v),
					slog.String("method", c.Request().Method),
					slog.String("path", c.Request().URL.Path),
				}
				if cfg.withStack {
					buf := make([]byte, cfg.stackSize)
					perr.Stack = buf[:runtime.Stack(buf, false)]
					attrs = append(attrs, slog.String("stack", string(perr.Stack)))
				}
				c.LogError("panic recovered", attrs...)
				err = perr
			}()

			return next(c)
		}
	}
}
