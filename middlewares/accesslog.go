package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/portfolio/internal"
)

// AccessLogConfig configures the access log middleware.
type AccessLogConfig struct {
	Skip func(r *http.Request) bool // Requests for which nothing is logged
}

// AccessLogOption configures AccessLogConfig.
type AccessLogOption func(*AccessLogConfig)

// WithAccessLogSkipPaths skips logging for exact path matches, e.g. probes.
func WithAccessLogSkipPaths(paths ...string) AccessLogOption {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return func(cfg *AccessLogConfig) {
		cfg.Skip = func(r *http.Request) bool {
			_, ok := set[r.URL.Path]
			return ok
		}
	}
}

// AccessLog returns middleware that logs one line per request after it completes.
// 5xx responses are logged at error level, 4xx at warn, the rest at info.
// Bodies and query strings are never logged.
func AccessLog(opts ...AccessLogOption) internal.Middleware {
	cfg := &AccessLogConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if cfg.Skip != nil && cfg.Skip(c.Request()) {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.ResponseWriter().Status()
			if err != nil && !c.Written() {
				status = http.StatusInternalServerError
				if httpErr := internal.AsHTTPError(err); httpErr != nil {
					status = httpErr.Code
				}
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("size", c.ResponseWriter().Size()),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote_addr", c.Request().RemoteAddr),
			}

			switch {
			case status >= http.StatusInternalServerError:
				c.LogError("request completed", attrs...)
			case status >= http.StatusBadRequest:
				c.LogWarn("request completed", attrs...)
			default:
				c.LogInfo("request completed", attrs...)
			}
			return err
		}
	}
}
