package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/portfolio/internal"
)

// DefaultCORSMaxAge is how long browsers may cache a preflight answer.
const DefaultCORSMaxAge = 12 * time.Hour

type corsConfig struct {
	originFunc    func(origin string) bool
	origins       []string
	methods       []string
	headers       []string
	exposeHeaders []string
	maxAge        time.Duration
}

// CORSOption configures CORS.
type CORSOption func(*corsConfig)

// WithAllowOrigins restricts the origins allowed to call the relay.
// Entries are trimmed and lose a trailing slash; blanks are dropped.
// An empty result keeps the default "*".
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *corsConfig) {
		var kept []string
		for _, o := range origins {
			if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
				kept = append(kept, o)
			}
		}
		if len(kept) > 0 {
			cfg.origins = kept
		}
	}
}

// WithAllowOriginFunc decides per origin and takes precedence over the list,
// e.g. to admit preview deployments by suffix.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *corsConfig) {
		cfg.originFunc = fn
	}
}

// WithAllowMethods sets Access-Control-Allow-Methods.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *corsConfig) {
		cfg.methods = methods
	}
}

// WithAllowHeaders sets Access-Control-Allow-Headers.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *corsConfig) {
		cfg.headers = headers
	}
}

// WithExposeHeaders sets Access-Control-Expose-Headers.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *corsConfig) {
		cfg.exposeHeaders = headers
	}
}

// WithMaxAge sets Access-Control-Max-Age. Zero omits the header.
func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *corsConfig) {
		cfg.maxAge = d
	}
}

// CORS lets a site on another origin post to the relay. By default any
// origin may call GET, HEAD and POST with a JSON body, and X-Request-ID is
// readable from scripts. No credentials are ever allowed.
//
// Requests without an Origin header, or from an origin that is not allowed,
// pass through untouched and the browser blocks the response.
// Preflight requests are answered with 204 and never reach a handler, so
// POST-only routes need no OPTIONS registration.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := corsConfig{
		origins:       []string{"*"},
		methods:       []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		headers:       []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		exposeHeaders: []string{"X-Request-ID"},
		maxAge:        DefaultCORSMaxAge,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	anyOrigin := slices.Contains(cfg.origins, "*")
	allowed := func(origin string) bool {
		if cfg.originFunc != nil {
			return cfg.originFunc(origin)
		}
		return anyOrigin || slices.Contains(cfg.origins, origin)
	}

	methods := strings.Join(cfg.methods, ", ")
	headers := strings.Join(cfg.headers, ", ")
	expose := strings.Join(cfg.exposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.maxAge.Seconds()))

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			if origin == "" || !allowed(origin) {
				return next(c)
			}

			h := c.Response().Header()
			h.Add("Vary", "Origin")
			if anyOrigin && cfg.originFunc == nil {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			if expose != "" {
				h.Set("Access-Control-Expose-Headers", expose)
			}

			if c.Request().Method != http.MethodOptions {
				return next(c)
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			if cfg.maxAge > 0 {
				h.Set("Access-Control-Max-Age", maxAge)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}
