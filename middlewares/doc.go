// Package middlewares provides the HTTP middleware the relay is assembled with.
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing. A short printable
// upstream X-Request-ID or X-Correlation-ID is reused; otherwise a random UUID
// is generated. Pass RequestIDExtractor to logger.New so every log line carries it:
//
//	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover catches panics, logs them at error level and returns a *PanicError
// to the global ErrorHandler, which renders the generic failure envelope:
//
//	internal.WithErrorHandler(func(c internal.Context, err error) error {
//	    if middlewares.IsPanicError(err) {
//	        return c.JSON(http.StatusInternalServerError, failure)
//	    }
//	    ...
//	})
//
// # CORS
//
// CORS answers preflight requests and adds Access-Control headers. The default
// allows every origin, so a static site hosted anywhere can post to the relay.
// Restrict it with WithAllowOrigins:
//
//	middlewares.CORS(middlewares.WithAllowOrigins("https://portfolio.dev"))
//
// # Access Log
//
// AccessLog writes one structured line per request with method, path, status,
// size and duration. Bodies and query strings are never logged.
//
//	middlewares.AccessLog(middlewares.WithAccessLogSkipPaths("/health/live", "/health/ready"))
//
// Recommended order: RequestID, AccessLog, Recover, CORS.
package middlewares
