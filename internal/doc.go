// Package internal provides the HTTP core of the contact relay: the App, its
// request Context, the Router handlers declare routes on, and the server runtime.
//
// # Core Types
//
//   - App: Orchestrates HTTP routing, middleware, health probes, and graceful shutdown
//   - Context: Request/response access, body binding, JSON helpers, and request-scoped logging
//   - Router: Interface handlers use to declare routes with HTTP methods and grouping
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for individual route handlers that return errors
//   - Middleware: Wraps handlers to add cross-cutting concerns like request ids or access logs
//   - ErrorHandler: Renders errors returned from handlers
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context:
//
//	func (h *Relay) submit(c internal.Context) error {
//	    if err := h.mailer.SendRaw(c, email); err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, resp)
//	}
//
// # Application Structure
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(relay),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("mail", check)),
//	    internal.WithMount("/metrics", metricsHandler),
//	    internal.WithSite(os.DirFS("./dist")),
//	)
//
// Handlers receive dependencies via constructor injection, not context helpers.
//
// # Binding
//
// Context.Bind decodes JSON or url-encoded bodies (chosen by Content-Type) and,
// when the target implements Validatable, returns its rule failures as
// ValidationErrors. A body that cannot be decoded is returned as an error.
//
// # Error Handling
//
// Errors returned from handlers and middleware go to the ErrorHandler set with
// WithErrorHandler. Without one, the status of an HTTPError (or 500) is written
// as plain text. Nothing is written if the handler already sent a response.
//
// # Server Runtime
//
//	err := app.Run(":5000",
//	    internal.Logger(log),
//	    internal.ShutdownTimeout(30*time.Second),
//	    internal.ShutdownHook(logger.Flush()),
//	)
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests and runs
// the shutdown hooks within the shutdown timeout.
package internal
