// Package logger builds the relay's structured logger: JSON on stdout, with
// request-scoped attributes pulled from the context and, when a DSN is set,
// warnings and errors forwarded to Sentry.
//
//	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "contact message relayed", slog.Int("message_length", n))
//	// {"level":"INFO","msg":"contact message relayed","message_length":42,"request_id":"..."}
//
// A ContextExtractor returns one attribute and true, or false to skip it for
// that record. Extractors run on every call, so values set per request are
// always current. WithExtractors adds the same behavior to any slog.Handler.
//
// With Config.DSN set, error records become Sentry issues and records from
// Config.MinLevel (SENTRY_MIN_LEVEL, default warn) upward are kept as Sentry
// logs. A failing sink does not stop the other. Register Flush as a
// shutdown hook so buffered events are sent before the process exits:
//
//	app.Run(addr, internal.ShutdownHook(logger.Flush()))
//
// Attributes whose keys look like credentials (password, api_key, token, dsn)
// are masked before the record reaches stdout or Sentry. Visitor content is never logged by the relay.
//
// When the DSN is empty or Sentry fails to initialize, logging continues on stdout only.
package logger
