package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config holds logger configuration.
// Embed it in the app config for env parsing with caarlos0/env.
type Config struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// Level is the minimum level written to stdout.
	Level slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	// MinLevel is the lowest level stored as a Sentry log. Errors always become
	// Sentry issues, and a MinLevel above error still keeps error logs.
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"warn"`
}

// New creates a JSON logger on stdout with optional context extractors.
// When cfg.DSN is set, warnings and errors are also forwarded to Sentry.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return newLogger(os.Stdout, cfg, extractors...)
}

func newLogger(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	stdoutHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.Level})

	// If no DSN, fall back to stdout only
	if cfg.DSN == "" {
		return slog.New(WithExtractors(redactor{stdoutHandler}, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(WithExtractors(redactor{stdoutHandler}, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError}, // Errors create Issues in Sentry
		LogLevel:   sentryLogLevels(cfg.MinLevel), // Logs stored for context/search
	}.NewSentryHandler(context.Background())

	return slog.New(WithExtractors(redactor{fanout{stdoutHandler, sentryHandler}}, extractors...))
}

// sentryLogLevels lists every level from lowest up to error.
func sentryLogLevels(lowest slog.Level) []slog.Level {
	var levels []slog.Level
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= lowest {
			levels = append(levels, l)
		}
	}
	if len(levels) == 0 {
		return []slog.Level{slog.LevelError}
	}
	return levels
}

// Flush returns a shutdown hook that drains buffered Sentry events.
// It is a no-op when Sentry was never initialized.
func Flush() func(context.Context) error {
	return func(ctx context.Context) error {
		timeout := 2 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		sentry.Flush(timeout)
		return nil
	}
}
