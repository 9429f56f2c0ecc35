package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/internal/config"
)

func TestFromMap_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromMap(map[string]string{
		"EMAIL_USER": "me@gmail.com",
		"EMAIL_PASS": "app-password",
	})
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Address())
	assert.Equal(t, config.TransportSMTP, cfg.Transport)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "starttls", cfg.SMTP.TLS)
	assert.Equal(t, time.Minute, cfg.SMTP.HealthInterval)
	assert.Equal(t, slog.LevelInfo, cfg.Logger.Level)
	assert.Equal(t, "New contact message", cfg.Mailer.FallbackSubject)

	// Shared variables reach every embedded config.
	assert.Equal(t, "me@gmail.com", cfg.SMTP.Username)
	assert.Equal(t, "me@gmail.com", cfg.Resend.SenderEmail)
	assert.Equal(t, "me@gmail.com", cfg.Mbox.SenderEmail)

	// Recipient falls back to the sender.
	assert.Equal(t, "me@gmail.com", cfg.Sender())
	assert.Equal(t, "me@gmail.com", cfg.Recipient())
}

func TestFromMap_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromMap(map[string]string{
		"PORT":                 "8080",
		"EMAIL_USER":           "me@gmail.com",
		"EMAIL_PASS":           "pw",
		"CONTACT_EMAIL":        "inbox@example.com",
		"CORS_ALLOWED_ORIGINS": "https://a.dev,https://b.dev",
		"SHUTDOWN_TIMEOUT":     "5s",
		"LOG_LEVEL":            "debug",
		"SMTP_HOST":            "localhost",
		"SMTP_PORT":            "1025",
		"SMTP_TLS":             "none",
	})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Address())
	assert.Equal(t, "inbox@example.com", cfg.Recipient())
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.Logger.Level)
	assert.Equal(t, 1025, cfg.SMTP.Port)
	assert.Equal(t, "none", cfg.SMTP.TLS)
}

func TestFromMap_FromName(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromMap(map[string]string{
		"EMAIL_USER":     "me@gmail.com",
		"EMAIL_PASS":     "pw",
		"MAIL_FROM_NAME": "Portfolio",
	})
	require.NoError(t, err)

	assert.Equal(t, `"Portfolio" <me@gmail.com>`, cfg.Sender())
	assert.Equal(t, "me@gmail.com", cfg.Recipient())
}

func TestFromMap_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
		want error
	}{
		{"smtp without password", map[string]string{"EMAIL_USER": "me@gmail.com"}, config.ErrMissingCredentials},
		{"no recipient", map[string]string{"MAIL_TRANSPORT": "mbox", "MBOX_PATH": "/tmp/x.mbox"}, config.ErrMissingRecipient},
		{"resend without key", map[string]string{"MAIL_TRANSPORT": "resend", "EMAIL_USER": "me@example.com"}, config.ErrMissingResendConfig},
		{"mbox without path", map[string]string{"MAIL_TRANSPORT": "mbox", "CONTACT_EMAIL": "me@example.com"}, config.ErrMissingMboxPath},
		{"unknown transport", map[string]string{"MAIL_TRANSPORT": "carrier-pigeon", "CONTACT_EMAIL": "me@example.com"}, config.ErrUnknownTransport},
		{"bad port", map[string]string{"PORT": "http", "EMAIL_USER": "me@gmail.com", "EMAIL_PASS": "pw"}, config.ErrInvalidPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.FromMap(tt.vars)
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFromMap_ValidAlternativeTransports(t *testing.T) {
	t.Parallel()

	_, err := config.FromMap(map[string]string{
		"MAIL_TRANSPORT": "resend",
		"RESEND_API_KEY": "re_123",
		"EMAIL_USER":     "me@example.com",
	})
	require.NoError(t, err)

	_, err = config.FromMap(map[string]string{
		"MAIL_TRANSPORT": "mbox",
		"MBOX_PATH":      "/tmp/contact.mbox",
		"CONTACT_EMAIL":  "me@example.com",
	})
	require.NoError(t, err)
}

func TestFromMap_ParseError(t *testing.T) {
	t.Parallel()

	_, err := config.FromMap(map[string]string{"SHUTDOWN_TIMEOUT": "soon"})
	require.Error(t, err)
	require.NotErrorIs(t, err, config.ErrInvalidConfig)
}
