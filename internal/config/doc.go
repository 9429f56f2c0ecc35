// Package config loads the relay configuration from the environment.
//
// An optional .env file is read first with godotenv, then every field is
// filled by caarlos0/env from its struct tag. The per-package configs of the
// logger and mail transports are embedded, so one Load call covers the process.
//
// Variables:
//
//	PORT                  listen port (default 5000)
//	EMAIL_USER            sending account; also the default recipient
//	EMAIL_PASS            SMTP password (app password for Gmail)
//	CONTACT_EMAIL         inbox contact messages go to
//	MAIL_TRANSPORT        smtp, resend or mbox (default smtp)
//	SMTP_HOST, SMTP_PORT  submission server (default smtp.gmail.com:587)
//	SMTP_TLS              starttls, tls or none (default starttls)
//	SMTP_HEALTH_INTERVAL  how long a readiness result is reused (default 1m)
//	RESEND_API_KEY        Resend API key
//	MBOX_PATH             mbox file for the development transport
//	MAIL_FROM_NAME        display name on outgoing mail, "Name" <EMAIL_USER>
//	CORS_ALLOWED_ORIGINS  comma-separated origins (default *)
//	SITE_DIR              directory of the built site to serve at /
//	SHUTDOWN_TIMEOUT      graceful shutdown budget (default 30s)
//	LOG_LEVEL             debug, info, warn or error (default info)
//	SENTRY_DSN            enables Sentry reporting when set
//	SENTRY_ENVIRONMENT    Sentry environment tag (default production)
//	SENTRY_MIN_LEVEL      lowest level kept as a Sentry log (default warn)
package config
