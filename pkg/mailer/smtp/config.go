package smtp

import "time"

// TLS modes for the submission connection.
const (
	TLSStartTLS = "starttls" // plain connect, then STARTTLS (port 587)
	TLSImplicit = "tls"      // TLS from the first byte (port 465)
	TLSNone     = "none"     // no TLS, for local catchers such as mailpit
)

// Config holds SMTP submission configuration.
// Embed this in the app config for env parsing with caarlos0/env.
// The defaults match a Gmail account with an app password.
type Config struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	TLS      string `env:"SMTP_TLS" envDefault:"starttls"`
	Username string `env:"EMAIL_USER"`
	Password string `env:"EMAIL_PASS"`
	FromName string `env:"MAIL_FROM_NAME"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`

	// HealthInterval is how long a readiness result is reused before the
	// server is contacted again. Zero checks on every call.
	HealthInterval time.Duration `env:"SMTP_HEALTH_INTERVAL" envDefault:"1m"`
}
