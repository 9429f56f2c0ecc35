package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/mailer"
	"github.com/dmitrymomot/portfolio/pkg/mailer/mbox"
	"github.com/dmitrymomot/portfolio/pkg/mailer/resend"
	"github.com/dmitrymomot/portfolio/pkg/mailer/smtp"
)

// Mail transports selectable with MAIL_TRANSPORT.
const (
	TransportSMTP   = "smtp"
	TransportResend = "resend"
	TransportMbox   = "mbox"
)

var (
	ErrInvalidConfig       = errors.New("config: invalid configuration")
	ErrUnknownTransport    = errors.New("config: unknown mail transport")
	ErrMissingRecipient    = errors.New("config: CONTACT_EMAIL or EMAIL_USER must be set")
	ErrMissingCredentials  = errors.New("config: EMAIL_USER and EMAIL_PASS are required for smtp")
	ErrMissingResendConfig = errors.New("config: RESEND_API_KEY and EMAIL_USER are required for resend")
	ErrMissingMboxPath     = errors.New("config: MBOX_PATH is required for mbox")
	ErrInvalidPort         = errors.New("config: PORT must be a number between 1 and 65535")
)

// Config is the process configuration, read once at startup.
type Config struct {
	Port            string        `env:"PORT" envDefault:"5000"`
	ContactEmail    string        `env:"CONTACT_EMAIL"`
	Transport       string        `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	SiteDir         string        `env:"SITE_DIR"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	Logger logger.Config
	Mailer mailer.Config
	SMTP   smtp.Config
	Resend resend.Config
	Mbox   mbox.Config
}

// Load reads an optional .env file from the working directory, then parses
// the environment. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// FromMap parses cfg from an explicit variable set instead of the process environment.
func FromMap(vars map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Address is the listen address built from Port.
func (c *Config) Address() string {
	return ":" + c.Port
}

// Sender is the From address of outgoing mail: the account address, with
// MAIL_FROM_NAME as display name when set.
func (c *Config) Sender() string {
	if c.SMTP.Username == "" {
		return ""
	}
	return mailer.Recipient(c.SMTP.FromName, c.SMTP.Username)
}

// Recipient is the inbox contact messages go to. It falls back to the bare
// account address.
func (c *Config) Recipient() string {
	if c.ContactEmail != "" {
		return c.ContactEmail
	}
	return c.SMTP.Username
}

// Validate rejects configurations that cannot deliver a single message.
func (c *Config) Validate() error {
	var errs []error

	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		errs = append(errs, ErrInvalidPort)
	}
	if c.Recipient() == "" {
		errs = append(errs, ErrMissingRecipient)
	}

	switch c.Transport {
	case TransportSMTP:
		if c.SMTP.Username == "" || c.SMTP.Password == "" {
			errs = append(errs, ErrMissingCredentials)
		}
	case TransportResend:
		if c.Resend.APIKey == "" || c.Resend.SenderEmail == "" {
			errs = append(errs, ErrMissingResendConfig)
		}
	case TransportMbox:
		if c.Mbox.Path == "" {
			errs = append(errs, ErrMissingMboxPath)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownTransport, c.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}
