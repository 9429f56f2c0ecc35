package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"

	"github.com/dmitrymomot/portfolio/pkg/mailer"
)

var (
	// ErrMissingSender indicates neither the email nor the config names a sender.
	ErrMissingSender = errors.New("smtp: no sender address configured")

	// ErrUnknownTLSMode indicates an unsupported Config.TLS value.
	ErrUnknownTLSMode = errors.New("smtp: unknown tls mode")
)

// Sender implements mailer.Sender over SMTP submission.
// Every Send opens its own connection, so a Sender is safe for concurrent use.
type Sender struct {
	now    func() time.Time
	config Config

	healthMu  sync.Mutex
	checkedAt time.Time
	healthErr error
}

// New creates a new SMTP sender.
func New(cfg Config) *Sender {
	if cfg.TLS == "" {
		cfg.TLS = TLSStartTLS
	}
	return &Sender{config: cfg, now: time.Now}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := *email
	if msg.From == "" {
		if s.config.Username == "" {
			return ErrMissingSender
		}
		msg.From = mailer.Recipient(s.config.FromName, s.config.Username)
	}

	from, err := mailer.AddressOf(msg.From)
	if err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	rcpts, err := msg.Recipients()
	if err != nil {
		return fmt.Errorf("smtp: %w", err)
	}

	var body bytes.Buffer
	if err := mailer.WriteMessage(&body, &msg, s.now()); err != nil {
		return fmt.Errorf("smtp: compose message: %w", err)
	}

	c, err := s.dial()
	if err != nil {
		return err
	}
	defer c.Close()

	if s.config.Username != "" {
		if err := c.Auth(sasl.NewPlainClient("", s.config.Username, s.config.Password)); err != nil {
			return fmt.Errorf("smtp: auth: %w", err)
		}
	}
	if err := c.SendMail(from, rcpts, &body); err != nil {
		return fmt.Errorf("smtp: send: %w", err)
	}
	return c.Quit()
}

// Healthcheck returns a check that connects, authenticates and issues NOOP.
// The outcome is reused for Config.HealthInterval, so frequent readiness
// checks do not log in to the provider on every call.
func (s *Sender) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.healthMu.Lock()
		defer s.healthMu.Unlock()
		now := s.now()
		if !s.checkedAt.IsZero() && now.Sub(s.checkedAt) < s.config.HealthInterval {
			return s.healthErr
		}
		err := s.ping()
		if ctx.Err() == nil {
			s.checkedAt, s.healthErr = now, err
		}
		return err
	}
}

func (s *Sender) ping() error {
	c, err := s.dial()
	if err != nil {
		return err
	}
	defer c.Close()

	if s.config.Username != "" {
		if err := c.Auth(sasl.NewPlainClient("", s.config.Username, s.config.Password)); err != nil {
			return fmt.Errorf("smtp: auth: %w", err)
		}
	}
	if err := c.Noop(); err != nil {
		return fmt.Errorf("smtp: noop: %w", err)
	}
	return c.Quit()
}

func (s *Sender) addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

func (s *Sender) dial() (*gosmtp.Client, error) {
	tlsConfig := &tls.Config{ServerName: s.config.Host, MinVersion: tls.VersionTLS12}

	var (
		c   *gosmtp.Client
		err error
	)
	switch s.config.TLS {
	case TLSStartTLS:
		c, err = gosmtp.DialStartTLS(s.addr(), tlsConfig)
	case TLSImplicit:
		c, err = gosmtp.DialTLS(s.addr(), tlsConfig)
	case TLSNone:
		c, err = gosmtp.Dial(s.addr())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTLSMode, s.config.TLS)
	}
	if err != nil {
		return nil, fmt.Errorf("smtp: dial %s: %w", s.addr(), err)
	}
	return c, nil
}
