package mbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	gombox "github.com/emersion/go-mbox"

	"github.com/dmitrymomot/portfolio/pkg/mailer"
)

// ErrMissingPath indicates an empty mbox path.
var ErrMissingPath = errors.New("mbox: path is not configured")

// Config holds mbox transport configuration.
type Config struct {
	Path        string `env:"MBOX_PATH"`
	SenderEmail string `env:"EMAIL_USER"`
	SenderName  string `env:"MAIL_FROM_NAME"`
}

// Sender appends every message to a local mbox file instead of delivering it.
// Appends are serialized, so one Sender may be shared across requests.
type Sender struct {
	now    func() time.Time
	config Config
	mu     sync.Mutex
}

// New creates a new mbox sender.
func New(cfg Config) *Sender {
	return &Sender{config: cfg, now: time.Now}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.config.Path == "" {
		return ErrMissingPath
	}

	msg := *email
	if msg.From == "" {
		sender := s.config.SenderEmail
		if sender == "" {
			sender = "relay@localhost"
		}
		msg.From = mailer.Recipient(s.config.SenderName, sender)
	}
	from, err := mailer.AddressOf(msg.From)
	if err != nil {
		return fmt.Errorf("mbox: %w", err)
	}

	now := s.now()
	var body bytes.Buffer
	if err := mailer.WriteMessage(&body, &msg, now); err != nil {
		return fmt.Errorf("mbox: compose message: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.config.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("mbox: open %s: %w", s.config.Path, err)
	}

	w := gombox.NewWriter(f)
	mw, err := w.CreateMessage(from, now)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("mbox: create message: %w", err)
	}
	if _, err := body.WriteTo(mw); err != nil {
		_ = f.Close()
		return fmt.Errorf("mbox: write message: %w", err)
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("mbox: finish message: %w", err)
	}
	return f.Close()
}

// Healthcheck reports whether the mbox directory exists and the file can be opened for append.
func (s *Sender) Healthcheck() func(context.Context) error {
	return func(context.Context) error {
		if s.config.Path == "" {
			return ErrMissingPath
		}
		if _, err := os.Stat(filepath.Dir(s.config.Path)); err != nil {
			return fmt.Errorf("mbox: %w", err)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		f, err := os.OpenFile(s.config.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("mbox: %w", err)
		}
		return f.Close()
	}
}
