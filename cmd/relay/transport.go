package main

import (
	"fmt"

	"github.com/dmitrymomot/portfolio/internal/config"
	"github.com/dmitrymomot/portfolio/pkg/health"
	"github.com/dmitrymomot/portfolio/pkg/mailer"
	"github.com/dmitrymomot/portfolio/pkg/mailer/mbox"
	"github.com/dmitrymomot/portfolio/pkg/mailer/resend"
	"github.com/dmitrymomot/portfolio/pkg/mailer/smtp"
)

// transport is the selected mail sender and its readiness check.
type transport struct {
	sender mailer.Sender
	check  health.CheckFunc
	name   string
}

func newTransport(cfg *config.Config) (transport, error) {
	switch cfg.Transport {
	case config.TransportSMTP:
		s := smtp.New(cfg.SMTP)
		return transport{name: cfg.Transport, sender: s, check: s.Healthcheck()}, nil
	case config.TransportResend:
		s := resend.New(cfg.Resend)
		return transport{name: cfg.Transport, sender: s, check: s.Healthcheck()}, nil
	case config.TransportMbox:
		s := mbox.New(cfg.Mbox)
		return transport{name: cfg.Transport, sender: s, check: s.Healthcheck()}, nil
	default:
		return transport{}, fmt.Errorf("%w: %q", config.ErrUnknownTransport, cfg.Transport)
	}
}
