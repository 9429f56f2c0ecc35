package contact

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/portfolio/internal"
	"github.com/dmitrymomot/portfolio/pkg/mailer"
)

// Route is the path the relay listens on.
const Route = "/api/contact"

// Observer receives relay outcomes. *metrics.Metrics implements it.
type Observer interface {
	Rejected()
	Relayed(d time.Duration, err error)
}

// Mailer is the part of *mailer.Mailer the relay uses.
type Mailer interface {
	Send(ctx context.Context, params mailer.SendParams) error
}

type nopObserver struct{}

func (nopObserver) Rejected()                     {}
func (nopObserver) Relayed(time.Duration, error) {}

// Relay forwards contact form submissions to the operator inbox.
// Each request is independent: validate, build one envelope, send once.
// There is no retry, deduplication or storage.
type Relay struct {
	mailer    Mailer
	observer  Observer
	sender    string
	recipient string
}

// RelayOption configures a Relay.
type RelayOption func(*Relay)

// WithObserver reports every outcome to o.
func WithObserver(o Observer) RelayOption {
	return func(r *Relay) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewRelay creates a relay that sends from sender to recipient.
// An empty recipient falls back to sender.
func NewRelay(m Mailer, sender, recipient string, opts ...RelayOption) *Relay {
	r := &Relay{
		mailer:    m,
		observer:  nopObserver{},
		sender:    sender,
		recipient: recipient,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Routes implements internal.Handler.
func (h *Relay) Routes(r internal.Router) {
	r.POST(Route, h.submit)
}

func (h *Relay) submit(c internal.Context) error {
	var req Request
	verrs, err := c.Bind(&req)
	if err != nil || len(verrs) > 0 {
		h.observer.Rejected()
		attrs := []any{slog.Any("fields", verrs.Fields())}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}
		c.LogDebug("contact submission rejected", attrs...)
		return c.JSON(http.StatusBadRequest, failure(MessageMissingFields))
	}

	env := NewEnvelope(req, h.sender, h.recipient)

	start := time.Now()
	err = h.mailer.Send(c, env.SendParams())
	h.observer.Relayed(time.Since(start), err)

	if err != nil {
		// Visitor content stays out of logs; the transport error is enough to debug.
		c.LogError("contact relay failed", slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, failure(MessageSendFailed))
	}

	c.LogInfo("contact message relayed", slog.Int("message_length", len(env.Message)))
	return c.JSON(http.StatusOK, success(MessageSent))
}
