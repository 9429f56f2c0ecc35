package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
)

// Field names accepted by UpdateField.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// Messages used when the relay gives no usable message of its own.
const (
	FallbackRejected = "Something went wrong. Please try again."
	FallbackFailed   = "Failed to send message. Please try again later."
)

const (
	contactPath     = "/api/contact"
	maxResponseSize = 64 << 10
)

// Fields are the values a visitor typed into the form.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Result is the outcome of one submission.
type Result struct {
	// Err holds the transport or decoding error behind a failed submission.
	// It is for diagnostics only and is never shown to the visitor.
	Err     error `json:"-"`
	Message string
	Success bool
}

// Form holds the state of one contact form: field values, an in-flight flag
// and the result of the last submission. It is safe for concurrent use.
type Form struct {
	client   *http.Client
	notifier Notifier
	endpoint string

	mu         sync.Mutex
	fields     Fields
	lastResult *Result
	inFlight   bool
}

// Option configures a Form.
type Option func(*Form)

// WithHTTPClient sets the client used to reach the relay.
// The default is http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Form) {
		if c != nil {
			f.client = c
		}
	}
}

// WithNotifier sets where success and error notifications go.
func WithNotifier(n Notifier) Option {
	return func(f *Form) {
		if n != nil {
			f.notifier = n
		}
	}
}

// New creates a form that submits to baseURL + "/api/contact".
func New(baseURL string, opts ...Option) (*Form, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	f := &Form{
		client:   http.DefaultClient,
		notifier: nopNotifier{},
		endpoint: u.JoinPath(contactPath).String(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// UpdateField sets one field by name. Unknown names are ignored.
func (f *Form) UpdateField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case FieldName:
		f.fields.Name = value
	case FieldEmail:
		f.fields.Email = value
	case FieldSubject:
		f.fields.Subject = value
	case FieldMessage:
		f.fields.Message = value
	}
}

// Fields returns a copy of the current field values.
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// InFlight reports whether a submission is pending.
func (f *Form) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

// LastResult returns the outcome of the latest finished submission.
// ok is false before the first submission finishes and while one is pending.
func (f *Form) LastResult() (Result, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastResult == nil {
		return Result{}, false
	}
	return *f.lastResult, true
}

// Submit sends the current fields to the relay once and records the outcome.
// On success the fields are cleared. A second call while one is pending
// returns ErrInFlight and changes nothing.
func (f *Form) Submit(ctx context.Context) (Result, error) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return Result{}, ErrInFlight
	}
	f.inFlight = true
	f.lastResult = nil
	payload := f.fields
	f.mu.Unlock()

	res := f.send(ctx, payload)

	f.mu.Lock()
	f.inFlight = false
	f.lastResult = &res
	if res.Success {
		f.fields = Fields{}
	}
	f.mu.Unlock()

	kind := KindError
	if res.Success {
		kind = KindSuccess
	}
	f.notifier.Notify(ctx, Notification{Kind: kind, Message: res.Message})

	return res, nil
}

// status is the relay's reply body.
type status struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (f *Form) send(ctx context.Context, payload Fields) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return failed(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return failed(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return failed(err)
	}
	defer resp.Body.Close()

	var st status
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&st); err != nil {
		return failed(fmt.Errorf("%w: status %d: %v", ErrUnexpectedResponse, resp.StatusCode, err))
	}
	if st.Success == nil {
		return failed(fmt.Errorf("%w: status %d: no success flag", ErrUnexpectedResponse, resp.StatusCode))
	}

	msg := sanitizer.PlainText(st.Message)
	if *st.Success {
		return Result{Success: true, Message: msg}
	}
	if msg == "" {
		msg = FallbackRejected
	}
	return Result{Message: msg, Err: fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)}
}

func failed(err error) Result {
	return Result{Message: FallbackFailed, Err: err}
}
