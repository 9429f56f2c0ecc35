package contact_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/internal"
	"github.com/dmitrymomot/portfolio/internal/contact"
	"github.com/dmitrymomot/portfolio/middlewares"
	"github.com/dmitrymomot/portfolio/pkg/mailer"
)

const (
	testSender    = "relay@example.com"
	testRecipient = "owner@example.com"

	bodySent          = `{"success":true,"message":"Your message has been sent!"}`
	bodyMissingFields = `{"success":false,"message":"Please provide all required fields"}`
	bodySendFailed    = `{"success":false,"message":"Failed to send message. Please try again later."}`
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email *mailer.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type recordingObserver struct {
	mu       sync.Mutex
	rejected int
	relayed  []error
}

func (o *recordingObserver) Rejected() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected++
}

func (o *recordingObserver) Relayed(_ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.relayed = append(o.relayed, err)
}

func newTestApp(t *testing.T, sender mailer.Sender, opts ...contact.RelayOption) *internal.App {
	t.Helper()
	m := mailer.New(sender, contact.NewRenderer(), mailer.Config{DefaultLayout: "base.html"})
	return internal.New(
		internal.WithMiddleware(middlewares.Recover(), middlewares.CORS()),
		internal.WithHandlers(contact.NewRelay(m, testSender, testRecipient, opts...)),
		internal.WithErrorHandler(contact.ErrorHandler),
		internal.WithNotFoundHandler(contact.NotFound),
		internal.WithMethodNotAllowedHandler(contact.MethodNotAllowed),
	)
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, contact.Route, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// captureEmail returns a sender that succeeds and records the delivered email.
func captureEmail(t *testing.T) (*mockSender, func() *mailer.Email) {
	t.Helper()
	var (
		mu  sync.Mutex
		got *mailer.Email
	)
	s := &mockSender{}
	s.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		mu.Lock()
		defer mu.Unlock()
		got = args.Get(1).(*mailer.Email)
	}).Return(nil)
	return s, func() *mailer.Email {
		mu.Lock()
		defer mu.Unlock()
		return got
	}
}

func TestRelay_Delivered(t *testing.T) {
	t.Parallel()

	sender, delivered := captureEmail(t)
	obs := &recordingObserver{}
	app := newTestApp(t, sender, contact.WithObserver(obs))

	rec := postJSON(t, app, `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello there"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, bodySent, rec.Body.String())
	sender.AssertNumberOfCalls(t, "Send", 1)

	email := delivered()
	require.NotNil(t, email)
	assert.Equal(t, []string{testRecipient}, email.To)
	assert.Equal(t, testSender, email.From)
	assert.Equal(t, "ada@example.com", email.ReplyTo)
	assert.Equal(t, "New contact from Ada", email.Subject)
	assert.Contains(t, email.HTML, "Ada")
	assert.Contains(t, email.HTML, "ada@example.com")
	assert.Contains(t, email.HTML, "Hello there")
	assert.Contains(t, email.HTML, "mailto:ada%40example.com")
	assert.Contains(t, email.Text, "Name: Ada")
	assert.Contains(t, email.Text, "Subject: Hi")
	assert.Contains(t, email.Text, "Hello there")
	assert.Equal(t, "contact-form", email.Tags["source"])

	assert.Equal(t, 0, obs.rejected)
	require.Len(t, obs.relayed, 1)
	assert.NoError(t, obs.relayed[0])
}

func TestRelay_SubjectOptional(t *testing.T) {
	t.Parallel()

	sender, delivered := captureEmail(t)
	app := newTestApp(t, sender)

	rec := postJSON(t, app, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	email := delivered()
	require.NotNil(t, email)
	assert.NotContains(t, email.Text, "Subject:")
	assert.Equal(t, "New contact from Ada", email.Subject)
}

func TestRelay_MissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"ada@example.com","message":"Hello"}`},
		{"missing email", `{"name":"Ada","message":"Hello"}`},
		{"missing message", `{"name":"Ada","email":"ada@example.com"}`},
		{"empty name", `{"name":"","email":"ada@example.com","message":"Hello"}`},
		{"only subject", `{"subject":"Hi"}`},
		{"empty object", `{}`},
		{"malformed json", `{"name":`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &mockSender{}
			obs := &recordingObserver{}
			app := newTestApp(t, sender, contact.WithObserver(obs))

			rec := postJSON(t, app, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, bodyMissingFields, rec.Body.String())
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
			assert.Equal(t, 1, obs.rejected)
			assert.Empty(t, obs.relayed)
		})
	}
}

func TestRelay_RejectionIsRepeatable(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	app := newTestApp(t, sender)

	first := postJSON(t, app, `{"name":"Ada"}`)
	second := postJSON(t, app, `{"name":"Ada"}`)

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestRelay_TransportFailure(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("535 authentication failed"))
	obs := &recordingObserver{}
	app := newTestApp(t, sender, contact.WithObserver(obs))

	rec := postJSON(t, app, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, bodySendFailed, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "535")
	sender.AssertNumberOfCalls(t, "Send", 1)

	require.Len(t, obs.relayed, 1)
	assert.ErrorIs(t, obs.relayed[0], mailer.ErrSendFailed)
}

func TestRelay_FormBody(t *testing.T) {
	t.Parallel()

	sender, delivered := captureEmail(t)
	app := newTestApp(t, sender)

	form := url.Values{
		"name":    {"Grace"},
		"email":   {"grace@example.com"},
		"message": {"Sent from a plain form"},
	}
	req := httptest.NewRequest(http.MethodPost, contact.Route, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, bodySent, rec.Body.String())
	email := delivered()
	require.NotNil(t, email)
	assert.Equal(t, "New contact from Grace", email.Subject)
}

func TestRelay_SenderDisplayName(t *testing.T) {
	t.Parallel()

	sender, delivered := captureEmail(t)
	m := mailer.New(sender, contact.NewRenderer(), mailer.Config{DefaultLayout: "base.html"})
	app := internal.New(
		internal.WithHandlers(contact.NewRelay(m, mailer.Recipient("Portfolio", testSender), testRecipient)),
	)

	rec := postJSON(t, app, `{"name":"Ada","email":"ada@example.com","message":"Hi"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	email := delivered()
	require.NotNil(t, email)
	assert.Equal(t, `"Portfolio" <relay@example.com>`, email.From)
	assert.Equal(t, []string{testRecipient}, email.To)
}

func TestRelay_MultipartFormBody(t *testing.T) {
	t.Parallel()

	sender, delivered := captureEmail(t)
	app := newTestApp(t, sender)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "Grace"))
	require.NoError(t, mw.WriteField("email", "grace@example.com"))
	require.NoError(t, mw.WriteField("message", "Sent as FormData"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, contact.Route, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, bodySent, rec.Body.String())
	email := delivered()
	require.NotNil(t, email)
	assert.Equal(t, "New contact from Grace", email.Subject)
}

func TestRelay_MarkupIsNotRendered(t *testing.T) {
	t.Parallel()

	sender, delivered := captureEmail(t)
	app := newTestApp(t, sender)

	rec := postJSON(t, app, `{
		"name": "<b>Mallory</b>",
		"email": "mallory@example.com",
		"subject": "[click](javascript:alert(1))",
		"message": "<script>alert('x')</script>\n<img src=x onerror=alert(1)>\n# not a heading\n**not bold**"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	email := delivered()
	require.NotNil(t, email)

	assert.NotContains(t, email.HTML, "<script")
	assert.NotContains(t, email.HTML, "<img")
	assert.NotContains(t, email.HTML, "<b>Mallory")
	assert.NotContains(t, email.HTML, `href="javascript`)
	assert.NotContains(t, email.HTML, "<h1>not a heading")
	assert.NotContains(t, email.HTML, "<strong>not bold")
	assert.Contains(t, email.HTML, "&lt;script&gt;")
	assert.Contains(t, email.HTML, "# not a heading")

	// The plain-text part and subject carry the input verbatim.
	assert.Contains(t, email.Text, "<script>alert('x')</script>")
	assert.Equal(t, "New contact from <b>Mallory</b>", email.Subject)
}

func TestRelay_SubjectIsLiteral(t *testing.T) {
	t.Parallel()

	sender, delivered := captureEmail(t)
	app := newTestApp(t, sender)

	rec := postJSON(t, app, `{"name":"{{.Email}}","email":"ada@example.com","message":"{{.Name}}"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	email := delivered()
	require.NotNil(t, email)
	assert.Equal(t, "New contact from {{.Email}}", email.Subject)
	assert.Contains(t, email.Text, "{{.Name}}")
}

func TestRelay_InvalidEmailHasNoReplyTo(t *testing.T) {
	t.Parallel()

	sender, delivered := captureEmail(t)
	app := newTestApp(t, sender)

	rec := postJSON(t, app, `{"name":"Ada","email":"not an address","message":"Hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	email := delivered()
	require.NotNil(t, email)
	assert.Empty(t, email.ReplyTo)
	assert.NotContains(t, email.HTML, "mailto:")
	assert.Contains(t, email.Text, "Email: not an address")
}

func TestRelay_WrongMethod(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	app := newTestApp(t, sender)

	req := httptest.NewRequest(http.MethodGet, contact.Route, nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Method not allowed"}`, rec.Body.String())
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestRelay_UnknownRoute(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &mockSender{})

	req := httptest.NewRequest(http.MethodPost, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Not found"}`, rec.Body.String())
}

func TestRelay_Preflight(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	app := newTestApp(t, sender)

	req := httptest.NewRequest(http.MethodOptions, contact.Route, nil)
	req.Header.Set("Origin", "https://portfolio.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestRelay_ConcurrentSubmissions(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)
	app := newTestApp(t, sender)

	const n = 20
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = postJSON(t, app, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`).Code
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
	sender.AssertNumberOfCalls(t, "Send", n)
}
