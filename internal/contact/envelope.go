package contact

import (
	"strings"

	"github.com/dmitrymomot/portfolio/pkg/mailer"
)

// subjectPrefix starts every subject line the operator receives.
const subjectPrefix = "New contact from "

// Template names inside Templates.
const (
	contactTemplate = "contact.md"
	contactLayout   = "base.html"
)

// Envelope is one contact message on its way to the inbox.
// It lives for a single request and is never stored.
type Envelope struct {
	Name      string
	Email     string
	Subject   string // optional subject typed by the visitor
	Message   string
	Sender    string // outbound account
	Recipient string // operator inbox
}

// NewEnvelope copies the visitor fields verbatim. recipient falls back to sender.
func NewEnvelope(req Request, sender, recipient string) Envelope {
	if recipient == "" {
		recipient = sender
	}
	return Envelope{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Sender:    sender,
		Recipient: recipient,
	}
}

// SubjectLine is exactly "New contact from " followed by the visitor name.
func (e Envelope) SubjectLine() string {
	return subjectPrefix + e.Name
}

// ReplyTo is the visitor address when it parses as an RFC 5322 address, or empty.
func (e Envelope) ReplyTo() string {
	addr, err := mailer.AddressOf(e.Email)
	if err != nil {
		return ""
	}
	return addr
}

// templateData is what contact.md and contact.txt are executed with.
// The plain fields are verbatim; Markdown holds the same values escaped so
// goldmark renders them as literal text.
type templateData struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	ReplyTo  string
	Markdown struct {
		Name    string
		Email   string
		Subject string
		Message string
	}
}

func (e Envelope) templateData() templateData {
	d := templateData{
		Name:    e.Name,
		Email:   e.Email,
		Subject: e.Subject,
		Message: e.Message,
		ReplyTo: e.ReplyTo(),
	}
	d.Markdown.Name = escapeMarkdownLine(e.Name)
	d.Markdown.Email = escapeMarkdownLine(e.Email)
	d.Markdown.Subject = escapeMarkdownLine(e.Subject)
	d.Markdown.Message = escapeMarkdownBlock(e.Message)
	return d
}

// SendParams builds the templated email for the operator.
// The subject line is passed literally and never executed as a template.
func (e Envelope) SendParams() mailer.SendParams {
	return mailer.SendParams{
		To:       e.Recipient,
		From:     e.Sender,
		ReplyTo:  e.ReplyTo(),
		Subject:  e.SubjectLine(),
		Template: contactTemplate,
		Layout:   contactLayout,
		Data:     e.templateData(),
		Tags:     mailer.Tags{"source": "contact-form"},
	}
}

const markdownPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// escapeMarkdownLine backslash-escapes every ASCII punctuation character and
// folds line breaks into spaces, for values shown inline.
func escapeMarkdownLine(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(markdownPunctuation, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// escapeMarkdownBlock escapes each line and joins them with hard breaks,
// so the message keeps its line structure.
func escapeMarkdownBlock(s string) string {
	s = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = escapeMarkdownLine(strings.TrimLeft(line, " \t"))
	}
	return strings.Join(lines, "  \n")
}
