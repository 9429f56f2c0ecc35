package mailer

import (
	"fmt"
	"net/mail"
)

// Tags represents email tags/categories that can be either presence-only
// (using struct{}{}) or key-value pairs (using string values).
// Resend receives them as name-value pairs; the MIME transports ignore them.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return (&mail.Address{Name: name, Address: email}).String()
}

// Email represents a fully-prepared email message ready for sending.
type Email struct {
	Headers map[string]string // Custom headers
	Tags    Tags              // Provider-specific tags/categories
	Subject string            // Email subject
	HTML    string            // HTML body content
	Text    string            // Plain text alternative
	From    string            // Override default sender (if provider allows)
	ReplyTo string            // Reply-to address
	To      []string          // Recipients (at least one required)
	CC      []string          // Carbon copy recipients
	BCC     []string          // Blind carbon copy recipients
}

// Recipients returns every envelope recipient: To, CC and BCC, as bare addresses.
func (e *Email) Recipients() ([]string, error) {
	all := make([]string, 0, len(e.To)+len(e.CC)+len(e.BCC))
	for _, list := range [][]string{e.To, e.CC, e.BCC} {
		for _, raw := range list {
			addr, err := mail.ParseAddress(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, raw, err)
			}
			all = append(all, addr.Address)
		}
	}
	return all, nil
}
