package mailer

import (
	"fmt"
	"io"
	"net/mail"
	"time"

	gomail "github.com/emersion/go-message/mail"
)

// WriteMessage encodes email as an RFC 5322 message with a multipart/alternative body.
// Header values are MIME-encoded, so CR or LF in a subject or display name cannot
// start a new header. BCC recipients are left out of the headers.
// email.From must be set.
func WriteMessage(w io.Writer, email *Email, date time.Time) error {
	from, err := parseList(email.From)
	if err != nil {
		return err
	}
	to, err := parseList(email.To...)
	if err != nil {
		return err
	}

	var h gomail.Header
	h.SetDate(date)
	h.SetAddressList("From", from)
	h.SetAddressList("To", to)
	if len(email.CC) > 0 {
		cc, err := parseList(email.CC...)
		if err != nil {
			return err
		}
		h.SetAddressList("Cc", cc)
	}
	if email.ReplyTo != "" {
		// Reply-To usually carries visitor input; an unparseable value is dropped, not fatal.
		if replyTo, err := parseList(email.ReplyTo); err == nil {
			h.SetAddressList("Reply-To", replyTo)
		}
	}
	h.SetSubject(email.Subject)
	if err := h.GenerateMessageID(); err != nil {
		return fmt.Errorf("generate message id: %w", err)
	}
	for k, v := range email.Headers {
		h.SetText(k, v)
	}

	mw, err := gomail.CreateWriter(w, h)
	if err != nil {
		return fmt.Errorf("create message writer: %w", err)
	}

	iw, err := mw.CreateInline()
	if err != nil {
		return fmt.Errorf("create inline writer: %w", err)
	}
	if email.Text != "" {
		if err := writePart(iw, "text/plain", email.Text); err != nil {
			return err
		}
	}
	if err := writePart(iw, "text/html", email.HTML); err != nil {
		return err
	}
	if err := iw.Close(); err != nil {
		return fmt.Errorf("close inline writer: %w", err)
	}

	return mw.Close()
}

func writePart(iw *gomail.InlineWriter, contentType, body string) error {
	var ph gomail.InlineHeader
	ph.SetContentType(contentType, map[string]string{"charset": "utf-8"})
	ph.Set("Content-Transfer-Encoding", "quoted-printable")

	pw, err := iw.CreatePart(ph)
	if err != nil {
		return fmt.Errorf("create %s part: %w", contentType, err)
	}
	if _, err := io.WriteString(pw, body); err != nil {
		_ = pw.Close()
		return fmt.Errorf("write %s part: %w", contentType, err)
	}
	return pw.Close()
}

func parseList(raw ...string) ([]*gomail.Address, error) {
	addrs := make([]*gomail.Address, 0, len(raw))
	for _, r := range raw {
		a, err := mail.ParseAddress(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, r, err)
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}

// AddressOf returns the bare address of an RFC 5322 address string.
func AddressOf(raw string) (string, error) {
	a, err := mail.ParseAddress(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidAddress, raw, err)
	}
	return a.Address, nil
}
