// Package mailer renders and delivers transactional email.
//
// Delivery is delegated to a Sender; the subpackages provide three:
//
//   - smtp: authenticated SMTP submission (STARTTLS or implicit TLS)
//   - resend: the Resend HTTP API
//   - mbox: appends messages to a local mbox file, for development
//
// Mailer combines a Sender with a Renderer:
//
//	renderer := mailer.NewRendererWithConfig(templates, mailer.RendererConfig{
//		Policy: sanitizer.NewEmailPolicy(),
//	})
//	m := mailer.New(sender, renderer, mailer.Config{DefaultLayout: "base.html"})
//
//	err := m.Send(ctx, mailer.SendParams{
//		To:       "me@example.com",
//		Template: "contact.md",
//		Subject:  "New contact from " + name,
//		ReplyTo:  visitorEmail,
//		Data:     envelope,
//	})
//
// # Templates
//
// Templates are markdown files with optional YAML frontmatter:
//
//	---
//	Subject: New contact message
//	---
//	### New Contact Message
//
//	**Name:** {{.Markdown.Name}}
//
//	[!button|Reply](mailto:{{urlquery .ReplyTo}})
//
// The markdown is executed with text/template, so visitor input must be escaped for
// markdown before it reaches the template (the contact package backslash-escapes it).
// The converted fragment is passed through the renderer's bluemonday policy
// and placed into an html/template layout as .Content. A sibling "contact.txt" template,
// when present, produces the plain-text part; otherwise the processed markdown is used.
//
// The [!button|Label](url) syntax renders a call-to-action link with class "btn".
// Only http, https and mailto URLs become links.
//
// # Subjects
//
// SendParams.Subject is used literally. A subject taken from frontmatter or
// Config.FallbackSubject is executed as a template with the send data.
//
// # Errors
//
// Render problems are reported as ErrRenderFailed (joined with ErrTemplateNotFound,
// ErrLayoutNotFound or ErrInvalidFrontmatter), transport failures as ErrSendFailed joined
// with the transport error.
package mailer
