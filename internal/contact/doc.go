// Package contact implements the portfolio contact relay: POST /api/contact
// validates a visitor submission, turns it into a single email for the site
// operator and reports the outcome with one of three fixed JSON replies.
//
// Every request is handled independently. Nothing is stored, retried or
// deduplicated, and the visitor never learns why a delivery failed.
//
//	m := mailer.New(sender, contact.NewRenderer(), mailer.Config{})
//	relay := contact.NewRelay(m, cfg.Sender(), cfg.Recipient(), contact.WithObserver(metrics))
//	app := internal.New(
//	    internal.WithHandlers(relay),
//	    internal.WithErrorHandler(contact.ErrorHandler),
//	    internal.WithNotFoundHandler(contact.NotFound),
//	    internal.WithMethodNotAllowedHandler(contact.MethodNotAllowed),
//	)
//
// Visitor text is carried verbatim into the subject line and plain-text part.
// In the HTML part it is escaped before markdown conversion and the result is
// passed through an email sanitizing policy, so submitted markup is shown as
// text and never rendered.
package contact
