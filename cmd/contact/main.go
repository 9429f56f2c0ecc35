// Command contact submits a message to a running contact relay from the terminal.
//
//	contact --name Ada --email ada@example.com --message "Hello"
//	echo "Hello" | contact --name Ada --email ada@example.com --message -
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/portfolio/pkg/contactform"
)

const defaultRelayURL = "http://localhost:5000"

// settings are the flag defaults taken from the environment.
type settings struct {
	RelayURL string        `env:"CONTACT_RELAY_URL" envDefault:"http://localhost:5000"`
	Timeout  time.Duration `env:"CONTACT_TIMEOUT" envDefault:"0s"`
}

// loadSettings parses environ, or the process environment when environ is nil.
func loadSettings(environ map[string]string) (settings, error) {
	var s settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environ}); err != nil {
		return settings{}, fmt.Errorf("parse environment: %w", err)
	}
	return s, nil
}

// errNotSent makes the process exit non-zero after the notification was printed.
var errNotSent = errors.New("message not sent")

type options struct {
	url     string
	name    string
	email   string
	subject string
	message string
	timeout time.Duration
	verbose bool
}

func main() {
	s, err := loadSettings(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if err := newRootCmd(os.Stdin, os.Stdout, s).Execute(); err != nil {
		if !errors.Is(err, errNotSent) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer, s settings) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the portfolio contact relay",
		Long: `Send one message to POST /api/contact and print the relay's answer.

The relay URL defaults to $CONTACT_RELAY_URL, then ` + defaultRelayURL + `.
The timeout defaults to $CONTACT_TIMEOUT.
Pass --message - to read the message body from stdin.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return submit(cmd.Context(), opts, in, out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.url, "url", s.RelayURL, "relay base URL")
	f.StringVarP(&opts.name, "name", "n", "", "your name")
	f.StringVarP(&opts.email, "email", "e", "", "your email address")
	f.StringVarP(&opts.subject, "subject", "s", "", "subject (optional)")
	f.StringVarP(&opts.message, "message", "m", "", `message text, or "-" to read stdin`)
	f.DurationVar(&opts.timeout, "timeout", s.Timeout, "request timeout (0 means no timeout)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "print the underlying error on failure")

	return cmd
}

func submit(ctx context.Context, opts *options, in io.Reader, out io.Writer) error {
	message := opts.message
	if message == "-" {
		b, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		message = strings.TrimRight(string(b), "\r\n")
	}

	form, err := contactform.New(opts.url,
		contactform.WithHTTPClient(&http.Client{Timeout: opts.timeout}),
		contactform.WithNotifier(terminalNotifier{out: out}),
	)
	if err != nil {
		return err
	}

	form.UpdateField(contactform.FieldName, opts.name)
	form.UpdateField(contactform.FieldEmail, opts.email)
	form.UpdateField(contactform.FieldSubject, opts.subject)
	form.UpdateField(contactform.FieldMessage, message)

	res, err := form.Submit(ctx)
	if err != nil {
		return err
	}
	if res.Success {
		return nil
	}
	if opts.verbose && res.Err != nil {
		fmt.Fprintln(out, "  cause:", res.Err)
	}
	return errNotSent
}
