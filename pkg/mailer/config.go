package mailer

// Config holds mailer configuration.
// Embed this in the app config for env parsing with caarlos0/env.
type Config struct {
	FallbackSubject string `env:"MAIL_FALLBACK_SUBJECT" envDefault:"New contact message"`
	DefaultLayout   string `env:"MAIL_LAYOUT" envDefault:"base.html"`
}
