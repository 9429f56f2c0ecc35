package resend

// Config holds Resend email provider configuration.
// Embed this in the app config for env parsing with caarlos0/env.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"EMAIL_USER"`
	SenderName  string `env:"MAIL_FROM_NAME"`
}
