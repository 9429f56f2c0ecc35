package contact

import "github.com/dmitrymomot/portfolio/pkg/validator"

// Request is the body of POST /api/contact, as JSON or url-encoded form.
type Request struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// Validate requires name, email and message to be present and non-empty.
// Subject is optional. The email format is deliberately not checked.
func (r *Request) Validate() error {
	return validator.Apply(
		validator.RequiredString("name", r.Name),
		validator.RequiredString("email", r.Email),
		validator.RequiredString("message", r.Message),
	)
}
