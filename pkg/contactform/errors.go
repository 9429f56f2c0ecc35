package contactform

import "errors"

var (
	// ErrInFlight is returned by Submit while another submission is pending.
	ErrInFlight = errors.New("contactform: submission already in flight")

	// ErrInvalidBaseURL indicates the relay base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("contactform: invalid base url")

	// ErrRejected indicates the relay answered with success set to false.
	ErrRejected = errors.New("contactform: submission rejected")

	// ErrUnexpectedResponse indicates the relay answered with a body that is not a status object.
	ErrUnexpectedResponse = errors.New("contactform: unexpected response")
)
