package contact

// Client-facing messages. The frontend shows them verbatim.
const (
	MessageSent          = "Your message has been sent!"
	MessageMissingFields = "Please provide all required fields"
	MessageSendFailed    = "Failed to send message. Please try again later."
	MessageNotFound      = "Not found"
	MessageNotAllowed    = "Method not allowed"
	MessageInternal      = "Something went wrong. Please try again later."
)

// Response is the JSON body of every reply under /api.
type Response struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func success(message string) Response {
	return Response{Success: true, Message: message}
}

func failure(message string) Response {
	return Response{Success: false, Message: message}
}
