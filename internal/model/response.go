package model

// Status is the envelope outcome.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusFailure Status = "Failure"
)

// Envelope wraps every contacts response:
//
//	{ "status": "Success", "message": "...", "data": ..., "error": "..." }
//
// Data is always serialized, as null when unset. Error is omitted when empty.
type Envelope struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

// Success builds a successful envelope.
func Success(message string, data any) Envelope {
	return Envelope{Status: StatusSuccess, Message: message, Data: data}
}

// Failure builds a failed envelope with no data.
func Failure(message, detail string) Envelope {
	return Envelope{Status: StatusFailure, Message: message, Error: detail}
}
