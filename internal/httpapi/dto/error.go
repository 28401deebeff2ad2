package dto

import (
	"strings"
	"time"

	"cinelog/internal/httpapi/validation"
)

// ErrorResponse is the uniform envelope for every API failure: validation,
// authorization, not-found, conflict and server errors all share it.
type ErrorResponse struct {
	Timestamp   string                  `json:"timestamp"`
	Status      int                     `json:"status"`
	Error       string                  `json:"error"`
	Message     string                  `json:"message"`
	FieldErrors []validation.FieldError `json:"fieldErrors"`
}

// NewError builds the envelope. Message is the joined field-error messages,
// or the reason phrase when there are none.
func NewError(status int, reason string, fields ...validation.FieldError) ErrorResponse {
	msg := reason
	if len(fields) > 0 {
		msgs := make([]string, len(fields))
		for i, f := range fields {
			msgs[i] = f.Message
		}
		msg = strings.Join(msgs, "; ")
	}
	if fields == nil {
		fields = []validation.FieldError{}
	}
	return ErrorResponse{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Status:      status,
		Error:       reason,
		Message:     msg,
		FieldErrors: fields,
	}
}
