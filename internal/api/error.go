package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const genericErrorMessage = "Something went wrong. Please try again."

// Error represents a non-2xx API response. Message is the server's
// error/message field, surfaced to the user verbatim, falling back to a
// generic string when the body carries neither.
type Error struct {
	StatusCode int
	Message    string
	Body       []byte
}

// errorEnvelope matches both error body shapes the backend uses
type errorEnvelope struct {
	ErrorField string `json:"error"`
	Message    string `json:"message"`
}

func newError(statusCode int, body []byte) *Error {
	message := genericErrorMessage
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.ErrorField != "":
			message = envelope.ErrorField
		case envelope.Message != "":
			message = envelope.Message
		}
	}
	return &Error{
		StatusCode: statusCode,
		Message:    message,
		Body:       body,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an API error with status 404
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is an API error with status 401
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// UserMessage extracts the user-facing message from an error: the server's
// message for API errors, the generic fallback for anything else.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return genericErrorMessage
}
