package errors

import "net/http"

// Validation wraps a human-readable reason for a malformed request.
func Validation(message string) *Exception {
	return &Exception{
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}
