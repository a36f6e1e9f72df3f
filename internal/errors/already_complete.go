package errors

import "net/http"

var ErrAlreadyComplete = &Exception{
	Message:    "task is already marked as complete",
	StatusCode: http.StatusBadRequest,
}
