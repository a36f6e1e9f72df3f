package errors

import "net/http"

var ErrTaskNotClaimable = &Exception{
	Message:    "task is not open for claims",
	StatusCode: http.StatusBadRequest,
}
